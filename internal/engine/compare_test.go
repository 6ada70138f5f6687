package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodriguesiad/cortecnc/internal/model"
)

func TestCompareStrategiesRunsEachStrategy(t *testing.T) {
	sheet := model.Sheet{Width: 20, Height: 20}
	parts := []model.Part{model.NewRectPart(5, 5, 0), model.NewRectPart(5, 5, 0)}

	scan := model.DefaultScanConfig()
	strategies := []Strategy{
		{Name: "lrtb", Scan: &scan},
		{Name: "constant", Run: func(sheet model.Sheet, parts []model.Part) model.Layout {
			return Pack(sheet, parts, model.DefaultScanConfig())
		}},
	}

	results := CompareStrategies(sheet, parts, strategies)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Len(t, r.Layout, 2)
	}
}

func TestBuildDefaultStrategiesCoversFullSurface(t *testing.T) {
	strategies := BuildDefaultStrategies(1, 4, 2, 9, 2)
	assert.Len(t, strategies, 6)

	sheet := model.Sheet{Width: 30, Height: 30}
	parts := []model.Part{
		model.NewRectPart(10, 10, 0),
		model.NewCirclePart(4),
		model.NewDiamondPart(8, 8, 0),
	}
	results := CompareStrategies(sheet, parts, strategies)
	assert.Len(t, results, 6)
}
