package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rodriguesiad/cortecnc/internal/model"
)

func TestEvaluateFullUtilizationNoPenalties(t *testing.T) {
	sheet := model.Sheet{Width: 10, Height: 10}
	layout := model.Layout{
		{Part: model.NewRectPart(10, 10, 0), X: 0, Y: 0},
	}

	q := Evaluate(sheet, layout, 1)
	assert.Equal(t, 1.0, q.Utilization)
	assert.Equal(t, 0.0, q.OverlapPenalty)
	assert.Equal(t, 0.0, q.MissingPenalty)
	assert.Equal(t, 0.0, q.OutOfBoundsPenalty)
	assert.InDelta(t, 1.0, q.Quality, 1e-9)
}

func TestEvaluatePenalizesMissingParts(t *testing.T) {
	sheet := model.Sheet{Width: 10, Height: 10}
	layout := model.Layout{
		{Part: model.NewRectPart(5, 10, 0), X: 0, Y: 0},
	}

	q := Evaluate(sheet, layout, 2)
	assert.InDelta(t, 1.0, q.MissingPenalty, 1e-9)
	assert.InDelta(t, 0.5-1.0, q.Quality, 1e-9)
}

func TestEvaluatePenalizesOverlap(t *testing.T) {
	sheet := model.Sheet{Width: 10, Height: 10}
	layout := model.Layout{
		{Part: model.NewRectPart(6, 6, 0), X: 0, Y: 0},
		{Part: model.NewRectPart(6, 6, 0), X: 2, Y: 2},
	}

	q := Evaluate(sheet, layout, 2)
	assert.Greater(t, q.OverlapPenalty, 0.0)
}

func TestEvaluatePenalizesOutOfBounds(t *testing.T) {
	sheet := model.Sheet{Width: 10, Height: 10}
	layout := model.Layout{
		{Part: model.NewRectPart(5, 5, 0), X: 8, Y: 8},
	}

	q := Evaluate(sheet, layout, 1)
	assert.InDelta(t, OutOfBoundsPenaltyFactor, q.OutOfBoundsPenalty, 1e-9)
}

func TestEvaluateEmptyLayout(t *testing.T) {
	sheet := model.Sheet{Width: 10, Height: 10}
	q := Evaluate(sheet, nil, 0)
	assert.Equal(t, 0.0, q.Utilization)
	assert.Equal(t, 0.0, q.MissingPenalty)
	assert.Equal(t, 0.0, q.Quality)
}

func TestEvaluateZeroAreaSheet(t *testing.T) {
	sheet := model.Sheet{Width: 0, Height: 0}
	q := Evaluate(sheet, nil, 0)
	assert.Equal(t, 0.0, q.Utilization)
}
