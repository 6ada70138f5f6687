package engine

import (
	"github.com/rodriguesiad/cortecnc/internal/geometry"
	"github.com/rodriguesiad/cortecnc/internal/grid"
	"github.com/rodriguesiad/cortecnc/internal/model"
)

// Quality is the scalar-objective breakdown the evaluator produces: overall
// quality plus the components that were combined to reach it.
type Quality struct {
	Utilization        float64
	OverlapPenalty     float64
	MissingPenalty     float64
	OutOfBoundsPenalty float64
	Quality            float64
}

// Evaluate re-rasterizes layout into a counting grid (ignoring margin) and
// scores it: quality = utilization - (overlap + missing + out-of-bounds).
// expectedCount is the number of parts in the original input, used to
// penalize parts the packer dropped.
func Evaluate(sheet model.Sheet, layout model.Layout, expectedCount int) Quality {
	g := grid.New(sheet.Width, sheet.Height, grid.Counting)

	var usedArea float64
	outOfBoundsCount := 0

	for _, pp := range layout {
		usedArea += geometry.Area(pp.Part)

		bw, bh := geometry.BoundingBox(pp.Part)
		if pp.X < 0 || pp.Y < 0 || pp.X+bw > sheet.Width || pp.Y+bh > sheet.Height {
			outOfBoundsCount++
		}

		cells := grid.CellsForPart(pp.Part, pp.X, pp.Y, bw, bh, 0, sheet.Width, sheet.Height, nil)
		g.Stamp(cells)
	}

	totalArea := float64(sheet.Area())
	utilization := 0.0
	if totalArea > 0 {
		utilization = usedArea / totalArea
	}

	missing := expectedCount - len(layout)
	if missing < 0 {
		missing = 0
	}

	overlapPenalty := OverlapPenaltyFactor * float64(g.OverlapCells())
	missingPenalty := MissingPenaltyFactor * float64(missing)
	oobPenalty := OutOfBoundsPenaltyFactor * float64(outOfBoundsCount)

	return Quality{
		Utilization:        utilization,
		OverlapPenalty:     overlapPenalty,
		MissingPenalty:     missingPenalty,
		OutOfBoundsPenalty: oobPenalty,
		Quality:            utilization - (overlapPenalty + missingPenalty + oobPenalty),
	}
}
