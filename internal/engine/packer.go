package engine

import (
	"github.com/rodriguesiad/cortecnc/internal/geometry"
	"github.com/rodriguesiad/cortecnc/internal/grid"
	"github.com/rodriguesiad/cortecnc/internal/model"
)

// Pack greedily places parts, in the given order, onto a sheet under the
// given scan configuration. For each part it tries rotations in a fixed
// deterministic sequence and accepts the first feasible integer position
// under the configured scan order; parts that fit nowhere are silently
// skipped. Given identical inputs, Pack always returns the same layout.
func Pack(sheet model.Sheet, parts []model.Part, cfg model.ScanConfig) model.Layout {
	g := grid.New(sheet.Width, sheet.Height, grid.Binary)
	masks := grid.NewMaskCache()

	var layout model.Layout
	for _, part := range parts {
		placed, ok := placeOne(g, masks, sheet, part, cfg)
		if ok {
			layout = append(layout, placed)
		}
	}
	return layout
}

// placeOne tries every rotation of part in turn, scanning candidate
// positions per cfg, and stamps the grid as soon as one is accepted.
func placeOne(g *grid.Grid, masks *grid.MaskCache, sheet model.Sheet, part model.Part, cfg model.ScanConfig) (model.PlacedPart, bool) {
	for _, rotation := range rotationsToTry(part) {
		candidate := part
		candidate.Rotation = rotation
		bw, bh := geometry.BoundingBox(candidate)
		if bw > sheet.Width || bh > sheet.Height {
			continue
		}

		for _, pos := range candidatePositions(sheet, bw, bh, cfg) {
			cells := grid.CellsForPart(candidate, pos.x, pos.y, bw, bh, int(cfg.Margin), sheet.Width, sheet.Height, masks)
			if !g.IsFree(cells) {
				continue
			}
			g.Stamp(cells)
			return model.PlacedPart{Part: candidate, X: pos.x, Y: pos.y}, true
		}
	}
	return model.PlacedPart{}, false
}

// rotationsToTry returns the deterministic rotation search sequence for a
// part's kind: rectangles try [0, 90]; circles try only [0]; diamonds try
// their current rotation first, then sweep 0..90 in 10-degree steps.
func rotationsToTry(p model.Part) []int {
	switch p.Kind {
	case model.Rectangular:
		return []int{0, 90}
	case model.Circular:
		return []int{0}
	case model.Diamond:
		rotations := make([]int, 0, 10)
		rotations = append(rotations, p.Rotation)
		for _, a := range model.DiamondAngles() {
			if a != p.Rotation {
				rotations = append(rotations, a)
			}
		}
		return rotations
	default:
		return []int{0}
	}
}

type position struct{ x, y int }

// candidatePositions enumerates every top-left position a bw x bh box can
// occupy on the sheet, in the order cfg dictates: x ascending/descending per
// LeftToRight, y ascending/descending per TopToBottom, and the outer loop is
// y (row-major) when HorizontalPriority is set, x (column-major) otherwise.
func candidatePositions(sheet model.Sheet, bw, bh int, cfg model.ScanConfig) []position {
	xs := axisRange(sheet.Width-bw, cfg.LeftToRight)
	ys := axisRange(sheet.Height-bh, cfg.TopToBottom)

	positions := make([]position, 0, len(xs)*len(ys))
	if cfg.HorizontalPriority {
		for _, y := range ys {
			for _, x := range xs {
				positions = append(positions, position{x, y})
			}
		}
	} else {
		for _, x := range xs {
			for _, y := range ys {
				positions = append(positions, position{x, y})
			}
		}
	}
	return positions
}

// axisRange returns 0..max inclusive, ascending if asc else descending. A
// negative max (box larger than sheet along this axis) yields no positions.
func axisRange(max int, asc bool) []int {
	if max < 0 {
		return nil
	}
	out := make([]int, max+1)
	if asc {
		for i := 0; i <= max; i++ {
			out[i] = i
		}
	} else {
		for i := 0; i <= max; i++ {
			out[i] = max - i
		}
	}
	return out
}
