// Package grid implements the dense occupancy matrix shared by the packer
// and the fitness evaluator: a W×H integer array used in binary mode by the
// packer (0=free, 1=occupied) and in counting mode by the evaluator (cell
// value = number of parts covering it, so overlap is value-1).
package grid

import (
	"github.com/rodriguesiad/cortecnc/internal/geometry"
	"github.com/rodriguesiad/cortecnc/internal/model"
)

// Mode selects how Stamp mutates a cell.
type Mode int

const (
	// Binary sets a cell to 1 regardless of its current value.
	Binary Mode = iota
	// Counting increments a cell each time it is stamped, so repeated
	// stamps reveal overlap.
	Counting
)

// Cell is a single grid coordinate.
type Cell struct {
	X, Y int
}

// Grid is a dense W×H occupancy matrix.
type Grid struct {
	W, H int
	Mode Mode
	data []int
}

// New allocates a cleared grid of the given dimensions and mode.
func New(w, h int, mode Mode) *Grid {
	return &Grid{W: w, H: h, Mode: mode, data: make([]int, w*h)}
}

// Clear resets every cell to zero, reusing the backing array.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

func (g *Grid) index(x, y int) int {
	return y*g.W + x
}

// At returns the current value at (x, y), or 0 if out of bounds.
func (g *Grid) At(x, y int) int {
	if !g.inBounds(x, y) {
		return 0
	}
	return g.data[g.index(x, y)]
}

// IsFree reports whether every cell in cells is unoccupied. Only meaningful
// in Binary mode. Cells outside the grid carry no occupancy state and are
// skipped; the packer only tries positions whose bounding box lies on the
// sheet, so only margin cells can fall outside it.
func (g *Grid) IsFree(cells []Cell) bool {
	for _, c := range cells {
		if !g.inBounds(c.X, c.Y) {
			continue
		}
		if g.data[g.index(c.X, c.Y)] != 0 {
			return false
		}
	}
	return true
}

// Stamp marks every cell in cells as occupied (Binary) or increments its
// count (Counting). Cells outside the grid are ignored.
func (g *Grid) Stamp(cells []Cell) {
	for _, c := range cells {
		if !g.inBounds(c.X, c.Y) {
			continue
		}
		idx := g.index(c.X, c.Y)
		switch g.Mode {
		case Binary:
			g.data[idx] = 1
		case Counting:
			g.data[idx]++
		}
	}
}

// OverlapCells sums max(0, value-1) over every cell, the overlap measure the
// fitness evaluator uses in Counting mode.
func (g *Grid) OverlapCells() int {
	total := 0
	for _, v := range g.data {
		if v > 1 {
			total += v - 1
		}
	}
	return total
}

// MaskCache memoizes disk masks by radius so a packing run that tests many
// candidate positions for the same circular part computes each mask once,
// per the complexity note that implementations should precompute disk masks
// once per radius.
type MaskCache struct {
	masks map[int][][]bool
}

// NewMaskCache returns an empty cache.
func NewMaskCache() *MaskCache {
	return &MaskCache{masks: make(map[int][][]bool)}
}

func (c *MaskCache) get(r int) [][]bool {
	if m, ok := c.masks[r]; ok {
		return m
	}
	m := geometry.DiskMask(r)
	c.masks[r] = m
	return m
}

// CellsForPart computes the cell set a placed part occupies, per the data
// model's per-shape rules, clipped to the grid. Rectangle and circle cell
// sets are inflated by margin; for diamonds margin only widens the search
// range, and the point-in-polygon test still limits the set to the polygon
// itself, so a diamond's cells are the same for every margin. x, y
// is the top-left of the part's unrotated bounding box; bw, bh is its
// post-rotation bounding box (the caller already computed this via
// geometry.BoundingBox). cache may be nil, in which case disk masks are
// computed fresh each call.
func CellsForPart(p model.Part, x, y, bw, bh int, margin int, gridW, gridH int, cache *MaskCache) []Cell {
	switch p.Kind {
	case model.Circular:
		return circleCells(p, x, y, margin, gridW, gridH, cache)
	case model.Diamond:
		return diamondCells(p, x, y, margin, gridW, gridH)
	default:
		return rectCells(x, y, bw, bh, margin, gridW, gridH)
	}
}

func rectCells(x, y, bw, bh, margin, gridW, gridH int) []Cell {
	var cells []Cell
	for i := x - margin; i < x+bw+margin; i++ {
		if i < 0 || i >= gridW {
			continue
		}
		for j := y - margin; j < y+bh+margin; j++ {
			if j < 0 || j >= gridH {
				continue
			}
			cells = append(cells, Cell{X: i, Y: j})
		}
	}
	return cells
}

func circleCells(p model.Part, x, y, margin, gridW, gridH int, cache *MaskCache) []Cell {
	r := int(p.Radius)
	cx, cy := x+r, y+r
	total := r + margin
	var mask [][]bool
	if cache != nil {
		mask = cache.get(total)
	} else {
		mask = geometry.DiskMask(total)
	}
	startX, startY := cx-total, cy-total
	// The mask's last row and column lie on the right and bottom edges of
	// the (margin-inflated) bounding box, which are exclusive as they are
	// for rectangles, so those cells are not part of the circle.
	last := 2 * total

	var cells []Cell
	for i, row := range mask {
		for j, inside := range row {
			if !inside || i == last || j == last {
				continue
			}
			gx, gy := startX+i, startY+j
			if gx < 0 || gx >= gridW || gy < 0 || gy >= gridH {
				continue
			}
			cells = append(cells, Cell{X: gx, Y: gy})
		}
	}
	return cells
}

func diamondCells(p model.Part, x, y, margin, gridW, gridH int) []Cell {
	vertices := geometry.RotatedVertices(p, x, y)

	minX, maxX := vertices[0].X, vertices[0].X
	minY, maxY := vertices[0].Y, vertices[0].Y
	for _, v := range vertices[1:] {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}

	lo := func(f float64) int {
		v := int(f) - margin
		if v < 0 {
			return 0
		}
		return v
	}
	hi := func(f float64, bound int) int {
		v := int(f) + margin
		if v > bound-1 {
			return bound - 1
		}
		return v
	}

	x0, x1 := lo(minX), hi(maxX, gridW)
	y0, y1 := lo(minY), hi(maxY, gridH)

	var cells []Cell
	for i := x0; i <= x1; i++ {
		for j := y0; j <= y1; j++ {
			if geometry.PointInDiamond(float64(i), float64(j), vertices) {
				cells = append(cells, Cell{X: i, Y: j})
			}
		}
	}
	return cells
}
