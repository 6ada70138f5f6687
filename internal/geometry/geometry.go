// Package geometry implements the pure geometric functions the packer and
// evaluator share: area, rotated bounding boxes, diamond vertex rotation,
// point-in-polygon testing, and circular mask generation. All functions are
// free of state; they operate on model.Part values and return plain numbers
// or gonum r2 vectors.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/rodriguesiad/cortecnc/internal/model"
)

// Area returns the geometric area of a part: w*h for rectangles, pi*r^2 for
// circles, w*h/2 for diamonds (the area of a rhombus inscribed in its
// bounding box).
func Area(p model.Part) float64 {
	switch p.Kind {
	case model.Rectangular:
		return float64(p.Width) * float64(p.Height)
	case model.Circular:
		r := float64(p.Radius)
		return math.Pi * r * r
	case model.Diamond:
		return float64(p.Width) * float64(p.Height) / 2
	default:
		return 0
	}
}

// BoundingBox returns the part's axis-aligned bounding box dimensions after
// rotation, rounded to the nearest integer cell.
func BoundingBox(p model.Part) (width, height int) {
	if p.Kind == model.Circular {
		d := int(p.Radius) * 2
		return d, d
	}
	angle := float64(p.Rotation) * math.Pi / 180
	w := float64(p.Width)
	h := float64(p.Height)
	bw := math.Abs(w*math.Cos(angle)) + math.Abs(h*math.Sin(angle))
	bh := math.Abs(w*math.Sin(angle)) + math.Abs(h*math.Cos(angle))
	return int(math.Round(bw)), int(math.Round(bh))
}

// RotatedVertices returns the four vertices of a diamond placed with its
// unrotated bounding box top-left at (x, y), rotated about the box center by
// the part's Rotation. Vertices are returned top, right, bottom, left (the
// midpoints of the unrotated bounding box edges, after rotation).
func RotatedVertices(p model.Part, x, y int) [4]r2.Vec {
	w := float64(p.Width)
	h := float64(p.Height)
	fx := float64(x)
	fy := float64(y)
	cx := fx + w/2
	cy := fy + h/2

	unrotated := [4]r2.Vec{
		{X: cx, Y: fy},     // top
		{X: fx + w, Y: cy}, // right
		{X: cx, Y: fy + h}, // bottom
		{X: fx, Y: cy},     // left
	}

	angle := float64(p.Rotation) * math.Pi / 180
	sin, cos := math.Sin(angle), math.Cos(angle)

	var out [4]r2.Vec
	for i, v := range unrotated {
		dx, dy := v.X-cx, v.Y-cy
		out[i] = r2.Vec{
			X: dx*cos - dy*sin + cx,
			Y: dx*sin + dy*cos + cy,
		}
	}
	return out
}

// PointInDiamond reports whether (px, py) lies strictly inside the
// quadrilateral defined by vertices (in order A, B, C, D). The test walks
// each edge and requires the point be strictly on the same side of all four;
// points exactly on an edge are treated as outside.
func PointInDiamond(px, py float64, vertices [4]r2.Vec) bool {
	edgeSign := func(ax, ay, bx, by float64) float64 {
		return (ax-bx)*(py-by) - (ay-by)*(px-bx)
	}
	a, b, c, d := vertices[0], vertices[1], vertices[2], vertices[3]
	s1 := edgeSign(a.X, a.Y, b.X, b.Y) < 0
	s2 := edgeSign(b.X, b.Y, c.X, c.Y) < 0
	s3 := edgeSign(c.X, c.Y, d.X, d.Y) < 0
	s4 := edgeSign(d.X, d.Y, a.X, a.Y) < 0
	return s1 == s2 && s2 == s3 && s3 == s4
}

// DiskMask returns a boolean (2r+1)x(2r+1) square, true at (i,j) iff the
// cell lies within radius r of the square's center.
func DiskMask(r int) [][]bool {
	side := 2*r + 1
	mask := make([][]bool, side)
	for i := range mask {
		mask[i] = make([]bool, side)
		di := i - r
		for j := 0; j < side; j++ {
			dj := j - r
			mask[i][j] = di*di+dj*dj <= r*r
		}
	}
	return mask
}
