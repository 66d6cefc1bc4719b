// Package geom provides the 2D primitives the board editor is built on:
// points and axis-aligned rectangles in normalized device coordinates, and
// the conversion between a container's enclosing frame and its local 0..1
// frame. Frame conversion is what makes nested patterns self-similar: a
// pattern stored in local coordinates means the same thing inside every
// region that re-instances it.
package geom

import (
	"fmt"
	"math"
)

// Point is a position in a 2D coordinate frame.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in canonical form:
// MinX <= MaxX and MinY <= MaxY.
type Rect struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// NormalizeRect builds the canonical rectangle spanned by two arbitrary
// corner points, regardless of drag direction. p1 == p2 yields a degenerate
// rect; callers filter those (see the minimum drag size gate in scene).
func NormalizeRect(p1, p2 Point) Rect {
	return Rect{
		MinX: math.Min(p1.X, p2.X),
		MinY: math.Min(p1.Y, p2.Y),
		MaxX: math.Max(p1.X, p2.X),
		MaxY: math.Max(p1.Y, p2.Y),
	}
}

// Bounds returns the rectangle itself. A pattern and its boundary rectangle
// are distinct concepts (a pattern additionally carries frame semantics), so
// the accessor is named even though it is the identity on canonical rects.
func (r Rect) Bounds() Rect {
	return r
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// IsDegenerate reports whether the rect has zero width or height.
func (r Rect) IsDegenerate() bool {
	return r.Width() == 0 || r.Height() == 0
}

// ContainsStrict reports whether p lies strictly inside r. Boundary points
// do not count: strict containment is the tie-break rule that keeps the
// recursive hit-test well founded when regions share an edge.
func (r Rect) ContainsStrict(p Point) bool {
	return p.X > r.MinX && p.X < r.MaxX && p.Y > r.MinY && p.Y < r.MaxY
}

// mustFrame panics when r cannot serve as a frame container. Containers are
// non-degenerate by construction (the drag gate rejects undersized rects),
// so reaching this is a bug upstream, not a runtime condition to recover.
func (r Rect) mustFrame() {
	if r.IsDegenerate() {
		panic(fmt.Sprintf("geom: degenerate frame container %+v", r))
	}
}

// ToLocal projects a point from the container's enclosing frame into the
// container's local 0..1 frame.
func (r Rect) ToLocal(p Point) Point {
	r.mustFrame()
	return Point{
		X: (p.X - r.MinX) / r.Width(),
		Y: (p.Y - r.MinY) / r.Height(),
	}
}

// ToLocalRect applies ToLocal to both corners of o.
func (r Rect) ToLocalRect(o Rect) Rect {
	min := r.ToLocal(Point{X: o.MinX, Y: o.MinY})
	max := r.ToLocal(Point{X: o.MaxX, Y: o.MaxY})
	return Rect{MinX: min.X, MinY: min.Y, MaxX: max.X, MaxY: max.Y}
}

// ToOuter is the exact inverse of ToLocal: it maps a local-frame point back
// into the frame the container itself is expressed in.
func (r Rect) ToOuter(p Point) Point {
	r.mustFrame()
	return Point{
		X: r.MinX + p.X*r.Width(),
		Y: r.MinY + p.Y*r.Height(),
	}
}

// ToOuterRect applies ToOuter to both corners of o.
func (r Rect) ToOuterRect(o Rect) Rect {
	min := r.ToOuter(Point{X: o.MinX, Y: o.MinY})
	max := r.ToOuter(Point{X: o.MaxX, Y: o.MaxY})
	return Rect{MinX: min.X, MinY: min.Y, MaxX: max.X, MaxY: max.Y}
}
