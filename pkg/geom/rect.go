package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	Min r2.Vec
	Max r2.Vec
}

// EmptyRect returns a rectangle that unions as the identity: every
// point is outside it and any union replaces it.
func EmptyRect() Rect {
	return Rect{
		Min: r2.Vec{X: math.Inf(1), Y: math.Inf(1)},
		Max: r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// RectFromPoints returns the smallest rectangle containing all points.
func RectFromPoints(pts ...r2.Vec) Rect {
	r := EmptyRect()
	for _, p := range pts {
		r = r.ExtendPoint(p)
	}
	return r
}

// IsEmpty reports whether the rectangle contains no points.
func (r Rect) IsEmpty() bool { return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y }

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() r2.Vec {
	return r2.Vec{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// ExtendPoint grows the rectangle to contain p.
func (r Rect) ExtendPoint(p r2.Vec) Rect {
	return Rect{
		Min: r2.Vec{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: r2.Vec{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(o Rect) Rect {
	return r.ExtendPoint(o.Min).ExtendPoint(o.Max)
}

// Expand pads the rectangle by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{
		Min: r2.Vec{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: r2.Vec{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// Contains reports whether p lies inside or on the rectangle.
func (r Rect) Contains(p r2.Vec) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && r.Max.X >= o.Min.X &&
		r.Min.Y <= o.Max.Y && r.Max.Y >= o.Min.Y
}
