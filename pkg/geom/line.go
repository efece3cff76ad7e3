package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Line2 is an infinite directed line: a point plus a unit direction.
// The normal is the direction rotated -90 degrees, so for a
// counter-clockwise boundary the normal points out of the material.
type Line2 struct {
	Point r2.Vec
	Dir   r2.Vec
}

// NewLine2 constructs a line through p with direction d (normalized).
func NewLine2(p, d r2.Vec) Line2 {
	return Line2{Point: p, Dir: r2.Unit(d)}
}

// Normal returns the line direction rotated -90 degrees.
func (l Line2) Normal() r2.Vec { return PerpCW(l.Dir) }

// PointAt returns the point at parameter t along the line.
func (l Line2) PointAt(t float64) r2.Vec {
	return r2.Add(l.Point, r2.Scale(t, l.Dir))
}

// Project returns the parameter of the closest point on the line to p.
func (l Line2) Project(p r2.Vec) float64 {
	return r2.Dot(r2.Sub(p, l.Point), l.Dir)
}

// DistanceTo returns the perpendicular distance from p to the line.
func (l Line2) DistanceTo(p r2.Vec) float64 {
	return math.Abs(r2.Cross(l.Dir, r2.Sub(p, l.Point)))
}

// Offset translates the line along its normal by d.
func (l Line2) Offset(d float64) Line2 {
	return Line2{Point: r2.Add(l.Point, r2.Scale(d, l.Normal())), Dir: l.Dir}
}

// IntersectionParams solves for the parameters (t0 along l, t1 along
// o) of the intersection of the two lines. Parallel lines (the
// determinant of the two directions is below NumericZero) yield
// (NaN, NaN).
func (l Line2) IntersectionParams(o Line2) (float64, float64) {
	det := r2.Cross(l.Dir, o.Dir)
	if math.Abs(det) < NumericZero {
		return math.NaN(), math.NaN()
	}
	d := r2.Sub(o.Point, l.Point)
	t0 := r2.Cross(d, o.Dir) / det
	t1 := r2.Cross(d, l.Dir) / det
	return t0, t1
}

// Intersection returns the intersection point of the two lines, or
// false when they are parallel.
func (l Line2) Intersection(o Line2) (r2.Vec, bool) {
	t0, _ := l.IntersectionParams(o)
	if math.IsNaN(t0) {
		return r2.Vec{}, false
	}
	return l.PointAt(t0), true
}

// IsCollinearWith reports whether o lies on the same infinite line,
// regardless of direction.
func (l Line2) IsCollinearWith(o Line2) bool {
	if math.Abs(r2.Cross(l.Dir, o.Dir)) > NumericZero {
		return false
	}
	return l.DistanceTo(o.Point) < DistEquals
}

// Ray2 is a half-infinite directed line used for containment casts.
type Ray2 struct {
	Origin r2.Vec
	Dir    r2.Vec
}

// NewRay2 constructs a ray from origin o along d (normalized).
func NewRay2(o, d r2.Vec) Ray2 {
	return Ray2{Origin: o, Dir: r2.Unit(d)}
}

// Line returns the infinite carrier line of the ray.
func (r Ray2) Line() Line2 { return Line2{Point: r.Origin, Dir: r.Dir} }
