package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Circle2 is a circle given by center and radius.
type Circle2 struct {
	Center r2.Vec
	Radius float64
}

// PointAtTheta returns the point on the circle at polar angle theta.
func (c Circle2) PointAtTheta(theta float64) r2.Vec {
	return r2.Add(c.Center, PolarVec(theta, c.Radius))
}

// ThetaOf returns the polar angle of p as seen from the center.
func (c Circle2) ThetaOf(p r2.Vec) float64 {
	return AngleOf(r2.Sub(p, c.Center))
}

// Contains reports whether p lies strictly inside the circle.
func (c Circle2) Contains(p r2.Vec) bool {
	return Dist(p, c.Center) < c.Radius
}

// Bounds returns the axis-aligned bounds of the full circle.
func (c Circle2) Bounds() Rect {
	r := r2.Vec{X: c.Radius, Y: c.Radius}
	return Rect{Min: r2.Sub(c.Center, r), Max: r2.Add(c.Center, r)}
}

// IntersectionsLine returns the 0, 1, or 2 points where the infinite
// line crosses the circle. The tangent case, where the center-line
// distance is within DistEquals of the radius, returns exactly one
// point.
func (c Circle2) IntersectionsLine(l Line2) []r2.Vec {
	tc := l.Project(c.Center)
	foot := l.PointAt(tc)
	offset := Dist(foot, c.Center)
	if math.Abs(offset-c.Radius) < DistEquals {
		return []r2.Vec{foot}
	}
	if offset > c.Radius {
		return nil
	}
	half := math.Sqrt(c.Radius*c.Radius - offset*offset)
	return []r2.Vec{l.PointAt(tc - half), l.PointAt(tc + half)}
}

// IntersectionsCircle returns the 0, 1, or 2 points where the two
// circles cross, via the radical-line construction. Separated or
// deeply nested circles yield no points.
func (c Circle2) IntersectionsCircle(o Circle2) []r2.Vec {
	d := Dist(c.Center, o.Center)
	if d < NumericZero {
		return nil
	}
	if d > c.Radius+o.Radius+DistEquals {
		return nil
	}
	if d < math.Abs(c.Radius-o.Radius)-DistEquals {
		return nil
	}
	// Distance from c.Center to the radical line along the center axis.
	a := (d*d + c.Radius*c.Radius - o.Radius*o.Radius) / (2 * d)
	axis := r2.Unit(r2.Sub(o.Center, c.Center))
	mid := r2.Add(c.Center, r2.Scale(a, axis))

	h2 := c.Radius*c.Radius - a*a
	if h2 < DistEquals*DistEquals {
		return []r2.Vec{mid}
	}
	h := math.Sqrt(h2)
	perp := r2.Scale(h, PerpCCW(axis))
	return []r2.Vec{r2.Add(mid, perp), r2.Sub(mid, perp)}
}

// TangentsTo returns the two points on the circle whose tangent lines
// pass through p, or nothing when p is inside the circle.
func (c Circle2) TangentsTo(p r2.Vec) []r2.Vec {
	d := Dist(p, c.Center)
	if d <= c.Radius {
		return nil
	}
	// The tangent points lie on the circle with the p-center span as
	// diameter.
	mid := Lerp(p, c.Center, 0.5)
	return c.IntersectionsCircle(Circle2{Center: mid, Radius: d / 2})
}
