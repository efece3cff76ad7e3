package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Arc is a directed circular arc: a circle, a start angle, and a
// signed sweep. A positive sweep runs counter-clockwise. A sweep of
// +-2*pi is a full circle. Index is assigned when an owning boundary
// is compiled.
type Arc struct {
	Circle Circle2
	Theta0 float64
	Sweep  float64
	Index  int
}

// NewArc constructs an arc from absolute start/end points, a center,
// and a direction. It rejects endpoints that are not equidistant from
// the center within DistEquals. Coincident endpoints produce a full
// circle.
func NewArc(start, end, center r2.Vec, clockwise bool) (Arc, error) {
	r0 := Dist(start, center)
	r1 := Dist(end, center)
	if r0 < DistEquals {
		return Arc{}, fmt.Errorf("geom: arc start coincides with center (%g,%g)", center.X, center.Y)
	}
	if math.Abs(r0-r1) > DistEquals {
		return Arc{}, fmt.Errorf("geom: arc endpoints not equidistant from center: %g vs %g", r0, r1)
	}
	c := Circle2{Center: center, Radius: r0}
	theta0 := c.ThetaOf(start)
	theta1 := c.ThetaOf(end)
	sweep := CCWDelta(theta0, theta1)
	full := sweep < NumericZero || sweep > 2*math.Pi-NumericZero
	if full {
		sweep = 2 * math.Pi
	}
	if clockwise {
		if full {
			sweep = -2 * math.Pi
		} else {
			sweep -= 2 * math.Pi
		}
	}
	return Arc{Circle: c, Theta0: theta0, Sweep: sweep, Index: -1}, nil
}

// Clockwise reports whether the arc sweeps clockwise.
func (a Arc) Clockwise() bool { return a.Sweep < 0 }

// Theta1 returns the end angle of the arc.
func (a Arc) Theta1() float64 { return a.Theta0 + a.Sweep }

// Start returns the start point of the arc.
func (a Arc) Start() r2.Vec { return a.Circle.PointAtTheta(a.Theta0) }

// End returns the end point of the arc.
func (a Arc) End() r2.Vec { return a.Circle.PointAtTheta(a.Theta1()) }

// Length returns the arc length.
func (a Arc) Length() float64 { return math.Abs(a.Sweep) * a.Circle.Radius }

// IsFullCircle reports whether the arc spans the whole circle.
func (a Arc) IsFullCircle() bool {
	return math.Abs(a.Sweep) > 2*math.Pi-NumericZero
}

// PointAt returns the point at arc length l from the start.
func (a Arc) PointAt(l float64) r2.Vec {
	return a.Circle.PointAtTheta(a.ThetaAt(l))
}

// ThetaAt returns the polar angle at arc length l from the start.
func (a Arc) ThetaAt(l float64) float64 {
	dt := l / a.Circle.Radius
	if a.Clockwise() {
		dt = -dt
	}
	return a.Theta0 + dt
}

// DirAt returns the unit tangent at arc length l from the start.
func (a Arc) DirAt(l float64) r2.Vec {
	radial := PolarVec(a.ThetaAt(l), 1)
	if a.Clockwise() {
		return PerpCW(radial)
	}
	return PerpCCW(radial)
}

// Midpoint returns the point halfway along the arc.
func (a Arc) Midpoint() r2.Vec { return a.PointAt(a.Length() / 2) }

// Reversed returns the arc traversed the opposite way.
func (a Arc) Reversed() Arc {
	return Arc{Circle: a.Circle, Theta0: a.Theta1(), Sweep: -a.Sweep, Index: a.Index}
}

// IsThetaOnArc reports whether the polar angle theta falls within the
// swept range, respecting direction and allowing DistEquals of angular
// slack at the ends.
func (a Arc) IsThetaOnArc(theta float64) bool {
	if a.IsFullCircle() {
		return true
	}
	slack := DistEquals
	if a.Circle.Radius > NumericZero {
		slack = DistEquals / a.Circle.Radius
	}
	var d float64
	if a.Clockwise() {
		d = CCWDelta(theta, a.Theta0)
	} else {
		d = CCWDelta(a.Theta0, theta)
	}
	if d <= math.Abs(a.Sweep)+slack {
		return true
	}
	// theta may sit just before the start on the wrapped side.
	return d >= 2*math.Pi-slack
}

// LengthToTheta returns the arc length from the start to the given
// polar angle, assuming IsThetaOnArc holds.
func (a Arc) LengthToTheta(theta float64) float64 {
	var d float64
	if a.Clockwise() {
		d = CCWDelta(theta, a.Theta0)
	} else {
		d = CCWDelta(a.Theta0, theta)
	}
	if d > math.Abs(a.Sweep) {
		// Angular slack at the start of the arc wraps to ~2*pi.
		if 2*math.Pi-d < d-math.Abs(a.Sweep) {
			d = 0
		} else {
			d = math.Abs(a.Sweep)
		}
	}
	return d * a.Circle.Radius
}

// Bounds returns the axis-aligned bounds of the swept portion of the
// circle: both endpoints plus every quadrant extreme falling on the
// arc, padded by DistEquals.
func (a Arc) Bounds() Rect {
	if a.IsFullCircle() {
		return a.Circle.Bounds().Expand(DistEquals)
	}
	r := RectFromPoints(a.Start(), a.End())
	for i := 0; i < 4; i++ {
		theta := float64(i) * math.Pi / 2
		if a.IsThetaOnArc(theta) {
			r = r.ExtendPoint(a.Circle.PointAtTheta(theta))
		}
	}
	return r.Expand(DistEquals)
}

// SegmentArea returns the signed area between the arc and its chord:
// positive for counter-clockwise sweeps.
func (a Arc) SegmentArea() float64 {
	s := math.Abs(a.Sweep)
	area := a.Circle.Radius * a.Circle.Radius / 2 * (s - math.Sin(s))
	if a.Clockwise() {
		return -area
	}
	return area
}

// Offset grows or shrinks the arc radius by d along the arc's outward
// normal: a counter-clockwise arc grows, a clockwise arc shrinks. A
// non-positive resulting radius yields false.
func (a Arc) Offset(d float64) (Arc, bool) {
	nr := a.Circle.Radius + d
	if a.Clockwise() {
		nr = a.Circle.Radius - d
	}
	if nr < DistEquals {
		return Arc{}, false
	}
	out := a
	out.Circle.Radius = nr
	return out, true
}
