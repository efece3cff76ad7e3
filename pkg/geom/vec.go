package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DistEquals is the distance below which two points are considered
// coincident.
const DistEquals = 1e-6

// NumericZero is the threshold below which a determinant, cross
// product, or other raw numeric quantity is considered zero.
const NumericZero = 1e-10

// Pt is shorthand for constructing a point.
func Pt(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

// Dist returns the distance between two points.
func Dist(a, b r2.Vec) float64 { return r2.Norm(r2.Sub(a, b)) }

// PointsEqual reports whether two points coincide within DistEquals.
func PointsEqual(a, b r2.Vec) bool { return Dist(a, b) < DistEquals }

// PerpCCW returns v rotated +90 degrees.
func PerpCCW(v r2.Vec) r2.Vec { return r2.Vec{X: -v.Y, Y: v.X} }

// PerpCW returns v rotated -90 degrees.
func PerpCW(v r2.Vec) r2.Vec { return r2.Vec{X: v.Y, Y: -v.X} }

// AngleOf returns the polar angle of v in (-pi, pi].
func AngleOf(v r2.Vec) float64 { return math.Atan2(v.Y, v.X) }

// PolarVec returns the unit vector at the given polar angle scaled by r.
func PolarVec(theta, r float64) r2.Vec {
	return r2.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// Lerp returns the point a + t*(b-a).
func Lerp(a, b r2.Vec, t float64) r2.Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// NormalizeAngle wraps theta into [0, 2*pi).
func NormalizeAngle(theta float64) float64 {
	t := math.Mod(theta, 2*math.Pi)
	if t < 0 {
		t += 2 * math.Pi
	}
	return t
}

// CCWDelta returns the counter-clockwise sweep from theta0 to theta1
// in [0, 2*pi).
func CCWDelta(theta0, theta1 float64) float64 {
	return NormalizeAngle(theta1 - theta0)
}

// WrappedDelta returns the signed smallest angular difference between
// theta0 and theta1, in (-pi, pi].
func WrappedDelta(theta0, theta1 float64) float64 {
	d := NormalizeAngle(theta1 - theta0)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}
