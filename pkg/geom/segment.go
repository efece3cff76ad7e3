package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Segment is a directed straight edge between two distinct points. The
// direction is normalized at construction; Index is the position of
// the segment in an owning boundary's element array, assigned when the
// boundary is compiled.
type Segment struct {
	Start r2.Vec
	End   r2.Vec
	Dir   r2.Vec
	Index int
}

// NewSegment constructs a segment, rejecting near-zero length.
func NewSegment(start, end r2.Vec) (Segment, error) {
	d := r2.Sub(end, start)
	if r2.Norm(d) < DistEquals {
		return Segment{}, fmt.Errorf("geom: segment from (%g,%g) to (%g,%g) is shorter than %g",
			start.X, start.Y, end.X, end.Y, DistEquals)
	}
	return Segment{Start: start, End: end, Dir: r2.Unit(d), Index: -1}, nil
}

// MustSegment is NewSegment for statically known-good endpoints.
func MustSegment(start, end r2.Vec) Segment {
	s, err := NewSegment(start, end)
	if err != nil {
		panic(err)
	}
	return s
}

// Length returns the segment length.
func (s Segment) Length() float64 { return Dist(s.Start, s.End) }

// Line returns the infinite carrier line of the segment.
func (s Segment) Line() Line2 { return Line2{Point: s.Start, Dir: s.Dir} }

// Normal returns the segment direction rotated -90 degrees.
func (s Segment) Normal() r2.Vec { return PerpCW(s.Dir) }

// PointAt returns the point at arc length l from the start.
func (s Segment) PointAt(l float64) r2.Vec {
	return r2.Add(s.Start, r2.Scale(l, s.Dir))
}

// Midpoint returns the segment midpoint.
func (s Segment) Midpoint() r2.Vec { return Lerp(s.Start, s.End, 0.5) }

// Reversed returns the segment traversed the opposite way.
func (s Segment) Reversed() Segment {
	return Segment{Start: s.End, End: s.Start, Dir: r2.Scale(-1, s.Dir), Index: s.Index}
}

// Bounds returns the axis-aligned bounds padded by DistEquals.
func (s Segment) Bounds() Rect {
	return RectFromPoints(s.Start, s.End).Expand(DistEquals)
}

// Offset translates the segment along its normal by d.
func (s Segment) Offset(d float64) Segment {
	n := r2.Scale(d, s.Normal())
	return Segment{Start: r2.Add(s.Start, n), End: r2.Add(s.End, n), Dir: s.Dir, Index: s.Index}
}

// DistanceTo returns the distance from p to the closest point on the
// segment.
func (s Segment) DistanceTo(p r2.Vec) float64 {
	t := r2.Dot(r2.Sub(p, s.Start), s.Dir)
	if t < 0 {
		return Dist(p, s.Start)
	}
	if t > s.Length() {
		return Dist(p, s.End)
	}
	return Dist(p, s.PointAt(t))
}

// Intersects returns the arc length along s at which the other segment
// crosses it, or false when the segments do not touch. Collinear
// overlapping segments report the midpoint of the shared range.
func (s Segment) Intersects(o Segment) (float64, bool) {
	t0, t1 := s.Line().IntersectionParams(o.Line())
	if math.IsNaN(t0) {
		return s.collinearOverlap(o)
	}
	if t0 < -DistEquals || t0 > s.Length()+DistEquals {
		return 0, false
	}
	if t1 < -DistEquals || t1 > o.Length()+DistEquals {
		return 0, false
	}
	return clamp(t0, 0, s.Length()), true
}

// collinearOverlap handles the degenerate case of parallel segments:
// if the two lie on the same carrier line and their projected ranges
// overlap, the midpoint of the overlap is reported.
func (s Segment) collinearOverlap(o Segment) (float64, bool) {
	if !s.Line().IsCollinearWith(o.Line()) {
		return 0, false
	}
	a := s.Line().Project(o.Start)
	b := s.Line().Project(o.End)
	lo, hi := math.Min(a, b), math.Max(a, b)
	lo = math.Max(lo, 0)
	hi = math.Min(hi, s.Length())
	if lo > hi+DistEquals {
		return 0, false
	}
	return clamp((lo+hi)/2, 0, s.Length()), true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
