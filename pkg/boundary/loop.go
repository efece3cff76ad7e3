package boundary

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/loop"
)

// ErrDegenerate is returned for loops that cannot support a geometric
// query: empty loops and loops whose descriptors do not describe valid
// elements.
var ErrDegenerate = errors.New("boundary: degenerate loop")

// Loop is a closed 2D boundary: an arena loop of vertex descriptors
// compiled on demand into directed line/arc elements. The zero value
// is not usable; construct with NewLoop.
type Loop struct {
	arena *loop.Loop[Vertex]

	// Compiled element cache. Invalidated at every structural
	// mutation site; rebuilt by Elements.
	elems    []Element
	compiled bool
}

// NewLoop creates an empty boundary loop.
func NewLoop() *Loop {
	return &Loop{arena: loop.New[Vertex]()}
}

// FromVertices creates a loop from descriptors in traversal order.
func FromVertices(vs ...Vertex) *Loop {
	b := NewLoop()
	c := b.Tail()
	for _, v := range vs {
		c.InsertAfter(v)
	}
	return b
}

// invalidate drops the compiled element cache. Every structural
// mutation must call it.
func (b *Loop) invalidate() {
	b.elems = nil
	b.compiled = false
}

// Count returns the number of vertex descriptors.
func (b *Loop) Count() int { return b.arena.Count() }

// IsNullSet reports whether the loop has been reduced to nothing.
func (b *Loop) IsNullSet() bool { return b.arena.Count() == 0 }

// Vertices returns the descriptors in traversal order.
func (b *Loop) Vertices() []Vertex {
	out := make([]Vertex, 0, b.arena.Count())
	for _, v := range b.arena.Items(loop.NoID) {
		out = append(out, v)
	}
	return out
}

// Points returns the descriptor start points in traversal order.
func (b *Loop) Points() []r2.Vec {
	out := make([]r2.Vec, 0, b.arena.Count())
	for _, v := range b.arena.Items(loop.NoID) {
		out = append(out, v.Point)
	}
	return out
}

// compile builds the element array from the descriptors. Zero-length
// line elements are not compiled; an arc descriptor whose end point
// coincides with its start compiles to a full circle.
func (b *Loop) compile() ([]Element, error) {
	var elems []Element
	for e := range b.arena.Edges(loop.NoID) {
		v, w := e.A, e.B
		if !v.IsArc {
			if geom.PointsEqual(v.Point, w.Point) {
				continue
			}
			seg, err := geom.NewSegment(v.Point, w.Point)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", e.AID, err)
			}
			seg.Index = len(elems)
			elems = append(elems, Element{Kind: LineElement, Index: seg.Index, NodeID: e.AID, Seg: seg})
			continue
		}
		arc, err := geom.NewArc(v.Point, w.Point, v.Center, v.Clockwise)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", e.AID, err)
		}
		arc.Index = len(elems)
		elems = append(elems, Element{Kind: ArcElement, Index: arc.Index, NodeID: e.AID, Arc: arc})
	}
	if len(elems) == 0 {
		return nil, fmt.Errorf("no elements: %w", ErrDegenerate)
	}
	return elems, nil
}

// Validate checks that the loop compiles into at least one valid
// element: arcs must have endpoints equidistant from their centers and
// the loop must not be empty.
func (b *Loop) Validate() error {
	_, err := b.compile()
	return err
}

// Elements returns the compiled element array. The result is cached
// until the next structural mutation. Elements panics on a loop that
// fails Validate; callers holding externally built descriptors should
// Validate first.
func (b *Loop) Elements() []Element {
	if b.compiled {
		return b.elems
	}
	elems, err := b.compile()
	if err != nil {
		panic(fmt.Sprintf("boundary: %v", err))
	}
	b.elems = elems
	b.compiled = true
	return b.elems
}

// Area returns the signed enclosed area: the shoelace sum over element
// chords plus the closed-form circular-segment term of every arc.
// Positive area means counter-clockwise winding.
func (b *Loop) Area() float64 {
	if b.IsNullSet() {
		return 0
	}
	var area float64
	for _, e := range b.Elements() {
		s, t := e.Start(), e.End()
		area += (s.X*t.Y - t.X*s.Y) / 2
		if e.Kind == ArcElement {
			area += e.Arc.SegmentArea()
		}
	}
	return area
}

// IsPositive reports whether the loop winds counter-clockwise, i.e.
// encloses material rather than a hole.
func (b *Loop) IsPositive() bool { return b.Area() > 0 }

// Bounds returns the union of all element bounds.
func (b *Loop) Bounds() geom.Rect {
	r := geom.EmptyRect()
	for _, e := range b.Elements() {
		r = r.Union(e.Bounds())
	}
	return r
}

// ContainsPoint reports whether p lies inside the region enclosed by
// the loop, independent of winding direction. Points on the boundary
// itself are reported as contained. The test casts a ray and counts
// crossings; a cast that grazes a vertex or runs tangent to an arc is
// retried in a rotated direction.
func (b *Loop) ContainsPoint(p r2.Vec) bool {
	if b.OnBoundary(p) {
		return true
	}
	theta := 0.5354 // arbitrary start direction, away from axis alignment
	for try := 0; try < 16; try++ {
		inside, clean := b.castParity(p, geom.PolarVec(theta, 1))
		if clean {
			return inside
		}
		theta += 0.7399
	}
	// Every direction grazed; accept the last parity.
	inside, _ := b.castParity(p, geom.PolarVec(theta, 1))
	return inside
}

// OnBoundary reports whether p lies on one of the loop's elements
// within DistEquals.
func (b *Loop) OnBoundary(p r2.Vec) bool {
	for _, e := range b.Elements() {
		switch e.Kind {
		case LineElement:
			if e.Seg.DistanceTo(p) < geom.DistEquals {
				return true
			}
		case ArcElement:
			d := geom.Dist(p, e.Arc.Circle.Center)
			if math.Abs(d-e.Arc.Circle.Radius) < geom.DistEquals &&
				e.Arc.IsThetaOnArc(e.Arc.Circle.ThetaOf(p)) {
				return true
			}
		}
	}
	return false
}

// castParity counts boundary crossings of the ray from p along dir.
// clean is false when the cast grazed an endpoint or ran tangent, in
// which case the parity is unreliable.
func (b *Loop) castParity(p, dir r2.Vec) (inside, clean bool) {
	ray := geom.Line2{Point: p, Dir: dir}
	crossings := 0
	for _, e := range b.Elements() {
		switch e.Kind {
		case LineElement:
			t0, t1 := ray.IntersectionParams(e.Seg.Line())
			if math.IsNaN(t0) {
				continue
			}
			if t0 < 0 {
				continue
			}
			if t1 < -geom.DistEquals || t1 > e.Seg.Length()+geom.DistEquals {
				continue
			}
			if t1 < geom.DistEquals || t1 > e.Seg.Length()-geom.DistEquals {
				return false, false
			}
			crossings++
		case ArcElement:
			pts := e.Arc.Circle.IntersectionsLine(ray)
			if len(pts) == 1 {
				// Tangent ray: unreliable.
				if ray.Project(pts[0]) > 0 && e.Arc.IsThetaOnArc(e.Arc.Circle.ThetaOf(pts[0])) {
					return false, false
				}
				continue
			}
			for _, q := range pts {
				if ray.Project(q) < 0 {
					continue
				}
				theta := e.Arc.Circle.ThetaOf(q)
				if !e.Arc.IsThetaOnArc(theta) {
					continue
				}
				if geom.PointsEqual(q, e.Arc.Start()) || geom.PointsEqual(q, e.Arc.End()) {
					return false, false
				}
				crossings++
			}
		}
	}
	return crossings%2 == 1, true
}

// Reverse flips the traversal direction in place. Arc attributes move
// to the node holding each element's former end point, with the sweep
// direction flipped; ids are preserved. Area changes sign.
func (b *Loop) Reverse() {
	if b.arena.Count() == 0 {
		return
	}
	type attr struct {
		id int
		v  Vertex
	}
	var updates []attr
	for e := range b.arena.Edges(loop.NoID) {
		nv := Vertex{Point: e.B.Point, IsArc: e.A.IsArc, Center: e.A.Center, Clockwise: !e.A.Clockwise}
		if !e.A.IsArc {
			nv.Center = r2.Vec{}
			nv.Clockwise = false
		}
		updates = append(updates, attr{id: e.BID, v: nv})
	}
	for _, u := range updates {
		if err := b.arena.Set(u.id, u.v); err != nil {
			panic(fmt.Sprintf("boundary: reverse lost node %d: %v", u.id, err))
		}
	}
	b.arena.Reverse()
	b.invalidate()
}

// Reversed returns a reversed copy, leaving the receiver untouched.
func (b *Loop) Reversed() *Loop {
	out := b.Copy()
	out.Reverse()
	return out
}

// Copy returns a deep copy with fresh node ids.
func (b *Loop) Copy() *Loop {
	return &Loop{arena: b.arena.Copy()}
}

// Translate moves every vertex and arc center by d, in place.
func (b *Loop) Translate(d r2.Vec) {
	b.mapPoints(func(p r2.Vec) r2.Vec { return r2.Add(p, d) }, false)
}

// Rotate rotates the loop by theta radians about the given pivot, in
// place.
func (b *Loop) Rotate(theta float64, about r2.Vec) {
	b.mapPoints(func(p r2.Vec) r2.Vec { return r2.Rotate(p, theta, about) }, false)
}

// MirrorX mirrors the loop across the vertical line x = axis, in
// place. Mirroring reverses winding: arc sweep directions flip and
// the area changes sign.
func (b *Loop) MirrorX(axis float64) {
	b.mapPoints(func(p r2.Vec) r2.Vec { return geom.Pt(2*axis-p.X, p.Y) }, true)
}

// MirrorY mirrors the loop across the horizontal line y = axis, in
// place.
func (b *Loop) MirrorY(axis float64) {
	b.mapPoints(func(p r2.Vec) r2.Vec { return geom.Pt(p.X, 2*axis-p.Y) }, true)
}

// mapPoints applies f to every vertex point and arc center. When the
// map reflects (flips orientation), arc direction flags are inverted.
func (b *Loop) mapPoints(f func(r2.Vec) r2.Vec, reflects bool) {
	for id, v := range b.arena.Items(loop.NoID) {
		v.Point = f(v.Point)
		if v.IsArc {
			v.Center = f(v.Center)
			if reflects {
				v.Clockwise = !v.Clockwise
			}
		}
		if err := b.arena.Set(id, v); err != nil {
			panic(fmt.Sprintf("boundary: transform lost node %d: %v", id, err))
		}
	}
	b.invalidate()
}
