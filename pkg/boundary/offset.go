package boundary

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/chazu/kerf/pkg/geom"
)

// offsetCarrier is one element pushed along its normal, before the
// junctions with its neighbors are restored.
type offsetCarrier struct {
	kind      ElementKind
	seg       geom.Segment
	arc       geom.Arc
	origStart r2.Vec // shared vertex with the previous element, pre-offset
}

// Offset returns a new loop with every element pushed distance d
// along its outward normal: segments translate, counter-clockwise
// arcs grow their radius, clockwise arcs shrink. Adjacent offset
// elements are re-intersected to restore a closed boundary; elements
// that degenerate (arcs collapsing below zero radius, zero-length
// leftovers) are dropped. A positive d on a counter-clockwise loop
// grows the enclosed area.
func (b *Loop) Offset(d float64) *Loop {
	elems := b.Elements()

	// A lone full-circle arc has no junctions to restore.
	if len(elems) == 1 && elems[0].Kind == ArcElement {
		arc, ok := elems[0].Arc.Offset(d)
		if !ok {
			return NewLoop()
		}
		c := arc.Circle
		out := Circle(c.Center.X, c.Center.Y, c.Radius)
		if arc.Clockwise() {
			out.Reverse()
		}
		return out
	}

	var carriers []offsetCarrier
	for _, e := range elems {
		switch e.Kind {
		case LineElement:
			carriers = append(carriers, offsetCarrier{
				kind:      LineElement,
				seg:       e.Seg.Offset(d),
				origStart: e.Start(),
			})
		case ArcElement:
			arc, ok := e.Arc.Offset(d)
			if !ok {
				continue // arc collapsed, neighbors will meet directly
			}
			carriers = append(carriers, offsetCarrier{kind: ArcElement, arc: arc, origStart: e.Start()})
		}
	}
	if len(carriers) == 0 {
		return NewLoop()
	}

	out := NewLoop()
	cur := out.Tail()
	for i, c := range carriers {
		prev := carriers[(i+len(carriers)-1)%len(carriers)]
		p := junction(prev, c)
		if c.kind == ArcElement {
			// Junctions chosen off the circle (parallel fallback)
			// are snapped back onto it.
			p = snapToCircle(p, c.arc.Circle)
			cur.InsertAfter(Vertex{Point: p, IsArc: true, Center: c.arc.Circle.Center, Clockwise: c.arc.Clockwise()})
		} else {
			cur.InsertAfter(Vertex{Point: p})
		}
	}
	out.RemoveZeroLengthElements()
	if out.Count() > 0 {
		out.RemoveAdjacentRedundancies()
	}
	return out
}

// junction picks the point where two consecutive offset carriers meet:
// the carrier intersection closest to the pre-offset shared vertex,
// falling back to the midpoint of the two offset endpoints when the
// carriers no longer reach each other.
func junction(prev, cur offsetCarrier) r2.Vec {
	orig := cur.origStart
	fallback := geom.Lerp(endOf(prev), startOf(cur), 0.5)

	var candidates []r2.Vec
	switch {
	case prev.kind == LineElement && cur.kind == LineElement:
		if p, ok := prev.seg.Line().Intersection(cur.seg.Line()); ok {
			candidates = append(candidates, p)
		}
	case prev.kind == LineElement && cur.kind == ArcElement:
		candidates = cur.arc.Circle.IntersectionsLine(prev.seg.Line())
	case prev.kind == ArcElement && cur.kind == LineElement:
		candidates = prev.arc.Circle.IntersectionsLine(cur.seg.Line())
	default:
		candidates = prev.arc.Circle.IntersectionsCircle(cur.arc.Circle)
	}
	if len(candidates) == 0 {
		return fallback
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if geom.Dist(c, orig) < geom.Dist(best, orig) {
			best = c
		}
	}
	return best
}

func startOf(c offsetCarrier) r2.Vec {
	if c.kind == ArcElement {
		return c.arc.Start()
	}
	return c.seg.Start
}

func endOf(c offsetCarrier) r2.Vec {
	if c.kind == ArcElement {
		return c.arc.End()
	}
	return c.seg.End
}

func snapToCircle(p r2.Vec, c geom.Circle2) r2.Vec {
	v := r2.Sub(p, c.Center)
	if r2.Norm(v) < geom.NumericZero {
		return c.PointAtTheta(0)
	}
	return r2.Add(c.Center, r2.Scale(c.Radius, r2.Unit(v)))
}
