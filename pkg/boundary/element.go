package boundary

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/chazu/kerf/pkg/geom"
)

// Vertex is the descriptor stored at each arena node: the start point
// of one boundary element. A line element runs straight to the next
// vertex; an arc element sweeps around Center toward the next vertex,
// clockwise or counter-clockwise.
type Vertex struct {
	Point     r2.Vec
	IsArc     bool
	Center    r2.Vec
	Clockwise bool
}

// SegVertex returns a line-element descriptor starting at (x, y).
func SegVertex(x, y float64) Vertex {
	return Vertex{Point: geom.Pt(x, y)}
}

// ArcVertex returns an arc-element descriptor starting at (x, y)
// sweeping around (cx, cy).
func ArcVertex(x, y, cx, cy float64, clockwise bool) Vertex {
	return Vertex{Point: geom.Pt(x, y), IsArc: true, Center: geom.Pt(cx, cy), Clockwise: clockwise}
}

// ElementKind discriminates the element union.
type ElementKind int

const (
	// LineElement is a straight directed edge.
	LineElement ElementKind = iota
	// ArcElement is a directed circular arc edge.
	ArcElement
)

// Element is one compiled, immutable edge of a boundary: a tagged
// union of a line segment and an arc. Index is the element's position
// in the owning loop's compiled array; NodeID is the arena node the
// element was compiled from.
type Element struct {
	Kind   ElementKind
	Index  int
	NodeID int
	Seg    geom.Segment
	Arc    geom.Arc
}

// Start returns the element start point.
func (e Element) Start() r2.Vec {
	if e.Kind == ArcElement {
		return e.Arc.Start()
	}
	return e.Seg.Start
}

// End returns the element end point.
func (e Element) End() r2.Vec {
	if e.Kind == ArcElement {
		return e.Arc.End()
	}
	return e.Seg.End
}

// Length returns the arc length of the element.
func (e Element) Length() float64 {
	if e.Kind == ArcElement {
		return e.Arc.Length()
	}
	return e.Seg.Length()
}

// PointAt returns the surface point at arc length l from the start.
func (e Element) PointAt(l float64) r2.Vec {
	if e.Kind == ArcElement {
		return e.Arc.PointAt(l)
	}
	return e.Seg.PointAt(l)
}

// DirAt returns the unit tangent at arc length l from the start.
func (e Element) DirAt(l float64) r2.Vec {
	if e.Kind == ArcElement {
		return e.Arc.DirAt(l)
	}
	return e.Seg.Dir
}

// NormalAt returns the tangent at l rotated -90 degrees, which points
// out of the material on a counter-clockwise loop.
func (e Element) NormalAt(l float64) r2.Vec {
	return geom.PerpCW(e.DirAt(l))
}

// Midpoint returns the surface point halfway along the element.
func (e Element) Midpoint() r2.Vec { return e.PointAt(e.Length() / 2) }

// Bounds returns the element's axis-aligned bounds, padded by
// geom.DistEquals.
func (e Element) Bounds() geom.Rect {
	if e.Kind == ArcElement {
		return e.Arc.Bounds()
	}
	return e.Seg.Bounds()
}

// PositionOf returns the Position of a surface point known to lie on
// the element.
func (e Element) PositionOf(p r2.Vec) Position {
	var l float64
	if e.Kind == ArcElement {
		l = e.Arc.LengthToTheta(e.Arc.Circle.ThetaOf(p))
	} else {
		l = geom.Line2{Point: e.Seg.Start, Dir: e.Seg.Dir}.Project(p)
		l = math.Max(0, math.Min(l, e.Seg.Length()))
	}
	return Position{Index: e.Index, L: l, Point: p, Dir: e.DirAt(l), Normal: e.NormalAt(l)}
}

// Position identifies a surface point on a specific element at a
// parametric arc length, with the local tangent and outward normal.
type Position struct {
	Index  int
	L      float64
	Point  r2.Vec
	Dir    r2.Vec
	Normal r2.Vec
}

// IntersectionPair is one crossing between two loops: First lies on
// the subject's element, Second on the tool's.
type IntersectionPair struct {
	First  Position
	Second Position
}

// Intersections returns the crossings between e and o as positions on
// each. Collinear or co-circular overlaps report the midpoint of the
// shared range, counting as a single touch.
func (e Element) Intersections(o Element) []IntersectionPair {
	switch {
	case e.Kind == LineElement && o.Kind == LineElement:
		return e.lineLine(o)
	case e.Kind == LineElement && o.Kind == ArcElement:
		return e.lineArc(o)
	case e.Kind == ArcElement && o.Kind == LineElement:
		return swapPairs(o.lineArc(e))
	default:
		return e.arcArc(o)
	}
}

func (e Element) lineLine(o Element) []IntersectionPair {
	l, ok := e.Seg.Intersects(o.Seg)
	if !ok {
		return nil
	}
	p := e.Seg.PointAt(l)
	return []IntersectionPair{{First: e.PositionOf(p), Second: o.PositionOf(p)}}
}

func (e Element) lineArc(o Element) []IntersectionPair {
	var pairs []IntersectionPair
	for _, p := range o.Arc.Circle.IntersectionsLine(e.Seg.Line()) {
		t := e.Seg.Line().Project(p)
		if t < -geom.DistEquals || t > e.Seg.Length()+geom.DistEquals {
			continue
		}
		if !o.Arc.IsThetaOnArc(o.Arc.Circle.ThetaOf(p)) {
			continue
		}
		pairs = append(pairs, IntersectionPair{First: e.PositionOf(p), Second: o.PositionOf(p)})
	}
	return pairs
}

func (e Element) arcArc(o Element) []IntersectionPair {
	sameCircle := geom.PointsEqual(e.Arc.Circle.Center, o.Arc.Circle.Center) &&
		math.Abs(e.Arc.Circle.Radius-o.Arc.Circle.Radius) < geom.DistEquals
	if sameCircle {
		return e.cocircularOverlap(o)
	}
	var pairs []IntersectionPair
	for _, p := range e.Arc.Circle.IntersectionsCircle(o.Arc.Circle) {
		if !e.Arc.IsThetaOnArc(e.Arc.Circle.ThetaOf(p)) {
			continue
		}
		if !o.Arc.IsThetaOnArc(o.Arc.Circle.ThetaOf(p)) {
			continue
		}
		pairs = append(pairs, IntersectionPair{First: e.PositionOf(p), Second: o.PositionOf(p)})
	}
	return pairs
}

// cocircularOverlap reports the midpoint of the angular range shared
// by two arcs of the same circle, if any.
func (e Element) cocircularOverlap(o Element) []IntersectionPair {
	// Sample the other arc's endpoints and midpoint against e; the
	// innermost shared angle is a fair single representative.
	candidates := []r2.Vec{o.Arc.Start(), o.Arc.Midpoint(), o.Arc.End()}
	var lo, hi float64
	found := false
	for _, p := range candidates {
		theta := e.Arc.Circle.ThetaOf(p)
		if !e.Arc.IsThetaOnArc(theta) {
			continue
		}
		l := e.Arc.LengthToTheta(theta)
		if !found {
			lo, hi = l, l
			found = true
			continue
		}
		lo = math.Min(lo, l)
		hi = math.Max(hi, l)
	}
	if !found {
		return nil
	}
	p := e.Arc.PointAt((lo + hi) / 2)
	if !o.Arc.IsThetaOnArc(o.Arc.Circle.ThetaOf(p)) {
		return nil
	}
	return []IntersectionPair{{First: e.PositionOf(p), Second: o.PositionOf(p)}}
}

func swapPairs(pairs []IntersectionPair) []IntersectionPair {
	for i := range pairs {
		pairs[i].First, pairs[i].Second = pairs[i].Second, pairs[i].First
	}
	return pairs
}
