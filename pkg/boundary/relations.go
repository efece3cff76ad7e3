package boundary

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/chazu/kerf/pkg/geom"
)

// Relation classifies how one loop sits relative to another.
type Relation int

const (
	// DisjointTo: the loops share no area and no boundary.
	DisjointTo Relation = iota
	// Encloses: the receiver fully contains the other loop.
	Encloses
	// EnclosedBy: the other loop fully contains the receiver.
	EnclosedBy
	// Intersects: at least one element pair crosses or touches.
	Intersects
)

func (r Relation) String() string {
	switch r {
	case DisjointTo:
		return "disjoint"
	case Encloses:
		return "encloses"
	case EnclosedBy:
		return "enclosed-by"
	case Intersects:
		return "intersects"
	default:
		return "unknown"
	}
}

// elemSpatial adapts an element to the R-tree Spatial interface.
type elemSpatial struct {
	rect rtreego.Rect
	elem Element
}

var _ rtreego.Spatial = (*elemSpatial)(nil)

func (s *elemSpatial) Bounds() rtreego.Rect { return s.rect }

// toRtreeRect converts a geom.Rect, padding so side lengths are
// strictly positive.
func toRtreeRect(r geom.Rect) rtreego.Rect {
	r = r.Expand(geom.DistEquals)
	rect, err := rtreego.NewRect(
		rtreego.Point{r.Min.X, r.Min.Y},
		[]float64{r.Width(), r.Height()},
	)
	if err != nil {
		// Expand guarantees positive lengths for finite input.
		panic("boundary: bad element bounds: " + err.Error())
	}
	return rect
}

// elementIndex builds an R-tree over the loop's elements, used as the
// BVH accelerating pairwise intersection scans. The index is built
// once per call and read-only afterwards.
func elementIndex(elems []Element) *rtreego.Rtree {
	rt := rtreego.NewTree(2, 4, 16)
	for _, e := range elems {
		e := e
		rt.Insert(&elemSpatial{rect: toRtreeRect(e.Bounds()), elem: e})
	}
	return rt
}

// IntersectionsWith returns every crossing between the receiver's
// elements and the other loop's, ordered with First on the receiver.
// Crossings closer than DistEquals are reported once.
func (b *Loop) IntersectionsWith(other *Loop) []IntersectionPair {
	if !b.Bounds().Intersects(other.Bounds()) {
		return nil
	}
	rt := elementIndex(other.Elements())
	var pairs []IntersectionPair
	seen := make(map[pointKey]bool)
	for _, e := range b.Elements() {
		for _, raw := range rt.SearchIntersect(toRtreeRect(e.Bounds())) {
			o := raw.(*elemSpatial).elem
			for _, pair := range e.Intersections(o) {
				k := keyOf(pair.First.Point)
				if seen[k] {
					continue
				}
				seen[k] = true
				pairs = append(pairs, pair)
			}
		}
	}
	return pairs
}

// SelfIntersections returns every crossing between non-adjacent
// element pairs of the loop. Adjacent elements share an endpoint,
// which is not a crossing, and are skipped.
func (b *Loop) SelfIntersections() []IntersectionPair {
	elems := b.Elements()
	n := len(elems)
	if n < 3 {
		return nil
	}
	rt := elementIndex(elems)
	var pairs []IntersectionPair
	seen := make(map[pointKey]bool)
	for _, e := range elems {
		for _, raw := range rt.SearchIntersect(toRtreeRect(e.Bounds())) {
			o := raw.(*elemSpatial).elem
			if o.Index <= e.Index {
				continue
			}
			if adjacentIndices(e.Index, o.Index, n) {
				continue
			}
			for _, pair := range e.Intersections(o) {
				// Shared endpoints of near-adjacent geometry are
				// touches, not crossings.
				if geom.PointsEqual(pair.First.Point, e.Start()) && geom.PointsEqual(pair.First.Point, o.End()) {
					continue
				}
				if geom.PointsEqual(pair.First.Point, e.End()) && geom.PointsEqual(pair.First.Point, o.Start()) {
					continue
				}
				k := keyOf(pair.First.Point)
				if seen[k] {
					continue
				}
				seen[k] = true
				pairs = append(pairs, pair)
			}
		}
	}
	return pairs
}

func adjacentIndices(i, j, n int) bool {
	if i == j {
		return true
	}
	return (i+1)%n == j || (j+1)%n == i
}

// RelationTo classifies the receiver against the other loop: a
// bounding-box short-circuit, then the element-pair intersection test,
// then point containment of one loop's representative point in the
// other.
func (b *Loop) RelationTo(other *Loop) Relation {
	if !b.Bounds().Intersects(other.Bounds()) {
		return DisjointTo
	}
	if len(b.IntersectionsWith(other)) > 0 {
		return Intersects
	}
	if other.ContainsPoint(b.Elements()[0].Midpoint()) {
		return EnclosedBy
	}
	if b.ContainsPoint(other.Elements()[0].Midpoint()) {
		return Encloses
	}
	return DisjointTo
}

// pointKey is a coordinate pair quantized at DistEquals scale, used to
// identify coincident points across loops.
type pointKey struct {
	x, y int64
}

func keyOf(p r2.Vec) pointKey {
	const q = geom.DistEquals * 4
	return pointKey{
		x: int64(math.Round(p.X / q)),
		y: int64(math.Round(p.Y / q)),
	}
}
