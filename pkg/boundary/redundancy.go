package boundary

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/loop"
)

// RemoveZeroLengthElements drops every element whose length is below
// DistEquals, returning the number of descriptors removed. A
// single-node full-circle arc is never zero length and is kept.
func (b *Loop) RemoveZeroLengthElements() int {
	removed := 0
	for {
		id, ok := b.findZeroLength()
		if !ok {
			return removed
		}
		c, err := b.At(id)
		if err != nil {
			return removed
		}
		c.Remove()
		removed++
	}
}

func (b *Loop) findZeroLength() (int, bool) {
	if b.arena.Count() < 2 {
		return loop.NoID, false
	}
	for e := range b.arena.Edges(loop.NoID) {
		v, w := e.A, e.B
		if !v.IsArc {
			if geom.PointsEqual(v.Point, w.Point) {
				return e.AID, true
			}
			continue
		}
		arc, err := geom.NewArc(v.Point, w.Point, v.Center, v.Clockwise)
		if err != nil {
			continue
		}
		if !arc.IsFullCircle() && arc.Length() < geom.DistEquals {
			return e.AID, true
		}
	}
	return loop.NoID, false
}

// RemoveAdjacentRedundancies collapses consecutive collinear line
// elements into one, and consecutive arcs on the same circle sweeping
// the same way into one. Running it a second time removes nothing:
// the scan repeats internally until no change remains.
func (b *Loop) RemoveAdjacentRedundancies() int {
	removed := 0
	for {
		id, ok := b.findRedundantJoint()
		if !ok {
			return removed
		}
		c, err := b.At(id)
		if err != nil {
			return removed
		}
		c.Remove()
		removed++
	}
}

// findRedundantJoint returns the middle descriptor of a collapsible
// consecutive pair.
func (b *Loop) findRedundantJoint() (int, bool) {
	if b.arena.Count() < 3 {
		return loop.NoID, false
	}
	for e := range b.arena.Edges(loop.NoID) {
		u, v := e.A, e.B
		next, err := b.arena.NextID(e.BID)
		if err != nil {
			continue
		}
		w, err := b.arena.Get(next)
		if err != nil {
			continue
		}
		if !u.IsArc && !v.IsArc {
			if collinearRun(u.Point, v.Point, w.Point) {
				return e.BID, true
			}
			continue
		}
		if u.IsArc && v.IsArc && cocircularRun(u, v, w) {
			return e.BID, true
		}
	}
	return loop.NoID, false
}

// collinearRun reports whether b sits on the straight run from a to c,
// continuing in the same direction.
func collinearRun(a, b, c r2.Vec) bool {
	ab := r2.Sub(b, a)
	bc := r2.Sub(c, b)
	lab, lbc := geom.Dist(a, b), geom.Dist(b, c)
	if lab < geom.DistEquals || lbc < geom.DistEquals {
		return false
	}
	cross := ab.X*bc.Y - ab.Y*bc.X
	if math.Abs(cross)/(lab*lbc) > geom.NumericZero {
		return false
	}
	return ab.X*bc.X+ab.Y*bc.Y > 0
}

// cocircularRun reports whether two consecutive arcs share a circle
// and direction and together sweep less than a full turn, so the
// middle descriptor can be dropped.
func cocircularRun(u, v Vertex, w Vertex) bool {
	if u.Clockwise != v.Clockwise {
		return false
	}
	if !geom.PointsEqual(u.Center, v.Center) {
		return false
	}
	r0 := geom.Dist(u.Point, u.Center)
	r1 := geom.Dist(v.Point, v.Center)
	if math.Abs(r0-r1) > geom.DistEquals {
		return false
	}
	a1, err := geom.NewArc(u.Point, v.Point, u.Center, u.Clockwise)
	if err != nil {
		return false
	}
	a2, err := geom.NewArc(v.Point, w.Point, v.Center, v.Clockwise)
	if err != nil {
		return false
	}
	combined := math.Abs(a1.Sweep) + math.Abs(a2.Sweep)
	return combined < 2*math.Pi-geom.NumericZero
}

// RemoveThinSections removes zero-area slivers: a path that goes out
// along one element and immediately back along the next. Removal can
// cascade and may reduce the loop to the null set.
func (b *Loop) RemoveThinSections() int {
	removed := 0
	for {
		ida, idb, ok := b.findThinSection()
		if !ok {
			break
		}
		for _, id := range []int{ida, idb} {
			if c, err := b.At(id); err == nil {
				c.Remove()
				removed++
			}
		}
	}
	// A lone line descriptor left behind is a zero-length self-loop.
	if b.arena.Count() == 1 {
		id := b.arena.HeadID()
		if v, err := b.arena.Get(id); err == nil && !v.IsArc {
			if c, err := b.At(id); err == nil {
				c.Remove()
				removed++
			}
		}
	}
	return removed
}

// findThinSection returns the node pair (e, f) of two consecutive
// elements where f exactly retraces e.
func (b *Loop) findThinSection() (int, int, bool) {
	if b.arena.Count() < 2 {
		return loop.NoID, loop.NoID, false
	}
	for e := range b.arena.Edges(loop.NoID) {
		u, v := e.A, e.B
		next, err := b.arena.NextID(e.BID)
		if err != nil {
			continue
		}
		w, err := b.arena.Get(next)
		if err != nil {
			continue
		}
		if !geom.PointsEqual(u.Point, w.Point) {
			continue
		}
		if retraces(u, v) {
			return e.AID, e.BID, true
		}
	}
	return loop.NoID, loop.NoID, false
}

// retraces reports whether the element from v back to u's point runs
// back along the element from u to v.
func retraces(u, v Vertex) bool {
	if u.IsArc != v.IsArc {
		return false
	}
	if !u.IsArc {
		return true // straight out, straight back between the same points
	}
	if u.Clockwise == v.Clockwise {
		return false
	}
	if !geom.PointsEqual(u.Center, v.Center) {
		return false
	}
	return math.Abs(geom.Dist(u.Point, u.Center)-geom.Dist(v.Point, v.Center)) < geom.DistEquals
}
