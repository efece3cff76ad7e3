package boundary

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chazu/kerf/pkg/geom"
)

// ErrBadTopology is returned when a boolean traversal cannot produce
// a consistent set of closed loops from its inputs.
var ErrBadTopology = errors.New("boundary: unsupported topology")

// Outcome describes what a boolean operation did.
type Outcome int

const (
	// OutcomeDisjoint: the tool never touched the subject; the
	// subject is returned unchanged.
	OutcomeDisjoint Outcome = iota
	// OutcomeMerged: the loops crossed and were spliced into one or
	// more result loops.
	OutcomeMerged
	// OutcomeSubsumed: the tool entirely replaces the subject
	// (same-sign nesting with the tool outside).
	OutcomeSubsumed
	// OutcomeDestroyed: opposite-sign nesting cancels the subject to
	// nothing.
	OutcomeDestroyed
	// OutcomeShapeEnclosesTool: the subject fully contains the tool
	// and remains dominant; the caller decides whether the tool
	// survives as a hole.
	OutcomeShapeEnclosesTool
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDisjoint:
		return "disjoint"
	case OutcomeMerged:
		return "merged"
	case OutcomeSubsumed:
		return "subsumed"
	case OutcomeDestroyed:
		return "destroyed"
	case OutcomeShapeEnclosesTool:
		return "shape-encloses-tool"
	default:
		return "unknown"
	}
}

// Result is the output of Operate: an outcome plus zero or more
// loops. Inputs are never mutated.
type Result struct {
	Outcome Outcome
	Loops   []*Loop
}

// Operate applies the tool loop to the subject loop. Winding encodes
// intent: a counter-clockwise tool adds material, a clockwise tool
// cuts it away. Depending on how the loops relate the result is the
// untouched subject, a replacement, nothing at all, or one or more
// merged loops spliced at the crossing points.
func Operate(subject, tool *Loop) (Result, error) {
	if err := subject.Validate(); err != nil {
		return Result{}, fmt.Errorf("subject: %w", err)
	}
	if err := tool.Validate(); err != nil {
		return Result{}, fmt.Errorf("tool: %w", err)
	}

	sameSign := subject.IsPositive() == tool.IsPositive()

	switch subject.RelationTo(tool) {
	case DisjointTo:
		return Result{Outcome: OutcomeDisjoint, Loops: []*Loop{subject.Copy()}}, nil

	case Encloses:
		// The tool is swallowed whole; whether it survives as a hole
		// is the caller's call (see Body.ApplyTool).
		return Result{Outcome: OutcomeShapeEnclosesTool, Loops: []*Loop{subject.Copy()}}, nil

	case EnclosedBy:
		if sameSign {
			return Result{Outcome: OutcomeSubsumed, Loops: []*Loop{tool.Copy()}}, nil
		}
		return Result{Outcome: OutcomeDestroyed}, nil

	default:
		loops, err := mergeIntersecting(subject, tool, sameSign)
		if err != nil {
			return Result{}, err
		}
		return Result{Outcome: OutcomeMerged, Loops: loops}, nil
	}
}

// mergeIntersecting splices both loops at every crossing and walks
// the combined edge graph, keeping subject edges outside the tool
// region and tool edges on the side selected by the sign combination
// (outside the subject for a union, inside for a cut).
func mergeIntersecting(subject, tool *Loop, sameSign bool) ([]*Loop, error) {
	a := subject.Copy()
	b := tool.Copy()

	pairs := a.IntersectionsWith(b)
	if len(pairs) == 0 {
		return nil, fmt.Errorf("merge: crossing loops lost their intersections: %w", ErrBadTopology)
	}
	splice(a, pairs, true)
	splice(b, pairs, false)
	a.RemoveZeroLengthElements()
	b.RemoveZeroLengthElements()

	edges := collectEdges(a, b, subject, tool, sameSign)
	if len(edges) == 0 {
		return nil, nil
	}
	return stitch(edges)
}

// splice inserts a vertex into the loop at every crossing position,
// walking each element's crossings in ascending arc length. Crossings
// landing on an existing vertex are skipped.
func splice(b *Loop, pairs []IntersectionPair, first bool) {
	pos := func(p IntersectionPair) Position {
		if first {
			return p.First
		}
		return p.Second
	}

	byElem := make(map[int][]Position)
	for _, p := range pairs {
		byElem[pos(p).Index] = append(byElem[pos(p).Index], pos(p))
	}

	elems := b.Elements()
	for idx, positions := range byElem {
		e := elems[idx]
		sort.Slice(positions, func(i, j int) bool { return positions[i].L < positions[j].L })

		c, err := b.At(e.NodeID)
		if err != nil {
			continue
		}
		base, err := c.Vertex()
		if err != nil {
			continue
		}
		for _, p := range positions {
			if p.L < geom.DistEquals || p.L > e.Length()-geom.DistEquals {
				continue // lands on an existing vertex
			}
			nv := Vertex{Point: p.Point, IsArc: base.IsArc, Center: base.Center, Clockwise: base.Clockwise}
			c.InsertAfter(nv)
		}
	}
}

// mergeEdge is one kept directed edge of the spliced graph.
type mergeEdge struct {
	v        Vertex
	from, to pointKey
	fromTool bool
	used     bool
}

// collectEdges classifies every spliced element of both loops by its
// midpoint. Subject edges survive when they are not inside the tool
// region; tool edges survive outside the subject for a same-sign
// merge and inside it for an opposite-sign cut. An edge lying on the
// other loop's boundary is kept from the subject side only, so shared
// edges appear exactly once.
func collectEdges(a, b, subject, tool *Loop, sameSign bool) []mergeEdge {
	var edges []mergeEdge

	for _, e := range a.Elements() {
		mid := e.Midpoint()
		if !tool.OnBoundary(mid) && tool.ContainsPoint(mid) {
			continue
		}
		edges = append(edges, edgeOf(e, false))
	}
	for _, e := range b.Elements() {
		mid := e.Midpoint()
		if subject.OnBoundary(mid) {
			continue
		}
		if subject.ContainsPoint(mid) == sameSign {
			continue
		}
		edges = append(edges, edgeOf(e, true))
	}
	return edges
}

func edgeOf(e Element, fromTool bool) mergeEdge {
	v := Vertex{Point: e.Start()}
	if e.Kind == ArcElement {
		v.IsArc = true
		v.Center = e.Arc.Circle.Center
		v.Clockwise = e.Arc.Clockwise()
	}
	return mergeEdge{v: v, from: keyOf(e.Start()), to: keyOf(e.End()), fromTool: fromTool}
}

// stitch walks the kept edges into closed loops. Every step consults
// the visited flags and the walk is bounded by the total edge count;
// a graph that cannot close is an error, never a hang.
func stitch(edges []mergeEdge) ([]*Loop, error) {
	outgoing := make(map[pointKey][]int)
	for i, e := range edges {
		outgoing[e.from] = append(outgoing[e.from], i)
	}

	var out []*Loop
	for seed := range edges {
		if edges[seed].used {
			continue
		}
		var verts []Vertex
		cur := seed
		for steps := 0; ; steps++ {
			if steps > len(edges) {
				return nil, fmt.Errorf("merge: traversal exceeded edge budget: %w", ErrBadTopology)
			}
			edges[cur].used = true
			verts = append(verts, edges[cur].v)

			to := edges[cur].to
			if to == edges[seed].from {
				break // closed
			}
			next := pickNext(edges, outgoing[to], edges[cur].fromTool)
			if next < 0 {
				return nil, fmt.Errorf("merge: dead end at (%v): %w", edges[cur].v.Point, ErrBadTopology)
			}
			cur = next
		}
		l := FromVertices(verts...)
		l.RemoveZeroLengthElements()
		if l.Count() > 0 {
			l.RemoveAdjacentRedundancies()
		}
		if !l.IsNullSet() {
			out = append(out, l)
		}
	}
	return out, nil
}

// pickNext chooses the next unused outgoing edge, preferring to
// switch loops at a junction; this is what carries the traversal
// across each splice point.
func pickNext(edges []mergeEdge, candidates []int, curFromTool bool) int {
	best := -1
	for _, i := range candidates {
		if edges[i].used {
			continue
		}
		if edges[i].fromTool != curFromTool {
			return i
		}
		if best < 0 {
			best = i
		}
	}
	return best
}
