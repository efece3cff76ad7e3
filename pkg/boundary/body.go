package boundary

import "fmt"

// Body is one solid cuttable region: an outer boundary plus zero or
// more enclosed holes. The outer loop winds counter-clockwise; holes
// wind clockwise.
type Body struct {
	Outer  *Loop
	Inners []*Loop
}

// NewBody wraps an outer loop with no holes.
func NewBody(outer *Loop) *Body {
	return &Body{Outer: outer}
}

// Area returns the net area: the outer loop's area plus the (negative)
// areas of the holes.
func (b *Body) Area() float64 {
	area := b.Outer.Area()
	for _, in := range b.Inners {
		area += in.Area()
	}
	return area
}

// Copy returns a deep copy of the body.
func (b *Body) Copy() *Body {
	out := &Body{Outer: b.Outer.Copy()}
	for _, in := range b.Inners {
		out.Inners = append(out.Inners, in.Copy())
	}
	return out
}

// ApplyTool applies a tool loop to the body: the outer boundary and
// every hole are operated on in turn. A clockwise tool fully enclosed
// by the outer boundary becomes a new hole; a tool that destroys or
// splits the outer boundary is an error at this level, since the
// caller must decide how to re-partition bodies.
func (b *Body) ApplyTool(tool *Loop) error {
	res, err := Operate(b.Outer, tool)
	if err != nil {
		return fmt.Errorf("body outer: %w", err)
	}
	switch res.Outcome {
	case OutcomeDisjoint:
		return nil
	case OutcomeShapeEnclosesTool:
		if tool.IsPositive() == b.Outer.IsPositive() {
			return nil // swallowed without effect
		}
		return b.applyHoleTool(tool)
	case OutcomeMerged:
		if len(res.Loops) != 1 {
			return fmt.Errorf("body outer split into %d loops: %w", len(res.Loops), ErrBadTopology)
		}
		b.Outer = res.Loops[0]
		return b.reapplyHoles()
	case OutcomeSubsumed:
		b.Outer = res.Loops[0]
		return b.reapplyHoles()
	case OutcomeDestroyed:
		return fmt.Errorf("tool destroys body outer boundary: %w", ErrBadTopology)
	default:
		return fmt.Errorf("unexpected outcome %v: %w", res.Outcome, ErrBadTopology)
	}
}

// applyHoleTool merges a fully enclosed cutting tool into the hole
// set: holes the new hole crosses are merged into it, holes it
// swallows are dropped.
func (b *Body) applyHoleTool(tool *Loop) error {
	hole := tool.Copy()
	var kept []*Loop
	for _, in := range b.Inners {
		res, err := Operate(in, hole)
		if err != nil {
			return fmt.Errorf("body hole: %w", err)
		}
		switch res.Outcome {
		case OutcomeDisjoint:
			kept = append(kept, in)
		case OutcomeShapeEnclosesTool:
			// Existing hole already covers the tool.
			return nil
		case OutcomeSubsumed:
			// Tool swallows this hole; drop it.
		case OutcomeMerged:
			if len(res.Loops) != 1 {
				return fmt.Errorf("hole merge split into %d loops: %w", len(res.Loops), ErrBadTopology)
			}
			hole = res.Loops[0]
		default:
			return fmt.Errorf("unexpected hole outcome %v: %w", res.Outcome, ErrBadTopology)
		}
	}
	b.Inners = append(kept, hole)
	return nil
}

// reapplyHoles keeps only the holes still enclosed by the (possibly
// reshaped) outer boundary.
func (b *Body) reapplyHoles() error {
	var kept []*Loop
	for _, in := range b.Inners {
		if in.RelationTo(b.Outer) == EnclosedBy {
			kept = append(kept, in)
		}
	}
	b.Inners = kept
	return nil
}
