package boundary

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/loop"
)

// Cursor builds and edits boundary loops one descriptor at a time. It
// wraps the arena cursor and keeps the compiled-element cache honest
// by invalidating on every mutation.
type Cursor struct {
	inner *loop.Cursor[Vertex]
	owner *Loop
}

// Head returns a cursor at the loop head.
func (b *Loop) Head() *Cursor {
	return &Cursor{inner: b.arena.Head(), owner: b}
}

// Tail returns a cursor at the loop tail, so inserts append in
// traversal order.
func (b *Loop) Tail() *Cursor {
	return &Cursor{inner: b.arena.Tail(), owner: b}
}

// At returns a cursor at the arena node with the given id.
func (b *Loop) At(id int) (*Cursor, error) {
	inner, err := b.arena.At(id)
	if err != nil {
		return nil, err
	}
	return &Cursor{inner: inner, owner: b}, nil
}

// ID returns the arena id of the current node.
func (c *Cursor) ID() int { return c.inner.ID() }

// Vertex returns the descriptor at the current node.
func (c *Cursor) Vertex() (Vertex, error) { return c.inner.Item() }

// MoveTo positions the cursor at the given id.
func (c *Cursor) MoveTo(id int) error { return c.inner.MoveTo(id) }

// MoveNext advances one node forward.
func (c *Cursor) MoveNext() error { return c.inner.MoveNext() }

// MovePrev moves one node backward.
func (c *Cursor) MovePrev() error { return c.inner.MovePrev() }

// InsertAfter inserts a descriptor after the cursor and moves onto it.
func (c *Cursor) InsertAfter(v Vertex) int {
	c.owner.invalidate()
	return c.inner.InsertAfter(v)
}

// InsertBefore inserts a descriptor before the cursor.
func (c *Cursor) InsertBefore(v Vertex) int {
	c.owner.invalidate()
	return c.inner.InsertBefore(v)
}

// Remove unlinks the current node and moves to the next one.
func (c *Cursor) Remove() error {
	c.owner.invalidate()
	return c.inner.Remove()
}

// SetVertex replaces the descriptor at the current node.
func (c *Cursor) SetVertex(v Vertex) error {
	c.owner.invalidate()
	return c.owner.arena.Set(c.inner.ID(), v)
}

// SegAbs starts a line element at the absolute point (x, y).
func (c *Cursor) SegAbs(x, y float64) int {
	return c.InsertAfter(SegVertex(x, y))
}

// SegRel starts a line element at the cursor's point displaced by
// (dx, dy). On an empty loop the displacement is taken from the
// origin.
func (c *Cursor) SegRel(dx, dy float64) int {
	p := c.currentPoint()
	return c.InsertAfter(SegVertex(p.X+dx, p.Y+dy))
}

// ArcAbs starts an arc element at the absolute point (x, y) sweeping
// about the absolute center (cx, cy).
func (c *Cursor) ArcAbs(x, y, cx, cy float64, clockwise bool) int {
	return c.InsertAfter(ArcVertex(x, y, cx, cy, clockwise))
}

// ArcRel starts an arc element at the cursor's point displaced by
// (dx, dy), with the center displaced by (dcx, dcy) from the new
// point.
func (c *Cursor) ArcRel(dx, dy, dcx, dcy float64, clockwise bool) int {
	p := c.currentPoint()
	return c.InsertAfter(ArcVertex(p.X+dx, p.Y+dy, p.X+dx+dcx, p.Y+dy+dcy, clockwise))
}

func (c *Cursor) currentPoint() r2.Vec {
	v, err := c.inner.Item()
	if err != nil {
		return geom.Pt(0, 0)
	}
	return v.Point
}
