package loop

import "fmt"

// Cursor is the sole structural-mutation interface of a Loop. It wraps
// a loop plus a current node id; on an empty loop the current id is
// NoID and the first insert establishes the head.
type Cursor[T any] struct {
	loop *Loop[T]
	id   int
}

// Head returns a cursor positioned at the head node.
func (l *Loop[T]) Head() *Cursor[T] {
	return &Cursor[T]{loop: l, id: l.head}
}

// Tail returns a cursor positioned at the node before the head, so
// that InsertAfter appends in traversal order.
func (l *Loop[T]) Tail() *Cursor[T] {
	return &Cursor[T]{loop: l, id: l.TailID()}
}

// At returns a cursor positioned at the given id.
func (l *Loop[T]) At(id int) (*Cursor[T], error) {
	if _, ok := l.nodes[id]; !ok {
		return nil, fmt.Errorf("cursor at %d: %w", id, ErrNotFound)
	}
	return &Cursor[T]{loop: l, id: id}, nil
}

// ID returns the id of the current node, or NoID on an empty loop.
func (c *Cursor[T]) ID() int { return c.id }

// Item returns the item at the current node.
func (c *Cursor[T]) Item() (T, error) { return c.loop.Get(c.id) }

// MoveTo positions the cursor at the given id.
func (c *Cursor[T]) MoveTo(id int) error {
	if _, ok := c.loop.nodes[id]; !ok {
		return fmt.Errorf("move to %d: %w", id, ErrNotFound)
	}
	c.id = id
	return nil
}

// MoveToHead positions the cursor at the head node.
func (c *Cursor[T]) MoveToHead() { c.id = c.loop.head }

// MoveToTail positions the cursor at the node before the head.
func (c *Cursor[T]) MoveToTail() { c.id = c.loop.TailID() }

// MoveNext advances the cursor one node forward.
func (c *Cursor[T]) MoveNext() error {
	id, err := c.loop.NextID(c.id)
	if err != nil {
		return err
	}
	c.id = id
	return nil
}

// MovePrev moves the cursor one node backward.
func (c *Cursor[T]) MovePrev() error {
	id, err := c.loop.PrevID(c.id)
	if err != nil {
		return err
	}
	c.id = id
	return nil
}

// PeekNext returns the item after the current node without moving.
func (c *Cursor[T]) PeekNext() (T, error) {
	id, err := c.loop.NextID(c.id)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.loop.Get(id)
}

// PeekPrev returns the item before the current node without moving.
func (c *Cursor[T]) PeekPrev() (T, error) {
	id, err := c.loop.PrevID(c.id)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.loop.Get(id)
}

// SeekForward advances the cursor to the next node (starting with the
// node after the current one) whose item matches pred. The scan is
// bounded: after one full revolution without a match the cursor is
// left in place and ErrNotFound is returned.
func (c *Cursor[T]) SeekForward(pred func(T) bool) error {
	return c.seek(pred, c.loop.NextID)
}

// SeekBackward is SeekForward walking previous links.
func (c *Cursor[T]) SeekBackward(pred func(T) bool) error {
	return c.seek(pred, c.loop.PrevID)
}

func (c *Cursor[T]) seek(pred func(T) bool, step func(int) (int, error)) error {
	if c.loop.Count() == 0 {
		return fmt.Errorf("seek on empty loop: %w", ErrNotFound)
	}
	id := c.id
	for i := 0; i < c.loop.Count(); i++ {
		next, err := step(id)
		if err != nil {
			return err
		}
		id = next
		item, err := c.loop.Get(id)
		if err != nil {
			return err
		}
		if pred(item) {
			c.id = id
			return nil
		}
	}
	return fmt.Errorf("seek: no match: %w", ErrNotFound)
}

// InsertAfter inserts item after the current node and moves the cursor
// onto the new node. On an empty loop the item becomes the head.
func (c *Cursor[T]) InsertAfter(item T) int {
	id, err := c.loop.insertAfter(item, c.id)
	if err != nil {
		// The cursor id always names a live node; only an empty
		// loop reaches insertAfter with NoID, which succeeds.
		panic(fmt.Sprintf("loop: cursor desynced: %v", err))
	}
	c.id = id
	return id
}

// InsertBefore inserts item before the current node and leaves the
// cursor in place. On an empty loop the item becomes the head.
func (c *Cursor[T]) InsertBefore(item T) int {
	id, err := c.loop.insertBefore(item, c.id)
	if err != nil {
		panic(fmt.Sprintf("loop: cursor desynced: %v", err))
	}
	if c.loop.Count() == 1 {
		c.id = id
	}
	return id
}

// Remove unlinks the current node and moves the cursor to the next
// node (or NoID when the loop becomes empty).
func (c *Cursor[T]) Remove() error {
	next, err := c.loop.NextID(c.id)
	if err != nil {
		return err
	}
	if err := c.loop.remove(c.id); err != nil {
		return err
	}
	if c.loop.Count() == 0 {
		c.id = NoID
		return nil
	}
	c.id = next
	return nil
}
