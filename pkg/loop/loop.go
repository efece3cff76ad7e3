package loop

import (
	"errors"
	"fmt"
	"iter"
)

// NoID is the head sentinel for an empty loop and the "no node" result
// of lookups that return an id without an error.
const NoID = -1

// ErrNotFound is returned when a referenced node id does not exist in
// the loop, or when a bounded seek exhausts a full revolution without
// a match.
var ErrNotFound = errors.New("loop: node not found")

// node is one arena entry: the stored item plus neighbor ids.
type node[T any] struct {
	item T
	next int
	prev int
}

// Loop is a circular doubly-linked list of items of type T backed by a
// map from node id to node. A loop with a single node links that node
// to itself.
type Loop[T any] struct {
	nodes  map[int]node[T]
	head   int
	nextID int
}

// New creates an empty loop.
func New[T any]() *Loop[T] {
	return &Loop[T]{nodes: make(map[int]node[T]), head: NoID}
}

// FromItems creates a loop containing the given items in order.
func FromItems[T any](items ...T) *Loop[T] {
	l := New[T]()
	c := l.Tail()
	for _, item := range items {
		c.InsertAfter(item)
	}
	return l
}

// Count returns the number of nodes in the loop.
func (l *Loop[T]) Count() int { return len(l.nodes) }

// HeadID returns the id of the head node, or NoID if the loop is empty.
func (l *Loop[T]) HeadID() int { return l.head }

// TailID returns the id of the node before the head, or NoID if the
// loop is empty.
func (l *Loop[T]) TailID() int {
	if l.head == NoID {
		return NoID
	}
	return l.nodes[l.head].prev
}

// Get returns the item stored at id.
func (l *Loop[T]) Get(id int) (T, error) {
	n, ok := l.nodes[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("get %d: %w", id, ErrNotFound)
	}
	return n.item, nil
}

// Set replaces the item stored at id, leaving the structure unchanged.
func (l *Loop[T]) Set(id int, item T) error {
	n, ok := l.nodes[id]
	if !ok {
		return fmt.Errorf("set %d: %w", id, ErrNotFound)
	}
	n.item = item
	l.nodes[id] = n
	return nil
}

// NextID returns the id of the node after id.
func (l *Loop[T]) NextID(id int) (int, error) {
	n, ok := l.nodes[id]
	if !ok {
		return NoID, fmt.Errorf("next of %d: %w", id, ErrNotFound)
	}
	return n.next, nil
}

// PrevID returns the id of the node before id.
func (l *Loop[T]) PrevID(id int) (int, error) {
	n, ok := l.nodes[id]
	if !ok {
		return NoID, fmt.Errorf("prev of %d: %w", id, ErrNotFound)
	}
	return n.prev, nil
}

// insertAfter links a new node holding item after cursor and returns
// its id. Inserting into an empty loop ignores cursor and creates a
// self-linked head.
func (l *Loop[T]) insertAfter(item T, cursor int) (int, error) {
	id := l.nextID
	if len(l.nodes) == 0 {
		l.nodes[id] = node[T]{item: item, next: id, prev: id}
		l.head = id
		l.nextID++
		return id, nil
	}
	cn, ok := l.nodes[cursor]
	if !ok {
		return NoID, fmt.Errorf("insert after %d: %w", cursor, ErrNotFound)
	}
	after := cn.next
	an := l.nodes[after]

	l.nodes[id] = node[T]{item: item, next: after, prev: cursor}
	cn.next = id
	l.nodes[cursor] = cn
	if after == cursor {
		// Single-node loop: cn and an alias the same record.
		cn.prev = id
		cn.next = id
		l.nodes[cursor] = cn
	} else {
		an.prev = id
		l.nodes[after] = an
	}
	l.nextID++
	return id, nil
}

// insertBefore links a new node holding item before cursor.
func (l *Loop[T]) insertBefore(item T, cursor int) (int, error) {
	if len(l.nodes) == 0 {
		return l.insertAfter(item, cursor)
	}
	cn, ok := l.nodes[cursor]
	if !ok {
		return NoID, fmt.Errorf("insert before %d: %w", cursor, ErrNotFound)
	}
	return l.insertAfter(item, cn.prev)
}

// remove unlinks the node with the given id. Removing the head moves
// the head to the following node; removing the last node resets the
// head sentinel.
func (l *Loop[T]) remove(id int) error {
	n, ok := l.nodes[id]
	if !ok {
		return fmt.Errorf("remove %d: %w", id, ErrNotFound)
	}
	if n.next == id {
		delete(l.nodes, id)
		l.head = NoID
		return nil
	}
	pn := l.nodes[n.prev]
	if n.prev == n.next {
		// Two-node loop: pn is both neighbors, so the survivor must
		// relink to itself in one record.
		pn.next = n.prev
		pn.prev = n.prev
		l.nodes[n.prev] = pn
	} else {
		nn := l.nodes[n.next]
		pn.next = n.next
		nn.prev = n.prev
		l.nodes[n.prev] = pn
		l.nodes[n.next] = nn
	}
	delete(l.nodes, id)
	if l.head == id {
		l.head = n.next
	}
	return nil
}

// Reverse flips the traversal direction of the loop in place by
// swapping every node's next/previous links and re-anchoring the head
// at the former tail.
func (l *Loop[T]) Reverse() {
	if l.head == NoID {
		return
	}
	oldTail := l.nodes[l.head].prev
	for id, n := range l.nodes {
		n.next, n.prev = n.prev, n.next
		l.nodes[id] = n
	}
	l.head = oldTail
}

// FirstID scans forward from start (or the head when start is NoID)
// for the first item matching pred, wrapping at most once around the
// loop. It returns ErrNotFound if no item matches.
func (l *Loop[T]) FirstID(pred func(T) bool, start int) (int, error) {
	if l.head == NoID {
		return NoID, fmt.Errorf("first: empty loop: %w", ErrNotFound)
	}
	if start == NoID {
		start = l.head
	}
	if _, ok := l.nodes[start]; !ok {
		return NoID, fmt.Errorf("first from %d: %w", start, ErrNotFound)
	}
	id := start
	for {
		if pred(l.nodes[id].item) {
			return id, nil
		}
		id = l.nodes[id].next
		if id == start {
			return NoID, fmt.Errorf("first: no match: %w", ErrNotFound)
		}
	}
}

// Items returns a forward traversal of (id, item) pairs, one full
// revolution starting at start (or the head when start is NoID). Each
// call starts a fresh traversal.
func (l *Loop[T]) Items(start int) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if l.head == NoID {
			return
		}
		first := start
		if first == NoID {
			first = l.head
		}
		if _, ok := l.nodes[first]; !ok {
			return
		}
		id := first
		for {
			if !yield(id, l.nodes[id].item) {
				return
			}
			id = l.nodes[id].next
			if id == first {
				return
			}
		}
	}
}

// Edge is one consecutive pair produced by Edges.
type Edge[T any] struct {
	AID, BID int
	A, B     T
}

// Edges returns the consecutive pairs of one full revolution starting
// at start (or the head when start is NoID). A single-node loop yields
// one self-pair.
func (l *Loop[T]) Edges(start int) iter.Seq[Edge[T]] {
	return func(yield func(Edge[T]) bool) {
		for id, item := range l.Items(start) {
			next := l.nodes[id].next
			e := Edge[T]{AID: id, BID: next, A: item, B: l.nodes[next].item}
			if !yield(e) {
				return
			}
		}
	}
}

// IDs returns the node ids of one forward revolution from the head.
func (l *Loop[T]) IDs() []int {
	ids := make([]int, 0, len(l.nodes))
	for id := range l.Items(NoID) {
		ids = append(ids, id)
	}
	return ids
}

// Slice copies the items from start (inclusive) to end (exclusive),
// walking forward, into a new loop with fresh ids.
func (l *Loop[T]) Slice(start, end int) (*Loop[T], error) {
	if _, ok := l.nodes[start]; !ok {
		return nil, fmt.Errorf("slice start %d: %w", start, ErrNotFound)
	}
	if _, ok := l.nodes[end]; !ok {
		return nil, fmt.Errorf("slice end %d: %w", end, ErrNotFound)
	}
	out := New[T]()
	c := out.Tail()
	for id := start; id != end; id = l.nodes[id].next {
		c.InsertAfter(l.nodes[id].item)
	}
	return out, nil
}

// Copy returns a deep-structural copy: fresh ids, the same item values
// in the same order.
func (l *Loop[T]) Copy() *Loop[T] {
	out := New[T]()
	c := out.Tail()
	for _, item := range l.Items(NoID) {
		c.InsertAfter(item)
	}
	return out
}
