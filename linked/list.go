// Package linked provides a generic doubly-linked list whose nodes can be moved
// between lists in O(1) without copying their payload.
//
// The layout follows container/list (a sentinel root element closes the ring),
// but elements are typed and every element records the list that owns it. The
// Take* methods transfer ownership of an element from whatever list currently
// holds it to the receiver, which is what the patience sort linked variant relies
// on: nodes move from the caller's list into pile lists and back without ever
// being reallocated.
//
// A List is not safe for concurrent use.
package linked

import "iter"

// Element is a node of a List.
type Element[T any] struct {
	next, prev *Element[T]
	list       *List[T]

	// Value is the payload carried by the node.
	Value T
}

// Next returns the next list element or nil.
func (e *Element[T]) Next() *Element[T] {
	if p := e.next; e.list != nil && p != &e.list.root {
		return p
	}

	return nil
}

// Prev returns the previous list element or nil.
func (e *Element[T]) Prev() *Element[T] {
	if p := e.prev; e.list != nil && p != &e.list.root {
		return p
	}

	return nil
}

// List is a doubly-linked list. The zero value is an empty list ready to use.
type List[T any] struct {
	root Element[T]
	len  int
}

// New returns an initialized list holding the given values in order.
func New[T any](values ...T) *List[T] {
	l := new(List[T]).Init()

	for _, v := range values {
		l.PushBack(v)
	}

	return l
}

// Init initializes or clears list l.
func (l *List[T]) Init() *List[T] {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0

	return l
}

func (l *List[T]) lazyInit() {
	if l.root.next == nil {
		l.Init()
	}
}

// Len returns the number of elements of list l.
func (l *List[T]) Len() int {
	return l.len
}

// Front returns the first element of list l or nil if the list is empty.
func (l *List[T]) Front() *Element[T] {
	if l.len == 0 {
		return nil
	}

	return l.root.next
}

// Back returns the last element of list l or nil if the list is empty.
func (l *List[T]) Back() *Element[T] {
	if l.len == 0 {
		return nil
	}

	return l.root.prev
}

// link inserts a detached e after at and hands it to l.
func (l *List[T]) link(e, at *Element[T]) *Element[T] {
	e.prev = at
	e.next = at.next
	e.prev.next = e
	e.next.prev = e
	e.list = l
	l.len++

	return e
}

// unlink detaches e from its owner.
func unlink[T any](e *Element[T]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = nil
	e.prev = nil
	e.list.len--
	e.list = nil
}

// PushBack inserts a new element with value v at the back of list l.
func (l *List[T]) PushBack(v T) *Element[T] {
	l.lazyInit()

	return l.link(&Element[T]{Value: v}, l.root.prev)
}

// PushFront inserts a new element with value v at the front of list l.
func (l *List[T]) PushFront(v T) *Element[T] {
	l.lazyInit()

	return l.link(&Element[T]{Value: v}, &l.root)
}

// Remove removes e from l if e is an element of list l and returns its value.
func (l *List[T]) Remove(e *Element[T]) T {
	if e.list == l {
		unlink(e)
	}

	return e.Value
}

// TakeBack moves e, which may belong to any list (including l), to the back
// of l. The element keeps its identity and value.
func (l *List[T]) TakeBack(e *Element[T]) *Element[T] {
	l.lazyInit()

	if e.list == l && l.root.prev == e {
		return e
	}

	if e.list != nil {
		unlink(e)
	}

	return l.link(e, l.root.prev)
}

// TakeBefore moves e, which may belong to any list, so that it sits
// immediately before mark. mark must be an element of l.
func (l *List[T]) TakeBefore(e, mark *Element[T]) *Element[T] {
	if mark.list != l || e == mark {
		return e
	}

	if e.list != nil {
		unlink(e)
	}

	return l.link(e, mark.prev)
}

// TakeAll moves every element of other, in order, to the back of l. other is
// left empty. Taking from l itself is a no-op.
func (l *List[T]) TakeAll(other *List[T]) {
	if other == l {
		return
	}

	for e := other.Front(); e != nil; e = other.Front() {
		l.TakeBack(e)
	}
}

// All iterates over the values of l from front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for e := l.Front(); e != nil; e = e.Next() {
			if !yield(e.Value) {
				return
			}
		}
	}
}

// Values returns the values of l as a slice, front to back.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.len)

	for v := range l.All() {
		out = append(out, v)
	}

	return out
}
