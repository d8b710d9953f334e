package patience

import "github.com/amp-labs/patience/linked"

// chain is the list-backed Run. It owns its nodes: appending or merging takes
// them from wherever they currently live.
type chain[T any] struct {
	list *linked.List[T]
	less func(a, b *linked.Element[T]) bool
}

func (c *chain[T]) Append(e *linked.Element[T]) {
	c.list.TakeBack(e)
}

func (c *chain[T]) Extremum() *linked.Element[T] {
	return c.list.Back()
}

func (c *chain[T]) Len() int {
	return c.list.Len()
}

// MergeWith relinks the nodes of other into c. A node of other only moves in
// front of a node of c when it is strictly less, so c wins ties.
func (c *chain[T]) MergeWith(other *chain[T]) *chain[T] {
	mark := c.list.Front()

	for e := other.list.Front(); e != nil; e = other.list.Front() {
		for mark != nil && !c.less(e, mark) {
			mark = mark.Next()
		}

		if mark == nil {
			c.list.TakeAll(other.list)

			break
		}

		c.list.TakeBefore(e, mark)
	}

	return c
}

// sortList runs both phases over l, relinking its nodes, and returns the pile
// count, rounds and merges. l ends up holding the same nodes in order.
func sortList[T any](l *linked.List[T], less func(a, b T) bool, ties TiePolicy) (int, int, int) {
	if l.Len() < 2 {
		return l.Len(), 0, 0
	}

	p := distributeList(l, less, ties)

	count := len(p.runs)
	result, rounds, merges := tournament(p.runs)

	l.TakeAll(result.list)

	return count, rounds, merges
}

// distributeList drains l into piles. l is the pool of unassigned nodes; each
// node leaves it for exactly one pile.
func distributeList[T any](l *linked.List[T], less func(a, b T) bool, ties TiePolicy) *piles[*linked.Element[T], *chain[T]] {
	nodeLess := func(a, b *linked.Element[T]) bool {
		return less(a.Value, b.Value)
	}

	p := &piles[*linked.Element[T], *chain[T]]{
		less: nodeLess,
		ties: ties,
		newRun: func(first *linked.Element[T]) *chain[T] {
			c := &chain[T]{list: linked.New[T](), less: nodeLess}
			c.list.TakeBack(first)

			return c
		},
	}

	for e := l.Front(); e != nil; e = l.Front() {
		p.place(e)
	}

	return p
}
