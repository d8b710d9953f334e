package patience

import (
	"cmp"
	"context"
	"log/slog"
	"time"

	"github.com/amp-labs/patience/linked"
)

// Sort sorts s in place in ascending order.
func Sort[S ~[]E, E cmp.Ordered](s S) {
	SortFunc(s, cmp.Less[E])
}

// SortFunc sorts s in place as determined by less, which must be a strict
// weak order. The sort is stable.
func SortFunc[S ~[]E, E any](s S, less func(a, b E) bool) {
	sortSlice(s, less, TiesExtend)
}

// SortList sorts l in place in ascending order by relinking its elements.
func SortList[E cmp.Ordered](l *linked.List[E]) {
	SortListFunc(l, cmp.Less[E])
}

// SortListFunc sorts l in place as determined by less. No element is copied
// or reallocated: l keeps the same *Element values, only their order changes.
// The sort is stable.
func SortListFunc[E any](l *linked.List[E], less func(a, b E) bool) {
	sortList(l, less, TiesExtend)
}

// Sorter sorts with a fixed comparator and options, and reports Stats for
// every call. A Sorter holds no per-call state.
type Sorter[E any] struct {
	less func(a, b E) bool
	opts Options
}

// New returns a Sorter ordering elements by less. It panics if less is nil.
func New[E any](less func(a, b E) bool, opts ...Option) *Sorter[E] {
	if less == nil {
		panic("patience: nil less function")
	}

	s := &Sorter[E]{less: less}

	for _, opt := range opts {
		opt(&s.opts)
	}

	return s
}

// NewOrdered returns a Sorter using the natural order of E.
func NewOrdered[E cmp.Ordered](opts ...Option) *Sorter[E] {
	return New(cmp.Less[E], opts...)
}

// counting wraps less so that every call is tallied in n.
func counting[E any](less func(a, b E) bool, n *int) func(a, b E) bool {
	return func(a, b E) bool {
		*n++

		return less(a, b)
	}
}

// Sort sorts data in place and returns statistics about the run.
func (s *Sorter[E]) Sort(data []E) Stats {
	stats := Stats{Variant: VariantContiguous, Elements: len(data)}
	start := time.Now()

	stats.Piles, stats.Rounds, stats.Merges = sortSlice(data, counting(s.less, &stats.Comparisons), s.opts.Ties)
	stats.Duration = time.Since(start)

	s.report(stats)

	return stats
}

// SortList sorts l in place by relinking its elements and returns statistics
// about the run.
func (s *Sorter[E]) SortList(l *linked.List[E]) Stats {
	stats := Stats{Variant: VariantLinked, Elements: l.Len()}
	start := time.Now()

	stats.Piles, stats.Rounds, stats.Merges = sortList(l, counting(s.less, &stats.Comparisons), s.opts.Ties)
	stats.Duration = time.Since(start)

	s.report(stats)

	return stats
}

func (s *Sorter[E]) report(stats Stats) {
	if s.opts.Logger != nil {
		s.opts.Logger.LogAttrs(context.Background(), slog.LevelDebug, "patience sort finished",
			slog.Any("stats", stats))
	}

	if s.opts.Observer != nil {
		s.opts.Observer.ObserveSort(stats)
	}
}
