package patience

// arena is the storage shared by the segments of one slice sort: the caller's
// slice the piles are written back into, and a scratch buffer for merging.
type arena[T any] struct {
	dst     []T
	scratch []T
	less    func(a, b T) bool
}

// segment is the slice-backed Run. While distributing, items is the pile's own
// buffer. After place, items is a window [lo, lo+len) of arena.dst, and
// neighbouring segments are adjacent in dst.
type segment[T any] struct {
	arena *arena[T]
	items []T
	lo    int
}

func (s *segment[T]) Append(v T) {
	s.items = append(s.items, v)
}

func (s *segment[T]) Extremum() T {
	return s.items[len(s.items)-1]
}

func (s *segment[T]) Len() int {
	return len(s.items)
}

// place copies the pile into dst at offset and returns the offset after it.
func (s *segment[T]) place(offset int) int {
	n := copy(s.arena.dst[offset:], s.items)
	s.lo = offset
	s.items = s.arena.dst[offset : offset+n]

	return offset + n
}

// MergeWith merges the adjacent segment other (which starts where s ends) into
// s. The left half is parked in scratch and the output is written from the
// left edge of the window; the write position never passes the unread part of
// the right half, so the right half needs no copy.
func (s *segment[T]) MergeWith(other *segment[T]) *segment[T] {
	a := s.arena
	n := len(s.items)
	out := a.dst[s.lo : s.lo+n+len(other.items)]

	if n == 0 || len(other.items) == 0 || !a.less(other.items[0], s.items[n-1]) {
		s.items = out

		return s
	}

	left := append(a.scratch[:0], s.items...)
	right := other.items

	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		// Ties go to the left, older run.
		if a.less(right[j], left[i]) {
			out[k] = right[j]
			j++
		} else {
			out[k] = left[i]
			i++
		}

		k++
	}

	copy(out[k:], left[i:])

	clear(left)
	a.scratch = left[:0]
	s.items = out

	return s
}

// sortSlice runs both phases over data and returns the pile count, rounds and
// merges.
func sortSlice[T any](data []T, less func(a, b T) bool, ties TiePolicy) (int, int, int) {
	if len(data) < 2 {
		return len(data), 0, 0
	}

	ar := &arena[T]{dst: data, less: less}
	p := distributeSlice(ar, data, ties)

	if len(p.runs) == 1 {
		// A single pile holds the input in its original order.
		return 1, 0, 0
	}

	offset := 0
	for _, run := range p.runs {
		offset = run.place(offset)
	}

	count := len(p.runs)
	_, rounds, merges := tournament(p.runs)

	return count, rounds, merges
}

func distributeSlice[T any](ar *arena[T], data []T, ties TiePolicy) *piles[T, *segment[T]] {
	p := &piles[T, *segment[T]]{
		less: ar.less,
		ties: ties,
		newRun: func(first T) *segment[T] {
			return &segment[T]{arena: ar, items: []T{first}}
		},
	}

	for _, v := range data {
		p.place(v)
	}

	return p
}
