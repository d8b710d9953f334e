package patience

// Piles runs only the distribution phase over s and returns the piles in
// creation order. s is not modified; each pile is a fresh slice.
func Piles[S ~[]E, E any](s S, less func(a, b E) bool, opts ...Option) []S {
	var o Options

	for _, opt := range opts {
		opt(&o)
	}

	p := distributeSlice(&arena[E]{less: less}, s, o.Ties)

	out := make([]S, len(p.runs))
	for i, run := range p.runs {
		out[i] = S(run.items)
	}

	return out
}

// PileCount returns the number of piles s distributes into. Under the default
// tie policy this is the minimum number of non-decreasing runs s can be split
// into, which equals the length of its longest strictly decreasing subsequence.
func PileCount[S ~[]E, E any](s S, less func(a, b E) bool, opts ...Option) int {
	return len(Piles(s, less, opts...))
}
