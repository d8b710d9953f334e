// Package patience implements patience sort, a comparison sort in two phases.
//
// # Distribution
//
// Elements are read once, front to back. Each element is placed on the pile
// whose last element (its extremum) is the largest one the element can follow
// without breaking the pile's order. The pile is found with a binary search
// over the pile extrema, which stay monotone across the pile collection. When no
// pile can take the element a new pile is started. The result is the minimum
// number of ordered runs the input can be split into, so nearly sorted input
// produces very few piles.
//
// # Merging
//
// The piles are merged pairwise in rounds, newest piles first, until a single
// run is left. Merges favour the older pile on ties, which makes the whole sort
// stable.
//
// # Storage variants
//
// Slices are sorted by copying the piles back into the slice and merging
// adjacent segments there ([Sort], [SortFunc], [Sorter.Sort]). Lists from
// package linked are sorted by relinking their nodes: payloads are never copied
// and the caller's list is reused for the output ([SortList], [SortListFunc],
// [Sorter.SortList]).
//
// Example:
//
//	data := []int{1, 5, 1, 5, 12, 4, 104, 15, 2, 8}
//	patience.Sort(data)
//	// data is now [1 1 2 4 5 5 8 12 15 104]
//
//	byLen := patience.New(func(a, b string) bool { return len(a) < len(b) })
//	stats := byLen.Sort(words)
//	fmt.Println(stats.Piles, stats.Rounds)
package patience
