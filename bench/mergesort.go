package bench

// MergeSort sorts s with a top-down merge sort. It is stable and uses one
// scratch buffer of len(s)/2 elements. It serves as the classic baseline the
// patience sort is measured against.
func MergeSort[E any](s []E, less func(a, b E) bool) {
	if len(s) < 2 {
		return
	}

	scratch := make([]E, len(s)/2)
	mergeSort(s, scratch, less)
}

func mergeSort[E any](s, scratch []E, less func(a, b E) bool) {
	if len(s) < 2 {
		return
	}

	mid := len(s) / 2
	mergeSort(s[:mid], scratch, less)
	mergeSort(s[mid:], scratch, less)

	if !less(s[mid], s[mid-1]) {
		return
	}

	left := scratch[:mid]
	copy(left, s[:mid])

	i, j, k := 0, mid, 0
	for i < len(left) && j < len(s) {
		if less(s[j], left[i]) {
			s[k] = s[j]
			j++
		} else {
			s[k] = left[i]
			i++
		}

		k++
	}

	copy(s[k:], left[i:])
}
