package patience

// tournament merges runs pairwise, round after round, until one run is left
// and returns it together with the number of rounds and merges performed.
//
// Each round pairs adjacent runs starting from the newest end of the slice, so
// the short, recently created piles meet first. With an odd count the oldest
// run sits the round out. Results are written back into runs from the top down;
// a result never lands below the pair it came from, so the loop reuses the
// slice without clobbering runs it has not read yet. runs must not be empty.
func tournament[I any, R Run[I, R]](runs []R) (R, int, int) {
	rounds, merges := 0, 0

	for len(runs) > 1 {
		w := len(runs) - 1

		for i := len(runs) - 1; i > 0; i -= 2 {
			runs[w] = runs[i-1].MergeWith(runs[i])
			w--
			merges++
		}

		if len(runs)%2 == 1 {
			runs[w] = runs[0]
			w--
		}

		runs = runs[w+1:]
		rounds++
	}

	return runs[0], rounds, merges
}
