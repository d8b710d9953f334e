package patience

// piles is the pile collection of one sort call.
//
// Piles are kept in creation order. A new pile only starts when its first
// element cannot follow any existing extremum, so it is smaller than (or, under
// TiesNewPile, no larger than) every extremum so far. Extrema are therefore
// non-increasing by index, and non-decreasing when the collection is read from
// the newest pile to the oldest. Appending to the chosen pile keeps this
// ordering because the chosen pile is the oldest one that qualifies: every
// older pile has an extremum the element could not follow.
type piles[I any, R Run[I, R]] struct {
	less   func(a, b I) bool
	ties   TiePolicy
	newRun func(first I) R
	runs   []R
}

// qualifies reports whether v may be appended to a pile ending in extremum.
func (p *piles[I, R]) qualifies(extremum, v I) bool {
	if p.ties == TiesNewPile {
		return p.less(extremum, v)
	}

	return !p.less(v, extremum)
}

// locate returns the index of the pile v should extend, or -1 when a new pile
// is needed. Among the qualifying piles it picks the one with the largest
// extremum, which keeps the pile count minimal.
func (p *piles[I, R]) locate(v I) int {
	// Qualifying piles form a suffix of runs; find where it starts.
	lo, hi := 0, len(p.runs)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if p.qualifies(p.runs[mid].Extremum(), v) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	if lo == len(p.runs) {
		return -1
	}

	return lo
}

// place puts v on the pile chosen by locate, starting a new pile if needed.
func (p *piles[I, R]) place(v I) {
	if i := p.locate(v); i >= 0 {
		p.runs[i].Append(v)

		return
	}

	p.runs = append(p.runs, p.newRun(v))
}
