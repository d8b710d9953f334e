package patience

import (
	"cmp"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/amp-labs/patience/linked"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntPiles(ties TiePolicy) *piles[int, *segment[int]] {
	ar := &arena[int]{less: cmp.Less[int]}

	return &piles[int, *segment[int]]{
		less: ar.less,
		ties: ties,
		newRun: func(first int) *segment[int] {
			return &segment[int]{arena: ar, items: []int{first}}
		},
	}
}

func extrema(p *piles[int, *segment[int]]) []int {
	out := make([]int, len(p.runs))
	for i, run := range p.runs {
		out[i] = run.Extremum()
	}

	return out
}

func TestLocate_InvariantAfterEveryInsertion(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(11, 12))

	for _, policy := range []TiePolicy{TiesExtend, TiesNewPile} {
		p := newIntPiles(policy)

		for range 3000 {
			p.place(rng.IntN(100))

			ext := extrema(p)
			for i := 1; i < len(ext); i++ {
				// Read newest-first, extrema never decrease.
				require.GreaterOrEqual(t, ext[i-1], ext[i], "policy %s extrema %v", policy, ext)
			}

			for _, run := range p.runs {
				for j := 1; j < len(run.items); j++ {
					if policy == TiesNewPile {
						require.Less(t, run.items[j-1], run.items[j])
					} else {
						require.LessOrEqual(t, run.items[j-1], run.items[j])
					}
				}
			}
		}
	}
}

func TestLocate_PicksLargestQualifyingExtremum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		extrema  []int
		value    int
		ties     TiePolicy
		expected int
	}{
		{name: "empty collection", extrema: nil, value: 1, expected: -1},
		{name: "smaller than all", extrema: []int{9, 5, 2}, value: 1, expected: -1},
		{name: "larger than all", extrema: []int{9, 5, 2}, value: 10, expected: 0},
		{name: "between", extrema: []int{9, 5, 2}, value: 6, expected: 1},
		{name: "equal extends", extrema: []int{9, 5, 2}, value: 5, expected: 1},
		{name: "equal strict", extrema: []int{9, 5, 2}, value: 5, ties: TiesNewPile, expected: 2},
		{name: "equal to smallest strict", extrema: []int{9, 5, 2}, value: 2, ties: TiesNewPile, expected: -1},
		{name: "duplicate extrema", extrema: []int{7, 7, 7, 3}, value: 7, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newIntPiles(tt.ties)
			for _, e := range tt.extrema {
				p.runs = append(p.runs, p.newRun(e))
			}

			assert.Equal(t, tt.expected, p.locate(tt.value))
		})
	}
}

func TestTournament_KeepsOlderRunsFirst(t *testing.T) {
	t.Parallel()

	// Runs are lists so the merge order is visible in the result: with ties,
	// the older run's nodes come first.
	less := func(a, b *linked.Element[string]) bool { return a.Value[0] < b.Value[0] }

	var runs []*chain[string]

	for _, v := range []string{"a0", "a1", "a2", "a3", "a4"} {
		c := &chain[string]{list: linked.New[string](), less: less}
		c.list.PushBack(v)
		runs = append(runs, c)
	}

	result, rounds, merges := tournament(runs)

	assert.Equal(t, 3, rounds)
	assert.Equal(t, 4, merges)
	assert.Equal(t, []string{"a0", "a1", "a2", "a3", "a4"}, result.list.Values())
}

// labelRun is a run that only tracks which runs were merged into it.
type labelRun struct {
	label  string
	merges *[][2]string
}

func (r *labelRun) Append(string) {}

func (r *labelRun) Extremum() string { return r.label }

func (r *labelRun) Len() int { return len(r.label) }

func (r *labelRun) MergeWith(other *labelRun) *labelRun {
	*r.merges = append(*r.merges, [2]string{r.label, other.label})

	return &labelRun{label: r.label + other.label, merges: r.merges}
}

func TestTournament_MergeOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		runs     int
		expected [][2]string
		rounds   int
	}{
		{
			name:     "single run",
			runs:     1,
			expected: nil,
			rounds:   0,
		},
		{
			name:     "even count",
			runs:     4,
			expected: [][2]string{{"2", "3"}, {"0", "1"}, {"01", "23"}},
			rounds:   2,
		},
		{
			// Round one merges (3,4) and (1,2) while 0 waits, round two
			// merges (12,34) while 0 waits again.
			name:     "odd count leaves the oldest run out",
			runs:     5,
			expected: [][2]string{{"3", "4"}, {"1", "2"}, {"12", "34"}, {"0", "1234"}},
			rounds:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var merges [][2]string

			runs := make([]*labelRun, tt.runs)
			for i := range runs {
				runs[i] = &labelRun{label: strconv.Itoa(i), merges: &merges}
			}

			result, rounds, count := tournament[string](runs)

			assert.Equal(t, tt.expected, merges)
			assert.Equal(t, tt.rounds, rounds)
			assert.Len(t, merges, count)
			assert.Len(t, result.label, tt.runs)
		})
	}
}

func TestSegment_MergeWith(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		left     []int
		right    []int
		expected []int
	}{
		{name: "interleaved", left: []int{1, 4, 6}, right: []int{2, 3, 7, 8}, expected: []int{1, 2, 3, 4, 6, 7, 8}},
		{name: "already ordered", left: []int{1, 2}, right: []int{2, 3}, expected: []int{1, 2, 2, 3}},
		{name: "right entirely first", left: []int{5, 6}, right: []int{1, 2}, expected: []int{1, 2, 5, 6}},
		{name: "single each", left: []int{2}, right: []int{1}, expected: []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ar := &arena[int]{dst: make([]int, len(tt.left)+len(tt.right)), less: cmp.Less[int]}
			left := &segment[int]{arena: ar, items: tt.left}
			right := &segment[int]{arena: ar, items: tt.right}

			right.place(left.place(0))

			merged := left.MergeWith(right)

			assert.Equal(t, tt.expected, merged.items)
			assert.Equal(t, tt.expected, ar.dst)
			assert.Equal(t, len(tt.expected), merged.Len())
		})
	}
}
