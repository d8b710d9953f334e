// Package bench times the patience sort against other sorting algorithms on
// shuffled input of doubling sizes and renders the results as a table.
package bench

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"

	"github.com/amp-labs/patience/linked"
	"github.com/amp-labs/patience/patience"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// ErrNoAlgorithms is returned by Run when there is nothing to measure.
var ErrNoAlgorithms = errors.New("no algorithms to benchmark")

const (
	// DefaultSeed is the shuffle seed, fixed so that runs are comparable.
	DefaultSeed    = 100
	DefaultMaxExp  = 18
	DefaultRepeats = 3
)

// Algorithm is one contender. Prepare builds its input from a shuffled slice
// outside of the timed region, and returns the function to time.
type Algorithm struct {
	Name    string
	Prepare func(data []int) func()
}

// SliceAlgorithm adapts an in-place slice sort. The slice is copied before
// timing starts.
func SliceAlgorithm(name string, sort func([]int)) Algorithm {
	return Algorithm{
		Name: name,
		Prepare: func(data []int) func() {
			work := slices.Clone(data)

			return func() { sort(work) }
		},
	}
}

// DefaultAlgorithms returns the standard library sort, a top-down merge sort
// and both patience variants.
func DefaultAlgorithms() []Algorithm {
	return []Algorithm{
		SliceAlgorithm("slices.Sort", slices.Sort[[]int]),
		SliceAlgorithm("merge sort", func(s []int) { MergeSort(s, cmp.Less[int]) }),
		SliceAlgorithm("patience", patience.Sort[[]int]),
		{
			Name: "patience (list)",
			Prepare: func(data []int) func() {
				l := linked.New(data...)

				return func() { patience.SortList(l) }
			},
		},
	}
}

// Options configure Run.
type Options struct {
	MaxExp     int
	Seed       uint64
	Repeats    int
	Algorithms []Algorithm
}

// Option is a functional option for Run.
type Option func(*Options)

// WithMaxExp sets the largest size to 2^exp.
func WithMaxExp(exp int) Option {
	return func(o *Options) {
		o.MaxExp = exp
	}
}

// WithSeed overrides the shuffle seed.
func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithRepeats sets how many times each measurement is taken; the fastest
// one is kept.
func WithRepeats(n int) Option {
	return func(o *Options) {
		o.Repeats = n
	}
}

// WithAlgorithms replaces the default contenders.
func WithAlgorithms(algs ...Algorithm) Option {
	return func(o *Options) {
		o.Algorithms = algs
	}
}

// Result is the fastest of the repeated timings of one algorithm at one size.
type Result struct {
	Algorithm string
	Size      int
	Duration  time.Duration
}

// PerNLogN is the duration divided by n·log2(n), in nanoseconds. It stays
// roughly flat for an O(n log n) algorithm.
func (r Result) PerNLogN() float64 {
	if r.Size < 2 {
		return float64(r.Duration.Nanoseconds())
	}

	n := float64(r.Size)

	return float64(r.Duration.Nanoseconds()) / (n * math.Log2(n))
}

// Sizes returns 1, 2, 4, ... up to 2^maxExp.
func Sizes(maxExp int) []int {
	out := make([]int, 0, maxExp+1)
	for exp := 0; exp <= maxExp; exp++ {
		out = append(out, 1<<exp)
	}

	return out
}

// Shuffled returns 0..n-1 shuffled with a PCG generator seeded by seed.
func Shuffled(n int, seed uint64) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}

	rng := rand.New(rand.NewPCG(seed, seed)) //nolint:gosec
	rng.Shuffle(n, func(i, j int) { data[i], data[j] = data[j], data[i] })

	return data
}

// Run measures every algorithm at every size. It stops early, returning the
// results so far, when ctx is cancelled.
func Run(ctx context.Context, opts ...Option) ([]Result, error) {
	options := Options{
		MaxExp:     DefaultMaxExp,
		Seed:       DefaultSeed,
		Repeats:    DefaultRepeats,
		Algorithms: DefaultAlgorithms(),
	}

	for _, opt := range opts {
		opt(&options)
	}

	if len(options.Algorithms) == 0 {
		return nil, ErrNoAlgorithms
	}

	if options.MaxExp < 0 || options.MaxExp > 30 {
		return nil, fmt.Errorf("max exponent %d out of range [0, 30]", options.MaxExp)
	}

	repeats := max(options.Repeats, 1)
	sizes := Sizes(options.MaxExp)
	results := make([]Result, 0, len(sizes)*len(options.Algorithms))

	for _, size := range sizes {
		data := Shuffled(size, options.Seed)

		for _, alg := range options.Algorithms {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			best := time.Duration(math.MaxInt64)

			for range repeats {
				run := alg.Prepare(data)

				start := time.Now()
				run()
				best = min(best, time.Since(start))
			}

			results = append(results, Result{Algorithm: alg.Name, Size: size, Duration: best})
		}
	}

	return results, nil
}

// Render writes results as a table with one row per size and one column per
// algorithm. Each cell holds the duration and the ns per n·log2(n).
func Render(w io.Writer, results []Result) {
	var (
		algs  []string
		sizes []int
		cells = map[string]map[int]Result{}
	)

	for _, r := range results {
		if _, ok := cells[r.Algorithm]; !ok {
			algs = append(algs, r.Algorithm)
			cells[r.Algorithm] = map[int]Result{}
		}

		if !slices.Contains(sizes, r.Size) {
			sizes = append(sizes, r.Size)
		}

		cells[r.Algorithm][r.Size] = r
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{"Elements"}, algs...))
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	rows := make([][]string, 0, len(sizes))

	for _, size := range sizes {
		row := []string{humanize.Comma(int64(size))}

		for _, alg := range algs {
			r, ok := cells[alg][size]
			if !ok {
				row = append(row, "-")

				continue
			}

			row = append(row, fmt.Sprintf("%s (%s)", r.Duration, strconv.FormatFloat(r.PerNLogN(), 'f', 2, 64)))
		}

		rows = append(rows, row)
	}

	table.AppendBulk(rows)
	table.Render()
}
