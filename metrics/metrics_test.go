package metrics

import (
	"strings"
	"sync"
	"testing"

	"github.com/amp-labs/patience/patience"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveSort(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewPedanticRegistry()
	rec := NewRecorder(reg)

	sorter := patience.NewOrdered[int](patience.WithObserver(rec))

	sorter.Sort([]int{5, 4, 3, 2, 1})
	sorter.Sort([]int{1, 2, 3})

	expected := `
# HELP patience_sort_calls_total The total number of sorts performed
# TYPE patience_sort_calls_total counter
patience_sort_calls_total{variant="contiguous"} 2
# HELP patience_sort_elements_total The total number of elements sorted
# TYPE patience_sort_elements_total counter
patience_sort_elements_total{variant="contiguous"} 8
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"patience_sort_calls_total", "patience_sort_elements_total"))

	assert.Equal(t, 1, testutil.CollectAndCount(rec.piles))
	assert.InDelta(t, 2, testutil.ToFloat64(rec.calls.WithLabelValues(patience.VariantContiguous)), 0)

	totals := rec.Totals()
	assert.Equal(t, int64(2), totals.Calls)
	assert.Equal(t, int64(8), totals.Elements)
	assert.Equal(t, int64(5), totals.MaxPiles)
	assert.Positive(t, totals.Comparisons)
	assert.InDelta(t, float64(totals.Comparisons),
		testutil.ToFloat64(rec.comparisons.WithLabelValues(patience.VariantContiguous)), 0)
}

func TestRecorder_Variants(t *testing.T) {
	t.Parallel()

	rec := NewRecorder(nil)

	rec.ObserveSort(patience.Stats{Variant: patience.VariantContiguous, Elements: 3, Piles: 2})
	rec.ObserveSort(patience.Stats{Variant: patience.VariantLinked, Elements: 4, Piles: 1})

	assert.InDelta(t, 3, testutil.ToFloat64(rec.elements.WithLabelValues(patience.VariantContiguous)), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(rec.elements.WithLabelValues(patience.VariantLinked)), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(rec.calls))
}

func TestRecorder_Concurrent(t *testing.T) {
	t.Parallel()

	rec := NewRecorder(nil)

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 100 {
				rec.ObserveSort(patience.Stats{Variant: patience.VariantLinked, Elements: 1, Piles: i + 1})
			}
		}()
	}

	wg.Wait()

	totals := rec.Totals()
	assert.Equal(t, int64(800), totals.Calls)
	assert.Equal(t, int64(800), totals.Elements)
	assert.Equal(t, int64(8), totals.MaxPiles)
}

func TestNewRecorder_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	NewRecorder(reg)

	assert.Panics(t, func() { NewRecorder(reg) })
}
