// Package metrics exports patience sort statistics as Prometheus metrics.
package metrics

import (
	"github.com/amp-labs/patience/patience"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/atomic"
)

// Recorder is a patience.Observer that feeds sort statistics into Prometheus
// collectors. It is safe for concurrent use.
type Recorder struct {
	calls       *prometheus.CounterVec
	elements    *prometheus.CounterVec
	comparisons *prometheus.CounterVec
	piles       *prometheus.HistogramVec
	rounds      *prometheus.HistogramVec
	duration    *prometheus.HistogramVec

	totalCalls       atomic.Int64
	totalElements    atomic.Int64
	totalComparisons atomic.Int64
	maxPiles         atomic.Int64
}

var _ patience.Observer = (*Recorder)(nil)

// Totals are running sums over every sort observed by a Recorder.
type Totals struct {
	Calls       int64
	Elements    int64
	Comparisons int64
	MaxPiles    int64
}

// NewRecorder creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	labels := []string{"variant"}

	return &Recorder{
		calls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "patience_sort_calls_total",
			Help: "The total number of sorts performed",
		}, labels),
		elements: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "patience_sort_elements_total",
			Help: "The total number of elements sorted",
		}, labels),
		comparisons: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "patience_sort_comparisons_total",
			Help: "The total number of comparator calls",
		}, labels),
		piles: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "patience_sort_piles",
			Help:    "The number of piles built per sort",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10), // 1 .. 262144
		}, labels),
		rounds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "patience_sort_merge_rounds",
			Help:    "The number of merge rounds per sort",
			Buckets: prometheus.LinearBuckets(0, 2, 12), // 0 .. 22
		}, labels),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name: "patience_sort_duration_seconds",
			Help: "The time spent sorting",
			Buckets: []float64{
				0.0001, // 100µs
				0.001,  // 1ms
				0.01,   // 10ms
				0.1,    // 100ms
				1,      // 1s
				10,     // 10s
			},
		}, labels),
	}
}

// ObserveSort implements patience.Observer.
func (r *Recorder) ObserveSort(stats patience.Stats) {
	variant := stats.Variant

	r.calls.WithLabelValues(variant).Inc()
	r.elements.WithLabelValues(variant).Add(float64(stats.Elements))
	r.comparisons.WithLabelValues(variant).Add(float64(stats.Comparisons))
	r.piles.WithLabelValues(variant).Observe(float64(stats.Piles))
	r.rounds.WithLabelValues(variant).Observe(float64(stats.Rounds))
	r.duration.WithLabelValues(variant).Observe(stats.Duration.Seconds())

	r.totalCalls.Inc()
	r.totalElements.Add(int64(stats.Elements))
	r.totalComparisons.Add(int64(stats.Comparisons))

	for piles := int64(stats.Piles); ; {
		current := r.maxPiles.Load()
		if piles <= current || r.maxPiles.CompareAndSwap(current, piles) {
			break
		}
	}
}

// Totals returns a snapshot of the running sums.
func (r *Recorder) Totals() Totals {
	return Totals{
		Calls:       r.totalCalls.Load(),
		Elements:    r.totalElements.Load(),
		Comparisons: r.totalComparisons.Load(),
		MaxPiles:    r.maxPiles.Load(),
	}
}
