// Package spans wraps units of work in OpenTelemetry spans. Errors are
// recorded on the span, panics are recorded and re-raised.
package spans

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var spanWithoutTracerCounter = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
	Name: "patience_spans_without_tracer_total",
	Help: "Units of work that ran without a tracer in their context.",
}, []string{"span"})

// Option configures a span started by Run or RunVal.
type Option func(*runner)

// WithAttributes sets attributes on the span when it starts.
func WithAttributes(attrs ...attribute.KeyValue) Option {
	return func(r *runner) {
		r.attrs = append(r.attrs, attrs...)
	}
}

// WithSpanKind overrides the span kind (internal by default).
func WithSpanKind(kind trace.SpanKind) Option {
	return func(r *runner) {
		r.kind = kind
	}
}

type runner struct {
	attrs []attribute.KeyValue
	kind  trace.SpanKind
}

// Run executes fn inside a span named name. Without a tracer in ctx it just
// calls fn.
func Run(ctx context.Context, name string, fn func(ctx context.Context) error, opts ...Option) error {
	_, err := RunVal(ctx, name, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}, opts...)

	return err
}

// RunVal is Run for work that produces a value.
func RunVal[T any](
	ctx context.Context, name string, fn func(ctx context.Context) (T, error), opts ...Option,
) (T, error) {
	tracer, found := TracerFromContext(ctx)
	if !found {
		spanWithoutTracerCounter.WithLabelValues(name).Inc()

		return fn(ctx)
	}

	r := &runner{kind: trace.SpanKindInternal}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	ctx, span := tracer.Start(ctx, name, trace.WithSpanKind(r.kind), trace.WithAttributes(r.attrs...))
	defer span.End()

	defer func() {
		if p := recover(); p != nil {
			span.SetAttributes(attribute.Bool("panic", true))
			span.SetStatus(codes.Error, fmt.Sprintf("panic: %v", p))

			panic(p)
		}
	}()

	val, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return val, err
	}

	span.SetStatus(codes.Ok, "ok")

	return val, nil
}
