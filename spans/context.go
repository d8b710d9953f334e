package spans

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const tracerKey contextKey = "tracer"

// WithTracer stores an OpenTelemetry tracer in the context. Run and RunVal
// only create spans when a tracer is present.
//
//	ctx = spans.WithTracer(ctx, otel.Tracer("patience"))
func WithTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, tracerKey, tracer)
}

// TracerFromContext retrieves the tracer stored by WithTracer.
func TracerFromContext(ctx context.Context) (trace.Tracer, bool) { //nolint:ireturn
	tracer, ok := ctx.Value(tracerKey).(trace.Tracer)

	return tracer, ok && tracer != nil
}
