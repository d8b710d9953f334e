// Package telemetry sets up OpenTelemetry tracing and log export for the
// patience tools. Nothing is exported unless OTEL_ENABLED is true and an
// endpoint is configured.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amp-labs/patience/build"
	"github.com/amp-labs/patience/envutil"
	"github.com/amp-labs/patience/errors"
	"github.com/amp-labs/patience/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

const defaultTimeout = 5 * time.Second

// Config holds the OpenTelemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TracesEndpoint string
	LogsEndpoint   string
	Enabled        bool
	Timeout        time.Duration
}

// LoadConfigFromEnv loads OpenTelemetry configuration from OTEL_* variables.
// The logs endpoint defaults to the traces endpoint.
func LoadConfigFromEnv(ctx context.Context, runningEnv string) (*Config, error) {
	enabled, err := envutil.Bool(ctx, "OTEL_ENABLED", envutil.Default(false)).Value()
	if err != nil {
		return nil, err
	}

	svcName, err := envutil.String(ctx, "OTEL_SERVICE_NAME",
		envutil.Default(logger.GetSubsystem(ctx))).Value()
	if err != nil {
		return nil, err
	}

	svcVersion, err := envutil.String(ctx, "OTEL_SERVICE_VERSION",
		envutil.Default(build.Current().Version)).Value()
	if err != nil {
		return nil, err
	}

	traces := envutil.String(ctx, "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT").ValueOrElse("")

	logs := envutil.String(ctx, "OTEL_EXPORTER_OTLP_LOGS_ENDPOINT").ValueOrElse(traces)

	timeout, err := envutil.Duration(ctx, "OTEL_EXPORTER_OTLP_TIMEOUT",
		envutil.Default(defaultTimeout)).Value()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServiceName:    svcName,
		ServiceVersion: svcVersion,
		Environment:    runningEnv,
		TracesEndpoint: traces,
		LogsEndpoint:   logs,
		Enabled:        enabled,
		Timeout:        timeout,
	}, nil
}

// Telemetry owns the providers created by Initialize. The zero value is a
// valid, disabled instance.
type Telemetry struct {
	tracerProvider *sdktrace.TracerProvider
	loggerProvider *sdklog.LoggerProvider
}

// LoggerProvider returns the log provider, or nil when log export is off.
func (t *Telemetry) LoggerProvider() otellog.LoggerProvider { //nolint:ireturn
	if t == nil || t.loggerProvider == nil {
		return nil
	}

	return t.loggerProvider
}

// TracingEnabled reports whether spans are being exported.
func (t *Telemetry) TracingEnabled() bool {
	return t != nil && t.tracerProvider != nil
}

// Initialize sets up the global tracer provider and a log provider for the
// given configuration.
func Initialize(ctx context.Context, config *Config) (*Telemetry, error) {
	tel := &Telemetry{}

	if !config.Enabled {
		slog.Debug("OpenTelemetry is disabled")

		return tel, nil
	}

	if config.TracesEndpoint == "" && config.LogsEndpoint == "" {
		slog.Warn("OpenTelemetry endpoint not configured, telemetry will be disabled")

		return tel, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
			semconv.DeploymentEnvironmentKey.String(config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if config.TracesEndpoint != "" {
		exporter, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpointURL(config.TracesEndpoint),
			otlptracehttp.WithTimeout(config.Timeout),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}

		tel.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)

		otel.SetTracerProvider(tel.tracerProvider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	if config.LogsEndpoint != "" {
		exporter, err := otlploghttp.New(ctx,
			otlploghttp.WithEndpointURL(config.LogsEndpoint),
			otlploghttp.WithTimeout(config.Timeout),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
		}

		tel.loggerProvider = sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
			sdklog.WithResource(res),
		)

		global.SetLoggerProvider(tel.loggerProvider)
	}

	slog.Info("OpenTelemetry initialized",
		"service", config.ServiceName,
		"version", config.ServiceVersion,
		"environment", config.Environment,
		"traces", config.TracesEndpoint,
		"logs", config.LogsEndpoint,
	)

	return tel, nil
}

// Shutdown flushes and stops every provider, returning all failures.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}

	var errs errors.Collection

	if t.tracerProvider != nil {
		errs.Add(t.tracerProvider.Shutdown(ctx))
	}

	if t.loggerProvider != nil {
		errs.Add(t.loggerProvider.Shutdown(ctx))
	}

	return errs.GetError()
}
