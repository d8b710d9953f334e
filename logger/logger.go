// Package logger configures log/slog for the patience tools and hands out
// loggers that carry per-run context (subsystem, run id, extra values).
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/amp-labs/patience/envutil"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	otellog "go.opentelemetry.io/otel/log"
)

// Default subsystem name, set by ConfigureLoggingWithOptions.
var subsystem atomic.Value //nolint:gochecknoglobals

// configMutex serializes ConfigureLoggingWithOptions, which modifies global
// state (slog.SetDefault and log.Default).
var configMutex sync.Mutex //nolint:gochecknoglobals

type contextKey string

// ErrInvalidLogOutput is returned when an invalid log output destination is specified.
var ErrInvalidLogOutput = errors.New("invalid log output")

// Options is used to configure logging.
type Options struct {
	Subsystem   string
	JSON        bool
	MinLevel    slog.Level
	LegacyLevel slog.Level
	Output      io.Writer

	// LoggerProvider, when set, receives a copy of every record through the
	// OpenTelemetry slog bridge.
	LoggerProvider otellog.LoggerProvider
}

// Option is a functional option for configuring logging via ConfigureLogging.
type Option func(*Options)

// WithOutput sends log output to w instead of the LOG_OUTPUT destination.
func WithOutput(w io.Writer) Option {
	return func(o *Options) {
		o.Output = w
	}
}

// WithLoggerProvider fans records out to an OpenTelemetry log provider.
func WithLoggerProvider(p otellog.LoggerProvider) Option {
	return func(o *Options) {
		o.LoggerProvider = p
	}
}

// NewHandler builds the handler described by opts without touching any
// global state.
func NewHandler(opts Options) slog.Handler {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.MinLevel}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(opts.Output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(opts.Output, handlerOpts)
	}

	if opts.LoggerProvider != nil {
		bridge := otelslog.NewHandler(opts.Subsystem, otelslog.WithLoggerProvider(opts.LoggerProvider))
		handler = &fanoutHandler{handlers: []slog.Handler{handler, bridge}}
	}

	return &slogErrorLogger{inner: handler}
}

// ConfigureLoggingWithOptions configures logging for the application.
// It returns the default logger.
func ConfigureLoggingWithOptions(opts Options) *slog.Logger {
	configMutex.Lock()
	defer configMutex.Unlock()

	handler := NewHandler(opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)

	// Third party packages may still use the log package.
	def := log.Default()
	*def = *slog.NewLogLogger(handler, opts.LegacyLevel)

	subsystem.Store(opts.Subsystem)

	return logger
}

// ConfigureLogging configures logging from LOG_JSON, LOG_LEVEL,
// LEGACY_LOG_LEVEL and LOG_OUTPUT (stdout or stderr, default stderr so that
// sorted output on stdout stays clean). It returns the default logger.
func ConfigureLogging(ctx context.Context, app string, opts ...Option) (*slog.Logger, error) {
	logJSON, err := envutil.Bool(ctx, "LOG_JSON", envutil.Default(false)).Value()
	if err != nil {
		return nil, err
	}

	minLevel, err := envutil.SlogLevel(ctx, "LOG_LEVEL", envutil.Default(slog.LevelInfo)).Value()
	if err != nil {
		return nil, err
	}

	legacyLevel, err := envutil.SlogLevel(ctx, "LEGACY_LOG_LEVEL", envutil.Default(slog.LevelInfo)).Value()
	if err != nil {
		return nil, err
	}

	output, err := envutil.Map(envutil.String(ctx, "LOG_OUTPUT", envutil.Default("stderr")),
		func(outName string) (io.Writer, error) {
			switch outName {
			case "stdout":
				return os.Stdout, nil
			case "stderr":
				return os.Stderr, nil
			default:
				return nil, fmt.Errorf("%w: %q", ErrInvalidLogOutput, outName)
			}
		}).Value()
	if err != nil {
		return nil, err
	}

	options := Options{
		Subsystem:   app,
		JSON:        logJSON,
		MinLevel:    minLevel,
		LegacyLevel: legacyLevel,
		Output:      output,
	}

	for _, o := range opts {
		o(&options)
	}

	return ConfigureLoggingWithOptions(options), nil
}

// WithMuted adds a muted flag to the context. Loggers obtained from a muted
// context discard everything.
func WithMuted(ctx context.Context, muted bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, contextKey("mute"), muted)
}

func isMuted(ctx context.Context) bool {
	muted, ok := ctx.Value(contextKey("mute")).(bool)

	return ok && muted
}

// WithSubsystem overrides the subsystem name for loggers obtained from ctx.
func WithSubsystem(ctx context.Context, subsystem string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, contextKey("subsystem"), subsystem)
}

// GetSubsystem returns the subsystem from the context, or the default one set
// when logging was configured.
func GetSubsystem(ctx context.Context) string { //nolint:contextcheck
	if ctx == nil {
		ctx = context.Background()
	}

	if val, ok := ctx.Value(contextKey("subsystem")).(string); ok {
		return val
	}

	if val, ok := subsystem.Load().(string); ok {
		return val
	}

	return ""
}

// WithRunId attaches the id of the current CLI invocation.
func WithRunId(ctx context.Context, runId string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, contextKey("run_id"), runId)
}

// GetRunId returns the run id from the context, if any.
func GetRunId(ctx context.Context) (string, bool) { //nolint:contextcheck
	if ctx == nil {
		return "", false
	}

	val, ok := ctx.Value(contextKey("run_id")).(string)

	return val, ok
}

// With returns a new context with the given values added.
// The values are added to the logger automatically.
func With(ctx context.Context, values ...any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	if len(values) == 0 {
		return ctx
	}

	existing := getValues(ctx)
	vals := make([]any, 0, len(existing)+len(values))
	vals = append(vals, existing...)
	vals = append(vals, values...)

	return context.WithValue(ctx, contextKey("loggerValues"), vals)
}

func getValues(ctx context.Context) []any {
	vals, _ := ctx.Value(contextKey("loggerValues")).([]any)

	return vals
}

// nullHandler discards everything. It backs muted loggers.
type nullHandler struct{}

func (n *nullHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (n *nullHandler) Handle(context.Context, slog.Record) error { return nil }
func (n *nullHandler) WithAttrs([]slog.Attr) slog.Handler        { return n }
func (n *nullHandler) WithGroup(string) slog.Handler             { return n }

var nullLogger = slog.New(&nullHandler{}) //nolint:gochecknoglobals

// Get returns the default logger decorated with the subsystem, the run id and
// any values added with With. The first non-nil context wins.
//
//nolint:contextcheck
func Get(ctx ...context.Context) *slog.Logger {
	realCtx := context.Background()

	for _, c := range ctx {
		if c != nil {
			realCtx = c

			break
		}
	}

	if isMuted(realCtx) {
		return nullLogger
	}

	logger := slog.Default().With("subsystem", GetSubsystem(realCtx))

	if runId, ok := GetRunId(realCtx); ok {
		logger = logger.With("run_id", runId)
	}

	if vals := getValues(realCtx); vals != nil {
		logger = logger.With(vals...)
	}

	return logger
}
