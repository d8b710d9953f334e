package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/amp-labs/patience/envutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// memoryExporter keeps exported OpenTelemetry log records in memory.
type memoryExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

func (m *memoryExporter) Export(_ context.Context, records []sdklog.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range records {
		m.records = append(m.records, r.Clone())
	}

	return nil
}

func (m *memoryExporter) Shutdown(context.Context) error   { return nil }
func (m *memoryExporter) ForceFlush(context.Context) error { return nil }

func (m *memoryExporter) bodies() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r.Body().AsString())
	}

	return out
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}

		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))

		out = append(out, rec)
	}

	return out
}

func TestGet(t *testing.T) { //nolint:paralleltest
	var buf bytes.Buffer

	ConfigureLoggingWithOptions(Options{Subsystem: "patience", JSON: true, Output: &buf})

	Get().Info("plain")

	ctx := WithRunId(t.Context(), "run-1")
	ctx = With(ctx, "comparator", "natural")
	Get(ctx).Info("with run")

	Get(WithSubsystem(ctx, "bench")).Info("overridden")
	Get(WithMuted(ctx, true)).Error("never shown")

	recs := lines(t, &buf)
	require.Len(t, recs, 3)

	assert.Equal(t, "patience", recs[0]["subsystem"])
	assert.NotContains(t, recs[0], "run_id")

	assert.Equal(t, "run-1", recs[1]["run_id"])
	assert.Equal(t, "natural", recs[1]["comparator"])

	assert.Equal(t, "bench", recs[2]["subsystem"])
}

func TestLegacy(t *testing.T) { //nolint:paralleltest
	var buf bytes.Buffer

	ConfigureLoggingWithOptions(Options{
		Subsystem:   "patience",
		JSON:        true,
		Output:      &buf,
		LegacyLevel: slog.LevelWarn,
	})

	log.Println("from the log package")

	recs := lines(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "WARN", recs[0]["level"])
}

func TestConfigureLogging(t *testing.T) { //nolint:paralleltest
	var buf bytes.Buffer

	ctx := envutil.WithEnvOverrides(t.Context(), map[string]string{
		"LOG_JSON":  "true",
		"LOG_LEVEL": "warn",
	})

	logger, err := ConfigureLogging(ctx, "patience", WithOutput(&buf))
	require.NoError(t, err)

	logger.Info("filtered")
	logger.Warn("kept")

	recs := lines(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "kept", recs[0]["msg"])
	assert.Equal(t, "patience", GetSubsystem(t.Context()))
}

func TestConfigureLogging_BadSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
		err   error
	}{
		{name: "output", key: "LOG_OUTPUT", value: "syslog", err: ErrInvalidLogOutput},
		{name: "level", key: "LOG_LEVEL", value: "loud", err: envutil.ErrBadEnvVar},
		{name: "json", key: "LOG_JSON", value: "sometimes", err: envutil.ErrBadEnvVar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Errors are returned before any global state is touched.
			_, err := ConfigureLogging(envutil.WithEnvOverride(t.Context(), tt.key, tt.value), "patience")
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNewHandler_LoggerProvider(t *testing.T) {
	t.Parallel()

	exporter := &memoryExporter{}
	provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)))

	var buf bytes.Buffer

	logger := slog.New(NewHandler(Options{
		Subsystem:      "patience",
		JSON:           true,
		Output:         &buf,
		LoggerProvider: provider,
	}))

	logger.Info("sorted", "elements", 10)
	logger.Debug("below the local minimum")

	require.NoError(t, provider.ForceFlush(t.Context()))

	assert.Len(t, lines(t, &buf), 1)
	assert.Contains(t, exporter.bodies(), "sorted")
}

func TestFanoutHandler(t *testing.T) {
	t.Parallel()

	var quiet, loud bytes.Buffer

	handler := &fanoutHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&quiet, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewJSONHandler(&loud, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}}

	logger := slog.New(handler).With("k", "v")

	assert.True(t, handler.Enabled(t.Context(), slog.LevelDebug))

	logger.Info("info")
	logger.Error("error")

	assert.Len(t, lines(t, &quiet), 1)

	recs := lines(t, &loud)
	require.Len(t, recs, 2)
	assert.Equal(t, "v", recs[0]["k"])
}
