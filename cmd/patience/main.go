// Command patience sorts lines of text with patience sort, reports how input
// is dealt into piles and benchmarks the engine against other algorithms.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/amp-labs/patience/envutil"
	"github.com/amp-labs/patience/logger"
	"github.com/amp-labs/patience/shutdown"
	"github.com/amp-labs/patience/spans"
	"github.com/amp-labs/patience/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	appName         = "patience"
	shutdownTimeout = 5 * time.Second
)

var errUnknownCommand = errors.New("unknown command")

func main() {
	ctx, handler := shutdown.SetupHandler(context.Background())

	app := kingpin.New(appName, "Patience sort for lines of text.")

	err := run(ctx, app, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)

	handler.Stop()

	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// run parses args and executes the selected command. Sorted lines and reports
// go to stdout, statistics go to stderr.
func run(ctx context.Context, app *kingpin.Application, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	pat := RegisterCommands(app)

	cmd, err := pat.Parse(stdioArgs(args))
	if err != nil {
		return err
	}

	if *pat.Config != "" {
		ctx, err = envutil.WithFile(ctx, *pat.Config)
		if err != nil {
			return fmt.Errorf("loading %s: %w", *pat.Config, err)
		}
	}

	ctx, flush, err := setup(ctx)
	if err != nil {
		return err
	}

	defer flush()

	logger.Get(ctx).Debug("Running command", "command", cmd)

	st := streams{stdin: stdin, stdout: stdout, stderr: stderr}

	switch cmd {
	case pat.SortCmd.FullCommand():
		return runSort(ctx, pat.SortCmd, st)
	case pat.PilesCmd.FullCommand():
		return runPiles(ctx, pat.PilesCmd, st)
	case pat.BenchCmd.FullCommand():
		return runBench(ctx, pat.BenchCmd, st)
	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, cmd)
	}
}

// stdioArgs replaces every lone "-" in args with the empty string. kingpin
// parses "-" as a short flag, and an empty path selects stdin or stdout.
func stdioArgs(args []string) []string {
	out := make([]string, len(args))

	for i, arg := range args {
		if arg != "-" {
			out[i] = arg
		}
	}

	return out
}

// streams are the standard streams of one invocation.
type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// setup configures telemetry and logging and tags ctx with a fresh run id.
// The returned function flushes and stops the telemetry providers.
func setup(ctx context.Context) (context.Context, func(), error) {
	ctx = logger.WithSubsystem(ctx, appName)
	ctx = logger.WithRunId(ctx, uuid.NewString())

	env, err := envutil.String(ctx, envEnvironment, envutil.Default("local")).Value()
	if err != nil {
		return ctx, nil, err
	}

	cfg, err := telemetry.LoadConfigFromEnv(ctx, env)
	if err != nil {
		return ctx, nil, err
	}

	tel, err := telemetry.Initialize(ctx, cfg)
	if err != nil {
		return ctx, nil, err
	}

	if _, err := logger.ConfigureLogging(ctx, appName, logger.WithLoggerProvider(tel.LoggerProvider())); err != nil {
		_ = tel.Shutdown(ctx)

		return ctx, nil, err
	}

	if tel.TracingEnabled() {
		ctx = spans.WithTracer(ctx, otel.Tracer(appName))
	}

	flush := func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Get(ctx).Warn("Telemetry shutdown failed", "error", err)
		}
	}

	return ctx, flush, nil
}
