package main

import (
	"context"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/amp-labs/patience/checksum"
	perrors "github.com/amp-labs/patience/errors"
	"github.com/amp-labs/patience/lines"
	"github.com/amp-labs/patience/linked"
	"github.com/amp-labs/patience/logger"
	"github.com/amp-labs/patience/metrics"
	"github.com/amp-labs/patience/patience"
	"github.com/amp-labs/patience/spans"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
)

// runSort reads the lines of the input, sorts them and writes them out.
func runSort(ctx context.Context, cmd SortCmd, st streams) error {
	order, err := cmd.resolve(ctx)
	if err != nil {
		return err
	}

	compression, err := cmd.compression()
	if err != nil {
		return err
	}

	ctx = logger.With(ctx, "comparator", order.name, "ties", order.ties.String())

	input, err := spans.RunVal(ctx, "read", func(ctx context.Context) ([]string, error) {
		return readInput(ctx, *cmd.Input, compression, *cmd.Charset, st.stdin)
	})
	if err != nil {
		return err
	}

	var before checksum.Fingerprint
	if *cmd.Verify {
		before = checksum.Strings(input)
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)

	sorter := patience.New[string](order.less,
		patience.WithTiePolicy(order.ties),
		patience.WithObserver(recorder),
		patience.WithLogger(logger.Get(ctx)),
	)

	var (
		sorted iter.Seq[string]
		stats  patience.Stats
	)

	err = spans.Run(ctx, "sort", func(context.Context) error {
		if *cmd.Linked {
			list := linked.New(input...)
			stats = sorter.SortList(list)
			sorted = list.All()
		} else {
			stats = sorter.Sort(input)
			sorted = slices.Values(input)
		}

		return nil
	}, spans.WithAttributes(
		attribute.Int("elements", len(input)),
		attribute.Bool("linked", *cmd.Linked),
	))
	if err != nil {
		return err
	}

	if *cmd.Verify {
		err = spans.Run(ctx, "verify", func(context.Context) error {
			return checksum.Verify(before, sorted, order.less, checksum.String)
		})
		if err != nil {
			return err
		}
	}

	err = spans.Run(ctx, "write", func(context.Context) error {
		return writeOutput(*cmd.Output, sorted, st.stdout)
	})
	if err != nil {
		return err
	}

	if *cmd.Stats {
		printStats(st.stderr, stats)
	}

	if *cmd.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(*cmd.MetricsFile, registry); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	logger.Get(ctx).Info("Sorted input", "stats", stats)

	return nil
}

// readInput decodes the lines of path, or of stdin when path is empty or "-".
func readInput(ctx context.Context, path string, c lines.Compression, charset string, stdin io.Reader) ([]string, error) {
	var (
		src io.ReadCloser
		err error
	)

	if path == "" || path == "-" {
		src, err = lines.NewReader(stdin, c)
	} else {
		src, err = lines.Open(path, c)
	}

	if err != nil {
		return nil, err
	}

	var errs perrors.Collection

	values, info, err := lines.Read(src, lines.WithCharset(charset))
	errs.Add(err)
	errs.AddClose(src, "input")

	if err := errs.GetError(); err != nil {
		return nil, err
	}

	logger.Get(ctx).Debug("Read input", "path", path, "lines", info.Lines,
		"charset", info.Charset, "detected", info.Detected)

	return values, nil
}

// writeOutput writes seq to path, or to stdout when path is empty or "-".
// The compression of a file follows its extension.
func writeOutput(path string, seq iter.Seq[string], stdout io.Writer) error {
	var (
		dst io.WriteCloser
		err error
	)

	if path == "" || path == "-" {
		dst, err = lines.NewWriter(stdout, lines.None)
	} else {
		dst, err = lines.Create(path, lines.Auto)
	}

	if err != nil {
		return err
	}

	var errs perrors.Collection

	_, err = lines.Write(dst, seq)
	errs.Add(err)
	errs.AddClose(dst, "output")

	return errs.GetError()
}

func printStats(w io.Writer, stats patience.Stats) {
	_, _ = fmt.Fprintf(w, "%s lines (%s), %s piles, %s merge rounds, %s comparisons, %s\n",
		humanize.Comma(int64(stats.Elements)),
		stats.Variant,
		humanize.Comma(int64(stats.Piles)),
		humanize.Comma(int64(stats.Rounds)),
		humanize.Comma(int64(stats.Comparisons)),
		stats.Duration,
	)
}
