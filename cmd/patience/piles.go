package main

import (
	"context"
	"fmt"

	"github.com/amp-labs/patience/bgworker"
	"github.com/amp-labs/patience/envutil"
	"github.com/amp-labs/patience/logger"
	"github.com/amp-labs/patience/patience"
	"github.com/amp-labs/patience/spans"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"go.opentelemetry.io/otel/attribute"
)

// pileReport summarises the piles of one file.
type pileReport struct {
	path     string
	lines    int
	piles    int
	largest  int
	smallest int
}

func (r pileReport) row() []string {
	name := r.path
	if name == "" {
		name = "-"
	}

	return []string{
		name,
		humanize.Comma(int64(r.lines)),
		humanize.Comma(int64(r.piles)),
		humanize.Comma(int64(r.largest)),
		humanize.Comma(int64(r.smallest)),
	}
}

// runPiles deals the lines of every input into piles and prints one table
// row per file, in argument order.
func runPiles(ctx context.Context, cmd PilesCmd, st streams) error {
	order, err := cmd.resolve(ctx)
	if err != nil {
		return err
	}

	compression, err := cmd.compression()
	if err != nil {
		return err
	}

	workers, err := intSetting(ctx, cmd.Workers, envWorkers, envutil.Default(0))
	if err != nil {
		return err
	}

	ctx = logger.With(ctx, "comparator", order.name, "ties", order.ties.String())

	reports, err := bgworker.Map(ctx, workers, *cmd.Inputs, func(ctx context.Context, path string) (pileReport, error) {
		return spans.RunVal(ctx, "piles", func(ctx context.Context) (pileReport, error) {
			values, err := readInput(ctx, path, compression, *cmd.Charset, st.stdin)
			if err != nil {
				return pileReport{}, fmt.Errorf("%s: %w", path, err)
			}

			// Collating and case folding comparators keep state, so every
			// worker gets its own.
			local, err := cmd.resolve(ctx)
			if err != nil {
				return pileReport{}, err
			}

			return reportPiles(path, values, local), nil
		}, spans.WithAttributes(attribute.String("path", path)))
	})
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(st.stdout)
	table.SetHeader([]string{"File", "Lines", "Piles", "Largest", "Smallest"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, r := range reports {
		table.Append(r.row())
	}

	table.Render()

	return nil
}

func reportPiles(path string, values []string, order ordering) pileReport {
	piles := patience.Piles(values, order.less, patience.WithTiePolicy(order.ties))

	report := pileReport{path: path, lines: len(values), piles: len(piles)}

	for i, pile := range piles {
		if i == 0 || len(pile) > report.largest {
			report.largest = len(pile)
		}

		if i == 0 || len(pile) < report.smallest {
			report.smallest = len(pile)
		}
	}

	return report
}
