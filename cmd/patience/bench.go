package main

import (
	"context"

	"github.com/amp-labs/patience/bench"
	"github.com/amp-labs/patience/envutil"
	"github.com/amp-labs/patience/logger"
	"github.com/amp-labs/patience/spans"
)

// runBench times every default algorithm on shuffled input and prints the
// table. An interrupted run still prints the sizes it finished.
func runBench(ctx context.Context, cmd BenchCmd, st streams) error {
	maxExp, err := intSetting(ctx, cmd.MaxExp, envBenchMaxExp, envutil.Default(bench.DefaultMaxExp))
	if err != nil {
		return err
	}

	logger.Get(ctx).Info("Running benchmark", "max_exp", maxExp, "repeats", *cmd.Repeats, "seed", *cmd.Seed)

	results, err := spans.RunVal(ctx, "bench", func(ctx context.Context) ([]bench.Result, error) {
		return bench.Run(ctx,
			bench.WithMaxExp(maxExp),
			bench.WithRepeats(*cmd.Repeats),
			bench.WithSeed(*cmd.Seed),
		)
	})

	if len(results) > 0 {
		bench.Render(st.stdout, results)
	}

	return err
}
