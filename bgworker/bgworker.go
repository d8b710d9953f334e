// Package bgworker runs independent pieces of work on a bounded pool of
// goroutines.
package bgworker

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/alitto/pond/v2"
)

// Map calls fn for every item on a pool of at most workers goroutines and
// returns the results in input order. A workers value below 1 means
// runtime.GOMAXPROCS(0). The first error cancels the context passed to the
// remaining calls and is returned once all of them finish.
func Map[T, R any](
	ctx context.Context, workers int, items []T, fn func(ctx context.Context, item T) (R, error),
) ([]R, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	workers = min(workers, max(len(items), 1))
	results := make([]R, len(items))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slog.Debug("Starting worker pool", "workers", workers, "items", len(items))

	pool := pond.NewPool(workers)
	defer pool.StopAndWait()

	group := pool.NewGroup()

	for i, item := range items {
		group.SubmitErr(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := fn(ctx, item)
			if err != nil {
				cancel()

				return err
			}

			results[i] = res

			return nil
		})
	}

	return results, group.Wait()
}

// Each is Map for work without a result.
func Each[T any](ctx context.Context, workers int, items []T, fn func(ctx context.Context, item T) error) error {
	_, err := Map(ctx, workers, items, func(ctx context.Context, item T) (struct{}, error) {
		return struct{}{}, fn(ctx, item)
	})

	return err
}
