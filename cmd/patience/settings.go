package main

import (
	"context"
	"fmt"

	"github.com/amp-labs/patience/compare"
	"github.com/amp-labs/patience/envutil"
	"github.com/amp-labs/patience/patience"
)

// Settings read from the environment (or the --config file) when the
// matching flag is not given.
const (
	envComparator  = "PATIENCE_COMPARATOR"
	envLocale      = "PATIENCE_LOCALE"
	envTies        = "PATIENCE_TIES"
	envWorkers     = "PATIENCE_WORKERS"
	envBenchMaxExp = "PATIENCE_BENCH_MAX_EXP"
	envEnvironment = "PATIENCE_ENV"
)

// ordering is the resolved comparator and tie policy of a command.
type ordering struct {
	name string
	less compare.Less[string]
	ties patience.TiePolicy
}

// setting returns the flag value when it was given and the environment
// variable key otherwise.
func setting(ctx context.Context, flag *string, key string, opts ...envutil.Option[string]) (string, error) {
	if flag != nil && *flag != "" {
		return *flag, nil
	}

	return envutil.String(ctx, key, opts...).Value()
}

// intSetting is setting for integers, where zero means not given.
func intSetting(ctx context.Context, flag *int, key string, opts ...envutil.Option[int]) (int, error) {
	if flag != nil && *flag != 0 {
		return *flag, nil
	}

	return envutil.Int(ctx, key, opts...).Value()
}

// resolve turns the order flags into a comparator and a tie policy.
func (f OrderFlags) resolve(ctx context.Context) (ordering, error) {
	name, err := setting(ctx, f.Comparator, envComparator,
		envutil.Default(compare.NameLexical), envutil.OneOf(compare.Names()...))
	if err != nil {
		return ordering{}, err
	}

	locale, err := setting(ctx, f.Locale, envLocale, envutil.Default(""))
	if err != nil {
		return ordering{}, err
	}

	less, err := compare.Named(name, locale)
	if err != nil {
		return ordering{}, err
	}

	if f.Reverse != nil && *f.Reverse {
		less = compare.Reverse(less)
	}

	tiesName, err := setting(ctx, f.Ties, envTies, envutil.Default(patience.TiesExtend.String()))
	if err != nil {
		return ordering{}, err
	}

	ties, err := patience.ParseTiePolicy(tiesName)
	if err != nil {
		return ordering{}, fmt.Errorf("%s: %w", envTies, err)
	}

	return ordering{name: name, less: less, ties: ties}, nil
}
