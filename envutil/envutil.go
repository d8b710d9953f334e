// Package envutil reads typed settings from environment variables, with
// context overrides and optional config files.
package envutil

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// get returns a Reader for the given environment variable key.
func get(ctx context.Context, key string) Reader[string] {
	val, src, ok := lookup(ctx, key)

	return Reader[string]{
		key:     key,
		present: ok,
		source:  src,
		value:   val,
	}
}

func apply[T any](rdr Reader[T], opts []Option[T]) Reader[T] {
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// NewReader returns a Reader for the given raw data, for callers that have
// values from somewhere other than the environment.
func NewReader[T any](key string, present bool, err error, value T) Reader[T] {
	rdr := Reader[T]{
		key:     key,
		present: present,
		value:   value,
		err:     err,
	}

	if present {
		rdr.source = SourceContext
	}

	return rdr
}

// String returns a Reader for the given environment variable key.
func String(ctx context.Context, key string, opts ...Option[string]) Reader[string] {
	return apply(get(ctx, key), opts)
}

// Bool returns a Reader that parses the variable with strconv.ParseBool.
func Bool(ctx context.Context, key string, opts ...Option[bool]) Reader[bool] {
	return apply(Map(get(ctx, key), func(s string) (bool, error) {
		return strconv.ParseBool(strings.TrimSpace(s))
	}), opts)
}

// Int returns a Reader that parses the variable as a base 10 integer.
func Int(ctx context.Context, key string, opts ...Option[int]) Reader[int] {
	return apply(Map(get(ctx, key), func(s string) (int, error) {
		return strconv.Atoi(strings.TrimSpace(s))
	}), opts)
}

// Duration returns a Reader that parses the variable with time.ParseDuration.
func Duration(ctx context.Context, key string, opts ...Option[time.Duration]) Reader[time.Duration] {
	return apply(Map(get(ctx, key), func(s string) (time.Duration, error) {
		return time.ParseDuration(strings.TrimSpace(s))
	}), opts)
}

// SlogLevel returns a Reader that parses the variable as a slog level name
// ("debug", "info", "warn", "error", optionally with an offset like "info+2").
func SlogLevel(ctx context.Context, key string, opts ...Option[slog.Level]) Reader[slog.Level] {
	return apply(Map(get(ctx, key), func(s string) (slog.Level, error) {
		var lvl slog.Level

		err := lvl.UnmarshalText([]byte(strings.TrimSpace(s)))

		return lvl, err
	}), opts)
}
