package envutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

var (
	ErrBadEnvVar     = errors.New("error parsing environment variable")
	ErrEnvVarMissing = errors.New("missing environment variable")
)

// Source says where a Reader's value came from.
type Source string

const (
	SourceNone        Source = ""
	SourceContext     Source = "context"
	SourceEnvironment Source = "environment"
	SourceDefault     Source = "default"
)

// Reader is a value read from an environment variable (or a context
// override of one). It carries the key, whether a value was found, where it
// came from and any parse or validation error, so that callers can decide how
// to handle a missing or malformed setting in one place.
type Reader[A any] struct {
	key     string
	present bool
	source  Source
	err     error

	value A
}

// Key returns the key of the environment variable.
func (e Reader[A]) Key() string {
	return e.key
}

// Source reports where the value came from.
func (e Reader[A]) Source() Source {
	return e.source
}

// Value returns the value of the environment variable, or an error if the value
// is missing or if there was an error parsing it.
func (e Reader[A]) Value() (A, error) { //nolint:ireturn
	if e.err != nil {
		return e.value, fmt.Errorf("%w %s: %w", ErrBadEnvVar, e.key, e.err)
	}

	if !e.present {
		return e.value, fmt.Errorf("%w %s", ErrEnvVarMissing, e.key)
	}

	return e.value, nil
}

// ValueOrFatal returns the value of the environment variable, or exits the
// program if the value is missing or if there was an error parsing it.
func (e Reader[A]) ValueOrFatal() A { //nolint:ireturn
	value, err := e.Value()
	if err != nil {
		slog.Error("error reading environment variable", "key", e.key, "error", err)
		os.Exit(1)
	}

	return value
}

// ValueOrElse returns the value of the environment variable, or a default value
// if the value is missing or if there was an error parsing it.
func (e Reader[A]) ValueOrElse(v A) A { //nolint:ireturn
	if e.present && e.err == nil {
		return e.value
	}

	if e.err != nil {
		slog.Warn("error reading environment variable, using fallback value",
			"key", e.key, "error", e.err, "fallback", v)
	}

	return v
}

// HasValue returns true if the environment variable was set, and false otherwise.
func (e Reader[A]) HasValue() bool {
	return e.present && e.err == nil
}

// Error returns the error that occurred when reading the environment variable, if any.
func (e Reader[A]) Error() error {
	return e.err
}

// String returns a string representation of the Reader.
func (e Reader[A]) String() string {
	switch {
	case e.err != nil:
		return fmt.Sprintf("%s=<error: %v>", e.key, e.err)
	case e.present:
		return fmt.Sprintf("%s=%v (%s)", e.key, e.value, e.source)
	default:
		return e.key + "=<not set>"
	}
}

// WithDefault returns a new Reader with the given default value if the original
// Reader has no value. If the original Reader has a value, it is returned as is.
func (e Reader[A]) WithDefault(v A) Reader[A] { //nolint:ireturn
	if e.present {
		return e
	}

	return Reader[A]{
		key:     e.key,
		present: true,
		source:  SourceDefault,
		err:     e.err,
		value:   v,
	}
}

// Map returns a new Reader with the value transformed by the given function.
func (e Reader[A]) Map(f func(A) (A, error)) Reader[A] { //nolint:ireturn
	return Map(e, f)
}

// Map returns a new Reader with the value transformed by the given function.
// This can translate types, so it is more flexible than Reader.Map.
func Map[A any, B any](env Reader[A], f func(A) (B, error)) Reader[B] {
	if !env.present || env.err != nil {
		return Reader[B]{
			key:     env.key,
			present: env.present,
			source:  env.source,
			err:     env.err,
		}
	}

	val, err := f(env.value)

	return Reader[B]{
		key:     env.key,
		present: true,
		source:  env.source,
		err:     err,
		value:   val,
	}
}
