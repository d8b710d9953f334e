package envutil

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrNotAllowed is returned by OneOf when a value is not in the allowed set.
var ErrNotAllowed = errors.New("value not allowed")

// Option is a function which modifies a Reader. It's used by
// functions like String and Bool so that the caller can easily
// provide defaults and validation.
type Option[T any] func(Reader[T]) Reader[T]

// Default allows you to provide a default value for the Reader.
func Default[T any](dfl T) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.WithDefault(dfl)
	}
}

// Validate allows you to provide a validation function to run
// on the Reader's value. If the validation function returns an
// error, the Reader will return that error.
func Validate[T any](f func(T) error) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.Map(func(val T) (T, error) {
			return val, f(val)
		})
	}
}

// OneOf restricts a string setting to the given values (case-insensitive).
// The value is normalised to lower case.
func OneOf(allowed ...string) Option[string] {
	return func(rdr Reader[string]) Reader[string] {
		return rdr.Map(func(val string) (string, error) {
			val = strings.ToLower(strings.TrimSpace(val))
			if !slices.Contains(allowed, val) {
				return val, fmt.Errorf("%w: %q (expected one of %s)",
					ErrNotAllowed, val, strings.Join(allowed, ", "))
			}

			return val, nil
		})
	}
}
