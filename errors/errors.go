// Package errors holds the error sentinels shared across the patience
// packages and a small helper for gathering errors from cleanup paths.
package errors

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNotSorted is returned when a verification pass finds two adjacent
	// values out of order.
	ErrNotSorted = errors.New("output is not sorted")

	// ErrInvalidInput marks input the tools refuse to process, such as a
	// file that cannot be decoded to text.
	ErrInvalidInput = errors.New("invalid input")
)

// Collection is a thread-unsafe utility for accumulating multiple errors.
// It provides methods to add errors, check for errors, and retrieve them as a single combined error.
// Use this when you need to collect errors from multiple operations and return them together.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are automatically ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// AddClose closes closer and records a failure, labelled with what.
func (c *Collection) AddClose(closer io.Closer, what string) {
	if closer == nil {
		return
	}

	if err := closer.Close(); err != nil {
		c.Add(fmt.Errorf("closing %s: %w", what, err))
	}
}

// Clear removes all errors from the collection, resetting it to an empty state.
func (c *Collection) Clear() {
	c.errors = nil
}

// Len returns the number of errors collected so far.
func (c *Collection) Len() int {
	return len(c.errors)
}

// HasError returns true if the collection contains at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// GetError returns the collected errors as a single error.
// Returns nil if the collection is empty, the single error if there's only one,
// or a joined error (using errors.Join) if there are multiple errors.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
