// Package closer chains io.Closer values that must be closed together, such
// as a compressor and the file under it.
package closer

import (
	"io"
	"sync"

	perrors "github.com/amp-labs/patience/errors"
)

type customCloser struct {
	closeFn func() error
}

// CustomCloser turns a cleanup function into an io.Closer. It returns nil if
// closeFn is nil.
func CustomCloser(closeFn func() error) io.Closer {
	if closeFn == nil {
		return nil
	}

	return &customCloser{closeFn: closeFn}
}

func (c *customCloser) Close() error {
	return c.closeFn()
}

// Closer closes a list of closers in the order they were added. Every closer
// is attempted even when an earlier one fails, and failures are labelled with
// the name the closer was added under.
//
//	chain := closer.NewCloser()
//	chain.Add(encoder, "compressor")
//	chain.Add(file, path)
//	return chain.Close()
type Closer struct {
	closers []io.Closer
	names   []string
}

// NewCloser returns an empty Closer.
func NewCloser() *Closer {
	return &Closer{}
}

// Add appends closer under name. Nil closers are skipped on Close. Add is
// not safe for concurrent use.
func (c *Closer) Add(closer io.Closer, name string) *Closer {
	c.closers = append(c.closers, closer)
	c.names = append(c.names, name)

	return c
}

// Len returns the number of closers added so far.
func (c *Closer) Len() int {
	return len(c.closers)
}

// Close closes every closer and returns the joined failures.
func (c *Closer) Close() error {
	var errs perrors.Collection

	for i, closer := range c.closers {
		errs.AddClose(closer, c.names[i])
	}

	return errs.GetError()
}

type closeOnce struct {
	mut    sync.Mutex
	closed bool
	closer io.Closer
}

// CloseOnce wraps closer so that only the first successful Close reaches it.
// A failed Close may be retried. It returns nil if closer is nil, and is safe
// for concurrent use.
func CloseOnce(closer io.Closer) io.Closer {
	if closer == nil {
		return nil
	}

	if once, ok := closer.(*closeOnce); ok {
		return once
	}

	return &closeOnce{closer: closer}
}

func (c *closeOnce) Close() error {
	c.mut.Lock()
	defer c.mut.Unlock()

	if c.closed {
		return nil
	}

	if err := c.closer.Close(); err != nil {
		return err
	}

	c.closed = true

	return nil
}
