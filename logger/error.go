package logger

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// AnnotateError wraps err with slog key-value pairs. When the error is later
// logged through a handler built by NewHandler, the pairs are added to the
// record next to it. errors.Is and errors.As see through the wrapper.
//
//	return logger.AnnotateError(err, "path", path, "line", n)
//
// Returns nil if err is nil.
func AnnotateError(err error, args ...any) error {
	if err == nil {
		return nil
	}

	r := slog.NewRecord(time.Time{}, slog.LevelDebug, "", 0)
	r.Add(args...)

	attrs := make([]slog.Attr, 0, r.NumAttrs())

	r.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, attr)

		return true
	})

	return &slogError{err: err, attrs: attrs}
}

type slogError struct {
	err   error
	attrs []slog.Attr
}

func (s *slogError) Error() string {
	return s.err.Error()
}

func (s *slogError) Unwrap() error {
	return s.err
}

// slogErrorLogger lifts the attributes of annotated errors into the record.
type slogErrorLogger struct {
	inner slog.Handler
}

var _ slog.Handler = (*slogErrorLogger)(nil)

func (s *slogErrorLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return s.inner.Enabled(ctx, level)
}

func (s *slogErrorLogger) Handle(ctx context.Context, record slog.Record) error {
	var (
		baseAttrs []slog.Attr
		errAttrs  []slog.Attr
	)

	record.Attrs(func(attr slog.Attr) bool {
		var se *slogError

		if err, ok := attr.Value.Any().(error); ok && errors.As(err, &se) {
			baseAttrs = append(baseAttrs, slog.Any(attr.Key, se.err))
			errAttrs = append(errAttrs, se.attrs...)

			return true
		}

		baseAttrs = append(baseAttrs, attr)

		return true
	})

	if len(errAttrs) == 0 {
		return s.inner.Handle(ctx, record)
	}

	r := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	r.AddAttrs(baseAttrs...)
	r.AddAttrs(errAttrs...)

	return s.inner.Handle(ctx, r)
}

func (s *slogErrorLogger) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &slogErrorLogger{inner: s.inner.WithAttrs(attrs)}
}

func (s *slogErrorLogger) WithGroup(name string) slog.Handler {
	return &slogErrorLogger{inner: s.inner.WithGroup(name)}
}
