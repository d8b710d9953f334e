package logger

import (
	"context"
	"errors"
	"log/slog"
)

// fanoutHandler passes each record to every handler that accepts its level.
type fanoutHandler struct {
	handlers []slog.Handler
}

var _ slog.Handler = (*fanoutHandler)(nil)

func (f *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (f *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error

	for _, h := range f.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}

		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (f *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		out[i] = h.WithAttrs(attrs)
	}

	return &fanoutHandler{handlers: out}
}

func (f *fanoutHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		out[i] = h.WithGroup(name)
	}

	return &fanoutHandler{handlers: out}
}
