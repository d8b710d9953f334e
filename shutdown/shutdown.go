// Package shutdown turns SIGINT and SIGTERM into context cancellation, with
// hooks that run before the context is cancelled.
package shutdown

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler cancels its context on the first signal or on Shutdown.
type Handler struct {
	mut     sync.Mutex
	hooks   []func()
	signals chan os.Signal
	cancel  context.CancelFunc
	once    sync.Once
	stopped chan struct{}
}

// SetupHandler starts listening for SIGINT and SIGTERM and returns a context
// derived from parent that is cancelled when one arrives. Call Stop when the
// handler is no longer needed.
func SetupHandler(parent context.Context) (context.Context, *Handler) {
	ctx, cancel := context.WithCancel(parent)

	h := &Handler{
		signals: make(chan os.Signal, 1),
		cancel:  cancel,
		stopped: make(chan struct{}),
	}

	signal.Notify(h.signals, syscall.SIGINT, syscall.SIGTERM)

	go h.wait()

	return ctx, h
}

func (h *Handler) wait() {
	select {
	case sig := <-h.signals:
		slog.Warn("Received " + sig.String() + ", shutting down...")
		h.trigger()
	case <-h.stopped:
	}
}

// BeforeShutdown registers a hook. Hooks run in registration order, once,
// while the context is still alive.
func (h *Handler) BeforeShutdown(hook func()) {
	h.mut.Lock()
	defer h.mut.Unlock()

	h.hooks = append(h.hooks, hook)
}

// Shutdown runs the hooks and cancels the context as if a signal had
// arrived.
func (h *Handler) Shutdown() {
	h.trigger()
}

// Stop stops listening for signals and cancels the context without running
// the hooks.
func (h *Handler) Stop() {
	h.once.Do(func() {
		signal.Stop(h.signals)
		close(h.stopped)
		h.cancel()
	})
}

func (h *Handler) trigger() {
	h.once.Do(func() {
		signal.Stop(h.signals)
		close(h.stopped)

		h.mut.Lock()
		hooks := h.hooks
		h.hooks = nil
		h.mut.Unlock()

		for _, hook := range hooks {
			hook()
		}

		h.cancel()
	})
}
