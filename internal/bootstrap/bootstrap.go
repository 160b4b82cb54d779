// Package bootstrap runs long-lived processes and releases their resources on interrupt.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"
)

// DefaultShutdownTimeout bounds the time given to shutdown hooks.
const DefaultShutdownTimeout = 10 * time.Second

type shutdownHook struct {
	name string
	fn   func(ctx context.Context) error
}

// App runs a function until it returns or the process is interrupted.
type App struct {
	shutdownTimeout time.Duration

	mu    sync.Mutex
	hooks []shutdownHook
}

func New() *App {
	return &App{shutdownTimeout: DefaultShutdownTimeout}
}

// WithShutdownTimeout sets the deadline passed to shutdown hooks.
func (a *App) WithShutdownTimeout(timeout time.Duration) *App {
	a.shutdownTimeout = timeout
	return a
}

// AddShutdownHook registers fn to release a resource such as a server or a database.
// Hooks run in reverse registration order. It is safe to call from the run function.
func (a *App) AddShutdownHook(name string, fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, shutdownHook{name: name, fn: fn})
}

// Run calls run and waits. On interrupt or cancellation of ctx, the shutdown hooks are called.
// An error returned by run while ctx is still live is returned as is.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := run(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return a.shutdown()
	case err := <-errCh:
		if ctx.Err() != nil {
			return errors.Join(err, a.shutdown())
		}
		return err
	}
}

func (a *App) shutdown() error {
	slog.Default().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	for i := len(a.hooks) - 1; i >= 0; i-- {
		hook := a.hooks[i]
		if err := hook.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown %s: %w", hook.name, err))
		}
	}
	return errors.Join(errs...)
}
