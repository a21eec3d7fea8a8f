// Package server runs the HTTP API alongside background maintenance.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Defaults for Config fields left zero.
const (
	DefaultPruneInterval   = time.Hour
	DefaultShutdownTimeout = 30 * time.Second
)

// Config for the server runner.
type Config struct {
	Addr            string
	PruneInterval   time.Duration
	ShutdownTimeout time.Duration
}

// Pruner drops expired cache entries.
type Pruner interface {
	Prune(ctx context.Context) (int64, error)
}

// Runner manages the HTTP server and the cache prune loop.
type Runner struct {
	config  Config
	handler http.Handler
	pruner  Pruner
	logger  *slog.Logger
}

// NewRunner creates a new runner. A nil pruner disables the prune loop.
func NewRunner(cfg Config, handler http.Handler, pruner Pruner, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PruneInterval <= 0 {
		cfg.PruneInterval = DefaultPruneInterval
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	return &Runner{
		config:  cfg,
		handler: handler,
		pruner:  pruner,
		logger:  logger,
	}
}

// Run listens on the configured address and serves until ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", r.config.Addr, err)
	}
	return r.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully.
// It returns nil on a clean shutdown.
func (r *Runner) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           r.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		r.logger.Info("http server stopped")
		return nil
	})

	if r.pruner != nil {
		g.Go(func() error {
			r.pruneLoop(gctx)
			return nil
		})
	}

	return g.Wait()
}

func (r *Runner) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(r.config.PruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.pruner.Prune(ctx)
			if err != nil {
				if ctx.Err() == nil {
					r.logger.Warn("cache prune failed", "error", err)
				}
				continue
			}
			if n > 0 {
				r.logger.Info("pruned metadata cache", "removed", n)
			}
		}
	}
}
