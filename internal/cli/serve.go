package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/typo3docs/pkg/adapters/http"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP servers.
const ShutdownTimeout = 5 * time.Second

// RunServe exposes the gateway over REST until ctx is cancelled.
func RunServe(ctx context.Context, rt *Runtime) error {
	handler := httpAdapter.NewHandler(rt.Gateway,
		httpAdapter.WithLogger(rt.Logger),
		httpAdapter.WithMetrics(rt.Metrics.Handler()),
	)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", rt.Config.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serveUntilDone(ctx, srv, rt.Logger)
}

// serveUntilDone runs srv and shuts it down gracefully when ctx ends.
func serveUntilDone(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting typo3docs server", "address", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "error", err)
			if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("typo3docs server stopped gracefully")
		return nil
	}
}
