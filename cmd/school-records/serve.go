package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/school-records/internal/http/router"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the records over an HTTP/JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// serve runs the HTTP server until SIGINT or SIGTERM, then shuts down
// gracefully: stop accepting connections, let in-flight requests finish
// (up to 5 seconds), exit.
func (a *app) serve(ctx context.Context) error {
	log := a.log
	log.Info("starting school-records",
		slog.String("env", a.cfg.Env),
		slog.String("driver", a.cfg.Database.Driver))

	// Connect eagerly so a misconfiguration shows up at boot. A failure is
	// not fatal: the provider retries on the next request.
	if err := a.db.Ping(ctx); err != nil {
		log.Warn("database not reachable yet, will retry on demand",
			slog.String("error", err.Error()))
	}

	server := &http.Server{
		Addr:    a.cfg.HTTPServer.Addr,
		Handler: router.New(a.students, a.courses),

		// Set timeouts to prevent slow-client attacks.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ListenAndServe blocks, so it runs in its own goroutine and reports
	// back on errCh.
	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("address", server.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown() is
		// called. That is expected: we don't want to report it as an error.
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Buffered so we don't miss the signal if we are briefly busy.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server encountered an error", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-done:
	}

	log.Info("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server gracefully", slog.String("error", err.Error()))
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}
