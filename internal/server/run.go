package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bobmcallan/folio/internal/app"
	"github.com/bobmcallan/folio/internal/common"
)

// Run serves the REST API until ctx is cancelled or the process receives
// SIGINT or SIGTERM, then shuts down gracefully.
func Run(ctx context.Context, a *app.App) error {
	common.PrintBanner(a.Config, a.Logger)

	srv := NewServer(a)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	a.Logger.Info().
		Str("url", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)).
		Msg("Server ready")

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-sigCtx.Done():
		a.Logger.Info().Msg("Shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	common.PrintShutdownBanner(a.Logger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	a.Logger.Info().Msg("Server stopped")
	return nil
}
