package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/georgemunganga/stylist/internal/modules/assistant"
	"github.com/georgemunganga/stylist/internal/modules/catalog"
	"github.com/georgemunganga/stylist/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assistant and catalog over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	router := server.NewRouter(
		server.Options{
			RateLimit: rate.Limit(a.cfg.RateLimitRPS),
			Burst:     a.cfg.RateLimitBurst,
			AccessLog: true,
		},
		catalog.NewHandler(a.catalog),
		assistant.NewHandler(a.assistant),
	)

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", srv.Addr).Msg("stylist API server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
