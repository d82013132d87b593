package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/ostia/internal/cli"
	httpAdapter "github.com/aretw0/ostia/pkg/adapters/http"
	"github.com/aretw0/ostia/pkg/observability"
	"github.com/aretw0/ostia/pkg/registry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts ostia in server mode, exposing a JSON API over HTTP to learn
models from training sets and apply them to words. Prometheus metrics are
served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := readOptions(cmd)
		port, _ := cmd.Flags().GetString("port")
		logger := cli.NewLogger(opts.Debug, cmd.ErrOrStderr())

		backend, err := cli.OpenBackend(opts)
		if err != nil {
			return err
		}
		defer backend.Close()

		metrics := observability.NewMetrics()
		learner := cli.NewLearner(opts, logger, backend.Loader, metrics)

		handlerOpts := []httpAdapter.Option{
			httpAdapter.WithRegistry(registry.NewRegistry()),
			httpAdapter.WithMetricsHandler(metrics.Handler()),
		}
		if sessions, err := backend.Sessions(logger); err == nil {
			handlerOpts = append(handlerOpts, httpAdapter.WithSessions(sessions))
		} else {
			logger.Warn("training set editing disabled", "err", err)
		}

		handler, err := httpAdapter.NewHandler(learner, handlerOpts...)
		if err != nil {
			return fmt.Errorf("failed to build handler: %w", err)
		}

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting ostia server", "addr", srv.Addr, "store", opts.Store)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("ostia server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
