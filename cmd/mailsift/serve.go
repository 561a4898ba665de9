package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/internal/config"
	"github.com/mailsift/mailsift/internal/crawler"
	"github.com/mailsift/mailsift/internal/log"
	"github.com/mailsift/mailsift/internal/webapi"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the harvest HTTP API",
		Long: `Serve runs an HTTP server exposing the harvester as a JSON API.

Endpoints:
  POST /api/v1/harvest  run a crawl; body: {"url": "...", "max_pages": 10, ...}
  GET  /healthz         liveness check

Budgets outside their safe ranges are clamped, and the applied values
are echoed back in the response.

Examples:
  # Serve on the default port
  mailsift serve

  # Serve on a custom address
  mailsift serve --listen 127.0.0.1:9090`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("listen", "l", ":8080", "Bind address for the API server")
	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Timeout for each page fetch")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()

	var err error
	cfg.ListenAddr, err = cmd.Flags().GetString("listen")
	if err != nil {
		return err
	}
	cfg.FetchTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Stop serving on interrupt; in-flight crawls get a drain window.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := crawler.New(cfg, crawler.WithLogger(logger))
	srv := webapi.NewServer(c, cfg.ListenAddr,
		webapi.WithLogger(logger),
		webapi.WithVersion(getVersion()),
	)

	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
