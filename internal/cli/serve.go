package cli

import (
	"context"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mark3labs/openapi2locust/internal/server"
)

var serveRunner = runServe

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the generation HTTP service",
		Long: "Run the HTTP service exposing POST /generate and GET /health. " +
			"Settings come from an optional config file plus OPENAPI2LOCUST_* environment overrides.",
		Example: strings.TrimSpace(`  openapi2locust serve --addr :8080
  openapi2locust --config server.yaml serve`),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			cfg, err := server.LoadConfig(strings.TrimSpace(configPath))
			if err != nil {
				return newUsageError(err.Error())
			}
			if cmd.Flags().Changed("addr") {
				addr, err := cmd.Flags().GetString("addr")
				if err != nil {
					return err
				}
				cfg.Addr = strings.TrimSpace(addr)
			}
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			return serveRunner(cmd.Context(), cfg, verbose)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides config)")

	return cmd
}

func runServe(ctx context.Context, cfg server.Config, verbose bool) error {
	log := newLogger(verbose)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, log)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
