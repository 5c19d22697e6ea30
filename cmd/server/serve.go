package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sozercan/insight-agent/internal/analyzer"
	"github.com/sozercan/insight-agent/internal/config"
	"github.com/sozercan/insight-agent/internal/logging"
	"github.com/sozercan/insight-agent/internal/server"
)

func newServeCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, *configFile)
		},
	}
	addServeFlags(cmd.Flags())
	return cmd
}

func runServe(cmd *cobra.Command, configFile string) error {
	cfg, err := config.LoadConfig(configFile, cmd.Flags())
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return err
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(*cfg, logger, analyzer.New(logger))
	logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port, "version", version)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server failed", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}
