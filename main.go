package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tournevent/pricing/internal/server"
	"github.com/tournevent/pricing/internal/telemetry"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "pricing",
	Short:   "Logistics Pricing Engine - shipping quote and delivery estimate service",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize telemetry
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracer, tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(ctx)
	}

	// Wire collaborators and the quote service
	quotes, cleanup, err := initQuoteService(ctx, cfg, logger, tracer)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("Starting Logistics Pricing Engine",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
		zap.Bool("capacity_check", cfg.WarehouseCapacityCheck),
	)

	// Start HTTP server
	srv := server.New(server.Config{
		Port:           cfg.Port,
		RequestTimeout: cfg.RequestTimeout,
	}, quotes, logger, telemetry.NewMetrics())
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
