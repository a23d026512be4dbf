package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/landslurp/landslurp/cmd/landslurpd/config"
	"github.com/landslurp/landslurp/internal/scheduler"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the background ingestion loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		return runWorker(cfg)
	},
}

func runWorker(cfg *config.Config) error {
	ctx := cmdContext()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()
	logger = logger.Named("worker")

	if cfg.Metrics.ListenAddr != "" {
		go serveMetrics(cfg.Metrics.ListenAddr, logger)
	}

	orchestrator, err := newOrchestrator(cfg, logger)
	if err != nil {
		return fmt.Errorf("boot failure: %w", err)
	}

	s := scheduler.New(newProvisioner(cfg, logger), orchestrator, logger)
	if cfg.Ingest.Interval > 0 {
		s.Interval = cfg.Ingest.Interval
	}

	logger.Info("starting worker", zap.Duration("interval", s.Interval))
	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func serveMetrics(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("serving metrics", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics server stopped", zap.Error(err))
	}
}
