package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/landslurp/landslurp/cmd/landslurpd/config"
	"github.com/landslurp/landslurp/internal/ingest"
)

var ingestYear int

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run a single ingestion attempt and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		return runIngest(cfg)
	},
}

func init() {
	ingestCmd.Flags().IntVar(&ingestYear, "year", 0, "ingest the full-year dataset instead of the latest monthly update")
}

func runIngest(cfg *config.Config) error {
	ctx := cmdContext()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()
	logger = logger.Named("ingest")

	orchestrator, err := newOrchestrator(cfg, logger)
	if err != nil {
		return fmt.Errorf("boot failure: %w", err)
	}

	dataset := ingest.LatestMonthly()
	if ingestYear != 0 {
		dataset = ingest.FullYear(ingestYear)
	}

	res, err := orchestrator.Run(ctx, dataset)
	if err != nil {
		return err
	}
	logger.Info("done",
		zap.Stringer("outcome", res.Outcome),
		zap.String("hash", res.Hash),
		zap.Int("rows", res.Rows))
	return nil
}
