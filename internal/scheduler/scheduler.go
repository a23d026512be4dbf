// Package scheduler drives provisioning and ingestion on a fixed
// cadence for the lifetime of the host process.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/landslurp/landslurp/internal/ingest"
)

// DefaultInterval is the pause between ingestion attempts. The registry
// publishes monthly; a weekly poll notices a new file soon enough.
const DefaultInterval = 7 * 24 * time.Hour

// Provisioner is the startup dependency ensuring the search index exists.
type Provisioner interface {
	Ensure(ctx context.Context) error
}

// Ingester runs one ingestion attempt.
type Ingester interface {
	Run(ctx context.Context, ds ingest.Dataset) (ingest.Result, error)
}

// Scheduler provisions once, then loops: ingest the latest monthly
// dataset, log the outcome, sleep, repeat. A failed attempt is not
// retried within the cycle; the next scheduled attempt tries again.
type Scheduler struct {
	Provisioner Provisioner
	Ingester    Ingester
	Interval    time.Duration
	Logger      *zap.Logger
}

func New(p Provisioner, i Ingester, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		Provisioner: p,
		Ingester:    i,
		Interval:    DefaultInterval,
		Logger:      logger,
	}
}

// Run blocks until ctx is cancelled. Provisioning failure is fatal:
// ingestion never starts against an unverified index.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Provisioner.Ensure(ctx); err != nil {
		return fmt.Errorf("provision search index: %w", err)
	}

	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	for {
		if err := ctx.Err(); err != nil {
			s.Logger.Info("scheduler shutting down")
			return err
		}

		res, err := s.Ingester.Run(ctx, ingest.LatestMonthly())
		if err != nil {
			s.Logger.Error("ingestion attempt failed, waiting for next cycle", zap.Error(err))
		} else {
			s.Logger.Info("ingestion attempt finished",
				zap.Stringer("outcome", res.Outcome),
				zap.String("hash", res.Hash),
				zap.Int("rows", res.Rows))
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.Logger.Info("scheduler shutting down")
			return ctx.Err()
		case <-timer.C:
		}
	}
}
