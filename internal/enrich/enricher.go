// Package enrich joins parsed price-paid rows against the geo cache in
// bounded concurrent batches, preserving input order end to end.
package enrich

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/landslurp/landslurp/internal/geo"
	"github.com/landslurp/landslurp/internal/pricepaid"
)

const (
	// DefaultBatchSize bounds concurrent in-flight geo lookups.
	DefaultBatchSize = 500
	// progressEvery controls how often progress is logged.
	progressEvery = 5000
)

// Enricher resolves a geo point for every row that carries a postcode.
type Enricher struct {
	Geo       *geo.Cache
	BatchSize int
	Logger    *zap.Logger
}

func New(cache *geo.Cache, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{Geo: cache, BatchSize: DefaultBatchSize, Logger: logger}
}

// Enrich parses the whole payload eagerly, then walks it in batches:
// each batch fans out one lookup per row with a postcode and is awaited
// fully before the next starts, so peak concurrency stays bounded and
// rows never reorder across batch boundaries. A malformed row fails the
// entire run; cancellation is observed between batches.
func (e *Enricher) Enrich(ctx context.Context, payload []byte) ([]pricepaid.Enriched, error) {
	rows, err := pricepaid.ParseAll(payload)
	if err != nil {
		return nil, err
	}

	withPostcode, unique := postcodeStats(rows)
	e.Logger.Info("enriching dataset",
		zap.Int("rows", len(rows)),
		zap.Int("postcodes", withPostcode),
		zap.Int("unique_postcodes", unique))

	batchSize := e.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	enriched := make([]pricepaid.Enriched, len(rows))
	for start := 0; start < len(rows); start += batchSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("enrichment cancelled: %w", err)
		}

		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			enriched[i] = pricepaid.Enriched{Transaction: rows[i]}
			if rows[i].Postcode == "" {
				continue
			}
			g.Go(func() error {
				enriched[i].Geo = e.Geo.Lookup(gctx, rows[i].Postcode)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		if done := end; done%progressEvery == 0 || done == len(rows) {
			e.Logger.Info("enrichment progress",
				zap.Int("remaining", len(rows)-done),
				zap.Int("postcodes", withPostcode),
				zap.Int("unique_postcodes", unique))
		}
	}
	return enriched, nil
}

func postcodeStats(rows []pricepaid.Transaction) (withPostcode, unique int) {
	seen := make(map[string]struct{})
	for _, row := range rows {
		if row.Postcode == "" {
			continue
		}
		withPostcode++
		seen[row.Postcode] = struct{}{}
	}
	return withPostcode, len(seen)
}
