// Package ingest coordinates one end-to-end ingestion attempt:
// download, dedupe via content hash, enrich, export, and durably record
// the result.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/landslurp/landslurp/internal/enrich"
	"github.com/landslurp/landslurp/internal/export"
	"github.com/landslurp/landslurp/internal/geo"
	"github.com/landslurp/landslurp/internal/hashing"
	"github.com/landslurp/landslurp/internal/sink"
)

// Outcome distinguishes a completed ingestion from one the hash index
// short-circuited.
type Outcome int

const (
	NothingToDo Outcome = iota
	Completed
)

func (o Outcome) String() string {
	if o == Completed {
		return "completed"
	}
	return "nothing-to-do"
}

// Result reports one ingestion attempt for caller-side logging.
type Result struct {
	Outcome Outcome
	Hash    string
	Rows    int
}

// Orchestrator owns the lifecycle of a single ingestion attempt. Errors
// from download, enrichment, export, or storage writes propagate to the
// caller unhandled; deciding whether to continue is the scheduler's
// concern.
type Orchestrator struct {
	Downloader Downloader
	Store      sink.Store
	Postcodes  geo.Store
	Exporter   export.Exporter
	BatchSize  int
	Logger     *zap.Logger
}

func NewOrchestrator(dl Downloader, store sink.Store, postcodes geo.Store, ex export.Exporter, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		Downloader: dl,
		Store:      store,
		Postcodes:  postcodes,
		Exporter:   ex,
		BatchSize:  enrich.DefaultBatchSize,
		Logger:     logger,
	}
}

// Run executes one attempt for the given selector. A dataset whose hash
// is already recorded returns a NothingToDo result before any
// enrichment or export work happens.
func (o *Orchestrator) Run(ctx context.Context, ds Dataset) (Result, error) {
	started := time.Now()
	logger := o.Logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.Stringer("dataset", ds))

	logger.Info("downloading dataset", zap.String("file", ds.FileName()))
	payload, err := o.Downloader.Download(ctx, ds)
	if err != nil {
		return Result{}, err
	}

	hash := hashing.Sum(payload)
	logger = logger.With(zap.String("hash", hash))

	index := &HashIndex{Store: o.Store}
	ingested, err := index.Ingested(ctx)
	if err != nil {
		return Result{}, err
	}
	if _, ok := ingested[hash]; ok {
		logger.Info("dataset already ingested")
		datasetsSkipped.Inc()
		return Result{Outcome: NothingToDo, Hash: hash}, nil
	}

	// New dataset: enrich with a cache scoped to this run.
	enricher := enrich.New(geo.NewCache(o.Postcodes, logger), logger)
	if o.BatchSize > 0 {
		enricher.BatchSize = o.BatchSize
	}
	rows, err := enricher.Enrich(ctx, payload)
	if err != nil {
		return Result{}, err
	}

	chunks, err := export.Chunks(o.Exporter, hash, rows)
	if err != nil {
		return Result{}, err
	}

	// All chunk writes are issued together and jointly awaited; the
	// marker is only written once every one of them has succeeded.
	g, gctx := errgroup.WithContext(ctx)
	for _, chunk := range chunks {
		g.Go(func() error {
			if err := o.Store.Upload(gctx, chunk.Name, []byte(chunk.Payload)); err != nil {
				return fmt.Errorf("write chunk %s: %w", chunk.Name, err)
			}
			chunksWritten.Inc()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := index.Record(ctx, hash); err != nil {
		return Result{}, err
	}

	datasetsIngested.Inc()
	rowsEnriched.Add(float64(len(rows)))
	ingestDuration.Observe(time.Since(started).Seconds())

	logger.Info("dataset ingested",
		zap.Int("rows", len(rows)),
		zap.Int("chunks", len(chunks)),
		zap.Duration("took", time.Since(started)))
	return Result{Outcome: Completed, Hash: hash, Rows: len(rows)}, nil
}
