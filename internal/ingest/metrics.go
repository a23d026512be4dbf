package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	datasetsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "landslurp_datasets_ingested_total",
		Help: "Dataset ingestion attempts that completed end to end",
	})
	datasetsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "landslurp_datasets_skipped_total",
		Help: "Ingestion attempts short-circuited by the hash index",
	})
	rowsEnriched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "landslurp_rows_enriched_total",
		Help: "Price-paid rows enriched and exported",
	})
	chunksWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "landslurp_chunks_written_total",
		Help: "Exported chunks durably written",
	})
	ingestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "landslurp_ingest_duration_seconds",
		Help:    "Wall-clock duration of completed ingestion attempts",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})
)
