package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/landslurp/landslurp/internal/sink"
)

const (
	markerPrefix = "hash-"
	markerExt    = ".txt"
)

// MarkerName is the durable sentinel object name for a dataset hash.
func MarkerName(hash string) string {
	return markerPrefix + hash + markerExt
}

// HashIndex answers which dataset hashes have been fully ingested, by
// listing marker objects in the store. It keeps no state of its own and
// is queried fresh on every attempt.
type HashIndex struct {
	Store sink.Store
}

// Ingested returns the set of fully ingested dataset hashes.
func (h *HashIndex) Ingested(ctx context.Context) (map[string]struct{}, error) {
	names, err := h.Store.List(ctx, markerPrefix)
	if err != nil {
		return nil, fmt.Errorf("list hash markers: %w", err)
	}
	hashes := make(map[string]struct{}, len(names))
	for _, name := range names {
		hash := strings.TrimPrefix(name, markerPrefix)
		if dot := strings.LastIndexByte(hash, '.'); dot >= 0 {
			hash = hash[:dot]
		}
		hashes[hash] = struct{}{}
	}
	return hashes, nil
}

// Record writes the zero-byte marker declaring the dataset fully
// ingested. Callers must only invoke this after every chunk write for
// the hash has succeeded.
func (h *HashIndex) Record(ctx context.Context, hash string) error {
	if err := h.Store.Upload(ctx, MarkerName(hash), nil); err != nil {
		return fmt.Errorf("write hash marker: %w", err)
	}
	return nil
}
