// Package export serializes enriched transactions into chunked output
// artifacts. Formats are pluggable strategies looked up by name, the
// way sinks are.
package export

import (
	"fmt"
	"sort"
	"sync"

	"github.com/landslurp/landslurp/internal/pricepaid"
)

// MaxChunkRows bounds the rows serialized into one chunk.
const MaxChunkRows = 25000

// Exporter is one output format: a per-row serializer, an assembler
// that turns up to MaxChunkRows serialized records into one textual
// payload (prepending a header for tabular formats), and the file
// extension for chunk names.
type Exporter interface {
	Serialize(row pricepaid.Enriched) (string, error)
	Assemble(records []string) string
	Extension() string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Exporter)
)

func Register(name string, e Exporter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = e
}

func ForName(name string) (Exporter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("exporter not found: %s", name)
	}
	return e, nil
}

func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Chunk is one assembled output artifact.
type Chunk struct {
	Name    string
	Index   int
	Payload string
}

// ChunkName derives the deterministic artifact name for a chunk of the
// dataset identified by hash.
func ChunkName(hash string, index int, ext string) string {
	return fmt.Sprintf("%s-part-%d.%s", hash, index, ext)
}

// Chunks serializes rows in order and groups them into chunks of at
// most MaxChunkRows: chunk i holds rows [i*MaxChunkRows, (i+1)*MaxChunkRows).
func Chunks(e Exporter, hash string, rows []pricepaid.Enriched) ([]Chunk, error) {
	var chunks []Chunk
	for start := 0; start < len(rows); start += MaxChunkRows {
		end := start + MaxChunkRows
		if end > len(rows) {
			end = len(rows)
		}
		records := make([]string, 0, end-start)
		for _, row := range rows[start:end] {
			rec, err := e.Serialize(row)
			if err != nil {
				return nil, fmt.Errorf("serialize row %s: %w", row.ID, err)
			}
			records = append(records, rec)
		}
		index := start / MaxChunkRows
		chunks = append(chunks, Chunk{
			Name:    ChunkName(hash, index, e.Extension()),
			Index:   index,
			Payload: e.Assemble(records),
		})
	}
	return chunks, nil
}
