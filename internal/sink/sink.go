// Package sink provides durable object storage for exported chunks and
// hash markers: named-artifact writes plus prefix listing, backed by
// Azure Blob Storage, S3, or local disk.
package sink

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Store is a thin, stateless façade over an object store. Upload
// overwrites any existing artifact with the same name (last writer
// wins); List returns the names of artifacts under prefix.
type Store interface {
	Upload(ctx context.Context, name string, data []byte) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// Factory constructs a Store from backend-specific options.
type Factory func(opts map[string]interface{}) (Store, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// ForName builds the named backend, or errors if it was never registered.
func ForName(name string, opts map[string]interface{}) (Store, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage backend not found: %s", name)
	}
	return f(opts)
}

// Names lists the registered backends, sorted.
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
