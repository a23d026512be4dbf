// Package testutil holds shared fakes for package tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemStore is an in-memory sink.Store for tests. It records every
// upload and serves prefix listings from the current object set.
type MemStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Uploads []string // upload order, including overwrites

	UploadErr error
	ListErr   error
}

func NewMemStore() *MemStore {
	return &MemStore{Objects: make(map[string][]byte)}
}

func (m *MemStore) Upload(ctx context.Context, name string, data []byte) error {
	if m.UploadErr != nil {
		return m.UploadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[name] = append([]byte{}, data...)
	m.Uploads = append(m.Uploads, name)
	return nil
}

func (m *MemStore) List(ctx context.Context, prefix string) ([]string, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	for name := range m.Objects {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Get returns the stored bytes for name, or nil.
func (m *MemStore) Get(name string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Objects[name]
}
