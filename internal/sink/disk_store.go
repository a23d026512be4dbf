package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore writes artifacts under a base directory. Intended for local
// runs and tests; names are flat (no separators).
type DiskStore struct {
	baseDir string
}

func NewDiskStore(opts map[string]interface{}) (Store, error) {
	baseDir, ok := opts["path"].(string)
	if !ok || baseDir == "" {
		return nil, fmt.Errorf("disk store requires 'path' option")
	}
	return &DiskStore{baseDir: baseDir}, nil
}

func (d *DiskStore) Upload(ctx context.Context, name string, data []byte) error {
	if err := os.MkdirAll(d.baseDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(d.baseDir, name), data, 0o644); err != nil {
		return fmt.Errorf("disk write %s: %w", name, err)
	}
	return nil
}

func (d *DiskStore) List(ctx context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(d.baseDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("disk list %q: %w", prefix, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func init() {
	Register("disk", NewDiskStore)
}
