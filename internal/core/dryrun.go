package core

import (
	"context"
	"fmt"
	"io/fs"
	"sync"
)

// DryRunFileSystem forwards reads to an underlying FileSystem and records
// every mutation instead of applying it.
type DryRunFileSystem struct {
	FileSystem

	mu      sync.Mutex
	changes []string
}

// NewDryRunFileSystem wraps fsys so that no mutation reaches it.
func NewDryRunFileSystem(fsys FileSystem) *DryRunFileSystem {
	return &DryRunFileSystem{FileSystem: fsys}
}

// Changes returns the recorded mutations in the order they were requested.
func (d *DryRunFileSystem) Changes() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.changes...)
}

func (d *DryRunFileSystem) record(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.changes = append(d.changes, fmt.Sprintf(format, args...))
}

func (d *DryRunFileSystem) WriteFile(ctx context.Context, path string, data []byte, _ fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.record("write %s (%d bytes)", path, len(data))
	return nil
}

func (d *DryRunFileSystem) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.record("rename %s -> %s", oldPath, newPath)
	return nil
}

func (d *DryRunFileSystem) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.record("remove %s", path)
	return nil
}

func (d *DryRunFileSystem) RemoveAll(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.record("remove-all %s", path)
	return nil
}
