// Package storage persists uploaded files on the local filesystem.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes uploads under a single base directory.
type LocalStore struct {
	base string
}

// NewLocalStore ensures the base directory exists and returns the store.
func NewLocalStore(base string) (*LocalStore, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{base: base}, nil
}

// Save writes content to <base>/<filename>, replacing any previous file.
// Filename is flattened to its base name so callers cannot escape the
// upload directory.
func (s *LocalStore) Save(_ context.Context, filename string, content io.Reader) error {
	path := filepath.Join(s.base, filepath.Base(filename))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create upload: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return fmt.Errorf("write upload: %w", err)
	}
	return nil
}
