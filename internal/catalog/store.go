// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// BackendSQLite stores the catalog in a SQLite database.
	BackendSQLite Backend = "sqlite"
	// BackendBolt stores the catalog in a bbolt file.
	BackendBolt Backend = "bolt"
)

// ErrGenerationClosed is returned when a generation is used after Commit or Discard.
var ErrGenerationClosed = errors.New("catalog generation already closed")

type (
	// Backend names a storage engine.
	Backend string

	// Options configures Open.
	Options struct {
		// Backend selects the storage engine. Empty means BackendSQLite.
		Backend Backend
		// Path is the catalog file. Its directory must be writable.
		Path string
	}

	// Store is the persistent catalog.
	Store interface {
		// Begin starts a new, empty generation. The current catalog stays
		// visible to Query until the generation is committed.
		Begin(ctx context.Context) (Generation, error)
		// Query returns the entries of the given kinds whose name matches p, in
		// catalog order. It does not rank. A store that has never been committed
		// returns no entries and no error.
		Query(ctx context.Context, kinds KindSet, p Pattern) ([]Entry, error)
		// Close releases the store.
		Close() error
	}

	// Generation is a catalog being rebuilt.
	Generation interface {
		// Insert adds e to the generation.
		Insert(ctx context.Context, e Entry) error
		// Commit replaces the current catalog with this generation.
		Commit(ctx context.Context) error
		// Discard abandons the generation. Safe to call after Commit.
		Discard() error
	}
)

// String returns the backend name.
func (b Backend) String() string { return string(b) }

// IsValid reports whether b is a known backend.
func (b Backend) IsValid() bool {
	switch b {
	case BackendSQLite, BackendBolt:
		return true
	default:
		return false
	}
}

// Open opens the catalog at opts.Path. The file does not need to exist yet.
func Open(opts Options) (Store, error) {
	if opts.Path == "" {
		return nil, errors.New("catalog path must be set")
	}
	switch opts.Backend {
	case "", BackendSQLite:
		return &sqliteStore{path: opts.Path}, nil
	case BackendBolt:
		return &boltStore{path: opts.Path}, nil
	default:
		return nil, fmt.Errorf("unknown catalog backend %q (valid: sqlite, bolt)", opts.Backend)
	}
}

// tempSibling creates an empty temporary file next to path so that the final
// rename stays on one filesystem.
func tempSibling(path string) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create catalog directory: %w", err)
	}
	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create catalog generation: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name) // Best-effort cleanup on error path
		return "", err
	}
	return name, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
