// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

type (
	boltStore struct {
		path string

		// mu guards db, which is opened by the first Query.
		mu sync.Mutex
		db *bolt.DB
	}

	boltGeneration struct {
		store *boltStore
		path  string
		db    *bolt.DB
		tx    *bolt.Tx
		done  bool
	}
)

func boltOpen(path string, readOnly bool) (*bolt.DB, error) {
	return bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second, ReadOnly: readOnly})
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

// Begin implements Store.
func (s *boltStore) Begin(_ context.Context) (Generation, error) {
	tmp, err := tempSibling(s.path)
	if err != nil {
		return nil, err
	}
	db, err := boltOpen(tmp, false)
	if err != nil {
		_ = os.Remove(tmp) // Best-effort cleanup on error path
		return nil, fmt.Errorf("failed to open catalog generation: %w", err)
	}
	tx, err := db.Begin(true)
	if err != nil {
		_ = db.Close()
		_ = os.Remove(tmp) // Best-effort cleanup on error path
		return nil, fmt.Errorf("failed to begin catalog transaction: %w", err)
	}
	for _, k := range AllKinds.Kinds() {
		if _, err := tx.CreateBucket([]byte(k.String())); err != nil {
			_ = tx.Rollback()
			_ = db.Close()
			_ = os.Remove(tmp) // Best-effort cleanup on error path
			return nil, fmt.Errorf("failed to initialize %s bucket: %w", k, err)
		}
	}
	return &boltGeneration{store: s, path: tmp, db: db, tx: tx}, nil
}

// Query implements Store.
func (s *boltStore) Query(_ context.Context, kinds KindSet, p Pattern) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.reader()
	if err != nil || db == nil {
		return nil, err
	}

	var entries []Entry
	err = db.View(func(tx *bolt.Tx) error {
		for _, kind := range kinds.Kinds() {
			b := tx.Bucket([]byte(kind.String()))
			if b == nil {
				return fmt.Errorf("catalog has no %s bucket", kind)
			}
			c := b.Cursor()
			for k, v := c.First(); k != nil; k, v = c.Next() {
				var e Entry
				if err := json.Unmarshal(v, &e); err != nil {
					return fmt.Errorf("failed to read %s record: %w", kind, err)
				}
				e.Kind = kind
				if p.Match(e.Name) {
					entries = append(entries, e)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// reader returns a read-only handle on the committed catalog. s.mu must be held.
func (s *boltStore) reader() (*bolt.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	if !fileExists(s.path) {
		return nil, nil
	}
	db, err := boltOpen(s.path, true)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	s.db = db
	return db, nil
}

// Close implements Store.
func (s *boltStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeReader()
}

func (s *boltStore) closeReader() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// replace renames the committed generation at tmp over the catalog file. The
// reader on the previous generation is closed first so that the next Query
// opens the new file.
func (s *boltStore) replace(tmp string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.closeReader(); err != nil {
		_ = os.Remove(tmp) // Best-effort cleanup on error path
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp) // Best-effort cleanup on error path
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	return nil
}

// Insert implements Generation.
func (g *boltGeneration) Insert(_ context.Context, e Entry) error {
	if g.done {
		return ErrGenerationClosed
	}
	if err := e.Validate(); err != nil {
		return err
	}
	b := g.tx.Bucket([]byte(e.Kind.String()))
	seq, err := b.NextSequence()
	if err != nil {
		return err
	}
	v, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := b.Put(marshalSeq(seq), v); err != nil {
		return fmt.Errorf("failed to insert %s %q: %w", e.Kind, e.Name, err)
	}
	return nil
}

// Commit implements Generation.
func (g *boltGeneration) Commit(_ context.Context) error {
	if g.done {
		return ErrGenerationClosed
	}
	g.done = true
	if err := g.tx.Commit(); err != nil {
		_ = g.db.Close()
		_ = os.Remove(g.path) // Best-effort cleanup on error path
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	if err := g.db.Close(); err != nil {
		_ = os.Remove(g.path) // Best-effort cleanup on error path
		return fmt.Errorf("failed to close catalog generation: %w", err)
	}
	return g.store.replace(g.path)
}

// Discard implements Generation.
func (g *boltGeneration) Discard() error {
	if g.done {
		return nil
	}
	g.done = true
	_ = g.tx.Rollback()
	_ = g.db.Close()
	return os.Remove(g.path)
}
