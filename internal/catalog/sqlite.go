// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3" // enable the "sqlite3" SQL driver
)

var schema = []string{
	`CREATE TABLE application (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL,
		location    TEXT NOT NULL
	)`,
	`CREATE TABLE action (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL,
		location    TEXT NOT NULL,
		is_builtin  BOOLEAN NOT NULL
	)`,
	`CREATE TABLE pipe (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL,
		location    TEXT NOT NULL,
		is_builtin  BOOLEAN NOT NULL
	)`,
}

type (
	sqliteStore struct {
		path string

		// mu guards db, which is opened by the first Query.
		mu sync.Mutex
		db *sql.DB
	}

	sqliteGeneration struct {
		store *sqliteStore
		path  string
		db    *sql.DB
		tx    *sql.Tx
		done  bool
	}
)

// sqliteDSN returns a file: URI for path. The path is percent-encoded as a URI
// path so that spaces and '?' survive SQLite's URI decoding.
func sqliteDSN(path, mode string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p, RawQuery: "mode=" + mode}).String()
}

// Begin implements Store.
func (s *sqliteStore) Begin(ctx context.Context) (Generation, error) {
	tmp, err := tempSibling(s.path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", sqliteDSN(tmp, "rwc"))
	if err != nil {
		_ = os.Remove(tmp) // Best-effort cleanup on error path
		return nil, fmt.Errorf("failed to open catalog generation: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		_ = db.Close()
		_ = os.Remove(tmp) // Best-effort cleanup on error path
		return nil, fmt.Errorf("failed to begin catalog transaction: %w", err)
	}
	for _, q := range schema {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			_ = tx.Rollback()
			_ = db.Close()
			_ = os.Remove(tmp) // Best-effort cleanup on error path
			return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
		}
	}
	return &sqliteGeneration{store: s, path: tmp, db: db, tx: tx}, nil
}

// Query implements Store.
func (s *sqliteStore) Query(ctx context.Context, kinds KindSet, p Pattern) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.reader()
	if err != nil || db == nil {
		return nil, err
	}

	var entries []Entry
	for _, kind := range kinds.Kinds() {
		q := fmt.Sprintf(`SELECT name, description, location, %s FROM %s WHERE name LIKE ? ESCAPE '\' ORDER BY id`,
			builtinColumn(kind), kind)
		rows, err := db.QueryContext(ctx, q, p.Like())
		if err != nil {
			return nil, fmt.Errorf("failed to query %s records: %w", kind, err)
		}
		for rows.Next() {
			e := Entry{Kind: kind}
			if err := rows.Scan(&e.Name, &e.Description, &e.Location, &e.Builtin); err != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("failed to read %s record: %w", kind, err)
			}
			entries = append(entries, e)
		}
		if err := rows.Err(); err != nil {
			_ = rows.Close()
			return nil, err
		}
		_ = rows.Close()
	}
	return entries, nil
}

// reader returns a handle on the committed catalog, or nil if there is none.
// s.mu must be held.
func (s *sqliteStore) reader() (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	if !fileExists(s.path) {
		return nil, nil
	}
	db, err := sql.Open("sqlite3", sqliteDSN(s.path, "ro"))
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	s.db = db
	return db, nil
}

// Close implements Store.
func (s *sqliteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeReader()
}

func (s *sqliteStore) closeReader() error {
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
func (s *sqliteStore) replace(tmp string) error {
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
func (g *sqliteGeneration) Insert(ctx context.Context, e Entry) error {
	if g.done {
		return ErrGenerationClosed
	}
	if err := e.Validate(); err != nil {
		return err
	}
	var err error
	if e.Kind == KindApplication {
		_, err = g.tx.ExecContext(ctx,
			`INSERT INTO application (name, description, location) VALUES (?, ?, ?)`,
			e.Name, e.Description, e.Location)
	} else {
		_, err = g.tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (name, description, location, is_builtin) VALUES (?, ?, ?, ?)`, e.Kind),
			e.Name, e.Description, e.Location, e.Builtin)
	}
	if err != nil {
		return fmt.Errorf("failed to insert %s %q: %w", e.Kind, e.Name, err)
	}
	return nil
}

// Commit implements Generation.
func (g *sqliteGeneration) Commit(_ context.Context) error {
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
func (g *sqliteGeneration) Discard() error {
	if g.done {
		return nil
	}
	g.done = true
	_ = g.tx.Rollback()
	_ = g.db.Close()
	return os.Remove(g.path)
}

// builtinColumn yields a constant false for the application table so every
// record set scans into the same shape.
func builtinColumn(k Kind) string {
	if k == KindApplication {
		return "0"
	}
	return "is_builtin"
}
