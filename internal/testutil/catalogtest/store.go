// SPDX-License-Identifier: MPL-2.0

package catalogtest

import (
	"context"
	"sync"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
)

type (
	// Store is an in-memory catalog.Store. It records how many queries it served.
	Store struct {
		mu      sync.Mutex
		entries []catalog.Entry
		queries int
		// QueryErr, when set, is returned by every Query.
		QueryErr error
	}

	generation struct {
		store   *Store
		entries []catalog.Entry
		done    bool
	}
)

// NewStore creates a store whose committed generation holds entries.
// Entries are kept in catalog order regardless of argument order.
func NewStore(entries ...catalog.Entry) *Store {
	s := &Store{}
	for _, k := range catalog.AllKinds.Kinds() {
		for _, e := range entries {
			if e.Kind == k {
				s.entries = append(s.entries, e)
			}
		}
	}
	return s
}

// Begin implements catalog.Store.
func (s *Store) Begin(context.Context) (catalog.Generation, error) {
	return &generation{store: s}, nil
}

// Query implements catalog.Store.
func (s *Store) Query(_ context.Context, kinds catalog.KindSet, p catalog.Pattern) ([]catalog.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queries++
	if s.QueryErr != nil {
		return nil, s.QueryErr
	}
	var out []catalog.Entry
	for _, e := range s.entries {
		if kinds.Has(e.Kind) && p.Match(e.Name) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Close implements catalog.Store.
func (s *Store) Close() error { return nil }

// Entries returns a copy of the committed generation.
func (s *Store) Entries() []catalog.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]catalog.Entry(nil), s.entries...)
}

// Queries returns the number of Query calls served so far.
func (s *Store) Queries() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.queries
}

func (g *generation) Insert(_ context.Context, e catalog.Entry) error {
	if g.done {
		return catalog.ErrGenerationClosed
	}
	if err := e.Validate(); err != nil {
		return err
	}
	g.entries = append(g.entries, e)
	return nil
}

func (g *generation) Commit(context.Context) error {
	if g.done {
		return catalog.ErrGenerationClosed
	}
	g.done = true
	fresh := NewStore(g.entries...)

	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	g.store.entries = fresh.entries
	return nil
}

func (g *generation) Discard() error {
	g.done = true
	return nil
}
