// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rapidcopper/rapidcopper/internal/testutil"
)

var backends = []Backend{BackendSQLite, BackendBolt}

func openTestStore(t *testing.T, backend Backend) Store {
	t.Helper()
	s, err := Open(Options{Backend: backend, Path: filepath.Join(t.TempDir(), "index")})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(testutil.DeferClose(t, s))
	return s
}

func populate(t *testing.T, s Store, entries ...Entry) {
	t.Helper()
	ctx := context.Background()
	gen, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() error: %v", err)
	}
	for _, e := range entries {
		if err := gen.Insert(ctx, e); err != nil {
			t.Fatalf("Insert(%v) error: %v", e, err)
		}
	}
	if err := gen.Commit(ctx); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
}

var sample = []Entry{
	{Name: "Firefox", Description: "Web Browser", Location: "/usr/share/applications/firefox.desktop", Kind: KindApplication},
	{Name: "greet", Description: "Say hello", Location: "rapidcopper/plugins/action_greet", Kind: KindAction, Builtin: true},
	{Name: "fetch", Description: "Fetch a file", Location: "/p/action_fetch.sh", Kind: KindAction},
	{Name: "upper", Description: "Uppercase", Location: "rapidcopper/plugins/pipe_upper", Kind: KindPipe, Builtin: true},
	{Name: "lower", Description: "Lowercase", Location: "/p/pipe_lower.sh", Kind: KindPipe},
}

func TestStore_QueryBeforeCommit(t *testing.T) {
	t.Parallel()
	for _, backend := range backends {
		t.Run(backend.String(), func(t *testing.T) {
			t.Parallel()
			s := openTestStore(t, backend)
			got, err := s.Query(context.Background(), AllKinds, SubstringPattern(""))
			if err != nil {
				t.Fatalf("Query() before commit returned error: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("Query() before commit = %v, want empty", got)
			}
		})
	}
}

func TestStore_QueryByKindAndPattern(t *testing.T) {
	t.Parallel()
	for _, backend := range backends {
		t.Run(backend.String(), func(t *testing.T) {
			t.Parallel()
			s := openTestStore(t, backend)
			populate(t, s, sample...)
			ctx := context.Background()

			tests := []struct {
				name    string
				kinds   KindSet
				pattern Pattern
				want    []string
			}{
				{"all kinds, empty token", AllKinds, SubstringPattern(""), []string{"Firefox", "greet", "fetch", "upper", "lower"}},
				{"apps and actions", NewKindSet(KindApplication, KindAction), SubstringPattern("e"), []string{"Firefox", "greet", "fetch"}},
				{"case insensitive", NewKindSet(KindApplication), SubstringPattern("FIRE"), []string{"Firefox"}},
				{"pipes only", NewKindSet(KindPipe), SubstringPattern("er"), []string{"upper", "lower"}},
				{"subsequence", NewKindSet(KindAction), SubsequencePattern("gt"), []string{"greet"}},
				{"substring rejects scattered", NewKindSet(KindAction), SubstringPattern("gt"), nil},
				{"no match", AllKinds, SubstringPattern("zzz"), nil},
			}
			for _, tt := range tests {
				got, err := s.Query(ctx, tt.kinds, tt.pattern)
				if err != nil {
					t.Fatalf("%s: Query() error: %v", tt.name, err)
				}
				var names []string
				for _, e := range got {
					names = append(names, e.Name)
				}
				if diff := cmp.Diff(tt.want, names); diff != "" {
					t.Errorf("%s: Query() names mismatch (-want +got):\n%s", tt.name, diff)
				}
			}
		})
	}
}

func TestStore_RoundTripsFields(t *testing.T) {
	t.Parallel()
	for _, backend := range backends {
		t.Run(backend.String(), func(t *testing.T) {
			t.Parallel()
			s := openTestStore(t, backend)
			populate(t, s, sample...)

			got, err := s.Query(context.Background(), AllKinds, SubstringPattern(""))
			if err != nil {
				t.Fatalf("Query() error: %v", err)
			}
			if diff := cmp.Diff(sample, got); diff != "" {
				t.Errorf("Query() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_CommitReplacesPreviousGeneration(t *testing.T) {
	t.Parallel()
	for _, backend := range backends {
		t.Run(backend.String(), func(t *testing.T) {
			t.Parallel()
			s := openTestStore(t, backend)
			populate(t, s, sample...)
			// Force a reader onto the first generation before replacing it.
			if _, err := s.Query(context.Background(), AllKinds, SubstringPattern("")); err != nil {
				t.Fatalf("Query() error: %v", err)
			}
			populate(t, s, Entry{Name: "only", Location: "/x", Kind: KindPipe})

			got, err := s.Query(context.Background(), AllKinds, SubstringPattern(""))
			if err != nil {
				t.Fatalf("Query() error: %v", err)
			}
			if len(got) != 1 || got[0].Name != "only" {
				t.Errorf("Query() after second commit = %v, want only the new generation", got)
			}
		})
	}
}

func TestStore_DiscardKeepsPreviousGeneration(t *testing.T) {
	t.Parallel()
	for _, backend := range backends {
		t.Run(backend.String(), func(t *testing.T) {
			t.Parallel()
			s := openTestStore(t, backend)
			populate(t, s, sample...)
			ctx := context.Background()

			gen, err := s.Begin(ctx)
			if err != nil {
				t.Fatalf("Begin() error: %v", err)
			}
			if err := gen.Insert(ctx, Entry{Name: "half", Location: "/x", Kind: KindAction}); err != nil {
				t.Fatalf("Insert() error: %v", err)
			}

			// The open generation is invisible to readers.
			got, err := s.Query(ctx, AllKinds, SubstringPattern("half"))
			if err != nil {
				t.Fatalf("Query() error: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("uncommitted entry visible: %v", got)
			}

			if err := gen.Discard(); err != nil {
				t.Fatalf("Discard() error: %v", err)
			}
			got, err = s.Query(ctx, AllKinds, SubstringPattern(""))
			if err != nil {
				t.Fatalf("Query() error: %v", err)
			}
			if len(got) != len(sample) {
				t.Errorf("Query() after discard returned %d entries, want %d", len(got), len(sample))
			}
			if err := gen.Insert(ctx, sample[0]); !errors.Is(err, ErrGenerationClosed) {
				t.Errorf("Insert() after Discard() error = %v, want ErrGenerationClosed", err)
			}
		})
	}
}

func TestStore_PathWithSpaces(t *testing.T) {
	t.Parallel()
	for _, backend := range backends {
		t.Run(backend.String(), func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "My Config", "index #1")
			s, err := Open(Options{Backend: backend, Path: path})
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			t.Cleanup(testutil.DeferClose(t, s))

			populate(t, s, sample...)
			got, err := s.Query(context.Background(), AllKinds, SubstringPattern(""))
			if err != nil {
				t.Fatalf("Query() error: %v", err)
			}
			if len(got) != len(sample) {
				t.Errorf("Query() returned %d entries, want %d", len(got), len(sample))
			}
			if _, err := os.Stat(path); err != nil {
				t.Errorf("catalog not written at %q: %v", path, err)
			}
		})
	}
}

func TestSqliteDSN(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("paths below are POSIX paths")
	}
	tests := []struct {
		path string
		want string
	}{
		{"/tmp/index.sqlite", "file:///tmp/index.sqlite?mode=ro"},
		{"/home/Jane Doe/.config/index.sqlite", "file:///home/Jane%20Doe/.config/index.sqlite?mode=ro"},
		{"/tmp/what?/index", "file:///tmp/what%3F/index?mode=ro"},
	}
	for _, tt := range tests {
		if got := sqliteDSN(tt.path, "ro"); got != tt.want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestStore_ConcurrentFirstQueries(t *testing.T) {
	t.Parallel()
	for _, backend := range backends {
		t.Run(backend.String(), func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "index")
			writer, err := Open(Options{Backend: backend, Path: path})
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			populate(t, writer, sample...)
			testutil.MustClose(t, writer)

			s, err := Open(Options{Backend: backend, Path: path})
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			t.Cleanup(testutil.DeferClose(t, s))

			const workers = 8
			var wg sync.WaitGroup
			errs := make(chan error, workers)
			counts := make(chan int, workers)
			for range workers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					got, err := s.Query(context.Background(), AllKinds, SubstringPattern(""))
					if err != nil {
						errs <- err
						return
					}
					counts <- len(got)
				}()
			}
			wg.Wait()
			close(errs)
			close(counts)
			for err := range errs {
				t.Errorf("concurrent Query() error: %v", err)
			}
			for n := range counts {
				if n != len(sample) {
					t.Errorf("concurrent Query() returned %d entries, want %d", n, len(sample))
				}
			}
		})
	}
}

func TestStore_DiscardRemovesTemporaryFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s, err := Open(Options{Path: filepath.Join(dir, "index.sqlite")})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer testutil.MustClose(t, s)

	gen, err := s.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin() error: %v", err)
	}
	if err := gen.Discard(); err != nil {
		t.Fatalf("Discard() error: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("catalog directory not empty after discard: %v", entries)
	}
}

func TestStore_InsertRejectsInvalidEntries(t *testing.T) {
	t.Parallel()
	for _, backend := range backends {
		t.Run(backend.String(), func(t *testing.T) {
			t.Parallel()
			s := openTestStore(t, backend)
			ctx := context.Background()
			gen, err := s.Begin(ctx)
			if err != nil {
				t.Fatalf("Begin() error: %v", err)
			}
			defer func() { _ = gen.Discard() }()

			invalid := []Entry{
				{Name: "", Location: "/x", Kind: KindAction},
				{Name: "x", Location: "", Kind: KindAction},
				{Name: "x", Location: "/x", Kind: KindApplication, Builtin: true},
				{Name: "x", Location: "/x"},
			}
			for _, e := range invalid {
				err := gen.Insert(ctx, e)
				if !errors.Is(err, ErrInvalidEntry) {
					t.Errorf("Insert(%+v) error = %v, want ErrInvalidEntry", e, err)
				}
			}
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	t.Parallel()
	if _, err := Open(Options{Backend: "postgres", Path: "/tmp/x"}); err == nil {
		t.Error("Open() with unknown backend should fail")
	}
	if _, err := Open(Options{}); err == nil {
		t.Error("Open() without path should fail")
	}
}
