// SPDX-License-Identifier: MPL-2.0

// Package watch keeps the catalog in step with its sources.
//
// A Watcher monitors the plugin directory and the application directories and
// invokes a callback after a debounce period. Events within the debounce
// window are coalesced so the callback fires once with the full set of
// changed files.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the delay before firing the callback after the last
// filesystem event. Package managers install desktop entries in bursts.
const defaultDebounce = 500 * time.Millisecond

// defaultIgnores are base name patterns that never trigger a callback.
var defaultIgnores = []string{
	".*",
	"*.swp",
	"*.swo",
	"*~",
	"*.tmp",
}

var (
	// ErrInvalidPattern is returned for a glob pattern doublestar cannot parse.
	ErrInvalidPattern = errors.New("invalid watch pattern")
	// ErrAlreadyRunning is returned when Run is called a second time.
	ErrAlreadyRunning = errors.New("watcher already running")
)

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Dirs are the directories to watch. Each is watched on its own,
		// without descending into subdirectories. Missing directories are
		// skipped.
		Dirs []string

		// Patterns are doublestar globs matched case-insensitively against the
		// base name of a changed file, e.g. "pipe_*.sh". An empty slice
		// matches every file that is not ignored.
		Patterns []string

		// Debounce is the quiet period after the last event before the callback
		// fires. Zero or negative values fall back to defaultDebounce.
		Debounce time.Duration

		// OnChange is called after the debounce window closes with the
		// deduplicated, sorted list of changed file paths. A nil callback is a
		// no-op.
		OnChange func(ctx context.Context, changed []string) error

		// Logger receives skipped directories and callback failures. Nil
		// discards them.
		Logger *log.Logger
	}

	// Watcher monitors source directories and fires a debounced callback when
	// matching files change. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		patterns []string
		logger   *log.Logger
		debounce time.Duration
		watched  []string
		started  atomic.Bool
	}
)

// New creates a Watcher and registers every existing directory of cfg.Dirs.
func New(cfg Config) (*Watcher, error) {
	patterns := make([]string, len(cfg.Patterns))
	for i, p := range cfg.Patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}
		patterns[i] = strings.ToLower(p)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		patterns: patterns,
		logger:   logger,
		debounce: debounce,
	}
	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Warn("close after init failure", "error", closeErr)
		}
		return nil, err
	}
	return w, nil
}

// Watched returns the directories that are being watched.
func (w *Watcher) Watched() []string {
	return slices.Clone(w.watched)
}

// Run blocks until ctx is canceled, processing filesystem events and
// dispatching debounced callbacks. It returns nil on cancellation and the
// error of a watcher that cannot recover otherwise.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire may be scheduled by time.AfterFunc after ctx is done, and must not
	// overlap a callback that outlasts the debounce period.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("previous callback still running, retrying later")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("callback failed", "error", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if closeErr := w.fsw.Close(); closeErr != nil {
			w.logger.Warn("close fsnotify", "error", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("fsnotify event channel closed unexpectedly")
			}
			if evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
				continue
			}
			if !w.Matches(evt.Name) {
				continue
			}

			mu.Lock()
			pending[evt.Name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("fsnotify error channel closed unexpectedly")
			}
			// isFatalFsnotifyError is platform-specific (see watcher_fatal_*.go).
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "error", err)
		}
	}
}

// Matches reports whether a change to path should trigger the callback.
func (w *Watcher) Matches(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, pat := range defaultIgnores {
		if doublestar.MatchUnvalidated(pat, base) {
			return false
		}
	}
	if len(w.patterns) == 0 {
		return true
	}
	for _, pat := range w.patterns {
		if doublestar.MatchUnvalidated(pat, base) {
			return true
		}
	}
	return false
}

// addDirectories registers each configured directory once. Directories that
// do not exist are skipped; most XDG data dirs have no applications.
func (w *Watcher) addDirectories() error {
	seen := make(map[string]bool, len(w.cfg.Dirs))
	for _, dir := range w.cfg.Dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", dir, err)
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true

		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			w.logger.Debug("skipping directory", "dir", abs, "error", err)
			continue
		}
		if err := w.fsw.Add(abs); err != nil {
			if errors.Is(err, os.ErrPermission) {
				w.logger.Warn("skipping unreadable directory", "dir", abs, "error", err)
				continue
			}
			return fmt.Errorf("watch %q: %w", abs, err)
		}
		w.watched = append(w.watched, abs)
	}
	return nil
}

// SourcePatterns returns the base name patterns of catalog sources: plugin
// files for each plugin extension and any file with an application extension.
func SourcePatterns(pluginExtensions, applicationExtensions []string) []string {
	var patterns []string
	for _, ext := range pluginExtensions {
		patterns = append(patterns, "action_*"+ext, "pipe_*"+ext)
	}
	for _, ext := range applicationExtensions {
		patterns = append(patterns, "*"+ext)
	}
	return patterns
}
