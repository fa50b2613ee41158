// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
	"github.com/rapidcopper/rapidcopper/internal/plugin"
)

var (
	// DefaultApplicationExtensions are the desktop entry extensions scanned by default.
	DefaultApplicationExtensions = []string{".desktop"}
	// DefaultPluginExtensions are the external plugin extensions scanned by default.
	DefaultPluginExtensions = []string{".sh"}
)

type (
	// Options lists the sources a Builder scans.
	Options struct {
		// ApplicationDirs are searched for desktop entries. Missing directories are skipped.
		ApplicationDirs []string
		// ApplicationExtensions are matched case-insensitively. Empty means
		// DefaultApplicationExtensions.
		ApplicationExtensions []string
		// PluginDir holds external action_<id> and pipe_<id> plugins. It is
		// created when missing. Empty disables external plugins.
		PluginDir string
		// PluginExtensions are matched case-insensitively. Empty means
		// DefaultPluginExtensions.
		PluginExtensions []string
		// Registry provides builtin plugins. Nil means plugin.DefaultRegistry.
		Registry *plugin.Registry
	}

	// Builder populates a catalog.Store from its sources.
	Builder struct {
		opts   Options
		fs     afero.Fs
		logger *log.Logger
	}

	// Option configures a Builder.
	Option func(*Builder)
)

// WithFs sets the filesystem sources are read from. The default is the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(b *Builder) {
		b.fs = fs
	}
}

// WithLogger sets the logger used to trace the scan.
func WithLogger(l *log.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates a Builder.
func New(opts Options, options ...Option) *Builder {
	if len(opts.ApplicationExtensions) == 0 {
		opts.ApplicationExtensions = DefaultApplicationExtensions
	}
	if len(opts.PluginExtensions) == 0 {
		opts.PluginExtensions = DefaultPluginExtensions
	}
	if opts.Registry == nil {
		opts.Registry = plugin.DefaultRegistry
	}
	b := &Builder{
		opts:   opts,
		fs:     afero.NewOsFs(),
		logger: log.New(io.Discard),
	}
	for _, o := range options {
		o(b)
	}
	return b
}

// Rebuild replaces the catalog held by store with a fresh scan. Malformed
// sources are reported as diagnostics. A store error discards the new
// generation and is returned; the previous catalog is left untouched.
func (b *Builder) Rebuild(ctx context.Context, store catalog.Store) (Report, error) {
	var report Report

	gen, err := store.Begin(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to start catalog rebuild: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = gen.Discard() // Best-effort cleanup on error path
		}
	}()

	scans := []func(context.Context) ([]catalog.Entry, []Diagnostic){
		b.scanApplications,
		b.scanPlugins,
		b.scanBuiltins,
	}
	for _, scan := range scans {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		entries, diags := scan(ctx)
		for _, d := range diags {
			b.logger.Warn(d.Message, "code", d.Code, "path", d.Path)
		}
		report.Diagnostics = append(report.Diagnostics, diags...)
		for _, e := range entries {
			if err := gen.Insert(ctx, e); err != nil {
				return report, fmt.Errorf("failed to index %s: %w", e.Location, err)
			}
			report.count(e.Kind)
		}
	}

	if err := gen.Commit(ctx); err != nil {
		return report, fmt.Errorf("failed to commit catalog: %w", err)
	}
	committed = true
	b.logger.Debug("catalog rebuilt",
		"applications", report.Applications, "actions", report.Actions, "pipes", report.Pipes,
		"diagnostics", len(report.Diagnostics))
	return report, nil
}
