// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
	"github.com/rapidcopper/rapidcopper/internal/config"
	"github.com/rapidcopper/rapidcopper/internal/discovery"
	"github.com/rapidcopper/rapidcopper/internal/issue"
	"github.com/rapidcopper/rapidcopper/internal/pipeline"
	"github.com/rapidcopper/rapidcopper/internal/plugin"
	"github.com/rapidcopper/rapidcopper/internal/resolve"

	// Builtin actions and pipes register themselves with plugin.DefaultRegistry.
	_ "github.com/rapidcopper/rapidcopper/internal/plugin/builtin"
)

type (
	// Options are the resolved locations and policies of a Launcher.
	Options struct {
		CatalogBackend        catalog.Backend
		CatalogPath           string
		PluginDir             string
		PluginExtensions      []string
		ApplicationDirs       []string
		ApplicationExtensions []string
		// Launcher activates applications. Empty means plugin.DefaultLauncher.
		Launcher    []string
		MatchPolicy resolve.MatchPolicy
		// Registry provides builtin plugins. Nil means plugin.DefaultRegistry.
		Registry *plugin.Registry
	}

	// Launcher evaluates command lines against a persistent catalog.
	Launcher struct {
		store       catalog.Store
		builder     *discovery.Builder
		resolver    *resolve.Resolver
		interpreter *pipeline.Interpreter
		logger      *log.Logger
	}

	// Option configures a Launcher.
	Option func(*settings)

	settings struct {
		fs     afero.Fs
		env    []string
		logger *log.Logger
		store  catalog.Store
	}
)

// WithFs sets the filesystem sources and external plugins are read from.
// The catalog file itself always lives on the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *settings) {
		s.fs = fs
	}
}

// WithEnv sets the environment external plugins run with.
func WithEnv(env []string) Option {
	return func(s *settings) {
		s.env = env
	}
}

// WithLogger sets the parent logger. Each component logs with its own prefix.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore uses store instead of opening CatalogPath.
func WithStore(store catalog.Store) Option {
	return func(s *settings) {
		s.store = store
	}
}

// OptionsFromPaths converts resolved configuration into launcher options.
func OptionsFromPaths(p config.Paths) (Options, error) {
	policy, err := resolve.ParseMatchPolicy(p.MatchPolicy.String())
	if err != nil {
		return Options{}, err
	}
	backend := catalog.Backend(p.CatalogBackend)
	if backend == "" {
		backend = catalog.BackendSQLite
	}
	if !backend.IsValid() {
		return Options{}, fmt.Errorf("unknown catalog backend %q", backend)
	}
	return Options{
		CatalogBackend:        backend,
		CatalogPath:           p.CatalogPath,
		PluginDir:             p.PluginDir,
		PluginExtensions:      p.PluginExtensions,
		ApplicationDirs:       p.ApplicationDirs,
		ApplicationExtensions: p.ApplicationExtensions,
		Launcher:              p.Launcher,
		MatchPolicy:           policy,
	}, nil
}

// New wires a Launcher. The catalog file is opened lazily by the store, so a
// catalog that was never built is not an error.
func New(opts Options, options ...Option) (*Launcher, error) {
	s := settings{fs: afero.NewOsFs(), logger: log.New(io.Discard)}
	for _, o := range options {
		o(&s)
	}

	if valid, errs := opts.MatchPolicy.IsValid(); opts.MatchPolicy != "" && !valid {
		return nil, errs[0]
	}

	store := s.store
	if store == nil {
		var err error
		store, err = catalog.Open(catalog.Options{Backend: opts.CatalogBackend, Path: opts.CatalogPath})
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("open catalog").
				WithResource(opts.CatalogPath).
				WithSuggestion("Run 'rapidcopper config path' to see where the catalog lives").
				WithIssue(issue.CatalogUnavailableId).
				Wrap(err).
				BuildError()
		}
	}

	registry := opts.Registry
	if registry == nil {
		registry = plugin.DefaultRegistry
	}

	builder := discovery.New(discovery.Options{
		ApplicationDirs:       opts.ApplicationDirs,
		ApplicationExtensions: opts.ApplicationExtensions,
		PluginDir:             opts.PluginDir,
		PluginExtensions:      opts.PluginExtensions,
		Registry:              registry,
	}, discovery.WithFs(s.fs), discovery.WithLogger(s.logger.WithPrefix("discovery")))

	var resolverOpts []resolve.Option
	if opts.MatchPolicy != "" {
		resolverOpts = append(resolverOpts, resolve.WithMatchPolicy(opts.MatchPolicy))
	}
	resolver := resolve.New(store, resolverOpts...)

	executor := plugin.NewExecutor(
		plugin.WithRegistry(registry),
		plugin.WithLauncher(opts.Launcher...),
		plugin.WithFs(s.fs),
		plugin.WithEnv(s.env),
		plugin.WithLogger(s.logger.WithPrefix("plugin")),
	)

	return &Launcher{
		store:       store,
		builder:     builder,
		resolver:    resolver,
		interpreter: pipeline.New(resolver, executor, pipeline.WithLogger(s.logger.WithPrefix("pipeline"))),
		logger:      s.logger,
	}, nil
}

// Rebuild replaces the catalog with a fresh scan of every source.
func (l *Launcher) Rebuild(ctx context.Context) (discovery.Report, error) {
	report, err := l.builder.Rebuild(ctx, l.store)
	if err != nil {
		return report, err
	}
	l.logger.Debug("catalog rebuilt",
		"applications", report.Applications, "actions", report.Actions, "pipes", report.Pipes,
		"diagnostics", len(report.Diagnostics))
	return report, nil
}

// Evaluate runs one command line, talking to the user through fe.
func (l *Launcher) Evaluate(ctx context.Context, fe pipeline.FrontEnd, raw string) pipeline.Outcome {
	return l.interpreter.Evaluate(ctx, fe, raw)
}

// EvaluateWords runs an already tokenized command line.
func (l *Launcher) EvaluateWords(ctx context.Context, fe pipeline.FrontEnd, words []string) pipeline.Outcome {
	return l.interpreter.EvaluateWords(ctx, fe, words)
}

// Resolve returns the ranked candidates of the given kinds for token.
func (l *Launcher) Resolve(ctx context.Context, kinds catalog.KindSet, token string) ([]resolve.Candidate, error) {
	return l.resolver.Resolve(ctx, kinds, token)
}

// Entries returns every catalog entry of the given kinds in catalog order.
func (l *Launcher) Entries(ctx context.Context, kinds catalog.KindSet) ([]catalog.Entry, error) {
	return l.store.Query(ctx, kinds, catalog.SubstringPattern(""))
}

// Close releases the catalog store.
func (l *Launcher) Close() error {
	return l.store.Close()
}
