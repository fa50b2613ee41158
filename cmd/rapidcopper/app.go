// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/rapidcopper/rapidcopper/internal/app/launcher"
	"github.com/rapidcopper/rapidcopper/internal/config"
	"github.com/rapidcopper/rapidcopper/internal/issue"
	"github.com/rapidcopper/rapidcopper/internal/tui"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: every Cobra handler receives an App reference and
	// reaches configuration and the launcher through it.
	App struct {
		Config    ConfigProvider
		Launchers LauncherFactory
		stdout    io.Writer
		stderr    io.Writer
		stdin     io.Reader
		flags     rootFlags
		// colorScheme is set from the loaded configuration.
		colorScheme config.ColorScheme
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    ConfigProvider
		Launchers LauncherFactory
		Stdout    io.Writer
		Stderr    io.Writer
		// Stdin feeds prompts. Nil means the process stdin.
		Stdin io.Reader
	}

	// ConfigProvider loads configuration and reports its source file.
	ConfigProvider interface {
		LoadWithSource(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}

	// LauncherFactory opens a launcher for resolved configuration.
	LauncherFactory func(ctx context.Context, paths config.Paths, logger *log.Logger) (*launcher.Launcher, error)

	// rootFlags are the persistent flags shared by every command.
	rootFlags struct {
		verbose    bool
		accessible bool
		configFile string
		configDir  string
		theme      string
	}

	// session is the loaded state one command works with.
	session struct {
		cfg    *config.Config
		source string
		paths  config.Paths
		logger *log.Logger
	}
)

// NewApp builds an App, filling nil dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:    deps.Config,
		Launchers: deps.Launchers,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		stdin:     deps.Stdin,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Launchers == nil {
		app.Launchers = openLauncher
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// openLauncher is the production LauncherFactory.
func openLauncher(_ context.Context, paths config.Paths, logger *log.Logger) (*launcher.Launcher, error) {
	opts, err := launcher.OptionsFromPaths(paths)
	if err != nil {
		return nil, err
	}
	return launcher.New(opts, launcher.WithLogger(logger))
}

// configDir returns the --config-dir flag or the platform default.
func (a *App) configDir() (string, error) {
	if a.flags.configDir != "" {
		return a.flags.configDir, nil
	}
	return config.ConfigDir()
}

// load reads the configuration and applies the UI settings that depend on it.
func (a *App) load(ctx context.Context) (*session, error) {
	cfg, source, err := a.Config.LoadWithSource(ctx, config.LoadOptions{
		ConfigFilePath: a.flags.configFile,
		ConfigDirPath:  a.flags.configDir,
	})
	if err != nil {
		return nil, err
	}
	dir, err := a.configDir()
	if err != nil {
		return nil, err
	}

	if cfg.UI.Verbose {
		a.flags.verbose = true
	}
	if cfg.UI.Accessible {
		a.flags.accessible = true
	}
	a.colorScheme = cfg.UI.ColorScheme
	switch cfg.UI.ColorScheme {
	case config.ColorSchemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ColorSchemeLight:
		lipgloss.SetHasDarkBackground(false)
	}

	return &session{
		cfg:    cfg,
		source: source,
		paths:  config.ResolvePaths(cfg, dir),
		logger: a.logger(),
	}, nil
}

// open loads the configuration and opens the launcher. The caller closes it.
func (a *App) open(ctx context.Context) (*session, *launcher.Launcher, error) {
	s, err := a.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	l, err := a.Launchers(ctx, s.paths, s.logger)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debug("launcher ready", "catalog", s.paths.CatalogPath, "backend", s.paths.CatalogBackend, "config", s.source)
	return s, l, nil
}

// logger writes to stderr, at debug level under --verbose.
func (a *App) logger() *log.Logger {
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: config.AppName})
	if a.flags.verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// tuiConfig returns the front end configuration for the App streams.
func (a *App) tuiConfig() tui.Config {
	cfg := tui.DefaultConfig()
	cfg.Theme = tui.ParseTheme(a.flags.theme)
	if a.flags.accessible {
		cfg.Accessible = true
	}
	if a.stdin != nil {
		cfg.Input = a.stdin
	}
	if cfg.Accessible || cfg.Input != nil {
		cfg.Output = a.stderr
	} else {
		cfg.Output = a.stdout
	}
	return cfg
}

// fail renders err with its troubleshooting page and returns it as an
// ExitError so that it is not printed a second time.
func (a *App) fail(err error) error {
	return a.failWith(err, classifyError(err))
}

func (a *App) failWith(err error, id issue.Id) error {
	renderError(a.stderr, err, id, a.flags.verbose, a.glamourStyle())
	return &ExitError{Code: 1, Err: err, rendered: true}
}

// glamourStyle maps the configured color scheme to a glamour style name.
func (a *App) glamourStyle() string {
	switch a.colorScheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	default:
		return "auto"
	}
}
