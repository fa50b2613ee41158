// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
)

// DefaultLauncher is the command that activates a desktop application. The
// desktop file stem is appended as the last argument.
var DefaultLauncher = []string{"gtk-launch"}

type (
	// Executor binds catalog entries to runnables.
	Executor struct {
		registry *Registry
		launcher []string
		fs       afero.Fs
		env      []string
		logger   *log.Logger
	}

	// ExecutorOption configures an Executor.
	ExecutorOption func(*Executor)
)

// WithRegistry sets the builtin registry. The default is DefaultRegistry.
func WithRegistry(r *Registry) ExecutorOption {
	return func(e *Executor) {
		e.registry = r
	}
}

// WithLauncher sets the application launcher command.
func WithLauncher(argv ...string) ExecutorOption {
	return func(e *Executor) {
		if len(argv) > 0 {
			e.launcher = argv
		}
	}
}

// WithFs sets the filesystem external plugins are read from.
func WithFs(fs afero.Fs) ExecutorOption {
	return func(e *Executor) {
		e.fs = fs
	}
}

// WithEnv sets the environment external plugins run with, as KEY=value pairs.
func WithEnv(env []string) ExecutorOption {
	return func(e *Executor) {
		e.env = env
	}
}

// WithLogger sets the logger used for launch failures and execution traces.
func WithLogger(l *log.Logger) ExecutorOption {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExecutor creates an Executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		registry: DefaultRegistry,
		launcher: DefaultLauncher,
		fs:       afero.NewOsFs(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Bind selects the execution strategy for entry. Builtin entries are checked
// against the registry immediately; external files are only read when run.
func (e *Executor) Bind(entry catalog.Entry) (Runnable, error) {
	switch {
	case entry.Kind == catalog.KindApplication:
		return &ApplicationLaunch{Location: entry.Location, Launcher: e.launcher, Logger: e.logger}, nil
	case entry.Builtin:
		b, ok := e.registry.Lookup(entry.Location)
		if !ok {
			return nil, &LoadError{Location: entry.Location, Reason: "no builtin module with this name"}
		}
		return &BuiltinInvoke{Builtin: b}, nil
	case entry.Kind == catalog.KindAction || entry.Kind == catalog.KindPipe:
		return &ExternalInvoke{Path: entry.Location, Fs: e.fs, Env: e.env, Logger: e.logger}, nil
	default:
		return nil, fmt.Errorf("cannot bind %s entry %q", entry.Kind, entry.Name)
	}
}
