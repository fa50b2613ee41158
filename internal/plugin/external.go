// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// EntryPoint is the shell function every external plugin must define.
const EntryPoint = "run"

// ExternalInvoke runs a shell plugin file. The file is read and parsed on every
// Run, so edits take effect without a catalog rebuild.
type ExternalInvoke struct {
	// Path is the plugin source file.
	Path string
	// Fs is the filesystem Path is read from. Nil means the OS filesystem.
	Fs afero.Fs
	// Env is the plugin environment. Nil means the current process environment.
	Env    []string
	Logger *log.Logger
}

// Load reads and parses the plugin source. The description line is blanked
// so that it is never interpreted, keeping line numbers intact.
func (x *ExternalInvoke) Load() (*syntax.File, error) {
	src, err := afero.ReadFile(x.fs(), x.Path)
	if err != nil {
		return nil, &LoadError{Location: x.Path, Reason: "cannot read source", Err: err}
	}
	first, rest, _ := bytes.Cut(src, []byte("\n"))
	if _, err := ParseDescription(string(first)); err != nil {
		return nil, &LoadError{Location: x.Path, Reason: "bad description line", Err: err}
	}
	body := append([]byte("\n"), rest...)

	prog, err := syntax.NewParser().Parse(bytes.NewReader(body), x.Path)
	if err != nil {
		return nil, &LoadError{Location: x.Path, Reason: "syntax error", Err: err}
	}
	return prog, nil
}

// Run implements Runnable. Args are passed to the plugin's run function as
// positional parameters; its standard output, with trailing newlines removed,
// is the result.
func (x *ExternalInvoke) Run(ctx context.Context, args []Value) (Value, error) {
	logger := x.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	prog, err := x.Load()
	if err != nil {
		return nil, err
	}

	env := x.Env
	if env == nil {
		env = os.Environ()
	}
	var stdout, stderr bytes.Buffer
	// Prepend "--" so args like "-v" are not parsed as shell options.
	params := append([]string{"--"}, Strings(args)...)
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, &stdout, &stderr),
		interp.Params(params...),
	}
	// Plugins run next to their source when it lives on the real filesystem.
	if _, onDisk := x.fs().(*afero.OsFs); onDisk {
		opts = append(opts, interp.Dir(filepath.Dir(x.Path)))
	}
	runner, err := interp.New(opts...)
	if err != nil {
		return nil, &LoadError{Location: x.Path, Reason: "cannot create interpreter", Err: err}
	}

	// The first pass only defines functions and top-level state.
	if err := runner.Run(ctx, prog); err != nil {
		return nil, x.runError(err, &stderr)
	}
	if _, ok := runner.Funcs[EntryPoint]; !ok {
		return nil, &LoadError{Location: x.Path, Reason: fmt.Sprintf("no %q function defined", EntryPoint)}
	}
	stdout.Reset()

	call, err := syntax.NewParser().Parse(strings.NewReader(EntryPoint+` "$@"`), x.Path)
	if err != nil {
		return nil, &LoadError{Location: x.Path, Reason: "cannot build entry point call", Err: err}
	}
	logger.Debug("running external plugin", "path", x.Path, "args", len(args))
	if err := runner.Run(ctx, call); err != nil {
		return nil, x.runError(err, &stderr)
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}

func (x *ExternalInvoke) fs() afero.Fs {
	if x.Fs == nil {
		return afero.NewOsFs()
	}
	return x.Fs
}

func (x *ExternalInvoke) runError(err error, stderr *bytes.Buffer) error {
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return &RunError{Location: x.Path, ExitCode: int(status), Stderr: stderr.String()}
	}
	return &RunError{Location: x.Path, Stderr: stderr.String(), Err: err}
}
