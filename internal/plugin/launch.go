// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

type (
	// ApplicationLaunch activates a desktop application through a launcher
	// command. It produces no value and never fails.
	ApplicationLaunch struct {
		// Location is the path of the desktop file.
		Location string
		// Launcher is the command the desktop file stem is appended to.
		Launcher []string
		Logger   *log.Logger
	}

	// BuiltinInvoke runs a registered builtin.
	BuiltinInvoke struct {
		Builtin Builtin
	}
)

// Stem returns the desktop file name without directory and extension, which is
// the application id gtk-launch expects.
func (a *ApplicationLaunch) Stem() string {
	base := filepath.Base(a.Location)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Run implements Runnable. Launch failures are logged and swallowed.
func (a *ApplicationLaunch) Run(ctx context.Context, _ []Value) (Value, error) {
	logger := a.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	launcher := a.Launcher
	if len(launcher) == 0 {
		launcher = DefaultLauncher
	}

	argv := append(append([]string(nil), launcher[1:]...), a.Stem())
	cmd := exec.CommandContext(ctx, launcher[0], argv...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debug("launching application", "launcher", launcher[0], "app", a.Stem())
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Warn("application launcher exited with error",
				"app", a.Stem(), "code", exitErr.ExitCode(), "stderr", strings.TrimSpace(stderr.String()))
		} else {
			logger.Error("failed to start application launcher", "app", a.Stem(), "error", err)
		}
	}
	return nil, nil
}

// Run implements Runnable. Errors returned by the builtin are wrapped in a
// RunError.
func (b *BuiltinInvoke) Run(ctx context.Context, args []Value) (Value, error) {
	v, err := b.Builtin.Run(ctx, args)
	if err != nil {
		return nil, &RunError{Location: b.Builtin.Module, Err: err}
	}
	return v, nil
}
