// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPluginLoad is returned when a plugin cannot be loaded: missing file,
	// syntax error, missing run entry point or unknown builtin module.
	ErrPluginLoad = errors.New("failed to load plugin")

	// ErrPluginRun is returned when a loaded plugin fails while running.
	ErrPluginRun = errors.New("plugin failed")
)

type (
	// Value flows between pipeline stages. External plugins receive and
	// produce strings; builtins may pass any value.
	Value = any

	// Runnable is an executable catalog entry.
	Runnable interface {
		// Run executes the entry with positional args and returns its result.
		// Applications return a nil Value.
		Run(ctx context.Context, args []Value) (Value, error)
	}

	// RunnableFunc adapts a function to the Runnable interface.
	RunnableFunc func(ctx context.Context, args []Value) (Value, error)

	// LoadError is returned when a plugin cannot be loaded.
	LoadError struct {
		Location string
		Reason   string
		Err      error
	}

	// RunError is returned when a plugin fails while running.
	RunError struct {
		Location string
		// ExitCode is the shell exit status for external plugins, 0 otherwise.
		ExitCode int
		// Stderr holds what an external plugin wrote to standard error.
		Stderr string
		Err    error
	}
)

// Run implements Runnable.
func (f RunnableFunc) Run(ctx context.Context, args []Value) (Value, error) {
	return f(ctx, args)
}

// Error implements the error interface for LoadError.
func (e *LoadError) Error() string {
	msg := fmt.Sprintf("failed to load plugin %s: %s", e.Location, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns ErrPluginLoad for errors.Is() compatibility.
func (e *LoadError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrPluginLoad, e.Err}
	}
	return []error{ErrPluginLoad}
}

// Error implements the error interface for RunError.
func (e *RunError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "plugin %s failed", e.Location)
	if e.ExitCode != 0 {
		fmt.Fprintf(&sb, " with exit code %d", e.ExitCode)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		sb.WriteString(": ")
		sb.WriteString(stderr)
	}
	return sb.String()
}

// Unwrap returns ErrPluginRun for errors.Is() compatibility.
func (e *RunError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrPluginRun, e.Err}
	}
	return []error{ErrPluginRun}
}

// Strings converts values to their string form for plugins that only speak
// text. Strings are kept as is, nil becomes the empty string and anything else
// is formatted with %v.
func Strings(args []Value) []string {
	out := make([]string, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case nil:
		case string:
			out[i] = v
		case fmt.Stringer:
			out[i] = v.String()
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}
