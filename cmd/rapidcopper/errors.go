// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rapidcopper/rapidcopper/internal/issue"
	"github.com/rapidcopper/rapidcopper/internal/pipeline"
	"github.com/rapidcopper/rapidcopper/internal/plugin"
	"github.com/rapidcopper/rapidcopper/internal/tui"
)

// classifyError maps a failure to its issue catalog entry. Zero means the
// catalog has no page for it.
func classifyError(err error) issue.Id {
	var ae *issue.ActionableError
	switch {
	case errors.As(err, &ae) && ae.Issue != 0:
		return ae.Issue
	case errors.Is(err, os.ErrPermission):
		return issue.PermissionDeniedId
	case errors.Is(err, pipeline.ErrNotFound):
		return issue.NoSuitableActionId
	case errors.Is(err, pipeline.ErrAmbiguousChoice), errors.Is(err, tui.ErrInvalidChoice):
		return issue.InvalidChoiceId
	case errors.Is(err, pipeline.ErrMalformedPipeline):
		return issue.MalformedPipelineId
	case errors.Is(err, plugin.ErrPluginLoad):
		return issue.PluginLoadFailedId
	case errors.Is(err, plugin.ErrPluginRun):
		return issue.PluginRunFailedId
	default:
		return 0
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderError writes the styled error and, in verbose mode, the issue page
// for id. Rendering problems are reported but never replace err.
func renderError(w io.Writer, err error, id issue.Id, verbose bool, style string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
	if id == 0 {
		return
	}
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	if !verbose {
		fmt.Fprintln(w, SubtitleStyle.Render("Run with --verbose for troubleshooting steps."))
		return
	}
	rendered, renderErr := entry.Render(style)
	if renderErr != nil {
		fmt.Fprintf(w, "%s failed to render help: %v\n", WarningStyle.Render("Warning:"), renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}
