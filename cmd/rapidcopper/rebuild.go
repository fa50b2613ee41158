// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rapidcopper/rapidcopper/internal/discovery"
	"github.com/rapidcopper/rapidcopper/internal/watch"
)

func newRebuildCommand(app *App) *cobra.Command {
	var watchSources bool
	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild the catalog from installed applications and plugins",
		Long: `Rebuild the catalog from installed applications and plugins.

The catalog is replaced as a whole: entries whose source disappeared are
dropped, and a failed rebuild leaves the previous catalog untouched.
Files that cannot be indexed are reported and skipped.

With --watch the command keeps running and rebuilds the catalog whenever a
plugin or desktop entry is added, changed or removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRebuild(cmd.Context(), app, watchSources)
		},
	}
	cmd.Flags().BoolVarP(&watchSources, "watch", "w", false, "keep running and rebuild when plugins or applications change")
	return cmd
}

func runRebuild(ctx context.Context, app *App, watchSources bool) error {
	s, l, err := app.open(ctx)
	if err != nil {
		return app.fail(err)
	}
	defer func() {
		if closeErr := l.Close(); closeErr != nil {
			s.logger.Warn("failed to close catalog", "error", closeErr)
		}
	}()

	report, err := l.Rebuild(ctx)
	if err != nil {
		return app.fail(err)
	}
	printReport(app, s, report)
	if !watchSources {
		return nil
	}

	w, err := watch.New(watch.Config{
		Dirs:     append([]string{s.paths.PluginDir}, s.paths.ApplicationDirs...),
		Patterns: watch.SourcePatterns(s.paths.PluginExtensions, s.paths.ApplicationExtensions),
		Logger:   s.logger.WithPrefix("watch"),
		OnChange: func(ctx context.Context, changed []string) error {
			s.logger.Debug("sources changed", "files", changed)
			report, err := l.Rebuild(ctx)
			if err != nil {
				return err
			}
			printReport(app, s, report)
			return nil
		},
	})
	if err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.stdout, "%s Watching %d directories for changes (Ctrl+C to stop)\n",
		SubtitleStyle.Render("•"), len(w.Watched()))
	if err := w.Run(ctx); err != nil {
		return app.fail(err)
	}
	return nil
}

// printReport prints the diagnostics and totals of one rebuild.
func printReport(app *App, s *session, report discovery.Report) {
	renderDiagnostics(app.stderr, report.Diagnostics, app.flags.verbose)
	fmt.Fprintf(app.stdout, "%s Indexed %d entries (%d applications, %d actions, %d pipes)\n",
		SuccessStyle.Render("✓"), report.Total(), report.Applications, report.Actions, report.Pipes)
	if report.Total() == 0 {
		fmt.Fprintf(app.stdout, "%s the catalog is empty; add plugins to %s\n",
			WarningStyle.Render("!"), CmdStyle.Render(s.paths.PluginDir))
	}
}

// renderDiagnostics prints error diagnostics, and warnings in verbose mode.
func renderDiagnostics(w io.Writer, diags []discovery.Diagnostic, verbose bool) {
	hidden := 0
	for _, d := range diags {
		if d.Severity != discovery.SeverityError && !verbose {
			hidden++
			continue
		}
		label := WarningStyle.Render(d.Severity.String() + ":")
		if d.Severity == discovery.SeverityError {
			label = ErrorStyle.Render(d.Severity.String() + ":")
		}
		fmt.Fprintf(w, "%s %s", label, d.Message)
		if d.Path != "" {
			fmt.Fprintf(w, " %s", VerboseStyle.Render("("+d.Path+")"))
		}
		fmt.Fprintln(w)
		if verbose && d.Cause != nil {
			fmt.Fprintf(w, "  %s %v\n", VerboseStyle.Render("cause:"), d.Cause)
		}
	}
	if hidden > 0 {
		fmt.Fprintln(w, SubtitleStyle.Render(fmt.Sprintf("%d warnings hidden; run with --verbose to see them", hidden)))
	}
}
