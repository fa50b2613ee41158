// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// newRootCommand builds the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rapidcopper",
		Short: "A keyboard launcher that pipes actions into each other",
		Long: TitleStyle.Render("rapidcopper") + SubtitleStyle.Render(" - A keyboard launcher that pipes actions into each other") + `

rapidcopper indexes installed desktop applications and plugins into a
catalog, then evaluates command lines against it. The first word of a
line names an application or an action; every '|' hands the value on
to a pipe.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Build the catalog with: rapidcopper rebuild
  2. Run a pipeline with:    rapidcopper do greet world '|' upper
  3. Or type interactively:  rapidcopper tui

` + SubtitleStyle.Render("Examples:") + `
  rapidcopper do firefox              Launch an application
  rapidcopper query --pipe up         Show the pipes matching 'up'
  rapidcopper list --kind action      List every action
  rapidcopper config show             Show current configuration`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable debug logging and troubleshooting output")
	flags.StringVar(&app.flags.configFile, "config", "", "config file (default is <config dir>/config.cue)")
	flags.StringVar(&app.flags.configDir, "config-dir", "", "configuration directory holding config.cue, the catalog and plugins")
	flags.BoolVar(&app.flags.accessible, "accessible", false, "use plain line prompts instead of interactive widgets")
	flags.StringVar(&app.flags.theme, "theme", "default", "prompt theme (default, charm, dracula, catppuccin, base16)")

	rootCmd.AddCommand(
		newRebuildCommand(app),
		newDoCommand(app),
		newQueryCommand(app),
		newListCommand(app),
		newTUICommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// Execute builds the CLI and runs it. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	// fang overrides rootCmd.Version, so the version goes through its option.
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// handleError prints errors that were not already rendered by a command.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.rendered {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
