// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/rapidcopper/rapidcopper/internal/tui"
)

// errNoTerminal is returned when the interactive view cannot take over the terminal.
var errNoTerminal = errors.New("the interactive view needs a terminal; use 'rapidcopper do' in scripts")

func newTUICommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Type command lines with live candidates",
		Long: `Type command lines with live candidates.

Candidates for the word being typed are shown as you type and can be picked
with the arrow keys. Enter evaluates the line, Esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), app)
		},
	}
}

func runTUI(ctx context.Context, app *App) error {
	s, l, err := app.open(ctx)
	if err != nil {
		return app.fail(err)
	}
	defer func() {
		if closeErr := l.Close(); closeErr != nil {
			s.logger.Warn("failed to close catalog", "error", closeErr)
		}
	}()

	cfg := app.tuiConfig()
	if cfg.Accessible && cfg.Input == nil {
		return app.fail(errNoTerminal)
	}
	cfg.Output = app.stdout
	if err := tui.RunInteractive(ctx, l, cfg); err != nil {
		return app.fail(err)
	}
	return nil
}
