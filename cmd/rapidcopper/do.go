// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
	"github.com/rapidcopper/rapidcopper/internal/issue"
	"github.com/rapidcopper/rapidcopper/internal/pipeline"
	"github.com/rapidcopper/rapidcopper/internal/tui"
)

func newDoCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <words...>",
		Short: "Evaluate a command line",
		Long: `Evaluate a command line against the catalog.

The first word names an application or an action, the remaining words up
to the first '|' are the action's arguments. Each '|' passes the value on
to the next pipe. Quote the pipes so that your shell leaves them alone.
A single argument is split on whitespace; separate arguments are passed on
as they are, so quoted arguments keep their spaces.

When a word matches several entries the candidates are listed and you are
asked to pick one. An action typed without arguments asks for them.`,
		Example: `  rapidcopper do firefox
  rapidcopper do greet world '|' upper
  rapidcopper do "greet world | upper | base64"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDo(cmd.Context(), app, args)
		},
	}
	// Words after the first argument belong to the command line, not to us.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func runDo(ctx context.Context, app *App, args []string) error {
	s, l, err := app.open(ctx)
	if err != nil {
		return app.fail(err)
	}
	defer func() {
		if closeErr := l.Close(); closeErr != nil {
			s.logger.Warn("failed to close catalog", "error", closeErr)
		}
	}()

	fe := tui.NewLineFrontEnd(app.tuiConfig())
	// A single argument is a whole command line; several arguments were
	// already split by the shell and keep their quoting.
	var out pipeline.Outcome
	if len(args) == 1 {
		out = l.Evaluate(ctx, fe, args[0])
	} else {
		out = l.EvaluateWords(ctx, fe, args)
	}
	s.logger.Debug("evaluated", "words", args, "outcome", out)

	switch out.Status {
	case pipeline.StatusProduced:
		if out.Value != nil {
			fmt.Fprintln(app.stdout, out.Value)
		}
		return nil
	case pipeline.StatusLaunched:
		return nil
	default:
		id := classifyError(out.Err)
		if errors.Is(out.Err, pipeline.ErrNotFound) {
			if entries, qErr := l.Entries(ctx, catalog.AllKinds); qErr == nil && len(entries) == 0 {
				id = issue.CatalogEmptyId
			}
		}
		return app.failWith(out.Err, id)
	}
}
