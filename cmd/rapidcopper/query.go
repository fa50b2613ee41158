// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rapidcopper/rapidcopper/internal/pipeline"
	"github.com/rapidcopper/rapidcopper/internal/resolve"
	"github.com/rapidcopper/rapidcopper/internal/tui"
)

func newQueryCommand(app *App) *cobra.Command {
	var pipe, withArgs bool
	cmd := &cobra.Command{
		Use:   "query [token]",
		Short: "Show the ranked candidates for a token without running anything",
		Long: `Show the ranked candidates for a token without running anything.

By default the token is looked up the way the first word of a command line
is: applications and actions. --pipe looks it up as a later stage, and
--with-args as a first word followed by arguments, which only actions take.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := ""
			if len(args) == 1 {
				token = args[0]
			}
			return runQuery(cmd.Context(), app, token, pipe, withArgs)
		},
	}
	cmd.Flags().BoolVar(&pipe, "pipe", false, "look the token up as a pipe stage")
	cmd.Flags().BoolVar(&withArgs, "with-args", false, "look the token up as an action followed by arguments")
	cmd.MarkFlagsMutuallyExclusive("pipe", "with-args")
	return cmd
}

func runQuery(ctx context.Context, app *App, token string, pipe, withArgs bool) error {
	s, l, err := app.open(ctx)
	if err != nil {
		return app.fail(err)
	}
	defer func() {
		if closeErr := l.Close(); closeErr != nil {
			s.logger.Warn("failed to close catalog", "error", closeErr)
		}
	}()

	stage, argc := 0, 0
	switch {
	case pipe:
		stage = 1
	case withArgs:
		argc = 1
	}
	kinds := resolve.KindsFor(stage, argc)

	cs, err := l.Resolve(ctx, kinds, token)
	if err != nil {
		return app.fail(err)
	}
	if len(cs) == 0 {
		return app.fail(&pipeline.NotFoundError{Stage: stage, Token: token, Kinds: kinds})
	}
	fmt.Fprint(app.stdout, tui.FormatCandidates(cs))
	return nil
}
