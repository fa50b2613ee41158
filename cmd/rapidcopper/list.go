// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
	"github.com/rapidcopper/rapidcopper/internal/tui"
)

func newListCommand(app *App) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kinds := catalog.AllKinds
			if kind != "" {
				k, err := catalog.ParseKind(kind)
				if err != nil {
					return err
				}
				kinds = catalog.NewKindSet(k)
			}
			return runList(cmd.Context(), app, kinds)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only list entries of this kind (application, action, pipe)")
	return cmd
}

func runList(ctx context.Context, app *App, kinds catalog.KindSet) error {
	s, l, err := app.open(ctx)
	if err != nil {
		return app.fail(err)
	}
	defer func() {
		if closeErr := l.Close(); closeErr != nil {
			s.logger.Warn("failed to close catalog", "error", closeErr)
		}
	}()

	entries, err := l.Entries(ctx, kinds)
	if err != nil {
		return app.fail(err)
	}
	for _, e := range entries {
		fmt.Fprintln(app.stdout, tui.FormatEntry(e))
	}
	if len(entries) == 0 {
		fmt.Fprintln(app.stderr, SubtitleStyle.Render("(no entries; run 'rapidcopper rebuild')"))
	}
	return nil
}
