// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"strings"

	"github.com/rapidcopper/rapidcopper/internal/plugin"
)

func init() {
	plugin.RegisterDefault(plugin.Builtin{
		Module: "action_greet",
		Doc:    "Say hello to someone",
		Run:    greet,
	})
}

// greet returns "hello " followed by its arguments joined with spaces.
func greet(_ context.Context, args []plugin.Value) (plugin.Value, error) {
	return "hello " + strings.Join(plugin.Strings(args), " "), nil
}
