// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"strings"

	"github.com/rapidcopper/rapidcopper/internal/plugin"
)

func init() {
	plugin.RegisterDefault(plugin.Builtin{
		Module: "action_echo",
		Doc:    "Print the arguments",
		Run:    echo,
	})
}

func echo(_ context.Context, args []plugin.Value) (plugin.Value, error) {
	return strings.Join(plugin.Strings(args), " "), nil
}
