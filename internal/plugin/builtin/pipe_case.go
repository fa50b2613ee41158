// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"strings"

	"github.com/rapidcopper/rapidcopper/internal/plugin"
)

func init() {
	plugin.RegisterDefault(plugin.Builtin{
		Module: "pipe_upper",
		Doc:    "Convert the input to upper case",
		Run:    textPipe("pipe_upper", strings.ToUpper),
	})
	plugin.RegisterDefault(plugin.Builtin{
		Module: "pipe_lower",
		Doc:    "Convert the input to lower case",
		Run:    textPipe("pipe_lower", strings.ToLower),
	})
	plugin.RegisterDefault(plugin.Builtin{
		Module: "pipe_trim",
		Doc:    "Strip leading and trailing whitespace",
		Run:    textPipe("pipe_trim", strings.TrimSpace),
	})
	plugin.RegisterDefault(plugin.Builtin{
		Module: "pipe_reverse",
		Doc:    "Reverse the characters of the input",
		Run:    textPipe("pipe_reverse", reverse),
	})
}

// textPipe adapts a string transformation to a pipe entry point.
func textPipe(module string, fn func(string) string) func(context.Context, []plugin.Value) (plugin.Value, error) {
	return func(_ context.Context, args []plugin.Value) (plugin.Value, error) {
		in, err := input(module, args)
		if err != nil {
			return nil, err
		}
		return fn(in), nil
	}
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
