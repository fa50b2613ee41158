// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"slices"
	"strings"

	"github.com/rapidcopper/rapidcopper/internal/plugin"
)

func init() {
	plugin.RegisterDefault(plugin.Builtin{
		Module: "pipe_sort",
		Doc:    "Sort the lines of the input",
		Run:    textPipe("pipe_sort", sortLines),
	})
}

func sortLines(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	slices.Sort(lines)
	return strings.Join(lines, "\n")
}
