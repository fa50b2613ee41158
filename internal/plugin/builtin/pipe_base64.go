// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"encoding/base64"

	"github.com/rapidcopper/rapidcopper/internal/plugin"
)

func init() {
	plugin.RegisterDefault(plugin.Builtin{
		Module: "pipe_base64",
		Doc:    "Encode the input as base64",
		Run: textPipe("pipe_base64", func(s string) string {
			return base64.StdEncoding.EncodeToString([]byte(s))
		}),
	})
}
