// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"strings"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
)

const (
	actionPrefix = "action_"
	pipePrefix   = "pipe_"
)

// ParseSourceName splits a plugin file or module name following the
// action_<id> / pipe_<id> convention. The id is the text before the first dot,
// lower-cased. ok is false when the name does not follow the convention or the
// id is empty.
func ParseSourceName(name string) (kind catalog.Kind, id string, ok bool) {
	var rest string
	switch {
	case strings.HasPrefix(name, actionPrefix):
		kind, rest = catalog.KindAction, name[len(actionPrefix):]
	case strings.HasPrefix(name, pipePrefix):
		kind, rest = catalog.KindPipe, name[len(pipePrefix):]
	default:
		return 0, "", false
	}
	id, _, _ = strings.Cut(rest, ".")
	id = strings.ToLower(id)
	if id == "" {
		return 0, "", false
	}
	return kind, id, true
}

// ModuleName returns the conventional module name for a plugin of kind with id.
func ModuleName(kind catalog.Kind, id string) string {
	if kind == catalog.KindPipe {
		return pipePrefix + id
	}
	return actionPrefix + id
}
