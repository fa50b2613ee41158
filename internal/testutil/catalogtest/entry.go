// SPDX-License-Identifier: MPL-2.0

package catalogtest

import (
	"github.com/rapidcopper/rapidcopper/internal/catalog"
)

// EntryOption configures a test entry.
// Apply options to customize beyond the minimal defaults.
type EntryOption func(*catalog.Entry)

// NewApplication creates an application entry located at
// /usr/share/applications/<name>.desktop.
func NewApplication(name string, opts ...EntryOption) catalog.Entry {
	return newEntry(catalog.KindApplication, name, "/usr/share/applications/"+name+".desktop", opts)
}

// NewAction creates an external action entry located at /plugins/action_<name>.sh.
func NewAction(name string, opts ...EntryOption) catalog.Entry {
	return newEntry(catalog.KindAction, name, "/plugins/action_"+name+".sh", opts)
}

// NewPipe creates an external pipe entry located at /plugins/pipe_<name>.sh.
func NewPipe(name string, opts ...EntryOption) catalog.Entry {
	return newEntry(catalog.KindPipe, name, "/plugins/pipe_"+name+".sh", opts)
}

func newEntry(kind catalog.Kind, name, location string, opts []EntryOption) catalog.Entry {
	e := catalog.Entry{Name: name, Location: location, Kind: kind}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// WithDescription sets the entry description.
func WithDescription(desc string) EntryOption {
	return func(e *catalog.Entry) {
		e.Description = desc
	}
}

// WithLocation overrides the default location.
func WithLocation(location string) EntryOption {
	return func(e *catalog.Entry) {
		e.Location = location
	}
}

// AsBuiltin marks the entry builtin and points Location at the builtin module
// <kind>_<name>.
func AsBuiltin() EntryOption {
	return func(e *catalog.Entry) {
		e.Builtin = true
		e.Location = e.Kind.String() + "_" + e.Name
	}
}
