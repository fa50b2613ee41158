// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// KindApplication is an installed desktop application.
	KindApplication Kind = iota + 1
	// KindAction is a plugin invoked with zero or more arguments, first in a pipeline.
	KindAction
	// KindPipe is a plugin invoked with the previous stage's value as its only argument.
	KindPipe
)

// AllKinds selects every record set.
const AllKinds = KindSet(1<<KindApplication | 1<<KindAction | 1<<KindPipe)

// ErrInvalidEntry is the sentinel error wrapped by InvalidEntryError.
var ErrInvalidEntry = errors.New("invalid catalog entry")

type (
	// Kind discriminates the record set an Entry belongs to.
	Kind int

	// KindSet is a set of kinds used to scope queries.
	KindSet uint8

	// Entry is one runnable unit of the catalog.
	Entry struct {
		// Name is what users type to invoke the entry. Not unique across kinds.
		Name string `json:"name"`
		// Description is the desktop comment or the plugin's description literal.
		Description string `json:"description"`
		// Location is a filesystem path, or a builtin module identifier when Builtin is set.
		Location string `json:"location"`
		// Kind selects the execution strategy and arity.
		Kind Kind `json:"kind"`
		// Builtin reports whether Location names a compiled-in plugin module.
		// Always false for applications.
		Builtin bool `json:"is_builtin"`
	}

	// InvalidEntryError is returned when an Entry violates the catalog invariants.
	InvalidEntryError struct {
		Entry  Entry
		Reason string
	}
)

// NewKindSet builds a KindSet from the given kinds.
func NewKindSet(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	return s&(1<<k) != 0
}

// Kinds returns the members of the set in catalog order.
func (s KindSet) Kinds() []Kind {
	var kinds []Kind
	for _, k := range []Kind{KindApplication, KindAction, KindPipe} {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// String returns the record set name of the kind.
func (k Kind) String() string {
	switch k {
	case KindApplication:
		return "application"
	case KindAction:
		return "action"
	case KindPipe:
		return "pipe"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsValid returns whether the kind is one of the defined kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindApplication, KindAction, KindPipe:
		return true
	default:
		return false
	}
}

// ParseKind parses a record set name as produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "application", "app":
		return KindApplication, nil
	case "action":
		return KindAction, nil
	case "pipe":
		return KindPipe, nil
	default:
		return 0, fmt.Errorf("unknown kind %q (valid: application, action, pipe)", s)
	}
}

// Validate checks the invariants every persisted entry must satisfy.
func (e Entry) Validate() error {
	switch {
	case !e.Kind.IsValid():
		return &InvalidEntryError{Entry: e, Reason: "unknown kind"}
	case strings.TrimSpace(e.Name) == "":
		return &InvalidEntryError{Entry: e, Reason: "name must be non-empty"}
	case e.Location == "":
		return &InvalidEntryError{Entry: e, Reason: "location must be non-empty"}
	case e.Kind == KindApplication && e.Builtin:
		return &InvalidEntryError{Entry: e, Reason: "applications cannot be builtin"}
	}
	return nil
}

// Error implements the error interface for InvalidEntryError.
func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid %s entry %q: %s", e.Entry.Kind, e.Entry.Name, e.Reason)
}

// Unwrap returns ErrInvalidEntry for errors.Is() compatibility.
func (e *InvalidEntryError) Unwrap() error { return ErrInvalidEntry }
