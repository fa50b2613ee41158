// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"errors"
	"fmt"

	"github.com/rapidcopper/rapidcopper/internal/plugin"
)

// ErrArity is returned when a pipe does not receive exactly one value.
var ErrArity = errors.New("wrong number of arguments")

// ArityError is returned when a builtin receives the wrong number of arguments.
type ArityError struct {
	Module string
	Want   int
	Got    int
}

// Error implements the error interface for ArityError.
func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %d argument(s), got %d", e.Module, e.Want, e.Got)
}

// Unwrap returns ErrArity for errors.Is() compatibility.
func (e *ArityError) Unwrap() error { return ErrArity }

// input returns the single value a pipe receives, as text.
func input(module string, args []plugin.Value) (string, error) {
	if len(args) != 1 {
		return "", &ArityError{Module: module, Want: 1, Got: len(args)}
	}
	return plugin.Strings(args)[0], nil
}
