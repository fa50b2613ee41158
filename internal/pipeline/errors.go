// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"fmt"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
)

var (
	// ErrNotFound is returned when a stage token matches no catalog entry.
	ErrNotFound = errors.New("no suitable action found")
	// ErrAmbiguousChoice is returned when a disambiguation index is out of range.
	ErrAmbiguousChoice = errors.New("invalid candidate choice")
	// ErrExecutionFailure is returned when an action or pipe fails to load or run.
	ErrExecutionFailure = errors.New("execution failed")
	// ErrMalformedPipeline is returned for a command line that cannot form a pipeline.
	ErrMalformedPipeline = errors.New("malformed pipeline")
)

type (
	// NotFoundError is returned when a stage token matches no catalog entry.
	NotFoundError struct {
		Stage int
		Token string
		Kinds catalog.KindSet
	}

	// ChoiceError is returned when the front end picks an index outside the
	// candidate list.
	ChoiceError struct {
		Stage  int
		Choice int
		Count  int
	}

	// ExecutionError is returned when a stage fails to load or run.
	ExecutionError struct {
		Stage int
		Entry catalog.Entry
		Err   error
	}

	// MalformedPipelineError is returned for a command line that cannot form a pipeline.
	MalformedPipelineError struct {
		Stage  int
		Reason string
	}
)

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	var kinds []string
	for _, k := range e.Kinds.Kinds() {
		kinds = append(kinds, k.String())
	}
	return fmt.Sprintf("stage %d: no suitable action found for %q (searched: %v)", e.Stage, e.Token, kinds)
}

// Unwrap returns ErrNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface for ChoiceError.
func (e *ChoiceError) Error() string {
	return fmt.Sprintf("stage %d: choice %d is out of range (0-%d)", e.Stage, e.Choice, e.Count-1)
}

// Unwrap returns ErrAmbiguousChoice for errors.Is() compatibility.
func (e *ChoiceError) Unwrap() error { return ErrAmbiguousChoice }

// Error implements the error interface for ExecutionError.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("stage %d: %s %q: %v", e.Stage, e.Entry.Kind, e.Entry.Name, e.Err)
}

// Unwrap returns ErrExecutionFailure and the underlying error.
func (e *ExecutionError) Unwrap() []error { return []error{ErrExecutionFailure, e.Err} }

// Error implements the error interface for MalformedPipelineError.
func (e *MalformedPipelineError) Error() string {
	return fmt.Sprintf("stage %d: %s", e.Stage, e.Reason)
}

// Unwrap returns ErrMalformedPipeline for errors.Is() compatibility.
func (e *MalformedPipelineError) Unwrap() error { return ErrMalformedPipeline }
