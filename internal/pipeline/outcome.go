// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"fmt"

	"github.com/rapidcopper/rapidcopper/internal/plugin"
)

const (
	// StatusFailed means the pipeline aborted; Outcome.Err holds the reason.
	StatusFailed Status = iota
	// StatusLaunched means the pipeline ended on an application launch.
	StatusLaunched
	// StatusProduced means the last stage returned Outcome.Value.
	StatusProduced
)

type (
	// Status is the kind of an Outcome.
	Status int

	// Outcome is the result of evaluating one command line.
	Outcome struct {
		Status Status
		// Value is the last stage's result when Status is StatusProduced.
		Value plugin.Value
		// Err is set when Status is StatusFailed.
		Err error
	}
)

// Launched returns the outcome of a pipeline that launched an application.
func Launched() Outcome { return Outcome{Status: StatusLaunched} }

// Produced returns the outcome of a pipeline whose last stage returned v.
func Produced(v plugin.Value) Outcome { return Outcome{Status: StatusProduced, Value: v} }

// Failed returns the outcome of an aborted pipeline.
func Failed(err error) Outcome { return Outcome{Status: StatusFailed, Err: err} }

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusFailed:
		return "failed"
	case StatusLaunched:
		return "launched"
	case StatusProduced:
		return "produced"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// String renders the outcome for logs.
func (o Outcome) String() string {
	switch o.Status {
	case StatusProduced:
		return fmt.Sprintf("produced(%v)", o.Value)
	case StatusFailed:
		return fmt.Sprintf("failed(%v)", o.Err)
	default:
		return o.Status.String()
	}
}
