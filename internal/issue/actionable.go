// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a user-facing error: what was attempted, on what, why
	// it failed, and what to try next. It may point at an issue page that the
	// CLI renders in verbose mode.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("open catalog").
	//		WithResource("~/.config/rapidcopper/index.sqlite").
	//		WithSuggestion("Run 'rapidcopper rebuild'").
	//		WithIssue(issue.CatalogUnavailableId).
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "open catalog" or "run pipeline".
		Operation string
		// Resource is the file or entity involved, if any.
		Resource string
		// Suggestions are remediation hints, shown as a bullet list.
		Suggestions []string
		// Issue is the catalog page describing this failure, or zero.
		Issue Id
		// Cause is the underlying error.
		Cause error
	}

	// ErrorContext builds an ActionableError incrementally.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		issue       Id
		cause       error
	}
)

// NewActionableError creates an ActionableError for operation.
func NewActionableError(operation string) *ActionableError {
	return &ActionableError{Operation: operation}
}

// NewErrorContext creates an empty ErrorContext.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithOperation wraps err with operation context. It returns nil for a nil err.
func WrapWithOperation(err error, operation string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Cause: err}
}

// WrapWithContext wraps err with operation and resource context. It returns
// nil for a nil err.
func WrapWithContext(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

// Error implements the error interface.
func (e *ActionableError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the cause for errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the error with its suggestions. When verbose is true the
// full cause chain is appended.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, s := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(s)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}
	return msg.String()
}

// HasSuggestions reports whether the error carries any suggestion.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// IssuePage returns the issue catalog entry this error points at, if any.
func (e *ActionableError) IssuePage() *Issue {
	if e.Issue == 0 {
		return nil
	}
	return Get(e.Issue)
}

func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends one suggestion. It can be called repeatedly.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.suggestions = append(c.suggestions, sugs...)
	return c
}

// WithIssue links the error to an issue catalog page.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.issue = id
	return c
}

func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build creates the ActionableError. It returns nil when no operation is set.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Issue:       c.issue,
		Cause:       c.cause,
	}
}

// BuildError is Build typed as error, for return statements. A missing
// operation yields a nil error, not a typed nil.
func (c *ErrorContext) BuildError() error {
	ae := c.Build()
	if ae == nil {
		return nil
	}
	return ae
}
