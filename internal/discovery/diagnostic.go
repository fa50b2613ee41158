// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
)

const (
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal discovery error diagnostic.
	SeverityError Severity = "error"
)

const (
	// CodeSourceUnavailable reports a source directory that could not be listed.
	CodeSourceUnavailable DiagnosticCode = "source_unavailable"
	// CodePluginDirCreateFailed reports a missing plugin directory that could not be created.
	CodePluginDirCreateFailed DiagnosticCode = "plugin_dir_create_failed"
	// CodeDesktopEntrySkipped reports a desktop file excluded from the catalog.
	CodeDesktopEntrySkipped DiagnosticCode = "desktop_entry_skipped"
	// CodePluginSkipped reports a plugin file excluded from the catalog.
	CodePluginSkipped DiagnosticCode = "plugin_skipped"
	// CodeBuiltinSkipped reports a registered builtin that does not follow the naming convention.
	CodeBuiltinSkipped DiagnosticCode = "builtin_skipped"
)

var (
	// ErrMalformedDesktopEntry is returned for a desktop file without a usable Name key.
	ErrMalformedDesktopEntry = errors.New("malformed desktop entry")
	// ErrMalformedPluginSource is returned for a plugin file whose first line is
	// not a description literal.
	ErrMalformedPluginSource = errors.New("malformed plugin source")
	// ErrInvalidSeverity is the sentinel error wrapped by InvalidSeverityError.
	ErrInvalidSeverity = errors.New("invalid severity")
	// ErrInvalidDiagnosticCode is the sentinel error wrapped by InvalidDiagnosticCodeError.
	ErrInvalidDiagnosticCode = errors.New("invalid diagnostic code")
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// DiagnosticCode is a machine-readable diagnostic identifier.
	DiagnosticCode string

	// Diagnostic represents a structured discovery diagnostic that is returned
	// to callers (rather than written to stderr) for consistent rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is a machine-readable identifier.
		Code DiagnosticCode
		// Message is the human-readable description.
		Message string
		// Path is the file path associated with this diagnostic (optional).
		Path string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}

	// Report summarizes a rebuild.
	Report struct {
		Applications int
		Actions      int
		Pipes        int
		Diagnostics  []Diagnostic
	}

	// MalformedSourceError is returned when one source file cannot be indexed.
	MalformedSourceError struct {
		Path   string
		Kind   catalog.Kind
		Reason string
		Err    error
	}

	// InvalidSeverityError is returned when a Severity value is not recognized.
	InvalidSeverityError struct {
		Value Severity
	}

	// InvalidDiagnosticCodeError is returned when a DiagnosticCode value is not recognized.
	InvalidDiagnosticCodeError struct {
		Value DiagnosticCode
	}
)

// Total returns the number of indexed entries.
func (r Report) Total() int { return r.Applications + r.Actions + r.Pipes }

// HasErrors reports whether any diagnostic has error severity.
func (r Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (r *Report) count(k catalog.Kind) {
	switch k {
	case catalog.KindApplication:
		r.Applications++
	case catalog.KindAction:
		r.Actions++
	case catalog.KindPipe:
		r.Pipes++
	}
}

// Error implements the error interface for MalformedSourceError.
func (e *MalformedSourceError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns ErrMalformedDesktopEntry for applications and
// ErrMalformedPluginSource otherwise, plus the underlying cause.
func (e *MalformedSourceError) Unwrap() []error {
	sentinel := ErrMalformedPluginSource
	if e.Kind == catalog.KindApplication {
		sentinel = ErrMalformedDesktopEntry
	}
	if e.Err != nil {
		return []error{sentinel, e.Err}
	}
	return []error{sentinel}
}

// String returns the string representation of the Severity.
func (s Severity) String() string { return string(s) }

// IsValid returns whether the Severity is one of the defined severities,
// and a list of validation errors if it is not.
func (s Severity) IsValid() (bool, []error) {
	switch s {
	case SeverityWarning, SeverityError:
		return true, nil
	default:
		return false, []error{&InvalidSeverityError{Value: s}}
	}
}

// String returns the string representation of the DiagnosticCode.
func (c DiagnosticCode) String() string { return string(c) }

// IsValid returns whether the DiagnosticCode is one of the defined codes,
// and a list of validation errors if it is not.
func (c DiagnosticCode) IsValid() (bool, []error) {
	switch c {
	case CodeSourceUnavailable, CodePluginDirCreateFailed, CodeDesktopEntrySkipped,
		CodePluginSkipped, CodeBuiltinSkipped:
		return true, nil
	default:
		return false, []error{&InvalidDiagnosticCodeError{Value: c}}
	}
}

// Error implements the error interface for InvalidSeverityError.
func (e *InvalidSeverityError) Error() string {
	return fmt.Sprintf("invalid severity %q (valid: warning, error)", e.Value)
}

// Unwrap returns ErrInvalidSeverity for errors.Is() compatibility.
func (e *InvalidSeverityError) Unwrap() error { return ErrInvalidSeverity }

// Error implements the error interface for InvalidDiagnosticCodeError.
func (e *InvalidDiagnosticCodeError) Error() string {
	return fmt.Sprintf("invalid diagnostic code %q", e.Value)
}

// Unwrap returns ErrInvalidDiagnosticCode for errors.Is() compatibility.
func (e *InvalidDiagnosticCodeError) Unwrap() error { return ErrInvalidDiagnosticCode }
