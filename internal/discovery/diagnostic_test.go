// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"testing"
)

func TestSeverity_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		severity Severity
		want     bool
		wantErr  bool
	}{
		{SeverityWarning, true, false},
		{SeverityError, true, false},
		{"", false, true},
		{"invalid", false, true},
		{"WARNING", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.severity.IsValid()
			if isValid != tt.want {
				t.Errorf("Severity(%q).IsValid() = %v, want %v", tt.severity, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("Severity(%q).IsValid() returned no errors, want error", tt.severity)
				}
				if !errors.Is(errs[0], ErrInvalidSeverity) {
					t.Errorf("error should wrap ErrInvalidSeverity, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("Severity(%q).IsValid() returned unexpected errors: %v", tt.severity, errs)
			}
		})
	}
}

func TestDiagnosticCode_IsValid(t *testing.T) {
	t.Parallel()

	validCodes := []DiagnosticCode{
		CodeSourceUnavailable, CodePluginDirCreateFailed, CodeDesktopEntrySkipped,
		CodePluginSkipped, CodeBuiltinSkipped,
	}
	for _, code := range validCodes {
		if ok, errs := code.IsValid(); !ok || len(errs) != 0 {
			t.Errorf("DiagnosticCode(%q).IsValid() = %v, %v", code, ok, errs)
		}
	}

	ok, errs := DiagnosticCode("made_up").IsValid()
	if ok || len(errs) == 0 || !errors.Is(errs[0], ErrInvalidDiagnosticCode) {
		t.Errorf("DiagnosticCode(made_up).IsValid() = %v, %v", ok, errs)
	}
}

func TestMalformedSourceError(t *testing.T) {
	t.Parallel()
	cause := errors.New("cause")
	err := &MalformedSourceError{Path: "/x.desktop", Reason: "no Name key", Kind: 1, Err: cause}
	if !errors.Is(err, ErrMalformedDesktopEntry) || !errors.Is(err, cause) {
		t.Errorf("errors.Is failed for %v", err)
	}
	if errors.Is(err, ErrMalformedPluginSource) {
		t.Error("desktop error should not match ErrMalformedPluginSource")
	}
	if got, want := err.Error(), "/x.desktop: no Name key: cause"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
