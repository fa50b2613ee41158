// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors for the rapidcopper CLI.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. Well-known failures link to a Markdown issue page that
// the CLI renders with glamour.
package issue
