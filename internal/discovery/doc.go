// SPDX-License-Identifier: MPL-2.0

// Package discovery builds the catalog from the filesystem and the builtin
// plugin registry.
//
// A rebuild scans three independent sources:
//   - desktop entry files in the application directories
//   - action_<id> / pipe_<id> shell plugins in the plugin directory
//   - builtin plugins registered in a plugin.Registry
//
// A source that cannot be enumerated, and any single malformed file, becomes a
// Diagnostic in the returned Report; the rest of the rebuild continues. Only
// store failures abort a rebuild, in which case the previous catalog stays in
// place.
//
// File organization:
//   - builder.go: Builder, Options and the rebuild loop
//   - sources.go: the three source scanners
//   - diagnostic.go: Report, Diagnostic and malformed-source errors
package discovery
