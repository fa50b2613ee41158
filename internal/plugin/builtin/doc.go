// SPDX-License-Identifier: MPL-2.0

// Package builtin provides the plugins compiled into rapidcopper.
//
// Importing the package registers every plugin in plugin.DefaultRegistry.
// Module identifiers follow the action_<id> / pipe_<id> convention, and the
// registered doc string becomes the catalog description.
//
// # Actions
//   - greet: says hello to its arguments
//   - echo: joins its arguments with spaces
//
// # Pipes
//   - upper, lower: change letter case
//   - trim: strips surrounding whitespace
//   - reverse: reverses the characters of the input
//   - sort: sorts the lines of the input
//   - wc: counts lines, words and characters
//   - base64: encodes the input as standard base64
package builtin
