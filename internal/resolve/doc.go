// SPDX-License-Identifier: MPL-2.0

// Package resolve turns a partially typed token into a short ranked list of
// catalog entries.
//
// The catalog filters rows with a match policy, then the resolver ranks the
// survivors by Levenshtein distance between the token and the entry name and
// keeps the best MaxCandidates. Ties keep catalog order.
package resolve
