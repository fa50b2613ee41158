// SPDX-License-Identifier: MPL-2.0

// Package catalog persists the launcher catalog: the three record sets of
// applications, actions and pipes that the resolver queries.
//
// A catalog is written one generation at a time. Begin opens a fresh
// generation in a temporary file next to the catalog path, Insert fills it,
// and Commit atomically renames it over the previous catalog. Readers never
// observe a half-populated generation and a failed rebuild leaves the previous
// catalog in place.
//
// Two backends are provided: a SQLite database (the default) and a bbolt file
// with one bucket per record set.
package catalog
