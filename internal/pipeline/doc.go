// SPDX-License-Identifier: MPL-2.0

// Package pipeline evaluates command lines such as `greet world | upper`.
//
// The line is split on standalone `|` words into stages. The first word of the
// first stage is a lookup token and the remaining words are its arguments; every
// later stage is a single pipe token that receives the previous stage's value.
// Each token is resolved against the catalog, disambiguated through the
// FrontEnd when several candidates match, and executed.
//
// Every stage is resolved before anything runs, so a token without candidates
// fails the whole line without side effects.
package pipeline
