// SPDX-License-Identifier: MPL-2.0

// Package tui holds the terminal front ends of the pipeline interpreter.
//
// LineFrontEnd answers prompts with huh fields, falling back to plain numbered
// lines when stdin is not a terminal. RunInteractive drives a Bubble Tea view
// that resolves candidates as the user types and evaluates a line on Enter.
package tui
