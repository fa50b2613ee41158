// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for rapidcopper.
//
// Every command receives the App composition root, which loads configuration,
// opens the launcher and owns the output streams. Handlers never write to
// os.Stdout directly so that tests can capture their output.
package cmd
