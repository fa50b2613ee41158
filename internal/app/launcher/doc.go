// SPDX-License-Identifier: MPL-2.0

// Package launcher is the composition root of the rapidcopper core. It wires
// the catalog store, the catalog builder, the resolver, the plugin executor
// and the pipeline interpreter, and exposes the two core operations: Rebuild
// and Evaluate.
package launcher
