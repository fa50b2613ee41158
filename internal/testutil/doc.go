// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers cover fixture trees (MustWriteFiles, MustMkdirAll) and
// resource cleanup (MustClose, DeferClose). Catalog fixtures live in the
// catalogtest subpackage.
package testutil
