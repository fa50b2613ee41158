// SPDX-License-Identifier: MPL-2.0

// Package catalogtest provides test helpers for building catalog entries and
// an in-memory catalog.Store.
//
// This package is separate from testutil so that testutil stays free of
// project imports and can be used by every package's tests.
//
// # Usage
//
//	import "github.com/rapidcopper/rapidcopper/internal/testutil/catalogtest"
//
//	store := catalogtest.NewStore(
//	    catalogtest.NewAction("greet", catalogtest.AsBuiltin()),
//	    catalogtest.NewPipe("upper", catalogtest.AsBuiltin()),
//	)
package catalogtest
