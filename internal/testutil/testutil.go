// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

// MustMkdirAll creates a directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustWriteFiles writes every path -> content pair below root, creating
// parent directories as needed. Paths are slash separated and relative to root.
func MustWriteFiles(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		MustMkdirAll(t, filepath.Dir(path))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
}

// MustClose closes the given io.Closer.
// The test fails immediately if the close fails.
func MustClose(t testing.TB, c io.Closer) {
	t.Helper()
	if err := c.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}
}

// DeferClose returns a cleanup function that closes the given io.Closer,
// logging any errors. Pass it to t.Cleanup or defer it.
func DeferClose(t testing.TB, c io.Closer) func() {
	t.Helper()
	return func() {
		t.Helper()
		if err := c.Close(); err != nil {
			t.Logf("warning: close returned error: %v", err)
		}
	}
}
