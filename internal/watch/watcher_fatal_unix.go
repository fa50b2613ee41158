// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import (
	"errors"
	"syscall"
)

// isFatalFsnotifyError reports inotify resource exhaustion: the watch limit
// (ENOSPC) or the process or system file descriptor limit (EMFILE, ENFILE).
// The watcher cannot recover from either.
func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}
