// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride lets tests bypass os.UserHomeDir, which does not reliably
// respect HOME on every platform.
var configDirOverride string

// Reset clears test overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride makes ConfigDir return dir.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
