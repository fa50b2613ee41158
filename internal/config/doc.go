// SPDX-License-Identifier: MPL-2.0

// Package config handles rapidcopper configuration using Viper with CUE as the
// file format.
//
// Configuration is loaded from config.cue in the rapidcopper configuration
// directory ($XDG_CONFIG_HOME/rapidcopper on Linux). The file is validated
// against an embedded CUE schema (config_schema.cue) and merged over
// DefaultConfig; RAPIDCOPPER_* environment variables override both.
//
// ResolvePaths turns a Config into Paths, the explicit locations and options
// the launcher consumes, so no other package reads the environment.
package config
