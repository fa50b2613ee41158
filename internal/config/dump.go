// SPDX-License-Identifier: MPL-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

const (
	// FormatCUE renders the config as a config.cue file.
	FormatCUE Format = "cue"
	// FormatTOML renders the config as TOML.
	FormatTOML Format = "toml"
	// FormatJSON renders the config as indented JSON.
	FormatJSON Format = "json"
)

// ErrInvalidFormat is returned when a Format value is not recognized.
var ErrInvalidFormat = errors.New("invalid dump format")

// Format selects the rendering of Dump.
type Format string

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// Dump renders cfg in the given format.
func Dump(cfg *Config, f Format) ([]byte, error) {
	switch f {
	case FormatCUE, "":
		return []byte(GenerateCUE(cfg)), nil
	case FormatTOML:
		return toml.Marshal(cfg)
	case FormatJSON:
		b, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	default:
		return nil, fmt.Errorf("%w %q (valid: cue, toml, json)", ErrInvalidFormat, f)
	}
}
