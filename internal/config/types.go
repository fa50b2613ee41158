// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// CatalogBackendSQLite stores the catalog in a SQLite database.
	// Defined locally to avoid coupling config to internal/catalog.
	CatalogBackendSQLite CatalogBackend = "sqlite"
	// CatalogBackendBolt stores the catalog in a bbolt file.
	CatalogBackendBolt CatalogBackend = "bolt"

	// MatchPolicySubstring keeps names containing the token.
	MatchPolicySubstring MatchPolicy = "substring"
	// MatchPolicySubsequence keeps names containing the token's runes in order.
	MatchPolicySubsequence MatchPolicy = "subsequence"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidCatalogBackend is returned when a CatalogBackend value is not recognized.
	ErrInvalidCatalogBackend = errors.New("invalid catalog backend")
	// ErrInvalidMatchPolicy is returned when a MatchPolicy value is not recognized.
	ErrInvalidMatchPolicy = errors.New("invalid match policy")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidExtension is returned when a file extension lacks its leading dot.
	ErrInvalidExtension = errors.New("invalid file extension")
	// ErrInvalidLauncher is returned when the launcher command is empty.
	ErrInvalidLauncher = errors.New("invalid launcher command")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// CatalogBackend names the catalog storage engine.
	CatalogBackend string

	// InvalidCatalogBackendError is returned when a CatalogBackend value is not recognized.
	InvalidCatalogBackendError struct {
		Value CatalogBackend
	}

	// MatchPolicy selects how catalog names are matched against a token.
	MatchPolicy string

	// InvalidMatchPolicyError is returned when a MatchPolicy value is not recognized.
	InvalidMatchPolicyError struct {
		Value MatchPolicy
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// Extension is a file name suffix such as ".sh", dot included.
	Extension string

	// InvalidExtensionError is returned for an extension without a leading dot
	// or with nothing after it.
	InvalidExtensionError struct {
		Value Extension
	}

	// InvalidLauncherError is returned when the launcher argv is empty or has
	// an empty program name.
	InvalidLauncherError struct {
		Value []string
	}

	// InvalidConfigError collects every field error of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Catalog configures where and how the catalog is stored.
		Catalog CatalogConfig `json:"catalog" mapstructure:"catalog" toml:"catalog"`
		// Plugins configures external plugin discovery.
		Plugins PluginsConfig `json:"plugins" mapstructure:"plugins" toml:"plugins"`
		// Applications configures desktop entry discovery and launching.
		Applications ApplicationsConfig `json:"applications" mapstructure:"applications" toml:"applications"`
		// Resolver configures token matching.
		Resolver ResolverConfig `json:"resolver" mapstructure:"resolver" toml:"resolver"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// CatalogConfig configures the catalog store.
	CatalogConfig struct {
		Backend CatalogBackend `json:"backend" mapstructure:"backend" toml:"backend"`
		// Path is the catalog file. Empty means a file in the config directory.
		Path string `json:"path" mapstructure:"path" toml:"path"`
	}

	// PluginsConfig configures external plugin discovery.
	PluginsConfig struct {
		// Dir is the plugin directory. Empty means <config dir>/plugins.
		Dir        string      `json:"dir" mapstructure:"dir" toml:"dir"`
		Extensions []Extension `json:"extensions" mapstructure:"extensions" toml:"extensions"`
	}

	// ApplicationsConfig configures desktop entry discovery.
	ApplicationsConfig struct {
		// Dirs are scanned for desktop entries. Empty means the XDG defaults.
		Dirs       []string    `json:"dirs" mapstructure:"dirs" toml:"dirs"`
		Extensions []Extension `json:"extensions" mapstructure:"extensions" toml:"extensions"`
		// Launcher activates an application. The desktop file stem is appended.
		Launcher []string `json:"launcher" mapstructure:"launcher" toml:"launcher"`
	}

	// ResolverConfig configures token matching.
	ResolverConfig struct {
		MatchPolicy MatchPolicy `json:"match_policy" mapstructure:"match_policy" toml:"match_policy"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose enables debug logging and error chains
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
		// Accessible forces plain line prompts instead of interactive widgets.
		Accessible bool `json:"accessible" mapstructure:"accessible" toml:"accessible"`
	}
)

// String returns the string representation of the CatalogBackend.
func (b CatalogBackend) String() string { return string(b) }

// IsValid returns whether the CatalogBackend is one of the defined backends,
// and a list of validation errors if it is not.
func (b CatalogBackend) IsValid() (bool, []error) {
	switch b {
	case CatalogBackendSQLite, CatalogBackendBolt:
		return true, nil
	default:
		return false, []error{&InvalidCatalogBackendError{Value: b}}
	}
}

// Error implements the error interface for InvalidCatalogBackendError.
func (e *InvalidCatalogBackendError) Error() string {
	return fmt.Sprintf("invalid catalog backend %q (valid: sqlite, bolt)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidCatalogBackendError) Unwrap() error { return ErrInvalidCatalogBackend }

// String returns the string representation of the MatchPolicy.
func (p MatchPolicy) String() string { return string(p) }

// IsValid returns whether the MatchPolicy is one of the defined policies,
// and a list of validation errors if it is not.
func (p MatchPolicy) IsValid() (bool, []error) {
	switch p {
	case MatchPolicySubstring, MatchPolicySubsequence:
		return true, nil
	default:
		return false, []error{&InvalidMatchPolicyError{Value: p}}
	}
}

// Error implements the error interface for InvalidMatchPolicyError.
func (e *InvalidMatchPolicyError) Error() string {
	return fmt.Sprintf("invalid match policy %q (valid: substring, subsequence)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidMatchPolicyError) Unwrap() error { return ErrInvalidMatchPolicy }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the Extension.
func (x Extension) String() string { return string(x) }

// IsValid returns whether the Extension starts with a dot followed by at
// least one character and contains no path separator.
func (x Extension) IsValid() (bool, []error) {
	s := string(x)
	if len(s) < 2 || s[0] != '.' || strings.ContainsAny(s, `/\ `) {
		return false, []error{&InvalidExtensionError{Value: x}}
	}
	return true, nil
}

// Error implements the error interface for InvalidExtensionError.
func (e *InvalidExtensionError) Error() string {
	return fmt.Sprintf("invalid file extension %q: must look like \".sh\"", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidExtensionError) Unwrap() error { return ErrInvalidExtension }

// Error implements the error interface for InvalidLauncherError.
func (e *InvalidLauncherError) Error() string {
	return fmt.Sprintf("invalid launcher command %q: program name must be set", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLauncherError) Unwrap() error { return ErrInvalidLauncher }

// IsValid returns whether every field of the Config is valid. Field errors of
// all sections are collected into one InvalidConfigError.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	collect := func(valid bool, fieldErrs []error) {
		if !valid {
			errs = append(errs, fieldErrs...)
		}
	}

	collect(c.Catalog.Backend.IsValid())
	for _, x := range c.Plugins.Extensions {
		collect(x.IsValid())
	}
	for _, x := range c.Applications.Extensions {
		collect(x.IsValid())
	}
	if len(c.Applications.Launcher) == 0 || strings.TrimSpace(c.Applications.Launcher[0]) == "" {
		errs = append(errs, &InvalidLauncherError{Value: c.Applications.Launcher})
	}
	collect(c.Resolver.MatchPolicy.IsValid())
	collect(c.UI.ColorScheme.IsValid())

	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Backend: CatalogBackendSQLite,
			Path:    "", // <config dir>/index.sqlite
		},
		Plugins: PluginsConfig{
			Dir:        "", // <config dir>/plugins
			Extensions: []Extension{".sh"},
		},
		Applications: ApplicationsConfig{
			Dirs:       []string{}, // XDG data dirs
			Extensions: []Extension{".desktop"},
			Launcher:   []string{"gtk-launch"},
		},
		Resolver: ResolverConfig{
			MatchPolicy: MatchPolicySubstring,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
			Accessible:  false,
		},
	}
}
