// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
	LoadWithSource(ctx context.Context, opts LoadOptions) (*Config, string, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithSource reads configuration and reports the file it came from.
func (p *fileProvider) LoadWithSource(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	return loadWithOptions(ctx, opts)
}

// LoadWithSource is Load that also reports the file the configuration was
// read from, or "" when only defaults and environment overrides apply.
func LoadWithSource(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	return loadWithOptions(ctx, opts)
}
