// Package config provides configuration loading and management.
package config

import (
	"github.com/coral-mesh/dtypes/internal/constants"
)

// SchemaVersion is the configuration schema version.
const SchemaVersion = "1"

// Config represents ~/.dtypes/config.yaml.
type Config struct {
	Version  string         `yaml:"version" json:"version" validate:"required"`
	Log      LogConfig      `yaml:"log" json:"log"`
	Target   TargetConfig   `yaml:"target" json:"target"`
	Resolver ResolverConfig `yaml:"resolver" json:"resolver"`
	Catalog  CatalogConfig  `yaml:"catalog" json:"catalog"`
	Output   OutputConfig   `yaml:"output" json:"output"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level" json:"level" env:"DTYPES_LOG_LEVEL" validate:"oneof=trace debug info warn error" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Pretty bool   `yaml:"pretty" json:"pretty" env:"DTYPES_LOG_PRETTY"`
}

// TargetConfig selects the target the type catalog is evaluated for.
type TargetConfig struct {
	// Triple overrides the target detected from the binary, e.g.
	// "aarch64-unknown-linux-gnu". Empty means detect.
	Triple string `yaml:"triple,omitempty" json:"triple,omitempty" env:"DTYPES_TARGET"`
}

// ResolverConfig tunes type resolution.
type ResolverConfig struct {
	MaxDepth int `yaml:"max_depth" json:"max_depth" env:"DTYPES_MAX_DEPTH" validate:"gte=1" jsonschema:"minimum=1"`
}

// CatalogConfig locates the DuckDB type catalog.
type CatalogConfig struct {
	Path string `yaml:"path" json:"path" env:"DTYPES_CATALOG_PATH" validate:"required"`
}

// OutputConfig contains CLI output settings.
type OutputConfig struct {
	Format string `yaml:"format" json:"format" env:"DTYPES_FORMAT" validate:"oneof=table json csv" jsonschema:"enum=table,enum=json,enum=csv"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: SchemaVersion,
		Log: LogConfig{
			Level:  constants.DefaultLogLevel,
			Pretty: true,
		},
		Resolver: ResolverConfig{
			MaxDepth: constants.DefaultMaxDepth,
		},
		Catalog: CatalogConfig{
			Path: constants.DefaultCatalogPath,
		},
		Output: OutputConfig{
			Format: constants.DefaultOutputFormat,
		},
	}
}
