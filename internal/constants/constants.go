// Package constants defines shared configuration constants.
package constants

var (
	ConfigFile = "config.yaml"

	DefaultDir = ".dtypes"

	// DefaultCatalogPath is relative to the user's home directory.
	DefaultCatalogPath = DefaultDir + "/" + "catalog.duckdb"

	// ConfigDirEnv overrides the directory holding DefaultDir.
	ConfigDirEnv = "DTYPES_CONFIG"
)

const (
	// DefaultMaxDepth bounds nested type resolution calls.
	DefaultMaxDepth = 1024

	DefaultLogLevel = "warn"

	DefaultOutputFormat = "table"
)
