// Package config loads the per-project gqlcheck configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const ConfigFile = "gqlcheck.toml"

// Default paths follow the Gradle/Spring source-set layout the tool was
// built for.
const (
	DefaultSchemaPath = "src/main/resources/graphql"
	DefaultSourcePath = "src/main/kotlin"
	DefaultRootType   = "Query"
)

// Config holds the gqlcheck configuration.
type Config struct {
	SchemaPath string `toml:"schema_path"`
	SourcePath string `toml:"source_path"`
	RootType   string `toml:"root_type"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		SchemaPath: DefaultSchemaPath,
		SourcePath: DefaultSourcePath,
		RootType:   DefaultRootType,
	}
}

// Load reads configuration from the given project directory.
// Returns default config if the file doesn't exist.
func Load(projectDir string) (*Config, error) {
	path := filepath.Join(projectDir, ConfigFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing values
	if cfg.SchemaPath == "" {
		cfg.SchemaPath = DefaultSchemaPath
	}
	if cfg.SourcePath == "" {
		cfg.SourcePath = DefaultSourcePath
	}
	if cfg.RootType == "" {
		cfg.RootType = DefaultRootType
	}

	return &cfg, nil
}
