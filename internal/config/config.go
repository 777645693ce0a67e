package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ImportConfig controls bulk imports.
type ImportConfig struct {
	// BatchSize is the number of records sent per insert call
	BatchSize int `yaml:"batch_size"`

	// Include limits directory imports to matching relative paths (doublestar globs)
	Include []string `yaml:"include,omitempty"`

	// Exclude skips matching relative paths; directories that match are not descended
	Exclude []string `yaml:"exclude,omitempty"`
}

// Config represents px configuration options
type Config struct {
	// DBPath is the SQLite database file
	DBPath string `yaml:"db_path"`

	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	Import ImportConfig `yaml:"import"`
}

// DefaultConfig returns a Config with the values `px init` writes.
func DefaultConfig() *Config {
	return &Config{
		DBPath:   "px/px.db",
		LogLevel: "info",
		Import: ImportConfig{
			BatchSize: 100,
			Exclude:   []string{"**/.git/**"},
		},
	}
}

// LoadConfig loads configuration from path, then applies PX_DB_PATH and
// PX_LOG_LEVEL from the environment or a .env file in the working directory.
// A missing config file yields defaults; a malformed one is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// .env is optional; variables already set in the environment win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if v := os.Getenv("PX_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside an import.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.Import.BatchSize <= 0 {
		return fmt.Errorf("import.batch_size must be positive, got %d", c.Import.BatchSize)
	}
	for _, pattern := range c.Import.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}
	for _, pattern := range c.Import.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	return nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
