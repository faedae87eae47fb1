// Package config manages application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration for spreadsheet processing runs.
type Config struct {
	// APIKey is the YouTube Data API v3 key used for metadata lookups.
	APIKey string `yaml:"api_key"`

	// InputDir is the directory source spreadsheets are resolved against (default: "inputs")
	InputDir string `yaml:"input_dir"`
	// OutputDir is the directory output artifacts are written to (default: "outputs")
	OutputDir string `yaml:"output_dir"`

	// LookupTimeout is the maximum time for a single metadata lookup
	LookupTimeout time.Duration `yaml:"lookup_timeout"`
	// LookupRPS caps metadata lookups per second
	LookupRPS float64 `yaml:"lookup_rps"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		InputDir:      "inputs",
		OutputDir:     "outputs",
		LookupTimeout: 30 * time.Second,
		LookupRPS:     2.5,
	}
}

// Load loads configuration from environment variables, config file, and applies defaults.
// Priority: env vars > config file > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Try to load from config file
	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Override with environment variables
	cfg.loadFromEnv()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from watchlog.yaml in current directory or home directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"watchlog.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "watchlog", "watchlog.yaml"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
// A bare API_KEY is honored alongside the prefixed form, matching the
// variable name the Google Cloud console credential pages suggest.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("WATCHLOG_API_KEY"); v != "" {
		c.APIKey = v
	} else if v := os.Getenv("API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("WATCHLOG_INPUT_DIR"); v != "" {
		c.InputDir = v
	}
	if v := os.Getenv("WATCHLOG_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("WATCHLOG_LOOKUP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.LookupTimeout = d
		}
	}
	if v := os.Getenv("WATCHLOG_LOOKUP_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.LookupRPS = f
		}
	}
}

// Validate checks that configuration values are valid and consistent.
// It returns an error if any configuration value is invalid.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("lookup_timeout must be positive")
	}
	if c.LookupRPS <= 0 {
		return fmt.Errorf("lookup_rps must be positive")
	}
	return nil
}

// ResolveInput joins a source file name with the input directory.
// Absolute paths are used as-is.
func (c *Config) ResolveInput(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.InputDir, name)
}
