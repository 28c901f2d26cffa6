// Package config loads the auragold configuration.
//
// Values come from, in increasing priority: defaults, an optional YAML file,
// and environment variables. Command line flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/auragold"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration file.
const (
	EnvConfigFile  = "AURAGOLD_CONFIG"
	EnvStoreDriver = "AURAGOLD_STORE_DRIVER"
	EnvStorePath   = "AURAGOLD_STORE_PATH"
	EnvCurrency    = "AURAGOLD_CURRENCY"
	EnvModel       = "AURAGOLD_MODEL"
	EnvLogFormat   = "AURAGOLD_LOG_FORMAT"
)

// DefaultModel is the text generation model used for summaries.
const DefaultModel = "gemini-2.5-flash"

// Config holds all configuration for the application.
type Config struct {
	Store    StoreConfig `yaml:"store"`
	Currency string      `yaml:"currency"`
	Model    string      `yaml:"model"`
	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format"`
}

// StoreConfig selects where the state is persisted.
type StoreConfig struct {
	Driver string `yaml:"driver"` // "file" or "sqlite"
	Path   string `yaml:"path"`
}

// Dir returns the default directory of auragold files, ~/.auragold.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".auragold"
	}
	return filepath.Join(home, ".auragold")
}

// DefaultFile returns the default configuration file path.
func DefaultFile() string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Store:     StoreConfig{Driver: "file", Path: filepath.Join(Dir(), "state.json")},
		Currency:  auragold.DefaultCurrency,
		Model:     DefaultModel,
		LogFormat: "text",
	}
}

// Load loads the configuration from the YAML file at path, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	for env, field := range map[string]*string{
		EnvStoreDriver: &c.Store.Driver,
		EnvStorePath:   &c.Store.Path,
		EnvCurrency:    &c.Currency,
		EnvModel:       &c.Model,
		EnvLogFormat:   &c.LogFormat,
	} {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "file", "sqlite":
	default:
		return fmt.Errorf("unknown store driver %q, expected file or sqlite", c.Store.Driver)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store path is required")
	}
	if c.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q, expected text or json", c.LogFormat)
	}
	return nil
}

// Save writes the configuration as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
