// Package config loads optional CLI defaults for json2toon.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults applied before flag parsing. All fields are
// optional; zero values fall back to the built-in defaults.
type Config struct {
	// Indent is the default indent width for encoding.
	Indent int `yaml:"indent,omitempty"`

	// SortKeys renders object keys sorted by default.
	SortKeys bool `yaml:"sort_keys,omitempty"`

	// Stats prints the conversion report by default.
	Stats bool `yaml:"stats,omitempty"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{Indent: 2}
}

// Path returns the config file location, honoring JSON2TOON_CONFIG.
func Path() (string, error) {
	if p := os.Getenv("JSON2TOON_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "json2toon", "config.yaml"), nil
}

// Load reads the config file from the default location. A missing file is
// not an error; the built-in defaults are returned.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates a config file at a specific path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Indent <= 0 {
		cfg.Indent = 2
	}
	return cfg, nil
}
