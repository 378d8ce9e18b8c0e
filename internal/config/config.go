// Package config provides configuration management for cssmx.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config holds preprocessor presets loaded from a YAML file.
type Config struct {
	// Marker overrides the invocation marker. Must be a single rune.
	Marker string `yaml:"marker,omitempty"`

	// Denest controls whether nested selectors are flattened. Defaults to
	// true when unset.
	Denest *bool `yaml:"denest,omitempty"`

	// Variables seeds the expander's global variables.
	Variables map[string]string `yaml:"variables,omitempty"`
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Marker != "" && utf8.RuneCountInString(c.Marker) != 1 {
		return fmt.Errorf("marker must be a single character, got %q", c.Marker)
	}
	return nil
}

// DenestEnabled reports the denest setting, defaulting to true.
func (c *Config) DenestEnabled() bool {
	return c.Denest == nil || *c.Denest
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}

// DefaultPath returns the configuration path: $CSSMX_CONFIG when set,
// otherwise ~/.config/cssmx/config.yml.
func DefaultPath() string {
	if p := os.Getenv("CSSMX_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cssmx", "config.yml")
}
