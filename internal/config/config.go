// Package config reads and writes the project configuration stored at
// .mt/config.yaml under the repository root. Every knob has a default,
// so a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dir is the config directory name under the repository root.
const Dir = ".mt"

// FileName is the config file name inside Dir.
const FileName = "config.yaml"

// Config is the project configuration.
type Config struct {
	Version int `yaml:"version"`
	// MaxClaimedPerOwner caps the claimed tickets one owner may hold.
	MaxClaimedPerOwner int `yaml:"max_claimed_per_owner"`
	// EnforceDoneDeps makes validation require that in-flight tickets
	// have all dependencies done.
	EnforceDoneDeps bool `yaml:"enforce_done_deps"`
	// DefaultOwner is used by claim and pick when no owner is given.
	DefaultOwner string `yaml:"default_owner,omitempty"`
}

// Default returns the starter configuration.
func Default() *Config {
	return &Config{
		Version:            1,
		MaxClaimedPerOwner: 2,
	}
}

// Path returns the config file path for a repository root.
func Path(root string) string {
	return filepath.Join(root, Dir, FileName)
}

// Load reads the config for a repository root. A missing file yields the
// defaults; a present but unreadable or invalid file is an error.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(Path(root))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config under the repository root, creating .mt/ if
// needed.
func Save(root string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Join(root, Dir), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(Path(root), data, 0644)
}

func (c *Config) validate() error {
	if c.MaxClaimedPerOwner < 1 {
		return fmt.Errorf("max_claimed_per_owner must be at least 1, got %d", c.MaxClaimedPerOwner)
	}
	return nil
}
