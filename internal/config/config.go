package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds optional settings loaded from ~/.checkgpu/config.yaml.
type Config struct {
	LogFile string `yaml:"log_file"`
	Plane   string `yaml:"plane"`
}

// DefaultPath returns the default config file path: ~/.checkgpu/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".checkgpu", "config.yaml")
}

// Load reads a YAML config file from path. If the file does not exist,
// it returns an empty Config and no error. An empty or all-comment file
// also returns an empty Config with no error.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge returns cfg with non-empty overrides applied.
func (c Config) Merge(override Config) Config {
	if override.LogFile != "" {
		c.LogFile = override.LogFile
	}
	if override.Plane != "" {
		c.Plane = override.Plane
	}
	return c
}
