package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the tool configuration
type Config struct {
	Target    string         `yaml:"target"`               // nginx, apache, caddy
	Manifest  string         `yaml:"manifest,omitempty"`   // default manifest path
	CertEmail string         `yaml:"cert_email,omitempty"` // email for certbot registration
	SSL       bool           `yaml:"ssl"`                  // render TLS listeners by default
	Paths     *PathOverrides `yaml:"paths,omitempty"`
}

// PathOverrides replaces platform-detected directories when set.
type PathOverrides struct {
	Available string `yaml:"available,omitempty"`
	Enabled   string `yaml:"enabled,omitempty"`
	Units     string `yaml:"units,omitempty"`
}

// configDir is the default config directory
const configDir = ".config/deploygen"
const configFile = "config.yaml"

// defaultManifest is the manifest file looked up in the working directory
// when neither the config nor the command line names one.
const defaultManifest = "deploy.yaml"

// New creates a new Config with default values
func New() *Config {
	return &Config{
		Target:   "nginx",
		Manifest: defaultManifest,
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the config file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	// If config doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Target == "" {
		cfg.Target = "nginx"
	}
	if cfg.Manifest == "" {
		cfg.Manifest = defaultManifest
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
