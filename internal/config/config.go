// Package config provides configuration management for loctag.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/loctag/pkg/tsv"
)

// Default language labels used in reports.
const (
	DefaultPrimaryLabel   = "RU"
	DefaultReferenceLabel = "EN"
)

// Config holds the loctag configuration.
type Config struct {
	Primary        string `yaml:"primary"`
	Reference      string `yaml:"reference,omitempty"`
	PrimaryLabel   string `yaml:"primary_label,omitempty"`
	ReferenceLabel string `yaml:"reference_label,omitempty"`
	Header         string `yaml:"header,omitempty"`
	OutputFormat   string `yaml:"output_format,omitempty"`
}

// Validate checks that all required fields are present and valid.
func (c *Config) Validate() error {
	if c.Primary == "" {
		return errors.New("primary file is required")
	}
	if c.Reference != "" && c.Reference == c.Primary {
		return errors.New("reference file must differ from primary file")
	}
	return nil
}

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.PrimaryLabel == "" {
		c.PrimaryLabel = DefaultPrimaryLabel
	}
	if c.ReferenceLabel == "" {
		c.ReferenceLabel = DefaultReferenceLabel
	}
	if c.Header == "" {
		c.Header = tsv.DefaultHeader
	}
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("LOCTAG_PRIMARY"); v != "" {
		c.Primary = v
	}
	if v := os.Getenv("LOCTAG_REFERENCE"); v != "" {
		c.Reference = v
	}
	if v := os.Getenv("LOCTAG_PRIMARY_LABEL"); v != "" {
		c.PrimaryLabel = v
	}
	if v := os.Getenv("LOCTAG_REFERENCE_LABEL"); v != "" {
		c.ReferenceLabel = v
	}
}

// EnvVars lists the environment variables LoadFromEnv reads.
var EnvVars = []string{
	"LOCTAG_PRIMARY",
	"LOCTAG_REFERENCE",
	"LOCTAG_PRIMARY_LABEL",
	"LOCTAG_REFERENCE_LABEL",
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "loctag", "config.yml")
	}

	// Fall back to ~/.config/loctag/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".loctag", "config.yml")
	}

	return filepath.Join(home, ".config", "loctag", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file, overrides it with environment
// variables and fills defaults. A missing file yields an empty config; a
// file that exists but cannot be parsed is an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}

// ResolvePath returns path, or the default config path when path is empty.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	return DefaultConfigPath()
}

// CheckFile verifies that path is a readable localization file whose first
// line starts with header. An empty header means tsv.DefaultHeader.
func CheckFile(path, header string) (*tsv.File, error) {
	if header == "" {
		header = tsv.DefaultHeader
	}
	f, err := tsv.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(f.Header(), header) {
		return nil, fmt.Errorf("unexpected header in %s: expected %q, got %q", path, header, f.Header())
	}
	return f, nil
}
