// Package config defines the workflow runner's configuration: browser
// launch settings, URL policy, logging verbosity, and artifact output.
// All fields have defaults, so a config file is only needed to override
// the stock behavior.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the configuration for a workflow run
type Config struct {
	// Browser launch settings
	Browser BrowserConfig `yaml:"browser" json:"browser"`

	// URL access policy
	Policy PolicyConfig `yaml:"policy" json:"policy"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Run summary artifact configuration
	Artifact ArtifactConfig `yaml:"artifact" json:"artifact"`
}

// BrowserConfig defines how the browser session is launched
type BrowserConfig struct {
	Headless       bool     `yaml:"headless" json:"headless"`
	ViewportWidth  int      `yaml:"viewport_width" json:"viewport_width"`
	ViewportHeight int      `yaml:"viewport_height" json:"viewport_height"`
	UserAgent      string   `yaml:"user_agent" json:"user_agent"`
	Args           []string `yaml:"args" json:"args"`

	// Timeout is the default per-operation timeout in milliseconds
	Timeout float64 `yaml:"timeout" json:"timeout"`

	// Install downloads the driver and browser before the run starts
	Install bool `yaml:"install" json:"install"`
}

// PolicyConfig defines URL access restrictions for navigation
type PolicyConfig struct {
	AllowedURLPatterns []string `yaml:"allowed_url_patterns" json:"allowed_url_patterns"`
	DeniedURLPatterns  []string `yaml:"denied_url_patterns" json:"denied_url_patterns"`
}

// LoggingConfig defines logging configuration
type LoggingConfig struct {
	// Verbosity controls progress output: quiet, normal, verbose, debug
	Verbosity string `yaml:"verbosity" json:"verbosity"`
}

// ArtifactConfig defines run summary artifact generation
type ArtifactConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Browser.ViewportWidth <= 0 {
		return fmt.Errorf("viewport_width must be positive")
	}

	if c.Browser.ViewportHeight <= 0 {
		return fmt.Errorf("viewport_height must be positive")
	}

	if c.Browser.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}

	// Set default verbosity if not specified
	if c.Logging.Verbosity == "" {
		c.Logging.Verbosity = "normal"
	}

	// Validate log level
	validLevels := map[string]bool{
		"quiet":   true,
		"normal":  true,
		"verbose": true,
		"debug":   true,
	}
	if !validLevels[c.Logging.Verbosity] {
		return fmt.Errorf("invalid logging verbosity: %s (must be 'quiet', 'normal', 'verbose', or 'debug')", c.Logging.Verbosity)
	}

	if c.Artifact.Enabled && c.Artifact.Path == "" {
		return fmt.Errorf("artifact path is required when artifact generation is enabled")
	}

	return nil
}

// DefaultConfig returns the stock configuration: a headless Chromium
// session with a fixed desktop viewport and user agent.
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:       true,
			ViewportWidth:  1280,
			ViewportHeight: 720,
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			Args:           []string{"--no-sandbox", "--disable-dev-shm-usage"},
			Timeout:        30000,
		},
		Logging: LoggingConfig{
			Verbosity: "normal",
		},
	}
}

// Load reads a YAML config file and merges it over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
