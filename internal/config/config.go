package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "sajumatch.yaml"

// Config holds all sajumatch configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Room store and capacity
	Rooms RoomsConfig `yaml:"rooms"`

	// Relationship graph builder
	Graph GraphConfig `yaml:"graph"`

	// CLI output
	Output OutputConfig `yaml:"output"`
}

// RoomsConfig configures the room store.
type RoomsConfig struct {
	// Backend is "file" (one YAML file per room under Dir) or "sqlite"
	// (rooms.db under Dir)
	Backend string `yaml:"backend"`

	// Directory holding the room data
	Dir string `yaml:"dir"`

	// Participant cap per room (0 = unlimited)
	MaxParticipants int `yaml:"max_participants"`
}

// GraphConfig configures the relationship graph builder.
type GraphConfig struct {
	Workers int    `yaml:"workers"` // concurrent pair scorers
	Timeout string `yaml:"timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "sajumatch",
		Version: "0.3.0",

		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},

		Rooms: RoomsConfig{
			Backend:         BackendFile,
			Dir:             filepath.Join(".sajumatch", "rooms"),
			MaxParticipants: 20,
		},

		Graph: GraphConfig{
			Workers: 4,
			Timeout: "10s",
		},

		Output: DefaultOutputConfig(),
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
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
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("SAJUMATCH_ROOMS_DIR"); dir != "" {
		c.Rooms.Dir = dir
	}
	if level := os.Getenv("SAJUMATCH_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("SAJUMATCH_OUTPUT"); format != "" {
		c.Output.Format = format
	}
	if os.Getenv("NO_COLOR") != "" {
		c.Output.Color = false
	}
}

// GetGraphTimeout returns the graph build timeout as a duration.
func (c *Config) GetGraphTimeout() time.Duration {
	d, err := time.ParseDuration(c.Graph.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.ValidateLimits(); err != nil {
		return err
	}
	return c.Output.Validate()
}
