package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level" json:"level,omitempty"`           // debug, info, warn, error
	Format     string          `yaml:"format" json:"format,omitempty"`         // json, text
	File       string          `yaml:"file" json:"file,omitempty"`             // optional extra sink
	Categories map[string]bool `yaml:"categories" json:"categories,omitempty"` // Per-category toggles
}

// Validate checks level and format.
func (c *LoggingConfig) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid logging level %q: %w", c.Level, err)
	}
	switch c.Format {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("invalid logging format %q (valid: json, text)", c.Format)
	}
}

// ZapConfig builds the zap configuration. verbose forces debug level.
// Logs go to stderr so command output on stdout stays clean.
func (c *LoggingConfig) ZapConfig(verbose bool) zap.Config {
	cfg := zap.NewProductionConfig()
	if c.Format == "text" {
		cfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if c.File != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, c.File)
	}
	return cfg
}
