package config

import "fmt"

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// OutputConfig holds CLI output configuration.
type OutputConfig struct {
	// Format is text (styled tables) or json (one document per command)
	Format string `json:"format" yaml:"format"`

	// Color enables tier colours in text output
	Color bool `json:"color" yaml:"color"`
}

// DefaultOutputConfig returns sensible output defaults.
func DefaultOutputConfig() OutputConfig {
	return OutputConfig{
		Format: OutputText,
		Color:  true,
	}
}

// Validate checks the output format.
func (c OutputConfig) Validate() error {
	switch c.Format {
	case OutputText, OutputJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format %q (valid: %s, %s)", c.Format, OutputText, OutputJSON)
	}
}

// IsJSON reports whether commands should print JSON.
func (c OutputConfig) IsJSON() bool {
	return c.Format == OutputJSON
}
