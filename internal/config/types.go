// Package config provides configuration types shared by the CLI and the
// engine packages, and locates the project configuration file.
package config

import "fmt"

// SynthesisConfig tunes word generation.
type SynthesisConfig struct {
	// MaxDepth bounds nested variable expansion.
	MaxDepth int `koanf:"max_depth"`
	// SampleCount is the number of words shown by the test generator.
	SampleCount int `koanf:"sample_count"`
	// Workers bounds concurrent generation.
	Workers int `koanf:"workers"`
}

// DefaultSynthesisConfig returns the default synthesis settings.
func DefaultSynthesisConfig() SynthesisConfig {
	var c SynthesisConfig
	ApplySynthesisDefaults(&c)
	return c
}

// Validate rejects non-positive settings.
func (c SynthesisConfig) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("synthesis.max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.SampleCount <= 0 {
		return fmt.Errorf("synthesis.sample_count must be positive, got %d", c.SampleCount)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("synthesis.workers must be positive, got %d", c.Workers)
	}
	return nil
}
