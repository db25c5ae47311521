// Package config provides configuration management for the alchemist CLI.
//
// Settings are layered from defaults, an alchemist.yaml file, ALCHEMIST_
// environment variables and command line flags, in increasing priority.
package config

import (
	sharedcfg "github.com/leapstack-labs/alchemist/internal/config"
)

// SynthesisConfig is an alias for the shared synthesis configuration.
type SynthesisConfig = sharedcfg.SynthesisConfig

// Config holds all CLI configuration options.
type Config struct {
	StatePath    string          `koanf:"state_path"`
	Language     string          `koanf:"language"`
	LogLevel     string          `koanf:"log_level"`
	LogFormat    string          `koanf:"log_format"`
	Verbose      bool            `koanf:"verbose"`
	OutputFormat string          `koanf:"output"`
	Synthesis    SynthesisConfig `koanf:"synthesis"`
	ProjectRoot  string          `koanf:"-"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultStateFile = sharedcfg.DefaultStateFile
	DefaultLogLevel  = sharedcfg.DefaultLogLevel
	DefaultLogFormat = sharedcfg.DefaultLogFormat
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
