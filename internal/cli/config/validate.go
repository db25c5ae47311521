package config

import (
	"fmt"
	"log/slog"
	"strings"
)

var validOutputs = map[string]bool{"auto": true, "text": true, "markdown": true, "json": true}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.StatePath == "" {
		return fmt.Errorf("state_path is required")
	}
	if !validOutputs[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (use auto, text, markdown or json)", c.OutputFormat)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q (use text or json)", c.LogFormat)
	}
	return c.Synthesis.Validate()
}

// ParseLogLevel maps a level name to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log_level %q", s)
}
