package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	sharedcfg "github.com/leapstack-labs/alchemist/internal/config"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

const envPrefix = "ALCHEMIST_"

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// projectRoot picks the directory relative paths resolve against.
// An explicit config file anchors the project, then the nearest
// directory holding alchemist.yaml, then the working directory.
func projectRoot(cfgFile string) string {
	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			return filepath.Dir(abs)
		}
	}
	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		return "."
	}
	if root := sharedcfg.FindProjectRoot(cwd); root != "" {
		return root
	}
	return cwd
}

// envKey maps ALCHEMIST_SYNTHESIS__MAX_DEPTH to synthesis.max_depth.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// flagKey maps a flag name to its config key.
func flagKey(name string) string {
	switch name {
	case "state":
		return "state_path"
	case "max-depth":
		return "synthesis.max_depth"
	case "workers":
		return "synthesis.workers"
	}
	return strings.ReplaceAll(name, "-", "_")
}

// trimStringHook strips surrounding whitespace from string settings, which
// env files and YAML block scalars tend to leave behind.
func trimStringHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.String {
		return data, nil
	}
	return strings.TrimSpace(data.(string)), nil
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")
	root := projectRoot(cfgFile)

	var flagStatePath string
	if flags != nil && flags.Changed("state") {
		if v, _ := flags.GetString("state"); v != "" && v != ":memory:" {
			flagStatePath, _ = filepath.Abs(v)
		}
	}

	// 1. Load defaults
	defaults := sharedcfg.DefaultSynthesisConfig()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"state_path":             DefaultStateFile,
		"log_level":              DefaultLogLevel,
		"log_format":             DefaultLogFormat,
		"verbose":                false,
		"output":                 DefaultOutput,
		"synthesis.max_depth":    defaults.MaxDepth,
		"synthesis.sample_count": defaults.SampleCount,
		"synthesis.workers":      defaults.Workers,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile == "" {
		cfgFile = sharedcfg.FindConfigFile(root)
	}
	configFileUsed = cfgFile
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables (ALCHEMIST_ prefix)
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(trimStringHook, mapstructure.StringToTimeDurationHookFunc()),
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ProjectRoot = root

	switch {
	case flagStatePath != "":
		cfg.StatePath = flagStatePath
	case cfg.StatePath != ":memory:" && cfg.StatePath != "" && !filepath.IsAbs(cfg.StatePath):
		cfg.StatePath = filepath.Join(root, cfg.StatePath)
	}
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}

	currentConfig = &cfg
	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
func GetCurrentConfig() *Config {
	return currentConfig
}

// NewLogger builds the logger described by cfg, writing to w.
func NewLogger(cfg *Config, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// WithLogger stores the logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return slog.New(slog.DiscardHandler)
}
