package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alchemist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("state", "", "state path")
	flags.String("language", "", "language")
	flags.Int("max-depth", 0, "max depth")
	flags.Bool("verbose", false, "verbose")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	root := filepath.Dir(path)
	assert.Equal(t, filepath.Join(root, DefaultStateFile), cfg.StatePath)
	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, 32, cfg.Synthesis.MaxDepth)
	assert.Equal(t, 24, cfg.Synthesis.SampleCount)
	assert.Equal(t, path, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, `language: elvish
state_path: /tmp/elvish.db
synthesis:
  max_depth: 8
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "elvish", cfg.Language)
	assert.Equal(t, "/tmp/elvish.db", cfg.StatePath)
	assert.Equal(t, 8, cfg.Synthesis.MaxDepth)
	assert.Equal(t, 24, cfg.Synthesis.SampleCount)
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "language: from_file\n")
	t.Setenv("ALCHEMIST_LANGUAGE", "from_env")
	t.Setenv("ALCHEMIST_SYNTHESIS__WORKERS", "9")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.Language)
	assert.Equal(t, 9, cfg.Synthesis.Workers)
}

func TestLoadConfig_TrimsStrings(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "output: \" json \"\n")
	t.Setenv("ALCHEMIST_LANGUAGE", "  elvish ")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "elvish", cfg.Language)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "language: from_file\n")
	t.Setenv("ALCHEMIST_LANGUAGE", "from_env")

	flags := testFlags()
	require.NoError(t, flags.Set("language", "from_flag"))
	require.NoError(t, flags.Set("max-depth", "5"))
	require.NoError(t, flags.Set("state", "custom.db"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "from_flag", cfg.Language)
	assert.Equal(t, 5, cfg.Synthesis.MaxDepth)

	want, err := filepath.Abs("custom.db")
	require.NoError(t, err)
	assert.Equal(t, want, cfg.StatePath)
}

func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "language: from_file\n")
	t.Setenv("ALCHEMIST_LANGUAGE", "from_env")

	cfg, err := LoadConfig(path, testFlags())
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.Language)
}

func TestLoadConfig_VerboseForcesDebug(t *testing.T) {
	ResetConfig()
	flags := testFlags()
	require.NoError(t, flags.Set("verbose", "true"))

	cfg, err := LoadConfig(writeConfig(t, ""), flags)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_BadFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(writeConfig(t, "language: [unterminated\n"), nil)
	assert.ErrorContains(t, err, "error reading config file")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			StatePath:    "state.db",
			LogLevel:     "info",
			LogFormat:    "text",
			OutputFormat: "auto",
			Synthesis:    SynthesisConfig{MaxDepth: 1, SampleCount: 1, Workers: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty state path", func(c *Config) { c.StatePath = "" }, "state_path is required"},
		{"bad output", func(c *Config) { c.OutputFormat = "xml" }, "invalid output format"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "invalid log_level"},
		{"bad format", func(c *Config) { c.LogFormat = "logfmt" }, "invalid log_format"},
		{"bad synthesis", func(c *Config) { c.Synthesis.Workers = 0 }, "synthesis.workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&Config{LogLevel: "warn", LogFormat: "json"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = NewLogger(&Config{LogLevel: "nope"}, &buf)
	assert.Error(t, err)
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	var buf bytes.Buffer
	logger, err := NewLogger(&Config{LogLevel: "info"}, &buf)
	require.NoError(t, err)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
