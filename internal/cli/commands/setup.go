package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/alchemist/internal/cli/config"
	"github.com/leapstack-labs/alchemist/internal/cli/output"
	intconfig "github.com/leapstack-labs/alchemist/internal/config"
	"github.com/leapstack-labs/alchemist/internal/language"
	"github.com/leapstack-labs/alchemist/internal/state"
	"github.com/leapstack-labs/alchemist/internal/synthesis"
)

// ErrNoLanguage is returned when a command needs a language and none is selected.
var ErrNoLanguage = errors.New("no language selected: pass --language or set language in alchemist.yaml")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    state.Store
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with an open, migrated store.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx := NewCommandContextWithoutStore(cmd)

	store, err := openStore(cmd.Context(), cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}
	cmdCtx.Store = store

	cleanup := func() {
		_ = store.Close()
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without a store.
// Useful for commands that don't need database access.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// LoadLanguage loads the selected language from the store.
func (c *CommandContext) LoadLanguage(ctx context.Context) (*language.Language, error) {
	if c.Cfg.Language == "" {
		return nil, ErrNoLanguage
	}
	lang, err := c.Store.GetLanguage(ctx, c.Cfg.Language)
	if errors.Is(err, state.ErrLanguageNotFound) {
		return nil, fmt.Errorf("language %q does not exist (create it with 'alchemist new %s')", c.Cfg.Language, c.Cfg.Language)
	}
	return lang, err
}

// SaveLanguage records the modification time and persists lang.
func (c *CommandContext) SaveLanguage(ctx context.Context, lang *language.Language) error {
	lang.Touch()
	changed, err := c.Store.SaveLanguage(ctx, lang)
	if err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}
	if !changed {
		c.Logger.Debug("language unchanged", "language", lang.Name)
	}
	return nil
}

// SynthesisOptions returns the synthesizer options from the configuration.
func (c *CommandContext) SynthesisOptions() []synthesis.Option {
	return []synthesis.Option{
		synthesis.WithMaxDepth(c.Cfg.Synthesis.MaxDepth),
		synthesis.WithLogger(c.Logger),
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	synth := intconfig.DefaultSynthesisConfig()
	return &config.Config{
		StatePath:    getEnvOrDefault("ALCHEMIST_STATE_PATH", config.DefaultStateFile),
		Language:     os.Getenv("ALCHEMIST_LANGUAGE"),
		LogLevel:     getEnvOrDefault("ALCHEMIST_LOG_LEVEL", config.DefaultLogLevel),
		LogFormat:    getEnvOrDefault("ALCHEMIST_LOG_FORMAT", config.DefaultLogFormat),
		Verbose:      os.Getenv("ALCHEMIST_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("ALCHEMIST_OUTPUT", config.DefaultOutput),
		Synthesis:    synth,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*state.SQLiteStore, error) {
	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// parseIndex parses a 1-based position argument into a 0-based index.
func parseIndex(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s %q: expected a number starting at 1", what, s)
	}
	return n - 1, nil
}
