// Package cli provides the command-line interface for alchemist.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/alchemist/internal/cli/commands"
	"github.com/leapstack-labs/alchemist/internal/cli/config"
	"github.com/leapstack-labs/alchemist/internal/cli/output"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// rendererKey is used to store renderer in context.
type rendererKey struct{}

// skipConfig lists commands that run without loading configuration.
var skipConfig = map[string]bool{
	"help":       true,
	"completion": true,
	"__complete": true,
	"version":    true,
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "alchemist",
		Short: "Alchemist - Constructed Language Workbench",
		Long: `Alchemist builds constructed languages.

Define a graphemic inventory and a syllable grammar, tune word-length
weights, then generate words, keep a lexicon and translate text. Grammar
rewrite rules describe how sentences are reordered.

Languages are stored in a local state database (.alchemist/state.db by
default). Select the language to work on with --language or the language
key in alchemist.yaml.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipConfig[cmd.Name()] {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger, err := config.NewLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = config.WithLogger(ctx, logger)
			ctx = context.WithValue(ctx, configKey{}, cfg)

			renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
			ctx = context.WithValue(ctx, rendererKey{}, renderer)
			cmd.SetContext(ctx)

			if file := config.GetConfigFileUsed(); file != "" {
				logger.Debug("using config file", "path", file)
			}
			logger.Debug("configuration loaded",
				"state_path", cfg.StatePath,
				"language", cfg.Language,
				"output", cfg.OutputFormat)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Constructed language workbench
`)

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./alchemist.yaml)")
	pf.String("state", "", "Path to state database")
	pf.StringP("language", "l", "", "Language to work on")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")
	pf.String("log-format", "", "Log format (text|json)")
	pf.BoolP("verbose", "v", false, "Verbose output (debug logging)")
	pf.StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	pf.Int("max-depth", 0, "Maximum syllable rule nesting when generating")
	pf.Int("workers", 0, "Parallel workers for batch generation")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(commands.BuildInfo{Version: Version, Commit: GitCommit, BuildDate: BuildDate}))
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewNewCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewDeleteCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewDoctorCommand())
	rootCmd.AddCommand(commands.NewGraphemesCommand())
	rootCmd.AddCommand(commands.NewSyllablesCommand())
	rootCmd.AddCommand(commands.NewWeightsCommand())
	rootCmd.AddCommand(commands.NewGenerateCommand())
	rootCmd.AddCommand(commands.NewLexiconCommand())
	rootCmd.AddCommand(commands.NewTranslateCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewImportCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		StatePath:    config.DefaultStateFile,
		LogLevel:     config.DefaultLogLevel,
		LogFormat:    config.DefaultLogFormat,
		OutputFormat: config.DefaultOutput,
	}
}

// GetRenderer retrieves the renderer from the command context.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*output.Renderer); ok {
		return r
	}
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for alchemist.

To load completions:

Bash:
  $ source <(alchemist completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ alchemist completion bash > /etc/bash_completion.d/alchemist
  # macOS:
  $ alchemist completion bash > $(brew --prefix)/etc/bash_completion.d/alchemist

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ alchemist completion zsh > "${fpath[1]}/_alchemist"

Fish:
  $ alchemist completion fish | source

  # To load completions for each session, execute once:
  $ alchemist completion fish > ~/.config/fish/completions/alchemist.fish

PowerShell:
  PS> alchemist completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
