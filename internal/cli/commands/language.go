package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/alchemist/internal/cli/output"
	"github.com/leapstack-labs/alchemist/internal/language"
	"github.com/leapstack-labs/alchemist/pkg/core"
)

// NewNewCommand creates the command that starts a language.
func NewNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty language",
		Example: `  # Start a language and select it for later commands
  alchemist new elvish
  alchemist -l elvish graphemes add "a e i k t"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			lang := language.New(args[0], cmdCtx.Logger)
			if _, err := cmdCtx.Store.SaveLanguage(cmd.Context(), lang); err != nil {
				return fmt.Errorf("failed to create language %q: %w", args[0], err)
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("Created language %s", lang.Name))
			return nil
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all languages",
		Long: `List all stored languages with their lexicon size and last change.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List languages as JSON
  alchemist list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			langs, err := cmdCtx.Store.ListLanguages(cmd.Context())
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				out := output.ListOutput{Languages: []output.LanguageInfo{}, Total: len(langs)}
				for _, l := range langs {
					out.Languages = append(out.Languages, output.LanguageInfo{
						Name:        l.Name,
						ID:          l.ID,
						LexiconSize: l.LexiconSize,
						UpdatedAt:   l.UpdatedAt.Format(time.RFC3339),
					})
				}
				return r.JSON(out)
			}

			r.Header(1, fmt.Sprintf("Languages (%d total)", len(langs)))
			if len(langs) == 0 {
				r.Muted("No languages yet. Create one with 'alchemist new <name>'.")
				return nil
			}
			rows := make([][]string, 0, len(langs))
			for _, l := range langs {
				rows = append(rows, []string{l.Name, fmt.Sprint(l.LexiconSize), l.UpdatedAt.Local().Format("2006-01-02 15:04")})
			}
			r.Table([]string{"Name", "Words", "Updated"}, rows)
			return nil
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a language and its lexicon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := cmdCtx.Store.DeleteLanguage(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("Deleted language %s", args[0]))
			return nil
		},
	}
}

// NewCheckCommand creates the command reporting validity problems.
func NewCheckCommand() *cobra.Command {
	var minSeverity string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report problems in the selected language",
		Long: `Check the graphemic inventory, syllable grammar, word-length weights and
grammar rules of the selected language.

Errors block word generation and translation. Warnings and info do not.
The command exits with an error when any error-level problem is found,
whatever --severity hides.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			threshold, ok := core.ParseSeverity(minSeverity)
			if !ok {
				return fmt.Errorf("invalid severity %q: must be error, warning or info", minSeverity)
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			lang, err := cmdCtx.LoadLanguage(cmd.Context())
			if err != nil {
				return err
			}

			problems := lang.Problems()
			shown := problems.AtLeast(threshold)
			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				if err := r.JSON(output.CheckOutput{Language: lang.Name, Valid: !problems.HasErrors(), Problems: shown}); err != nil {
					return err
				}
			} else {
				r.Header(1, "Check: "+lang.Name)
				r.Problems(shown)
			}
			if problems.HasErrors() {
				return fmt.Errorf("language %s has errors", lang.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&minSeverity, "severity", "info", "Lowest severity to report (error|warning|info)")
	return cmd
}
