package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/alchemist/internal/cli/output"
	"github.com/leapstack-labs/alchemist/internal/language"
	"github.com/leapstack-labs/alchemist/pkg/core"
)

// blankWord is shown for a generated word with no graphemes.
const blankWord = "(blank)"

// NewGenerateCommand creates the command that previews generated words.
func NewGenerateCommand() *cobra.Command {
	var (
		count int
		class string
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate sample words",
		Long: `Generate a batch of words from the syllable grammar and word-length weights
without recording them in the lexicon.`,
		Example: `  alchemist generate
  alchemist generate -n 100 --class function --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wc, err := core.ParseWordClass(class)
			if err != nil {
				return err
			}
			if count < 0 {
				return fmt.Errorf("--count must not be negative, got %d", count)
			}
			return viewLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				if !lang.IsConfigValid() {
					cmdCtx.Renderer.Problems(lang.Weights.Problems())
					return fmt.Errorf("word length weights are invalid")
				}
				n := count
				if !cmd.Flags().Changed("count") {
					n = cmdCtx.Cfg.Synthesis.SampleCount
				}

				words, err := lang.Synthesizer(cmdCtx.SynthesisOptions()...).
					Batch(cmd.Context(), lang.Weights.For(wc), n, cmdCtx.Cfg.Synthesis.Workers)
				if err != nil {
					return err
				}
				return renderWords(cmdCtx.Renderer, lang.Name, words)
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 24, "Number of words to generate")
	cmd.Flags().StringVar(&class, "class", "content", "Word class whose weights are used (function|content)")
	_ = cmd.RegisterFlagCompletionFunc("class", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"function", "content"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func renderWords(r *output.Renderer, name string, words []string) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(output.GenerateOutput{Language: name, Words: words})
	}
	r.Header(1, fmt.Sprintf("Words (%d)", len(words)))
	for _, w := range words {
		if w == "" {
			r.Println(r.Styles().Muted.Render(blankWord))
			continue
		}
		r.Println(r.Styles().Word.Render(w))
	}
	return nil
}
