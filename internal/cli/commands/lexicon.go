package commands

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/alchemist/internal/cli/output"
	"github.com/leapstack-labs/alchemist/internal/language"
	"github.com/leapstack-labs/alchemist/internal/lexicon"
	"github.com/leapstack-labs/alchemist/pkg/core"
)

// NewLexiconCommand creates the lexicon command group.
func NewLexiconCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lexicon",
		Aliases: []string{"lex"},
		Short:   "Edit the dictionary",
		Long:    `Edit the mapping from native phrases to conlang phrases.`,
		Example: `  # Map a word explicitly
  alchemist lexicon add sun ke
  # Generate the conlang side
  alchemist lexicon add "to be" --class function
  alchemist lexicon list --search ke --in conlang`,
	}
	cmd.AddCommand(newLexiconAddCommand(), newLexiconEditCommand(), newLexiconRemoveCommand(),
		newLexiconListCommand(), newLexiconSeedCommand())
	return cmd
}

func newLexiconAddCommand() *cobra.Command {
	var class string
	cmd := &cobra.Command{
		Use:   "add <native> [conlang]",
		Short: "Add an entry, generating the conlang side if omitted",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wc, err := core.ParseWordClass(class)
			if err != nil {
				return err
			}
			return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				native := args[0]
				if msg := lang.Lexicon.OverwriteWarning(native); msg != "" {
					return fmt.Errorf("%w: %s", lexicon.ErrEntryExists, msg)
				}
				var conlang string
				if len(args) == 2 {
					conlang = args[1]
				} else {
					if !lang.IsConfigValid() {
						cmdCtx.Renderer.Problems(lang.Weights.Problems())
						return fmt.Errorf("cannot generate a word: word length weights are invalid")
					}
					r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
					conlang = lang.Synthesizer(cmdCtx.SynthesisOptions()...).Morpheme(r, lang.Weights.For(wc))
				}
				if err := lang.Lexicon.Add(native, conlang); err != nil {
					return err
				}
				cmdCtx.Renderer.Success(fmt.Sprintf("%s → %s", native, conlang))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&class, "class", "content", "Word class used when generating (function|content)")
	return cmd
}

func newLexiconEditCommand() *cobra.Command {
	var native, conlang string
	cmd := &cobra.Command{
		Use:   "edit <native>",
		Short: "Change or rename an entry",
		Example: `  alchemist lexicon edit sun --conlang kea
  alchemist lexicon edit sun --native star`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				original := args[0]
				current, ok := lang.Lexicon.Get(original)
				if !ok {
					return fmt.Errorf("%w: %q", lexicon.ErrNotFound, original)
				}
				newNative, newConlang := original, current
				if cmd.Flags().Changed("native") {
					newNative = native
				}
				if cmd.Flags().Changed("conlang") {
					newConlang = conlang
				}
				if err := lang.Lexicon.Edit(original, newNative, newConlang); err != nil {
					return err
				}
				cmdCtx.Renderer.Success(fmt.Sprintf("%s → %s", newNative, newConlang))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&native, "native", "", "New native phrase")
	cmd.Flags().StringVar(&conlang, "conlang", "", "New conlang phrase")
	return cmd
}

func newLexiconRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <native>",
		Aliases: []string{"rm"},
		Short:   "Remove an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				if err := lang.Lexicon.Remove(args[0]); err != nil {
					return err
				}
				cmdCtx.Renderer.Success("Removed " + args[0])
				return nil
			})
		},
	}
}

func newLexiconListCommand() *cobra.Command {
	var search, in string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List or search entries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := lexicon.ParseSearchMode(in)
			if err != nil {
				return err
			}
			return viewLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				entries := lang.Lexicon.Search(mode, search)
				r := cmdCtx.Renderer
				if r.EffectiveMode() == output.ModeJSON {
					if entries == nil {
						entries = []lexicon.Entry{}
					}
					return r.JSON(entries)
				}

				r.Header(1, fmt.Sprintf("Lexicon: %s (%d of %d)", lang.Name, len(entries), lang.Lexicon.Len()))
				if len(entries) == 0 {
					r.Muted("No entries")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{e.Native, e.Conlang})
				}
				r.Table([]string{"Native", "Conlang"}, rows)
				if h := lang.Lexicon.Homonyms(); h > 0 {
					r.Muted(fmt.Sprintf("%d conlang word(s) have more than one meaning", h))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show entries containing this text")
	cmd.Flags().StringVar(&in, "in", "native", "Side searched (native|conlang)")
	return cmd
}
