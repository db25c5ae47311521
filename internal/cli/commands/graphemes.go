package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/alchemist/internal/cli/output"
	"github.com/leapstack-labs/alchemist/internal/grapheme"
	"github.com/leapstack-labs/alchemist/internal/language"
)

// NewGraphemesCommand creates the graphemes command group.
func NewGraphemesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "graphemes",
		Aliases: []string{"g"},
		Short:   "Edit the graphemic inventory",
		Long: `Edit the graphemic inventory: the letters, multigraphs and symbols the
language is written with. Graphemes are separated by whitespace.`,
		Example: `  alchemist graphemes add "a e i o u k t ng"
  alchemist graphemes remove ng
  alchemist graphemes list`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <graphemes>...",
		Short: "Add graphemes to the inventory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				before := lang.Graphemes.Len()
				grapheme.AddAll(lang.Graphemes, strings.Join(args, " "))
				cmdCtx.Renderer.Success(fmt.Sprintf("Added %d grapheme(s)", lang.Graphemes.Len()-before))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <graphemes>...",
		Short: "Remove graphemes from the inventory",
		Long: `Remove graphemes from the inventory. Syllable rules that still use them
are left alone and reported by 'alchemist check'.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				for _, g := range grapheme.Split(strings.Join(args, " ")) {
					if !lang.Graphemes.Contains(g) {
						cmdCtx.Renderer.Warning(fmt.Sprintf("%s is not in the inventory", g))
						continue
					}
					grapheme.Remove(lang.Graphemes, g)
				}
				cmdCtx.Renderer.Success(fmt.Sprintf("Inventory has %d grapheme(s)", lang.Graphemes.Len()))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the inventory",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return viewLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				gs := grapheme.Strings(lang.Graphemes.Graphemes())
				r := cmdCtx.Renderer
				if r.EffectiveMode() == output.ModeJSON {
					return r.JSON(gs)
				}
				r.Header(1, fmt.Sprintf("Graphemes (%d total)", len(gs)))
				if len(gs) == 0 {
					r.Muted(language.EmptyInventoryMessage)
					return nil
				}
				r.Println(strings.Join(gs, " "))
				return nil
			})
		},
	})

	return cmd
}

// viewLanguage loads the selected language and passes it to fn.
func viewLanguage(cmd *cobra.Command, fn func(*CommandContext, *language.Language) error) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	lang, err := cmdCtx.LoadLanguage(cmd.Context())
	if err != nil {
		return err
	}
	return fn(cmdCtx, lang)
}

// editLanguage loads the selected language, applies fn and saves the result.
// Nothing is saved when fn fails.
func editLanguage(cmd *cobra.Command, fn func(*CommandContext, *language.Language) error) error {
	return viewLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
		if err := fn(cmdCtx, lang); err != nil {
			return err
		}
		return cmdCtx.SaveLanguage(cmd.Context(), lang)
	})
}
