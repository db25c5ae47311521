package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/alchemist/internal/cli/output"
	"github.com/leapstack-labs/alchemist/internal/language"
	"github.com/leapstack-labs/alchemist/internal/synthesis"
	"github.com/leapstack-labs/alchemist/internal/synthesis/notation"
)

const notationHelp = `Rules are written one per line:

  Name = alternative | alternative ...

An alternative is a sequence of leaves:
  [a b]     the graphemes a then b
  {a b}     one of a or b, picked at random
  Onset     the variable named Onset
  _         nothing
  ?         not set yet
  "#"       a quoted grapheme or name, for text with spaces or symbols

The roots are InitialSyllable, MiddleSyllable, TerminalSyllable and
SingleSyllable. Lines starting with # are comments.`

// NewSyllablesCommand creates the syllables command group.
func NewSyllablesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "syllables",
		Aliases: []string{"syl"},
		Short:   "Edit the syllable grammar",
		Long:    "Edit the syllable grammar that generates words.\n\n" + notationHelp,
		Example: `  alchemist syllables rule "SingleSyllable = Onset {a e i}"
  alchemist syllables rule "Onset = {k t} | _"
  alchemist syllables set grammar.txt
  alchemist syllables show`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <file|->",
		Short: "Replace the whole grammar from a file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			vars, err := notation.Parse(text)
			if err != nil {
				return err
			}
			return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				lang.Syllables = vars
				cmdCtx.Renderer.Success(fmt.Sprintf("Set syllable grammar (%d variables)", len(vars.Names())))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rule <rule>",
		Short: "Set one rule, defining referenced variables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, rule, err := notation.ParseRule(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				if err := lang.Syllables.SetRule(name, rule); err != nil {
					return err
				}
				// Edit defines the variables the new rule references.
				if err := lang.Syllables.Edit(name, func(*synthesis.OrRule) error { return nil }); err != nil {
					return err
				}
				r, _ := lang.Syllables.Get(name)
				cmdCtx.Renderer.Success(notation.FormatRule(name, r))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <variable>",
		Short: "Delete a variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				if synthesis.IsRoot(args[0]) {
					return fmt.Errorf("%s is a root and cannot be deleted", args[0])
				}
				if !lang.Syllables.Delete(args[0]) {
					return fmt.Errorf("%w: %s", synthesis.ErrUnknownRule, args[0])
				}
				lang.Syllables.Refresh()
				cmdCtx.Renderer.Success("Deleted " + args[0])
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the grammar in rule notation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return viewLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				r := cmdCtx.Renderer
				text := notation.Format(lang.Syllables)
				switch r.EffectiveMode() {
				case output.ModeJSON:
					return r.JSON(lang.Syllables.Document())
				case output.ModeMarkdown:
					r.Println(output.FormatHeader(1, "Syllables: "+lang.Name))
					r.Println("")
					r.Println(output.FormatCodeBlock("", text))
				default:
					r.Printf("%s", text)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Analyze reachability, references and graphemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return viewLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				report := synthesis.Analyze(lang.Syllables, lang.Graphemes)
				r := cmdCtx.Renderer
				if r.EffectiveMode() == output.ModeJSON {
					return r.JSON(report)
				}
				r.Header(1, "Syllables: "+lang.Name)
				if len(report.Reachable) > 0 {
					r.Println(output.FormatKeyValue("Reachable", strings.Join(report.Reachable, ", ")))
				}
				r.Problems(report.Problems())
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Remove unreachable variables that have no content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				synthesis.FlagReachableVars(lang.Syllables)
				pruned := synthesis.PruneUnreachable(lang.Syllables)
				sort.Strings(pruned)
				if len(pruned) == 0 {
					cmdCtx.Renderer.Success("Nothing to prune")
					return nil
				}
				cmdCtx.Renderer.Success("Pruned " + strings.Join(pruned, ", "))
				return nil
			})
		},
	})

	cmd.AddCommand(newSyllablesGraphCommand())

	return cmd
}

// readInput reads a file argument, or stdin when the argument is "-".
func readInput(cmd *cobra.Command, arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", arg, err)
	}
	return string(data), nil
}
