package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/alchemist/internal/cli/output"
	"github.com/leapstack-labs/alchemist/internal/grammar"
	"github.com/leapstack-labs/alchemist/internal/language"
)

// NewRulesCommand creates the grammar rules command group.
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Edit grammar rewrite rules",
		Long: `Edit grammar rewrite rules. A rule has find patterns, which match words
and phrases and may nest children, and replace patterns, which output
captured matches or exact words.

Rules are numbered from 1. Find patterns are addressed by their label
(e.g. "Noun" or "Noun 2") or by their position in 'rules show'.`,
		Example: `  alchemist rules add
  alchemist rules find add 1 noun
  alchemist rules find add 1 verb
  alchemist rules find toggle 1 Verb --multimatch
  alchemist rules replace capture 1 Verb+
  alchemist rules replace literal 1 ka
  alchemist rules show 1`,
	}

	find := &cobra.Command{Use: "find", Short: "Edit find patterns"}
	find.AddCommand(newFindAddCommand(), newFindChildCommand(), newFindRemoveCommand(),
		newFindMoveCommand(), newFindToggleCommand(), newFindLiteralCommand())

	replace := &cobra.Command{Use: "replace", Short: "Edit replace patterns"}
	replace.AddCommand(newReplaceCaptureCommand(), newReplaceLiteralCommand(),
		newReplaceRemoveCommand(), newReplacePruneCommand())

	cmd.AddCommand(newRulesListCommand(), newRulesShowCommand(), newRulesAddCommand(),
		newRulesRemoveCommand(), newRulesMoveCommand(), newRulesTypesCommand(), find, replace)
	return cmd
}

// editRule loads the selected language, applies fn to the rule at ref and saves.
func editRule(cmd *cobra.Command, ref string, fn func(*CommandContext, *grammar.Rule) error) error {
	return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
		rule, err := lookupRule(lang, ref)
		if err != nil {
			return err
		}
		return fn(cmdCtx, rule)
	})
}

func lookupRule(lang *language.Language, ref string) (*grammar.Rule, error) {
	i, err := parseIndex(ref, "rule")
	if err != nil {
		return nil, err
	}
	rule, err := lang.Rules.At(i)
	if err != nil {
		return nil, fmt.Errorf("rule %s does not exist (%d rules)", ref, lang.Rules.Len())
	}
	return rule, nil
}

// resolveFind finds a pattern by its pre-order position or short label.
func resolveFind(rule *grammar.Rule, ref string) (grammar.FindPattern, error) {
	var patterns []grammar.FindPattern
	rule.Walk(func(fp grammar.FindPattern) { patterns = append(patterns, fp) })

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(patterns) {
			return grammar.FindPattern{}, fmt.Errorf("find pattern %d does not exist (%d patterns)", n, len(patterns))
		}
		return patterns[n-1], nil
	}
	for _, fp := range patterns {
		if strings.EqualFold(fp.ShortLabel, ref) {
			return fp, nil
		}
	}
	return grammar.FindPattern{}, fmt.Errorf("no find pattern labelled %q", ref)
}

// ruleSummary renders a rule on one line pair.
func ruleSummary(rule *grammar.Rule) (find, replace string) {
	var finds []string
	for _, h := range rule.Roots() {
		if fp, err := rule.Find(h); err == nil {
			finds = append(finds, fp.Label)
		}
	}
	var reps []string
	for _, p := range rule.Replace() {
		text := rule.ReplaceText(p)
		if text == "" {
			text = "(not set)"
		}
		reps = append(reps, text)
	}
	return strings.Join(finds, " "), strings.Join(reps, " ")
}

func newRulesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all rules",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return viewLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				r := cmdCtx.Renderer
				if r.EffectiveMode() == output.ModeJSON {
					docs := lang.Rules.PrepareForSave()
					if docs == nil {
						docs = []grammar.RuleDoc{}
					}
					return r.JSON(docs)
				}

				r.Header(1, fmt.Sprintf("Rules: %s (%d total)", lang.Name, lang.Rules.Len()))
				if lang.Rules.Len() == 0 {
					r.Muted("No rules. Add one with 'alchemist rules add'.")
					return nil
				}
				rows := make([][]string, 0, lang.Rules.Len())
				for i, rule := range lang.Rules.Rules() {
					find, replace := ruleSummary(rule)
					rows = append(rows, []string{strconv.Itoa(i + 1), find, replace})
				}
				r.Table([]string{"#", "Find", "Replace"}, rows)
				return nil
			})
		},
	}
}

func newRulesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <rule>",
		Short: "Show one rule with pattern positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return viewLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				rule, err := lookupRule(lang, args[0])
				if err != nil {
					return err
				}
				r := cmdCtx.Renderer
				if r.EffectiveMode() == output.ModeJSON {
					return r.JSON(rule.Document())
				}

				r.Header(1, "Rule "+args[0])
				r.Header(2, "Find")
				pos := 0
				rule.Walk(func(fp grammar.FindPattern) {
					pos++
					depth := 0
					for p := fp.Parent; !p.IsZero(); depth++ {
						parent, err := rule.Find(p)
						if err != nil {
							break
						}
						p = parent.Parent
					}
					r.Printf("%s%d. %s  %s\n", strings.Repeat("   ", depth), pos,
						r.Styles().Label.Render(fp.ShortLabel), r.Styles().Muted.Render(fp.Type.Name()))
				})
				if pos == 0 {
					r.Muted("(none)")
				}

				r.Header(2, "Replace")
				for i, p := range rule.Replace() {
					text := rule.ReplaceText(p)
					if text == "" {
						text = r.Styles().Warning.Render("(not set)")
					}
					r.Printf("%d. %s\n", i+1, text)
				}
				if len(rule.Replace()) == 0 {
					r.Muted("(none)")
				}
				return nil
			})
		},
	}
}

func newRulesAddCommand() *cobra.Command {
	var at int
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an empty rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				if at == 0 {
					lang.Rules.Add()
					cmdCtx.Renderer.Success(fmt.Sprintf("Added rule %d", lang.Rules.Len()))
					return nil
				}
				if err := lang.Rules.Insert(at-1, grammar.NewRule()); err != nil {
					return err
				}
				cmdCtx.Renderer.Success(fmt.Sprintf("Added rule %d", at))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&at, "at", 0, "Insert at this position instead of appending")
	return cmd
}

func newRulesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <rule>",
		Aliases: []string{"rm"},
		Short:   "Remove a rule",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				i, err := parseIndex(args[0], "rule")
				if err != nil {
					return err
				}
				if err := lang.Rules.Remove(i); err != nil {
					return err
				}
				cmdCtx.Renderer.Success("Removed rule " + args[0])
				return nil
			})
		},
	}
}

func newRulesMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <rule> <position>",
		Short: "Move a rule to a new position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				from, err := parseIndex(args[0], "rule")
				if err != nil {
					return err
				}
				to, err := parseIndex(args[1], "position")
				if err != nil {
					return err
				}
				if err := lang.Rules.Move(from, to); err != nil {
					return err
				}
				cmdCtx.Renderer.Success(fmt.Sprintf("Moved rule %s to %s", args[0], args[1]))
				return nil
			})
		},
	}
}

func newRulesTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the pattern types a find pattern can match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := NewCommandContextWithoutStore(cmd).Renderer
			choices := grammar.FindChoices()
			rows := make([][]string, 0, len(choices))
			for _, c := range choices {
				typ := c.New()
				rows = append(rows, []string{c.Name, typ.ShortName(), typ.String()})
			}
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(rows)
			}
			r.Table([]string{"Type", "Label", "Argument"}, rows)
			return nil
		},
	}
}

func newFindAddCommand() *cobra.Command {
	var at int
	cmd := &cobra.Command{
		Use:   "add <rule> <type>",
		Short: "Add a top-level find pattern",
		Long: `Add a top-level find pattern. The type is a word or phrase type name such
as "noun" or "phrase:noun", or "literal:<text>" for an exact word. See
'alchemist rules types'.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := grammar.ParsePatternType(args[1])
			if err != nil {
				return err
			}
			return editRule(cmd, args[0], func(cmdCtx *CommandContext, rule *grammar.Rule) error {
				var h grammar.Handle
				if at == 0 {
					h = rule.AppendFind(typ)
				} else if h, err = rule.InsertFind(at-1, typ); err != nil {
					return err
				}
				return reportFind(cmdCtx, rule, h, "Added")
			})
		},
	}
	cmd.Flags().IntVar(&at, "at", 0, "Insert at this position among the top-level patterns")
	return cmd
}

func newFindChildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "child <rule> <parent> <type>",
		Short: "Add a nested find pattern that must match inside its parent",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := grammar.ParsePatternType(args[2])
			if err != nil {
				return err
			}
			return editRule(cmd, args[0], func(cmdCtx *CommandContext, rule *grammar.Rule) error {
				parent, err := resolveFind(rule, args[1])
				if err != nil {
					return err
				}
				h, err := rule.AddChild(parent.Handle, typ)
				if err != nil {
					return err
				}
				return reportFind(cmdCtx, rule, h, "Added")
			})
		},
	}
}

func newFindRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <rule> <pattern>",
		Aliases: []string{"rm"},
		Short:   "Remove a find pattern and its children",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRule(cmd, args[0], func(cmdCtx *CommandContext, rule *grammar.Rule) error {
				fp, err := resolveFind(rule, args[1])
				if err != nil {
					return err
				}
				if err := rule.RemoveFind(fp.Handle); err != nil {
					return err
				}
				cmdCtx.Renderer.Success("Removed " + fp.ShortLabel)
				for _, p := range rule.Replace() {
					if !rule.IsResolved(p) {
						cmdCtx.Renderer.Warning("a replace pattern no longer captures anything; run 'rules replace prune'")
						break
					}
				}
				return nil
			})
		},
	}
}

func newFindMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <rule> <pattern> <position>",
		Short: "Move a find pattern among its siblings",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := parseIndex(args[2], "position")
			if err != nil {
				return err
			}
			return editRule(cmd, args[0], func(cmdCtx *CommandContext, rule *grammar.Rule) error {
				fp, err := resolveFind(rule, args[1])
				if err != nil {
					return err
				}
				if err := rule.MoveFind(fp.Handle, to); err != nil {
					return err
				}
				return reportFind(cmdCtx, rule, fp.Handle, "Moved")
			})
		},
	}
}

func newFindToggleCommand() *cobra.Command {
	var multimatch, optional bool
	cmd := &cobra.Command{
		Use:   "toggle <rule> <pattern>",
		Short: "Toggle multimatch or optional on a find pattern",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !multimatch && !optional {
				return fmt.Errorf("pass --multimatch, --optional or both")
			}
			return editRule(cmd, args[0], func(cmdCtx *CommandContext, rule *grammar.Rule) error {
				fp, err := resolveFind(rule, args[1])
				if err != nil {
					return err
				}
				if multimatch {
					if err := rule.SetMultimatch(fp.Handle, !fp.Multimatch); err != nil {
						return err
					}
				}
				if optional {
					if err := rule.SetOptional(fp.Handle, !fp.Optional); err != nil {
						return err
					}
				}
				return reportFind(cmdCtx, rule, fp.Handle, "Updated")
			})
		},
	}
	cmd.Flags().BoolVarP(&multimatch, "multimatch", "m", false, "Toggle matching every adjacent constituent")
	cmd.Flags().BoolVarP(&optional, "optional", "p", false, "Toggle matching when the constituent is absent")
	return cmd
}

func newFindLiteralCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "literal <rule> <pattern> <text>",
		Short: "Set the text of an exact word find pattern",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRule(cmd, args[0], func(cmdCtx *CommandContext, rule *grammar.Rule) error {
				fp, err := resolveFind(rule, args[1])
				if err != nil {
					return err
				}
				if err := rule.SetLiteral(fp.Handle, args[2]); err != nil {
					return err
				}
				return reportFind(cmdCtx, rule, fp.Handle, "Updated")
			})
		},
	}
}

func reportFind(cmdCtx *CommandContext, rule *grammar.Rule, h grammar.Handle, verb string) error {
	fp, err := rule.Find(h)
	if err != nil {
		return err
	}
	cmdCtx.Renderer.Success(fmt.Sprintf("%s %s", verb, fp.ShortLabel))
	return nil
}

// insertReplace appends p, or inserts it at the 1-based position at.
func insertReplace(rule *grammar.Rule, at int, p grammar.ReplacePattern) error {
	if at == 0 {
		rule.AppendReplace(p)
		return nil
	}
	return rule.InsertReplace(at-1, p)
}

func newReplaceCaptureCommand() *cobra.Command {
	var at int
	cmd := &cobra.Command{
		Use:   "capture <rule> <pattern>",
		Short: "Output whatever a find pattern matched",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRule(cmd, args[0], func(cmdCtx *CommandContext, rule *grammar.Rule) error {
				fp, err := resolveFind(rule, args[1])
				if err != nil {
					return err
				}
				if err := insertReplace(rule, at, grammar.Capture(fp.Handle)); err != nil {
					return err
				}
				cmdCtx.Renderer.Success("Capturing " + fp.ShortLabel)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&at, "at", 0, "Insert at this position instead of appending")
	return cmd
}

func newReplaceLiteralCommand() *cobra.Command {
	var at, set int
	cmd := &cobra.Command{
		Use:   "literal <rule> <text>",
		Short: "Output an exact word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRule(cmd, args[0], func(cmdCtx *CommandContext, rule *grammar.Rule) error {
				if set > 0 {
					if err := rule.SetReplaceLiteral(set-1, args[1]); err != nil {
						return err
					}
				} else if err := insertReplace(rule, at, grammar.LiteralReplace(args[1])); err != nil {
					return err
				}
				cmdCtx.Renderer.Success(fmt.Sprintf("Replacing with %q", args[1]))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&at, "at", 0, "Insert at this position instead of appending")
	cmd.Flags().IntVar(&set, "set", 0, "Change the text of the literal at this position")
	return cmd
}

func newReplaceRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <rule> <position>",
		Aliases: []string{"rm"},
		Short:   "Remove a replace pattern",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[1], "position")
			if err != nil {
				return err
			}
			return editRule(cmd, args[0], func(cmdCtx *CommandContext, rule *grammar.Rule) error {
				if err := rule.RemoveReplace(i); err != nil {
					return err
				}
				cmdCtx.Renderer.Success("Removed replace pattern " + args[1])
				return nil
			})
		},
	}
}

func newReplacePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune <rule>",
		Short: "Remove captures whose find pattern was deleted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRule(cmd, args[0], func(cmdCtx *CommandContext, rule *grammar.Rule) error {
				n := rule.DropUnresolvedCaptures()
				cmdCtx.Renderer.Success(fmt.Sprintf("Removed %d capture(s)", n))
				return nil
			})
		},
	}
}
