package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/alchemist/internal/cli/output"
	"github.com/leapstack-labs/alchemist/internal/language"
	"github.com/leapstack-labs/alchemist/internal/translate"
)

// NewTranslateCommand creates the translate command.
func NewTranslateCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:     "translate [text]...",
		Aliases: []string{"tr"},
		Short:   "Translate text into the selected language",
		Long: `Translate text word by word. Words missing from the lexicon are generated
as content words and recorded, so the same word always translates the same
way. Punctuation and spacing are kept.`,
		Example: `  alchemist translate "The sun rises."
  alchemist translate -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactive && len(args) == 0 {
				return fmt.Errorf("nothing to translate: pass text or use --interactive")
			}
			return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				tr := lang.Translator(cmdCtx.SynthesisOptions(), translate.WithLogger(cmdCtx.Logger))
				if interactive {
					return runTranslateREPL(cmd, cmdCtx, lang, tr)
				}
				return translateOnce(cmdCtx.Renderer, lang, tr, strings.Join(args, " "))
			})
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Start an interactive translation session")
	return cmd
}

func translateOnce(r *output.Renderer, lang *language.Language, tr *translate.Translator, text string) error {
	before := lang.Lexicon.Len()
	out, err := tr.Translate(text)
	if errors.Is(err, translate.ErrInvalidConfig) {
		r.Problems(lang.Weights.Problems())
		return err
	}
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(output.TranslateOutput{
			Language: lang.Name,
			Input:    text,
			Output:   out,
			NewWords: lang.Lexicon.Len() - before,
		})
	}
	r.Println(out)
	return nil
}

// runTranslateREPL translates line by line, saving after every line so an
// interrupted session keeps its new words.
func runTranslateREPL(cmd *cobra.Command, cmdCtx *CommandContext, lang *language.Language, tr *translate.Translator) error {
	prompt := lang.Name + "> "
	historyFile := ""
	if cmdCtx.Cfg.StatePath != ":memory:" {
		historyFile = filepath.Join(filepath.Dir(cmdCtx.Cfg.StatePath), "translate_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		AutoComplete:    readline.NewPrefixCompleter(readline.PcItem(".help"), readline.PcItem(".words"), readline.PcItem(".quit")),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Translating into %s\n", lang.Name)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ".quit", ".exit":
			return nil
		case ".help":
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "  .words   Show the lexicon size\n  .quit    Exit")
			continue
		case ".words":
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d words\n", lang.Lexicon.Len())
			continue
		}

		if err := translateOnce(cmdCtx.Renderer, lang, tr, line); err != nil {
			return err
		}
		if err := cmdCtx.SaveLanguage(cmd.Context(), lang); err != nil {
			return err
		}
	}
}
