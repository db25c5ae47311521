package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/alchemist/internal/cli/output"
	"github.com/leapstack-labs/alchemist/internal/language"
	"github.com/leapstack-labs/alchemist/internal/wordlength"
	"github.com/leapstack-labs/alchemist/pkg/core"
)

// NewWeightsCommand creates the word-length weights command group.
func NewWeightsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Edit word-length weights",
		Long: `Edit the word-length distributions. Each class has a list of percentages:
the first is the chance of a one-syllable word, the second of a two-syllable
word, and so on. Each list must add up to 100.`,
		Example: `  alchemist weights set function 70 30
  alchemist weights set content 30,50,20
  alchemist weights show`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "set <function|content> <percent>...",
		Short:     "Replace the weights of one word class",
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: []string{"function", "content"},
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := core.ParseWordClass(args[0])
			if err != nil {
				return err
			}
			weights, err := parseWeights(args[1:])
			if err != nil {
				return err
			}
			return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				lang.Weights.Set(class, weights)
				if !wordlength.Verify(weights) {
					cmdCtx.Renderer.Warning(fmt.Sprintf("The column %q adds up to %d%%", class.Title(), weights.Sum()))
				}
				cmdCtx.Renderer.Success(fmt.Sprintf("Set %s weights", class))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show both distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return viewLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				r := cmdCtx.Renderer
				if r.EffectiveMode() == output.ModeJSON {
					return r.JSON(lang.Weights)
				}
				r.Header(1, "Word length: "+lang.Name)
				r.Table(weightsTable(lang.Weights))
				r.Problems(lang.Weights.Problems())
				return nil
			})
		},
	})

	return cmd
}

// parseWeights accepts percentages as separate arguments or comma separated.
func parseWeights(args []string) (wordlength.Weights, error) {
	var out wordlength.Weights
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			field = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(field), "%"))
			if field == "" {
				continue
			}
			n, err := strconv.Atoi(field)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid weight %q: expected a whole percentage", field)
			}
			out = append(out, n)
		}
	}
	if len(out) > wordlength.MaxSyllables {
		return nil, fmt.Errorf("at most %d syllable counts are supported", wordlength.MaxSyllables)
	}
	return out, nil
}

func weightsTable(d wordlength.Distribution) ([]string, [][]string) {
	n := max(len(d.Function), len(d.Content))
	fn, content := d.Function.Resize(n), d.Content.Resize(n)
	rows := make([][]string, 0, n+1)
	for i := 0; i < n; i++ {
		rows = append(rows, []string{strconv.Itoa(i + 1), fmt.Sprintf("%d%%", fn[i]), fmt.Sprintf("%d%%", content[i])})
	}
	rows = append(rows, []string{"Total", fmt.Sprintf("%d%%", fn.Sum()), fmt.Sprintf("%d%%", content.Sum())})
	return []string{"Syllables", core.ClassFunction.Title(), core.ClassContent.Title()}, rows
}
