package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/alchemist/internal/cli/output"
	"github.com/leapstack-labs/alchemist/internal/dag"
	"github.com/leapstack-labs/alchemist/internal/language"
	"github.com/leapstack-labs/alchemist/internal/synthesis"
)

// GraphQuerier provides read-only access to the reference graph.
type GraphQuerier interface {
	GetNode(string) (*dag.Node, bool)
	GetParents(string) []string
	GetChildren(string) []string
	NodeCount() int
	EdgeCount() int
}

func newSyllablesGraphCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Show which variables each rule references",
		Long: `Display the syllable variable reference graph.

Variables are grouped by level: level 0 holds the four root syllables,
level 1 the variables they reference, and so on. Unreachable variables
are not shown; see 'alchemist syllables check'.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format (agent-friendly)`,
		Example: `  alchemist syllables graph
  alchemist syllables graph --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return viewLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				graph := synthesis.Graph(lang.Syllables)
				levels := graph.Levels(synthesis.RootNames())

				r := cmdCtx.Renderer
				switch r.EffectiveMode() {
				case output.ModeJSON:
					return graphJSON(r, graph, levels)
				case output.ModeMarkdown:
					return graphMarkdown(r, graph, levels)
				default:
					return graphText(r, graph, levels)
				}
			})
		},
	}
}

func undefinedNote(graph GraphQuerier, name string) string {
	if n, ok := graph.GetNode(name); ok && !n.Defined {
		return " (undefined)"
	}
	return ""
}

// graphText outputs the graph in styled text format.
func graphText(r *output.Renderer, graph GraphQuerier, levels [][]string) error {
	styles := r.Styles()

	r.Header(1, "Syllable Graph")

	for i, level := range levels {
		r.Println(styles.Bold.Render(fmt.Sprintf("Level %d:", i)))
		for _, name := range level {
			refs := graph.GetChildren(name)
			usedBy := graph.GetParents(name)

			r.Printf("  %s%s\n", styles.Label.Render(name), styles.Warning.Render(undefinedNote(graph, name)))
			if len(refs) > 0 {
				r.Printf("    %s %s\n", styles.Muted.Render("references:"), strings.Join(refs, ", "))
			}
			if len(usedBy) > 0 {
				r.Printf("    %s %s\n", styles.Muted.Render("used by:"), strings.Join(usedBy, ", "))
			}
		}
		r.Println("")
	}

	r.Println(styles.Muted.Render(fmt.Sprintf("Total: %d rules, %d references", graph.NodeCount(), graph.EdgeCount())))
	return nil
}

// graphMarkdown outputs the graph in markdown format.
func graphMarkdown(r *output.Renderer, graph GraphQuerier, levels [][]string) error {
	r.Println(output.FormatHeader(1, "Syllable Graph"))
	r.Println("")

	for i, level := range levels {
		levelName := fmt.Sprintf("Level %d", i)
		if i == 0 {
			levelName = "Level 0 (Roots)"
		}
		r.Println(output.FormatHeader(2, levelName))

		for _, name := range level {
			r.Printf("- %s%s\n", name, undefinedNote(graph, name))
			if refs := graph.GetChildren(name); len(refs) > 0 {
				r.Printf("  - references: %s\n", strings.Join(refs, ", "))
			}
			if usedBy := graph.GetParents(name); len(usedBy) > 0 {
				r.Printf("  - used by: %s\n", strings.Join(usedBy, ", "))
			}
		}
		r.Println("")
	}

	r.Println(output.FormatHeader(2, "Summary"))
	r.Println(output.FormatKeyValue("Total Rules", fmt.Sprintf("%d", graph.NodeCount())))
	r.Println(output.FormatKeyValue("Total References", fmt.Sprintf("%d", graph.EdgeCount())))
	return nil
}

// graphJSON outputs the graph in JSON format.
func graphJSON(r *output.Renderer, graph GraphQuerier, levels [][]string) error {
	out := output.GraphOutput{
		Levels:     make([]output.GraphLevel, 0, len(levels)),
		TotalNodes: graph.NodeCount(),
		TotalEdges: graph.EdgeCount(),
	}

	for i, level := range levels {
		gl := output.GraphLevel{Level: i, Variables: make([]output.GraphNode, 0, len(level))}
		for _, name := range level {
			defined := true
			if n, ok := graph.GetNode(name); ok {
				defined = n.Defined
			}
			gl.Variables = append(gl.Variables, output.GraphNode{
				Name:         name,
				Defined:      defined,
				ReferencedBy: graph.GetParents(name),
				References:   graph.GetChildren(name),
			})
		}
		out.Levels = append(out.Levels, gl)
	}
	return r.JSON(out)
}
