package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"

	"github.com/leapstack-labs/alchemist/internal/cli/config"
	"github.com/leapstack-labs/alchemist/internal/cli/output"
	"github.com/leapstack-labs/alchemist/internal/language"
	"github.com/leapstack-labs/alchemist/pkg/core"
)

// components are the parts of a language a health check covers, in report order.
var components = []string{"graphemes", "syllables", "weights", "rules"}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run a health check over every stored language",
		Long: `Check the workspace configuration, the state database and every stored
language, then print a report with a health score and recommendations.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  alchemist doctor

  # Output as JSON
  alchemist doctor --output json`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         WorkspaceSummary `json:"summary"`
	HealthChecks    []HealthCheck    `json:"health_checks"`
	Score           int              `json:"score"`
	Recommendations []string         `json:"recommendations"`
	IssueCount      int              `json:"issue_count"`
}

// WorkspaceSummary contains workspace-level statistics.
type WorkspaceSummary struct {
	ConfigFile    string `json:"config_file,omitempty"`
	StatePath     string `json:"state_path"`
	SchemaVersion int64  `json:"schema_version"`
	Languages     int    `json:"languages"`
	Words         int    `json:"words"`
	Rules         int    `json:"rules"`
}

// HealthCheck is the result for one component of one language.
type HealthCheck struct {
	Language   string   `json:"language"`
	Component  string   `json:"component"`
	Status     string   `json:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	summary := WorkspaceSummary{
		ConfigFile: config.GetConfigFileUsed(),
		StatePath:  cmdCtx.Cfg.StatePath,
	}
	if v, ok := cmdCtx.Store.(interface {
		GetMigrationVersion(context.Context) (int64, error)
	}); ok {
		if summary.SchemaVersion, err = v.GetMigrationVersion(cmd.Context()); err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
	}

	summaries, err := cmdCtx.Store.ListLanguages(cmd.Context())
	if err != nil {
		return err
	}
	langs := make([]*language.Language, 0, len(summaries))
	for _, s := range summaries {
		lang, err := cmdCtx.Store.GetLanguage(cmd.Context(), s.Name)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", s.Name, err)
		}
		langs = append(langs, lang)
	}

	out := buildDoctorOutput(summary, langs)
	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, out)
	default:
		return renderDoctorText(r, out)
	}
}

func buildDoctorOutput(summary WorkspaceSummary, langs []*language.Language) *DoctorOutput {
	out := &DoctorOutput{HealthChecks: []HealthCheck{}}
	for _, lang := range langs {
		summary.Languages++
		summary.Words += lang.Lexicon.Len()
		summary.Rules += lang.Rules.Len()

		byComponent := make(map[string]core.Problems)
		for _, p := range lang.Problems() {
			byComponent[p.Component] = append(byComponent[p.Component], p)
		}
		for _, c := range components {
			check := healthCheck(lang.Name, c, byComponent[c])
			out.IssueCount += check.IssueCount
			out.HealthChecks = append(out.HealthChecks, check)
		}
	}

	sort.SliceStable(out.HealthChecks, func(i, j int) bool {
		return out.HealthChecks[i].Language < out.HealthChecks[j].Language
	})

	out.Summary = summary
	out.Score = calculateHealthScore(out.HealthChecks, summary.Languages)
	out.Recommendations = generateRecommendations(out.HealthChecks)
	return out
}

func healthCheck(lang, component string, problems core.Problems) HealthCheck {
	check := HealthCheck{Language: lang, Component: component, Status: "pass"}
	for _, p := range problems {
		// Info findings are notes, not issues.
		if p.Severity == core.SeverityInfo {
			check.Details = append(check.Details, p.Message)
			continue
		}
		check.IssueCount++
		check.Details = append(check.Details, p.Message)
		switch {
		case p.Severity == core.SeverityError:
			check.Status = "error"
		case check.Status == "pass":
			check.Status = "warn"
		}
	}
	return check
}

// calculateHealthScore computes a health score from 0-100.
// Each issue costs points, errors twice as many. The cost shrinks as the
// workspace holds more languages.
func calculateHealthScore(checks []HealthCheck, languageCount int) int {
	if len(checks) == 0 {
		return 100
	}

	basePenalty := 5.0
	if languageCount > 5 {
		basePenalty = 3.0
	}
	if languageCount > 20 {
		basePenalty = 1.0
	}

	score := 100.0
	for _, check := range checks {
		switch check.Status {
		case "error":
			score -= float64(check.IssueCount) * basePenalty * 2
		case "warn":
			score -= float64(check.IssueCount) * basePenalty
		}
	}
	return int(max(0, min(100, score)))
}

// generateRecommendations creates one recommendation per failing component.
func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	seen := make(map[string]bool)
	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}
		rec := getRecommendation(check.Component)
		if rec != "" && !seen[rec] {
			recommendations = append(recommendations, rec)
			seen[rec] = true
		}
	}
	return recommendations
}

func getRecommendation(component string) string {
	switch component {
	case "graphemes":
		return "Add graphemes with 'alchemist graphemes add' and make sure syllable rules only use them"
	case "syllables":
		return "Run 'alchemist syllables check' and connect or delete unreachable variables"
	case "weights":
		return "Make every word-length column add up to 100 with 'alchemist weights set'"
	case "rules":
		return "Run 'alchemist rules replace prune' on rules whose captures lost their pattern"
	default:
		return ""
	}
}

func statusMarker(status string) string {
	switch status {
	case "warn":
		return "warning"
	case "error":
		return "error"
	}
	return "success"
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header.Render("Alchemist Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	r.Println(styles.Bold.Render("Workspace"))
	r.Printf("   State: %s (schema v%d)\n", out.Summary.StatePath, out.Summary.SchemaVersion)
	r.Printf("   Languages: %d | Words: %d | Rules: %d\n", out.Summary.Languages, out.Summary.Words, out.Summary.Rules)
	r.Println("")

	titleCaser := cases.Title(xlanguage.English)
	current := ""
	for _, check := range out.HealthChecks {
		if check.Language != current {
			current = check.Language
			r.Println(styles.Bold.Render("   " + check.Language))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}
		detail := ""
		if check.IssueCount > 0 {
			detail = fmt.Sprintf("(%d issues)", check.IssueCount)
		}
		r.Printf("   ")
		r.StatusLine(titleCaser.String(check.Component), statusMarker(check.Status), detail)
		for i, d := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + d))
		}
	}
	if len(out.HealthChecks) == 0 {
		r.Muted("   No languages yet")
	}
	r.Println("")

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Bold.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}
	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println("# Alchemist Health Report")
	r.Println("")

	r.Println("## Workspace")
	r.Println("")
	if out.Summary.ConfigFile != "" {
		r.Println(output.FormatKeyValue("Config", out.Summary.ConfigFile))
	}
	r.Println(output.FormatKeyValue("State", out.Summary.StatePath))
	r.Println(output.FormatKeyValue("Schema Version", fmt.Sprint(out.Summary.SchemaVersion)))
	r.Println(output.FormatKeyValue("Languages", fmt.Sprint(out.Summary.Languages)))
	r.Println(output.FormatKeyValue("Words", fmt.Sprint(out.Summary.Words)))
	r.Println(output.FormatKeyValue("Rules", fmt.Sprint(out.Summary.Rules)))
	r.Println("")

	r.Println("## Health Checks")
	r.Println("")
	titleCaser := cases.Title(xlanguage.English)
	current := ""
	for _, check := range out.HealthChecks {
		if check.Language != current {
			current = check.Language
			r.Println("### " + check.Language)
			r.Println("")
		}
		r.Printf("- **[%s]** %s", strings.ToUpper(check.Status), titleCaser.String(check.Component))
		if check.IssueCount > 0 {
			r.Printf(" (%d issues)", check.IssueCount)
		}
		r.Println("")
		for _, d := range check.Details {
			r.Printf("  - %s\n", d)
		}
	}
	r.Println("")

	r.Println("## Health Score")
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}
	return nil
}
