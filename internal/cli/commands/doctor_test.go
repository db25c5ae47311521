package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/alchemist/internal/cli/output"
	"github.com/leapstack-labs/alchemist/internal/cli/testutil"
	"github.com/leapstack-labs/alchemist/pkg/core"
)

func TestCalculateHealthScore(t *testing.T) {
	tests := []struct {
		name      string
		checks    []HealthCheck
		languages int
		minScore  int
		maxScore  int
	}{
		{
			name:      "no checks returns 100",
			languages: 0,
			minScore:  100,
			maxScore:  100,
		},
		{
			name: "all passing returns 100",
			checks: []HealthCheck{
				{Component: "graphemes", Status: "pass"},
				{Component: "weights", Status: "pass"},
			},
			languages: 1,
			minScore:  100,
			maxScore:  100,
		},
		{
			name: "warnings reduce score",
			checks: []HealthCheck{
				{Component: "syllables", Status: "warn", IssueCount: 2},
			},
			languages: 1,
			minScore:  90,
			maxScore:  90,
		},
		{
			name: "errors count double",
			checks: []HealthCheck{
				{Component: "weights", Status: "error", IssueCount: 2},
			},
			languages: 1,
			minScore:  80,
			maxScore:  80,
		},
		{
			name: "more languages means less impact per issue",
			checks: []HealthCheck{
				{Component: "syllables", Status: "warn", IssueCount: 5},
			},
			languages: 30,
			minScore:  95,
			maxScore:  95,
		},
		{
			name: "many issues clamp to 0",
			checks: []HealthCheck{
				{Component: "weights", Status: "error", IssueCount: 20},
			},
			languages: 1,
			minScore:  0,
			maxScore:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := calculateHealthScore(tt.checks, tt.languages)
			assert.GreaterOrEqual(t, score, tt.minScore)
			assert.LessOrEqual(t, score, tt.maxScore)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	check := healthCheck("elvish", "rules", core.Problems{
		{Severity: core.SeverityInfo, Component: "rules", Message: "rule 1 is not set"},
		{Severity: core.SeverityWarning, Component: "rules", Message: "rule 2 has a capture that is not set"},
	})
	assert.Equal(t, "warn", check.Status)
	assert.Equal(t, 1, check.IssueCount)
	assert.Len(t, check.Details, 2)

	check = healthCheck("elvish", "graphemes", nil)
	assert.Equal(t, "pass", check.Status)
}

func TestGenerateRecommendations(t *testing.T) {
	recs := generateRecommendations([]HealthCheck{
		{Language: "a", Component: "weights", Status: "error", IssueCount: 1},
		{Language: "b", Component: "weights", Status: "error", IssueCount: 1},
		{Language: "b", Component: "graphemes", Status: "pass"},
	})
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "weights set")
}

func TestDoctorCommand(t *testing.T) {
	testutil.SetupWorkspace(t, "elvish", "json")
	seedLanguage(t, "elvish")
	runCommand(t, NewNewCommand(), "dwarvish")

	var out DoctorOutput
	require.NoError(t, json.Unmarshal([]byte(runCommand(t, NewDoctorCommand())), &out))

	assert.Equal(t, 2, out.Summary.Languages)
	assert.Positive(t, out.Summary.SchemaVersion)
	assert.Len(t, out.HealthChecks, 2*len(components))
	assert.Equal(t, "dwarvish", out.HealthChecks[0].Language)
	assert.Equal(t, "error", out.HealthChecks[0].Status, "dwarvish has no graphemes")
	assert.Equal(t, 1, out.IssueCount)
	assert.Equal(t, 90, out.Score)
	assert.NotEmpty(t, out.Recommendations)
}

func TestDoctorMarkdown(t *testing.T) {
	testutil.SetupWorkspace(t, "", "markdown")

	out := runCommand(t, NewDoctorCommand())
	assert.Contains(t, out, "# Alchemist Health Report")
	assert.Contains(t, out, "- **Languages**: 0")
	assert.Contains(t, out, "**100/100**")
}

func TestRenderDoctor(t *testing.T) {
	out := &DoctorOutput{
		Summary: WorkspaceSummary{StatePath: "state.db", SchemaVersion: 1, Languages: 1},
		HealthChecks: []HealthCheck{
			{Language: "elvish", Component: "weights", Status: "error", IssueCount: 1,
				Details: []string{`The column "Content Words" adds up to 95%`}},
		},
		Score:           90,
		Recommendations: []string{getRecommendation("weights")},
	}

	md := testutil.NewTestRenderer(output.ModeMarkdown)
	require.NoError(t, renderDoctorMarkdown(md.Renderer, out))
	testutil.AssertOutputMode(t, md, output.ModeMarkdown)
	assert.Contains(t, md.Output(), "- **[ERROR]** Weights (1 issues)")
	assert.Contains(t, md.Output(), "**90/100**")

	text := testutil.NewTestRenderer(output.ModeText)
	require.NoError(t, renderDoctorText(text.Renderer, out))
	assert.Contains(t, text.Output(), "Weights")
	assert.Contains(t, text.Output(), "90/100")
	assert.Contains(t, text.Output(), "1. Make every word-length column")

	js := testutil.NewTestRenderer(output.ModeJSON)
	require.NoError(t, js.JSON(out))
	testutil.AssertOutputMode(t, js, output.ModeJSON)
}
