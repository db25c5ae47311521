package output

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/alchemist/pkg/core"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newTest(mode OutputMode, tty bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, tty, mode), out, errOut
}

func TestMode(t *testing.T) {
	tests := []struct {
		in   string
		want OutputMode
	}{
		{"text", ModeText},
		{"markdown", ModeMarkdown},
		{"md", ModeMarkdown},
		{"json", ModeJSON},
		{"auto", ModeAuto},
		{"", ModeAuto},
		{"xml", ModeAuto},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Mode(tt.in))
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name string
		mode OutputMode
		tty  bool
		want OutputMode
	}{
		{"auto on tty", ModeAuto, true, ModeText},
		{"auto piped", ModeAuto, false, ModeMarkdown},
		{"explicit json on tty", ModeJSON, true, ModeJSON},
		{"explicit text piped", ModeText, false, ModeText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTest(tt.mode, tt.tty)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestNewRenderer_NonFileIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
}

func TestNewRenderer_NoColor(t *testing.T) {
	t.Setenv("CLICOLOR", "")
	t.Setenv("CLICOLOR_FORCE", "")

	t.Setenv("NO_COLOR", "")
	r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, true, ModeText)
	assert.NotEqual(t, PlainStyles(), r.Styles())

	t.Setenv("NO_COLOR", "1")
	r = NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, true, ModeText)
	assert.Equal(t, PlainStyles(), r.Styles())
	assert.True(t, r.IsTTY())
}

func TestRenderer_MarkdownTable(t *testing.T) {
	r, out, _ := newTest(ModeMarkdown, false)
	r.Table([]string{"Native", "Conlang"}, [][]string{{"sun", "ke"}, {"moon", "ta"}})

	s := out.String()
	assert.Contains(t, s, "| Native | Conlang |")
	assert.Contains(t, s, "| sun | ke |")
	assert.False(t, ansi.MatchString(s))
}

func TestRenderer_TextTable(t *testing.T) {
	r, out, _ := newTest(ModeText, false)
	r.Table([]string{"Native"}, [][]string{{"sun"}})
	assert.Contains(t, out.String(), "sun")
	assert.Contains(t, out.String(), "┌")
}

func TestRenderer_Header(t *testing.T) {
	r, out, _ := newTest(ModeMarkdown, false)
	r.Header(2, "Lexicon")
	assert.Equal(t, "## Lexicon\n\n", out.String())
}

func TestRenderer_Problems(t *testing.T) {
	r, out, _ := newTest(ModeMarkdown, false)
	r.Problems(core.Problems{
		{Severity: core.SeverityError, Component: "graphemes", Message: "empty"},
	})
	assert.Equal(t, "- **error** (graphemes): empty\n", out.String())

	out.Reset()
	r.Problems(nil)
	assert.Equal(t, "No problems found\n", out.String())
}

func TestRenderer_JSONSuppressesSuccess(t *testing.T) {
	r, out, _ := newTest(ModeJSON, false)
	r.Success("saved")
	require.NoError(t, r.JSON(map[string]int{"n": 1}))
	assert.Equal(t, "{\n  \"n\": 1\n}\n", out.String())
}

func TestRenderer_WarningGoesToErrOut(t *testing.T) {
	r, out, errOut := newTest(ModeText, false)
	r.Warning("careful")
	assert.Empty(t, out.String())
	assert.Equal(t, "warning: careful\n", errOut.String())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# A", FormatHeader(0, "A"))
	assert.Equal(t, "- **Name**: elvish", FormatKeyValue("Name", "elvish"))
	assert.Equal(t, "```\nx = a\n```", FormatCodeBlock("", "x = a\n"))
}
