// Package testutil provides workspace and output helpers for CLI tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/alchemist/internal/cli/config"
	"github.com/leapstack-labs/alchemist/internal/cli/output"
)

// SetupWorkspace writes an alchemist.yaml selecting lang with the given
// output mode, loads it as the current configuration and returns the
// workspace directory. An empty lang leaves no language selected.
func SetupWorkspace(t *testing.T, lang, mode string) string {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	dir := t.TempDir()
	content := fmt.Sprintf("state_path: state.db\noutput: %s\n", mode)
	if lang != "" {
		content += "language: " + lang + "\n"
	}
	path := filepath.Join(dir, "alchemist.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := config.LoadConfig(path, nil); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	return dir
}

// TestRenderer is a Renderer whose output is captured for inspection.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a capturing renderer. Text mode simulates a
// terminal; every other mode renders as if piped.
func NewTestRenderer(mode output.OutputMode) *TestRenderer {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, mode == output.ModeText, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns what was written to standard output.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertOutputMode checks that captured output has the shape of mode:
// markdown and JSON carry no ANSI codes, markdown has balanced fences and
// no empty headers, JSON parses.
func AssertOutputMode(t *testing.T, tr *TestRenderer, mode output.OutputMode) {
	t.Helper()

	if mode == output.ModeText {
		return
	}
	if all := tr.Output() + tr.ErrOut.String(); ansiPattern.MatchString(all) {
		t.Errorf("%s output contains ANSI escape codes: %q", mode, all)
	}

	switch mode {
	case output.ModeJSON:
		if !json.Valid(tr.Out.Bytes()) {
			t.Errorf("output is not valid JSON: %q", tr.Output())
		}
	case output.ModeMarkdown:
		md := tr.Output()
		if n := strings.Count(md, "```"); n%2 != 0 {
			t.Errorf("unbalanced code fences in markdown: found %d occurrences", n)
		}
		for i, line := range strings.Split(md, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
				t.Errorf("empty header at line %d: %q", i+1, line)
			}
		}
	}
}
