// Package main provides tests for the alchemist CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/alchemist/internal/cli"
	"github.com/leapstack-labs/alchemist/internal/cli/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestHelpCommand(t *testing.T) {
	output, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("help command error = %v", err)
	}
	for _, expected := range []string{"new", "graphemes", "syllables", "weights", "generate", "translate", "rules"} {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestExampleWorkspace(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(config.ResetConfig)

	if _, err := execute(t, "init", "--example"); err != nil {
		t.Fatalf("init error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".alchemist", "state.db")); err != nil {
		t.Fatalf("state database not created: %v", err)
	}

	output, err := execute(t, "-o", "markdown", "translate", "The sun sets.")
	if err != nil {
		t.Fatalf("translate error = %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(output), ".") {
		t.Errorf("translation should keep punctuation, got: %q", output)
	}

	output, err = execute(t, "-o", "markdown", "lexicon", "list")
	if err != nil {
		t.Fatalf("lexicon error = %v", err)
	}
	for _, word := range []string{"the", "sun", "sets"} {
		if !strings.Contains(output, "| "+word+" |") {
			t.Errorf("lexicon should record %q, got: %s", word, output)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := execute(t, "unknown-command"); err == nil {
		t.Error("unknown command should return an error")
	}
}
