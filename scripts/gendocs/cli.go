package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/alchemist/internal/cli"
)

// generateCLIDocs writes an index page plus one page per command and
// subcommand ("syllables graph" becomes syllables-graph.md).
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()
	if err := generateCLIIndex(rootCmd, outDir); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	return walkCommands(rootCmd, func(cmd *cobra.Command) error {
		name := pageName(cmd)
		if err := generateCommandPage(cmd, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", name, err)
		}
		log.Printf("  Generated %s.md", name)
		return nil
	})
}

// documented reports whether cmd gets its own page.
func documented(cmd *cobra.Command) bool {
	return !cmd.Hidden && cmd.Name() != "help" && cmd.Name() != "__complete" && cmd.Name() != "completion"
}

func walkCommands(parent *cobra.Command, fn func(*cobra.Command) error) error {
	for _, cmd := range parent.Commands() {
		if !documented(cmd) {
			continue
		}
		if err := fn(cmd); err != nil {
			return err
		}
		if err := walkCommands(cmd, fn); err != nil {
			return err
		}
	}
	return nil
}

// commandPath is the command line without the binary name.
func commandPath(cmd *cobra.Command) string {
	return strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
}

func pageName(cmd *cobra.Command) string {
	return strings.ReplaceAll(commandPath(cmd), " ", "-")
}

func pageLink(cmd *cobra.Command) string {
	return fmt.Sprintf("[%s](/cli/%s)", InlineCode(commandPath(cmd)), pageName(cmd))
}

func generateCLIIndex(rootCmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Command-line interface reference for alchemist")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("alchemist is a command-line workbench for constructed languages: graphemes, syllable grammars, word generation, lexicons and grammar rules.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/alchemist/cmd/alchemist@latest")

	w.Header(2, "Basic Usage")
	w.CodeBlock("bash", "alchemist [--language <name>] <command> [options]")

	w.Header(2, "Commands")
	var rows [][]string
	_ = walkCommands(rootCmd, func(cmd *cobra.Command) error {
		rows = append(rows, []string{pageLink(cmd), cleanDescription(cmd.Short)})
		return nil
	})
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("These flags are available for all commands:")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph("Every configuration key can be set with an `ALCHEMIST_` variable. Nested keys use a double underscore.")
	w.Table([]string{"Variable", "Description"}, [][]string{
		{InlineCode("ALCHEMIST_STATE_PATH"), "State database path"},
		{InlineCode("ALCHEMIST_LANGUAGE"), "Language to work on"},
		{InlineCode("ALCHEMIST_OUTPUT"), "Output format"},
		{InlineCode("ALCHEMIST_SYNTHESIS__MAX_DEPTH"), "Maximum syllable rule nesting"},
		{InlineCode("ALCHEMIST_SYNTHESIS__WORKERS"), "Parallel generation workers"},
	})
	w.Paragraph("Command-line flags take precedence over environment variables, which take precedence over `alchemist.yaml`.")

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Error, including `check` finding error-level problems"},
	})

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

func generateCommandPage(cmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter(commandPath(cmd), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, commandPath(cmd))
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	useLine := cmd.UseLine()
	if cmd.HasAvailableSubCommands() && !cmd.Runnable() {
		useLine = cmd.CommandPath() + " <subcommand> [options]"
	}
	w.CodeBlock("bash", useLine)

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		aliases := make([]string, 0, len(cmd.Aliases))
		for _, alias := range cmd.Aliases {
			aliases = append(aliases, InlineCode(alias))
		}
		w.BulletList(aliases)
	}

	if cmd.HasAvailableSubCommands() {
		w.Header(2, "Subcommands")
		var rows [][]string
		for _, sub := range cmd.Commands() {
			if documented(sub) {
				rows = append(rows, []string{pageLink(sub), cleanDescription(sub.Short)})
			}
		}
		w.Table([]string{"Subcommand", "Description"}, rows)
	}

	if cmd.HasAvailableLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalNonPersistentFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	return os.WriteFile(filepath.Join(outDir, pageName(cmd)+".md"), w.Bytes(), 0600)
}

func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}
		defVal := f.DefValue
		switch {
		case defVal == "", defVal == "0" && f.Value.Type() == "int":
			defVal = "-"
		case f.Value.Type() == "string":
			defVal = InlineCode(defVal)
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, defVal, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

// cleanExample removes the indentation shared by every example line.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return strings.TrimSpace(example)
	}

	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
