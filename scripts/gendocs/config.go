package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/alchemist/internal/cli/config"
	sharedcfg "github.com/leapstack-labs/alchemist/internal/config"
)

// ConfigField describes one key of alchemist.yaml.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Section     string // "general" or "synthesis"
}

// getConfigSchema lists the keys read by internal/cli/config.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "state_path", Type: "string", Default: config.DefaultStateFile, Description: "State database path, relative to the project root", Section: "general"},
		{Name: "language", Type: "string", Description: "Language commands work on", Section: "general"},
		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "Output format: auto, text, markdown, json", Section: "general"},
		{Name: "log_level", Type: "string", Default: config.DefaultLogLevel, Description: "Log level: debug, info, warn, error", Section: "general"},
		{Name: "log_format", Type: "string", Default: config.DefaultLogFormat, Description: "Log format: text, json", Section: "general"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Force debug logging", Section: "general"},

		{Name: "max_depth", Type: "int", Default: strconv.Itoa(sharedcfg.DefaultMaxDepth), Description: "Maximum syllable rule nesting when generating", Section: "synthesis"},
		{Name: "sample_count", Type: "int", Default: strconv.Itoa(sharedcfg.DefaultSampleCount), Description: "Words shown by a sample generation", Section: "synthesis"},
		{Name: "workers", Type: "int", Default: strconv.Itoa(sharedcfg.DefaultWorkers), Description: "Parallel workers for batch generation", Section: "synthesis"},
	}
}

// generateConfigDocs writes the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "alchemist configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("alchemist reads `alchemist.yaml` from the current directory or the nearest parent. Settings are layered from defaults, the file, `ALCHEMIST_` environment variables and command line flags, in increasing priority.")

	fields := getConfigSchema()
	section := func(name string) [][]string {
		var rows [][]string
		for _, f := range fields {
			if f.Section != name {
				continue
			}
			defVal := "-"
			if f.Default != "" {
				defVal = InlineCode(f.Default)
			}
			rows = append(rows, []string{InlineCode(f.Name), f.Type, defVal, f.Description})
		}
		return rows
	}
	headers := []string{"Field", "Type", "Default", "Description"}

	w.Header(2, "General Settings")
	w.Table(headers, section("general"))

	w.Header(2, "Synthesis")
	w.Paragraph("Word generation settings live under the `synthesis` key.")
	w.Table(headers, section("synthesis"))

	w.Header(2, "Full Configuration Example")
	w.CodeBlock("yaml", `# alchemist.yaml
state_path: .alchemist/state.db
language: elvish
output: auto
log_level: warn

synthesis:
  max_depth: 32
  sample_count: 24
  workers: 4`)

	w.Header(2, "Environment Variables")
	w.Paragraph("Nested keys use a double underscore:")
	w.CodeBlock("bash", `ALCHEMIST_LANGUAGE=dwarvish ALCHEMIST_SYNTHESIS__WORKERS=8 alchemist generate --count 100`)

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}
