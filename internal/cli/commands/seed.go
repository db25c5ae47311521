package commands

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/alchemist/internal/cli/output"
	"github.com/leapstack-labs/alchemist/internal/language"
)

// newLexiconSeedCommand creates the command that loads lexicon entries from CSV.
func newLexiconSeedCommand() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "seed <file.csv>...",
		Short: "Load lexicon entries from CSV files",
		Long: `Load lexicon entries from CSV files with a native column and an optional
conlang column. A row with an empty conlang column gets a generated content
word. A header row "native,conlang" is skipped.

Existing entries are kept unless --overwrite is given.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Load a word list, generating every conlang word
  alchemist lexicon seed swadesh.csv

  # Replace existing mappings
  alchemist lexicon seed names.csv --overwrite`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				results := make([]output.SeedInfo, 0, len(args))
				for _, file := range args {
					info, err := seedLexicon(cmdCtx, lang, file, overwrite)
					if err != nil {
						return err
					}
					results = append(results, info)
				}
				return renderSeeds(cmdCtx.Renderer, results)
			})
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing entries")
	return cmd
}

func seedLexicon(cmdCtx *CommandContext, lang *language.Language, file string, overwrite bool) (output.SeedInfo, error) {
	info := output.SeedInfo{Name: strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))}
	info.FilePath, _ = filepath.Abs(file)

	f, err := os.Open(file)
	if err != nil {
		return info, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var synth func() string
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return info, fmt.Errorf("%s: %w", file, err)
		}
		native := strings.TrimSpace(record[0])
		if line == 1 && strings.EqualFold(native, "native") {
			continue
		}
		info.Rows++
		if native == "" {
			info.Skipped++
			continue
		}
		if _, exists := lang.Lexicon.Get(native); exists && !overwrite {
			info.Skipped++
			continue
		}

		conlang := ""
		if len(record) > 1 {
			conlang = strings.TrimSpace(record[1])
		}
		if conlang == "" {
			if synth == nil {
				if !lang.IsConfigValid() {
					return info, fmt.Errorf("%s line %d: cannot generate a word: word length weights are invalid", file, line)
				}
				s := lang.Synthesizer(cmdCtx.SynthesisOptions()...)
				r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
				weights := lang.Weights.Content
				synth = func() string { return s.Morpheme(r, weights) }
			}
			conlang = synth()
			info.Generated++
		}
		if err := lang.Lexicon.Set(native, conlang); err != nil {
			return info, fmt.Errorf("%s line %d: %w", file, line, err)
		}
		info.Added++
	}
	cmdCtx.Logger.Debug("seeded lexicon", "file", file, "added", info.Added, "skipped", info.Skipped)
	return info, nil
}

func renderSeeds(r *output.Renderer, seeds []output.SeedInfo) error {
	summary := output.SeedSummary{TotalFiles: len(seeds)}
	for _, s := range seeds {
		summary.TotalRows += s.Rows
		summary.TotalAdded += s.Added
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.SeedOutput{Seeds: seeds, Summary: summary})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Lexicon Seeded"))
		r.Println("")
		for _, s := range seeds {
			r.Println(output.FormatKeyValue("File", s.Name))
			r.Println(output.FormatKeyValue("Added", fmt.Sprintf("%d of %d rows (%d generated)", s.Added, s.Rows, s.Generated)))
			r.Println("")
		}
		r.Printf("**Total Added:** %d\n", summary.TotalAdded)
	default:
		r.Println("")
		r.Header(2, "Seeded Lexicon")
		for _, s := range seeds {
			status := "success"
			if s.Skipped > 0 {
				status = "warning"
			}
			r.StatusLine(s.Name, status, fmt.Sprintf("%d added, %d skipped", s.Added, s.Skipped))
		}
		r.Println("")
		r.Muted(fmt.Sprintf("Total: %d entries added", summary.TotalAdded))
	}
	return nil
}
