package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/alchemist/internal/cli/output"
	intconfig "github.com/leapstack-labs/alchemist/internal/config"
	"github.com/leapstack-labs/alchemist/internal/language"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize an alchemist workspace",
		Long: `Initialize an alchemist workspace with a configuration file.

This creates:
  - alchemist.yaml configuration file
  - .gitignore excluding the state database

Use --example to also create and import a small example language.`,
		Example: `  # Initialize in current directory
  alchemist init

  # Initialize with an example language
  alchemist init my-langs --example

  # Force overwrite existing config
  alchemist init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := NewCommandContextWithoutStore(cmd).Renderer

			if example {
				return runInitExample(cmd, r, dir, force)
			}
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Create and import an example language")

	return cmd
}

func prepareInit(dir, template string, force bool) ([]scaffoldFile, error) {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, intconfig.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return nil, fmt.Errorf("%s already exists. Use --force to overwrite", intconfig.ConfigFileName)
	}

	files, err := scaffold(template, dir, force)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize workspace: %w", err)
	}
	return files, nil
}

func reportScaffold(r *output.Renderer, files []scaffoldFile) {
	for _, f := range files {
		status := "success"
		if f.Status == "kept" {
			status = "warning"
		}
		r.StatusLine(f.Path, status, f.Status)
	}
}

func runInit(r *output.Renderer, dir string, force bool) error {
	files, err := prepareInit(dir, "minimal", force)
	if err != nil {
		return err
	}
	reportScaffold(r, files)

	r.Println("")
	r.Success("Workspace initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Run 'alchemist new <name>' to start a language")
	r.Println("  2. Set language: <name> in alchemist.yaml")
	r.Println("  3. Add graphemes and syllable rules, then 'alchemist generate'")
	return nil
}

func runInitExample(cmd *cobra.Command, r *output.Renderer, dir string, force bool) error {
	files, err := prepareInit(dir, "example", force)
	if err != nil {
		return err
	}

	var config, languages []scaffoldFile
	for _, f := range files {
		if f.isLanguage() {
			languages = append(languages, f)
		} else {
			config = append(config, f)
		}
	}

	r.Header(2, "Configuration")
	reportScaffold(r, config)
	r.Println("")
	r.Header(2, "Languages")
	reportScaffold(r, languages)

	cmdCtx := NewCommandContextWithoutStore(cmd)
	cfg := *cmdCtx.Cfg
	cfg.StatePath = filepath.Join(dir, intconfig.DefaultStateFile)
	store, err := openStore(cmd.Context(), &cfg, cmdCtx.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	for _, f := range languages {
		file, err := os.Open(filepath.Join(dir, f.Path))
		if err != nil {
			return err
		}
		lang, err := language.Import(file, cmdCtx.Logger)
		_ = file.Close()
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", f.Path, err)
		}
		if _, err := store.SaveLanguage(cmd.Context(), lang); err != nil {
			return fmt.Errorf("failed to save %s: %w", lang.Name, err)
		}
	}

	r.Println("")
	r.Success("Workspace initialized with an example language!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  alchemist check          Look for problems in the language")
	r.Println("  alchemist generate       Preview generated words")
	r.Println("  alchemist translate -i   Translate interactively")
	return nil
}
