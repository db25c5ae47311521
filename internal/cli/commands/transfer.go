package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/alchemist/internal/language"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the selected language to a YAML file",
		Long: `Write the selected language to a YAML file, or to stdout when no file is
given. Syllables are written in rule notation so the file is easy to edit.`,
		Example: `  alchemist -l elvish export elvish.yaml
  alchemist -l elvish export > elvish.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return viewLanguage(cmd, func(cmdCtx *CommandContext, lang *language.Language) error {
				if len(args) == 0 || args[0] == "-" {
					return lang.Export(cmd.OutOrStdout())
				}
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", args[0], err)
				}
				if err := lang.Export(f); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				cmdCtx.Renderer.Success(fmt.Sprintf("Exported %s to %s", lang.Name, args[0]))
				return nil
			})
		},
	}
}

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	var (
		name    string
		replace bool
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Create a language from a YAML file",
		Long: `Create a language from a YAML file written by export, or from stdin.

With --watch the file is imported again every time it is saved, replacing
the stored language. Stop watching with Ctrl+C.`,
		Example: `  alchemist import elvish.yaml
  alchemist import elvish.yaml --name elvish-draft
  alchemist import elvish.yaml --replace --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch && args[0] == "-" {
				return errors.New("--watch needs a file, not stdin")
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			if err := importLanguage(cmd.Context(), cmdCtx, text, args[0], name, replace); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmdCtx.Renderer.Muted(fmt.Sprintf("Watching %s for changes...", args[0]))
			return watchImport(ctx, cmdCtx, args[0], name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Store under this name instead of the one in the file")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing language with the same name")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-import whenever the file changes")
	return cmd
}

func importLanguage(ctx context.Context, cmdCtx *CommandContext, text, source, name string, replace bool) error {
	lang, err := language.Import(strings.NewReader(text), cmdCtx.Logger)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", source, err)
	}
	if name != "" {
		lang.Name = name
	}

	if replace {
		if err := cmdCtx.Store.ReplaceLanguage(ctx, lang); err != nil {
			return fmt.Errorf("failed to replace %s: %w", lang.Name, err)
		}
	} else if _, err := cmdCtx.Store.SaveLanguage(ctx, lang); err != nil {
		return fmt.Errorf("failed to save %s (use --replace to overwrite or --name to rename): %w", lang.Name, err)
	}

	cmdCtx.Renderer.Success(fmt.Sprintf("Imported %s (%d words, %d rules)", lang.Name, lang.Lexicon.Len(), lang.Rules.Len()))
	for _, p := range lang.Problems() {
		cmdCtx.Logger.Debug("imported language problem", "severity", p.Severity, "component", p.Component, "message", p.Message)
	}
	return nil
}

// watchImport re-imports path on every write until ctx is done. The parent
// directory is watched so editors that replace the file are seen too.
func watchImport(ctx context.Context, cmdCtx *CommandContext, path, name string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	reload := make(chan struct{}, 1)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			cmdCtx.Logger.Debug("language file changed, re-importing", "file", path)
			data, err := os.ReadFile(abs)
			if err != nil {
				cmdCtx.Logger.Error("failed to read language file", "file", path, "error", err)
				continue
			}
			if err := importLanguage(ctx, cmdCtx, string(data), path, name, true); err != nil {
				cmdCtx.Renderer.Warning(err.Error())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Error("watcher error", "error", err)
		}
	}
}
