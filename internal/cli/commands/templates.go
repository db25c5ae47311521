package commands

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed all:templates
var templateFS embed.FS

// scaffoldFile is one file written (or left alone) by init.
type scaffoldFile struct {
	Path   string // relative to the workspace
	Status string // created, overwritten or kept
}

// isLanguage reports whether the file is a language document to import.
func (f scaffoldFile) isLanguage() bool {
	return strings.HasPrefix(f.Path, "languages"+string(filepath.Separator)) && filepath.Ext(f.Path) == ".yaml"
}

// scaffold writes the embedded workspace template into targetDir. Existing
// files are kept unless force is set.
func scaffold(templateName, targetDir string, force bool) ([]scaffoldFile, error) {
	root := path.Join("templates", templateName)
	var written []scaffoldFile

	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		if rel == "" {
			return nil
		}

		target := filepath.Join(targetDir, dotfile(filepath.FromSlash(rel)))
		if d.IsDir() {
			return os.MkdirAll(target, 0750)
		}

		status := "created"
		if _, err := os.Stat(target); err == nil {
			if !force {
				written = append(written, scaffoldFile{Path: dotfile(filepath.FromSlash(rel)), Status: "kept"})
				return nil
			}
			status = "overwritten"
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		content, err := templateFS.ReadFile(p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, content, 0600); err != nil {
			return err
		}
		written = append(written, scaffoldFile{Path: dotfile(filepath.FromSlash(rel)), Status: status})
		return nil
	})
	return written, err
}

// dotfile restores the leading dot embed cannot carry ("gitignore" -> ".gitignore").
func dotfile(p string) string {
	if filepath.Base(p) == "gitignore" {
		return filepath.Join(filepath.Dir(p), ".gitignore")
	}
	return p
}
