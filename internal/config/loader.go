package config

import (
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "alchemist.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "alchemist.yml"

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// FindConfigFile returns the config file in dir, or "" if there is none.
func FindConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindProjectRoot searches upward from startDir for a directory holding a
// config file. It returns "" if none is found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if FindConfigFile(dir) != "" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
