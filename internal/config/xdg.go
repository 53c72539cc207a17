package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const appName = "keydrill"

// HomeEnv, when set, keeps every keydrill file under one directory instead of
// the XDG locations.
const HomeEnv = "KEYDRILL_HOME"

// Paths lists the files keydrill reads and writes.
type Paths struct {
	ConfigFile  string
	WordListDir string
	DBFile      string
}

// DefaultPaths resolves Paths from KEYDRILL_HOME or the XDG base directories.
// Config and word lists live under the config home, the database under the
// data home.
func DefaultPaths() Paths {
	if home := os.Getenv(HomeEnv); home != "" {
		return Paths{
			ConfigFile:  filepath.Join(home, "config.toml"),
			WordListDir: filepath.Join(home, "wordlists"),
			DBFile:      filepath.Join(home, appName+".db"),
		}
	}
	return Paths{
		ConfigFile:  filepath.Join(xdgHome("XDG_CONFIG_HOME", ".config"), appName, "config.toml"),
		WordListDir: filepath.Join(xdgHome("XDG_CONFIG_HOME", ".config"), appName, "wordlists"),
		DBFile:      filepath.Join(xdgHome("XDG_DATA_HOME", ".local", "share"), appName, appName+".db"),
	}
}

// WordList returns the word list file for lang. Language codes are plain
// names such as "en" or "pt-br"; anything that could leave WordListDir is
// rejected.
func (p Paths) WordList(lang string) (string, error) {
	if lang == "" || lang != filepath.Base(lang) || strings.HasPrefix(lang, ".") {
		return "", fmt.Errorf("invalid language code %q", lang)
	}
	return filepath.Join(p.WordListDir, lang+".txt"), nil
}

// Lines describes the resolved paths for display.
func (p Paths) Lines() []string {
	return []string{
		"config:    " + p.ConfigFile,
		"wordlists: " + p.WordListDir,
		"database:  " + p.DBFile,
	}
}

func xdgHome(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}
