package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Practice.Lang)
	assert.Nil(t, cfg.Metrics.File)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigPractice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[practice]
lang = "de"
words = 40
layout = "qwerty-de"
min-accuracy = 0.95
count-ignored-input = false

[metrics]
file = "/tmp/keydrill.prom"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Practice.Lang)
	assert.Equal(t, "de", *cfg.Practice.Lang)
	assert.Equal(t, 40, *cfg.Practice.Words)
	assert.Equal(t, "qwerty-de", *cfg.Practice.Layout)
	assert.Equal(t, 0.95, *cfg.Practice.MinAccuracy)
	assert.False(t, *cfg.Practice.CountIgnoredInput)
	assert.Nil(t, cfg.Practice.CapsPct)
	assert.Equal(t, "/tmp/keydrill.prom", *cfg.Metrics.File)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[practice\nlang = "), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv(HomeEnv, "")
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	p := DefaultPaths()
	assert.Equal(t, filepath.Join("/cfg", "keydrill", "config.toml"), p.ConfigFile)
	assert.Equal(t, filepath.Join("/data", "keydrill", "keydrill.db"), p.DBFile)

	path, err := p.WordList("en")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/cfg", "keydrill", "wordlists", "en.txt"), path)
}

func TestDefaultPathsHomeOverride(t *testing.T) {
	t.Setenv(HomeEnv, "/portable")
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	p := DefaultPaths()
	assert.Equal(t, Paths{
		ConfigFile:  filepath.Join("/portable", "config.toml"),
		WordListDir: filepath.Join("/portable", "wordlists"),
		DBFile:      filepath.Join("/portable", "keydrill.db"),
	}, p)
	assert.Equal(t, "database:  "+p.DBFile, p.Lines()[2])
}

func TestWordListRejectsPaths(t *testing.T) {
	p := Paths{WordListDir: "/w"}
	for _, lang := range []string{"", "../en", "a/b", ".hidden"} {
		_, err := p.WordList(lang)
		assert.Error(t, err, lang)
	}
	path, err := p.WordList("pt-br")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/w", "pt-br.txt"), path)
}
