package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/riffle"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if body == "" {
		return
	}
	cfgDir := filepath.Join(dir, "riffle")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(body), 0644))
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	writeConfig(t, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadReadsFile(t *testing.T) {
	writeConfig(t, `
[display]
show_line_numbers = true
tab_width = 8

[theme]
search_match = "99"

[keybindings]
quit = ["x"]
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Display.ShowLineNumbers)
	assert.Equal(t, 8, cfg.Display.TabWidth)
	assert.Equal(t, "99", cfg.Theme.SearchMatch)

	km := cfg.KeyMap()
	assert.Equal(t, []string{"x"}, km.Quit.Keys())
	assert.Equal(t, riffle.DefaultKeyMap().Down.Keys(), km.Down.Keys(), "unset actions keep their defaults")
}

func TestLoadMalformedFile(t *testing.T) {
	writeConfig(t, "display = not toml at all [")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	writeConfig(t, "")

	cfg := DefaultConfig()
	cfg.Display.TabWidth = 2
	cfg.Keybindings.Search = []string{"s"}
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestColorsFallBackToDefaults(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, riffle.DefaultTheme(), cfg.Colors())

	cfg.Theme.SearchMatch = "201"
	colors := cfg.Colors()
	assert.Equal(t, "201", colors.SearchMatch)
	assert.Equal(t, riffle.DefaultTheme().StatusBar, colors.StatusBar)
}

func TestOptionsApply(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.ShowLineNumbers = true
	cfg.Display.TabWidth = 8

	var o riffle.Options
	for _, opt := range cfg.Options() {
		opt(&o)
	}
	assert.True(t, o.LineNumbers)
	assert.Equal(t, 8, o.TabWidth)
}
