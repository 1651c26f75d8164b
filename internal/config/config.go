// Package config loads and saves the pager's TOML configuration file.
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/pelletier/go-toml/v2"

	"github.com/TimelordUK/riffle"
)

// Config holds all application configuration
type Config struct {
	Theme       ThemeConfig      `toml:"theme"`
	Keybindings KeybindingConfig `toml:"keybindings"`
	Display     DisplayConfig    `toml:"display"`
}

// ThemeConfig defines the pager colors
type ThemeConfig struct {
	Name          string `toml:"name"`
	LineNumbers   string `toml:"line_numbers"`
	StatusBar     string `toml:"status_bar"`
	StatusBarText string `toml:"status_bar_text"`
	SearchMatch   string `toml:"search_match"`
}

// KeybindingConfig allows customizing keybindings. An empty list keeps
// the default binding for that action.
type KeybindingConfig struct {
	Quit          []string `toml:"quit"`
	ScrollUp      []string `toml:"scroll_up"`
	ScrollDown    []string `toml:"scroll_down"`
	HalfPageUp    []string `toml:"half_page_up"`
	HalfPageDown  []string `toml:"half_page_down"`
	PageUp        []string `toml:"page_up"`
	PageDown      []string `toml:"page_down"`
	Top           []string `toml:"top"`
	Bottom        []string `toml:"bottom"`
	Search        []string `toml:"search"`
	SearchBack    []string `toml:"search_back"`
	NextMatch     []string `toml:"next_match"`
	PrevMatch     []string `toml:"prev_match"`
	ClearSearch   []string `toml:"clear_search"`
	Goto          []string `toml:"goto"`
	ToggleWrap    []string `toml:"toggle_wrap"`
	ToggleNumbers []string `toml:"toggle_numbers"`
	ToggleFollow  []string `toml:"toggle_follow"`
	Mark          []string `toml:"mark"`
	JumpMark      []string `toml:"jump_mark"`
	CopyScreen    []string `toml:"copy_screen"`
}

// DisplayConfig holds display options
type DisplayConfig struct {
	ShowLineNumbers bool `toml:"show_line_numbers"`
	TabWidth        int  `toml:"tab_width"`
	WrapLines       bool `toml:"wrap_lines"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	theme := riffle.DefaultTheme()
	return &Config{
		Theme: ThemeConfig{
			Name:          "subtle",
			LineNumbers:   theme.LineNumber,
			StatusBar:     theme.StatusBar,
			StatusBarText: theme.StatusBarText,
			SearchMatch:   theme.SearchMatch,
		},
		Display: DisplayConfig{
			ShowLineNumbers: false,
			TabWidth:        4,
			WrapLines:       true,
		},
	}
}

// Load loads config from file, falling back to defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := getConfigPath()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves config to file
func Save(cfg *Config) error {
	configPath := getConfigPath()
	if configPath == "" {
		return nil
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Options converts the file configuration into pager options.
func (c *Config) Options() []riffle.Option {
	return []riffle.Option{
		riffle.WithLineNumbers(c.Display.ShowLineNumbers),
		riffle.WithLineWrap(c.Display.WrapLines),
		riffle.WithTabWidth(c.Display.TabWidth),
		riffle.WithTheme(c.Colors()),
		riffle.WithKeyMap(c.KeyMap()),
	}
}

// Colors builds the pager theme, keeping defaults for unset values.
func (c *Config) Colors() riffle.Theme {
	t := riffle.DefaultTheme()
	if c.Theme.StatusBar != "" {
		t.StatusBar = c.Theme.StatusBar
	}
	if c.Theme.StatusBarText != "" {
		t.StatusBarText = c.Theme.StatusBarText
	}
	if c.Theme.LineNumbers != "" {
		t.LineNumber = c.Theme.LineNumbers
	}
	if c.Theme.SearchMatch != "" {
		t.SearchMatch = c.Theme.SearchMatch
	}
	return t
}

// KeyMap builds the pager bindings, keeping defaults for any action the
// file leaves unset.
func (c *Config) KeyMap() riffle.KeyMap {
	km := riffle.DefaultKeyMap()
	bind := func(b *key.Binding, keys []string) {
		if len(keys) > 0 {
			b.SetKeys(keys...)
		}
	}
	bind(&km.Quit, c.Keybindings.Quit)
	bind(&km.Up, c.Keybindings.ScrollUp)
	bind(&km.Down, c.Keybindings.ScrollDown)
	bind(&km.HalfPageUp, c.Keybindings.HalfPageUp)
	bind(&km.HalfPageDown, c.Keybindings.HalfPageDown)
	bind(&km.PageUp, c.Keybindings.PageUp)
	bind(&km.PageDown, c.Keybindings.PageDown)
	bind(&km.Top, c.Keybindings.Top)
	bind(&km.Bottom, c.Keybindings.Bottom)
	bind(&km.Search, c.Keybindings.Search)
	bind(&km.SearchBack, c.Keybindings.SearchBack)
	bind(&km.NextMatch, c.Keybindings.NextMatch)
	bind(&km.PrevMatch, c.Keybindings.PrevMatch)
	bind(&km.ClearSearch, c.Keybindings.ClearSearch)
	bind(&km.Goto, c.Keybindings.Goto)
	bind(&km.ToggleWrap, c.Keybindings.ToggleWrap)
	bind(&km.ToggleNumbers, c.Keybindings.ToggleNumbers)
	bind(&km.ToggleFollow, c.Keybindings.ToggleFollow)
	bind(&km.Mark, c.Keybindings.Mark)
	bind(&km.JumpMark, c.Keybindings.JumpMark)
	bind(&km.CopyScreen, c.Keybindings.CopyScreen)
	return km
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "riffle", "config.toml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "riffle", "config.toml")
}

// GetConfigPath exports the config path for user reference
func GetConfigPath() string {
	return getConfigPath()
}
