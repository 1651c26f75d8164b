package riffle

import (
	"io"

	"github.com/charmbracelet/bubbles/key"

	"github.com/TimelordUK/riffle/pkg/match"
)

// Option configures a Pager before it runs.
type Option func(*Options)

// Options collects everything configurable about a pager session.
// Zero values are filled in by New; use the With functions.
type Options struct {
	// Output receives the session. When it is not a terminal the pager
	// prints the content once instead of going interactive.
	Output io.Writer

	// Input overrides where key presses are read from. Useful when
	// stdin carries the content and keys must come from the tty.
	Input io.Reader

	// Prompt is the initial status line text, usually a name for the
	// content being paged.
	Prompt string

	LineNumbers bool
	LineWrap    bool
	Follow      bool

	// ExitOnNoOverflow makes the session print and finish, without
	// entering the terminal UI, if the content never outgrows one
	// screen before the producer closes the channel.
	ExitOnNoOverflow bool

	// AltScreen runs the session on the terminal's alternate screen.
	AltScreen bool

	TabWidth int

	Keys  KeyMap
	Theme Theme

	// Compile turns search patterns into matchers. Defaults to the
	// regexp engine; see the match package.
	Compile match.Compiler

	// FallbackWidth and FallbackHeight size the screen when the output
	// is not a terminal.
	FallbackWidth  int
	FallbackHeight int
}

func defaultOptions() Options {
	return Options{
		LineWrap:       true,
		AltScreen:      true,
		TabWidth:       4,
		Keys:           DefaultKeyMap(),
		Theme:          DefaultTheme(),
		Compile:        match.Compile,
		FallbackWidth:  80,
		FallbackHeight: 24,
	}
}

// WithOutput sets the writer the session renders to.
func WithOutput(w io.Writer) Option {
	return func(o *Options) { o.Output = w }
}

// WithInput sets the reader key presses are read from.
func WithInput(r io.Reader) Option {
	return func(o *Options) { o.Input = r }
}

// WithPrompt sets the initial status line text.
func WithPrompt(text string) Option {
	return func(o *Options) { o.Prompt = text }
}

// WithLineNumbers starts the session with the line-number gutter on.
func WithLineNumbers(on bool) Option {
	return func(o *Options) { o.LineNumbers = on }
}

// WithLineWrap controls whether long lines wrap or get chopped.
func WithLineWrap(on bool) Option {
	return func(o *Options) { o.LineWrap = on }
}

// WithFollow starts the session glued to the newest line.
func WithFollow(on bool) Option {
	return func(o *Options) { o.Follow = on }
}

// WithExitOnNoOverflow prints and finishes when the content fits one
// screen, instead of going interactive.
func WithExitOnNoOverflow(on bool) Option {
	return func(o *Options) { o.ExitOnNoOverflow = on }
}

// WithAltScreen controls use of the terminal's alternate screen.
func WithAltScreen(on bool) Option {
	return func(o *Options) { o.AltScreen = on }
}

// WithTabWidth sets the number of columns per tab stop.
func WithTabWidth(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.TabWidth = n
		}
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(km KeyMap) Option {
	return func(o *Options) { o.Keys = km }
}

// WithTheme replaces the default colors.
func WithTheme(t Theme) Option {
	return func(o *Options) { o.Theme = t }
}

// WithMatchCompiler replaces the search engine. The compiler receives
// the raw pattern the user typed.
func WithMatchCompiler(c match.Compiler) Option {
	return func(o *Options) {
		if c != nil {
			o.Compile = c
		}
	}
}

// WithFallbackSize sets the screen dimensions assumed when the output
// is not a terminal.
func WithFallbackSize(width, height int) Option {
	return func(o *Options) {
		if width > 0 {
			o.FallbackWidth = width
		}
		if height > 0 {
			o.FallbackHeight = height
		}
	}
}

// KeyMap defines the key bindings for every pager action.
type KeyMap struct {
	Quit          key.Binding
	Down          key.Binding
	Up            key.Binding
	HalfPageDown  key.Binding
	HalfPageUp    key.Binding
	PageDown      key.Binding
	PageUp        key.Binding
	Top           key.Binding
	Bottom        key.Binding
	Search        key.Binding
	SearchBack    key.Binding
	NextMatch     key.Binding
	PrevMatch     key.Binding
	ClearSearch   key.Binding
	Goto          key.Binding
	ToggleWrap    key.Binding
	ToggleNumbers key.Binding
	ToggleFollow  key.Binding
	Mark          key.Binding
	JumpMark      key.Binding
	CopyScreen    key.Binding
}

// DefaultKeyMap returns bindings in the tradition of less and vi.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Down:          key.NewBinding(key.WithKeys("j", "down", "enter"), key.WithHelp("j", "down")),
		Up:            key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		HalfPageDown:  key.NewBinding(key.WithKeys("d", "ctrl+d"), key.WithHelp("d", "half page down")),
		HalfPageUp:    key.NewBinding(key.WithKeys("u", "ctrl+u"), key.WithHelp("u", "half page up")),
		PageDown:      key.NewBinding(key.WithKeys("f", "pgdown", " ", "ctrl+f"), key.WithHelp("f", "page down")),
		PageUp:        key.NewBinding(key.WithKeys("b", "pgup", "ctrl+b"), key.WithHelp("b", "page up")),
		Top:           key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:        key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		SearchBack:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "search back")),
		NextMatch:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		PrevMatch:     key.NewBinding(key.WithKeys("N", "p"), key.WithHelp("N", "prev match")),
		ClearSearch:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Goto:          key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "go to line")),
		ToggleWrap:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "toggle wrap")),
		ToggleNumbers: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "toggle numbers")),
		ToggleFollow:  key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "follow")),
		Mark:          key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "set mark")),
		JumpMark:      key.NewBinding(key.WithKeys("'"), key.WithHelp("'", "go to mark")),
		CopyScreen:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy screen")),
	}
}

// Theme sets the colors of the pager chrome. Values are terminal color
// numbers or hex strings, anything lipgloss understands.
type Theme struct {
	StatusBar     string
	StatusBarText string
	LineNumber    string
	SearchMatch   string
}

// DefaultTheme is a dim 256-color palette.
func DefaultTheme() Theme {
	return Theme{
		StatusBar:     "236",
		StatusBarText: "252",
		LineNumber:    "240",
		SearchMatch:   "226",
	}
}
