// Package highlight applies syntax highlighting to lines of text on
// their way into a pager, using chroma's terminal formatter.
package highlight

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
)

// DefaultTheme is the chroma style used when none is configured.
const DefaultTheme = "monokai"

// Highlighter colors lines for one language. The zero value passes
// lines through unchanged.
type Highlighter struct {
	lexerName string
	theme     string
}

// ForFile picks a lexer from the filename. Files chroma does not
// recognize, and plain text, get a passthrough highlighter.
func ForFile(filename, theme string) *Highlighter {
	lexer := lexers.Match(filename)
	if lexer == nil || lexer.Config().Name == "plaintext" {
		return None()
	}
	return &Highlighter{lexerName: lexer.Config().Name, theme: themeOr(theme)}
}

// ForLanguage picks a lexer by name, e.g. "go" or "json". Unknown
// names get a passthrough highlighter.
func ForLanguage(lang, theme string) *Highlighter {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return None()
	}
	return &Highlighter{lexerName: lexer.Config().Name, theme: themeOr(theme)}
}

// None returns a highlighter that passes lines through unchanged
func None() *Highlighter {
	return &Highlighter{}
}

// Active reports whether lines will actually be colored
func (h *Highlighter) Active() bool {
	return h.lexerName != ""
}

// Language returns the matched lexer name, or "" for passthrough
func (h *Highlighter) Language() string {
	return h.lexerName
}

// Line highlights a single line. The input must not contain newlines.
// On any highlighting error the line is returned unchanged.
func (h *Highlighter) Line(content string) string {
	if h.lexerName == "" || content == "" {
		return content
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, content, h.lexerName, "terminal16m", h.theme); err != nil {
		return content
	}

	// The formatter terminates its output with a newline
	out := buf.String()
	out = strings.ReplaceAll(out, "\n", "")
	return strings.ReplaceAll(out, "\r", "")
}

func themeOr(theme string) string {
	if theme == "" {
		return DefaultTheme
	}
	return theme
}
