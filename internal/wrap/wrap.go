// Package wrap turns source lines into display rows for a given screen
// configuration. Wrapping is grapheme-aware and keeps SGR styling alive
// across row boundaries, so a colored line stays colored after a split.
package wrap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
)

const (
	escByte   = 0x1b
	ansiReset = "\x1b[0m"
)

// Row is one display row of the formatted buffer.
type Row struct {
	Gutter string // rendered line-number prefix, empty when numbers are off
	Text   string // wrapped content with escape sequences preserved
	Line   int    // index of the source line this row came from
	First  bool   // true on the first row of its source line
}

// Options captures everything that influences how lines map to rows.
type Options struct {
	Width       int
	Wrap        bool
	LineNumbers bool
	TabWidth    int
	TotalLines  int // sizes the number gutter
}

// GutterWidth returns the total width of the line-number prefix,
// including its trailing space, or zero when numbers are off.
func GutterWidth(o Options) int {
	if !o.LineNumbers {
		return 0
	}
	return digits(o.TotalLines) + 1
}

func digits(n int) int {
	if n < 10 {
		return 1
	}
	return len(strconv.Itoa(n))
}

func contentWidth(o Options) int {
	w := o.Width - GutterWidth(o)
	if w < 1 {
		w = 1
	}
	return w
}

func gutterFor(o Options, line int, first bool) string {
	if !o.LineNumbers {
		return ""
	}
	gw := GutterWidth(o)
	if !first {
		return strings.Repeat(" ", gw)
	}
	return fmt.Sprintf("%*d ", gw-1, line+1)
}

// Rebuild formats every line from scratch.
func Rebuild(lines []string, o Options) []Row {
	rows := make([]Row, 0, len(lines))
	for i, line := range lines {
		rows = appendLine(rows, line, i, o)
	}
	return rows
}

// Extend formats lines[from:] and appends the resulting rows. Existing
// rows must have been built with compatible options, see CanExtend.
func Extend(rows []Row, lines []string, from int, o Options) []Row {
	for i := from; i < len(lines); i++ {
		rows = appendLine(rows, lines[i], i, o)
	}
	return rows
}

// CanExtend reports whether rows built with prev stay valid under next,
// so appended lines can be formatted incrementally. Growing the number
// gutter into another digit column shifts the content width of every
// existing row, which forces a rebuild.
func CanExtend(prev, next Options) bool {
	if prev.Width != next.Width || prev.Wrap != next.Wrap ||
		prev.LineNumbers != next.LineNumbers || prev.TabWidth != next.TabWidth {
		return false
	}
	if next.LineNumbers && digits(prev.TotalLines) != digits(next.TotalLines) {
		return false
	}
	return true
}

// FitsOneScreen reports whether the lines occupy at most height rows.
func FitsOneScreen(lines []string, o Options, height int) bool {
	if !o.Wrap {
		return len(lines) <= height
	}
	cw := contentWidth(o)
	n := 0
	for _, line := range lines {
		n += len(wrapText(line, cw, o.TabWidth))
		if n > height {
			return false
		}
	}
	return true
}

func appendLine(rows []Row, line string, idx int, o Options) []Row {
	cw := contentWidth(o)
	if !o.Wrap {
		return append(rows, Row{
			Gutter: gutterFor(o, idx, true),
			Text:   truncateText(line, cw, o.TabWidth),
			Line:   idx,
			First:  true,
		})
	}
	for i, text := range wrapText(line, cw, o.TabWidth) {
		rows = append(rows, Row{
			Gutter: gutterFor(o, idx, i == 0),
			Text:   text,
			Line:   idx,
			First:  i == 0,
		})
	}
	return rows
}

// wrapText splits one line into rows of at most width columns. Escape
// sequences occupy no columns, and SGR styling open at a row boundary
// is closed with a reset and reopened on the next row. Grapheme
// clusters are never split across rows.
func wrapText(s string, width, tabWidth int) []string {
	if len(s) <= width && !strings.ContainsAny(s, "\t\x1b") {
		return []string{s}
	}
	if tabWidth < 1 {
		tabWidth = 1
	}

	var (
		rows []string
		b    strings.Builder
		col  int
		pen  []string
	)
	flush := func() {
		row := b.String()
		if len(pen) > 0 {
			row += ansiReset
		}
		rows = append(rows, row)
		b.Reset()
		for _, seq := range pen {
			b.WriteString(seq)
		}
		col = 0
	}

	state := -1
	rest := s
	for rest != "" {
		switch {
		case rest[0] == escByte:
			seq, sgr := scanEscape(rest)
			if seq == "" {
				rest = rest[1:]
				continue
			}
			b.WriteString(seq)
			if sgr {
				pen = updatePen(pen, seq)
			}
			rest = rest[len(seq):]
			state = -1
		case rest[0] == '\t':
			n := tabWidth - col%tabWidth
			rest = rest[1:]
			state = -1
			for ; n > 0; n-- {
				if col >= width {
					flush()
				}
				b.WriteByte(' ')
				col++
			}
		default:
			cluster, r, w, st := uniseg.FirstGraphemeClusterInString(rest, state)
			rest, state = r, st
			if w > width {
				w = width
			}
			if col > 0 && col+w > width {
				flush()
			}
			b.WriteString(cluster)
			col += w
		}
	}
	if col > 0 || len(rows) == 0 {
		flush()
	}
	return rows
}

// truncateText chops a line to the content width for no-wrap mode.
func truncateText(s string, width, tabWidth int) string {
	s, styled := expandTabs(s, tabWidth)
	if ansi.StringWidth(s) <= width {
		return s
	}
	out := ansi.Truncate(s, width, "…")
	if styled && !strings.HasSuffix(out, ansiReset) {
		out += ansiReset
	}
	return out
}

func expandTabs(s string, tabWidth int) (string, bool) {
	styled := strings.IndexByte(s, escByte) >= 0
	if strings.IndexByte(s, '\t') < 0 {
		return s, styled
	}
	if tabWidth < 1 {
		tabWidth = 1
	}

	var b strings.Builder
	col := 0
	state := -1
	rest := s
	for rest != "" {
		switch {
		case rest[0] == escByte:
			seq, _ := scanEscape(rest)
			if seq == "" {
				rest = rest[1:]
				continue
			}
			b.WriteString(seq)
			rest = rest[len(seq):]
			state = -1
		case rest[0] == '\t':
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			rest = rest[1:]
			state = -1
		default:
			cluster, r, w, st := uniseg.FirstGraphemeClusterInString(rest, state)
			b.WriteString(cluster)
			col += w
			rest, state = r, st
		}
	}
	return b.String(), styled
}

// scanEscape returns the CSI sequence at the start of s and whether it
// is an SGR sequence. Anything malformed or non-CSI yields "".
func scanEscape(s string) (seq string, sgr bool) {
	if len(s) < 2 || s[1] != '[' {
		return "", false
	}
	for i := 2; i < len(s); i++ {
		c := s[i]
		if c >= 0x40 && c <= 0x7e {
			return s[:i+1], c == 'm'
		}
		if c < 0x20 || c > 0x3f {
			break
		}
	}
	return "", false
}

// updatePen tracks the SGR sequences in effect since the last reset.
func updatePen(pen []string, seq string) []string {
	params := seq[2 : len(seq)-1]
	if params == "" || params == "0" || strings.HasPrefix(params, "0;") {
		pen = pen[:0]
		if params != "" && params != "0" {
			pen = append(pen, seq)
		}
		return pen
	}
	return append(pen, seq)
}
