package riffle

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/TimelordUK/riffle/internal/search"
)

// styles holds the prebuilt lipgloss styles for the pager chrome.
type styles struct {
	lineNumber lipgloss.Style
	statusBar  lipgloss.Style
	matchLine  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		lineNumber: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.LineNumber)),
		statusBar: lipgloss.NewStyle().
			Background(lipgloss.Color(t.StatusBar)).
			Foreground(lipgloss.Color(t.StatusBarText)),
		matchLine: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.SearchMatch)).
			Bold(true),
	}
}

// View renders the visible rows plus the status line. The row holding
// the active match is re-styled whole, replacing any colors the content
// brought along.
func (m *model) View() string {
	if m.quitting {
		return ""
	}

	var cur search.Match
	hasCur := false
	if m.search != nil {
		cur, hasCur = m.search.Current()
	}

	var b strings.Builder
	lo, hi := m.vp.Visible()
	for i := lo; i < hi; i++ {
		row := m.rows[i]
		if row.Gutter != "" {
			b.WriteString(m.styles.lineNumber.Render(row.Gutter))
		}
		if hasCur && cur.Row == i {
			b.WriteString(m.styles.matchLine.Render(ansi.Strip(row.Text)))
		} else {
			b.WriteString(row.Text)
		}
		b.WriteByte('\n')
	}
	for i := hi - lo; i < m.vp.Height(); i++ {
		b.WriteString("~\n")
	}

	// the status line is the last screen line and carries no newline,
	// otherwise the terminal scrolls
	b.WriteString(m.statusLine())
	return b.String()
}

// statusLine renders the bottom chrome. Input modes take the line over;
// otherwise the prompt or a transient note sits left and the position
// indicator right.
func (m *model) statusLine() string {
	var left string
	switch m.mode {
	case modeSearch:
		left = "/" + m.input.View()
	case modeSearchBack:
		left = "?" + m.input.View()
	case modeGoto:
		left = ":" + m.input.View()
	case modeMark:
		left = "set mark: "
	case modeJump:
		left = "go to mark: "
	default:
		left = m.prompt
		if m.status != "" {
			left = m.status
		}
	}

	right := ""
	if m.mode == modeNormal {
		right = m.positionInfo()
		if m.prefix != "" {
			right = m.prefix + "  " + right
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := " " + left + strings.Repeat(" ", gap) + right + " "
	if lipgloss.Width(line) > m.width {
		line = ansi.Truncate(line, m.width, "")
	}
	return m.styles.statusBar.Width(m.width).Render(line)
}

// positionInfo summarizes where the screen sits in the content.
func (m *model) positionInfo() string {
	total := len(m.lines)
	if total == 0 {
		return "(empty)"
	}

	info := fmt.Sprintf("L%d/%d  %.0f%%", m.topLine()+1, total, m.vp.PercentScrolled())
	if m.search != nil {
		idx, n := m.search.Position()
		switch {
		case n == 0:
			info = "no matches  " + info
		case idx == 0:
			info = fmt.Sprintf("%d matches  %s", n, info)
		default:
			info = fmt.Sprintf("match %d/%d  %s", idx, n, info)
		}
	}
	if m.follow {
		info = "F  " + info
	}
	return info
}
