package riffle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/TimelordUK/riffle/internal/search"
)

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch, modeSearchBack:
		return m.handleSearchKey(msg)
	case modeGoto:
		return m.handleGotoKey(msg)
	case modeMark:
		return m.handleMarkKey(msg)
	case modeJump:
		return m.handleJumpKey(msg)
	}

	// any key clears a transient note
	m.status = ""

	// digits accumulate into a count for the next movement
	if s := msg.String(); len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		m.prefix += s
		return m, nil
	}

	keys := &m.p.opts.Keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m.quit(UserQuit)
	case key.Matches(msg, keys.Down):
		m.vp.ScrollDown(m.takeCount())
	case key.Matches(msg, keys.Up):
		m.vp.ScrollUp(m.takeCount())
		m.follow = false
	case key.Matches(msg, keys.HalfPageDown):
		for i := m.takeCount(); i > 0; i-- {
			m.vp.HalfPageDown()
		}
	case key.Matches(msg, keys.HalfPageUp):
		for i := m.takeCount(); i > 0; i-- {
			m.vp.HalfPageUp()
		}
		m.follow = false
	case key.Matches(msg, keys.PageDown):
		for i := m.takeCount(); i > 0; i-- {
			m.vp.PageDown()
		}
	case key.Matches(msg, keys.PageUp):
		for i := m.takeCount(); i > 0; i-- {
			m.vp.PageUp()
		}
		m.follow = false
	case key.Matches(msg, keys.Top):
		m.vp.GotoTop()
		m.follow = false
	case key.Matches(msg, keys.Bottom):
		// a count turns G into a line jump, as in less
		if n, ok := m.takePrefix(); ok {
			m.gotoLine(n)
		} else {
			m.vp.GotoBottom()
			m.follow = true
		}
	case key.Matches(msg, keys.Search):
		m.startInput(modeSearch)
	case key.Matches(msg, keys.SearchBack):
		m.startInput(modeSearchBack)
	case key.Matches(msg, keys.Goto):
		m.startInput(modeGoto)
	case key.Matches(msg, keys.NextMatch):
		m.stepMatch(m.takeCount(), true)
	case key.Matches(msg, keys.PrevMatch):
		m.stepMatch(m.takeCount(), false)
	case key.Matches(msg, keys.ClearSearch):
		m.clearSearch()
	case key.Matches(msg, keys.ToggleWrap):
		m.lineWrap = !m.lineWrap
		m.rebuild()
	case key.Matches(msg, keys.ToggleNumbers):
		m.lineNumbers = !m.lineNumbers
		m.rebuild()
	case key.Matches(msg, keys.ToggleFollow):
		m.setFollow(!m.follow)
	case key.Matches(msg, keys.Mark):
		m.mode = modeMark
	case key.Matches(msg, keys.JumpMark):
		m.mode = modeJump
	case key.Matches(msg, keys.CopyScreen):
		m.copyVisible()
	}
	m.prefix = ""
	return m, nil
}

// takeCount consumes the numeric prefix, defaulting to one step.
func (m *model) takeCount() int {
	n, ok := m.takePrefix()
	if !ok || n < 1 {
		return 1
	}
	return n
}

// takePrefix consumes the numeric prefix if one was typed.
func (m *model) takePrefix() (int, bool) {
	if m.prefix == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m.prefix)
	m.prefix = ""
	if err != nil {
		return 0, false
	}
	return n, true
}

func (m *model) startInput(mode inputMode) {
	m.mode = mode
	m.input.SetValue("")
	m.input.Focus()
}

func (m *model) closeInput() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
}

func (m *model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		pattern := m.input.Value()
		reverse := m.mode == modeSearchBack
		m.closeInput()
		m.commitSearch(pattern, reverse)
		return m, nil
	case "esc", "ctrl+c":
		m.closeInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		raw := m.input.Value()
		m.closeInput()
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			m.status = fmt.Sprintf("not a line number: %s", raw)
			return m, nil
		}
		m.gotoLine(n)
		return m, nil
	case "esc", "ctrl+c":
		m.closeInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) handleMarkKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	r := singleRune(msg)
	if r < 'a' || r > 'z' {
		return m, nil
	}
	m.marks[r] = m.topLine()
	m.status = fmt.Sprintf("mark %c set", r)
	return m, nil
}

func (m *model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	r := singleRune(msg)
	if r < 'a' || r > 'z' {
		return m, nil
	}
	line, ok := m.marks[r]
	if !ok {
		m.status = fmt.Sprintf("mark %c not set", r)
		return m, nil
	}
	m.vp.GotoLine(m.rowForLine(line))
	m.follow = false
	return m, nil
}

// commitSearch compiles the pattern and jumps to the first match in the
// chosen direction. An invalid pattern leaves the position untouched
// and reports the error inline.
func (m *model) commitSearch(pattern string, reverse bool) {
	if pattern == "" {
		m.clearSearch()
		return
	}
	matcher, err := m.p.opts.Compile(pattern)
	if err != nil {
		m.status = fmt.Sprintf("invalid pattern %q: %v", pattern, err)
		return
	}

	m.matcher = matcher
	m.search = search.New(pattern, reverse)
	m.search.Rescan(m.rows, m.matcher)

	var mt search.Match
	var ok bool
	if reverse {
		mt, ok = m.search.SeekBack(m.vp.Offset())
	} else {
		mt, ok = m.search.SeekFrom(m.vp.Offset())
	}
	if ok {
		m.vp.ScrollTo(mt.Row)
		m.follow = false
	} else {
		m.status = fmt.Sprintf("pattern not found: %s", pattern)
	}
}

// stepMatch moves to the nth following or preceding match. A search
// entered with ? runs in reverse, so n and N swap directions.
func (m *model) stepMatch(n int, forward bool) {
	if m.search == nil {
		return
	}
	if m.search.Reverse {
		forward = !forward
	}
	var mt search.Match
	var ok bool
	for i := 0; i < n; i++ {
		if forward {
			mt, ok = m.search.Next()
		} else {
			mt, ok = m.search.Prev()
		}
	}
	if ok {
		m.vp.ScrollTo(mt.Row)
		m.follow = false
	}
}

// clearSearch drops the active search and its highlight.
func (m *model) clearSearch() {
	m.search = nil
	m.matcher = nil
}

// gotoLine scrolls so the 1-based source line sits at the top.
func (m *model) gotoLine(n int) {
	if len(m.lines) == 0 {
		return
	}
	line := n - 1
	if line < 0 {
		line = 0
	}
	if line >= len(m.lines) {
		line = len(m.lines) - 1
	}
	m.vp.GotoLine(m.rowForLine(line))
	m.follow = false
}

// copyVisible puts the rows on screen into the system clipboard.
func (m *model) copyVisible() {
	lo, hi := m.vp.Visible()
	var b strings.Builder
	for i := lo; i < hi; i++ {
		b.WriteString(m.rows[i].Gutter)
		b.WriteString(ansi.Strip(m.rows[i].Text))
		b.WriteByte('\n')
	}
	if err := clipboard.WriteAll(b.String()); err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("copied %d rows", hi-lo)
}

func singleRune(msg tea.KeyMsg) rune {
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return msg.Runes[0]
	}
	return 0
}
