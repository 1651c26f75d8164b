package riffle

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimelordUK/riffle/internal/search"
	"github.com/TimelordUK/riffle/internal/view"
	"github.com/TimelordUK/riffle/internal/wrap"
	"github.com/TimelordUK/riffle/pkg/match"
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeSearch
	modeSearchBack
	modeGoto
	modeMark
	modeJump
)

// model is the single writer of all pager state. Every mutation happens
// inside Update, whether it came from a key press, a resize, or the
// producer queue.
type model struct {
	p *Pager

	lines []string
	rows  []wrap.Row
	fopts wrap.Options

	vp    *view.Viewport
	input textinput.Model
	mode  inputMode

	prompt string
	status string

	lineNumbers bool
	lineWrap    bool
	follow      bool

	marks  map[rune]int // source line index per mark letter
	prefix string       // pending numeric count

	matcher match.Matcher
	search  *search.State

	styles styles

	width  int
	height int

	reason   ExitReason
	err      error
	trailing int
	quitting bool
}

// newModel builds the interactive state from whatever the gate phase
// accumulated. One screen line is reserved for the status bar.
func newModel(p *Pager, g *gate, width, height int) *model {
	ti := textinput.New()
	ti.Prompt = ""

	m := &model{
		p:           p,
		lines:       g.lines,
		vp:          view.NewViewport(width, height-1),
		input:       ti,
		prompt:      g.prompt,
		lineNumbers: g.lineNumbers,
		lineWrap:    g.lineWrap,
		follow:      g.follow,
		marks:       map[rune]int{},
		styles:      newStyles(p.opts.Theme),
		width:       width,
		height:      height,
		err:         g.err,
	}
	m.rebuild()
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.pump(), textinput.Blink)
}

// pump waits for the next producer message. Exactly one pump command is
// outstanding at a time; applyBatch re-arms it after each delivery.
func (m *model) pump() tea.Cmd {
	return func() tea.Msg {
		msg, ok := m.p.q.Next()
		if !ok {
			return queueClosedMsg{}
		}
		return tea.Msg(msg)
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case queueClosedMsg:
		// the producer is done; the session stays up for the user
		return m, nil
	case appendMsg, setTextMsg, promptMsg, statusMsg, lineNumbersMsg,
		lineWrapMsg, followMsg, exitOnFitMsg, exitMsg, errorMsg:
		return m, m.applyBatch(msg)
	}

	if m.mode == modeSearch || m.mode == modeSearchBack || m.mode == modeGoto {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applyBatch applies the delivered message plus whatever else the
// producer has queued up, so a burst of appends costs one redraw.
// Draining stops at an exit request; messages behind it are dropped and
// counted in the result.
func (m *model) applyBatch(first tea.Msg) tea.Cmd {
	msg := any(first)
	for {
		if done := m.apply(msg); done {
			m.trailing = m.p.q.Len()
			return tea.Quit
		}
		var ok bool
		msg, ok = m.p.q.TryNext()
		if !ok {
			return m.pump()
		}
	}
}

// apply folds one producer message into the state. It reports true when
// the message ends the session.
func (m *model) apply(msg any) bool {
	switch msg := msg.(type) {
	case appendMsg:
		m.appendLine(msg.text)
	case setTextMsg:
		if msg.text == "" {
			m.lines = nil
		} else {
			m.lines = splitLines(msg.text)
		}
		m.rebuild()
	case promptMsg:
		m.prompt = msg.text
	case statusMsg:
		m.status = msg.text
	case lineNumbersMsg:
		if m.lineNumbers != msg.on {
			m.lineNumbers = msg.on
			m.rebuild()
		}
	case lineWrapMsg:
		if m.lineWrap != msg.on {
			m.lineWrap = msg.on
			m.rebuild()
		}
	case followMsg:
		m.setFollow(msg.on)
	case exitOnFitMsg:
		// honored only before the terminal session starts
	case exitMsg:
		m.reason = ExitRequested
		m.quitting = true
		return true
	case errorMsg:
		m.err = msg.err
		if msg.fatal {
			m.reason = TerminalError
			m.quitting = true
			return true
		}
		m.status = fmt.Sprintf("error: %v", msg.err)
	}
	return false
}

// appendLine adds freshly arrived lines and formats them incrementally
// when the gutter allows, falling back to a full rebuild when it grows
// a digit.
func (m *model) appendLine(text string) {
	from := len(m.lines)
	m.lines = append(m.lines, splitLines(text)...)

	next := m.wrapOpts()
	if wrap.CanExtend(m.fopts, next) {
		base := len(m.rows)
		m.rows = wrap.Extend(m.rows, m.lines, from, next)
		m.fopts = next
		m.vp.SetTotal(len(m.rows))
		if m.search != nil && m.matcher != nil {
			m.search.Append(search.ScanFrom(m.rows, base, m.matcher))
		}
		if m.follow {
			m.vp.GotoBottom()
		}
		return
	}
	m.rebuild()
}

// rebuild reformats every line, keeping the top of the screen anchored
// on the same source line where it still exists.
func (m *model) rebuild() {
	topLine := 0
	if len(m.rows) > 0 {
		off := m.vp.Offset()
		if off >= len(m.rows) {
			off = len(m.rows) - 1
		}
		topLine = m.rows[off].Line
	}

	m.fopts = m.wrapOpts()
	m.rows = wrap.Rebuild(m.lines, m.fopts)
	m.vp.SetTotal(len(m.rows))
	if topLine > 0 {
		m.vp.GotoLine(m.rowForLine(topLine))
	}
	if m.search != nil && m.matcher != nil {
		m.search.Rescan(m.rows, m.matcher)
	}
	if m.follow {
		m.vp.GotoBottom()
	}
}

// rowForLine returns the first display row of the given source line.
func (m *model) rowForLine(line int) int {
	return sort.Search(len(m.rows), func(i int) bool {
		return m.rows[i].Line >= line
	})
}

// topLine returns the source line index of the top visible row.
func (m *model) topLine() int {
	off := m.vp.Offset()
	if off < len(m.rows) {
		return m.rows[off].Line
	}
	return 0
}

// setFollow toggles follow mode. Turning it on snaps to the bottom;
// turning it off freezes the current offset.
func (m *model) setFollow(on bool) {
	m.follow = on
	if on {
		m.vp.GotoBottom()
	}
}

func (m *model) resize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width = width
	m.height = height
	m.vp.SetSize(width, height-1)
	m.rebuild()
}

func (m *model) wrapOpts() wrap.Options {
	return wrap.Options{
		Width:       m.width,
		Wrap:        m.lineWrap,
		LineNumbers: m.lineNumbers,
		TabWidth:    m.p.opts.TabWidth,
		TotalLines:  len(m.lines),
	}
}

func (m *model) quit(reason ExitReason) (tea.Model, tea.Cmd) {
	m.reason = reason
	m.quitting = true
	m.trailing = m.p.q.Len()
	return m, tea.Quit
}

func (m *model) result() Result {
	return Result{Reason: m.reason, Err: m.err, TrailingDropped: m.trailing}
}

// splitLines turns raw text into buffer lines. A trailing newline does
// not produce a final empty line.
func splitLines(text string) []string {
	if text == "" {
		return []string{""}
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
