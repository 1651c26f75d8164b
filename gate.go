package riffle

import (
	"io"
	"strings"

	"github.com/TimelordUK/riffle/internal/wrap"
)

// gate consumes producer messages before the terminal session starts.
// While exit-on-no-overflow is set and the content fits one screen, the
// pager stays out of the terminal; the moment it outgrows the screen
// the accumulated state hands off to the interactive session. It also
// serves as the plain-print path when the output is not a terminal.
type gate struct {
	p      *Pager
	width  int
	height int

	lines       []string
	prompt      string
	lineNumbers bool
	lineWrap    bool
	follow      bool
	exitOnFit   bool
	err         error // last non-fatal producer error
}

func newGate(p *Pager, width, height int) *gate {
	return &gate{
		p:           p,
		width:       width,
		height:      height,
		prompt:      p.opts.Prompt,
		lineNumbers: p.opts.LineNumbers,
		lineWrap:    p.opts.LineWrap,
		follow:      p.opts.Follow,
		exitOnFit:   p.opts.ExitOnNoOverflow,
	}
}

// run consumes messages until the session should go interactive or is
// finished without a terminal. On a terminal it hands off as soon as
// the content overflows one screen or the overflow gate is turned off;
// without one it consumes everything, whatever the flags say.
func (g *gate) run(tty bool) (proceed bool, res Result) {
	for {
		if tty && !g.exitOnFit {
			return true, Result{}
		}
		if tty && !g.fits() {
			return true, Result{}
		}
		msg, ok := g.p.q.Next()
		if !ok {
			return false, Result{Reason: ContentFit, Err: g.err}
		}
		if res, done := g.apply(msg); done {
			return false, res
		}
	}
}

// apply folds one producer message into the accumulated state. It
// reports true when the message ends the session.
func (g *gate) apply(msg any) (Result, bool) {
	switch msg := msg.(type) {
	case appendMsg:
		g.lines = append(g.lines, splitLines(msg.text)...)
	case setTextMsg:
		if msg.text == "" {
			g.lines = nil
		} else {
			g.lines = splitLines(msg.text)
		}
	case promptMsg:
		g.prompt = msg.text
	case statusMsg:
		// transient notes have no place on a static screen
	case lineNumbersMsg:
		g.lineNumbers = msg.on
	case lineWrapMsg:
		g.lineWrap = msg.on
	case followMsg:
		g.follow = msg.on
	case exitOnFitMsg:
		g.exitOnFit = msg.on
	case exitMsg:
		return Result{Reason: ExitRequested, Err: g.err, TrailingDropped: g.p.q.Len()}, true
	case errorMsg:
		g.err = msg.err
		if msg.fatal {
			return Result{Reason: TerminalError, Err: msg.err, TrailingDropped: g.p.q.Len()}, true
		}
	}
	return Result{}, false
}

func (g *gate) fits() bool {
	return wrap.FitsOneScreen(g.lines, g.wrapOpts(), g.height)
}

func (g *gate) wrapOpts() wrap.Options {
	return wrap.Options{
		Width:       g.width,
		Wrap:        g.lineWrap,
		LineNumbers: g.lineNumbers,
		TabWidth:    g.p.opts.TabWidth,
		TotalLines:  len(g.lines),
	}
}

// print writes the accumulated content once. On a terminal the rows are
// formatted the way the interactive screen would have shown them; on
// anything else the lines pass through untouched.
func (g *gate) print(w io.Writer, formatted bool) error {
	var b strings.Builder
	if formatted {
		for _, row := range wrap.Rebuild(g.lines, g.wrapOpts()) {
			b.WriteString(row.Gutter)
			b.WriteString(row.Text)
			b.WriteByte('\n')
		}
	} else {
		for _, line := range g.lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
