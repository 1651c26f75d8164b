// Package riffle is an embeddable terminal pager. A producer feeds it
// text while the user scrolls, searches, and resizes, and neither side
// ever blocks the other: producer calls append to an unbounded ordered
// queue, and a single event loop applies them between key presses.
//
// The zero-fuss entry points are PageString and PageReader. For
// streaming content, create a Pager, start Run in one goroutine, and
// drive the producer methods from any number of others:
//
//	p := riffle.New(riffle.WithPrompt("build log"))
//	go func() {
//		for line := range lines {
//			p.AppendLine(line)
//		}
//		p.Close()
//	}()
//	res, err := p.Run(ctx)
package riffle

import (
	"strings"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimelordUK/riffle/internal/queue"
)

// Pager is the handle shared between the producing side and the screen
// session. All methods are safe for concurrent use.
type Pager struct {
	opts Options
	q    *queue.Queue

	fragMu sync.Mutex
	frag   strings.Builder

	started atomic.Bool
	running atomic.Bool
	done    chan struct{}

	resMu  sync.Mutex
	res    Result
	hasRes bool

	progMu sync.Mutex
	prog   *tea.Program
}

// New creates a pager. Nothing happens until Run is called; messages
// sent before that are queued and applied in order once it starts.
func New(opts ...Option) *Pager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pager{
		opts: o,
		q:    queue.New(),
		done: make(chan struct{}),
	}
}

// AppendText adds text to the buffer. Input is split on newlines; a
// trailing piece without one is held back until a later append, Flush,
// or Close completes the line.
func (p *Pager) AppendText(text string) error {
	if text == "" {
		return nil
	}
	if p.q.Closed() {
		return ErrClosed
	}
	p.fragMu.Lock()
	defer p.fragMu.Unlock()

	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimSuffix(text[:i], "\r")
		text = text[i+1:]
		if p.frag.Len() > 0 {
			line = p.frag.String() + line
			p.frag.Reset()
		}
		if err := p.send(appendMsg{text: line}); err != nil {
			return err
		}
	}
	if text != "" {
		p.frag.WriteString(text)
	}
	return nil
}

// AppendLine adds one line to the buffer, completing any buffered
// fragment first. The text needs no trailing newline; embedded newlines
// split it into multiple lines.
func (p *Pager) AppendLine(text string) error {
	return p.AppendText(text + "\n")
}

// Flush completes a buffered fragment as its own line.
func (p *Pager) Flush() error {
	p.fragMu.Lock()
	defer p.fragMu.Unlock()
	return p.flushLocked()
}

func (p *Pager) flushLocked() error {
	if p.frag.Len() == 0 {
		return nil
	}
	line := p.frag.String()
	p.frag.Reset()
	return p.send(appendMsg{text: line})
}

// SetText replaces the whole buffer. Any buffered fragment is dropped,
// and an empty string clears the screen.
func (p *Pager) SetText(text string) error {
	p.fragMu.Lock()
	p.frag.Reset()
	p.fragMu.Unlock()
	return p.send(setTextMsg{text: text})
}

// SetPrompt changes the status line prompt.
func (p *Pager) SetPrompt(text string) error {
	return p.send(promptMsg{text: firstLine(text)})
}

// Message shows a transient note on the status line. The next key press
// clears it, as does sending an empty message.
func (p *Pager) Message(text string) error {
	return p.send(statusMsg{text: firstLine(text)})
}

// SetLineNumbers toggles the line-number gutter.
func (p *Pager) SetLineNumbers(on bool) error {
	return p.send(lineNumbersMsg{on: on})
}

// SetLineWrap toggles between wrapping long lines and chopping them.
func (p *Pager) SetLineWrap(on bool) error {
	return p.send(lineWrapMsg{on: on})
}

// SetFollow toggles follow mode. While on, the newest line is kept on
// screen as content arrives; scrolling up turns it off.
func (p *Pager) SetFollow(on bool) error {
	return p.send(followMsg{on: on})
}

// SetExitOnNoOverflow changes the exit-on-no-overflow flag. It has an
// effect only while the pager has not yet taken over the terminal.
func (p *Pager) SetExitOnNoOverflow(on bool) error {
	return p.send(exitOnFitMsg{on: on})
}

// SendError surfaces a producer-side problem on the status line and in
// the final Result. The session keeps running; use Fail for errors the
// session cannot outlive.
func (p *Pager) SendError(err error) error {
	return p.send(errorMsg{err: err})
}

// Fail ends the session with the given error. Messages queued ahead of
// it are still applied.
func (p *Pager) Fail(err error) error {
	return p.send(errorMsg{err: err, fatal: true})
}

// End asks the session to finish. Messages queued ahead of it are still
// applied; anything queued behind it is dropped and counted in the
// Result. The user does not get to keep the screen.
func (p *Pager) End() error {
	p.fragMu.Lock()
	err := p.flushLocked()
	p.fragMu.Unlock()
	if err != nil {
		return err
	}
	return p.send(exitMsg{})
}

// Close flushes any buffered fragment and closes the channel: the
// producer is done. Unlike End, an interactive session stays on screen
// until the user quits. Close is safe to call more than once.
func (p *Pager) Close() error {
	p.fragMu.Lock()
	err := p.flushLocked()
	p.fragMu.Unlock()
	p.q.Close()
	if err == ErrClosed {
		return nil
	}
	return err
}

func (p *Pager) send(msg any) error {
	if !p.q.Push(msg) {
		return ErrClosed
	}
	return nil
}

// Running reports whether the interactive session is on screen.
func (p *Pager) Running() bool {
	return p.running.Load()
}

// Done returns a channel that is closed once the session has ended.
func (p *Pager) Done() <-chan struct{} {
	return p.done
}

// Result returns the session outcome. It is meaningful only after the
// Done channel is closed.
func (p *Pager) Result() Result {
	p.resMu.Lock()
	defer p.resMu.Unlock()
	return p.res
}

func (p *Pager) finish(res Result) {
	p.resMu.Lock()
	if !p.hasRes {
		p.res = res
		p.hasRes = true
	}
	p.resMu.Unlock()
}

func (p *Pager) setProgram(prog *tea.Program) {
	p.progMu.Lock()
	p.prog = prog
	p.progMu.Unlock()
}

// sendProgram hands a message straight to the running terminal program,
// for the rare case where the queue is already closed.
func (p *Pager) sendProgram(msg tea.Msg) {
	p.progMu.Lock()
	prog := p.prog
	p.progMu.Unlock()
	if prog != nil {
		prog.Send(msg)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
