package riffle

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Run starts the pager and blocks until the session ends. The returned
// error is non-nil only when the session failed; the Result always says
// how it ended. Run can be called once per Pager.
func (p *Pager) Run(ctx context.Context) (Result, error) {
	if !p.started.CompareAndSwap(false, true) {
		return Result{}, ErrStarted
	}
	if ctx == nil {
		ctx = context.Background()
	}

	res, err := p.run(ctx)
	p.finish(res)
	close(p.done)
	p.q.Close()
	return res, err
}

func (p *Pager) run(ctx context.Context) (Result, error) {
	out := p.opts.Output
	if out == nil {
		out = os.Stdout
	}

	width, height := p.opts.FallbackWidth, p.opts.FallbackHeight
	tty := false
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		tty = true
		if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
			width, height = w, h
		}
	}

	// A canceled context asks the session to end the same way the
	// producer would, so messages already queued still land first.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			if !p.q.Push(exitMsg{}) {
				p.sendProgram(exitMsg{})
			}
		case <-stop:
		}
	}()

	g := newGate(p, width, height)
	if !tty || p.opts.ExitOnNoOverflow {
		proceed, res := g.run(tty)
		if !proceed {
			if res.Reason != TerminalError {
				if err := g.print(out, tty); err != nil {
					res = Result{Reason: TerminalError, Err: err}
					return res, fmt.Errorf("write output: %w", err)
				}
			}
			if res.Reason == TerminalError {
				return res, res.Err
			}
			return res, nil
		}
	}

	m := newModel(p, g, width, height)
	progOpts := []tea.ProgramOption{tea.WithOutput(out)}
	if p.opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if p.opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(p.opts.Input))
	}

	prog := tea.NewProgram(m, progOpts...)
	p.setProgram(prog)
	p.running.Store(true)
	final, err := prog.Run()
	p.running.Store(false)
	p.setProgram(nil)
	if err != nil {
		res := Result{Reason: TerminalError, Err: err}
		return res, fmt.Errorf("terminal session failed: %w", err)
	}

	fm, ok := final.(*model)
	if !ok {
		return Result{Reason: TerminalError}, fmt.Errorf("terminal session returned unexpected model %T", final)
	}
	res := fm.result()
	if res.Reason == TerminalError {
		return res, res.Err
	}
	return res, nil
}
