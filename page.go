package riffle

import (
	"bufio"
	"context"
	"io"
)

// PageString pages a fixed string. The channel is closed before the
// session starts, so with WithExitOnNoOverflow the content prints
// straight through when it fits one screen.
func PageString(ctx context.Context, text string, opts ...Option) (Result, error) {
	p := New(opts...)
	if err := p.AppendText(text); err != nil {
		return Result{}, err
	}
	if err := p.Close(); err != nil {
		return Result{}, err
	}
	return p.Run(ctx)
}

// PageReader pages everything read from r, feeding lines to the session
// while it is already on screen. Reading stops at the first read error;
// plain EOF just closes the channel and the session stays up until the
// user quits.
func PageReader(ctx context.Context, r io.Reader, opts ...Option) (Result, error) {
	p := New(opts...)
	go func() {
		defer p.Close()
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				if aerr := p.AppendText(line); aerr != nil {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return p.Run(ctx)
}
