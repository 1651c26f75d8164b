package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimelordUK/riffle"
	"github.com/TimelordUK/riffle/internal/config"
	"github.com/TimelordUK/riffle/internal/source"
	"github.com/TimelordUK/riffle/pkg/highlight"
	"github.com/TimelordUK/riffle/pkg/logformat"
)

var (
	followFlag  = flag.Bool("f", false, "Follow the file as it grows (like tail -f)")
	numbersFlag = flag.Bool("n", false, "Show line numbers")
	chopFlag    = flag.Bool("S", false, "Chop long lines instead of wrapping")
	quitFitFlag = flag.Bool("F", false, "Print and exit when content fits one screen")
	rangeFlag   = flag.String("r", "", "Page only lines START-END, 1-based ($ means end of file)")
	promptFlag  = flag.String("p", "", "Status line prompt (defaults to the file name)")
	langFlag    = flag.String("lang", "", "Syntax highlight as this language")
	themeFlag   = flag.String("theme", "", "Chroma style for syntax highlighting")
	plainFlag   = flag.Bool("no-color", false, "Disable syntax and log-level coloring")
	inlineFlag  = flag.Bool("no-alt", false, "Render inline instead of on the alternate screen")
	debugFlag   = flag.String("debug", "", "Write terminal debug logs to this file")
)

// liner decorates one line of content on its way into the pager
type liner interface {
	Line(string) string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: riffle [options] [file]\n")
		fmt.Fprintf(os.Stderr, "Pages a file, or stdin when no file is given.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *debugFlag != "" {
		f, err := tea.LogToFile(*debugFlag, "riffle")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "riffle: %v, using defaults\n", err)
		cfg = config.DefaultConfig()
	}

	opts := cfg.Options()
	if *numbersFlag {
		opts = append(opts, riffle.WithLineNumbers(true))
	}
	if *chopFlag {
		opts = append(opts, riffle.WithLineWrap(false))
	}
	if *followFlag {
		opts = append(opts, riffle.WithFollow(true))
	}
	if *quitFitFlag {
		opts = append(opts, riffle.WithExitOnNoOverflow(true))
	}
	if *inlineFlag {
		opts = append(opts, riffle.WithAltScreen(false))
	}

	syntaxTheme := *themeFlag
	if syntaxTheme == "" {
		syntaxTheme = cfg.Theme.Name
	}

	if flag.NArg() >= 1 {
		path := flag.Arg(0)
		return pageFile(path, decoratorFor(path, syntaxTheme), opts)
	}
	return pageStdin(decoratorFor("", syntaxTheme), opts)
}

// decoratorFor picks how lines are colored: an explicit language wins,
// then filename-based syntax detection, then log-level coloring for
// files that look like logs.
func decoratorFor(path, theme string) liner {
	switch {
	case *plainFlag:
		return highlight.None()
	case *langFlag != "":
		return highlight.ForLanguage(*langFlag, theme)
	case path != "":
		if h := highlight.ForFile(path, theme); h.Active() {
			return h
		}
		if isLogFile(path) {
			return logformat.NewColorizer(logformat.DefaultDetector(), logformat.DefaultPalette())
		}
		return highlight.None()
	default:
		return highlight.None()
	}
}

func isLogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".log", ".out", ".err":
		return true
	}
	return false
}

func pageFile(path string, style liner, opts []riffle.Option) error {
	if *rangeFlag != "" && *followFlag {
		return fmt.Errorf("-r cannot be combined with -f")
	}

	src, err := source.NewFileSource(path)
	if err != nil {
		return err
	}
	defer src.Close()

	opts = append(opts, riffle.WithPrompt(filepath.Base(path)))
	if *promptFlag != "" {
		opts = append(opts, riffle.WithPrompt(*promptFlag))
	}
	p := riffle.New(opts...)

	switch {
	case *followFlag:
		fed := completeLines(src)
		if err := feed(p, src, style, 0, fed); err != nil {
			return err
		}
		go tail(p, src, style, fed)
	case *rangeFlag != "":
		from, to, err := parseRange(*rangeFlag, src.LineCount())
		if err != nil {
			return err
		}
		if err := feed(p, src, style, from, to); err != nil {
			return err
		}
		p.Close()
	default:
		if err := feed(p, src, style, 0, src.LineCount()); err != nil {
			return err
		}
		p.Close()
	}

	_, err = p.Run(context.Background())
	return err
}

// parseRange turns "100-200" or "100-$" into 0-based bounds [from, to)
// clamped to the file
func parseRange(spec string, lineCount int) (int, int, error) {
	lo, hi, ok := strings.Cut(spec, "-")
	if !ok {
		return 0, 0, fmt.Errorf("bad range %q, want START-END", spec)
	}

	from, err := strconv.Atoi(lo)
	if err != nil || from < 1 {
		return 0, 0, fmt.Errorf("bad range start %q", lo)
	}

	to := lineCount
	if hi != "$" {
		to, err = strconv.Atoi(hi)
		if err != nil || to < from {
			return 0, 0, fmt.Errorf("bad range end %q", hi)
		}
	}
	if to > lineCount {
		to = lineCount
	}
	if from > to {
		return 0, 0, fmt.Errorf("range %q starts past the end of the file", spec)
	}
	return from - 1, to, nil
}

func pageStdin(style liner, opts []riffle.Option) error {
	// Content arrives on stdin, so keystrokes must come from the
	// terminal directly. Without one (fully scripted input) the pager
	// falls back to printing.
	if tty, err := os.Open("/dev/tty"); err == nil {
		defer tty.Close()
		opts = append(opts, riffle.WithInput(tty))
	}

	opts = append(opts, riffle.WithPrompt("(stdin)"))
	if *promptFlag != "" {
		opts = append(opts, riffle.WithPrompt(*promptFlag))
	}
	p := riffle.New(opts...)

	go func() {
		defer p.Close()
		r := bufio.NewReader(os.Stdin)
		for {
			line, err := r.ReadString('\n')
			if line != "" {
				text := strings.TrimSuffix(line, "\n")
				if p.AppendLine(style.Line(text)) != nil {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	_, err := p.Run(context.Background())
	return err
}

// feed pushes source lines [from, to) into the pager
func feed(p *riffle.Pager, src *source.FileSource, style liner, from, to int) error {
	for i := from; i < to; i++ {
		line, err := src.Line(i)
		if err != nil {
			return err
		}
		if err := p.AppendLine(style.Line(string(line))); err != nil {
			return err
		}
	}
	return nil
}

// tail polls the file for growth and feeds new complete lines until
// the pager session ends.
func tail(p *riffle.Pager, src *source.FileSource, style liner, fed int) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-p.Done():
			return
		case <-ticker.C:
			if _, err := src.Refresh(); err != nil {
				p.SendError(fmt.Errorf("follow %s: %w", src.Path(), err))
				return
			}
			to := completeLines(src)
			if to <= fed {
				continue
			}
			if err := feed(p, src, style, fed, to); err != nil {
				return
			}
			fed = to
		}
	}
}

// completeLines counts the lines that have been terminated. A final
// line still missing its newline is held back so it is not shown
// half-written while the file grows.
func completeLines(src *source.FileSource) int {
	n := src.LineCount()
	if n > 0 && !src.EndsWithNewline() {
		n--
	}
	return n
}
