package riffle

import "errors"

// ExitReason reports why a pager session ended.
type ExitReason int

const (
	// UserQuit means the user pressed a quit key.
	UserQuit ExitReason = iota
	// ExitRequested means the producer asked the session to end.
	ExitRequested
	// ContentFit means the content never outgrew one screen, so the
	// pager printed it and finished without taking over the terminal.
	ContentFit
	// TerminalError means the session ended because of an error, either
	// from the terminal itself or because the producer called Fail.
	TerminalError
)

// String returns a short human-readable name for the reason.
func (r ExitReason) String() string {
	switch r {
	case UserQuit:
		return "user quit"
	case ExitRequested:
		return "exit requested"
	case ContentFit:
		return "content fit"
	case TerminalError:
		return "terminal error"
	default:
		return "unknown"
	}
}

// Result describes how a pager session ended.
type Result struct {
	Reason ExitReason

	// Err carries the fatal error when Reason is TerminalError, or the
	// last non-fatal error the producer reported with SendError.
	Err error

	// TrailingDropped counts producer messages that were still queued
	// when the session ended and so never reached the screen.
	TrailingDropped int
}

var (
	// ErrClosed is returned when sending to a pager after Close.
	ErrClosed = errors.New("riffle: pager is closed")

	// ErrStarted is returned when a pager is run a second time.
	ErrStarted = errors.New("riffle: pager already started")
)
