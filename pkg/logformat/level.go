// Package logformat colors log lines by severity. It covers files
// that have no syntax lexer but follow the usual logging conventions,
// with levels detected from tokens such as "[WARN]" or "ERROR".
package logformat

import "strings"

// Level is a detected log severity
type Level int

const (
	LevelUnknown Level = iota
	LevelTrace
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String returns the lowercase level name
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Detector matches severity tokens in line content
type Detector struct {
	patterns map[Level][]string
}

// NewDetector builds a detector from explicit token lists per level
func NewDetector(patterns map[Level][]string) *Detector {
	return &Detector{patterns: patterns}
}

// DefaultDetector recognizes the common bracketed and bare tokens
// emitted by most logging libraries
func DefaultDetector() *Detector {
	return NewDetector(map[Level][]string{
		LevelTrace: {"[TRC]", "[TRACE]", "TRACE", "TRC"},
		LevelDebug: {"[DBG]", "[DEBUG]", "DEBUG", "DBG"},
		LevelInfo:  {"[INF]", "[INFO]", "INFO", "INF"},
		LevelWarn:  {"[WRN]", "[WARN]", "[WARNING]", "WARN", "WRN", "WARNING"},
		LevelError: {"[ERR]", "[ERROR]", "ERROR", "ERR"},
		LevelFatal: {"[FTL]", "[FATAL]", "FATAL", "FTL", "[CRIT]", "CRITICAL"},
	})
}

// Detect returns the severity of a line, checking the most urgent
// levels first so "FATAL ERROR" classifies as fatal
func (d *Detector) Detect(line string) Level {
	for _, level := range []Level{LevelFatal, LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace} {
		for _, pattern := range d.patterns[level] {
			if strings.Contains(line, pattern) {
				return level
			}
		}
	}
	return LevelUnknown
}
