// Package search scans formatted rows for pattern matches and tracks
// which match is active.
package search

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/TimelordUK/riffle/internal/wrap"
	"github.com/TimelordUK/riffle/pkg/match"
)

// Match locates one pattern hit in the row buffer. Offsets index into
// the stripped row text, without its gutter or escape sequences.
type Match struct {
	Row   int
	Start int
	End   int
}

// State holds the results of the active search.
type State struct {
	Pattern string
	Reverse bool // entered with ?, flips the n/N direction
	Matches []Match
	Cursor  int // index into Matches, -1 before the first jump
}

// New starts an empty search state for a pattern.
func New(pattern string, reverse bool) *State {
	return &State{Pattern: pattern, Reverse: reverse, Cursor: -1}
}

// Scan finds every match in the rows, top to bottom, left to right.
func Scan(rows []wrap.Row, m match.Matcher) []Match {
	return ScanFrom(rows, 0, m)
}

// ScanFrom finds every match in rows[base:]. Freshly appended rows can
// be picked up this way without rescanning the whole buffer.
func ScanFrom(rows []wrap.Row, base int, m match.Matcher) []Match {
	var out []Match
	for i := base; i < len(rows); i++ {
		for _, span := range m.FindAll(ansi.Strip(rows[i].Text)) {
			out = append(out, Match{Row: i, Start: span[0], End: span[1]})
		}
	}
	return out
}

// Append merges matches found in freshly appended rows.
func (s *State) Append(found []Match) {
	s.Matches = append(s.Matches, found...)
}

// Rescan recomputes all matches after the rows were rebuilt. The cursor
// keeps its ordinal position when possible.
func (s *State) Rescan(rows []wrap.Row, m match.Matcher) {
	s.Matches = Scan(rows, m)
	if s.Cursor >= len(s.Matches) {
		s.Cursor = len(s.Matches) - 1
	}
}

// Next advances to the following match, wrapping past the last one.
func (s *State) Next() (Match, bool) {
	if len(s.Matches) == 0 {
		return Match{}, false
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	} else {
		s.Cursor = (s.Cursor + 1) % len(s.Matches)
	}
	return s.Matches[s.Cursor], true
}

// Prev steps back to the preceding match, wrapping past the first one.
func (s *State) Prev() (Match, bool) {
	if len(s.Matches) == 0 {
		return Match{}, false
	}
	if s.Cursor < 0 {
		s.Cursor = len(s.Matches) - 1
	} else {
		s.Cursor = (s.Cursor - 1 + len(s.Matches)) % len(s.Matches)
	}
	return s.Matches[s.Cursor], true
}

// SeekFrom activates the first match at or below the given row, or the
// first match overall when everything sits above it.
func (s *State) SeekFrom(row int) (Match, bool) {
	if len(s.Matches) == 0 {
		return Match{}, false
	}
	for i, m := range s.Matches {
		if m.Row >= row {
			s.Cursor = i
			return m, true
		}
	}
	s.Cursor = 0
	return s.Matches[0], true
}

// SeekBack activates the last match at or above the given row, or the
// last match overall when everything sits below it.
func (s *State) SeekBack(row int) (Match, bool) {
	if len(s.Matches) == 0 {
		return Match{}, false
	}
	for i := len(s.Matches) - 1; i >= 0; i-- {
		if s.Matches[i].Row <= row {
			s.Cursor = i
			return s.Matches[i], true
		}
	}
	s.Cursor = len(s.Matches) - 1
	return s.Matches[s.Cursor], true
}

// Current returns the active match, if any.
func (s *State) Current() (Match, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Matches) {
		return Match{}, false
	}
	return s.Matches[s.Cursor], true
}

// Position returns the 1-based index of the active match and the total
// match count, for the status line.
func (s *State) Position() (int, int) {
	return s.Cursor + 1, len(s.Matches)
}
