package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/riffle/internal/wrap"
	"github.com/TimelordUK/riffle/pkg/match"
)

func buildRows(t *testing.T, lines []string) []wrap.Row {
	t.Helper()
	return wrap.Rebuild(lines, wrap.Options{Width: 80, Wrap: true, TabWidth: 4, TotalLines: len(lines)})
}

func TestScanRowMajorOrder(t *testing.T) {
	rows := buildRows(t, []string{
		"the error log",
		"fine",
		"another error here error twice",
	})

	got := Scan(rows, match.Literal("error"))
	require.Len(t, got, 3)
	assert.Equal(t, Match{Row: 0, Start: 4, End: 9}, got[0])
	assert.Equal(t, Match{Row: 2, Start: 8, End: 13}, got[1])
	assert.Equal(t, Match{Row: 2, Start: 19, End: 24}, got[2])
}

func TestScanStripsStyling(t *testing.T) {
	rows := []wrap.Row{{Text: "\x1b[31merror\x1b[0m", Line: 0, First: true}}

	got := Scan(rows, match.Literal("error"))
	require.Len(t, got, 1)
	assert.Equal(t, Match{Row: 0, Start: 0, End: 5}, got[0])
}

func TestCircularNavigation(t *testing.T) {
	rows := buildRows(t, []string{"ok", "error 1", "fine", "error 2"})
	s := New("error", false)
	s.Matches = Scan(rows, match.Literal("error"))
	require.Len(t, s.Matches, 2)

	m, ok := s.SeekFrom(0)
	require.True(t, ok)
	assert.Equal(t, 1, m.Row)

	m, _ = s.Next()
	assert.Equal(t, 3, m.Row)
	m, _ = s.Next()
	assert.Equal(t, 1, m.Row, "wraps past the last match")
	m, _ = s.Prev()
	assert.Equal(t, 3, m.Row, "wraps past the first match")
}

func TestNextThenPrevIsIdentity(t *testing.T) {
	s := New("x", false)
	s.Matches = []Match{{Row: 1}, {Row: 4}, {Row: 9}}
	s.Cursor = 1

	s.Next()
	m, ok := s.Prev()
	require.True(t, ok)
	assert.Equal(t, 1, s.Cursor)
	assert.Equal(t, 4, m.Row)
}

func TestSeekFromAndBack(t *testing.T) {
	s := New("x", false)
	s.Matches = []Match{{Row: 1}, {Row: 3}}

	m, _ := s.SeekFrom(2)
	assert.Equal(t, 3, m.Row)
	m, _ = s.SeekFrom(4)
	assert.Equal(t, 1, m.Row, "nothing below, wraps to the first match")

	m, _ = s.SeekBack(2)
	assert.Equal(t, 1, m.Row)
	m, _ = s.SeekBack(0)
	assert.Equal(t, 3, m.Row, "nothing above, wraps to the last match")
}

func TestEmptyMatches(t *testing.T) {
	s := New("nope", false)

	_, ok := s.Next()
	assert.False(t, ok)
	_, ok = s.Prev()
	assert.False(t, ok)
	_, ok = s.SeekFrom(0)
	assert.False(t, ok)
	_, ok = s.SeekBack(10)
	assert.False(t, ok)
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestScanFromMatchesFullScan(t *testing.T) {
	first := []string{"error at start", "quiet", "mid error"}
	extra := []string{"still quiet", "late error", "error again"}
	all := append(append([]string{}, first...), extra...)

	opts := wrap.Options{Width: 80, Wrap: true, TabWidth: 4, TotalLines: len(first)}
	rows := wrap.Rebuild(first, opts)
	base := len(rows)

	opts.TotalLines = len(all)
	rows = wrap.Extend(rows, all, len(first), opts)

	m := match.Literal("error")
	s := New("error", false)
	s.Matches = Scan(rows[:base], m)
	s.Append(ScanFrom(rows, base, m))

	assert.Equal(t, Scan(rows, m), s.Matches)
}

func TestRescanClampsCursor(t *testing.T) {
	rows := buildRows(t, []string{"error", "error", "error"})
	m := match.Literal("error")

	s := New("error", false)
	s.Rescan(rows, m)
	s.Cursor = 2

	s.Rescan(rows[:1], m)
	assert.Equal(t, 0, s.Cursor)

	s.Rescan(nil, m)
	assert.Equal(t, -1, s.Cursor)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestPosition(t *testing.T) {
	s := New("x", false)
	s.Matches = []Match{{Row: 1}, {Row: 2}}

	idx, total := s.Position()
	assert.Equal(t, 0, idx)
	assert.Equal(t, 2, total)

	s.Next()
	idx, total = s.Position()
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, total)
}

func TestRescanSameRowsIsIdentical(t *testing.T) {
	rows := buildRows(t, []string{"error a", "quiet", "error b"})
	m := match.Literal("error")

	s := New("error", false)
	s.Rescan(rows, m)
	first := append([]Match{}, s.Matches...)

	s.Rescan(rows, m)
	assert.Equal(t, first, s.Matches, "rescanning unchanged rows changes nothing")
}
