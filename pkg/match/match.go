// Package match defines the pattern-matching capability used by the
// pager's search. The default implementation is backed by the regexp
// package; hosts can supply their own Matcher to swap the engine out.
package match

import (
	"regexp"
	"strings"
)

// Matcher finds every occurrence of a pattern within one row of text.
type Matcher interface {
	// FindAll returns the [start, end) byte spans of all matches in
	// ascending order, or nil when the text does not match.
	FindAll(text string) [][]int
}

// Compiler turns a user-entered pattern into a Matcher.
type Compiler func(pattern string) (Matcher, error)

// Compile builds a regexp-backed Matcher. An invalid pattern is reported
// back to the caller for inline display.
func Compile(pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return regexMatcher{re: re}, nil
}

type regexMatcher struct {
	re *regexp.Regexp
}

func (m regexMatcher) FindAll(text string) [][]int {
	return m.re.FindAllStringIndex(text, -1)
}

// Literal builds a Matcher that looks for exact substring occurrences,
// with no pattern syntax at all.
func Literal(pattern string) Matcher {
	return literalMatcher(pattern)
}

type literalMatcher string

func (m literalMatcher) FindAll(text string) [][]int {
	if m == "" {
		return nil
	}

	var spans [][]int
	off := 0
	for {
		i := strings.Index(text[off:], string(m))
		if i < 0 {
			return spans
		}
		start := off + i
		end := start + len(m)
		spans = append(spans, []int{start, end})
		off = end
	}
}
