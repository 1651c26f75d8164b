// Package source provides indexed line access to content being paged,
// built for files that may keep growing while they are displayed.
package source

// LineSource is the read side a feeder pulls lines from.
type LineSource interface {
	// LineCount returns the number of lines currently indexed
	LineCount() int

	// Line returns the line at n (0-based) without its trailing newline
	Line(n int) ([]byte, error)

	// Lines returns up to count lines starting at start
	Lines(start, count int) ([][]byte, error)
}
