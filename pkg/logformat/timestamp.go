package logformat

import "regexp"

// Log lines usually open with a timestamp. The patterns cover the
// common layouts, anchored to the line start; first match wins.
var timestampPatterns = []*regexp.Regexp{
	// 2026-08-25T10:30:45.123Z, 2026-08-25 10:30:45,123+02:00
	regexp.MustCompile(`^\[?\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:[.,]\d+)?(?:Z|[+-]\d{2}:?\d{2})?\]?`),
	// 25/Aug/2026:10:30:45 +0000 (access log format)
	regexp.MustCompile(`^\[?\d{2}/[A-Z][a-z]{2}/\d{4}:\d{2}:\d{2}:\d{2} [+-]\d{4}\]?`),
	// Aug 25 10:30:45 (syslog, day padded with a space)
	regexp.MustCompile(`^[A-Z][a-z]{2} {1,2}\d{1,2} \d{2}:\d{2}:\d{2}`),
	// 10:30:45.123 (time only)
	regexp.MustCompile(`^\[?\d{2}:\d{2}:\d{2}(?:[.,]\d+)?\]?`),
	// 1766655045 or 1766655045123 (unix seconds or milliseconds)
	regexp.MustCompile(`^\d{10}(?:\d{3})?\b`),
}

// LeadingTimestamp returns the length of the timestamp prefix on a
// line, including any enclosing brackets, or zero when the line does
// not start with one.
func LeadingTimestamp(line string) int {
	for _, re := range timestampPatterns {
		if loc := re.FindStringIndex(line); loc != nil {
			return loc[1]
		}
	}
	return 0
}
