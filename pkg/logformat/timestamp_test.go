package logformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadingTimestampFormats(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"2026-08-25T10:30:45Z INFO ready", "2026-08-25T10:30:45Z"},
		{"2026-08-25T10:30:45.123+02:00 ok", "2026-08-25T10:30:45.123+02:00"},
		{"2026-08-25 10:30:45 server started", "2026-08-25 10:30:45"},
		{"[2026-08-25 10:30:45.123] bracketed", "[2026-08-25 10:30:45.123]"},
		{"25/Aug/2026:10:30:45 +0000 GET /", "25/Aug/2026:10:30:45 +0000"},
		{"Aug 25 10:30:45 host sshd[1]: accepted", "Aug 25 10:30:45"},
		{"Aug  5 10:30:45 padded day", "Aug  5 10:30:45"},
		{"10:30:45.123 time only", "10:30:45.123"},
		{"1766655045 unix seconds", "1766655045"},
		{"1766655045123 unix millis", "1766655045123"},
	}
	for _, tc := range cases {
		n := LeadingTimestamp(tc.line)
		assert.Equal(t, tc.want, tc.line[:n], "line %q", tc.line)
	}
}

func TestLeadingTimestampAbsent(t *testing.T) {
	assert.Zero(t, LeadingTimestamp("no timestamp here"))
	assert.Zero(t, LeadingTimestamp(""))
	assert.Zero(t, LeadingTimestamp("error at 10:30:45"), "timestamps mid-line are not a prefix")
	assert.Zero(t, LeadingTimestamp("12345 too short for unix time"))
}
