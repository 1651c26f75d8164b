package logformat

import "github.com/charmbracelet/lipgloss"

// Palette holds one terminal color per severity, as ANSI-256 codes or
// hex strings. Timestamp colors the leading timestamp, when one is
// recognized, independently of the line's severity.
type Palette struct {
	Trace     string
	Debug     string
	Info      string
	Warn      string
	Error     string
	Fatal     string
	Timestamp string
}

// DefaultPalette keeps quiet levels in grays and escalates through
// orange to red, with timestamps dimmed out of the way
func DefaultPalette() Palette {
	return Palette{
		Trace:     "240",
		Debug:     "244",
		Info:      "250",
		Warn:      "214",
		Error:     "167",
		Fatal:     "196",
		Timestamp: "242",
	}
}

// Colorizer styles whole lines by their detected severity
type Colorizer struct {
	detector *Detector
	styles   map[Level]lipgloss.Style
	stamp    lipgloss.Style
}

// NewColorizer pairs a detector with a palette
func NewColorizer(d *Detector, p Palette) *Colorizer {
	return &Colorizer{
		detector: d,
		styles: map[Level]lipgloss.Style{
			LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Trace)),
			LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Debug)),
			LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Info)),
			LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warn)),
			LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),
			LevelFatal: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Fatal)),
		},
		stamp: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Timestamp)),
	}
}

// Line returns the line styled for its severity, with any leading
// timestamp dimmed. Lines with neither pass through unchanged.
func (c *Colorizer) Line(content string) string {
	level := c.detector.Detect(content)
	n := LeadingTimestamp(content)
	if level == LevelUnknown && n == 0 {
		return content
	}

	rest := content[n:]
	if level != LevelUnknown {
		rest = c.styles[level].Render(rest)
	}
	if n == 0 {
		return rest
	}
	return c.stamp.Render(content[:n]) + rest
}
