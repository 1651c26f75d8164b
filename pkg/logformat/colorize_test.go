package logformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorizerPassesPlainLinesThrough(t *testing.T) {
	c := NewColorizer(DefaultDetector(), DefaultPalette())
	assert.Equal(t, "just some output", c.Line("just some output"))
	assert.Equal(t, "", c.Line(""))
}

func TestColorizerKeepsContentIntact(t *testing.T) {
	c := NewColorizer(DefaultDetector(), DefaultPalette())

	in := "2026-08-25 10:00:01 ERROR disk failure"
	out := c.Line(in)
	assert.Contains(t, out, "2026-08-25 10:00:01")
	assert.Contains(t, out, " ERROR disk failure")

	in = "[WARN] no timestamp on this one"
	assert.Contains(t, c.Line(in), in)
}
