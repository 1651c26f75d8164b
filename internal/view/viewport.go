// Package view tracks which window of display rows is on screen.
package view

// Viewport clamps a scroll offset against a row count. It knows nothing
// about lines, wrapping, or styling.
type Viewport struct {
	width  int
	height int
	total  int
	offset int
}

// NewViewport creates a viewport with the given dimensions.
func NewViewport(width, height int) *Viewport {
	return &Viewport{width: width, height: height}
}

// SetSize updates viewport dimensions.
func (v *Viewport) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.clampScroll()
}

// SetTotal updates the number of rows behind the viewport.
func (v *Viewport) SetTotal(total int) {
	v.total = total
	v.clampScroll()
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	return v.height
}

// Offset returns the index of the top visible row.
func (v *Viewport) Offset() int {
	return v.offset
}

// ScrollDown scrolls down by n rows.
func (v *Viewport) ScrollDown(n int) {
	v.offset += n
	v.clampScroll()
}

// ScrollUp scrolls up by n rows.
func (v *Viewport) ScrollUp(n int) {
	v.offset -= n
	v.clampScroll()
}

// PageDown scrolls down by one page, keeping a row of context.
func (v *Viewport) PageDown() {
	v.ScrollDown(pageStep(v.height))
}

// PageUp scrolls up by one page, keeping a row of context.
func (v *Viewport) PageUp() {
	v.ScrollUp(pageStep(v.height))
}

// HalfPageDown scrolls down by half a page.
func (v *Viewport) HalfPageDown() {
	v.ScrollDown(halfStep(v.height))
}

// HalfPageUp scrolls up by half a page.
func (v *Viewport) HalfPageUp() {
	v.ScrollUp(halfStep(v.height))
}

// GotoTop scrolls to the beginning.
func (v *Viewport) GotoTop() {
	v.offset = 0
}

// GotoBottom scrolls to the end.
func (v *Viewport) GotoBottom() {
	v.offset = v.total - v.height
	v.clampScroll()
}

// GotoLine scrolls so the given row is at the top.
func (v *Viewport) GotoLine(row int) {
	v.offset = row
	v.clampScroll()
}

// ScrollTo scrolls so the given row sits near the middle of the screen.
func (v *Viewport) ScrollTo(row int) {
	v.offset = row - (v.height-1)/2
	v.clampScroll()
}

// AtBottom reports whether the last row is on screen.
func (v *Viewport) AtBottom() bool {
	return v.offset >= v.maxScroll()
}

// Visible returns the half-open row range [lo, hi) currently on screen.
func (v *Viewport) Visible() (lo, hi int) {
	lo = v.offset
	hi = v.offset + v.height
	if hi > v.total {
		hi = v.total
	}
	return lo, hi
}

// PercentScrolled returns how far through the content we are.
func (v *Viewport) PercentScrolled() float64 {
	if v.total == 0 {
		return 0
	}
	if v.total <= v.height {
		return 100
	}
	return float64(v.offset) / float64(v.total-v.height) * 100
}

// clampScroll ensures the scroll offset is within valid bounds.
func (v *Viewport) clampScroll() {
	max := v.maxScroll()
	if v.offset > max {
		v.offset = max
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

func (v *Viewport) maxScroll() int {
	max := v.total - v.height
	if max < 0 {
		max = 0
	}
	return max
}

func pageStep(height int) int {
	if height <= 1 {
		return 1
	}
	return height - 1
}

func halfStep(height int) int {
	if height <= 2 {
		return 1
	}
	return height / 2
}
