package term

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Frame is the render target for one draw pass: a grid of terminal rows
// holding ANSI-styled text. Components fill rectangular regions with
// pre-styled strings; overlapping writes composite on top of earlier
// content, so later draws act as overlays.
type Frame struct {
	area  Rect
	lines []string
}

// NewFrame returns a blank frame of the given dimensions.
func NewFrame(width, height int) *Frame {
	lines := make([]string, height)
	pad := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = pad
	}
	return &Frame{area: Rect{W: width, H: height}, lines: lines}
}

// Area returns the full frame rectangle.
func (f *Frame) Area() Rect { return f.area }

// SetContent places content into region r, clipping to the region and to
// the frame. Content is treated as a line grid; each line is truncated to
// the region width ANSI-aware, so styled text keeps its escape sequences
// intact across the seam.
func (f *Frame) SetContent(r Rect, content string) {
	if r.Empty() {
		return
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if i >= r.H {
			break
		}
		row := r.Y + i
		if row < 0 || row >= len(f.lines) {
			continue
		}
		f.lines[row] = overlayLine(f.lines[row], line, r.X, r.W, f.area.W)
	}
}

// String returns the frame contents with rows joined by newlines.
func (f *Frame) String() string {
	return strings.Join(f.lines, "\n")
}

// Row returns one row of the frame, or "" when out of range.
func (f *Frame) Row(i int) string {
	if i < 0 || i >= len(f.lines) {
		return ""
	}
	return f.lines[i]
}

// overlayLine composites insert over base at column x. The insert is
// clipped to maxWidth columns; base is assumed padded to frameWidth. All
// width arithmetic is ANSI-aware.
func overlayLine(base, insert string, x, maxWidth, frameWidth int) string {
	insert = ansi.Truncate(insert, maxWidth, "")
	insertWidth := ansi.StringWidth(insert)
	if insertWidth == 0 {
		return base
	}

	left := ansi.Truncate(base, x, "")
	if lw := ansi.StringWidth(left); lw < x {
		left += strings.Repeat(" ", x-lw)
	}

	pos := x + insertWidth
	right := ansi.TruncateLeft(base, pos, "")
	if gap := frameWidth - pos - ansi.StringWidth(right); gap > 0 {
		right = strings.Repeat(" ", gap) + right
	}

	return left + insert + right
}
