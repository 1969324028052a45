package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/muurk/tapestry/internal/term"
)

var (
	stripStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#303030")).
			PaddingLeft(1)

	stripTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Background(lipgloss.Color("#303030"))
)

// Draw implements component.Component: an overlay strip pinned to the
// bottom of the main region.
func (c *Component) Draw(f *term.Frame, area term.Rect) error {
	if area.Empty() || len(c.recent) == 0 {
		return nil
	}
	rows := len(c.recent)
	if rows > area.H {
		rows = area.H
	}

	lines := make([]string, 0, rows)
	for _, m := range c.recent[len(c.recent)-rows:] {
		line := fmt.Sprintf("%s %s",
			stripTimeStyle.Render(m.At.Format("15:04:05")),
			m.Text,
		)
		line = ansi.Truncate(line, area.W-1, "…")
		lines = append(lines, stripStyle.Width(area.W).Render(line))
	}

	strip := term.Rect{X: area.X, Y: area.Y + area.H - rows, W: area.W, H: rows}
	f.SetContent(strip, strings.Join(lines, "\n"))
	return nil
}
