// Package logview renders the logging ring buffer into the right-hand pane.
//
// The component is stateless: every draw reads the most recent entries from
// internal/logging and styles them by level. It handles no events, holds no
// actions, and persists nothing.
package logview

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"

	"github.com/muurk/tapestry/internal/component"
	"github.com/muurk/tapestry/internal/logging"
	"github.com/muurk/tapestry/internal/term"
)

// Component is the built-in log pane.
type Component struct {
	component.Base
}

// New returns the log pane component.
func New() *Component {
	return &Component{}
}

// Draw implements component.Component.
func (c *Component) Draw(f *term.Frame, area term.Rect) error {
	if area.Empty() {
		return nil
	}
	innerW := area.W - borderStyle.GetHorizontalFrameSize()
	innerH := area.H - borderStyle.GetVerticalFrameSize() - 1 // minus title row
	if innerW <= 0 || innerH <= 0 {
		return fmt.Errorf("log pane area %dx%d too small", area.W, area.H)
	}

	lines := make([]string, 0, innerH+1)
	lines = append(lines, titleStyle.Render("Log"))
	for _, e := range logging.Recent(innerH) {
		line := fmt.Sprintf("%s %s %s",
			timeStyle.Render(e.Time.Format("15:04:05")),
			levelStyle(e.Level).Render(levelLabel(e.Level)),
			e.Message,
		)
		lines = append(lines, ansi.Truncate(line, innerW, "…"))
	}

	f.SetContent(area, renderPane(lines, area))
	return nil
}
