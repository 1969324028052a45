package tracker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/muurk/tapestry/internal/term"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true).
			PaddingLeft(1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Strikethrough(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#43BF6D")).
			PaddingLeft(1)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			PaddingLeft(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			PaddingLeft(1)
)

const keyHints = "j/k move · space toggle · n new · d delete · ctrl+q quit"

// Draw implements component.Component.
func (c *Component) Draw(f *term.Frame, area term.Rect) error {
	if area.Empty() {
		return nil
	}
	if area.H < 3 {
		return fmt.Errorf("tracker area %dx%d too small", area.W, area.H)
	}

	lines := make([]string, 0, area.H)
	lines = append(lines, titleStyle.Render(fmt.Sprintf("Tasks (%d)", len(c.tasks))))

	listHeight := area.H - 3 // title, status, hints
	if len(c.tasks) == 0 {
		lines = append(lines, hintStyle.Render("no tasks yet - press n"))
	}
	for i, t := range c.tasks {
		if i >= listHeight {
			break
		}
		marker := "[ ]"
		title := t.Title
		if t.Done {
			marker = "[x]"
			title = doneStyle.Render(title)
		}
		row := fmt.Sprintf("  %s %s", marker, title)
		if i == c.cursor {
			row = cursorStyle.Render(">") + row[1:]
		}
		lines = append(lines, ansi.Truncate(row, area.W, "…"))
	}

	// Pin status and hints to the bottom of the region.
	for len(lines) < area.H-2 {
		lines = append(lines, "")
	}
	if c.lastErr != "" {
		lines = append(lines, errStyle.Render(ansi.Truncate("error: "+c.lastErr, area.W-1, "…")))
	} else {
		lines = append(lines, statusStyle.Render(ansi.Truncate(c.status, area.W-1, "…")))
	}
	lines = append(lines, hintStyle.Render(ansi.Truncate(keyHints, area.W-1, "…")))

	f.SetContent(area, strings.Join(lines[:area.H], "\n"))
	return nil
}
