package logview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/zapcore"

	"github.com/muurk/tapestry/internal/term"
)

// Pane palette, shared with the tracker component's conventions.
var (
	borderColor = lipgloss.Color("#626262")
	titleColor  = lipgloss.Color("#7D56F4")
	mutedColor  = lipgloss.Color("#626262")
	warnColor   = lipgloss.Color("#FFA500")
	errorColor  = lipgloss.Color("#FF5555")
	infoColor   = lipgloss.Color("#43BF6D")
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(titleColor).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	debugLevelStyle = lipgloss.NewStyle().Foreground(mutedColor)
	infoLevelStyle  = lipgloss.NewStyle().Foreground(infoColor)
	warnLevelStyle  = lipgloss.NewStyle().Foreground(warnColor)
	errorLevelStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
)

func levelStyle(l zapcore.Level) lipgloss.Style {
	switch {
	case l >= zapcore.ErrorLevel:
		return errorLevelStyle
	case l == zapcore.WarnLevel:
		return warnLevelStyle
	case l == zapcore.InfoLevel:
		return infoLevelStyle
	default:
		return debugLevelStyle
	}
}

func levelLabel(l zapcore.Level) string {
	return strings.ToUpper(l.String())[:4]
}

// renderPane wraps the pane lines in the shared border sized to area.
func renderPane(lines []string, area term.Rect) string {
	content := strings.Join(lines, "\n")
	return borderStyle.
		Width(area.W - borderStyle.GetHorizontalFrameSize()).
		Height(area.H - borderStyle.GetVerticalFrameSize()).
		Render(content)
}
