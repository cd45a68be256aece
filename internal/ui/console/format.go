package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// singleLine collapses whitespace so multi-line text fits a table cell.
func singleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// truncate shortens text to limit runes, marking the cut with an ellipsis.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
