package console

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quizdesk/internal/session"
)

const labelWidth = 16

// View implements tea.Model.
func (m Model) View() string {
	if m.editor.Visible() {
		modal := m.renderEditor()
		if m.width > 0 && m.height > 0 {
			modal = lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, modal)
		}
		return lipgloss.JoinVertical(lipgloss.Left, modal, m.renderStatus(), m.help.View(editorHelp(m.keys)))
	}
	parts := []string{m.renderHeader()}
	if m.loadErr != nil {
		parts = append(parts, m.renderBanner())
	}
	parts = append(parts, m.table.View(), m.renderStatus(), m.help.View(listHelp(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	return stylize(fmt.Sprintf("Questions (%d)", m.store.Len()), m.noColor, lipgloss.Color("33"))
}

func (m Model) renderBanner() string {
	text := "Failed to load questions: " + m.loadErr.Error()
	if m.noColor {
		return "! " + text
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("160")).
		Padding(0, 1).
		Render(text)
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	color := lipgloss.Color("244")
	switch {
	case m.statusLevel >= slog.LevelError:
		color = lipgloss.Color("160")
	case m.statusLevel >= slog.LevelWarn:
		color = lipgloss.Color("214")
	}
	return stylize(m.status, m.noColor, color)
}

func (m Model) renderEditor() string {
	var b strings.Builder
	title := "Edit Question " + m.editor.Session().ID()
	switch m.editor.State() {
	case session.StateSaving:
		title += " (saving...)"
	case session.StateSaveFailed:
		title += " (save failed)"
	}
	b.WriteString(stylize(title, m.noColor, lipgloss.Color("33")))
	b.WriteString("\n\n")

	for i, field := range m.form.fields {
		marker := "  "
		if i == m.form.focus {
			marker = "> "
		}
		label := fmt.Sprintf("%-*s", labelWidth, field.label)
		line := marker + label + " " + field.input.View()
		if field.invalid {
			line += " " + stylize("not a number", m.noColor, lipgloss.Color("160"))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if err := m.editor.Err(); err != nil {
		b.WriteString("\n")
		b.WriteString(stylize("Error: "+truncate(err.Error(), 200), m.noColor, lipgloss.Color("160")))
		b.WriteString("\n")
	}

	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if !m.noColor {
		border = border.BorderForeground(lipgloss.Color("63"))
	}
	return border.Render(strings.TrimRight(b.String(), "\n"))
}
