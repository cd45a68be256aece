package console

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"quizdesk/internal/question"
)

// defaultColumns mirrors the question grid: id, text, scores, location and notes.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Question Text", Width: 40},
		{Title: "Complexity", Width: 10},
		{Title: "Correct Answer", Width: 14},
		{Title: "Chapter", Width: 7},
		{Title: "Page", Width: 5},
		{Title: "Reference", Width: 16},
		{Title: "Explanation", Width: 30},
	}
}

// columnsForWidth gives spare width to the text and explanation columns.
func columnsForWidth(width int) []table.Column {
	columns := defaultColumns()
	fixed := 0
	for _, column := range columns {
		// table cells carry one column of padding on each side
		fixed += column.Width + 2
	}
	spare := width - fixed
	if spare <= 0 {
		return columns
	}
	columns[1].Width += spare * 2 / 3
	columns[7].Width += spare - spare*2/3
	return columns
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Selected = styles.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		return styles
	}
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Foreground(lipgloss.Color("252"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	return styles
}

// rowsForQuestions converts store rows into table rows, one per record.
func rowsForQuestions(questions []question.Question) []table.Row {
	rows := make([]table.Row, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, table.Row{
			q.ID,
			singleLine(q.Text),
			strconv.Itoa(q.Complexity),
			strconv.Itoa(q.CorrectAnswer),
			strconv.Itoa(q.Chapter),
			strconv.Itoa(q.Page),
			singleLine(q.ReferenceText()),
			singleLine(q.Explanation),
		})
	}
	return rows
}
