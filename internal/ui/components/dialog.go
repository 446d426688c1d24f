package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var dialogHintStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#9aa5a0"))

// DetailDialog renders a titled overlay of label/value rows with a close hint.
func DetailDialog(title string, rows []TableRow, width int) string {
	sections := make([]string, 0, 2)
	if len(rows) > 0 {
		sections = append(sections, TableBody(rows, BoxContentWidth(width)))
	} else {
		sections = append(sections, dialogHintStyle.Render("Sin datos."))
	}
	sections = append(sections, dialogHintStyle.Render("esc/enter: cerrar"))
	return ActiveTitledBox(title, strings.Join(sections, "\n\n"), width)
}
