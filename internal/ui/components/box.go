package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

var (
	boxBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2b3a33")).
			Padding(1, 2)

	boxBorderActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#f2c230")).
			Padding(1, 2)

	boxHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f2c230")).
			Bold(true)

	boxMutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9aa5a0"))

	boxValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#dfe4e1"))

	boxLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3d8fb8")).
			Bold(true)

	errorBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7a2f3a")).
			Padding(1, 2)

	errorHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e06c75")).
				Bold(true)

	errorBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d6b5b5"))
)

func boxWidth(width int) int {
	// ~80% of terminal width, kept between 40 and 100 columns
	if width <= 0 {
		return 0
	}
	w := width * 80 / 100
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

// safeBoxWidth is the lipgloss Width for a box on a terminal of the given
// width. The border is drawn outside Width, so it is left out of the budget.
func safeBoxWidth(width int) int {
	if width <= 0 {
		return boxWidth(width)
	}
	w := boxWidth(width)
	if limit := width - boxBorder.GetHorizontalBorderSize(); w > limit {
		w = limit
	}
	if w < 1 {
		w = 1
	}
	return w
}

// Box renders content inside a bordered box.
func Box(content string, width int) string {
	return boxBorder.Width(safeBoxWidth(width)).Render(content)
}

// BoxContentWidth returns the inner content width excluding border and padding.
func BoxContentWidth(width int) int {
	w := safeBoxWidth(width)
	if w <= 0 {
		return 0
	}
	inner := w - boxBorder.GetHorizontalPadding()
	if inner < 0 {
		return 0
	}
	return inner
}

// ClampTextWidth truncates text to the given visual width.
func ClampTextWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	cleaned := SanitizeOneLine(text)
	if lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	if width == 1 {
		return "…"
	}
	return truncateRunes(cleaned, width-1) + "…"
}

// ActiveBox renders content inside a highlighted bordered box.
func ActiveBox(content string, width int) string {
	return boxBorderActive.Width(safeBoxWidth(width)).Render(content)
}

// ErrorBox renders a red bordered box for errors.
func ErrorBox(title, message string, width int) string {
	header := ""
	if title != "" {
		header = errorHeaderStyle.Render(title) + "\n\n"
	}
	body := errorBodyStyle.Render(message)
	return errorBorder.Width(safeBoxWidth(width)).Render(header + body)
}

// TitledBox renders a box with the title set into the top border.
func TitledBox(title, content string, width int) string {
	return titledBoxWithStyle(title, content, width, boxBorder, boxHeaderStyle, lipgloss.Color("#2b3a33"))
}

// ActiveTitledBox is TitledBox with the highlighted border.
func ActiveTitledBox(title, content string, width int) string {
	return titledBoxWithStyle(title, content, width, boxBorderActive, boxHeaderStyle, lipgloss.Color("#f2c230"))
}

func titledBoxWithStyle(title, content string, width int, boxStyle, headerStyle lipgloss.Style, borderColor lipgloss.Color) string {
	if title == "" {
		return boxStyle.Width(safeBoxWidth(width)).Render(content)
	}
	boxed := boxStyle.Width(safeBoxWidth(width)).Render(content)
	lines := strings.Split(boxed, "\n")
	if len(lines) == 0 {
		return boxed
	}

	lineWidth := lipgloss.Width(lines[0])
	if lineWidth < 4 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	middleLen := lineWidth - 2
	titleText := fmt.Sprintf(" [ %s ] ", SanitizeOneLine(title))
	if lipgloss.Width(titleText) > middleLen {
		titleText = truncateRunes(titleText, middleLen)
	}

	titleWidth := lipgloss.Width(titleText)
	left := (middleLen - titleWidth) / 2
	if left < 0 {
		left = 0
	}
	right := middleLen - titleWidth - left
	if right < 0 {
		right = 0
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	leftSeg := borderStyle.Render(border.TopLeft + strings.Repeat(border.Top, left))
	rightSeg := borderStyle.Render(strings.Repeat(border.Top, right) + border.TopRight)
	line := leftSeg + headerStyle.Render(titleText) + rightSeg
	if w := lipgloss.Width(line); w < lineWidth {
		line += borderStyle.Render(strings.Repeat(border.Top, lineWidth-w))
	}

	lines[0] = line
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	var b strings.Builder
	b.Grow(max)
	n := 0
	for _, r := range s {
		if n >= max {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// InfoRow renders a label: value row for detail views.
func InfoRow(label, value string) string {
	safeLabel := SanitizeOneLine(label)
	safeValue := SanitizeOneLine(value)
	return boxMutedStyle.Render(safeLabel+": ") + boxValueStyle.Render(safeValue)
}

// TableRow is a single row in a key-value table.
type TableRow struct {
	Label string
	Value string
}

// TableBody renders aligned label/value lines fitted to contentWidth. Long
// values are clamped to one line.
func TableBody(rows []TableRow, contentWidth int) string {
	if len(rows) == 0 {
		return ""
	}

	maxLabel := 0
	safeRows := make([]TableRow, len(rows))
	for i, r := range rows {
		safeRows[i] = TableRow{
			Label: SanitizeOneLine(r.Label),
			Value: SanitizeOneLine(r.Value),
		}
		if w := lipgloss.Width(safeRows[i].Label); w > maxLabel {
			maxLabel = w
		}
	}

	if contentWidth <= 0 {
		contentWidth = maxLabel + 40
	}

	labelWidth := maxLabel
	if labelWidth > 28 {
		labelWidth = 28
	}
	if maxLabelWidth := contentWidth / 2; maxLabelWidth >= 8 && labelWidth > maxLabelWidth {
		labelWidth = maxLabelWidth
	}
	if labelWidth < 4 {
		labelWidth = maxInt(maxLabel, 1)
	}
	valueWidth := contentWidth - labelWidth - 2
	if valueWidth < 4 {
		valueWidth = 4
		labelWidth = maxInt(4, contentWidth-valueWidth-2)
	}

	lines := make([]string, 0, len(safeRows))
	for _, r := range safeRows {
		labelText := ClampTextWidth(r.Label, labelWidth)
		valueText := ClampTextWidth(r.Value, valueWidth)
		label := boxLabelStyle.Render(padRight(labelText, labelWidth))
		lines = append(lines, label+"  "+boxValueStyle.Render(valueText))
	}
	return strings.Join(lines, "\n")
}

// Table renders a key-value table with aligned columns inside a bordered box.
func Table(title string, rows []TableRow, width int) string {
	if len(rows) == 0 {
		return ""
	}
	body := TableBody(rows, BoxContentWidth(width))
	if title != "" {
		return TitledBox(title, body, width)
	}
	return Box(body, width)
}

// Indent adds left padding to every line of a multi-line string.
func Indent(s string, spaces int) string {
	pad := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
