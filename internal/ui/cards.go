package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/secop-lookup/internal/results"
	"github.com/gravitrone/secop-lookup/internal/ui/components"
)

const idleResultsHint = "Escribe una consulta y presiona enter."

// showResults replaces the results area with rs.
func (a *App) showResults(rs results.ResultSet) {
	a.current = &rs
	a.page = results.Render(rs)
	a.title = rs.Title
	a.cards.Reset(len(a.page.Cards))
	a.action = 0
	a.syncViewport()
}

// clearResults empties the results area.
func (a *App) clearResults() {
	a.current = nil
	a.page = results.Page{}
	a.title = ""
	a.cards.Reset(0)
	a.action = 0
	if a.focus == focusResults {
		a.focusInput(focusQuery)
	}
	a.syncViewport()
}

// selectedCard returns the card under the cursor.
func (a App) selectedCard() (results.Card, bool) {
	idx := a.cards.Selected()
	if idx < 0 || idx >= len(a.page.Cards) {
		return results.Card{}, false
	}
	return a.page.Cards[idx], true
}

// selectedAction returns the highlighted action of the selected card.
func (a App) selectedAction() (results.Action, bool) {
	card, ok := a.selectedCard()
	if !ok {
		return results.Action{}, false
	}
	actions := card.Actions()
	if a.action < 0 || a.action >= len(actions) {
		return results.Action{}, false
	}
	return actions[a.action], true
}

// renderResultsBody draws every card and returns the first line of each.
func (a App) renderResultsBody() (string, []int) {
	width := a.contentWidth()
	if a.current == nil {
		if a.state.Busy {
			return MutedStyle.Render(a.state.StatusText), nil
		}
		return MutedStyle.Render(idleResultsHint), nil
	}
	if a.page.Empty {
		return MutedStyle.Render(a.page.Placeholder), nil
	}

	blocks := make([]string, 0, len(a.page.Cards))
	offsets := make([]int, 0, len(a.page.Cards))
	line := 0
	for i, card := range a.page.Cards {
		selected := a.focus == focusResults && a.cards.IsSelected(i)
		action := -1
		if a.cards.IsSelected(i) {
			action = a.action
		}
		block := renderCard(card, selected, action, width)
		offsets = append(offsets, line)
		line += lipgloss.Height(block) + 1
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n"), offsets
}

func renderCard(card results.Card, selected bool, action int, width int) string {
	var b strings.Builder
	b.WriteString(NormalStyle.Bold(true).Render(components.SanitizeOneLine(card.Heading)))
	b.WriteString("\n")

	status := MutedStyle.Render("—")
	if card.Status != "" {
		status = toneStyle(card.Tone).Render(components.SanitizeOneLine(card.Status))
	}
	b.WriteString(MutedStyle.Render(components.SanitizeOneLine(card.Entity)+results.Separator) + status)

	rows := make([]components.TableRow, 0, len(card.Fields))
	for _, f := range card.Fields {
		value := f.Text
		if f.NIT != nil {
			value = f.NIT.Label + "  ↗ " + f.NIT.RegistryURL
		}
		rows = append(rows, components.TableRow{Label: f.Key, Value: value})
	}
	if len(rows) > 0 {
		b.WriteString("\n\n")
		b.WriteString(components.TableBody(rows, components.BoxContentWidth(width)))
	}

	if actions := card.Actions(); len(actions) > 0 {
		b.WriteString("\n\n")
		b.WriteString(renderActions(actions, selected, action))
	}

	title := fmt.Sprintf("#%d", card.Index)
	if selected {
		return components.ActiveTitledBox(title, b.String(), width)
	}
	return components.TitledBox(title, b.String(), width)
}

func renderActions(actions []results.Action, selected bool, active int) string {
	parts := make([]string, 0, len(actions))
	for i, act := range actions {
		label := "[" + components.SanitizeOneLine(act.Label) + "]"
		if selected && i == active {
			parts = append(parts, ActionActiveStyle.Render(label))
			continue
		}
		if act.IsLink() {
			parts = append(parts, LinkStyle.Render(label))
		} else {
			parts = append(parts, ActionStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, " "))
}

// syncViewport re-renders the results into the viewport and scrolls the
// selected card into view.
func (a *App) syncViewport() {
	a.viewport.Width = a.contentWidth()
	a.viewport.Height = a.resultsHeight()

	body, offsets := a.renderResultsBody()
	a.viewport.SetContent(body)

	idx := a.cards.Selected()
	if idx < 0 || idx >= len(offsets) {
		a.viewport.GotoTop()
		return
	}
	start := offsets[idx]
	end := lipgloss.Height(body)
	if idx+1 < len(offsets) {
		end = offsets[idx+1] - 1
	}
	switch {
	case start < a.viewport.YOffset:
		a.viewport.SetYOffset(start)
	case end > a.viewport.YOffset+a.viewport.Height:
		target := end - a.viewport.Height
		if target > start {
			target = start
		}
		a.viewport.SetYOffset(target)
	}
}

func (a App) contentWidth() int {
	if a.width <= 0 {
		return 100
	}
	return a.width
}

// resultsHeight is what is left for the results once the header, form,
// hints and a notification have been laid out.
func (a App) resultsHeight() int {
	if a.height <= 0 {
		return 20
	}
	used := lipgloss.Height(a.renderHeader()) + lipgloss.Height(a.renderForm()) + 12
	h := a.height - used
	if h < 6 {
		h = 6
	}
	return h
}
