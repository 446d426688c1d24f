package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/secop-lookup/internal/results"
	"github.com/gravitrone/secop-lookup/internal/ui/components"
)

// keyBinding is one row of the key dispatch table. The first binding whose
// match and when both accept a key runs; nothing else sees the key.
type keyBinding struct {
	match func(tea.KeyMsg) bool
	key   string
	help  string
	when  func(*App) bool
	run   func(*App, tea.KeyMsg) tea.Cmd
}

func (b keyBinding) active(a *App) bool {
	return b.when == nil || b.when(a)
}

func onKeys(names ...string) func(tea.KeyMsg) bool {
	return func(msg tea.KeyMsg) bool { return isKey(msg, names...) }
}

func idle(a *App) bool       { return !a.state.Busy }
func inResults(a *App) bool  { return a.focus == focusResults }
func hasResults(a *App) bool { return a.current != nil }

// modalKeyBindings apply while the detail overlay is open. Unlisted keys
// are swallowed.
func modalKeyBindings() []keyBinding {
	return []keyBinding{
		{match: isQuit, key: "ctrl+c", help: "Salir", run: (*App).quit},
		{
			match: func(msg tea.KeyMsg) bool { return isBack(msg) || isEnter(msg) },
			key:   "esc/enter",
			help:  "Cerrar",
			run: func(a *App, _ tea.KeyMsg) tea.Cmd {
				a.modal.Close()
				return nil
			},
		},
	}
}

// mainKeyBindings is the dispatch table for the form and the results.
func mainKeyBindings() []keyBinding {
	return []keyBinding{
		{match: isQuit, key: "ctrl+c", help: "Salir", run: (*App).quit},
		{
			match: isBack,
			key:   "esc",
			help:  "Cancelar",
			when:  func(a *App) bool { return a.state.Busy },
			run: func(a *App, _ tea.KeyMsg) tea.Cmd {
				a.cancelQuery()
				return nil
			},
		},
		{
			match: isBack,
			key:   "esc",
			help:  "Volver",
			when:  inResults,
			run: func(a *App, _ tea.KeyMsg) tea.Cmd {
				a.focusInput(focusQuery)
				a.syncViewport()
				return nil
			},
		},
		{match: isEnter, key: "enter", help: "Abrir", when: inResults, run: (*App).activate},
		{match: isEnter, key: "enter", help: "Consultar", when: idle, run: func(a *App, _ tea.KeyMsg) tea.Cmd { return a.submit() }},
		{
			// Busy submissions are rejected with a notice rather than ignored.
			match: isEnter,
			run:   func(a *App, _ tea.KeyMsg) tea.Cmd { return a.submit() },
		},
		{
			match: onKeys("ctrl+t"),
			key:   "ctrl+t",
			help:  "Modo",
			when:  idle,
			run: func(a *App, _ tea.KeyMsg) tea.Cmd {
				mode := a.modes.Toggle()
				if a.focus == focusLimit && !a.modes.LimitVisible() {
					a.focusInput(focusQuery)
				}
				a.syncViewport()
				return a.notify("Modo: "+mode.Label(), SeverityInfo)
			},
		},
		{
			match: onKeys("ctrl+d"),
			key:   "ctrl+d",
			help:  "Dataset",
			when:  idle,
			run: func(a *App, _ tea.KeyMsg) tea.Cmd {
				a.cycleDataset()
				return nil
			},
		},
		{match: onKeys("tab"), key: "tab", help: "Foco", when: idle, run: func(a *App, _ tea.KeyMsg) tea.Cmd { a.cycleFocus(1); return nil }},
		{match: onKeys("shift+tab"), when: idle, run: func(a *App, _ tea.KeyMsg) tea.Cmd { a.cycleFocus(-1); return nil }},
		{match: onKeys("ctrl+s"), key: "ctrl+s", help: "Exportar", when: hasResults, run: func(a *App, _ tea.KeyMsg) tea.Cmd { return a.export() }},
		{match: onKeys("ctrl+l"), key: "ctrl+l", help: "Limpiar", when: idle, run: func(a *App, _ tea.KeyMsg) tea.Cmd { return a.clear() }},
		{match: onKeys("ctrl+r"), key: "ctrl+r", help: "Historial", when: func(a *App) bool { return idle(a) && a.history != nil }, run: func(a *App, _ tea.KeyMsg) tea.Cmd { return a.recall() }},
		{match: isUp, key: "↑/↓", help: "Tarjeta", when: inResults, run: func(a *App, _ tea.KeyMsg) tea.Cmd { a.moveCard(-1); return nil }},
		{match: isDown, when: inResults, run: func(a *App, _ tea.KeyMsg) tea.Cmd { a.moveCard(1); return nil }},
		{match: isLeft, key: "←/→", help: "Acción", when: inResults, run: func(a *App, _ tea.KeyMsg) tea.Cmd { a.moveAction(-1); return nil }},
		{match: isRight, when: inResults, run: func(a *App, _ tea.KeyMsg) tea.Cmd { a.moveAction(1); return nil }},
		{match: onKeys("y"), key: "y", help: "Copiar enlace", when: inResults, run: (*App).copyLink},
		{
			match: onKeys("pgup", "pgdown"),
			key:   "pgup/pgdn",
			help:  "Desplazar",
			when:  hasResults,
			run: func(a *App, msg tea.KeyMsg) tea.Cmd {
				var cmd tea.Cmd
				a.viewport, cmd = a.viewport.Update(msg)
				return cmd
			},
		},
	}
}

// handleKey runs the first matching binding, or forwards the key to the
// focused input.
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	table := a.keys
	if a.modal.IsOpen() {
		table = modalKeyBindings()
	}
	for _, b := range table {
		if b.match(msg) && b.active(a) {
			return b.run(a, msg)
		}
	}
	if a.modal.IsOpen() || a.state.Busy {
		return nil
	}
	return a.forwardKey(msg)
}

// forwardKey hands typing to the focused text input. The limit input only
// takes digits.
func (a *App) forwardKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.focus {
	case focusQuery:
		a.modes.Query, cmd = a.modes.Query.Update(msg)
	case focusLimit:
		if msg.Type == tea.KeyRunes && !allDigits(msg.Runes) {
			return nil
		}
		a.modes.Limit, cmd = a.modes.Limit.Update(msg)
	}
	return cmd
}

func allDigits(rs []rune) bool {
	for _, r := range rs {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// statusHints lists the bindings usable right now.
func (a App) statusHints() []string {
	table := a.keys
	if a.modal.IsOpen() {
		table = modalKeyBindings()
	}
	hints := make([]string, 0, len(table))
	seen := map[string]bool{}
	for _, b := range table {
		if b.help == "" || !b.active(&a) || seen[b.key] {
			continue
		}
		seen[b.key] = true
		hints = append(hints, components.Hint(b.key, b.help))
	}
	return hints
}

func (a *App) quit(_ tea.KeyMsg) tea.Cmd {
	a.cancelQuery()
	return tea.Quit
}

// cycleFocus moves between the query, the limit when shown, and the results
// when there are cards.
func (a *App) cycleFocus(step int) {
	order := []focusArea{focusQuery}
	if a.modes.LimitVisible() {
		order = append(order, focusLimit)
	}
	if len(a.page.Cards) > 0 {
		order = append(order, focusResults)
	}
	cur := 0
	for i, f := range order {
		if f == a.focus {
			cur = i
		}
	}
	next := (cur + step + len(order)) % len(order)
	a.focusInput(order[next])
	a.syncViewport()
}

func (a *App) moveCard(step int) {
	var moved bool
	if step < 0 {
		moved = a.cards.Up()
	} else {
		moved = a.cards.Down()
	}
	if moved {
		a.action = 0
		a.syncViewport()
	}
}

func (a *App) moveAction(step int) {
	card, ok := a.selectedCard()
	if !ok {
		return
	}
	n := len(card.Actions())
	if n == 0 {
		return
	}
	a.action = (a.action + step + n) % n
	a.syncViewport()
}

// activate runs the highlighted action of the selected card.
func (a *App) activate(_ tea.KeyMsg) tea.Cmd {
	act, ok := a.selectedAction()
	if !ok {
		return nil
	}
	if act.Kind == results.ActionSupplier {
		return a.fetchSupplierDetail(act.Target)
	}
	return linkCmd(act.Target, true)
}

// copyLink copies the highlighted link, or the process link of the card.
func (a *App) copyLink(_ tea.KeyMsg) tea.Cmd {
	if act, ok := a.selectedAction(); ok && act.IsLink() {
		return linkCmd(act.Target, false)
	}
	if card, ok := a.selectedCard(); ok && card.ProcessURL != "" {
		return linkCmd(card.ProcessURL, false)
	}
	return a.notify("La tarjeta no tiene enlaces.", SeverityInfo)
}
