package ui

import tea "github.com/charmbracelet/bubbletea"

// --- Key Helpers ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

// isQuit only accepts ctrl+c; plain letters belong to the query input.
func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

func isUp(msg tea.KeyMsg) bool {
	return isKey(msg, "up", "k")
}

func isDown(msg tea.KeyMsg) bool {
	return isKey(msg, "down", "j")
}

func isLeft(msg tea.KeyMsg) bool {
	return isKey(msg, "left", "h")
}

func isRight(msg tea.KeyMsg) bool {
	return isKey(msg, "right", "l")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter", "return")
}
