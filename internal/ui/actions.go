package ui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/secop-lookup/internal/history"
	"github.com/gravitrone/secop-lookup/internal/logging"
	"github.com/gravitrone/secop-lookup/internal/results"
)

// Replaced in tests.
var (
	openURL         = openBrowserURL
	copyToClipboard = clipboard.WriteAll
)

type linkDoneMsg struct {
	url     string
	copied  bool
	opened  bool
	openErr error
	copyErr error
}

type exportDoneMsg struct {
	path string
	err  error
}

type historyRecalledMsg struct {
	mode  Mode
	entry *history.Entry
	err   error
}

// openBrowserURL opens a URL in the desktop browser. SECOP_NO_BROWSER=1
// disables it.
func openBrowserURL(url string) error {
	if os.Getenv("SECOP_NO_BROWSER") != "" {
		return nil
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}

// linkCmd copies url to the clipboard and, when open is set, opens it.
func linkCmd(url string, open bool) tea.Cmd {
	return func() tea.Msg {
		msg := linkDoneMsg{url: url}
		if err := copyToClipboard(url); err != nil {
			msg.copyErr = err
		} else {
			msg.copied = true
		}
		if open {
			if err := openURL(url); err != nil {
				msg.openErr = err
			} else {
				msg.opened = true
			}
		}
		return msg
	}
}

func (a *App) finishLink(msg linkDoneMsg) tea.Cmd {
	if msg.openErr != nil {
		logging.Warn("open link failed", "url", msg.url, "error", msg.openErr)
	}
	if msg.copyErr != nil {
		logging.Warn("clipboard write failed", "error", msg.copyErr)
	}
	switch {
	case msg.opened && msg.copied:
		return a.notify("Enlace abierto y copiado al portapapeles.", SeverityInfo)
	case msg.opened:
		return a.notify("Enlace abierto en el navegador.", SeverityInfo)
	case msg.copied:
		return a.notify("Enlace copiado: "+msg.url, SeverityInfo)
	}
	return a.notify("No se pudo abrir ni copiar el enlace: "+msg.url, SeverityError)
}

func exportCmd(dir string, rs results.ResultSet, now time.Time) tea.Cmd {
	return func() tea.Msg {
		path, err := results.Export(dir, rs, now)
		return exportDoneMsg{path: path, err: err}
	}
}

// export writes the current result set as JSON.
func (a *App) export() tea.Cmd {
	if a.current == nil {
		return a.notify("No hay resultados para exportar.", SeverityInfo)
	}
	dir := "."
	if a.config != nil {
		dir = a.config.ResolvedExportDir()
	}
	return exportCmd(dir, *a.current, a.now())
}

func (a *App) finishExport(msg exportDoneMsg) tea.Cmd {
	if msg.err != nil {
		logging.Error("export failed", "error", msg.err)
		return a.notify("No se pudo exportar: "+msg.err.Error(), SeverityError)
	}
	logging.Info("results exported", "path", msg.path)
	return a.notify("Resultados exportados a "+msg.path, SeveritySuccess)
}

func recallCmd(store *history.Store, mode Mode) tea.Cmd {
	return func() tea.Msg {
		items, err := store.Recent(mode.String(), 1)
		if err != nil {
			return historyRecalledMsg{mode: mode, err: err}
		}
		if len(items) == 0 {
			return historyRecalledMsg{mode: mode}
		}
		return historyRecalledMsg{mode: mode, entry: &items[0]}
	}
}

// recall loads the latest query of the active mode into the form.
func (a *App) recall() tea.Cmd {
	if a.history == nil {
		return a.notify("El historial está desactivado.", SeverityInfo)
	}
	return recallCmd(a.history, a.modes.Mode())
}

func (a *App) finishRecall(msg historyRecalledMsg) tea.Cmd {
	if msg.err != nil {
		logging.Warn("history recall failed", "error", msg.err)
		return a.notify("No se pudo leer el historial.", SeverityError)
	}
	if msg.entry == nil {
		return a.notify("No hay consultas previas en este modo.", SeverityInfo)
	}
	if msg.mode != a.modes.Mode() {
		return nil
	}
	a.modes.Query.SetValue(msg.entry.Input)
	a.modes.Query.CursorEnd()
	if msg.mode == ModeKeyword && msg.entry.Limit > 0 {
		a.modes.Limit.SetValue(fmt.Sprint(msg.entry.Limit))
	}
	a.selectDataset(msg.entry.Dataset)
	return a.notify("Consulta recuperada del historial.", SeverityInfo)
}

// clear resets the form and the results area.
func (a *App) clear() tea.Cmd {
	a.modes.Query.SetValue("")
	a.modes.Limit.SetValue(fmt.Sprint(a.defaultLimit()))
	a.clearResults()
	a.focusInput(focusQuery)
	return a.notify("Formulario limpio.", SeverityInfo)
}
