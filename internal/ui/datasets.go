package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/secop-lookup/internal/logging"
)

const msgDatasetFallback = "No se pudo cargar la lista de datasets; usando lista local."

// FallbackDatasets is used when the backend list cannot be loaded.
func FallbackDatasets() []string {
	return []string{
		"SECOP II - Procesos (p6dx-8zbt)",
		"SECOP II - Contratos electrónicos (jbjy-vk9h)",
	}
}

// PreferredDataset returns the index of the dataset to select in names: the
// configured one, then the backend default, then the first entry. Names that
// are not in the list are skipped.
func PreferredDataset(names []string, configured, backendDefault string) int {
	for _, want := range []string{configured, backendDefault} {
		if idx := indexOf(names, want); idx >= 0 {
			return idx
		}
	}
	return 0
}

// applyDatasets installs the backend dataset list, or the fallback list on
// failure, and selects the preferred entry.
func (a *App) applyDatasets(msg datasetsLoadedMsg) tea.Cmd {
	a.datasetsLoading = false

	configured := ""
	if a.config != nil {
		configured = a.config.DefaultDataset
	}

	var names []string
	if msg.err == nil && msg.list != nil {
		names = msg.list.Names()
	}
	if len(names) == 0 {
		logging.Warn("dataset list unavailable, using fallback", "error", msg.err)
		a.datasets = FallbackDatasets()
		a.datasetIdx = PreferredDataset(a.datasets, configured, "")
		return a.notify(msgDatasetFallback, SeverityError)
	}

	a.datasets = names
	a.datasetIdx = PreferredDataset(names, configured, msg.list.Default)
	logging.Debug("datasets loaded", "count", len(names), "selected", a.currentDataset())
	return nil
}

// cycleDataset selects the next dataset, wrapping around.
func (a *App) cycleDataset() {
	if len(a.datasets) == 0 {
		return
	}
	a.datasetIdx = (a.datasetIdx + 1) % len(a.datasets)
}

// selectDataset selects name when it is in the list.
func (a *App) selectDataset(name string) bool {
	if idx := indexOf(a.datasets, name); idx >= 0 {
		a.datasetIdx = idx
		return true
	}
	return false
}

func (a App) currentDataset() string {
	if a.datasetIdx < 0 || a.datasetIdx >= len(a.datasets) {
		return ""
	}
	return a.datasets[a.datasetIdx]
}

func indexOf(items []string, want string) int {
	if want == "" {
		return -1
	}
	for i, item := range items {
		if item == want {
			return i
		}
	}
	return -1
}
