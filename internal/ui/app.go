package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/secop-lookup/internal/api"
	"github.com/gravitrone/secop-lookup/internal/config"
	"github.com/gravitrone/secop-lookup/internal/history"
	"github.com/gravitrone/secop-lookup/internal/results"
	"github.com/gravitrone/secop-lookup/internal/ui/components"
)

// compactBannerHeight is the terminal height under which the banner art is
// replaced by a single line.
const compactBannerHeight = 40

// --- App Model ---

// App is the root TUI model: the query form, the results area and the
// detail overlay.
type App struct {
	client  *api.Client
	config  *config.Config
	history *history.Store
	width   int
	height  int

	state UIState
	modes ModeController
	focus focusArea

	datasets        []string
	datasetIdx      int
	datasetsLoading bool

	seq      uint64
	cancel   context.CancelFunc
	inflight *QueryRequest

	title   string
	current *results.ResultSet
	page    results.Page
	cards   components.List
	action  int

	modal    Modal
	spinner  spinner.Model
	viewport viewport.Model
	keys     []keyBinding
	now      func() time.Time
}

// NewApp creates the root application model. store may be nil when history
// is disabled.
func NewApp(client *api.Client, cfg *config.Config, store *history.Store) App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = AccentStyle

	a := App{
		client:          client,
		config:          cfg,
		history:         store,
		state:           UIState{StatusText: statusIdle},
		focus:           focusQuery,
		datasets:        FallbackDatasets(),
		datasetsLoading: true,
		cards:           components.NewList(50),
		spinner:         sp,
		viewport:        viewport.New(100, 20),
		keys:            mainKeyBindings(),
		now:             time.Now,
	}
	a.modes = NewModeController(a.defaultLimit())
	a.syncViewport()
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadDatasetsCmd(a.client))
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.syncViewport()
		return a, nil

	case datasetsLoadedMsg:
		return a, a.applyDatasets(msg)
	case queryDoneMsg:
		cmd = a.finishQuery(msg)
		return a, cmd
	case supplierDoneMsg:
		cmd = a.finishSupplier(msg)
		return a, cmd
	case dismissNotificationMsg:
		a.state.Notices.Dismiss(msg.gen)
		return a, nil
	case linkDoneMsg:
		return a, a.finishLink(msg)
	case exportDoneMsg:
		return a, a.finishExport(msg)
	case historyRecalledMsg:
		return a, a.finishRecall(msg)

	case spinner.TickMsg:
		if !a.state.Busy && a.state.StatusText != statusSupplier {
			return a, nil
		}
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		cmd = a.handleKey(msg)
		return a, cmd
	}

	if a.state.Busy {
		return a, nil
	}
	switch a.focus {
	case focusQuery:
		a.modes.Query, cmd = a.modes.Query.Update(msg)
	case focusLimit:
		a.modes.Limit, cmd = a.modes.Limit.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	header := centerBlockUniform(a.renderHeader(), a.width)
	form := centerBlockUniform(a.renderForm(), a.width)

	var content string
	if a.modal.IsOpen() {
		content = a.modal.View(a.width)
	} else {
		content = a.renderResults()
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if note := a.state.Notices.Render(a.width); note != "" {
		feedback = "\n\n" + centerBlockUniform(note, a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s%s", header, form, content, hints, feedback)
}

func (a App) renderHeader() string {
	if a.height > 0 && a.height < compactBannerHeight {
		return RenderCompactBanner()
	}
	return RenderBanner()
}

func (a App) renderForm() string {
	var b strings.Builder
	b.WriteString(a.renderModeSelector())
	b.WriteString("\n")

	dataset := a.currentDataset()
	if a.datasetsLoading {
		dataset += MutedStyle.Render("  (cargando...)")
	}
	b.WriteString(components.InfoRow("Dataset", dataset))
	b.WriteString("\n\n")
	b.WriteString(a.modes.Query.View())
	if a.modes.LimitVisible() {
		b.WriteString("\n")
		b.WriteString(a.modes.Limit.View())
	}
	b.WriteString("\n\n")

	status := MutedStyle.Render(a.state.StatusText)
	if a.state.Busy || a.state.StatusText == statusSupplier {
		status = a.spinner.View() + " " + WarningStyle.Render(a.state.StatusText)
	}
	b.WriteString(status)

	if a.focus == focusResults || a.state.Busy {
		return components.Box(b.String(), a.width)
	}
	return components.ActiveBox(b.String(), a.width)
}

func (a App) renderModeSelector() string {
	segments := make([]string, 0, 2)
	for _, m := range []Mode{ModeURL, ModeKeyword} {
		if m == a.modes.Mode() {
			segments = append(segments, ModeActiveStyle.Render(m.Label()))
		} else {
			segments = append(segments, ModeInactiveStyle.Render(m.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (a App) renderResults() string {
	if a.title == "" {
		return a.viewport.View()
	}
	title := HeaderStyle.Render(components.SanitizeOneLine(a.title))
	if n := len(a.page.Cards); n > 0 {
		pos := MutedStyle.Render(fmt.Sprintf("%d/%d", a.cards.Selected()+1, n))
		title = components.StatusLine(title, pos, a.viewport.Width)
	}
	return title + "\n\n" + a.viewport.View()
}

// focusInput moves key focus. Inputs stay blurred while a query is running.
func (a *App) focusInput(f focusArea) {
	a.focus = f
	a.modes.Query.Blur()
	a.modes.Limit.Blur()
	if a.state.Busy {
		return
	}
	switch f {
	case focusQuery:
		a.modes.Query.Focus()
	case focusLimit:
		a.modes.Limit.Focus()
	}
}

func (a App) defaultLimit() int {
	if a.config != nil && a.config.DefaultLimit > 0 {
		return a.config.DefaultLimit
	}
	return api.DefaultSearchLimit
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
