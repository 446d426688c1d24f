package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/gravitrone/secop-lookup/internal/api"
)

// Mode is how the free-text input is interpreted.
type Mode int

const (
	ModeURL Mode = iota
	ModeKeyword
)

const (
	placeholderURL     = "Pega la URL del proceso SECOP o el noticeUID"
	placeholderKeyword = "Palabra clave (ej. salud, policía)"
)

func (m Mode) String() string {
	if m == ModeKeyword {
		return "keyword"
	}
	return "url"
}

// Label is the selector text for the mode.
func (m Mode) Label() string {
	if m == ModeKeyword {
		return "Palabra clave"
	}
	return "URL / noticeUID"
}

// Placeholder is the query input hint for the mode.
func (m Mode) Placeholder() string {
	if m == ModeKeyword {
		return placeholderKeyword
	}
	return placeholderURL
}

// ParseMode accepts the names produced by String.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "url":
		return ModeURL, true
	case "keyword":
		return ModeKeyword, true
	}
	return ModeURL, false
}

// ModeController owns the mode selection and the inputs whose affordances
// depend on it.
type ModeController struct {
	mode         Mode
	selected     bool
	limitVisible bool

	Query textinput.Model
	Limit textinput.Model
}

// NewModeController starts in URL mode with the limit hidden.
func NewModeController(defaultLimit int) ModeController {
	query := textinput.New()
	query.Prompt = "› "
	query.CharLimit = 512
	query.Focus()

	limit := textinput.New()
	limit.Prompt = "Límite: "
	limit.CharLimit = 3
	limit.Placeholder = strconv.Itoa(api.DefaultSearchLimit)
	if defaultLimit > 0 {
		limit.SetValue(strconv.Itoa(defaultLimit))
	}

	c := ModeController{Query: query, Limit: limit}
	c.SetMode(ModeURL)
	return c
}

// SetMode selects mode, showing the limit input only for keyword search and
// switching the placeholder.
func (c *ModeController) SetMode(m Mode) {
	c.mode = m
	c.selected = true
	c.limitVisible = m == ModeKeyword
	c.Query.Placeholder = m.Placeholder()
	if !c.limitVisible {
		c.Limit.Blur()
	}
}

// Mode returns the active mode, URL when nothing was selected.
func (c ModeController) Mode() Mode {
	if !c.selected {
		return ModeURL
	}
	return c.mode
}

// Toggle switches to the other mode.
func (c *ModeController) Toggle() Mode {
	next := ModeKeyword
	if c.Mode() == ModeKeyword {
		next = ModeURL
	}
	c.SetMode(next)
	return next
}

// LimitVisible reports whether the limit input is shown.
func (c ModeController) LimitVisible() bool {
	return c.limitVisible
}

// LimitValue is the entered limit, or the default when empty, zero or invalid.
func (c ModeController) LimitValue() int {
	return effectiveLimit(c.Limit.Value())
}

func effectiveLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return api.DefaultSearchLimit
	}
	return n
}
