package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/secop-lookup/internal/fields"
)

// --- Theme Colors ---

var (
	ColorPrimary    = lipgloss.Color("#f2c230") // yellow
	ColorSecondary  = lipgloss.Color("#3d8fb8") // blue
	ColorAccent     = lipgloss.Color("#d9534f") // red
	ColorBackground = lipgloss.Color("#101412") // dark
	ColorText       = lipgloss.Color("#dfe4e1") // main text
	ColorMuted      = lipgloss.Color("#9aa5a0") // muted text
	ColorSuccess    = lipgloss.Color("#3f9a6b") // green
	ColorError      = lipgloss.Color("#e06c75") // red
	ColorWarning    = lipgloss.Color("#d9a441") // amber
	ColorBorder     = lipgloss.Color("#2b3a33") // border
)

// --- Reusable Styles ---

var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	ModeActiveStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	ModeInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Underline(true)

	ActionStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Border(lipgloss.NormalBorder(), false, false, false, false).
			Padding(0, 1)

	ActionActiveStyle = lipgloss.NewStyle().
				Foreground(ColorBackground).
				Background(ColorSecondary).
				Bold(true).
				Padding(0, 1)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Bold(true).
			Padding(0, 1)
)

// toneStyle maps a status tone to its badge colour.
func toneStyle(t fields.Tone) lipgloss.Style {
	switch t {
	case fields.ToneSuccess:
		return BadgeStyle.Background(ColorSuccess)
	case fields.ToneWarning:
		return BadgeStyle.Background(ColorWarning)
	case fields.ToneError:
		return BadgeStyle.Background(ColorError)
	}
	return BadgeStyle.Background(ColorMuted)
}
