package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/secop-lookup/internal/ui/components"
)

// NotificationTTL is how long a notification stays on screen.
const NotificationTTL = 4 * time.Second

// Severity classifies a notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	}
	return "info"
}

// Notification is the single visible status message.
type Notification struct {
	Message   string
	Severity  Severity
	ExpiresAt time.Time
	gen       uint64
}

type dismissNotificationMsg struct{ gen uint64 }

// NotificationCenter holds at most one notification. A newer one replaces
// the current one and makes every pending dismissal stale.
type NotificationCenter struct {
	current *Notification
	gen     uint64
}

// Notify shows message and returns the command that dismisses it after
// NotificationTTL.
func (n *NotificationCenter) Notify(message string, severity Severity, now time.Time) tea.Cmd {
	n.gen++
	gen := n.gen
	n.current = &Notification{
		Message:   components.SanitizeOneLine(message),
		Severity:  severity,
		ExpiresAt: now.Add(NotificationTTL),
		gen:       gen,
	}
	return tea.Tick(NotificationTTL, func(time.Time) tea.Msg {
		return dismissNotificationMsg{gen: gen}
	})
}

// Dismiss clears the notification if gen still identifies it.
func (n *NotificationCenter) Dismiss(gen uint64) bool {
	if n.current == nil || n.current.gen != gen {
		return false
	}
	n.current = nil
	return true
}

// Current returns the visible notification, or nil.
func (n NotificationCenter) Current() *Notification {
	return n.current
}

// Render draws the notification box.
func (n NotificationCenter) Render(width int) string {
	if n.current == nil {
		return ""
	}
	switch n.current.Severity {
	case SeverityError:
		return components.ErrorBox("Error", n.current.Message, width)
	case SeveritySuccess:
		return components.TitledBox("Listo", SuccessStyle.Render(n.current.Message), width)
	}
	return components.TitledBox("Info", n.current.Message, width)
}
