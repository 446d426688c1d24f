package ui

// UIState is the process-wide form state. The App owns the only instance
// and mutates it from Update.
type UIState struct {
	Busy       bool
	StatusText string
	Notices    NotificationCenter
}

// focusArea is the part of the screen receiving keys.
type focusArea int

const (
	focusQuery focusArea = iota
	focusLimit
	focusResults
)

func (f focusArea) String() string {
	switch f {
	case focusLimit:
		return "limit"
	case focusResults:
		return "results"
	}
	return "query"
}
