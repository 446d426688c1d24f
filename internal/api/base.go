package api

import "time"

// DefaultBaseURL is the single source of truth for the CLI API target.
const DefaultBaseURL = "http://localhost:8000"

// Outgoing request budget. Supplier lookups are user-triggered from result
// cards and can be fired in quick succession.
const (
	DefaultRatePerSecond = 4
	DefaultBurst         = 2
)

// NewDefaultClient builds a client pointed at the default API URL.
func NewDefaultClient(timeout ...time.Duration) *Client {
	return NewClient(DefaultBaseURL, timeout...)
}
