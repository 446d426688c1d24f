package ui

import (
	"github.com/gravitrone/secop-lookup/internal/api"
	"github.com/gravitrone/secop-lookup/internal/fields"
	"github.com/gravitrone/secop-lookup/internal/ui/components"
)

// ModalState is the overlay lifecycle.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
)

// Modal shows a flat key/value detail over the results. Values are shown
// raw; money and NIT formatting do not apply here.
type Modal struct {
	state ModalState
	title string
	rows  []components.TableRow
}

// Open shows detail under title. Opening an open modal replaces its content.
func (m *Modal) Open(title string, detail api.Record) {
	rows := make([]components.TableRow, 0, detail.Len())
	for _, f := range detail.Fields {
		value := f.Value
		if f.Falsy() {
			value = fields.NotAvailable
		}
		rows = append(rows, components.TableRow{Label: f.Name, Value: value})
	}
	m.title = title
	m.rows = rows
	m.state = ModalOpen
}

// Close hides the modal.
func (m *Modal) Close() {
	m.state = ModalClosed
	m.title = ""
	m.rows = nil
}

// State returns the lifecycle state.
func (m Modal) State() ModalState {
	return m.state
}

// IsOpen reports whether the modal is showing.
func (m Modal) IsOpen() bool {
	return m.state == ModalOpen
}

// Title returns the current title.
func (m Modal) Title() string {
	return m.title
}

// Rows returns the rendered label/value pairs in field order.
func (m Modal) Rows() []components.TableRow {
	return m.rows
}

// View renders the overlay, empty when closed.
func (m Modal) View(width int) string {
	if !m.IsOpen() {
		return ""
	}
	return components.DetailDialog(m.title, m.rows, width)
}
