package results

import (
	"fmt"
	"strings"

	"github.com/gravitrone/secop-lookup/internal/api"
	"github.com/gravitrone/secop-lookup/internal/fields"
)

const (
	headingLimit = 120
	missing      = "—"

	// Separator joins entity and status in a card subheading.
	Separator = " · "

	// ProcessLinkLabel labels the external process link of a card.
	ProcessLinkLabel = "Abrir proceso en SECOP"
)

// ActionKind is what activating a card action does.
type ActionKind int

const (
	ActionSupplier ActionKind = iota
	ActionRegistry
	ActionProcess
)

// Action is a selectable control inside a card. Target holds NIT digits for
// supplier lookups and a URL for links.
type Action struct {
	Kind   ActionKind
	Label  string
	Target string
}

// IsLink reports whether the action opens an external URL.
func (a Action) IsLink() bool {
	return a.Kind == ActionRegistry || a.Kind == ActionProcess
}

// NITView is the specialized rendering of a tax identifier with digits.
type NITView struct {
	Label       string
	Digits      string
	RegistryURL string
}

// FieldView is one rendered key/value line of a card.
type FieldView struct {
	Key  string
	Text string
	Kind fields.Kind
	NIT  *NITView
}

// Card is the rendering of one record.
type Card struct {
	Index      int
	Heading    string
	Subheading string
	Entity     string
	Status     string
	Tone       fields.Tone
	Fields     []FieldView
	ProcessURL string
}

// Actions lists the card's controls in display order: supplier lookup and
// registry link per NIT field, then the process link.
func (c Card) Actions() []Action {
	var out []Action
	for _, f := range c.Fields {
		if f.NIT == nil {
			continue
		}
		out = append(out,
			Action{Kind: ActionSupplier, Label: "Ver proveedor " + f.NIT.Label, Target: f.NIT.Digits},
			Action{Kind: ActionRegistry, Label: "RUES " + f.NIT.Label, Target: f.NIT.RegistryURL},
		)
	}
	if c.ProcessURL != "" {
		out = append(out, Action{Kind: ActionProcess, Label: ProcessLinkLabel, Target: c.ProcessURL})
	}
	return out
}

// Page is the whole results area.
type Page struct {
	Title       string
	Empty       bool
	Placeholder string
	Cards       []Card
}

// Render turns a result set into cards. It is total: missing or odd fields
// end up as placeholder text.
func Render(rs ResultSet) Page {
	page := Page{Title: rs.Title}
	if len(rs.Records) == 0 {
		page.Empty = true
		page.Placeholder = EmptyText
		return page
	}
	page.Cards = make([]Card, 0, len(rs.Records))
	for i, rec := range rs.Records {
		page.Cards = append(page.Cards, RenderCard(i+1, rec))
	}
	return page
}

// RenderCard renders one record; index is 1-based.
func RenderCard(index int, rec api.Record) Card {
	card := Card{Index: index}

	if desc, ok := present(rec, fields.FieldDescription); ok {
		card.Heading = truncateRunes(desc, headingLimit)
	} else {
		card.Heading = fmt.Sprintf("Resultado #%d", index)
	}

	entity, ok := present(rec, fields.FieldEntity)
	if !ok {
		entity = missing
	}
	card.Entity = entity
	status, ok := Status(rec)
	if ok {
		card.Status = status
		card.Tone = fields.StatusTone(status)
	} else {
		status = missing
	}
	card.Subheading = entity + Separator + status

	card.Fields = make([]FieldView, 0, rec.Len())
	for _, f := range rec.Fields {
		card.Fields = append(card.Fields, renderField(f))
	}

	if link, ok := present(rec, fields.FieldProcessURL); ok {
		card.ProcessURL = link
	}
	return card
}

// Status returns the first non-empty status field in priority order.
func Status(rec api.Record) (string, bool) {
	for _, name := range fields.StatusFields {
		if v, ok := present(rec, name); ok {
			return v, true
		}
	}
	return "", false
}

func renderField(f api.Field) FieldView {
	kind := fields.Classify(f.Name)
	view := FieldView{Key: f.Name, Kind: kind, Text: fields.Format(f.Name, f.Ptr())}
	if kind != fields.KindNIT || view.Text == fields.NotAvailable {
		return view
	}
	digits := fields.CleanNIT(f.Value)
	if digits == "" {
		view.Text = fields.NotAvailable
		return view
	}
	view.NIT = &NITView{
		Label:       f.Value,
		Digits:      digits,
		RegistryURL: fields.RegistryURL(digits),
	}
	return view
}

// present returns a trimmed well-known value. The not-available sentinel
// counts as absent.
func present(rec api.Record, name string) (string, bool) {
	v := rec.Value(name)
	if fields.IsBlank(v) {
		return "", false
	}
	s := strings.TrimSpace(*v)
	if s == fields.NotAvailable {
		return "", false
	}
	return s, true
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
