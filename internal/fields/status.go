package fields

import "strings"

// Tone is the badge colour class of a status value.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneSuccess
	ToneWarning
	ToneError
)

var (
	successWords = []string{"terminado", "celebrado", "ejecutado", "adjudicado", "seleccionado"}
	warningWords = []string{"en tramite", "en trámite", "proceso", "publicado", "presentaci"}
	errorWords   = []string{"cancelado", "desierto", "revocado"}
)

// StatusTone classifies a status string. Unknown non-empty statuses are warnings.
func StatusTone(status string) Tone {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" || s == strings.ToLower(NotAvailable) {
		return ToneNeutral
	}
	switch {
	case containsAny(s, successWords):
		return ToneSuccess
	case containsAny(s, warningWords):
		return ToneWarning
	case containsAny(s, errorWords):
		return ToneError
	}
	return ToneWarning
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
