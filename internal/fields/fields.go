// Package fields turns raw record fields into display strings.
//
// Field names coming from the backend are free-form. The only schema knowledge
// the client has lives in Classify and the well-known name constants below.
package fields

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NotAvailable is the placeholder shown for missing values.
const NotAvailable = "No disponible"

// Well-known field names used for card summaries and special rendering.
const (
	FieldDescription = "Objeto / descripción"
	FieldEntity      = "Entidad contratante"
	FieldProcessURL  = "URL proceso"
)

// StatusFields are tried in order; the first non-empty value is the record status.
var StatusFields = []string{
	"Estado del contrato",
	"Estado del procedimiento",
	"Adjudicado",
}

// RegistryBaseURL is the public business registry used for NIT links.
const RegistryBaseURL = "https://www.rues.org.co/consultas"

// Kind is the rendering class of a field, derived from its name.
type Kind int

const (
	KindPlain Kind = iota
	KindMoney
	KindNIT
	KindProcessURL
)

func (k Kind) String() string {
	switch k {
	case KindMoney:
		return "money"
	case KindNIT:
		return "nit"
	case KindProcessURL:
		return "process_url"
	default:
		return "plain"
	}
}

// Classify maps a field name to its rendering kind. Money wins over NIT so
// names like "Valor unitario" stay monetary.
func Classify(key string) Kind {
	if key == FieldProcessURL {
		return KindProcessURL
	}
	lower := strings.ToLower(key)
	switch {
	case strings.Contains(lower, "valor"), strings.Contains(lower, "presupuesto"):
		return KindMoney
	case strings.Contains(lower, "nit"):
		return KindNIT
	}
	return KindPlain
}

// IsBlank reports whether value is nil or whitespace only.
func IsBlank(value *string) bool {
	return value == nil || strings.TrimSpace(*value) == ""
}

// Format renders a field value for display. It never fails: anything that
// cannot be specialized is returned as-is.
func Format(key string, value *string) string {
	if IsBlank(value) {
		return NotAvailable
	}
	text := *value
	if Classify(key) == KindMoney {
		if money, ok := FormatCOP(text); ok {
			return money
		}
	}
	return text
}

var copPrinter = message.NewPrinter(language.MustParse("es-CO"))

// FormatCOP formats raw as Colombian pesos without decimals ("$15.000.000").
// Everything except digits, dot and minus is dropped before parsing. When the
// remainder is not a plain number its longest numeric prefix is used, so any
// value with a digit in it is formatted.
func FormatCOP(raw string) (string, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)
	if !strings.ContainsAny(cleaned, "0123456789") {
		return "", false
	}
	amount, ok := parseAmount(cleaned)
	if !ok {
		return "", false
	}
	rounded := math.Round(amount)
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	if rounded > math.MaxInt64/2 {
		return sign + "$" + copPrinter.Sprint(number.Decimal(rounded, number.MaxFractionDigits(0))), true
	}
	return sign + "$" + copPrinter.Sprintf("%d", int64(rounded)), true
}

// parseAmount parses s, falling back to its longest finite numeric prefix
// and then to its digits alone.
func parseAmount(s string) (float64, bool) {
	for end := len(s); end > 0; end-- {
		v, err := strconv.ParseFloat(s[:end], 64)
		if err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
			return v, true
		}
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// CleanNIT keeps only the digits of a tax identifier.
func CleanNIT(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// RegistryURL builds the business registry lookup link for cleaned NIT digits.
func RegistryURL(digits string) string {
	return RegistryBaseURL + "?nit=" + url.QueryEscape(digits)
}
