package results

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/secop-lookup/internal/api"
	"github.com/gravitrone/secop-lookup/internal/fields"
)

const procesos = "SECOP II - Procesos (p6dx-8zbt)"

func decodeRecords(t *testing.T, raw string) []api.Record {
	t.Helper()
	var out []api.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestRenderSearchScenarioKeepsOrder(t *testing.T) {
	records := decodeRecords(t, `[
		{"Objeto / descripción":"Compra de insumos de salud","Entidad contratante":"Hospital San Juan","Estado del procedimiento":"Publicado"},
		{"Objeto / descripción":"Mantenimiento de equipos","Entidad contratante":"ESE Norte"},
		{"Entidad contratante":"Secretaría de Salud","Adjudicado":"Sí"}
	]`)

	rs := FromSearch(&api.SearchResult{Count: 3, Records: records}, procesos)
	page := Render(rs)

	assert.Equal(t, "Resultados (3) en SECOP II - Procesos (p6dx-8zbt)", page.Title)
	assert.False(t, page.Empty)
	require.Len(t, page.Cards, 3)
	assert.Equal(t, "Compra de insumos de salud", page.Cards[0].Heading)
	assert.Equal(t, "Mantenimiento de equipos", page.Cards[1].Heading)
	assert.Equal(t, "Resultado #3", page.Cards[2].Heading)
	assert.Equal(t, 3, page.Cards[2].Index)
}

func TestSearchTitleUsesServerCount(t *testing.T) {
	rs := FromSearch(&api.SearchResult{Records: []api.Record{api.NewRecord("a", "b")}}, procesos)
	assert.Equal(t, "Resultados (0) en SECOP II - Procesos (p6dx-8zbt)", rs.Title)

	rs = FromSearch(&api.SearchResult{Count: 120, Records: []api.Record{api.NewRecord("a", "b")}}, procesos)
	assert.Equal(t, "Resultados (120) en SECOP II - Procesos (p6dx-8zbt)", rs.Title)
}

func TestLookupResultHasExactlyOneRecord(t *testing.T) {
	rec := api.NewRecord("Notice UID", "CO1.NTC.1")
	rs := FromLookup(&api.LookupResult{Record: &rec}, procesos)
	assert.Equal(t, "Resultado para URL/identificador (SECOP II - Procesos (p6dx-8zbt))", rs.Title)
	require.Len(t, rs.Records, 1)
	assert.Equal(t, OriginLookup, rs.Origin)

	empty := FromLookup(nil, procesos)
	require.Len(t, empty.Records, 1)
	assert.Equal(t, "Resultado #1", Render(empty).Cards[0].Heading)
}

func TestRenderEmptyShowsPlaceholder(t *testing.T) {
	page := Render(FromSearch(&api.SearchResult{Count: 0}, procesos))
	assert.True(t, page.Empty)
	assert.Equal(t, "No se encontraron resultados.", page.Placeholder)
	assert.Empty(t, page.Cards)
}

func TestHeadingTruncatesTo120Runes(t *testing.T) {
	long := strings.Repeat("á", 150)
	card := RenderCard(1, api.NewRecord(fields.FieldDescription, long))
	assert.Equal(t, 120, len([]rune(card.Heading)))
}

func TestSubheadingDefaultsAndStatusPriority(t *testing.T) {
	card := RenderCard(1, api.NewRecord("Otro", "x"))
	assert.Equal(t, "— · —", card.Subheading)
	assert.Equal(t, fields.ToneNeutral, card.Tone)

	card = RenderCard(1, api.NewRecord(
		"Adjudicado", "No",
		"Estado del procedimiento", "Cancelado",
		"Estado del contrato", "  ",
		fields.FieldEntity, "Alcaldía de Cali",
	))
	assert.Equal(t, "Alcaldía de Cali · Cancelado", card.Subheading)
	assert.Equal(t, fields.ToneError, card.Tone)

	card = RenderCard(1, api.NewRecord("Estado del contrato", "Celebrado", "Adjudicado", "Sí"))
	assert.Equal(t, "— · Celebrado", card.Subheading)
	assert.Equal(t, fields.ToneSuccess, card.Tone)
}

func TestSentinelCountsAsAbsentInSummary(t *testing.T) {
	card := RenderCard(2, api.NewRecord(
		fields.FieldDescription, "No disponible",
		fields.FieldEntity, "No disponible",
	))
	assert.Equal(t, "Resultado #2", card.Heading)
	assert.Equal(t, "— · —", card.Subheading)
}

func TestFieldsFormattedInOrder(t *testing.T) {
	records := decodeRecords(t, `[{"Valor del contrato":"15000000 COP","Entidad contratante":null,"Fecha":"2024-01-01","Cantidad":3}]`)
	card := RenderCard(1, records[0])

	require.Len(t, card.Fields, 4)
	assert.Equal(t, FieldView{Key: "Valor del contrato", Text: "$15.000.000", Kind: fields.KindMoney}, card.Fields[0])
	assert.Equal(t, "No disponible", card.Fields[1].Text)
	assert.Equal(t, "2024-01-01", card.Fields[2].Text)
	assert.Equal(t, "3", card.Fields[3].Text)
}

func TestNITFieldBuildsRegistryLinkAndAction(t *testing.T) {
	card := RenderCard(1, api.NewRecord("NIT proveedor", "900.123.456-7"))

	require.Len(t, card.Fields, 1)
	nit := card.Fields[0].NIT
	require.NotNil(t, nit)
	assert.Equal(t, "900.123.456-7", nit.Label)
	assert.Equal(t, "9001234567", nit.Digits)
	assert.Contains(t, nit.RegistryURL, "9001234567")
	assert.Equal(t, "900.123.456-7", card.Fields[0].Text)

	actions := card.Actions()
	require.Len(t, actions, 2)
	assert.Equal(t, ActionSupplier, actions[0].Kind)
	assert.Equal(t, "9001234567", actions[0].Target)
	assert.Equal(t, ActionRegistry, actions[1].Kind)
	assert.True(t, actions[1].IsLink())
}

func TestNITWithoutDigitsHasNoActions(t *testing.T) {
	card := RenderCard(1, api.NewRecord("Nit entidad", "N/A", "Documento NIT", ""))
	for _, f := range card.Fields {
		assert.Nil(t, f.NIT)
		assert.Equal(t, "No disponible", f.Text)
	}
	assert.Empty(t, card.Actions())
}

func TestProcessLinkOnlyWhenAvailable(t *testing.T) {
	card := RenderCard(1, api.NewRecord(fields.FieldProcessURL, "https://community.secop.gov.co/p/1"))
	assert.Equal(t, "https://community.secop.gov.co/p/1", card.ProcessURL)
	actions := card.Actions()
	require.Len(t, actions, 1)
	assert.Equal(t, ProcessLinkLabel, actions[0].Label)

	card = RenderCard(1, api.NewRecord(fields.FieldProcessURL, "No disponible"))
	assert.Empty(t, card.ProcessURL)
	assert.Empty(t, card.Actions())
}

func TestRenderNeverPanicsOnOddRecords(t *testing.T) {
	records := decodeRecords(t, `[{}, {"":null}, {"Objeto / descripción":{"a":1},"Estado del contrato":["x"]}]`)
	assert.NotPanics(t, func() {
		page := Render(ResultSet{Records: records})
		require.Len(t, page.Cards, 3)
		assert.Equal(t, "Resultado #1", page.Cards[0].Heading)
		assert.Equal(t, `{"a":1}`, page.Cards[2].Heading)
	})
}
