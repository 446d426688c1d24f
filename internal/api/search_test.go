package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchBuildsQueryAndKeepsOrder(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "salud", r.URL.Query().Get("term"))
		assert.Equal(t, "SECOP II - Procesos (p6dx-8zbt)", r.URL.Query().Get("dataset"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"dataset":"SECOP II - Procesos (p6dx-8zbt)","count":3,"records":[
			{"Referencia":"A"},{"Referencia":"B"},{"Referencia":"C"}]}`))
	})

	result, err := client.Search(context.Background(), SearchInput{
		Term:    "salud",
		Dataset: "SECOP II - Procesos (p6dx-8zbt)",
		Limit:   20,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
	require.Len(t, result.Records, 3)
	for i, want := range []string{"A", "B", "C"} {
		assert.Equal(t, want, *result.Records[i].Value("Referencia"))
	}
}

func TestSearchDefaultsLimitAndCount(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"records":null}`))
	})

	result, err := client.Search(context.Background(), SearchInput{Term: "salud", Dataset: "d"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Records)
	assert.Empty(t, result.Records)
}

func TestSupplierStripsNonDigits(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/proveedor/9001234567", r.URL.Path)
		w.Write([]byte(`{"nit":"9001234567","nombre":"ACME SAS","es_pyme":null}`))
	})

	detail, err := client.Supplier(context.Background(), "900.123.456-7")
	require.NoError(t, err)
	require.Equal(t, 3, detail.Len())
	assert.Equal(t, "nombre", detail.Fields[1].Name)
	assert.Nil(t, detail.Value("es_pyme"))
}

func TestSupplierRejectsEmptyNIT(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	_, err := client.Supplier(context.Background(), "N/A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no digits")
}

func TestSupplierNotFound(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Proveedor no encontrado."})
	})

	_, err := client.Supplier(context.Background(), "9001234567")
	require.Error(t, err)
	assert.Equal(t, "Proveedor no encontrado.", err.Error())
}

func TestHealth(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	status, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status)
}
