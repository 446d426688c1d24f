package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientHandlesMalformedJSON(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not-json"))
	})

	_, err := client.Search(context.Background(), SearchInput{Term: "salud", Dataset: "d"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestClientUnicodePayload(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body LookupInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "CO1.NTC.1234567", body.URL)
		w.Write([]byte(`{"dataset":"d","record":{"Entidad":"ALCALDÍA DE MEDELLÍN","Descripción":"Adquisición de café 🚀"}}`))
	})

	result, err := client.Lookup(context.Background(), LookupInput{URL: "CO1.NTC.1234567", Dataset: "d"})
	require.NoError(t, err)
	require.NotNil(t, result.Record)
	assert.Equal(t, "ALCALDÍA DE MEDELLÍN", *result.Record.Value("Entidad"))
	assert.Equal(t, "Adquisición de café 🚀", *result.Record.Value("Descripción"))
}

func TestHealthReturnsStatus(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	status, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status)
}

func TestHealthServerErrorIsAPIError(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"detail": "mantenimiento"})
	})

	_, err := client.Health(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "mantenimiento", apiErr.Message)
}
