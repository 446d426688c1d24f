package results

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/secop-lookup/internal/api"
)

func TestWriteJSONKeepsFieldOrder(t *testing.T) {
	rs := FromSearch(&api.SearchResult{Count: 1, Records: []api.Record{
		api.NewRecord("Zeta", "1", "Alfa", "2"),
	}}, procesos)

	var buf bytes.Buffer
	now := time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC)
	require.NoError(t, WriteJSON(&buf, rs, now))

	out := buf.String()
	assert.Contains(t, out, `"title": "Resultados (1) en SECOP II - Procesos (p6dx-8zbt)"`)
	assert.Contains(t, out, `"origin": "search"`)
	assert.Less(t, strings.Index(out, `"Zeta"`), strings.Index(out, `"Alfa"`))
}

func TestWriteJSONEmptyRecordsIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, ResultSet{}, time.Now()))
	assert.Contains(t, buf.String(), `"records": []`)
}

func TestExportWritesTimestampedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	now := time.Date(2026, 5, 4, 12, 30, 15, 0, time.UTC)
	rec := api.NewRecord("NIT", "900123456")
	rs := FromLookup(&api.LookupResult{Record: &rec}, procesos)

	path, err := Export(dir, rs, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "secop-20260504-123015.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"NIT": "900123456"`)
}
