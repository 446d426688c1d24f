package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/secop-lookup/internal/ui"
	"github.com/gravitrone/secop-lookup/internal/ui/components"
)

// backend starts a fake API and points HOME and SECOP_API_URL at a sandbox.
func backend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("SECOP_API_URL", srv.URL)
	return srv
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return components.SanitizeText(out.String()), err
}

func searchHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			assert.Equal(t, "salud", r.URL.Query().Get("term"))
			assert.Equal(t, "D1", r.URL.Query().Get("dataset"))
			w.Write([]byte(`{"dataset":"D1","count":2,"records":[
				{"Objeto / descripción":"Compra de insumos","Entidad contratante":"Hospital","NIT proveedor":"900.123.456-7"},
				{"Entidad contratante":"ESE Norte","Valor del contrato":"1500000"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestSearchCmdPrintsCardsAndRecordsHistory(t *testing.T) {
	backend(t, searchHandler(t))

	out, err := execute(t, SearchCmd(), "salud", "--dataset", "D1", "-n", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Resultados (2) en D1")
	assert.Contains(t, out, "#1 Compra de insumos")
	assert.Contains(t, out, "#2 Resultado #2")
	assert.Contains(t, out, "900.123.456-7")

	out, err = execute(t, HistoryCmd(), "--mode", "keyword")
	require.NoError(t, err)
	assert.Contains(t, out, "salud")
	assert.Contains(t, out, "D1")

	out, err = execute(t, HistoryCmd(), "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "history cleared")

	out, err = execute(t, HistoryCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "no queries yet")
}

func TestSearchCmdJSON(t *testing.T) {
	backend(t, searchHandler(t))
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	oldNow := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = oldNow })

	out, err := execute(t, SearchCmd(), "salud", "-d", "D1", "--json")
	require.NoError(t, err)

	var payload struct {
		Count   int              `json:"count"`
		Origin  string           `json:"origin"`
		Records []map[string]any `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, 2, payload.Count)
	assert.Equal(t, "search", payload.Origin)
	assert.Len(t, payload.Records, 2)
}

func TestLookupCmdUsesBackendDefaultDataset(t *testing.T) {
	backend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/meta/datasets":
			w.Write([]byte(`{"datasets":[{"name":"A"},{"name":"B"}],"default":"B"}`))
		case "/lookup":
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "B", body["dataset"])
			assert.Equal(t, "CO1.NTC.7", body["url"])
			w.Write([]byte(`{"dataset":"B","record":{"Objeto / descripción":"Obra vial"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	out, err := execute(t, LookupCmd(), "CO1.NTC.7")
	require.NoError(t, err)
	assert.Contains(t, out, "Resultado para URL/identificador (B)")
	assert.Contains(t, out, "Obra vial")
}

func TestLookupCmdErrorUsesServerDetail(t *testing.T) {
	backend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Proceso no encontrado"}`))
	})

	_, err := execute(t, LookupCmd(), "CO1.NTC.404", "-d", "D1")
	require.Error(t, err)
	assert.Equal(t, "Proceso no encontrado", err.Error())
}

func TestLookupCmdRejectsBlankInput(t *testing.T) {
	backend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})

	_, err := execute(t, LookupCmd(), "   ", "-d", "D1")
	require.Error(t, err)
}

func TestQueryCmdsRejectBlankInputWithoutNetwork(t *testing.T) {
	var calls atomic.Int32
	backend(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"datasets":[{"name":"A"}],"default":"A"}`))
	})

	_, err := execute(t, SearchCmd(), "   ")
	require.Error(t, err)
	_, err = execute(t, LookupCmd(), "\t")
	require.Error(t, err)
	assert.Equal(t, int32(0), calls.Load())
}

func TestResolveDatasetUsesListedPreferenceOnly(t *testing.T) {
	backend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"datasets":[{"name":"A"},{"name":"B"}],"default":"Z"}`))
	})
	cfg, err := LoadConfig(SearchCmd())
	require.NoError(t, err)
	client := cfg.Client()
	ctx := context.Background()

	assert.Equal(t, "A", resolveDataset(ctx, client, cfg, ""))
	assert.Equal(t, "X", resolveDataset(ctx, client, cfg, " X "))

	cfg.DefaultDataset = "B"
	assert.Equal(t, "B", resolveDataset(ctx, client, cfg, ""))
	cfg.DefaultDataset = "Y"
	assert.Equal(t, "A", resolveDataset(ctx, client, cfg, ""))
}

func TestResolveDatasetFallsBackWhenBackendIsDown(t *testing.T) {
	backend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	cfg, err := LoadConfig(SearchCmd())
	require.NoError(t, err)
	client := cfg.Client()

	fallback := ui.FallbackDatasets()
	assert.Equal(t, fallback[0], resolveDataset(context.Background(), client, cfg, ""))
	cfg.DefaultDataset = fallback[1]
	assert.Equal(t, fallback[1], resolveDataset(context.Background(), client, cfg, ""))
}

func TestSupplierCmd(t *testing.T) {
	backend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/proveedor/9001234567", r.URL.Path)
		w.Write([]byte(`{"nit":"9001234567","nombre":"ACME SAS","es_pyme":false}`))
	})

	out, err := execute(t, SupplierCmd(), "900.123.456-7")
	require.NoError(t, err)
	assert.Contains(t, out, "Proveedor / NIT 9001234567")
	assert.Contains(t, out, "ACME SAS")
	assert.Contains(t, out, "No disponible")
	assert.NotContains(t, out, "esc/enter")
	assert.Less(t, strings.Index(out, "nit"), strings.Index(out, "nombre"))

	_, err = execute(t, SupplierCmd(), "N/A")
	require.Error(t, err)
}

func TestDatasetsCmdCheck(t *testing.T) {
	backend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.Write([]byte(`{"status":"ok"}`))
		case "/meta/datasets":
			w.Write([]byte(`{"datasets":[{"name":"A"},{"name":"B"}],"default":"B"}`))
		}
	})

	out, err := execute(t, DatasetsCmd(), "--check")
	require.NoError(t, err)
	assert.Contains(t, out, ": ok")
	assert.Contains(t, out, "  A")
	assert.Contains(t, out, "* B")
}

func TestRootAPIURLFlagOverridesEnv(t *testing.T) {
	srv := backend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"datasets":[{"name":"Z"}],"default":"Z"}`))
	})
	t.Setenv("SECOP_API_URL", "http://127.0.0.1:1")

	root := RootCmd(func(*cobra.Command) error { return nil })
	out, err := execute(t, root, "--api-url", srv.URL+"/", "datasets")
	require.NoError(t, err)
	assert.Contains(t, out, "* Z")
}

func TestRootWithoutSubcommandRunsTUI(t *testing.T) {
	called := false
	root := RootCmd(func(*cobra.Command) error { called = true; return nil })
	_, err := execute(t, root)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestHistoryCmdDisabledAndUnknownMode(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	_, err := execute(t, HistoryCmd(), "--mode", "otro")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")

	dir := filepath.Join(home, ".secop")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte("history_enabled: false\n"), 0o600))

	_, err = execute(t, HistoryCmd())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history is disabled")
}
