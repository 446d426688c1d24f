package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/secop-lookup/internal/api"
	"github.com/gravitrone/secop-lookup/internal/fields"
	"github.com/gravitrone/secop-lookup/internal/history"
	"github.com/gravitrone/secop-lookup/internal/logging"
	"github.com/gravitrone/secop-lookup/internal/results"
)

const (
	statusIdle     = "Listo"
	statusBusy     = "Consultando..."
	statusSupplier = "Consultando proveedor..."

	msgEmptyInput = "Ingresa una URL o una palabra clave."
	msgInFlight   = "Ya hay una consulta en curso."
	msgCancelled  = "Consulta cancelada."
	msgTimeout    = "Tiempo de espera agotado al consultar el servicio."
	msgNoClient   = "No hay cliente de API configurado."
)

var errEmptyInput = errors.New("empty query input")

// RequestKind discriminates a QueryRequest.
type RequestKind int

const (
	RequestLookup RequestKind = iota
	RequestSearch
)

// QueryRequest is one primary query, built fresh per submission.
type QueryRequest struct {
	Kind    RequestKind
	Locator string
	Term    string
	Dataset string
	Limit   int
}

// BuildRequest interprets raw input for mode. Limit is only kept for keyword
// search, where a non-positive value becomes the default.
func BuildRequest(raw, dataset string, mode Mode, limit int) (QueryRequest, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return QueryRequest{}, errEmptyInput
	}
	if mode == ModeKeyword {
		if limit <= 0 {
			limit = api.DefaultSearchLimit
		}
		return QueryRequest{Kind: RequestSearch, Term: input, Dataset: dataset, Limit: limit}, nil
	}
	return QueryRequest{Kind: RequestLookup, Locator: input, Dataset: dataset}, nil
}

// Input is the user text the request was built from.
func (r QueryRequest) Input() string {
	if r.Kind == RequestSearch {
		return r.Term
	}
	return r.Locator
}

// Mode is the mode that produced the request.
func (r QueryRequest) Mode() Mode {
	if r.Kind == RequestSearch {
		return ModeKeyword
	}
	return ModeURL
}

// --- Messages ---

type queryDoneMsg struct {
	seq uint64
	req QueryRequest
	rs  results.ResultSet
	err error
}

type supplierDoneMsg struct {
	nit    string
	detail api.Record
	err    error
}

type datasetsLoadedMsg struct {
	list *api.DatasetList
	err  error
}

// --- Commands ---

// Execute runs req against client.
func Execute(ctx context.Context, client *api.Client, req QueryRequest) (results.ResultSet, error) {
	if client == nil {
		return results.ResultSet{}, errors.New(msgNoClient)
	}
	if req.Kind == RequestSearch {
		res, err := client.Search(ctx, api.SearchInput{Term: req.Term, Dataset: req.Dataset, Limit: req.Limit})
		if err != nil {
			return results.ResultSet{}, err
		}
		return results.FromSearch(res, req.Dataset), nil
	}
	res, err := client.Lookup(ctx, api.LookupInput{URL: req.Locator, Dataset: req.Dataset})
	if err != nil {
		return results.ResultSet{}, err
	}
	return results.FromLookup(res, req.Dataset), nil
}

func queryCmd(ctx context.Context, client *api.Client, seq uint64, req QueryRequest) tea.Cmd {
	return func() tea.Msg {
		rs, err := Execute(ctx, client, req)
		return queryDoneMsg{seq: seq, req: req, rs: rs, err: err}
	}
}

func supplierCmd(client *api.Client, nit string) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return supplierDoneMsg{nit: nit, err: errors.New(msgNoClient)}
		}
		detail, err := client.Supplier(context.Background(), nit)
		return supplierDoneMsg{nit: nit, detail: detail, err: err}
	}
}

func loadDatasetsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return datasetsLoadedMsg{err: errors.New(msgNoClient)}
		}
		list, err := client.ListDatasets(context.Background())
		return datasetsLoadedMsg{list: list, err: err}
	}
}

func recordHistoryCmd(store *history.Store, entry history.Entry) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		if _, err := store.Add(entry); err != nil {
			logging.Warn("history add failed", "error", err)
		}
		return nil
	}
}

// --- Dispatch ---

// submit validates the input and starts the primary query. Only one may be
// in flight; overlapping submissions are rejected.
func (a *App) submit() tea.Cmd {
	if a.state.Busy {
		return a.notify(msgInFlight, SeverityInfo)
	}
	req, err := BuildRequest(a.modes.Query.Value(), a.currentDataset(), a.modes.Mode(), a.modes.LimitValue())
	if err != nil {
		return a.notify(msgEmptyInput, SeverityError)
	}

	ctx, seq := a.acquire(req)
	logging.Info("query submitted", "mode", req.Mode().String(), "dataset", req.Dataset, "seq", seq)
	return tea.Batch(queryCmd(ctx, a.client, seq, req), a.spinner.Tick)
}

// acquire puts the form into its busy state: inputs disabled, previous
// results cleared, title replaced. release undoes it.
func (a *App) acquire(req QueryRequest) (context.Context, uint64) {
	a.seq++
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.inflight = &req

	a.state.Busy = true
	a.state.StatusText = statusBusy
	a.modes.Query.Blur()
	a.modes.Limit.Blur()
	a.focus = focusQuery
	a.clearResults()
	a.title = results.BusyTitle
	return ctx, a.seq
}

// release restores the idle form. It runs for every completion of the
// current query, success or not. Stale completions return false.
func (a *App) release(seq uint64) bool {
	if seq != a.seq || !a.state.Busy {
		return false
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.inflight = nil
	a.state.Busy = false
	a.state.StatusText = statusIdle
	a.focusInput(focusQuery)
	return true
}

// cancelQuery aborts the in-flight primary query. Its completion still
// arrives and releases the form.
func (a *App) cancelQuery() bool {
	if !a.state.Busy || a.cancel == nil {
		return false
	}
	logging.Info("query cancelled", "seq", a.seq)
	a.cancel()
	return true
}

func (a *App) finishQuery(msg queryDoneMsg) tea.Cmd {
	if !a.release(msg.seq) {
		logging.Debug("stale query result dropped", "seq", msg.seq, "current", a.seq)
		return nil
	}

	entry := history.Entry{
		Mode:    msg.req.Mode().String(),
		Input:   msg.req.Input(),
		Dataset: msg.req.Dataset,
		Limit:   msg.req.Limit,
	}

	if msg.err != nil {
		text := errorMessage(msg.err)
		logging.Warn("query failed", "mode", entry.Mode, "error", msg.err)
		a.title = results.ErrorTitle
		entry.Error = text
		return tea.Batch(a.notify(text, SeverityError), recordHistoryCmd(a.history, entry))
	}

	a.showResults(msg.rs)
	entry.Count = len(msg.rs.Records)
	if msg.rs.Origin == results.OriginSearch {
		entry.Count = msg.rs.Count
	}

	note := "Consulta completada."
	if msg.rs.Origin == results.OriginSearch {
		note = fmt.Sprintf("%d resultado(s) encontrados.", msg.rs.Count)
	}
	return tea.Batch(a.notify(note, SeveritySuccess), recordHistoryCmd(a.history, entry))
}

// fetchSupplierDetail looks up a supplier by NIT. It does not touch the busy
// state or the primary results.
func (a *App) fetchSupplierDetail(taxID string) tea.Cmd {
	digits := fields.CleanNIT(taxID)
	if digits == "" {
		return a.notify(fields.NotAvailable, SeverityError)
	}
	a.state.StatusText = statusSupplier
	return tea.Batch(supplierCmd(a.client, digits), a.spinner.Tick)
}

func (a *App) finishSupplier(msg supplierDoneMsg) tea.Cmd {
	a.state.StatusText = statusIdle
	if a.state.Busy {
		a.state.StatusText = statusBusy
	}
	if msg.err != nil {
		logging.Warn("supplier lookup failed", "nit", msg.nit, "error", msg.err)
		return a.notify(errorMessage(msg.err), SeverityError)
	}
	a.modal.Open("Proveedor / NIT "+msg.nit, msg.detail)
	return a.notify("Proveedor consultado.", SeveritySuccess)
}

// errorMessage turns a query error into the text shown to the user: the
// server explanation when there is one, else a transport description.
func errorMessage(err error) string {
	if errors.Is(err, context.Canceled) {
		return msgCancelled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return msgTimeout
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return msgTimeout
		}
		return "No se pudo conectar con el servicio: " + urlErr.Err.Error()
	}
	return err.Error()
}

func (a *App) notify(message string, severity Severity) tea.Cmd {
	return a.state.Notices.Notify(message, severity, a.now())
}
