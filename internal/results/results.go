// Package results builds the view tree shown for a query response.
package results

import (
	"fmt"

	"github.com/gravitrone/secop-lookup/internal/api"
)

// Titles shown above the results area.
const (
	BusyTitle  = "Buscando..."
	ErrorTitle = "Error en la consulta"
	EmptyText  = "No se encontraron resultados."
)

// Origin tells which kind of query produced a result set.
type Origin int

const (
	OriginLookup Origin = iota
	OriginSearch
)

func (o Origin) String() string {
	if o == OriginSearch {
		return "search"
	}
	return "lookup"
}

// ResultSet is the outcome of one primary query. It always replaces the
// previous one.
type ResultSet struct {
	Records []api.Record
	Count   int
	Title   string
	Dataset string
	Origin  Origin
}

// LookupTitle is the title for a single-record lookup.
func LookupTitle(dataset string) string {
	return fmt.Sprintf("Resultado para URL/identificador (%s)", dataset)
}

// SearchTitle is the title for a keyword search.
func SearchTitle(count int, dataset string) string {
	return fmt.Sprintf("Resultados (%d) en %s", count, dataset)
}

// FromLookup wraps the single lookup record into a result set.
func FromLookup(res *api.LookupResult, dataset string) ResultSet {
	rs := ResultSet{
		Title:   LookupTitle(dataset),
		Dataset: dataset,
		Origin:  OriginLookup,
		Count:   1,
	}
	if res != nil && res.Record != nil {
		rs.Records = []api.Record{*res.Record}
	} else {
		rs.Records = []api.Record{{}}
	}
	return rs
}

// FromSearch builds a result set from a search response. The title uses the
// server count, not the number of records received.
func FromSearch(res *api.SearchResult, dataset string) ResultSet {
	rs := ResultSet{
		Dataset: dataset,
		Origin:  OriginSearch,
	}
	if res != nil {
		rs.Records = res.Records
		rs.Count = res.Count
	}
	rs.Title = SearchTitle(rs.Count, dataset)
	return rs
}
