package api

// --- Datasets ---

// Dataset describes one backend data source. Only Name is guaranteed.
type Dataset struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"`
}

// DatasetList is the /meta/datasets payload.
type DatasetList struct {
	Datasets []Dataset `json:"datasets"`
	Default  string    `json:"default"`
}

// Names returns the dataset display names in order, skipping blanks.
func (l DatasetList) Names() []string {
	out := make([]string, 0, len(l.Datasets))
	for _, d := range l.Datasets {
		if d.Name != "" {
			out = append(out, d.Name)
		}
	}
	return out
}

// --- Lookup / Search ---

// LookupInput is the /lookup request body.
type LookupInput struct {
	URL     string `json:"url"`
	Dataset string `json:"dataset"`
}

// LookupResult is the /lookup payload.
type LookupResult struct {
	Dataset string  `json:"dataset"`
	Record  *Record `json:"record"`
}

// SearchInput holds the /search query parameters.
type SearchInput struct {
	Term    string
	Dataset string
	Limit   int
}

// SearchResult is the /search payload. Count is zero when the server omits it.
type SearchResult struct {
	Dataset string   `json:"dataset"`
	Count   int      `json:"count"`
	Records []Record `json:"records"`
}
