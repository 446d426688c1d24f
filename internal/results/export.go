package results

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gravitrone/secop-lookup/internal/api"
)

type exportDoc struct {
	Title      string       `json:"title"`
	Dataset    string       `json:"dataset"`
	Origin     string       `json:"origin"`
	Count      int          `json:"count"`
	ExportedAt time.Time    `json:"exported_at"`
	Records    []api.Record `json:"records"`
}

// WriteJSON writes the result set as indented JSON, keeping field order.
func WriteJSON(w io.Writer, rs ResultSet, now time.Time) error {
	records := rs.Records
	if records == nil {
		records = []api.Record{}
	}
	doc := exportDoc{
		Title:      rs.Title,
		Dataset:    rs.Dataset,
		Origin:     rs.Origin.String(),
		Count:      rs.Count,
		ExportedAt: now.UTC(),
		Records:    records,
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ExportFileName is the file name used for an export made at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("secop-%s.json", now.Format("20060102-150405"))
}

// Export writes the result set into dir and returns the file path.
func Export(dir string, rs ResultSet, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, ExportFileName(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export: %w", err)
	}
	if err := WriteJSON(f, rs, now); err != nil {
		f.Close()
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}
	return path, nil
}
