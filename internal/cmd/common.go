package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gravitrone/secop-lookup/internal/api"
	"github.com/gravitrone/secop-lookup/internal/config"
	"github.com/gravitrone/secop-lookup/internal/fields"
	"github.com/gravitrone/secop-lookup/internal/history"
	"github.com/gravitrone/secop-lookup/internal/logging"
	"github.com/gravitrone/secop-lookup/internal/results"
	"github.com/gravitrone/secop-lookup/internal/ui"
	"github.com/gravitrone/secop-lookup/internal/ui/components"
)

const outputWidth = 100

// Replaced in tests.
var now = time.Now

// LoadConfig reads the config and applies the --api-url flag when the
// command (or a parent) defines it.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f := cmd.Flag("api-url"); f != nil {
		if v := strings.TrimRight(strings.TrimSpace(f.Value.String()), "/"); v != "" {
			cfg.BaseURL = v
		}
	}
	return cfg, nil
}

// OpenHistory opens the query history, or returns nil when it is disabled.
func OpenHistory(cfg *config.Config) (*history.Store, error) {
	if cfg == nil || !cfg.HistoryEnabled {
		return nil, nil
	}
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}

// resolveDataset picks the explicit dataset, otherwise it applies the same
// preference as the TUI to the backend list, or to the fallback list when the
// backend cannot be reached.
func resolveDataset(ctx context.Context, client *api.Client, cfg *config.Config, explicit string) string {
	if ds := strings.TrimSpace(explicit); ds != "" {
		return ds
	}
	configured := ""
	if cfg != nil {
		configured = cfg.DefaultDataset
	}

	list, err := client.ListDatasets(ctx)
	if err != nil || len(list.Names()) == 0 {
		logging.Warn("dataset list unavailable, using fallback", "error", err)
		names := ui.FallbackDatasets()
		return names[ui.PreferredDataset(names, configured, "")]
	}
	names := list.Names()
	return names[ui.PreferredDataset(names, configured, list.Default)]
}

// record stores a CLI query in the history when it is enabled. Failures are
// logged only.
func record(cfg *config.Config, entry history.Entry) {
	store, err := OpenHistory(cfg)
	if err != nil {
		logging.Warn("history unavailable", "error", err)
		return
	}
	if store == nil {
		return
	}
	defer store.Close()
	if _, err := store.Add(entry); err != nil {
		logging.Warn("history add failed", "error", err)
	}
}

// writeResults prints a result set as cards, or as the export JSON.
func writeResults(out io.Writer, rs results.ResultSet, asJSON bool) error {
	if asJSON {
		return results.WriteJSON(out, rs, now())
	}

	page := results.Render(rs)
	fmt.Fprintln(out, page.Title)
	if page.Empty {
		fmt.Fprintln(out, page.Placeholder)
		return nil
	}
	for _, card := range page.Cards {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "#%d %s\n", card.Index, components.SanitizeOneLine(card.Heading))
		fmt.Fprintf(out, "   %s\n", components.SanitizeOneLine(card.Subheading))

		rows := make([]components.TableRow, 0, len(card.Fields))
		for _, f := range card.Fields {
			value := f.Text
			if f.NIT != nil {
				value = f.NIT.Label + " (" + f.NIT.RegistryURL + ")"
			}
			rows = append(rows, components.TableRow{Label: f.Key, Value: value})
		}
		if len(rows) > 0 {
			fmt.Fprintln(out, components.Indent(components.TableBody(rows, outputWidth-3), 3))
		}
	}
	return nil
}

// queryFailed keeps only the server explanation of an API error.
func queryFailed(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.Message)
	}
	return err
}

func notAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return fields.NotAvailable
	}
	return s
}
