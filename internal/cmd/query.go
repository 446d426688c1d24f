package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gravitrone/secop-lookup/internal/history"
	"github.com/gravitrone/secop-lookup/internal/logging"
	"github.com/gravitrone/secop-lookup/internal/results"
	"github.com/gravitrone/secop-lookup/internal/ui"
)

// LookupCmd returns the `secop lookup` command.
func LookupCmd() *cobra.Command {
	var dataset string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "lookup <url-o-noticeUID>",
		Short: "Look up one process by its SECOP URL or noticeUID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], dataset, ui.ModeURL, 0, asJSON)
		},
	}
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset to query")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the export JSON instead of cards")
	return cmd
}

// SearchCmd returns the `secop search` command.
func SearchCmd() *cobra.Command {
	var dataset string
	var limit int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search <palabra>",
		Short: "Search processes by keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], dataset, ui.ModeKeyword, limit, asJSON)
		},
	}
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset to query")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of records (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the export JSON instead of cards")
	return cmd
}

func runQuery(cmd *cobra.Command, input, dataset string, mode ui.Mode, limit int, asJSON bool) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	if mode == ui.ModeKeyword && limit <= 0 {
		limit = cfg.DefaultLimit
	}

	req, err := ui.BuildRequest(input, "", mode, limit)
	if err != nil {
		return errors.New("ingresa una URL o una palabra clave")
	}

	client := cfg.Client()
	ctx := cmd.Context()
	ds := resolveDataset(ctx, client, cfg, dataset)
	req.Dataset = ds

	entry := history.Entry{Mode: mode.String(), Input: req.Input(), Dataset: ds, Limit: req.Limit}
	rs, err := ui.Execute(ctx, client, req)
	if err != nil {
		err = queryFailed(err)
		entry.Error = err.Error()
		record(cfg, entry)
		logging.Warn("cli query failed", "mode", entry.Mode, "error", err)
		return err
	}
	entry.Count = len(rs.Records)
	if rs.Origin == results.OriginSearch {
		entry.Count = rs.Count
	}
	record(cfg, entry)
	return writeResults(cmd.OutOrStdout(), rs, asJSON)
}
