package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gravitrone/secop-lookup/internal/ui"
	"github.com/gravitrone/secop-lookup/internal/ui/components"
)

var historyColumns = []components.TableColumn{
	{Header: "Fecha", Width: 16},
	{Header: "Modo", Width: 8},
	{Header: "Consulta", Width: 30},
	{Header: "Dataset", Width: 22},
	{Header: "Res.", Width: 5, Align: lipgloss.Right},
	{Header: "Error", Width: 14},
}

// HistoryCmd returns the `secop history` command.
func HistoryCmd() *cobra.Command {
	var mode string
	var limit int
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent queries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := OpenHistory(cfg)
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("history is disabled (history_enabled: false)")
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if clearAll {
				if err := store.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(out, "history cleared")
				return nil
			}

			filter := ""
			if mode != "" {
				m, ok := ui.ParseMode(mode)
				if !ok {
					return fmt.Errorf("unknown mode %q (want url or keyword)", mode)
				}
				filter = m.String()
			}

			items, err := store.Recent(filter, limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(out, "no queries yet")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, e := range items {
				rows = append(rows, []string{
					e.CreatedAt.Local().Format("2006-01-02 15:04"),
					e.Mode,
					components.SanitizeOneLine(e.Input),
					notAvailable(e.Dataset),
					strconv.Itoa(e.Count),
					e.Error,
				})
			}
			fmt.Fprintln(out, components.TableGrid(historyColumns, rows, outputWidth))
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "only show url or keyword queries")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete every entry")
	return cmd
}
