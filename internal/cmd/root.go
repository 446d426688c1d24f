package cmd

import "github.com/spf13/cobra"

// RootCmd builds the `secop` command tree. runTUI runs when no subcommand
// is given.
func RootCmd(runTUI func(cmd *cobra.Command) error) *cobra.Command {
	root := &cobra.Command{
		Use:   "secop",
		Short: "SECOP - consulta de contratación pública",
		Long:  "secop: look up SECOP processes by URL or noticeUID, search by keyword, and inspect suppliers.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("api-url", "", "backend base URL (overrides config and SECOP_API_URL)")

	root.AddCommand(LookupCmd())
	root.AddCommand(SearchCmd())
	root.AddCommand(SupplierCmd())
	root.AddCommand(DatasetsCmd())
	root.AddCommand(HistoryCmd())
	return root
}
