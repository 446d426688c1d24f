package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DatasetsCmd returns the `secop datasets` command.
func DatasetsCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List the datasets the backend can query",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return err
			}
			client := cfg.Client()
			out := cmd.OutOrStdout()

			if check {
				status, err := client.Health(cmd.Context())
				if err != nil {
					return fmt.Errorf("health check: %w", queryFailed(err))
				}
				fmt.Fprintf(out, "api %s: %s\n", client.BaseURL(), status)
			}

			list, err := client.ListDatasets(cmd.Context())
			if err != nil {
				return fmt.Errorf("list datasets: %w", queryFailed(err))
			}
			for _, name := range list.Names() {
				marker := " "
				if name == list.Default {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "call /health before listing")
	return cmd
}
