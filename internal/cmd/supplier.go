package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitrone/secop-lookup/internal/fields"
	"github.com/gravitrone/secop-lookup/internal/ui"
	"github.com/gravitrone/secop-lookup/internal/ui/components"
)

// SupplierCmd returns the `secop proveedor` command.
func SupplierCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "proveedor <nit>",
		Aliases: []string{"supplier"},
		Short:   "Show the registered supplier for a NIT",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			digits := fields.CleanNIT(args[0])
			if digits == "" {
				return fmt.Errorf("nit %q has no digits", args[0])
			}
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return err
			}

			detail, err := cfg.Client().Supplier(cmd.Context(), digits)
			if err != nil {
				return queryFailed(err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(detail, "", "  ")
				if err != nil {
					return fmt.Errorf("encode supplier: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			var modal ui.Modal
			modal.Open("Proveedor / NIT "+digits, detail)
			fmt.Fprintln(out, components.Table(modal.Title(), modal.Rows(), outputWidth))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw supplier record")
	return cmd
}
