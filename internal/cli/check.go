package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the catalog file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(root.catalogFile)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: %d currencies, %d discounts, %d rates\n",
				len(cat.Currencies), len(cat.Discounts), len(cat.Rates))
			return nil
		},
	}
}
