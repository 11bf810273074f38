package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRatesCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rates BASE",
		Short: "List active exchange rates from a currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context(), root, baseOptions())
			if err != nil {
				return err
			}

			rates, err := rt.rates.ActiveRates(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rates) == 0 {
				fmt.Fprintln(out, "no active rates")
				return nil
			}
			for _, r := range rates {
				manual := ""
				if r.IsManualOverride {
					manual = " (manual)"
				}
				fmt.Fprintf(out, "%s/%s %s %s%s\n", r.BaseCurrency, r.TargetCurrency, r.Rate.String(), r.Source, manual)
			}
			return nil
		},
	}
}
