package cli

import (
	"fmt"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/avc/pos-pricing/internal/exchange"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newConvertCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "convert AMOUNT FROM TO",
		Short: "Convert an amount between currencies",
		Long: `Convert an amount using the catalog rates. A pair without a direct or
reverse rate converts at 1 and is reported as a fallback.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			from, to := domain.NormalizeCode(args[1]), domain.NormalizeCode(args[2])
			for _, code := range []string{from, to} {
				if err := exchange.ValidateCode(code); err != nil {
					return err
				}
			}

			rt, err := newRuntime(cmd.Context(), root, baseOptions())
			if err != nil {
				return err
			}

			hasRate, err := rt.store.HasRate(cmd.Context(), from, to)
			if err != nil {
				return err
			}

			c := rt.conversion.Convert(cmd.Context(), amount, from, to)
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (rate %s)\n",
				rt.conversion.Format(c.OriginalAmount, from),
				rt.conversion.FormatConversion(c),
				c.ExchangeRate.String(),
			)
			if !hasRate && from != to {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: no rate for %s, converted at 1\n", domain.PairKey(from, to))
			}
			return nil
		},
	}
}
