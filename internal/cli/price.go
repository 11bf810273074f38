package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type priceOptions struct {
	cartFile string
	taxRate  string
	timezone string
	asJSON   bool
}

func newPriceCommand(root *rootOptions) *cobra.Command {
	opts := &priceOptions{}

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a cart with the catalog discounts",
		Long: `Price a cart read from a JSON file (or stdin with --cart -) and print
the receipt. Discounts come from the catalog, prices are in the base currency.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrice(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.cartFile, "cart", "", "Cart JSON file, - for stdin")
	cmd.Flags().StringVar(&opts.taxRate, "tax-rate", "0", "Tax rate in percent when the cart has none")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "UTC", "Store timezone for discount windows")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the priced snapshot as JSON")
	_ = cmd.MarkFlagRequired("cart")

	return cmd
}

func readCart(cmd *cobra.Command, path string) (domain.Cart, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("cannot read cart: %w", err)
		}
		defer f.Close()
		r = f
	}

	var cart domain.Cart
	if err := json.NewDecoder(r).Decode(&cart); err != nil {
		return domain.Cart{}, fmt.Errorf("cannot decode cart: %w", err)
	}
	return cart, nil
}

func runPrice(cmd *cobra.Command, root *rootOptions, opts *priceOptions) error {
	taxRate, err := decimal.NewFromString(opts.taxRate)
	if err != nil {
		return fmt.Errorf("invalid --tax-rate %q: %w", opts.taxRate, err)
	}
	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("invalid --timezone %q: %w", opts.timezone, err)
	}

	cart, err := readCart(cmd, opts.cartFile)
	if err != nil {
		return err
	}

	rt, err := newRuntime(cmd.Context(), root, pricingOptions{taxRate: taxRate, location: loc})
	if err != nil {
		return err
	}

	snapshot, err := rt.pricing.Price(cmd.Context(), cart)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot)
	}

	printReceipt(out, rt, snapshot)
	return nil
}

func printReceipt(w io.Writer, rt *runtime, s *domain.PricedCartSnapshot) {
	format := func(d decimal.Decimal) string { return rt.registry.Format(d, s.Currency) }

	for _, line := range s.Lines {
		label := line.ProductRef
		if line.Name != "" {
			label = line.Name
		}
		qty := fmt.Sprintf("x%d", line.Quantity)
		if line.IsWeighted() {
			qty = "x" + line.Weight.String()
		}
		fmt.Fprintf(w, "%-30s %8s %12s\n", label, qty, format(line.ComputedSubtotal))
	}
	for _, gift := range s.FreeGifts {
		fmt.Fprintf(w, "%-30s %8s %12s\n", gift.ProductRef, "gift", format(decimal.Zero))
	}

	fmt.Fprintf(w, "Subtotal: %s\n", format(s.Subtotal))
	if s.LineDiscountAmount.IsPositive() {
		fmt.Fprintf(w, "Line discounts: -%s\n", format(s.LineDiscountAmount))
	}
	for _, applied := range s.AppliedDiscounts {
		fmt.Fprintf(w, "  %s: -%s\n", applied.Name, format(applied.Amount))
	}
	fmt.Fprintf(w, "Discounts: -%s\n", format(s.DiscountAmount))
	fmt.Fprintf(w, "Tax (%s%%): %s\n", s.TaxRate.String(), format(s.TaxAmount))
	fmt.Fprintf(w, "Total: %s\n", format(s.Total))
}
