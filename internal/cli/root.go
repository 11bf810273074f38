// Package cli содержит офлайн-команды кассы: расчет корзины, пересчет сумм
// и просмотр курсов по TOML-каталогу без запуска HTTP сервиса.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	catalogFile string
	verbose     bool
}

// NewRootCommand создает корневую команду posctl
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "posctl",
		Short: "Offline pricing and currency tools for the POS",
		Long: `posctl prices carts and converts amounts using a TOML catalog of
currencies, discounts and exchange rates. Without --catalog the built-in
currency set is used.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.catalogFile, "catalog", "f", "", "Catalog file with currencies, discounts and rates")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log to stderr")

	cmd.AddCommand(
		newPriceCommand(opts),
		newConvertCommand(opts),
		newRatesCommand(opts),
		newCheckCommand(opts),
	)
	return cmd
}

func (o *rootOptions) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
