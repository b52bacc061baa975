package main

import (
	"github.com/spf13/cobra"

	"github.com/auburus/expense-splitter/internal/config"
	"github.com/auburus/expense-splitter/internal/core"
)

// rootOptions holds the persistent formatting flags.
type rootOptions struct {
	locale   string
	currency string
	digits   int
}

func (o *rootOptions) formatter() (*core.CurrencyFormatter, error) {
	opts := []core.FormatOption{
		core.WithLocale(o.locale),
		core.WithCurrency(o.currency),
	}
	if o.digits >= 0 {
		opts = append(opts, core.WithMinorUnitDigits(o.digits))
	}
	return core.NewCurrencyFormatter(opts...)
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	o := &rootOptions{}

	root := &cobra.Command{
		Use:   "splitctl",
		Short: "Split amounts fairly and format them as currency",
		Long: `splitctl divides amounts into shares that add up exactly to the
original total, and renders amounts for a locale and currency.

Defaults for --locale and --currency come from DEFAULT_LOCALE and
DEFAULT_CURRENCY.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&o.locale, "locale", cfg.DefaultLocale, "BCP 47 locale used for formatting")
	root.PersistentFlags().StringVar(&o.currency, "currency", cfg.DefaultCurrency, "ISO 4217 currency code")
	root.PersistentFlags().IntVar(&o.digits, "digits", -1, "fraction digits to show (-1 uses the currency standard)")

	root.AddCommand(newSplitCmd(o), newFormatCmd(o), newColorCmd())
	return root
}
