package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/auburus/expense-splitter/internal/core"
)

func newFormatCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "format <amount>",
		Short: "Format an amount as currency",
		Long: `Formats an amount for the selected locale and currency.

Example:
  splitctl format 1234.5
  splitctl format 1234.5 --locale en-US --currency USD`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := core.ParseSignedAmount(args[0])
			if err != nil {
				return err
			}
			formatter, err := o.formatter()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDecimal(amount))
			return err
		},
	}
}
