package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/auburus/expense-splitter/internal/core"
	applog "github.com/auburus/expense-splitter/internal/log"
)

type splitResult struct {
	Amount    string   `json:"amount" yaml:"amount"`
	Parts     int      `json:"parts" yaml:"parts"`
	Shares    []string `json:"shares" yaml:"shares"`
	Formatted []string `json:"formatted" yaml:"formatted"`
}

func newSplitCmd(o *rootOptions) *cobra.Command {
	var (
		output string
		sorted bool
	)

	cmd := &cobra.Command{
		Use:   "split <amount> <parts>",
		Short: "Split an amount into fair shares",
		Long: `Splits an amount into the given number of shares. The shares add up
exactly to the amount rounded to cents, and no two shares differ by more
than one cent.

Example:
  splitctl split 10 3
  splitctl split 100,00 7 --output yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := core.ParseSignedAmount(args[0])
			if err != nil {
				return err
			}
			parts, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parts must be an integer: %q", args[1])
			}
			if parts > core.MaxParts {
				return fmt.Errorf("parts must be at most %d, got %d", core.MaxParts, parts)
			}
			formatter, err := o.formatter()
			if err != nil {
				return err
			}

			shares, err := core.SplitDecimal(total, parts)
			if err != nil {
				return err
			}
			if sorted {
				slices.SortFunc(shares, func(a, b decimal.Decimal) int { return a.Cmp(b) })
			}

			rounded, err := core.MoneyFromDecimal(total)
			if err != nil {
				return err
			}
			applog.NewStructuredLogger(applog.FromContext(cmd.Context())).LogSplit(cmd.Context(), rounded.Cents, parts)

			res := splitResult{
				Amount:    rounded.String(),
				Parts:     parts,
				Shares:    make([]string, len(shares)),
				Formatted: make([]string, len(shares)),
			}
			for i, s := range shares {
				res.Shares[i] = s.StringFixed(2)
				res.Formatted[i] = formatter.FormatDecimal(s)
			}
			return writeSplit(cmd.OutOrStdout(), output, res)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&sorted, "sorted", false, "print shares in ascending order")
	return cmd
}

func writeSplit(w io.Writer, output string, res splitResult) error {
	switch output {
	case "text":
		for _, f := range res.Formatted {
			if _, err := fmt.Fprintln(w, f); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q: must be text, json or yaml", output)
	}
}
