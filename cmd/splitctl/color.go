package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/auburus/expense-splitter/internal/core"
)

var swatchStyle = lipgloss.NewStyle().Width(4)

func newColorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color <id>...",
		Short: "Show the palette color assigned to each id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				id, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("id must be an integer: %q", arg)
				}
				hex := core.PaletteColor(id)
				swatch := swatchStyle.Background(lipgloss.Color(hex)).Render("")
				if _, err := fmt.Fprintf(out, "%s %d %s\n", swatch, id, hex); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
