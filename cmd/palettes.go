package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/richienod0llar/chromamood/internal/wada"
)

var palettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "Inspect the embedded Sanzo Wada reference palettes",
}

var palettesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every embedded palette",
	RunE: func(cmd *cobra.Command, _ []string) error {
		set, err := wada.LoadEmbedded()
		if err != nil {
			return err
		}

		for _, p := range set.Palettes {
			hexes := make([]string, len(p.Colors))
			for i, c := range p.Colors {
				hexes[i] = c.Hex
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-28s %s\n",
				p.ID, p.Name, strings.Join(hexes, " "))
		}

		return nil
	},
}

var palettesShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one palette in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := wada.LoadEmbedded()
		if err != nil {
			return err
		}

		p := set.ByID(args[0])
		if p == nil {
			return fmt.Errorf("unknown palette: %s", args[0])
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", p.Name, p.ID)
		if p.OriginalName != "" && p.OriginalName != p.Name {
			fmt.Fprintf(cmd.OutOrStdout(), "original: %s\n", p.OriginalName)
		}

		for _, c := range p.Colors {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  rgb(%3d,%3d,%3d)  lab(%.1f, %.1f, %.1f)\n",
				c.Hex, c.R, c.G, c.B, c.Lab.L, c.Lab.A, c.Lab.B)
		}

		return nil
	},
}

func init() {
	palettesCmd.AddCommand(palettesListCmd)
	palettesCmd.AddCommand(palettesShowCmd)
	rootCmd.AddCommand(palettesCmd)
}
