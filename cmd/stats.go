package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/richienod0llar/chromamood/internal/chart"
	"github.com/richienod0llar/chromamood/internal/dataset"
	"github.com/richienod0llar/chromamood/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Run the hypothesis pipeline over analyzed results",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := dataset.ReadMergedCSV(viper.GetString("stats.dataset"))
		if err != nil {
			return err
		}

		results, err := dataset.ReadResultsCSV(viper.GetString("stats.results"))
		if err != nil {
			return err
		}

		rows, err := stats.Join(records, results)
		if err != nil {
			return err
		}

		report, err := stats.Analyze(rows)
		if err != nil {
			return err
		}

		outDirs := []string{viper.GetString("stats.out")}
		if webOut := viper.GetString("stats.web-out"); webOut != "" {
			outDirs = append(outDirs, webOut)
		}

		for _, dir := range outDirs {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fail(13, "unable to create output directory: %w", err)
			}
		}

		if err := report.WriteCSVs(outDirs...); err != nil {
			return err
		}

		for _, dir := range outDirs {
			if err := statsFigures(rows, report, dir); err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "stats written for %d rows into %s\n",
			len(rows), outDirs[0])
		return nil
	},
}

func statsFigures(rows []stats.Row, report *stats.Report, dir string) error {
	if report.HasAesthetic {
		if err := chart.AestheticVsLightness(rows,
			filepath.Join(dir, "stats_aesthetic_vs_lightness.png")); err != nil {
			return err
		}

		if err := chart.GroupDifferences(report,
			filepath.Join(dir, "stats_group_differences.png")); err != nil {
			return err
		}
	} else {
		log.Warn().Msg("no aesthetic scores: skipping aesthetic figures")
	}

	if err := chart.HypothesisEffects(report.Hypotheses,
		filepath.Join(dir, "stats_hypothesis_effects.png")); err != nil {
		return err
	}

	if len(report.TagEffects) == 0 {
		log.Warn().Msg("no testable tags: skipping tag effects figure")
		return nil
	}

	return chart.TagEffectsFigure(report.TagEffects, 15,
		filepath.Join(dir, "stats_tag_effects.png"))
}

func init() {
	statsCmd.Flags().String("dataset", mergedCSVName, "merged dataset CSV")
	viper.BindPFlag("stats.dataset", statsCmd.Flags().Lookup("dataset"))

	statsCmd.Flags().String("results", resultsCSVName, "per-image results CSV")
	viper.BindPFlag("stats.results", statsCmd.Flags().Lookup("results"))

	statsCmd.Flags().String("out", ".", "output directory")
	viper.BindPFlag("stats.out", statsCmd.Flags().Lookup("out"))

	statsCmd.Flags().String("web-out", "", "optional second output directory")
	viper.BindPFlag("stats.web-out", statsCmd.Flags().Lookup("web-out"))

	rootCmd.AddCommand(statsCmd)
}
