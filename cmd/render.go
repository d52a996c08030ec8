package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/richienod0llar/chromamood/internal/analysis"
	"github.com/richienod0llar/chromamood/internal/chart"
	"github.com/richienod0llar/chromamood/internal/dataset"
	"github.com/richienod0llar/chromamood/internal/wada"
)

// minDesignerImages keeps designer aggregates statistically meaningful.
const minDesignerImages = 50

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Aggregate results into trend CSVs and figures",
	RunE: func(cmd *cobra.Command, _ []string) error {
		results, err := dataset.ReadResultsCSV(viper.GetString("render.results"))
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return fail(14, "no results to render")
		}

		set, err := wada.Load(cmd.Context(), viper.GetString("render.palette-url"))
		if err != nil {
			return err
		}

		outDir := viper.GetString("render.out")
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fail(14, "unable to create output directory: %w", err)
		}

		top := viper.GetInt("render.top")

		yearly := analysis.ByYear(results)
		decades := analysis.ByDecade(results)
		paletteFreqs := analysis.PaletteFrequencyByYear(results)
		topPalettes := analysis.TopPalettes(results, top)
		distances := analysis.DecadeDistances(results)
		seasons := analysis.BySeason(results)
		designers := analysis.ByDesigner(results, minDesignerImages)
		decadePalettes := analysis.DominantPalettePerDecade(results, set)

		out := func(name string) string { return filepath.Join(outDir, name) }

		csvs := []struct {
			name  string
			write func() error
		}{
			{"yearly_statistics.csv", func() error { return analysis.WriteYearlyCSV(out("yearly_statistics.csv"), yearly) }},
			{"decade_statistics.csv", func() error { return analysis.WriteDecadeCSV(out("decade_statistics.csv"), decades) }},
			{"palette_by_year.csv", func() error { return analysis.WritePaletteByYearCSV(out("palette_by_year.csv"), paletteFreqs) }},
			{"decade_distances.csv", func() error { return analysis.WriteDecadeDistancesCSV(out("decade_distances.csv"), distances) }},
			{"seasonal_analysis.csv", func() error { return analysis.WriteGroupCSV(out("seasonal_analysis.csv"), "season", seasons) }},
			{"designer_analysis.csv", func() error { return analysis.WriteGroupCSV(out("designer_analysis.csv"), "designer", designers) }},
			{"decade_palettes.csv", func() error { return analysis.WriteDecadePalettesCSV(out("decade_palettes.csv"), decadePalettes) }},
		}

		for _, c := range csvs {
			if err := c.write(); err != nil {
				return fmt.Errorf("unable to write %s: %w", c.name, err)
			}
		}

		figures := []struct {
			name  string
			write func() error
		}{
			{"temporal_trends.png", func() error { return chart.TemporalTrends(yearly, out("temporal_trends.png")) }},
			{"color_diversity.png", func() error { return chart.ColorDiversity(yearly, out("color_diversity.png")) }},
			{"palette_heatmap.png", func() error { return chart.PaletteHeatmap(paletteFreqs, topPalettes, out("palette_heatmap.png")) }},
			{"top_palettes.png", func() error { return chart.TopPalettes(topPalettes, out("top_palettes.png")) }},
			{"lab_distribution.png", func() error { return chart.LabDistribution(results, out("lab_distribution.png")) }},
			{"seasonal_comparison.png", func() error { return chart.SeasonalComparison(seasons, out("seasonal_comparison.png")) }},
			{"summary_dashboard.png", func() error { return chart.SummaryDashboard(yearly, out("summary_dashboard.png")) }},
			{"decade_strips.png", func() error { return chart.DecadeStrips(decadePalettes, out("decade_strips.png")) }},
		}

		for _, f := range figures {
			if err := f.write(); err != nil {
				log.Warn().Err(err).Str("figure", f.name).Msg("unable to render figure")
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "rendered %d years across %d results into %s\n",
			len(yearly), len(results), outDir)
		return nil
	},
}

func init() {
	renderCmd.Flags().String("results", resultsCSVName, "per-image results CSV")
	viper.BindPFlag("render.results", renderCmd.Flags().Lookup("results"))

	renderCmd.Flags().String("out", ".", "output directory")
	viper.BindPFlag("render.out", renderCmd.Flags().Lookup("out"))

	renderCmd.Flags().Int("top", 10, "number of top palettes in charts")
	viper.BindPFlag("render.top", renderCmd.Flags().Lookup("top"))

	renderCmd.Flags().String("palette-url", wada.DefaultSourceURL, "palette data source")
	viper.BindPFlag("render.palette-url", renderCmd.Flags().Lookup("palette-url"))

	rootCmd.AddCommand(renderCmd)
}
