package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/richienod0llar/chromamood/internal/dataset"
	"github.com/richienod0llar/chromamood/internal/imagecolor"
	"github.com/richienod0llar/chromamood/internal/pipeline"
	"github.com/richienod0llar/chromamood/internal/wada"
	"github.com/richienod0llar/chromamood/pkg/util"
)

const resultsCSVName = "color_analysis_results.csv"

// sampleSeed keeps --sample runs reproducible across invocations.
const sampleSeed = 42

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract dominant colors and match palettes for every image",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := pidPath.CheckAndSet(); err != nil {
			return fail(12, err)
		}

		nice := viper.GetInt("nice")
		if err := util.BeNice(nice); err != nil {
			log.Warn().Err(err).Int("nice", nice).Msg("unable to adjust priority")
		}

		records, err := dataset.ReadMergedCSV(viper.GetString("analyze.dataset"))
		if err != nil {
			return err
		}

		records = dataset.FilterYears(records,
			viper.GetInt("analyze.min-year"), viper.GetInt("analyze.max-year"))
		records = dataset.FilterHasImage(records)

		if designer := viper.GetString("analyze.designer"); designer != "" {
			records = dataset.FilterDesigner(records, designer)
		}
		if category := viper.GetString("analyze.category"); category != "" {
			records = dataset.FilterCategory(records, category)
		}
		if season := viper.GetString("analyze.season"); season != "" {
			records = dataset.FilterSeason(records, season)
		}

		if n := viper.GetInt("analyze.sample"); n > 0 {
			records = dataset.Sample(records, n, sampleSeed)
		}

		if len(records) == 0 {
			return fail(12, "no records with images after filtering")
		}

		set, err := wada.Load(cmd.Context(), viper.GetString("analyze.palette-url"))
		if err != nil {
			return err
		}

		p := pipeline.New(pipeline.Config{
			Workers:  viper.GetInt("analyze.workers"),
			Clusters: viper.GetInt("analyze.clusters"),
			Resize:   viper.GetInt("analyze.resize"),
			Progress: true,
		}, set)

		results, err := p.Run(cmd.Context(), records)
		if err != nil {
			return err
		}

		outDir := viper.GetString("analyze.out")
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fail(12, "unable to create output directory: %w", err)
		}

		csvPath := filepath.Join(outDir, resultsCSVName)
		if err := dataset.WriteResultsCSV(csvPath, results); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "analyzed %d images (%d failed) into %s\n",
			p.Processed(), p.Failed(), csvPath)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("dataset", mergedCSVName, "merged dataset CSV")
	viper.BindPFlag("analyze.dataset", analyzeCmd.Flags().Lookup("dataset"))

	analyzeCmd.Flags().String("out", ".", "output directory")
	viper.BindPFlag("analyze.out", analyzeCmd.Flags().Lookup("out"))

	analyzeCmd.Flags().Int("sample", 0, "analyze a fixed random sample of N records")
	viper.BindPFlag("analyze.sample", analyzeCmd.Flags().Lookup("sample"))

	analyzeCmd.Flags().Int("clusters", imagecolor.DefaultClusters, "dominant colors per image")
	viper.BindPFlag("analyze.clusters", analyzeCmd.Flags().Lookup("clusters"))

	analyzeCmd.Flags().Int("resize", imagecolor.DefaultResize, "bound the longest image dimension")
	viper.BindPFlag("analyze.resize", analyzeCmd.Flags().Lookup("resize"))

	analyzeCmd.Flags().Int("workers", 4, "concurrent image workers")
	viper.BindPFlag("analyze.workers", analyzeCmd.Flags().Lookup("workers"))

	analyzeCmd.Flags().String("designer", "", "only analyze designers matching this substring")
	viper.BindPFlag("analyze.designer", analyzeCmd.Flags().Lookup("designer"))

	analyzeCmd.Flags().String("category", "", "only analyze one category")
	viper.BindPFlag("analyze.category", analyzeCmd.Flags().Lookup("category"))

	analyzeCmd.Flags().String("season", "", "only analyze one season")
	viper.BindPFlag("analyze.season", analyzeCmd.Flags().Lookup("season"))

	analyzeCmd.Flags().Int("min-year", 1988, "drop records before this year")
	viper.BindPFlag("analyze.min-year", analyzeCmd.Flags().Lookup("min-year"))

	analyzeCmd.Flags().Int("max-year", 2025, "drop records after this year")
	viper.BindPFlag("analyze.max-year", analyzeCmd.Flags().Lookup("max-year"))

	analyzeCmd.Flags().String("palette-url", wada.DefaultSourceURL, "palette data source")
	viper.BindPFlag("analyze.palette-url", analyzeCmd.Flags().Lookup("palette-url"))

	rootCmd.AddCommand(analyzeCmd)
}
