package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/richienod0llar/chromamood/internal/dataset"
)

const mergedCSVName = "vogue_runway_merged.csv"
const mergedSummaryName = "merged_dataset_summary.txt"

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge per-image metadata folders into one dataset CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dirs := viper.GetStringSlice("corpus")
		if len(dirs) == 0 {
			return fail(11, "at least one --corpus directory is required")
		}

		outDir := viper.GetString("merge.out")
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fail(11, "unable to create output directory: %w", err)
		}

		records, err := dataset.Merge(dirs)
		if err != nil {
			return err
		}

		csvPath := filepath.Join(outDir, mergedCSVName)
		if err := dataset.WriteMergedCSV(csvPath, records); err != nil {
			return err
		}

		summaryPath := filepath.Join(outDir, mergedSummaryName)
		if err := dataset.WriteSummary(summaryPath, records); err != nil {
			return err
		}

		log.Info().Int("records", len(records)).Str("csv", csvPath).Msg("merged")
		fmt.Fprintf(cmd.OutOrStdout(), "merged %d records into %s\n", len(records), csvPath)
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringSlice("corpus", nil, "metadata directories to merge")
	viper.BindPFlag("corpus", mergeCmd.Flags().Lookup("corpus"))

	mergeCmd.Flags().String("out", ".", "output directory")
	viper.BindPFlag("merge.out", mergeCmd.Flags().Lookup("out"))

	rootCmd.AddCommand(mergeCmd)
}
