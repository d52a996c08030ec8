package stats

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WriteCSVs saves every tabular artifact of the report into each output
// directory (the pipeline mirrors its outputs into a web-served copy).
func (report *Report) WriteCSVs(dirs ...string) error {
	tables := []struct {
		name string
		rows [][]string
	}{
		{"hypothesis_results.csv", report.hypothesisRows()},
		{"top_correlations.csv", report.correlationRows()},
		{"model_coefficients.csv", report.coefficientRows()},
		{"category_group_means.csv", groupMeansRows(report.CategoryMeans, "category")},
		{"season_group_means.csv", groupMeansRows(report.SeasonMeans, "season")},
		{"tag_effects_top.csv", report.tagEffectRows()},
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("unable to create %s: %w", dir, err)
		}

		for _, table := range tables {
			if err := writeRows(filepath.Join(dir, table.name), table.rows); err != nil {
				return err
			}
		}
	}

	return nil
}

//--------------------------------------------------------------------------------
// private

func (report *Report) hypothesisRows() [][]string {
	rows := [][]string{{"test_id", "hypothesis", "test_family", "effect_size", "p_value", "n", "q_value", "significant_fdr_5pct"}}
	for _, h := range report.Hypotheses {
		rows = append(rows, []string{
			h.TestID, h.Hypothesis, h.TestFamily,
			formatStat(h.EffectSize), formatStat(h.PValue),
			strconv.Itoa(h.N), formatStat(h.QValue),
			strconv.FormatBool(h.Significant),
		})
	}
	return rows
}

func (report *Report) correlationRows() [][]string {
	rows := [][]string{{"outcome", "predictor", "pearson_r", "pearson_p", "spearman_r", "spearman_p", "n"}}
	for _, c := range report.Correlations {
		rows = append(rows, []string{
			c.Outcome, c.Predictor,
			formatStat(c.PearsonR), formatStat(c.PearsonP),
			formatStat(c.SpearmanR), formatStat(c.SpearmanP),
			strconv.Itoa(c.N),
		})
	}
	return rows
}

func (report *Report) coefficientRows() [][]string {
	rows := [][]string{{"term", "coef", "std_err", "t_stat", "p_value", "ci_low", "ci_high", "n_obs", "dof", "q_value"}}
	for _, c := range report.Coefficients {
		rows = append(rows, []string{
			c.Term,
			formatStat(c.Coef), formatStat(c.StdErr), formatStat(c.TStat), formatStat(c.PValue),
			formatStat(c.CILow), formatStat(c.CIHigh),
			strconv.Itoa(c.NObs), strconv.Itoa(c.DOF),
			formatStat(c.QValue),
		})
	}
	return rows
}

func (report *Report) tagEffectRows() [][]string {
	rows := [][]string{{"tag", "n_tag", "prevalence", "point_biserial_r", "mean_aesthetic_if_tag", "mean_aesthetic_if_not_tag", "p_value", "q_value"}}
	for _, e := range report.TagEffects {
		rows = append(rows, []string{
			e.Tag,
			strconv.Itoa(e.NTag),
			formatStat(e.Prevalence),
			formatStat(e.PointBiserialR),
			formatStat(e.MeanIfTag),
			formatStat(e.MeanIfNotTag),
			formatStat(e.PValue),
			formatStat(e.QValue),
		})
	}
	return rows
}

func groupMeansRows(means []GroupMeans, label string) [][]string {
	rows := [][]string{{label, "n", "aesthetic_mean", "lightness_mean", "saturation_mean", "distance_mean", "diversity_mean"}}
	for _, m := range means {
		rows = append(rows, []string{
			m.Name,
			strconv.Itoa(m.N),
			formatStat(m.AestheticMean),
			formatStat(m.LightnessMean),
			formatStat(m.SaturationMean),
			formatStat(m.DistanceMean),
			formatStat(m.DiversityMean),
		})
	}
	return rows
}

func writeRows(pathname string, rows [][]string) error {
	f, err := os.Create(pathname)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", pathname, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("unable to write %s: %w", pathname, err)
	}

	return f.Close()
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}
