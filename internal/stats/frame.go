// Package stats runs the hypothesis pipeline: correlations, a standardized
// OLS model, ANOVA group tests and tag effects over the joined color results
// and corpus metadata, with Benjamini-Hochberg FDR control.
package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/richienod0llar/chromamood/internal/dataset"
)

// Row is one image with its color measures and the metadata the hypothesis
// tests condition on.
type Row struct {
	Aesthetic       float64
	Lightness       float64
	Saturation      float64
	Diversity       float64
	PaletteDistance float64
	MeanA           float64
	MeanB           float64
	Year            int
	Season          string
	Category        string
	Designer        string
	Section         string
	Tags            []string
}

// Join inner-joins the merged metadata with the per-image results on key and
// drops rows missing any color measure. Metadata wins for the descriptive
// columns, results for the color measures. Rows without an aesthetic score
// survive the join; the aesthetic-outcome tests drop them later.
func Join(meta []dataset.Record, results []dataset.Result) ([]Row, error) {
	byKey := make(map[string]dataset.Record, len(meta))
	for _, m := range meta {
		byKey[m.Key] = m
	}

	rows := make([]Row, 0, len(results))
	dropped := 0
	unscored := 0

	for _, r := range results {
		m, ok := byKey[r.Key]
		if !ok {
			dropped++
			continue
		}

		row := Row{
			Aesthetic:       m.Aesthetic,
			Lightness:       r.MeanLightness,
			Saturation:      r.MeanSaturation,
			Diversity:       r.ColorDiversity,
			PaletteDistance: r.PaletteDistance,
			MeanA:           r.MeanA,
			MeanB:           r.MeanB,
			Year:            m.Year,
			Season:          m.Season,
			Category:        m.Category,
			Designer:        m.Designer,
			Section:         m.Section,
			Tags:            m.Tags,
		}

		if math.IsNaN(row.Lightness) || math.IsNaN(row.Saturation) ||
			math.IsNaN(row.PaletteDistance) {
			dropped++
			continue
		}

		if math.IsNaN(row.Aesthetic) {
			unscored++
		}

		rows = append(rows, row)
	}

	if dropped > 0 {
		log.Warn().Int("dropped", dropped).Msg("rows without metadata or color measures")
	}
	if unscored > 0 {
		log.Warn().Int("unscored", unscored).Msg("rows without an aesthetic score")
	}

	if len(rows) < 3 {
		return nil, fmt.Errorf("only %d usable rows after the join", len(rows))
	}

	return rows, nil
}

// measure names shared by the correlation table and the series builder.
const (
	serAesthetic  = "aesthetic"
	serLightness  = "mean_lightness"
	serSaturation = "mean_saturation"
	serDiversity  = "color_diversity"
	serDistance   = "palette_distance"
)

var residualSuffixes = map[string]func(Row) string{
	"_wy": func(r Row) string { return fmt.Sprintf("%d", r.Year) },
	"_wd": func(r Row) string { return r.Designer },
	"_ws": func(r Row) string { return r.Section },
}

// series builds every named column the correlation table draws from: the raw
// measures plus within-year (_wy), within-designer (_wd) and within-section
// (_ws) residualized variants.
func series(rows []Row) map[string][]float64 {
	base := map[string]func(Row) float64{
		serAesthetic:  func(r Row) float64 { return r.Aesthetic },
		serLightness:  func(r Row) float64 { return r.Lightness },
		serSaturation: func(r Row) float64 { return r.Saturation },
		serDiversity:  func(r Row) float64 { return r.Diversity },
		serDistance:   func(r Row) float64 { return r.PaletteDistance },
	}

	out := make(map[string][]float64)
	for name, get := range base {
		values := make([]float64, len(rows))
		for i, r := range rows {
			values[i] = get(r)
		}
		out[name] = values

		for suffix, groupOf := range residualSuffixes {
			groups := make([]string, len(rows))
			for i, r := range rows {
				groups[i] = groupOf(r)
			}
			out[name+suffix] = residualize(values, groups)
		}
	}

	return out
}

// residualize subtracts each value's group mean, removing between-group
// variation.
func residualize(values []float64, groups []string) []float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for i, v := range values {
		sums[groups[i]] += v
		counts[groups[i]]++
	}

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v - sums[groups[i]]/float64(counts[groups[i]])
	}
	return out
}

// standardize converts values to z-scores. A constant series maps to zeros.
func standardize(values []float64) []float64 {
	mean, sd := meanStd(values)
	out := make([]float64, len(values))
	if sd == 0 || math.IsNaN(sd) {
		return out
	}
	for i, v := range values {
		out[i] = (v - mean) / sd
	}
	return out
}

func meanStd(values []float64) (mean, sd float64) {
	n := float64(len(values))
	if n == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v / n
	}
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean) / n
	}
	return mean, math.Sqrt(variance)
}

func checkSameLen(x, y []float64) error {
	if len(x) != len(y) {
		return errors.New("series length mismatch")
	}
	if len(x) < 3 {
		return errors.New("not enough observations")
	}
	return nil
}
