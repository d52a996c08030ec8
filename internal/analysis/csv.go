package analysis

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// WriteYearlyCSV saves per-year statistics.
func WriteYearlyCSV(pathname string, stats []YearStats) error {
	rows := [][]string{{"year", "mean_lightness", "mean_saturation", "color_diversity", "palette_distance", "n_images"}}
	for _, s := range stats {
		rows = append(rows, []string{
			strconv.Itoa(s.Year),
			formatF(s.MeanLightness),
			formatF(s.MeanSaturation),
			formatF(s.MeanDiversity),
			formatF(s.MeanPaletteDist),
			strconv.Itoa(s.N),
		})
	}
	return writeCSV(pathname, rows)
}

// WriteDecadeCSV saves per-decade statistics.
func WriteDecadeCSV(pathname string, stats []DecadeStats) error {
	rows := [][]string{{"decade", "mean_lightness", "mean_saturation", "color_diversity", "n_images"}}
	for _, s := range stats {
		rows = append(rows, []string{
			strconv.Itoa(s.Decade),
			formatF(s.MeanLightness),
			formatF(s.MeanSaturation),
			formatF(s.MeanDiversity),
			strconv.Itoa(s.N),
		})
	}
	return writeCSV(pathname, rows)
}

// WritePaletteByYearCSV saves palette frequencies per year.
func WritePaletteByYearCSV(pathname string, freqs []PaletteYearFreq) error {
	rows := [][]string{{"year", "palette_id", "palette_name", "count", "percentage"}}
	for _, f := range freqs {
		rows = append(rows, []string{
			strconv.Itoa(f.Year),
			f.PaletteID,
			f.PaletteName,
			strconv.Itoa(f.Count),
			formatF(f.Percentage),
		})
	}
	return writeCSV(pathname, rows)
}

// WriteDecadeDistancesCSV saves decade-to-decade perceptual distances.
func WriteDecadeDistancesCSV(pathname string, distances []DecadeDistance) error {
	rows := [][]string{{"decade1", "decade2", "transition", "color_distance"}}
	for _, d := range distances {
		rows = append(rows, []string{
			strconv.Itoa(d.Decade1),
			strconv.Itoa(d.Decade2),
			d.Transition,
			formatF(d.Distance),
		})
	}
	return writeCSV(pathname, rows)
}

// WriteGroupCSV saves named group statistics (seasons, designers).
func WriteGroupCSV(pathname, label string, stats []GroupStats) error {
	rows := [][]string{{label, "mean_lightness", "mean_saturation", "color_diversity", "n_images"}}
	for _, s := range stats {
		rows = append(rows, []string{
			s.Name,
			formatF(s.MeanLightness),
			formatF(s.MeanSaturation),
			formatF(s.MeanDiversity),
			strconv.Itoa(s.N),
		})
	}
	return writeCSV(pathname, rows)
}

// WriteDecadePalettesCSV saves the dominant palette per decade.
func WriteDecadePalettesCSV(pathname string, palettes []DecadePalette) error {
	rows := [][]string{{"decade", "palette_id", "palette_name", "count", "percentage", "n_images", "colors"}}
	for _, p := range palettes {
		rows = append(rows, []string{
			strconv.Itoa(p.Decade),
			p.PaletteID,
			p.PaletteName,
			strconv.Itoa(p.Count),
			formatF(p.Percentage),
			strconv.Itoa(p.NImages),
			strings.Join(p.Colors, " "),
		})
	}
	return writeCSV(pathname, rows)
}

//--------------------------------------------------------------------------------
// private

func writeCSV(pathname string, rows [][]string) error {
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

func formatF(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
