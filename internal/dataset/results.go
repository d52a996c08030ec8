package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Result is the per-image outcome of color extraction and palette matching.
type Result struct {
	Key             string
	Designer        string
	Year            int
	Season          string
	Category        string
	ImagePath       string
	PaletteID       string
	PaletteName     string
	PaletteDistance float64
	MeanLightness   float64
	MeanA           float64
	MeanB           float64
	MeanSaturation  float64
	ColorDiversity  float64
}

var resultsHeader = []string{
	"key", "designer", "year", "season", "category", "image_path",
	"palette_id", "palette_name", "palette_distance",
	"mean_lightness", "mean_a", "mean_b", "mean_saturation", "color_diversity",
}

// WriteResultsCSV writes the per-image analysis results.
func WriteResultsCSV(pathname string, results []Result) error {
	f, err := os.Create(pathname)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", pathname, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(resultsHeader); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Key,
			r.Designer,
			strconv.Itoa(r.Year),
			r.Season,
			r.Category,
			r.ImagePath,
			r.PaletteID,
			r.PaletteName,
			formatFloat(r.PaletteDistance),
			formatFloat(r.MeanLightness),
			formatFloat(r.MeanA),
			formatFloat(r.MeanB),
			formatFloat(r.MeanSaturation),
			formatFloat(r.ColorDiversity),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("unable to write %s: %w", pathname, err)
	}

	return f.Close()
}

// ReadResultsCSV loads a results CSV written by WriteResultsCSV.
func ReadResultsCSV(pathname string) ([]Result, error) {
	rows, cols, err := readTable(pathname)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		res := Result{
			Key:             cols.get(row, "key"),
			Designer:        cols.get(row, "designer"),
			Season:          cols.get(row, "season"),
			Category:        cols.get(row, "category"),
			ImagePath:       cols.get(row, "image_path"),
			PaletteID:       cols.get(row, "palette_id"),
			PaletteName:     cols.get(row, "palette_name"),
			PaletteDistance: parseFloat(cols.get(row, "palette_distance")),
			MeanLightness:   parseFloat(cols.get(row, "mean_lightness")),
			MeanA:           parseFloat(cols.get(row, "mean_a")),
			MeanB:           parseFloat(cols.get(row, "mean_b")),
			MeanSaturation:  parseFloat(cols.get(row, "mean_saturation")),
			ColorDiversity:  parseFloat(cols.get(row, "color_diversity")),
		}
		res.Year, _ = strconv.Atoi(cols.get(row, "year"))
		results = append(results, res)
	}

	return results, nil
}
