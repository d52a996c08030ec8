package stats

import (
	"math"
	"testing"

	"github.com/richienod0llar/chromamood/internal/dataset"
)

func TestJoin(t *testing.T) {
	meta := []dataset.Record{
		{Key: "a", Designer: "Chanel", Season: "Fall", Year: 1995, Aesthetic: 5},
		{Key: "b", Designer: "Dior", Season: "Spring", Year: 2001, Aesthetic: 6},
		{Key: "c", Designer: "Prada", Season: "Fall", Year: 2002, Aesthetic: 4},
		{Key: "no-score", Designer: "x", Year: 2003, Aesthetic: math.NaN()},
	}
	results := []dataset.Result{
		{Key: "a", MeanLightness: 40, MeanSaturation: 10, PaletteDistance: 8, ColorDiversity: 3},
		{Key: "b", MeanLightness: 60, MeanSaturation: 12, PaletteDistance: 9, ColorDiversity: 4},
		{Key: "c", MeanLightness: 50, MeanSaturation: 11, PaletteDistance: 7, ColorDiversity: 5},
		{Key: "no-score", MeanLightness: 55, MeanSaturation: 13, PaletteDistance: 6, ColorDiversity: 2},
		{Key: "orphan", MeanLightness: 45, MeanSaturation: 14, PaletteDistance: 5, ColorDiversity: 1},
	}

	rows, err := Join(meta, results)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}

	// only the orphan result is dropped; the unscored row survives
	if len(rows) != 4 {
		t.Fatalf("expected 4 joined rows, got %d", len(rows))
	}

	if rows[0].Designer != "Chanel" || rows[0].Lightness != 40 || rows[0].Aesthetic != 5 {
		t.Errorf("first row mismatch: %+v", rows[0])
	}
	if !math.IsNaN(rows[3].Aesthetic) {
		t.Errorf("unscored row must keep its NaN aesthetic, got %g", rows[3].Aesthetic)
	}
}

func TestJoinDropsMissingMeasures(t *testing.T) {
	meta := []dataset.Record{
		{Key: "a", Aesthetic: 5},
		{Key: "b", Aesthetic: 6},
		{Key: "c", Aesthetic: 4},
		{Key: "broken", Aesthetic: 7},
	}
	results := []dataset.Result{
		{Key: "a", MeanLightness: 40, MeanSaturation: 10, PaletteDistance: 8},
		{Key: "b", MeanLightness: 60, MeanSaturation: 12, PaletteDistance: 9},
		{Key: "c", MeanLightness: 50, MeanSaturation: 11, PaletteDistance: 7},
		{Key: "broken", MeanLightness: math.NaN(), MeanSaturation: 13, PaletteDistance: 6},
	}

	rows, err := Join(meta, results)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("expected the row without color measures dropped, got %d rows", len(rows))
	}
}

func TestJoinTooFewRows(t *testing.T) {
	meta := []dataset.Record{{Key: "a", Aesthetic: 5}}
	results := []dataset.Result{{Key: "a", MeanLightness: 40, MeanSaturation: 10, PaletteDistance: 8}}

	if _, err := Join(meta, results); err == nil {
		t.Error("expected an error with fewer than 3 usable rows")
	}
}
