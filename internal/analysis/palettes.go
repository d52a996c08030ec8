package analysis

import (
	"sort"

	"github.com/richienod0llar/chromamood/internal/dataset"
	"github.com/richienod0llar/chromamood/internal/wada"
)

// PaletteYearFreq is how often one palette was matched within one year.
type PaletteYearFreq struct {
	Year        int
	PaletteID   string
	PaletteName string
	Count       int
	Percentage  float64
}

// PaletteCount is the overall match count of one palette.
type PaletteCount struct {
	PaletteID   string
	PaletteName string
	Count       int
}

// DecadePalette is the most frequently matched palette of one decade.
type DecadePalette struct {
	Decade      int
	PaletteID   string
	PaletteName string
	Count       int
	Percentage  float64
	NImages     int
	Colors      []string
}

// PaletteFrequencyByYear counts palette matches per year with within-year
// percentages. Rows are ordered by year, then count descending.
func PaletteFrequencyByYear(results []dataset.Result) []PaletteYearFreq {
	type yearPalette struct {
		year int
		id   string
	}

	counts := map[yearPalette]*PaletteYearFreq{}
	yearTotals := map[int]int{}

	for _, r := range results {
		key := yearPalette{year: r.Year, id: r.PaletteID}
		freq, ok := counts[key]
		if !ok {
			freq = &PaletteYearFreq{Year: r.Year, PaletteID: r.PaletteID, PaletteName: r.PaletteName}
			counts[key] = freq
		}
		freq.Count++
		yearTotals[r.Year]++
	}

	out := make([]PaletteYearFreq, 0, len(counts))
	for _, freq := range counts {
		freq.Percentage = 100 * float64(freq.Count) / float64(yearTotals[freq.Year])
		out = append(out, *freq)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].PaletteID < out[j].PaletteID
	})

	return out
}

// TopPalettes returns the n most frequently matched palettes overall.
func TopPalettes(results []dataset.Result, n int) []PaletteCount {
	counts := map[string]*PaletteCount{}
	for _, r := range results {
		pc, ok := counts[r.PaletteID]
		if !ok {
			pc = &PaletteCount{PaletteID: r.PaletteID, PaletteName: r.PaletteName}
			counts[r.PaletteID] = pc
		}
		pc.Count++
	}

	out := make([]PaletteCount, 0, len(counts))
	for _, pc := range counts {
		out = append(out, *pc)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].PaletteID < out[j].PaletteID
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// DominantPalettePerDecade finds the most matched palette of every decade.
// Swatch hexes are resolved from the palette set when available.
func DominantPalettePerDecade(results []dataset.Result, set *wada.Set) []DecadePalette {
	byDecade := map[int][]dataset.Result{}
	for _, r := range results {
		byDecade[Decade(r.Year)] = append(byDecade[Decade(r.Year)], r)
	}

	decades := sortedIntKeys(byDecade)
	out := make([]DecadePalette, 0, len(decades))

	for _, decade := range decades {
		group := byDecade[decade]
		top := TopPalettes(group, 1)
		if len(top) == 0 {
			continue
		}

		dp := DecadePalette{
			Decade:      decade,
			PaletteID:   top[0].PaletteID,
			PaletteName: top[0].PaletteName,
			Count:       top[0].Count,
			Percentage:  100 * float64(top[0].Count) / float64(len(group)),
			NImages:     len(group),
		}
		if set != nil {
			dp.Colors = set.Hexes(dp.PaletteID)
		}

		out = append(out, dp)
	}

	return out
}
