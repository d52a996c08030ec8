// Package dataset loads, merges and filters the runway image corpus metadata
// and owns all of the pipeline's tabular (CSV) artifacts.
package dataset

import (
	"math"
	"math/rand"
	"sort"
	"strings"
)

// Record is the metadata of a single runway image.
type Record struct {
	Key          string   `json:"key"`
	Designer     string   `json:"designer"`
	Season       string   `json:"season"`
	Year         int      `json:"year"`
	Category     string   `json:"category"`
	Section      string   `json:"section"`
	Tags         []string `json:"tags"`
	Aesthetic    float64  `json:"aesthetic"`
	ImagePath    string   `json:"-"`
	HasImage     bool     `json:"-"`
	SourceFolder string   `json:"-"`
	MetaPath     string   `json:"-"`
}

// seasonOrder ranks the fashion calendar inside a year; unknown seasons sort
// last.
var seasonOrder = map[string]int{
	"Spring":   1,
	"Resort":   2,
	"Fall":     3,
	"Pre-Fall": 4,
}

func seasonRank(season string) int {
	if rank, ok := seasonOrder[season]; ok {
		return rank
	}
	return 5
}

// SortRecords orders records by year, then season within the year, then
// designer. The order is the canonical one of the merged dataset.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if ra, rb := seasonRank(a.Season), seasonRank(b.Season); ra != rb {
			return ra < rb
		}
		return a.Designer < b.Designer
	})
}

// FilterYears keeps records with minYear <= year <= maxYear.
func FilterYears(records []Record, minYear, maxYear int) []Record {
	out := records[:0:0]
	for _, r := range records {
		if r.Year >= minYear && r.Year <= maxYear {
			out = append(out, r)
		}
	}
	return out
}

// FilterHasImage keeps records whose image file was found on disk.
func FilterHasImage(records []Record) []Record {
	out := records[:0:0]
	for _, r := range records {
		if r.HasImage && r.ImagePath != "" {
			out = append(out, r)
		}
	}
	return out
}

// FilterDesigner keeps records whose designer contains the given substring,
// case-insensitively.
func FilterDesigner(records []Record, designer string) []Record {
	needle := strings.ToLower(designer)
	out := records[:0:0]
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Designer), needle) {
			out = append(out, r)
		}
	}
	return out
}

// FilterCategory keeps records of one category.
func FilterCategory(records []Record, category string) []Record {
	out := records[:0:0]
	for _, r := range records {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// FilterSeason keeps records of one season.
func FilterSeason(records []Record, season string) []Record {
	out := records[:0:0]
	for _, r := range records {
		if r.Season == season {
			out = append(out, r)
		}
	}
	return out
}

// FilterAesthetic keeps records whose aesthetic score is inside [min,max].
// Records without a score are dropped.
func FilterAesthetic(records []Record, min, max float64) []Record {
	out := records[:0:0]
	for _, r := range records {
		if math.IsNaN(r.Aesthetic) {
			continue
		}
		if r.Aesthetic >= min && r.Aesthetic <= max {
			out = append(out, r)
		}
	}
	return out
}

// Sample draws n records without replacement using a fixed seed so repeated
// runs see the same subset. When n >= len(records) the input is returned.
func Sample(records []Record, n int, seed int64) []Record {
	if n >= len(records) {
		return records
	}

	rng := rand.New(rand.NewSource(seed))
	picked := rng.Perm(len(records))[:n]
	sort.Ints(picked)

	out := make([]Record, 0, n)
	for _, idx := range picked {
		out = append(out, records[idx])
	}
	return out
}
