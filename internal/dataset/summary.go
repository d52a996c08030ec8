package dataset

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
)

// WriteSummary writes a plain-text overview of the merged dataset.
func WriteSummary(pathname string, records []Record) error {
	var b strings.Builder

	b.WriteString("RUNWAY MERGED DATASET SUMMARY\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	withImages := 0
	minYear, maxYear := math.MaxInt, math.MinInt
	for _, r := range records {
		if r.HasImage {
			withImages++
		}
		if r.Year < minYear {
			minYear = r.Year
		}
		if r.Year > maxYear {
			maxYear = r.Year
		}
	}

	fmt.Fprintf(&b, "Total images: %d\n", len(records))
	fmt.Fprintf(&b, "Images with files: %d\n", withImages)
	fmt.Fprintf(&b, "Missing images: %d\n\n", len(records)-withImages)
	fmt.Fprintf(&b, "Year range: %d - %d\n\n", minYear, maxYear)

	writeCounts(&b, "Source folders:", countBy(records, func(r Record) string { return r.SourceFolder }), 0)
	writeYearCounts(&b, records)
	writeCounts(&b, "Top 20 designers by image count:", countBy(records, func(r Record) string { return r.Designer }), 20)
	writeCounts(&b, "Categories:", countBy(records, func(r Record) string { return r.Category }), 0)
	writeCounts(&b, "Seasons:", countBy(records, func(r Record) string { return r.Season }), 0)
	writeAesthetics(&b, records)

	if err := os.WriteFile(pathname, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("unable to write %s: %w", pathname, err)
	}

	return nil
}

//--------------------------------------------------------------------------------
// private

type labelCount struct {
	label string
	count int
}

func countBy(records []Record, key func(Record) string) []labelCount {
	counts := map[string]int{}
	for _, r := range records {
		counts[key(r)]++
	}

	out := make([]labelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, labelCount{label: label, count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].label < out[j].label
	})

	return out
}

func writeCounts(b *strings.Builder, title string, counts []labelCount, limit int) {
	b.WriteString(title + "\n")
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	for _, lc := range counts {
		fmt.Fprintf(b, "  %s: %d\n", lc.label, lc.count)
	}
	b.WriteString("\n")
}

func writeYearCounts(b *strings.Builder, records []Record) {
	counts := map[int]int{}
	for _, r := range records {
		counts[r.Year]++
	}

	years := make([]int, 0, len(counts))
	for year := range counts {
		years = append(years, year)
	}
	sort.Ints(years)

	b.WriteString("Images per year:\n")
	for _, year := range years {
		fmt.Fprintf(b, "  %d: %d\n", year, counts[year])
	}
	b.WriteString("\n")
}

func writeAesthetics(b *strings.Builder, records []Record) {
	scores := make([]float64, 0, len(records))
	for _, r := range records {
		if !math.IsNaN(r.Aesthetic) {
			scores = append(scores, r.Aesthetic)
		}
	}

	b.WriteString("Aesthetic score statistics:\n")
	if len(scores) == 0 {
		b.WriteString("  (no scores present)\n")
		return
	}

	sort.Float64s(scores)
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	median := scores[len(scores)/2]
	if len(scores)%2 == 0 {
		median = (scores[len(scores)/2-1] + scores[len(scores)/2]) / 2
	}

	fmt.Fprintf(b, "  Mean: %.2f\n", sum/float64(len(scores)))
	fmt.Fprintf(b, "  Median: %.2f\n", median)
	fmt.Fprintf(b, "  Min: %.2f\n", scores[0])
	fmt.Fprintf(b, "  Max: %.2f\n", scores[len(scores)-1])
}
