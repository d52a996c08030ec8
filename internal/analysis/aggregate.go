// Package analysis aggregates per-image color results into temporal and
// group-level trend statistics.
package analysis

import (
	"fmt"
	"sort"

	"github.com/richienod0llar/chromamood/internal/dataset"
	"github.com/richienod0llar/chromamood/internal/imagecolor"
)

// YearStats are the mean color measures of all images in one year.
type YearStats struct {
	Year            int
	MeanLightness   float64
	MeanSaturation  float64
	MeanDiversity   float64
	MeanPaletteDist float64
	N               int
}

// DecadeStats are the mean color measures of all images in one decade.
type DecadeStats struct {
	Decade         int
	MeanLightness  float64
	MeanSaturation float64
	MeanDiversity  float64
	N              int
}

// GroupStats are the mean color measures of a named group (designer, season).
type GroupStats struct {
	Name           string
	MeanLightness  float64
	MeanSaturation float64
	MeanDiversity  float64
	N              int
}

// DecadeDistance is the perceptual distance between the mean color moods of
// two consecutive decades.
type DecadeDistance struct {
	Decade1    int
	Decade2    int
	Transition string
	Distance   float64
}

// Decade buckets a year into its decade (1994 -> 1990).
func Decade(year int) int {
	return year / 10 * 10
}

// ByYear aggregates results into per-year statistics, sorted by year.
func ByYear(results []dataset.Result) []YearStats {
	grouped := map[int][]dataset.Result{}
	for _, r := range results {
		grouped[r.Year] = append(grouped[r.Year], r)
	}

	years := sortedIntKeys(grouped)
	out := make([]YearStats, 0, len(years))
	for _, year := range years {
		group := grouped[year]
		stats := YearStats{Year: year, N: len(group)}
		for _, r := range group {
			stats.MeanLightness += r.MeanLightness
			stats.MeanSaturation += r.MeanSaturation
			stats.MeanDiversity += r.ColorDiversity
			stats.MeanPaletteDist += r.PaletteDistance
		}
		n := float64(stats.N)
		stats.MeanLightness /= n
		stats.MeanSaturation /= n
		stats.MeanDiversity /= n
		stats.MeanPaletteDist /= n
		out = append(out, stats)
	}

	return out
}

// ByDecade aggregates results into per-decade statistics, sorted by decade.
func ByDecade(results []dataset.Result) []DecadeStats {
	grouped := map[int][]dataset.Result{}
	for _, r := range results {
		grouped[Decade(r.Year)] = append(grouped[Decade(r.Year)], r)
	}

	decades := sortedIntKeys(grouped)
	out := make([]DecadeStats, 0, len(decades))
	for _, decade := range decades {
		group := grouped[decade]
		stats := DecadeStats{Decade: decade, N: len(group)}
		for _, r := range group {
			stats.MeanLightness += r.MeanLightness
			stats.MeanSaturation += r.MeanSaturation
			stats.MeanDiversity += r.ColorDiversity
		}
		n := float64(stats.N)
		stats.MeanLightness /= n
		stats.MeanSaturation /= n
		stats.MeanDiversity /= n
		out = append(out, stats)
	}

	return out
}

// ByDesigner aggregates per-designer statistics, dropping designers with
// fewer than minImages results, ordered by image count descending.
func ByDesigner(results []dataset.Result, minImages int) []GroupStats {
	out := byGroup(results, func(r dataset.Result) string { return r.Designer })

	kept := out[:0]
	for _, g := range out {
		if g.N >= minImages {
			kept = append(kept, g)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].N > kept[j].N })
	return kept
}

// BySeason aggregates per-season statistics, ordered by image count
// descending.
func BySeason(results []dataset.Result) []GroupStats {
	out := byGroup(results, func(r dataset.Result) string { return r.Season })
	sort.SliceStable(out, func(i, j int) bool { return out[i].N > out[j].N })
	return out
}

// DecadeDistances computes the CIEDE2000 distance between the mean LAB moods
// of each pair of consecutive decades. Fewer than two decades yields nil.
func DecadeDistances(results []dataset.Result) []DecadeDistance {
	type labSum struct {
		l, a, b float64
		n       int
	}

	sums := map[int]*labSum{}
	for _, r := range results {
		decade := Decade(r.Year)
		s, ok := sums[decade]
		if !ok {
			s = &labSum{}
			sums[decade] = s
		}
		s.l += r.MeanLightness
		s.a += r.MeanA
		s.b += r.MeanB
		s.n++
	}

	decades := make([]int, 0, len(sums))
	for decade := range sums {
		decades = append(decades, decade)
	}
	sort.Ints(decades)

	if len(decades) < 2 {
		return nil
	}

	mean := func(decade int) imagecolor.Lab {
		s := sums[decade]
		n := float64(s.n)
		return imagecolor.Lab{L: s.l / n, A: s.a / n, B: s.b / n}
	}

	out := make([]DecadeDistance, 0, len(decades)-1)
	for i := 0; i < len(decades)-1; i++ {
		d1, d2 := decades[i], decades[i+1]
		out = append(out, DecadeDistance{
			Decade1:    d1,
			Decade2:    d2,
			Transition: fmt.Sprintf("%ds to %ds", d1, d2),
			Distance:   mean(d1).DeltaE2000(mean(d2)),
		})
	}

	return out
}

//--------------------------------------------------------------------------------
// private

func byGroup(results []dataset.Result, key func(dataset.Result) string) []GroupStats {
	grouped := map[string][]dataset.Result{}
	for _, r := range results {
		grouped[key(r)] = append(grouped[key(r)], r)
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]GroupStats, 0, len(names))
	for _, name := range names {
		group := grouped[name]
		stats := GroupStats{Name: name, N: len(group)}
		for _, r := range group {
			stats.MeanLightness += r.MeanLightness
			stats.MeanSaturation += r.MeanSaturation
			stats.MeanDiversity += r.ColorDiversity
		}
		n := float64(stats.N)
		stats.MeanLightness /= n
		stats.MeanSaturation /= n
		stats.MeanDiversity /= n
		out = append(out, stats)
	}

	return out
}

func sortedIntKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
