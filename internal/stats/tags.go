package stats

import (
	"math"
	"sort"
)

// TagEffect is the point-biserial association between the presence of a tag
// and the aesthetic score.
type TagEffect struct {
	Tag            string
	NTag           int
	Prevalence     float64
	PointBiserialR float64
	MeanIfTag      float64
	MeanIfNotTag   float64
	PValue         float64
	QValue         float64
}

// minPrevalence and maxPrevalence bound which tags are testable; near-universal
// and near-absent tags carry no usable contrast.
const (
	minPrevalence = 0.05
	maxPrevalence = 0.95
)

// TagEffects computes a point-biserial correlation per tag, keeps tags with
// prevalence inside [5%,95%], attaches q-values, and orders by absolute
// effect. Tags repeated within a single row count once.
func TagEffects(rows []Row) []TagEffect {
	totalN := len(rows)
	if totalN < 3 {
		return nil
	}

	totalSum := 0.0
	aesthetics := make([]float64, totalN)
	for i, r := range rows {
		aesthetics[i] = r.Aesthetic
		totalSum += r.Aesthetic
	}
	_, sdY := meanStd(aesthetics)
	// sample standard deviation, matching the two-group derivation
	sdY *= math.Sqrt(float64(totalN) / float64(totalN-1))

	tagCount := map[string]int{}
	tagSum := map[string]float64{}
	for _, r := range rows {
		seen := map[string]bool{}
		for _, tag := range r.Tags {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tagCount[tag]++
			tagSum[tag] += r.Aesthetic
		}
	}

	out := make([]TagEffect, 0, len(tagCount))
	for tag, n1 := range tagCount {
		prevalence := float64(n1) / float64(totalN)
		if prevalence < minPrevalence || prevalence > maxPrevalence {
			continue
		}

		n0 := totalN - n1
		mean1 := tagSum[tag] / float64(n1)
		mean0 := (totalSum - tagSum[tag]) / float64(n0)

		r := pointBiserial(mean1, mean0, prevalence, sdY)
		p := corrPValue(r, totalN)

		out = append(out, TagEffect{
			Tag:            tag,
			NTag:           n1,
			Prevalence:     prevalence,
			PointBiserialR: r,
			MeanIfTag:      mean1,
			MeanIfNotTag:   mean0,
			PValue:         p,
		})
	}

	pValues := make([]float64, len(out))
	for i, e := range out {
		pValues[i] = e.PValue
	}
	for i, q := range BenjaminiHochberg(pValues) {
		out[i].QValue = q
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].PointBiserialR) > math.Abs(out[j].PointBiserialR)
	})

	return out
}

// pointBiserial derives the correlation from the two group means, the group
// prevalence and the pooled standard deviation.
func pointBiserial(mean1, mean0, p, sd float64) float64 {
	if sd <= 0 || p <= 0 || p >= 1 {
		return 0
	}
	return (mean1 - mean0) * math.Sqrt(p*(1-p)) / sd
}
