package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Correlation is one row of the correlation table: an outcome/predictor pair
// with Pearson and Spearman coefficients and their p-values.
type Correlation struct {
	Outcome   string
	Predictor string
	PearsonR  float64
	PearsonP  float64
	SpearmanR float64
	SpearmanP float64
	N         int
}

// Pearson computes the product-moment correlation with a two-sided t-test
// p-value.
func Pearson(x, y []float64) (r, p float64, err error) {
	if err = checkSameLen(x, y); err != nil {
		return 0, 1, err
	}

	r = stat.Correlation(x, y, nil)
	return r, corrPValue(r, len(x)), nil
}

// Spearman computes the rank correlation (ties get average ranks) with a
// two-sided t-test p-value.
func Spearman(x, y []float64) (r, p float64, err error) {
	if err = checkSameLen(x, y); err != nil {
		return 0, 1, err
	}

	r = stat.Correlation(ranks(x), ranks(y), nil)
	return r, corrPValue(r, len(x)), nil
}

// ranks assigns 1-based ranks with ties averaged, the same convention
// scipy.stats.rankdata uses by default.
func ranks(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	out := make([]float64, len(values))
	for i := 0; i < len(idx); {
		j := i
		for j < len(idx) && values[idx[j]] == values[idx[i]] {
			j++
		}
		// i..j-1 are tied; average their 1-based ranks
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			out[idx[k]] = avg
		}
		i = j
	}

	return out
}

func corrPValue(r float64, n int) float64 {
	if n < 3 {
		return 1
	}

	denom := 1 - r*r
	if denom <= 0 {
		return 0
	}

	t := r * math.Sqrt(float64(n-2)/denom)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	return 2 * dist.Survival(math.Abs(t))
}
