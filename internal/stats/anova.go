package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Anova is a one-way analysis of variance result.
type Anova struct {
	F      float64
	PValue float64
	Eta2   float64
	Groups int
	N      int
}

// OneWayAnova tests whether the group means differ. Groups with no
// observations are ignored; at least two non-empty groups are required.
func OneWayAnova(groups [][]float64) (Anova, error) {
	nonEmpty := groups[:0:0]
	total := 0
	grand := 0.0

	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		nonEmpty = append(nonEmpty, g)
		total += len(g)
		for _, v := range g {
			grand += v
		}
	}

	k := len(nonEmpty)
	if k < 2 {
		return Anova{}, errors.New("one-way ANOVA needs at least two groups")
	}
	if total <= k {
		return Anova{}, errors.New("one-way ANOVA needs more observations than groups")
	}

	grand /= float64(total)

	ssBetween := 0.0
	ssWithin := 0.0
	for _, g := range nonEmpty {
		mean := 0.0
		for _, v := range g {
			mean += v
		}
		mean /= float64(len(g))

		ssBetween += float64(len(g)) * (mean - grand) * (mean - grand)
		for _, v := range g {
			ssWithin += (v - mean) * (v - mean)
		}
	}

	dfBetween := float64(k - 1)
	dfWithin := float64(total - k)

	out := Anova{Groups: k, N: total}
	if ssWithin == 0 {
		// all groups internally constant: perfect separation unless means agree
		if ssBetween == 0 {
			out.PValue = 1
			return out, nil
		}
		out.F = math.Inf(1)
		out.Eta2 = 1
		out.PValue = 0
		return out, nil
	}

	out.F = (ssBetween / dfBetween) / (ssWithin / dfWithin)
	out.Eta2 = ssBetween / (ssBetween + ssWithin)

	dist := distuv.F{D1: dfBetween, D2: dfWithin}
	out.PValue = dist.Survival(out.F)

	return out, nil
}
