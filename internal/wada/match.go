package wada

import (
	"errors"
	"math"

	"github.com/richienod0llar/chromamood/internal/imagecolor"
)

// Match identifies the palette whose swatches sit closest to an image's
// extracted colors.
type Match struct {
	PaletteID   string
	PaletteName string
	Distance    float64
}

// Closest scores every palette against the extraction and returns the best.
//
// The score of a palette is the sum over extracted centroids of the minimum
// CIEDE2000 distance from the centroid to any swatch, weighted by the
// centroid's pixel proportion. Ties keep the earlier palette so the result is
// deterministic for a given Set order.
func (s *Set) Closest(ext *imagecolor.Extraction) (Match, error) {
	if ext == nil || len(ext.Colors) == 0 {
		return Match{}, errors.New("no extracted colors to match")
	}

	best := Match{Distance: math.Inf(1)}

	for _, p := range s.Palettes {
		score := 0.0
		for i, c := range ext.Colors {
			minDelta := math.Inf(1)
			for _, swatch := range p.Colors {
				if d := c.DeltaE2000(swatch.Lab); d < minDelta {
					minDelta = d
				}
			}
			score += minDelta * ext.Proportions[i]
		}

		if score < best.Distance {
			best = Match{PaletteID: p.ID, PaletteName: p.Name, Distance: score}
		}
	}

	return best, nil
}
