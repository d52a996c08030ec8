package stats

import (
	"math"
	"testing"
)

func TestTagEffectsPositiveTag(t *testing.T) {
	var rows []Row
	for i := 0; i < 40; i++ {
		r := Row{Aesthetic: float64(i % 4)}
		if i%2 == 0 {
			// tagged rows get a consistent aesthetic boost
			r.Aesthetic += 3
			r.Tags = []string{"bright", "bright"} // duplicates count once
		} else {
			r.Tags = []string{"plain"}
		}
		rows = append(rows, r)
	}

	effects := TagEffects(rows)
	if len(effects) != 2 {
		t.Fatalf("expected 2 testable tags, got %d", len(effects))
	}

	var bright *TagEffect
	for i := range effects {
		if effects[i].Tag == "bright" {
			bright = &effects[i]
		}
	}
	if bright == nil {
		t.Fatal("bright tag missing from effects")
	}

	if bright.NTag != 20 {
		t.Errorf("expected 20 tagged rows, got %d", bright.NTag)
	}
	if math.Abs(bright.Prevalence-0.5) > 1e-12 {
		t.Errorf("expected prevalence 0.5, got %g", bright.Prevalence)
	}
	if bright.PointBiserialR <= 0 {
		t.Errorf("expected a positive effect, got %g", bright.PointBiserialR)
	}
	if bright.MeanIfTag <= bright.MeanIfNotTag {
		t.Errorf("tagged mean %g should exceed untagged mean %g",
			bright.MeanIfTag, bright.MeanIfNotTag)
	}
}

func TestTagEffectsPrevalenceBounds(t *testing.T) {
	var rows []Row
	for i := 0; i < 100; i++ {
		r := Row{Aesthetic: float64(i)}
		r.Tags = []string{"everywhere"}
		if i == 0 {
			r.Tags = append(r.Tags, "once")
		}
		rows = append(rows, r)
	}

	effects := TagEffects(rows)
	for _, e := range effects {
		t.Errorf("tag %q should have been excluded by prevalence bounds", e.Tag)
	}
}
