package wada

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/richienod0llar/chromamood/internal/imagecolor"
)

func TestLoadEmbedded(t *testing.T) {
	set, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}

	if len(set.Palettes) != 30 {
		t.Errorf("expected 30 embedded palettes, got %d", len(set.Palettes))
	}

	for _, p := range set.Palettes {
		if len(p.Colors) != 4 {
			t.Errorf("palette %s: expected 4 colors, got %d", p.ID, len(p.Colors))
		}
		if set.ByID(p.ID) == nil {
			t.Errorf("palette %s not indexed by id", p.ID)
		}
	}
}

func TestLoadFetchedSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{"id": "currant-red-etruscan-red", "name": "Currant Red", "colors": ["#9E1B32", "#AF403A"]},
			{"id": "sea-green-slate", "name": "Sea Green", "colors": ["#2E8B57", "#708090"]}
		]`))
	}))
	defer srv.Close()

	set, err := Load(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(set.Palettes) != 2 {
		t.Fatalf("expected 2 fetched palettes, got %d", len(set.Palettes))
	}

	got := set.Hexes("currant-red-etruscan-red")
	want := []string{"#9E1B32", "#AF403A"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fetched id must resolve swatches (-want +got):\n%s", diff)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	set, err := Load(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(set.Palettes) != 30 {
		t.Errorf("expected the embedded subset, got %d palettes", len(set.Palettes))
	}
}

func TestParseSkipsBadSwatches(t *testing.T) {
	data := []byte(`[
		{"id": "x1", "name": "Good", "colors": ["#FF0000", "not-a-color", "#00FF00"]},
		{"id": "x2", "name": "Empty", "colors": ["nope"]}
	]`)

	set, err := parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(set.Palettes) != 1 {
		t.Fatalf("expected 1 usable palette, got %d", len(set.Palettes))
	}

	got := set.Hexes("x1")
	want := []string{"#FF0000", "#00FF00"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("swatch mismatch (-want +got):\n%s", diff)
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#1B9E77")
	if err != nil {
		t.Fatalf("parseColor: %v", err)
	}

	if c.R != 0x1B || c.G != 0x9E || c.B != 0x77 {
		t.Errorf("rgb mismatch: got (%d,%d,%d)", c.R, c.G, c.B)
	}
	if c.Lab.L <= 0 || c.Lab.L >= 100 {
		t.Errorf("lightness out of range: %f", c.Lab.L)
	}
}

func TestTranslateName(t *testing.T) {
	if got := TranslateName("鼠色"); got == "鼠色" {
		t.Errorf("expected a translation for a known Japanese name")
	}

	if got := TranslateName("Already English"); got != "Already English" {
		t.Errorf("unknown names must pass through, got %q", got)
	}
}

func TestClosestExactSwatches(t *testing.T) {
	set, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}

	target := set.Palettes[4]
	ext := &imagecolor.Extraction{}
	for _, c := range target.Colors {
		ext.Colors = append(ext.Colors, c.Lab)
		ext.Proportions = append(ext.Proportions, 1.0/float64(len(target.Colors)))
	}

	match, err := set.Closest(ext)
	if err != nil {
		t.Fatalf("Closest: %v", err)
	}

	if match.PaletteID != target.ID {
		t.Errorf("expected palette %s, got %s", target.ID, match.PaletteID)
	}
	if match.Distance > 1e-9 {
		t.Errorf("exact swatch match should have zero distance, got %g", match.Distance)
	}
}

func TestClosestEmptyExtraction(t *testing.T) {
	set, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}

	if _, err := set.Closest(&imagecolor.Extraction{}); err == nil {
		t.Error("expected an error for an empty extraction")
	}
}
