package imagecolor

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLabWhiteAndBlack(t *testing.T) {
	white := FromRGB8(255, 255, 255)
	if math.Abs(white.L-100) > 0.5 {
		t.Errorf("white lightness: expected ~100, got %g", white.L)
	}
	if math.Abs(white.A) > 1 || math.Abs(white.B) > 1 {
		t.Errorf("white should be neutral, got a=%g b=%g", white.A, white.B)
	}

	black := FromRGB8(0, 0, 0)
	if math.Abs(black.L) > 0.5 {
		t.Errorf("black lightness: expected ~0, got %g", black.L)
	}
}

func TestLabHexRoundTrip(t *testing.T) {
	for _, hex := range []string{"#e63946", "#2e86ab", "#06a77d", "#808080"} {
		lab, err := FromHex(hex)
		if err != nil {
			t.Fatalf("FromHex(%s): %v", hex, err)
		}
		if got := lab.Hex(); got != hex {
			t.Errorf("round trip %s -> %s", hex, got)
		}
	}
}

func TestChroma(t *testing.T) {
	gray := FromRGB8(128, 128, 128)
	if gray.Chroma() > 2 {
		t.Errorf("gray should have near-zero chroma, got %g", gray.Chroma())
	}

	red := FromRGB8(230, 57, 70)
	if red.Chroma() < 30 {
		t.Errorf("saturated red should have high chroma, got %g", red.Chroma())
	}
}

func TestDeltaE2000(t *testing.T) {
	c := FromRGB8(100, 150, 200)
	if d := c.DeltaE2000(c); d > 1e-9 {
		t.Errorf("identical colors should have zero distance, got %g", d)
	}

	far := FromRGB8(200, 100, 50)
	if d := c.DeltaE2000(far); d < 10 {
		t.Errorf("distinct colors should be far apart, got %g", d)
	}

	// white to black is exactly 100 under CIEDE2000
	white := FromRGB8(255, 255, 255)
	black := FromRGB8(0, 0, 0)
	if d := white.DeltaE2000(black); math.Abs(d-100) > 0.5 {
		t.Errorf("white to black: expected ~100, got %g", d)
	}
}

func TestThumbnailOnlyShrinks(t *testing.T) {
	small := image.NewRGBA(image.Rect(0, 0, 100, 80))
	if got := Thumbnail(small, 256); got != small {
		t.Error("images under the bound must pass through untouched")
	}

	large := image.NewRGBA(image.Rect(0, 0, 1000, 500))
	got := Thumbnail(large, 256)
	b := got.Bounds()
	if b.Dx() > 256 || b.Dy() > 256 {
		t.Errorf("thumbnail exceeds bound: %dx%d", b.Dx(), b.Dy())
	}
}

func twoToneImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	left := color.RGBA{R: 200, G: 40, B: 40, A: 255}
	right := color.RGBA{R: 40, G: 80, B: 200, A: 255}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if x < 32 {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	return img
}

func TestExtract(t *testing.T) {
	ext, err := Extract(twoToneImage(), 2)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(ext.Colors) == 0 || len(ext.Colors) > 2 {
		t.Fatalf("expected 1 or 2 clusters, got %d", len(ext.Colors))
	}
	if len(ext.Colors) != len(ext.Proportions) {
		t.Fatalf("colors and proportions misaligned: %d vs %d",
			len(ext.Colors), len(ext.Proportions))
	}

	sum := 0.0
	for _, p := range ext.Proportions {
		if p <= 0 {
			t.Errorf("non-positive proportion %g", p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("proportions should sum to 1, got %g", sum)
	}
}

func TestExtractStats(t *testing.T) {
	ext := &Extraction{
		Colors: []Lab{
			{L: 40, A: 20, B: -10},
			{L: 80, A: -20, B: 10},
		},
		Proportions: []float64{0.75, 0.25},
	}

	stats := ext.Stats()
	if math.Abs(stats.MeanLightness-50) > 1e-9 {
		t.Errorf("mean lightness: expected 50, got %g", stats.MeanLightness)
	}
	if math.Abs(stats.MeanA-10) > 1e-9 {
		t.Errorf("mean a: expected 10, got %g", stats.MeanA)
	}
	if stats.Diversity <= 0 {
		t.Errorf("two distinct centroids should have positive diversity, got %g", stats.Diversity)
	}

	mean := ext.MeanColor()
	if math.Abs(mean.L-50) > 1e-9 || math.Abs(mean.A-10) > 1e-9 {
		t.Errorf("unexpected mean color: %+v", mean)
	}
}

func TestExtractFile(t *testing.T) {
	pathname := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(pathname)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, twoToneImage()); err != nil {
		t.Fatal(err)
	}
	f.Close()

	ext, err := ExtractFile(pathname, 2, 256)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if len(ext.Colors) == 0 {
		t.Error("expected at least one extracted color")
	}
}

func TestExtractFileMissing(t *testing.T) {
	if _, err := ExtractFile(filepath.Join(t.TempDir(), "nope.jpg"), 2, 256); err == nil {
		t.Error("expected an error for a missing file")
	}
}
