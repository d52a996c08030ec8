package chart

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/richienod0llar/chromamood/internal/analysis"
)

const (
	swatchSize  = 120
	swatchGap   = 4
	stripMargin = 16
)

// DecadeStrips renders one row of swatches per decade showing its dominant
// palette. Swatches are drawn directly rather than through gonum/plot since
// the figure is pure color blocks; decade labels live in the companion CSV.
func DecadeStrips(palettes []analysis.DecadePalette, pathname string) error {
	if len(palettes) == 0 {
		return fmt.Errorf("no decade palettes to render")
	}

	maxSwatches := 0
	for _, p := range palettes {
		if len(p.Colors) > maxSwatches {
			maxSwatches = len(p.Colors)
		}
	}
	if maxSwatches == 0 {
		return fmt.Errorf("decade palettes carry no swatches")
	}

	width := stripMargin*2 + maxSwatches*(swatchSize+swatchGap) - swatchGap
	height := stripMargin*2 + len(palettes)*(swatchSize+swatchGap) - swatchGap

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	for row, p := range palettes {
		y0 := stripMargin + row*(swatchSize+swatchGap)
		for col, hex := range p.Colors {
			c, err := colorful.Hex(hex)
			if err != nil {
				continue
			}
			x0 := stripMargin + col*(swatchSize+swatchGap)
			rect := image.Rect(x0, y0, x0+swatchSize, y0+swatchSize)
			draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}

	f, err := os.Create(pathname)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", pathname, err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("unable to save %s: %w", pathname, err)
	}

	return f.Close()
}
