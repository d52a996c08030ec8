// Package chart renders the pipeline's PNG figures with gonum/plot.
package chart

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// The figure palette, loosely matched to the notebook originals.
var (
	colorLightness  = color.RGBA{R: 0x2E, G: 0x86, B: 0xAB, A: 0xFF}
	colorSaturation = color.RGBA{R: 0xE6, G: 0x39, B: 0x46, A: 0xFF}
	colorDiversity  = color.RGBA{R: 0x06, G: 0xA7, B: 0x7D, A: 0xFF}
	colorBars       = color.RGBA{R: 0x45, G: 0x7B, B: 0x9D, A: 0xFF}
	colorFit        = color.RGBA{R: 0xC0, G: 0x39, B: 0x2B, A: 0xFF}
	colorPositive   = color.RGBA{R: 0x1B, G: 0x9E, B: 0x77, A: 0xFF}
	colorNegative   = color.RGBA{R: 0xD9, G: 0x5F, B: 0x02, A: 0xFF}
	colorMuted      = color.RGBA{R: 0x9E, G: 0x9E, B: 0x9E, A: 0xFF}
	colorScatter    = color.RGBA{R: 0x4A, G: 0x4A, B: 0x4A, A: 0x60}
)

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func trendLine(p *plot.Plot, xys plotter.XYs, c color.RGBA) error {
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}

	line.LineStyle.Width = vg.Points(2)
	line.Color = c

	points.Shape = vgdraw.CircleGlyph{}
	points.Radius = vg.Points(2)
	points.Color = c

	p.Add(line, points)
	return nil
}

func scatter(p *plot.Plot, xys plotter.XYs) error {
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}

	s.GlyphStyle.Shape = vgdraw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(1.5)
	s.GlyphStyle.Color = colorScatter

	p.Add(s)
	return nil
}

func barChart(p *plot.Plot, values plotter.Values, names []string, c color.Color) error {
	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return err
	}

	bars.LineStyle.Width = 0
	bars.Color = c
	p.Add(bars)
	p.NominalX(names...)
	return nil
}

func savePlot(p *plot.Plot, w, h vg.Length, pathname string) error {
	if err := p.Save(w, h, pathname); err != nil {
		return fmt.Errorf("unable to save %s: %w", pathname, err)
	}
	return nil
}

// saveTiled lays out a grid of plots onto one PNG canvas.
func saveTiled(plots [][]*plot.Plot, w, h vg.Length, pathname string) error {
	img := vgimg.New(w, h)
	dc := vgdraw.New(img)

	tiles := vgdraw.Tiles{
		Rows: len(plots),
		Cols: len(plots[0]),
		PadX: vg.Points(10),
		PadY: vg.Points(10),
	}

	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			if plots[r][c] != nil {
				plots[r][c].Draw(canvases[r][c])
			}
		}
	}

	f, err := os.Create(pathname)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", pathname, err)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("unable to save %s: %w", pathname, err)
	}

	return f.Close()
}
