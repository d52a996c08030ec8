package chart

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"

	"github.com/richienod0llar/chromamood/internal/analysis"
	"github.com/richienod0llar/chromamood/internal/dataset"
)

// TemporalTrends renders the lightness and saturation yearly trend lines
// stacked in one figure.
func TemporalTrends(yearly []analysis.YearStats, pathname string) error {
	light := newPlot("Evolution of Color Lightness in Fashion", "Year", "Mean Lightness (L*)")
	if err := trendLine(light, yearXYs(yearly, func(s analysis.YearStats) float64 { return s.MeanLightness }), colorLightness); err != nil {
		return err
	}

	sat := newPlot("Evolution of Color Saturation in Fashion", "Year", "Mean Saturation (Chroma)")
	if err := trendLine(sat, yearXYs(yearly, func(s analysis.YearStats) float64 { return s.MeanSaturation }), colorSaturation); err != nil {
		return err
	}

	return saveTiled([][]*plot.Plot{{light}, {sat}}, 12*vg.Inch, 9*vg.Inch, pathname)
}

// ColorDiversity renders the yearly diversity trend.
func ColorDiversity(yearly []analysis.YearStats, pathname string) error {
	p := newPlot("Color Palette Diversity in Fashion Over Time", "Year", "Color Diversity Index")
	if err := trendLine(p, yearXYs(yearly, func(s analysis.YearStats) float64 { return s.MeanDiversity }), colorDiversity); err != nil {
		return err
	}
	return savePlot(p, 12*vg.Inch, 5*vg.Inch, pathname)
}

// PaletteHeatmap renders palette share per year for the given top palettes.
func PaletteHeatmap(freqs []analysis.PaletteYearFreq, top []analysis.PaletteCount, pathname string) error {
	grid, years, names := heatGrid(freqs, top)
	if grid == nil {
		return fmt.Errorf("no palette frequencies to plot")
	}

	p := newPlot("Sanzo Wada Palette Frequency Over Time", "Year", "")
	heat := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	p.Add(heat)

	yearLabels := make([]string, len(years))
	for i, y := range years {
		yearLabels[i] = fmt.Sprintf("%d", y)
	}
	p.NominalX(yearLabels...)
	p.NominalY(names...)

	return savePlot(p, 14*vg.Inch, 8*vg.Inch, pathname)
}

// TopPalettes renders the match counts of the most common palettes.
func TopPalettes(counts []analysis.PaletteCount, pathname string) error {
	p := newPlot(fmt.Sprintf("Top %d Most Common Sanzo Wada Palettes", len(counts)), "", "Number of Images")

	values := make(plotter.Values, len(counts))
	names := make([]string, len(counts))
	for i, pc := range counts {
		values[i] = float64(pc.Count)
		names[i] = fmt.Sprintf("%s (%s)", pc.PaletteName, pc.PaletteID)
	}

	if err := barChart(p, values, names, colorBars); err != nil {
		return err
	}
	p.X.Tick.Label.Rotation = -0.9
	p.X.Tick.Label.XAlign = vgdraw.XLeft
	return savePlot(p, 12*vg.Inch, 7*vg.Inch, pathname)
}

// LabDistribution renders the a*/b* hue plane and the lightness/chroma plane
// side by side.
func LabDistribution(results []dataset.Result, pathname string) error {
	hue := newPlot("Color Distribution in LAB Space", "A* (Green to Red)", "B* (Blue to Yellow)")
	hueXYs := make(plotter.XYs, len(results))
	for i, r := range results {
		hueXYs[i].X = r.MeanA
		hueXYs[i].Y = r.MeanB
	}
	if err := scatter(hue, hueXYs); err != nil {
		return err
	}

	tone := newPlot("Lightness vs Saturation", "Lightness (L*)", "Saturation (Chroma)")
	toneXYs := make(plotter.XYs, len(results))
	for i, r := range results {
		toneXYs[i].X = r.MeanLightness
		toneXYs[i].Y = r.MeanSaturation
	}
	if err := scatter(tone, toneXYs); err != nil {
		return err
	}

	return saveTiled([][]*plot.Plot{{hue, tone}}, 13*vg.Inch, 6*vg.Inch, pathname)
}

// SeasonalComparison renders lightness, saturation and diversity bars per
// season.
func SeasonalComparison(seasons []analysis.GroupStats, pathname string) error {
	names := make([]string, len(seasons))
	for i, s := range seasons {
		names[i] = s.Name
	}

	panel := func(title string, get func(analysis.GroupStats) float64, c color.Color) (*plot.Plot, error) {
		p := newPlot(title, "Season", "")
		values := make(plotter.Values, len(seasons))
		for i, s := range seasons {
			values[i] = get(s)
		}
		if err := barChart(p, values, names, c); err != nil {
			return nil, err
		}
		return p, nil
	}

	light, err := panel("Lightness", func(s analysis.GroupStats) float64 { return s.MeanLightness }, colorLightness)
	if err != nil {
		return err
	}
	sat, err := panel("Saturation", func(s analysis.GroupStats) float64 { return s.MeanSaturation }, colorSaturation)
	if err != nil {
		return err
	}
	div, err := panel("Color Diversity", func(s analysis.GroupStats) float64 { return s.MeanDiversity }, colorDiversity)
	if err != nil {
		return err
	}

	return saveTiled([][]*plot.Plot{{light, sat, div}}, 14*vg.Inch, 5*vg.Inch, pathname)
}

// SummaryDashboard renders the 4-panel overview: lightness, saturation,
// diversity trends plus dataset coverage.
func SummaryDashboard(yearly []analysis.YearStats, pathname string) error {
	light := newPlot("Lightness Trend", "Year", "Mean Lightness")
	if err := trendLine(light, yearXYs(yearly, func(s analysis.YearStats) float64 { return s.MeanLightness }), colorLightness); err != nil {
		return err
	}

	sat := newPlot("Saturation Trend", "Year", "Mean Saturation")
	if err := trendLine(sat, yearXYs(yearly, func(s analysis.YearStats) float64 { return s.MeanSaturation }), colorSaturation); err != nil {
		return err
	}

	div := newPlot("Diversity Trend", "Year", "Color Diversity")
	if err := trendLine(div, yearXYs(yearly, func(s analysis.YearStats) float64 { return s.MeanDiversity }), colorDiversity); err != nil {
		return err
	}

	coverage := newPlot("Dataset Coverage", "Year", "Number of Images")
	counts := make(plotter.XYs, len(yearly))
	for i, s := range yearly {
		counts[i].X = float64(s.Year)
		counts[i].Y = float64(s.N)
	}
	countLine, err := plotter.NewLine(counts)
	if err != nil {
		return err
	}
	countLine.FillColor = colorBars
	coverage.Add(countLine)

	return saveTiled([][]*plot.Plot{{light, sat}, {div, coverage}}, 13*vg.Inch, 10*vg.Inch, pathname)
}

//--------------------------------------------------------------------------------
// private

func yearXYs(yearly []analysis.YearStats, get func(analysis.YearStats) float64) plotter.XYs {
	xys := make(plotter.XYs, len(yearly))
	for i, s := range yearly {
		xys[i].X = float64(s.Year)
		xys[i].Y = get(s)
	}
	return xys
}

// heatGrid pivots palette frequencies into a year-by-palette grid restricted
// to the given palettes.
func heatGrid(freqs []analysis.PaletteYearFreq, top []analysis.PaletteCount) (*paletteGrid, []int, []string) {
	if len(freqs) == 0 || len(top) == 0 {
		return nil, nil, nil
	}

	paletteRow := map[string]int{}
	names := make([]string, len(top))
	for i, pc := range top {
		// rows render bottom-up; reverse so the most common palette is on top
		row := len(top) - 1 - i
		paletteRow[pc.PaletteID] = row
		names[row] = pc.PaletteName
	}

	yearSet := map[int]bool{}
	for _, f := range freqs {
		yearSet[f.Year] = true
	}
	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	yearCol := map[int]int{}
	for i, y := range years {
		yearCol[y] = i
	}

	grid := &paletteGrid{
		years: years,
		cells: make([][]float64, len(top)),
	}
	for i := range grid.cells {
		grid.cells[i] = make([]float64, len(years))
	}

	for _, f := range freqs {
		row, ok := paletteRow[f.PaletteID]
		if !ok {
			continue
		}
		grid.cells[row][yearCol[f.Year]] = f.Percentage
	}

	return grid, years, names
}

type paletteGrid struct {
	years []int
	cells [][]float64 // [palette][year]
}

func (g *paletteGrid) Dims() (c, r int) { return len(g.years), len(g.cells) }
func (g *paletteGrid) Z(c, r int) float64 {
	return g.cells[r][c]
}
func (g *paletteGrid) X(c int) float64 { return float64(c) }
func (g *paletteGrid) Y(r int) float64 { return float64(r) }
