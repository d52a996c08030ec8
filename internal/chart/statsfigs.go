package chart

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"

	"github.com/richienod0llar/chromamood/internal/stats"
)

// AestheticVsLightness scatters the aesthetic score against mean lightness
// with a least-squares fit line on top. Rows without a score are left out.
func AestheticVsLightness(rows []stats.Row, pathname string) error {
	var xs, ys []float64
	var xys plotter.XYs
	minX, maxX := math.Inf(1), math.Inf(-1)

	for _, r := range rows {
		if math.IsNaN(r.Aesthetic) {
			continue
		}
		xs = append(xs, r.Lightness)
		ys = append(ys, r.Aesthetic)
		xys = append(xys, plotter.XY{X: r.Lightness, Y: r.Aesthetic})
		if r.Lightness < minX {
			minX = r.Lightness
		}
		if r.Lightness > maxX {
			maxX = r.Lightness
		}
	}

	if len(xys) < 2 {
		return fmt.Errorf("not enough scored rows to plot")
	}

	p := newPlot("Aesthetic Score vs Mean Lightness", "Mean lightness (L*)", "Aesthetic score")
	if err := scatter(p, xys); err != nil {
		return err
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	fit, err := plotter.NewLine(plotter.XYs{
		{X: minX, Y: alpha + beta*minX},
		{X: maxX, Y: alpha + beta*maxX},
	})
	if err != nil {
		return err
	}
	fit.LineStyle.Width = vg.Points(2)
	fit.Color = colorFit
	p.Add(fit)

	return savePlot(p, 8*vg.Inch, 5*vg.Inch, pathname)
}

// HypothesisEffects draws one bar per hypothesis test, colored by whether its
// q-value survives the 5% false discovery rate.
func HypothesisEffects(hypotheses []stats.Hypothesis, pathname string) error {
	if len(hypotheses) == 0 {
		return fmt.Errorf("no hypotheses to plot")
	}

	p := newPlot("Hypothesis Effect Sizes (FDR-corrected)", "", "Effect size")

	names := make([]string, len(hypotheses))
	for i, h := range hypotheses {
		names[i] = h.TestID

		bars, err := plotter.NewBarChart(singleBar(i, len(hypotheses), h.EffectSize), vg.Points(18))
		if err != nil {
			return err
		}
		bars.LineStyle.Width = 0
		if h.Significant {
			bars.Color = colorPositive
		} else {
			bars.Color = colorMuted
		}
		p.Add(bars)
	}

	p.NominalX(names...)
	return savePlot(p, 9*vg.Inch, 5*vg.Inch, pathname)
}

// GroupDifferences compares mean aesthetic score across categories and
// seasons side by side.
func GroupDifferences(report *stats.Report, pathname string) error {
	if len(report.CategoryMeans) == 0 && len(report.SeasonMeans) == 0 {
		return fmt.Errorf("no group means to plot")
	}

	panel := func(title string, means []stats.GroupMeans, c color.Color) (*plot.Plot, error) {
		p := newPlot(title, "", "Mean aesthetic score")
		values := make(plotter.Values, len(means))
		names := make([]string, len(means))
		for i, m := range means {
			values[i] = m.AestheticMean
			names[i] = m.Name
		}
		if err := barChart(p, values, names, c); err != nil {
			return nil, err
		}
		p.X.Tick.Label.Rotation = -0.9
		p.X.Tick.Label.XAlign = vgdraw.XLeft
		return p, nil
	}

	left, err := panel("By Category", report.CategoryMeans, colorBars)
	if err != nil {
		return err
	}
	right, err := panel("By Season", report.SeasonMeans, colorDiversity)
	if err != nil {
		return err
	}

	return saveTiled([][]*plot.Plot{{left, right}}, 12*vg.Inch, 5*vg.Inch, pathname)
}

// TagEffectsFigure draws the strongest tag correlations as horizontal-style
// bars, green for positive effects and orange for negative, limited to the
// top entries by absolute effect.
func TagEffectsFigure(effects []stats.TagEffect, top int, pathname string) error {
	if len(effects) == 0 {
		return fmt.Errorf("no tag effects to plot")
	}

	sorted := make([]stats.TagEffect, len(effects))
	copy(sorted, effects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return math.Abs(sorted[i].PointBiserialR) > math.Abs(sorted[j].PointBiserialR)
	})
	if top > 0 && len(sorted) > top {
		sorted = sorted[:top]
	}

	p := newPlot("Tag Effects on Aesthetic Score", "", "Point-biserial r")

	names := make([]string, len(sorted))
	for i, e := range sorted {
		names[i] = e.Tag

		bars, err := plotter.NewBarChart(singleBar(i, len(sorted), e.PointBiserialR), vg.Points(14))
		if err != nil {
			return err
		}
		bars.LineStyle.Width = 0
		if e.PointBiserialR >= 0 {
			bars.Color = colorPositive
		} else {
			bars.Color = colorNegative
		}
		p.Add(bars)
	}

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = -0.9
	p.X.Tick.Label.XAlign = vgdraw.XLeft

	return savePlot(p, 10*vg.Inch, 5*vg.Inch, pathname)
}

// singleBar builds a value row with one non-zero slot so each bar in a
// nominal axis can carry its own color.
func singleBar(i, n int, v float64) plotter.Values {
	values := make(plotter.Values, n)
	values[i] = v
	return values
}
