package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

// GroupMeans summarizes one category or season group.
type GroupMeans struct {
	Name           string
	N              int
	AestheticMean  float64
	LightnessMean  float64
	SaturationMean float64
	DistanceMean   float64
	DiversityMean  float64
}

// Hypothesis is one row of the fixed hypothesis table.
type Hypothesis struct {
	TestID      string
	Hypothesis  string
	TestFamily  string
	EffectSize  float64
	PValue      float64
	QValue      float64
	N           int
	Significant bool
}

// Report bundles every output of the hypothesis pipeline. HasAesthetic is
// false when the corpus carries too few aesthetic scores to test against;
// every aesthetic-outcome table is then empty.
type Report struct {
	HasAesthetic  bool
	Correlations  []Correlation
	CategoryMeans []GroupMeans
	SeasonMeans   []GroupMeans
	Coefficients  []Coefficient
	AnovaCategory Anova
	AnovaSeason   Anova
	TagEffects    []TagEffect
	Hypotheses    []Hypothesis
}

// TopTagEffects limits the tag table like the published artifact does.
const TopTagEffects = 30

// Analyze runs the full hypothesis pipeline over the joined rows. The
// aesthetic-outcome families run over the subset of rows carrying a finite
// aesthetic score; when fewer than 3 rows have one, those families are
// skipped and only the lightness-by-season test remains.
func Analyze(rows []Row) (*Report, error) {
	report := &Report{}

	hasSection := false
	for _, r := range rows {
		if r.Section != "" {
			hasSection = true
			break
		}
	}
	if !hasSection {
		log.Warn().Msg("no section metadata: skipping section-residualized tests")
	}

	scored := make([]Row, 0, len(rows))
	for _, r := range rows {
		if !math.IsNaN(r.Aesthetic) {
			scored = append(scored, r)
		}
	}
	report.HasAesthetic = len(scored) >= 3
	if !report.HasAesthetic {
		log.Warn().Int("scored", len(scored)).
			Msg("too few aesthetic scores: skipping aesthetic-outcome tests")
	}

	report.CategoryMeans = groupMeans(rows, func(r Row) string { return r.Category })
	report.SeasonMeans = groupMeans(rows, func(r Row) string { return r.Season })

	if report.HasAesthetic {
		columns := series(scored)

		if err := report.correlate(columns, len(scored), hasSection); err != nil {
			return nil, err
		}

		if err := report.fitModel(scored, columns, hasSection); err != nil {
			return nil, err
		}

		report.TagEffects = TagEffects(scored)
		if len(report.TagEffects) > TopTagEffects {
			report.TagEffects = report.TagEffects[:TopTagEffects]
		}
	}

	if err := report.runAnova(scored, rows); err != nil {
		return nil, err
	}

	if err := report.buildHypotheses(len(scored), len(rows)); err != nil {
		return nil, err
	}

	return report, nil
}

//--------------------------------------------------------------------------------
// private

func (report *Report) correlate(columns map[string][]float64, n int, hasSection bool) error {
	pairs := [][2]string{
		{serAesthetic, serLightness},
		{serAesthetic, serSaturation},
		{serAesthetic, serDistance},
		{serAesthetic, serDiversity},
		{serAesthetic + "_wy", serLightness + "_wy"},
		{serAesthetic + "_wy", serSaturation + "_wy"},
		{serAesthetic + "_wy", serDistance + "_wy"},
		{serAesthetic + "_wd", serLightness + "_wd"},
		{serAesthetic + "_wd", serSaturation + "_wd"},
		{serAesthetic + "_wd", serDistance + "_wd"},
	}
	if hasSection {
		pairs = append(pairs,
			[2]string{serAesthetic + "_ws", serLightness + "_ws"},
			[2]string{serAesthetic + "_ws", serSaturation + "_ws"},
			[2]string{serAesthetic + "_ws", serDistance + "_ws"},
		)
	}

	for _, pair := range pairs {
		y, x := columns[pair[0]], columns[pair[1]]

		pearR, pearP, err := Pearson(x, y)
		if err != nil {
			return fmt.Errorf("unable to correlate %s with %s: %w", pair[0], pair[1], err)
		}
		speR, speP, err := Spearman(x, y)
		if err != nil {
			return fmt.Errorf("unable to correlate %s with %s: %w", pair[0], pair[1], err)
		}

		report.Correlations = append(report.Correlations, Correlation{
			Outcome:   pair[0],
			Predictor: pair[1],
			PearsonR:  pearR,
			PearsonP:  pearP,
			SpearmanR: speR,
			SpearmanP: speP,
			N:         n,
		})
	}

	sort.SliceStable(report.Correlations, func(i, j int) bool {
		return math.Abs(report.Correlations[i].SpearmanR) > math.Abs(report.Correlations[j].SpearmanR)
	})

	return nil
}

func (report *Report) fitModel(rows []Row, columns map[string][]float64, hasSection bool) error {
	years := make([]float64, len(rows))
	for i, r := range rows {
		years[i] = float64(r.Year)
	}

	numeric := [][]float64{
		standardize(columns[serLightness]),
		standardize(columns[serSaturation]),
		standardize(columns[serDistance]),
		standardize(columns[serDiversity]),
		standardize(years),
	}
	terms := []string{"intercept", "z_lightness", "z_saturation", "z_distance", "z_diversity", "z_year"}

	dummyGroups := []struct {
		prefix string
		get    func(Row) string
	}{
		{"category", func(r Row) string { return r.Category }},
		{"season", func(r Row) string { return r.Season }},
	}
	if hasSection {
		dummyGroups = append(dummyGroups, struct {
			prefix string
			get    func(Row) string
		}{"section", func(r Row) string { return r.Section }})
	}

	var dummies [][]float64
	for _, dg := range dummyGroups {
		cols, names := dummyColumns(rows, dg.get, dg.prefix)
		dummies = append(dummies, cols...)
		terms = append(terms, names...)
	}

	k := 1 + len(numeric) + len(dummies)
	x := mat.NewDense(len(rows), k, nil)
	for i := range rows {
		x.Set(i, 0, 1)
		for j, col := range numeric {
			x.Set(i, 1+j, col[i])
		}
		for j, col := range dummies {
			x.Set(i, 1+len(numeric)+j, col[i])
		}
	}

	coefs, err := FitOLS(standardize(columns[serAesthetic]), x, terms)
	if err != nil {
		return fmt.Errorf("unable to fit the aesthetic model: %w", err)
	}

	pValues := make([]float64, len(coefs))
	for i, c := range coefs {
		pValues[i] = c.PValue
	}
	for i, q := range BenjaminiHochberg(pValues) {
		coefs[i].QValue = q
	}

	sort.SliceStable(coefs, func(i, j int) bool { return coefs[i].PValue < coefs[j].PValue })
	report.Coefficients = coefs

	return nil
}

// dummyColumns builds drop-first indicator columns for one categorical
// variable, levels in lexical order.
func dummyColumns(rows []Row, get func(Row) string, prefix string) ([][]float64, []string) {
	levels := map[string]bool{}
	for _, r := range rows {
		levels[get(r)] = true
	}

	sorted := make([]string, 0, len(levels))
	for level := range levels {
		sorted = append(sorted, level)
	}
	sort.Strings(sorted)

	if len(sorted) < 2 {
		return nil, nil
	}

	cols := make([][]float64, 0, len(sorted)-1)
	names := make([]string, 0, len(sorted)-1)
	for _, level := range sorted[1:] {
		col := make([]float64, len(rows))
		for i, r := range rows {
			if get(r) == level {
				col[i] = 1
			}
		}
		cols = append(cols, col)
		names = append(names, prefix+"_"+level)
	}

	return cols, names
}

func (report *Report) runAnova(scored, rows []Row) error {
	if report.HasAesthetic {
		byCategory := map[string][]float64{}
		for _, r := range scored {
			byCategory[r.Category] = append(byCategory[r.Category], r.Aesthetic)
		}

		var err error
		report.AnovaCategory, err = OneWayAnova(groupValues(byCategory))
		if err != nil {
			return fmt.Errorf("category ANOVA: %w", err)
		}
	}

	bySeason := map[string][]float64{}
	for _, r := range rows {
		bySeason[r.Season] = append(bySeason[r.Season], r.Lightness)
	}

	var err error
	report.AnovaSeason, err = OneWayAnova(groupValues(bySeason))
	if err != nil {
		return fmt.Errorf("season ANOVA: %w", err)
	}

	return nil
}

func groupValues(groups map[string][]float64) [][]float64 {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([][]float64, 0, len(names))
	for _, name := range names {
		out = append(out, groups[name])
	}
	return out
}

func (report *Report) buildHypotheses(nScored, nAll int) error {
	h5 := Hypothesis{TestID: "H5", Hypothesis: "Seasons differ in mean lightness",
		TestFamily: "One-way ANOVA", EffectSize: report.AnovaSeason.Eta2, PValue: report.AnovaSeason.PValue, N: nAll}

	if !report.HasAesthetic {
		report.Hypotheses = []Hypothesis{h5}
		report.correctHypotheses()
		return nil
	}

	corr := func(predictor string) (*Correlation, error) {
		for i := range report.Correlations {
			c := &report.Correlations[i]
			if c.Outcome == serAesthetic && c.Predictor == predictor {
				return c, nil
			}
		}
		return nil, fmt.Errorf("missing correlation for %s", predictor)
	}

	coef := func(term string) (*Coefficient, error) {
		for i := range report.Coefficients {
			if report.Coefficients[i].Term == term {
				return &report.Coefficients[i], nil
			}
		}
		return nil, fmt.Errorf("missing model term %s", term)
	}

	light, err := corr(serLightness)
	if err != nil {
		return err
	}
	dist, err := corr(serDistance)
	if err != nil {
		return err
	}
	sat, err := corr(serSaturation)
	if err != nil {
		return err
	}

	zLight, err := coef("z_lightness")
	if err != nil {
		return err
	}
	zSat, err := coef("z_saturation")
	if err != nil {
		return err
	}
	zDist, err := coef("z_distance")
	if err != nil {
		return err
	}

	report.Hypotheses = []Hypothesis{
		{TestID: "H1", Hypothesis: "Lower lightness predicts higher aesthetic score",
			TestFamily: "Spearman correlation", EffectSize: light.SpearmanR, PValue: light.SpearmanP, N: nScored},
		{TestID: "H2", Hypothesis: "Higher palette distance predicts higher aesthetic score",
			TestFamily: "Spearman correlation", EffectSize: dist.SpearmanR, PValue: dist.SpearmanP, N: nScored},
		{TestID: "H3", Hypothesis: "Higher saturation predicts higher aesthetic score",
			TestFamily: "Spearman correlation", EffectSize: sat.SpearmanR, PValue: sat.SpearmanP, N: nScored},
		{TestID: "H4", Hypothesis: "Category groups differ in aesthetic score",
			TestFamily: "One-way ANOVA", EffectSize: report.AnovaCategory.Eta2, PValue: report.AnovaCategory.PValue, N: nScored},
		h5,
		{TestID: "H6", Hypothesis: "Multivariable effect of lightness remains negative after controls",
			TestFamily: "OLS coefficient", EffectSize: zLight.Coef, PValue: zLight.PValue, N: zLight.NObs},
		{TestID: "H7", Hypothesis: "Multivariable effect of saturation remains positive after controls",
			TestFamily: "OLS coefficient", EffectSize: zSat.Coef, PValue: zSat.PValue, N: zSat.NObs},
		{TestID: "H8", Hypothesis: "Multivariable effect of palette distance remains positive after controls",
			TestFamily: "OLS coefficient", EffectSize: zDist.Coef, PValue: zDist.PValue, N: zDist.NObs},
	}

	report.correctHypotheses()
	return nil
}

func (report *Report) correctHypotheses() {
	pValues := make([]float64, len(report.Hypotheses))
	for i, h := range report.Hypotheses {
		pValues[i] = h.PValue
	}
	for i, q := range BenjaminiHochberg(pValues) {
		report.Hypotheses[i].QValue = q
		report.Hypotheses[i].Significant = q < 0.05
	}
}

func groupMeans(rows []Row, key func(Row) string) []GroupMeans {
	grouped := map[string]*GroupMeans{}
	scoredN := map[string]int{}
	for _, r := range rows {
		g, ok := grouped[key(r)]
		if !ok {
			g = &GroupMeans{Name: key(r)}
			grouped[key(r)] = g
		}
		g.N++
		if !math.IsNaN(r.Aesthetic) {
			g.AestheticMean += r.Aesthetic
			scoredN[key(r)]++
		}
		g.LightnessMean += r.Lightness
		g.SaturationMean += r.Saturation
		g.DistanceMean += r.PaletteDistance
		g.DiversityMean += r.Diversity
	}

	out := make([]GroupMeans, 0, len(grouped))
	for name, g := range grouped {
		n := float64(g.N)
		if scored := scoredN[name]; scored > 0 {
			g.AestheticMean /= float64(scored)
		} else {
			g.AestheticMean = math.NaN()
		}
		g.LightnessMean /= n
		g.SaturationMean /= n
		g.DistanceMean /= n
		g.DiversityMean /= n
		out = append(out, *g)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Name < out[j].Name
	})

	return out
}
