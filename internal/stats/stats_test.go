package stats

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/mat"
)

func TestRanksWithTies(t *testing.T) {
	got := ranks([]float64{3, 1, 4, 1, 5})
	want := []float64{3, 1.5, 4, 1.5, 5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rank mismatch (-want +got):\n%s", diff)
	}
}

func TestPearsonPerfectCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{2, 4, 6, 8, 10, 12}

	r, p, err := Pearson(x, y)
	if err != nil {
		t.Fatalf("Pearson: %v", err)
	}
	if math.Abs(r-1) > 1e-12 {
		t.Errorf("expected r=1, got %g", r)
	}
	if p > 1e-9 {
		t.Errorf("expected p near zero, got %g", p)
	}
}

func TestPearsonNoCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{1, -1, -1, 1}

	r, p, err := Pearson(x, y)
	if err != nil {
		t.Fatalf("Pearson: %v", err)
	}
	if math.Abs(r) > 1e-12 {
		t.Errorf("expected zero r, got %g", r)
	}
	if p < 0.9 {
		t.Errorf("expected a p-value near 1, got %g", p)
	}
}

func TestSpearmanMonotonic(t *testing.T) {
	// monotone but nonlinear: Spearman sees a perfect relationship
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{1, 8, 27, 64, 125}

	r, _, err := Spearman(x, y)
	if err != nil {
		t.Fatalf("Spearman: %v", err)
	}
	if math.Abs(r-1) > 1e-12 {
		t.Errorf("expected rho=1, got %g", r)
	}
}

func TestBenjaminiHochberg(t *testing.T) {
	p := []float64{0.01, 0.04, 0.03, 0.005}
	got := BenjaminiHochberg(p)

	// hand-computed: sorted p = .005,.01,.03,.04 -> q = .02,.02,.04,.04
	want := []float64{0.02, 0.04, 0.04, 0.02}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("q-value mismatch (-want +got):\n%s", diff)
	}
}

func TestBenjaminiHochbergClipsToOne(t *testing.T) {
	got := BenjaminiHochberg([]float64{0.9, 0.95, 0.99})
	for i, q := range got {
		if q > 1 {
			t.Errorf("q[%d] = %g exceeds 1", i, q)
		}
	}
}

func TestBenjaminiHochbergEmpty(t *testing.T) {
	if got := BenjaminiHochberg(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestFitOLSRecoversCoefficients(t *testing.T) {
	// y = 2 + 3*x1 - x2, noiseless
	n := 20
	x := mat.NewDense(n, 3, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x1 := float64(i)
		x2 := float64(i%5) - 2
		x.Set(i, 0, 1)
		x.Set(i, 1, x1)
		x.Set(i, 2, x2)
		y[i] = 2 + 3*x1 - x2
	}

	coefs, err := FitOLS(y, x, []string{"const", "x1", "x2"})
	if err != nil {
		t.Fatalf("FitOLS: %v", err)
	}

	want := []float64{2, 3, -1}
	for i, c := range coefs {
		if math.Abs(c.Coef-want[i]) > 1e-8 {
			t.Errorf("%s: expected %g, got %g", c.Term, want[i], c.Coef)
		}
	}
}

func TestFitOLSSingularDesign(t *testing.T) {
	// third column duplicates the second; the pseudoinverse keeps it solvable
	n := 12
	x := mat.NewDense(n, 3, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		v := float64(i)
		x.Set(i, 0, 1)
		x.Set(i, 1, v)
		x.Set(i, 2, v)
		y[i] = 1 + 2*v
	}

	coefs, err := FitOLS(y, x, []string{"const", "a", "b"})
	if err != nil {
		t.Fatalf("FitOLS: %v", err)
	}

	// the duplicated effect splits across the two collinear columns
	sum := coefs[1].Coef + coefs[2].Coef
	if math.Abs(sum-2) > 1e-8 {
		t.Errorf("expected combined slope 2, got %g", sum)
	}
}

func TestOneWayAnovaSeparatedGroups(t *testing.T) {
	groups := [][]float64{
		{1, 1.1, 0.9, 1.05},
		{5, 5.1, 4.9, 5.05},
		{9, 9.1, 8.9, 9.05},
	}

	a, err := OneWayAnova(groups)
	if err != nil {
		t.Fatalf("OneWayAnova: %v", err)
	}

	if a.Groups != 3 || a.N != 12 {
		t.Errorf("expected 3 groups of 12 observations, got %d/%d", a.Groups, a.N)
	}
	if a.PValue > 1e-6 {
		t.Errorf("clearly separated groups should be significant, got p=%g", a.PValue)
	}
	if a.Eta2 < 0.9 {
		t.Errorf("expected eta^2 near 1, got %g", a.Eta2)
	}
}

func TestOneWayAnovaIgnoresEmptyGroups(t *testing.T) {
	a, err := OneWayAnova([][]float64{{1, 2, 3}, {}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("OneWayAnova: %v", err)
	}
	if a.Groups != 2 {
		t.Errorf("expected empty groups ignored, got %d", a.Groups)
	}
}

func TestOneWayAnovaNeedsTwoGroups(t *testing.T) {
	if _, err := OneWayAnova([][]float64{{1, 2, 3}}); err == nil {
		t.Error("expected an error with a single group")
	}
}

func TestStandardize(t *testing.T) {
	z := standardize([]float64{2, 4, 6, 8})

	mean, sd := meanStd(z)
	if math.Abs(mean) > 1e-12 {
		t.Errorf("expected zero mean, got %g", mean)
	}
	if math.Abs(sd-1) > 1e-12 {
		t.Errorf("expected unit sd, got %g", sd)
	}
}

func TestResidualizeRemovesGroupMeans(t *testing.T) {
	values := []float64{1, 3, 10, 14}
	groups := []string{"a", "a", "b", "b"}

	got := residualize(values, groups)
	want := []float64{-1, 1, -2, 2}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("residual mismatch (-want +got):\n%s", diff)
	}
}
