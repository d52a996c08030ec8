package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Coefficient is one fitted OLS term with classical inference.
type Coefficient struct {
	Term   string
	Coef   float64
	StdErr float64
	TStat  float64
	PValue float64
	QValue float64
	CILow  float64
	CIHigh float64
	NObs   int
	DOF    int
}

// FitOLS fits y = X*beta by least squares using the pseudoinverse of X'X, so
// rank-deficient designs stay well defined, and attaches classical standard
// errors, t statistics, two-sided p-values and 95% confidence intervals.
func FitOLS(y []float64, x *mat.Dense, terms []string) ([]Coefficient, error) {
	n, k := x.Dims()
	if n != len(y) {
		return nil, errors.New("design matrix and outcome length mismatch")
	}
	if len(terms) != k {
		return nil, errors.New("term names do not match design matrix columns")
	}
	if n <= k {
		return nil, errors.New("more terms than observations")
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	xtxInv, err := pseudoInverse(&xtx)
	if err != nil {
		return nil, err
	}

	yVec := mat.NewVecDense(n, y)

	var xty mat.VecDense
	xty.MulVec(x.T(), yVec)

	var beta mat.VecDense
	beta.MulVec(xtxInv, &xty)

	var yHat mat.VecDense
	yHat.MulVec(x, &beta)

	rss := 0.0
	for i := 0; i < n; i++ {
		resid := y[i] - yHat.AtVec(i)
		rss += resid * resid
	}

	dof := n - k
	if dof < 1 {
		dof = 1
	}
	sigma2 := rss / float64(dof)

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}

	coefs := make([]Coefficient, k)
	for j := 0; j < k; j++ {
		b := beta.AtVec(j)
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))

		t := 0.0
		p := 1.0
		if se > 0 {
			t = b / se
			p = 2 * dist.Survival(math.Abs(t))
		}

		coefs[j] = Coefficient{
			Term:   terms[j],
			Coef:   b,
			StdErr: se,
			TStat:  t,
			PValue: p,
			CILow:  b - 1.96*se,
			CIHigh: b + 1.96*se,
			NObs:   n,
			DOF:    dof,
		}
	}

	return coefs, nil
}

//--------------------------------------------------------------------------------
// private

// pseudoInverse computes the Moore-Penrose inverse via SVD, zeroing singular
// values below a relative tolerance.
func pseudoInverse(a *mat.Dense) (*mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, errors.New("SVD factorization failed")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	tol := 1e-12
	if len(values) > 0 {
		tol = values[0] * 1e-12
	}

	d := mat.NewDense(len(values), len(values), nil)
	for i, s := range values {
		if s > tol {
			d.Set(i, i, 1/s)
		}
	}

	var vd, pinv mat.Dense
	vd.Mul(&v, d)
	pinv.Mul(&vd, u.T())

	return &pinv, nil
}
