package models

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultLambda     = 1.0
	DefaultIterations = 1000
	DefaultTolerance  = 1e-4
)

// LassoOptions represents input options to run the lasso regression.
type LassoOptions struct {
	// Lambda is the L1 multiplier controlling regularization. Must be
	// non-negative. 0.0 converges to ordinary least squares.
	Lambda float64

	// Iterations is the maximum number of passes over all coefficients.
	Iterations int

	// Tolerance is the smallest relative coefficient update below which
	// iteration stops.
	Tolerance float64

	// FitIntercept adds a constant 1.0 feature column when set.
	FitIntercept bool
}

// NewDefaultLassoOptions returns a default set of lasso options.
func NewDefaultLassoOptions() *LassoOptions {
	return &LassoOptions{
		Lambda:       DefaultLambda,
		Iterations:   DefaultIterations,
		Tolerance:    DefaultTolerance,
		FitIntercept: true,
	}
}

// Validate runs basic validation on lasso options.
func (l *LassoOptions) Validate() (*LassoOptions, error) {
	if l == nil {
		l = NewDefaultLassoOptions()
	}
	if l.Lambda < 0 {
		return nil, ErrNegativeLambda
	}
	if l.Iterations < 0 {
		return nil, ErrNegativeIterations
	}
	if l.Tolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	return l, nil
}

// LassoRegression computes the lasso fit using coordinate descent with
// soft thresholding.
type LassoRegression struct {
	opt *LassoOptions

	coef      []float64
	intercept float64
}

// NewLassoRegression initializes a lasso model ready for fitting.
func NewLassoRegression(opt *LassoOptions) (*LassoRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &LassoRegression{opt: opt}, nil
}

// Fit the model according to the given training data.
func (l *LassoRegression) Fit(x, y mat.Matrix) error {
	if l.opt == nil {
		return ErrNoOptions
	}
	if _, _, err := validateFit(x, y); err != nil {
		return err
	}

	if l.opt.FitIntercept {
		x = withIntercept(x)
	}
	m, n := x.Dims()

	// column views and per-column dot products only need computing once
	xcols := make([][]float64, n)
	xdot := make([]float64, n)
	for j := 0; j < n; j++ {
		xcols[j] = mat.Col(nil, j, x)
		xdot[j] = floats.Dot(xcols[j], xcols[j])
	}
	yArr := mat.Col(nil, 0, y)

	beta := make([]float64, n)
	betaX := make([]float64, m)
	residual := make([]float64, m)

	for i := 0; i < l.opt.Iterations; i++ {
		maxCoef := 0.0
		maxUpdate := 0.0

		for j := 0; j < n; j++ {
			if xdot[j] == 0 {
				continue
			}
			floats.SubTo(residual, yArr, betaX)

			betaNext := floats.Dot(xcols[j], residual)/xdot[j] + beta[j]

			// the intercept column is not penalized
			if !(l.opt.FitIntercept && j == 0) {
				betaNext = SoftThreshold(betaNext, l.opt.Lambda/xdot[j])
			}

			delta := betaNext - beta[j]
			if delta != 0 {
				floats.AddScaled(betaX, delta, xcols[j])
			}
			beta[j] = betaNext

			maxCoef = math.Max(maxCoef, math.Abs(betaNext))
			maxUpdate = math.Max(maxUpdate, math.Abs(delta))
		}

		if maxUpdate < l.opt.Tolerance*maxCoef {
			break
		}
	}

	if l.opt.FitIntercept {
		l.intercept = beta[0]
		l.coef = beta[1:]
		return nil
	}
	l.coef = beta
	return nil
}

// Predict runs inference against the design matrix using the fitted
// weights.
func (l *LassoRegression) Predict(x mat.Matrix) ([]float64, error) {
	if l.opt == nil {
		return nil, ErrNoOptions
	}
	return predictLinear(x, l.intercept, l.coef)
}

// Score computes the coefficient of determination of the prediction.
func (l *LassoRegression) Score(x, y mat.Matrix) (float64, error) {
	if l.opt == nil {
		return 0.0, ErrNoOptions
	}
	if _, _, err := validateFit(x, y); err != nil {
		return 0.0, err
	}

	res, err := l.Predict(x)
	if err != nil {
		return 0.0, err
	}

	score := stat.RSquaredFrom(res, mat.Col(nil, 0, y), nil)
	if math.IsNaN(score) {
		score = 1.0
	}
	return score, nil
}

// Intercept returns the fitted intercept. Defaults to 0.0 when
// FitIntercept is not set.
func (l *LassoRegression) Intercept() float64 {
	return l.intercept
}

// Coef returns a copy of the fitted coefficients in design matrix
// column order.
func (l *LassoRegression) Coef() []float64 {
	c := make([]float64, len(l.coef))
	copy(c, l.coef)
	return c
}

// SoftThreshold shrinks x towards zero by gamma, returning 0.0 when the
// magnitude of x does not exceed gamma.
func SoftThreshold(x, gamma float64) float64 {
	res := math.Max(0, math.Abs(x)-gamma)
	if math.Signbit(x) {
		return -res
	}
	return res
}
