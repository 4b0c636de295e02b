// Package models is a collection of linear regression fitting
// implementations used by the forecast package.
package models

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoOptions          = errors.New("no initialized model options")
	ErrNoTrainingMatrix   = errors.New("no training matrix")
	ErrNoTargetMatrix     = errors.New("no target matrix")
	ErrNoDesignMatrix     = errors.New("no design matrix for inference")
	ErrTargetLenMismatch  = errors.New("target rows do not match training rows")
	ErrFeatureLenMismatch = errors.New("number of features does not match number of model coefficients")
	ErrNegativeLambda     = errors.New("negative lambda")
	ErrNegativeIterations = errors.New("negative iterations")
	ErrNegativeTolerance  = errors.New("negative tolerance")
)

// Model is a fitted linear estimator. The design matrix x is laid out
// with one row per observation and one column per feature. The target y
// is a single column.
type Model interface {
	Fit(x, y mat.Matrix) error
	Predict(x mat.Matrix) ([]float64, error)
	Score(x, y mat.Matrix) (float64, error)
	Intercept() float64
	Coef() []float64
}

func validateFit(x, y mat.Matrix) (int, int, error) {
	if x == nil {
		return 0, 0, ErrNoTrainingMatrix
	}
	if y == nil {
		return 0, 0, ErrNoTargetMatrix
	}
	m, n := x.Dims()
	ym, _ := y.Dims()
	if ym != m {
		return 0, 0, ErrTargetLenMismatch
	}
	return m, n, nil
}

// withIntercept prepends a constant 1.0 column to the design matrix.
func withIntercept(x mat.Matrix) mat.Matrix {
	m, n := x.Dims()
	dst := mat.NewDense(m, n+1, nil)
	for i := 0; i < m; i++ {
		dst.Set(i, 0, 1.0)
		for j := 0; j < n; j++ {
			dst.Set(i, j+1, x.At(i, j))
		}
	}
	return dst
}

func predictLinear(x mat.Matrix, intercept float64, coef []float64) ([]float64, error) {
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	m, n := x.Dims()
	if n != len(coef) {
		return nil, ErrFeatureLenMismatch
	}

	res := make([]float64, m)
	row := make([]float64, n)
	for i := 0; i < m; i++ {
		mat.Row(row, i, x)
		yhat := intercept
		for j := 0; j < n; j++ {
			yhat += coef[j] * row[j]
		}
		res[i] = yhat
	}
	return res, nil
}
