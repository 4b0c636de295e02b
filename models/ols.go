package models

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// OLSOptions represents input options for the ordinary least squares fit.
type OLSOptions struct {
	// FitIntercept adds a constant 1.0 feature column when set.
	FitIntercept bool
}

// NewDefaultOLSOptions returns a default set of OLS options.
func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		FitIntercept: true,
	}
}

// Validate runs basic validation on OLS options.
func (o *OLSOptions) Validate() (*OLSOptions, error) {
	if o == nil {
		o = NewDefaultOLSOptions()
	}
	return o, nil
}

// OLSRegression computes ordinary least squares using QR factorization.
type OLSRegression struct {
	opt *OLSOptions

	coef      []float64
	intercept float64
}

// NewOLSRegression initializes an OLS model ready for fitting.
func NewOLSRegression(opt *OLSOptions) (*OLSRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &OLSRegression{opt: opt}, nil
}

// Fit solves the least squares problem for the given design matrix and
// target column.
func (o *OLSRegression) Fit(x, y mat.Matrix) error {
	if o.opt == nil {
		return ErrNoOptions
	}
	if _, _, err := validateFit(x, y); err != nil {
		return err
	}

	if o.opt.FitIntercept {
		x = withIntercept(x)
	}
	_, n := x.Dims()

	var qr mat.QR
	qr.Factorize(x)

	beta := mat.NewDense(n, 1, nil)
	if err := qr.SolveTo(beta, false, y); err != nil {
		return err
	}

	c := mat.Col(nil, 0, beta)
	if o.opt.FitIntercept {
		o.intercept = c[0]
		o.coef = c[1:]
		return nil
	}
	o.coef = c
	return nil
}

// Predict runs inference against the design matrix using the fitted
// weights.
func (o *OLSRegression) Predict(x mat.Matrix) ([]float64, error) {
	if o.opt == nil {
		return nil, ErrNoOptions
	}
	return predictLinear(x, o.intercept, o.coef)
}

// Score computes the coefficient of determination of the prediction.
func (o *OLSRegression) Score(x, y mat.Matrix) (float64, error) {
	if o.opt == nil {
		return 0.0, ErrNoOptions
	}
	if _, _, err := validateFit(x, y); err != nil {
		return 0.0, err
	}

	res, err := o.Predict(x)
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
func (o *OLSRegression) Intercept() float64 {
	return o.intercept
}

// Coef returns a copy of the fitted coefficients in design matrix
// column order.
func (o *OLSRegression) Coef() []float64 {
	c := make([]float64, len(o.coef))
	copy(c, o.coef)
	return c
}
