// Package forecast implements the monthly emissions forecasting model.
// The model decomposes a monthly series into an intercept, a linear
// trend with optional changepoints, and annual Fourier seasonality, fit
// with lasso regression where a zero lambda converges to ordinary least
// squares.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/carbonatlas/go-emicast/models"
	"github.com/carbonatlas/go-emicast/timedataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrUninitializedForecast    = errors.New("uninitialized forecast")
	ErrUntrainedForecast        = errors.New("forecast has not been trained yet")
	ErrInsufficientTrainingData = errors.New("insufficient training data after removing NaNs")
	ErrNoModelCoefficients      = errors.New("no model coefficients from fit")
)

// MinTrainingSamples is the smallest number of non-NaN observations the
// model will fit on. A single month of history cannot constrain even the
// trend term.
const MinTrainingSamples = 2

// monthly design matrices are tiny so the descent can afford to run to a
// tight tolerance
const (
	fitIterations = 5000
	fitTolerance  = 1e-8
)

// Forecast represents a single fitted model of a monthly series.
type Forecast struct {
	opt *Options

	trainStart time.Time
	trainEnd   time.Time

	fLabels     []string
	intercept   float64
	coef        []float64
	residual    []float64
	residualStd float64
	scores      *Scores
	trained     bool
}

// New creates a new forecast instance with the given options. If none
// are provided a default is used.
func New(opt *Options) (*Forecast, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	return &Forecast{opt: opt.copy()}, nil
}

// NewFromModel creates a forecast instance from a previously serialized
// model. The instance can run inference immediately without retraining.
func NewFromModel(model Model) (*Forecast, error) {
	if model.Options == nil {
		return nil, ErrUninitializedForecast
	}
	labels := featureLabels(model.Options)
	if len(labels) != len(model.Weights) {
		return nil, fmt.Errorf("model has %d weights for %d features, %w",
			len(model.Weights), len(labels), ErrNoModelCoefficients)
	}
	coef := make([]float64, 0, len(model.Weights))
	for _, w := range model.Weights {
		coef = append(coef, w.Value)
	}
	return &Forecast{
		opt:         model.Options.copy(),
		trainStart:  model.TrainStart,
		trainEnd:    model.TrainEnd,
		fLabels:     labels,
		intercept:   model.Intercept,
		coef:        coef,
		residualStd: model.ResidualStd,
		scores:      model.Scores,
		trained:     true,
	}, nil
}

// Fit trains the model on the input time and value slices. NaN values
// are dropped before fitting and seasonality orders are reduced when the
// series is too short to support them.
func (f *Forecast) Fit(t []time.Time, y []float64) error {
	if f == nil {
		return ErrUninitializedForecast
	}

	for _, event := range f.opt.Events {
		if err := event.Valid(); err != nil {
			return fmt.Errorf("event %q, %w", event.Name, err)
		}
	}

	td, err := timedataset.NewUnivariateDataset(t, y)
	if err != nil {
		return err
	}
	clean := td.DropNan()
	if len(clean.T) < MinTrainingSamples {
		return ErrInsufficientTrainingData
	}

	f.trainStart = clean.T[0]
	f.trainEnd = clean.T[len(clean.T)-1]
	f.clampSeasonalityOrders(len(clean.T))
	f.fLabels = featureLabels(f.opt)

	x, err := featureMatrix(clean.T, f.trainStart, f.opt)
	if err != nil {
		return err
	}
	yMx := mat.NewDense(len(clean.Y), 1, clean.Y)

	model, err := models.NewLassoRegression(
		&models.LassoOptions{
			Lambda:       f.opt.Regularization,
			Iterations:   fitIterations,
			Tolerance:    fitTolerance,
			FitIntercept: true,
		},
	)
	if err != nil {
		return err
	}
	if err := model.Fit(x, yMx); err != nil {
		return fmt.Errorf("unable to fit monthly series, %w", err)
	}
	f.intercept = model.Intercept()
	f.coef = model.Coef()
	f.trained = true

	// residuals are computed over the original input so NaN gaps stay
	// aligned with the caller's series
	predicted, err := f.Predict(td.T)
	if err != nil {
		return err
	}
	residual := make([]float64, len(td.Y))
	floats.SubTo(residual, td.Y, predicted)
	f.residual = residual

	cleanResidual := make([]float64, 0, len(residual))
	for _, r := range residual {
		if math.IsNaN(r) {
			continue
		}
		cleanResidual = append(cleanResidual, r)
	}
	f.residualStd = stat.StdDev(cleanResidual, nil)
	if math.IsNaN(f.residualStd) {
		f.residualStd = 0.0
	}

	scores, err := NewScores(predicted, td.Y)
	if err != nil {
		return err
	}
	f.scores = scores
	return nil
}

// clampSeasonalityOrders drops Fourier orders that the number of
// training samples cannot constrain alongside the intercept, trend,
// changepoint, and event columns.
func (f *Forecast) clampSeasonalityOrders(samples int) {
	fixed := 2 + 2*len(f.opt.Changepoints) + len(f.opt.Events)
	maxOrders := (samples - fixed) / 2
	if maxOrders < 0 {
		maxOrders = 0
	}
	if f.opt.SeasonalityOrders > maxOrders {
		f.opt.SeasonalityOrders = maxOrders
	}
}

// Predict takes a slice of times in any order and produces the predicted
// value for those times given a trained model.
func (f *Forecast) Predict(t []time.Time) ([]float64, error) {
	if f == nil {
		return nil, ErrUninitializedForecast
	}
	if !f.trained {
		return nil, ErrUntrainedForecast
	}

	x, err := featureMatrix(t, f.trainStart, f.opt)
	if err != nil {
		return nil, err
	}

	m, n := x.Dims()
	res := make([]float64, m)
	row := make([]float64, n)
	for i := 0; i < m; i++ {
		mat.Row(row, i, x)
		res[i] = f.intercept + floats.Dot(f.coef, row)
	}
	return res, nil
}

// Interval returns the half-width of the uncertainty band repeated n
// times, derived from the training residual standard deviation.
func (f *Forecast) Interval(n int) []float64 {
	if f == nil || n < 1 {
		return nil
	}
	band := make([]float64, n)
	floats.AddConst(f.opt.IntervalZscore*f.residualStd, band)
	return band
}

// Residuals returns the difference between the training data and the fit
// aligned with the training input, NaN where the input was NaN.
func (f *Forecast) Residuals() []float64 {
	if f == nil {
		return nil
	}
	res := make([]float64, len(f.residual))
	copy(res, f.residual)
	return res
}

// Scores returns the fit scores evaluating how well the model matched
// the training data.
func (f *Forecast) Scores() Scores {
	if f == nil || f.scores == nil {
		return Scores{}
	}
	return *f.scores
}

// TrainEndTime returns the time of the last observation used in the fit.
func (f *Forecast) TrainEndTime() time.Time {
	if f == nil {
		return time.Time{}
	}
	return f.trainEnd
}

// Coefficients returns the fitted weights keyed by feature label.
func (f *Forecast) Coefficients() (map[string]float64, error) {
	if f == nil {
		return nil, ErrUninitializedForecast
	}
	if len(f.fLabels) == 0 || len(f.coef) == 0 {
		return nil, ErrNoModelCoefficients
	}
	coef := make(map[string]float64, len(f.coef))
	for i := range f.coef {
		coef[f.fLabels[i]] = f.coef[i]
	}
	return coef, nil
}

// ModelEq returns a string representation of the fitted linear equation
// in the form y ~ b + m1x1 + m2x2 + ...
func (f *Forecast) ModelEq() (string, error) {
	if f == nil {
		return "", ErrUninitializedForecast
	}

	coef, err := f.Coefficients()
	if err != nil {
		return "", err
	}

	eq := fmt.Sprintf("y ~ %.2f", f.intercept)
	for _, label := range f.fLabels {
		w := coef[label]
		if w == 0 {
			continue
		}
		eq += fmt.Sprintf("+%.2f*%s", w, label)
	}
	return eq, nil
}

// Model returns the serializable representation of the fit composed of
// the options, weights, residual spread, and fit scores.
func (f *Forecast) Model() (Model, error) {
	if f == nil {
		return Model{}, ErrUninitializedForecast
	}
	if !f.trained {
		return Model{}, ErrUntrainedForecast
	}

	weights := make([]Weight, 0, len(f.coef))
	for i, c := range f.coef {
		weights = append(weights, Weight{Label: f.fLabels[i], Value: c})
	}
	return Model{
		TrainStart:  f.trainStart,
		TrainEnd:    f.trainEnd,
		Options:     f.opt.copy(),
		Scores:      f.scores,
		Intercept:   f.intercept,
		Weights:     weights,
		ResidualStd: f.residualStd,
	}, nil
}
