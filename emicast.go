// Package emicast forecasts monthly greenhouse gas emissions from raw
// transaction level records. The pipeline loads records from CSV,
// isolates a single gas, aggregates to monthly means, fits a
// forecasting model, and projects the series through December of a
// target year with uncertainty bounds and error metrics.
package emicast

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/carbonatlas/go-emicast/emissions"
	"github.com/carbonatlas/go-emicast/forecast"
	"github.com/carbonatlas/go-emicast/series"
	"github.com/carbonatlas/go-emicast/stats"
	"github.com/carbonatlas/go-emicast/timedataset"
)

var ErrNoTargetYear = errors.New("no target year configured")

// Predictor is the modeling interface the pipeline drives. The default
// implementation is forecast.Forecast but any model that can fit a
// monthly series and predict over future months can be swapped in.
type Predictor interface {
	Fit(t []time.Time, y []float64) error
	Predict(t []time.Time) ([]float64, error)
}

// Intervaler is optionally implemented by predictors that can report an
// uncertainty band half-width for n future steps. Without it the
// forecast bounds collapse onto the point forecast.
type Intervaler interface {
	Interval(n int) []float64
}

// Pipeline runs the end to end emissions forecasting flow.
type Pipeline struct {
	opt       *Options
	predictor Predictor
}

// New creates a pipeline using the built-in forecasting model. If opt is
// nil defaults are used, though a target year must be set before
// running.
func New(opt *Options) (*Pipeline, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	f, err := forecast.New(opt.Forecast)
	if err != nil {
		return nil, err
	}
	return &Pipeline{opt: opt, predictor: f}, nil
}

// NewWithPredictor creates a pipeline driving the provided model instead
// of the built-in one.
func NewWithPredictor(opt *Options, predictor Predictor) (*Pipeline, error) {
	if predictor == nil {
		return nil, errors.New("nil predictor")
	}
	if opt == nil {
		opt = NewDefaultOptions()
	}
	return &Pipeline{opt: opt, predictor: predictor}, nil
}

// Predictor returns the model the pipeline drives, after a run the model
// holds the fitted state.
func (p *Pipeline) Predictor() Predictor {
	if p == nil {
		return nil
	}
	return p.predictor
}

// Run loads the emissions CSV at path and executes the forecasting flow.
func (p *Pipeline) Run(path string) (*Report, error) {
	records, err := emissions.LoadCSV(path, p.opt.CSV)
	if err != nil {
		return nil, err
	}
	return p.RunRecords(records)
}

// RunRecords executes the forecasting flow on already loaded records.
// An input with no records of the configured gas degrades to a report
// carrying the empty series and no forecast. Model errors propagate
// unmodified.
func (p *Pipeline) RunRecords(records []emissions.Record) (*Report, error) {
	if p == nil || p.opt == nil {
		return nil, errors.New("uninitialized pipeline")
	}
	if p.opt.TargetYear == 0 {
		return nil, ErrNoTargetYear
	}

	s, err := series.BuildMonthly(records, p.opt.Gas)
	if err != nil {
		return nil, fmt.Errorf("unable to build monthly series, %w", err)
	}
	if s.Len() == 0 {
		slog.Warn("no records after gas filter, skipping forecast", "gas", p.opt.Gas)
		return &Report{Series: s}, nil
	}

	horizon := HorizonMonths(s.EndMonth(), p.opt.TargetYear)
	slog.Info("built monthly series",
		"gas", p.opt.Gas,
		"months", s.Len(),
		"end", s.EndMonth().Format("2006-01"),
		"horizon", horizon)

	td, err := s.Dataset()
	if err != nil {
		return nil, fmt.Errorf("unable to build training dataset, %w", err)
	}
	y := p.scrubOutliers(td.Y)

	if err := p.predictor.Fit(td.T, y); err != nil {
		return nil, err
	}

	future := timedataset.MonthEnds(s.EndMonth(), horizon)
	predicted, err := p.predictor.Predict(future)
	if err != nil {
		return nil, err
	}

	upper := make([]float64, len(predicted))
	lower := make([]float64, len(predicted))
	copy(upper, predicted)
	copy(lower, predicted)
	if iv, ok := p.predictor.(Intervaler); ok {
		if band := iv.Interval(len(predicted)); len(band) == len(predicted) {
			for i := range band {
				upper[i] += band[i]
				lower[i] -= band[i]
			}
		}
	}

	// the trailing window of observed months is compared against the
	// forecast head, evaluating against the original values even when
	// the scrub blanked some of them for fitting
	window := horizon
	if window > s.Len() {
		window = s.Len()
	}
	scores, err := Evaluate(s.Values[s.Len()-window:], predicted[:window])
	if err != nil {
		return nil, err
	}
	if scores == nil {
		slog.Warn("error metrics undefined, no comparable observations in evaluation window")
	}

	return &Report{
		Series:  s,
		Horizon: horizon,
		Results: &Results{
			T:        future,
			Forecast: predicted,
			Upper:    upper,
			Lower:    lower,
		},
		Scores: scores,
	}, nil
}

// scrubOutliers returns a copy of values with outlier months blanked to
// NaN so the model fit skips them. The original slice is untouched and
// remains the evaluation reference.
func (p *Pipeline) scrubOutliers(values []float64) []float64 {
	y := make([]float64, len(values))
	copy(y, values)

	o := p.opt.Outlier
	if o == nil || o.NumPasses < 1 {
		return y
	}
	for pass := 0; pass < o.NumPasses; pass++ {
		idx := stats.DetectOutliers(y, o.LowerPercentile, o.UpperPercentile, o.TukeyFactor)
		if len(idx) == 0 {
			break
		}
		slog.Info("blanking outlier months", "pass", pass+1, "count", len(idx))
		for _, i := range idx {
			y[i] = math.NaN()
		}
	}
	return y
}

// PlotFit renders the forecast chart for a finished run to an HTML file
// at path.
func (p *Pipeline) PlotFit(report *Report, path string) error {
	if report == nil || report.Results == nil {
		return errors.New("no results to plot")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create plot file, %w", err)
	}
	defer f.Close()

	return WriteChart(LineForecaster(report.Series, report.Results), f)
}
