package emicast

import (
	"github.com/carbonatlas/go-emicast/emissions"
	"github.com/carbonatlas/go-emicast/forecast"
)

// DefaultGas is the gas label the pipeline isolates when no other filter
// is configured.
const DefaultGas = "co2"

// OutlierOptions controls the Tukey fence scrub applied to the monthly
// series before fitting. Flagged months are replaced with NaN so the
// model ignores them.
type OutlierOptions struct {
	NumPasses       int
	LowerPercentile float64
	UpperPercentile float64
	TukeyFactor     float64
}

// NewOutlierOptions returns a conservative single pass scrub
// configuration.
func NewOutlierOptions() *OutlierOptions {
	return &OutlierOptions{
		NumPasses:       1,
		LowerPercentile: 0.1,
		UpperPercentile: 0.9,
		TukeyFactor:     3.0,
	}
}

// Options configures a pipeline run.
type Options struct {
	// Gas selects which gas label the series builder keeps.
	Gas string

	// TargetYear is the calendar year whose December ends the forecast
	// horizon.
	TargetYear int

	// CSV names the input columns. Defaults match the standard
	// emissions export.
	CSV *emissions.CSVOptions

	// Outlier enables the pre-fit scrub when set. Nil disables it.
	Outlier *OutlierOptions

	// Forecast configures the default forecasting model. Ignored when a
	// custom predictor is injected.
	Forecast *forecast.Options
}

// NewDefaultOptions returns pipeline options with the standard gas
// filter, column names, and model configuration. TargetYear must still
// be set by the caller.
func NewDefaultOptions() *Options {
	return &Options{
		Gas:      DefaultGas,
		CSV:      emissions.NewDefaultCSVOptions(),
		Forecast: forecast.NewDefaultOptions(),
	}
}
