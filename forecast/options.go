package forecast

import "time"

const (
	DefaultSeasonalityOrders = 2
	DefaultIntervalZscore    = 1.96
)

// Changepoint describes a point in time that changes the ongoing trend.
// It contributes both a bias and a growth feature from that time on.
type Changepoint struct {
	Name string    `json:"name"`
	T    time.Time `json:"time"`
}

func NewChangepoint(name string, t time.Time) Changepoint {
	return Changepoint{Name: name, T: t}
}

// Options configures the monthly forecast model.
type Options struct {
	// SeasonalityOrders is the number of Fourier orders modeling the
	// annual cycle. Reduced automatically when the training series is
	// too short to support them.
	SeasonalityOrders int `json:"seasonality_orders"`

	// Changepoints lists known trend shifts to model explicitly.
	Changepoints []Changepoint `json:"changepoints"`

	// Events lists month spans modeled with their own bias, keeping
	// temporary departures out of the trend and seasonality terms.
	Events []Event `json:"events"`

	// Regularization is the lasso L1 multiplier. 0.0 fits ordinary
	// least squares.
	Regularization float64 `json:"regularization"`

	// IntervalZscore scales the residual standard deviation into the
	// upper and lower uncertainty band.
	IntervalZscore float64 `json:"interval_zscore"`
}

// NewDefaultOptions returns a default set of forecast options.
func NewDefaultOptions() *Options {
	return &Options{
		SeasonalityOrders: DefaultSeasonalityOrders,
		Regularization:    0.0,
		IntervalZscore:    DefaultIntervalZscore,
	}
}

func (o *Options) copy() *Options {
	cpy := *o
	cpy.Changepoints = make([]Changepoint, len(o.Changepoints))
	copy(cpy.Changepoints, o.Changepoints)
	cpy.Events = make([]Event, len(o.Events))
	copy(cpy.Events, o.Events)
	return &cpy
}
