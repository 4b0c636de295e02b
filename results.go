package emicast

import (
	"fmt"
	"io"
	"time"

	"github.com/carbonatlas/go-emicast/series"
)

// Results stores the forecasted time series over the horizon along with
// the upper and lower uncertainty bounds.
type Results struct {
	T        []time.Time `json:"time"`
	Forecast []float64   `json:"forecast"`
	Upper    []float64   `json:"upper"`
	Lower    []float64   `json:"lower"`
}

// Report is the full outcome of a pipeline run. Results and Scores are
// nil when the input produced an empty series and the run degraded to a
// report with no forecast.
type Report struct {
	Series  *series.MonthlySeries `json:"series"`
	Horizon int                   `json:"horizon"`
	Results *Results              `json:"results,omitempty"`
	Scores  *Scores               `json:"scores,omitempty"`
}

// WriteSummary prints the human readable evaluation of the run. When no
// error metrics could be computed a placeholder line is written instead.
func (r *Report) WriteSummary(w io.Writer) error {
	if r == nil {
		return nil
	}
	if r.Results == nil {
		_, err := fmt.Fprintln(w, "no forecast produced, input series is empty")
		return err
	}
	if _, err := fmt.Fprintf(w, "forecast of %d months through the horizon\n", r.Horizon); err != nil {
		return err
	}
	if r.Scores == nil {
		_, err := fmt.Fprintln(w, "error metrics undefined, no overlapping observations to compare")
		return err
	}
	if _, err := fmt.Fprintf(w, "Mean Absolute Error: %.2f\n", r.Scores.MAE); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Root Mean Square Error: %.2f\n", r.Scores.RMSE)
	return err
}
