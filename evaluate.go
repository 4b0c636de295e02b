package emicast

import (
	"errors"
	"fmt"
	"math"
)

var ErrEvalLenMismatch = errors.New("actual and predicted have different lengths")

// Scores holds the error metrics between an actual window and the
// forecast values covering it.
type Scores struct {
	MAE  float64 `json:"mean_absolute_error"`
	RMSE float64 `json:"root_mean_square_error"`
}

// Evaluate computes the mean absolute error and root mean square error
// between actual and predicted. NaN pairs are excluded. When there are
// no comparable pairs at all the metrics are undefined and a nil result
// is returned with no error.
func Evaluate(actual, predicted []float64) (*Scores, error) {
	if len(actual) != len(predicted) {
		return nil, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrEvalLenMismatch)
	}

	sumAbs := 0.0
	sumSq := 0.0
	cnt := 0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		diff := actual[i] - predicted[i]
		sumAbs += math.Abs(diff)
		sumSq += diff * diff
		cnt++
	}
	if cnt == 0 {
		return nil, nil
	}

	return &Scores{
		MAE:  sumAbs / float64(cnt),
		RMSE: math.Sqrt(sumSq / float64(cnt)),
	}, nil
}
