// Package timedataset holds the univariate time series representation
// shared between the series builder and the forecasting model.
package timedataset

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNoTrainingData     = errors.New("no training data")
	ErrNonMonotonic       = errors.New("time feature is not monotonically increasing")
	ErrDatasetLenMismatch = errors.New("time feature has a different length than observations")
)

// TimeDataset represents a time series storing a slice of time points
// and values. Both must be of the same length.
type TimeDataset struct {
	T []time.Time
	Y []float64
}

// NewUnivariateDataset returns an instance of a TimeDataset given a time
// and value slice. Time points must be strictly increasing.
func NewUnivariateDataset(t []time.Time, y []float64) (*TimeDataset, error) {
	if len(y) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(t) != len(y) {
		return nil, fmt.Errorf(
			"time feature has length of %d, but values has a length of %d, %w",
			len(t), len(y), ErrDatasetLenMismatch,
		)
	}

	var lastT time.Time
	for i := 0; i < len(t); i++ {
		if !t[i].After(lastT) {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMonotonic)
		}
		lastT = t[i]
	}

	tSeries := make([]time.Time, len(t))
	ySeries := make([]float64, len(t))
	copy(tSeries, t)
	copy(ySeries, y)

	return &TimeDataset{
		T: tSeries,
		Y: ySeries,
	}, nil
}

// Copy returns a deep copy of the dataset.
func (td *TimeDataset) Copy() *TimeDataset {
	if td == nil {
		return nil
	}
	tSeries := make([]time.Time, len(td.T))
	ySeries := make([]float64, len(td.Y))
	copy(tSeries, td.T)
	copy(ySeries, td.Y)
	return &TimeDataset{
		T: tSeries,
		Y: ySeries,
	}
}

// DropNan returns a new dataset with all NaN observations removed along
// with their time points.
func (td *TimeDataset) DropNan() *TimeDataset {
	if td == nil {
		return nil
	}
	tSeries := make([]time.Time, 0, len(td.T))
	ySeries := make([]float64, 0, len(td.Y))
	for i := 0; i < len(td.T); i++ {
		if math.IsNaN(td.Y[i]) {
			continue
		}
		tSeries = append(tSeries, td.T[i])
		ySeries = append(ySeries, td.Y[i])
	}
	return &TimeDataset{
		T: tSeries,
		Y: ySeries,
	}
}
