package timedataset

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnivariateDataset(t *testing.T) {
	testData := map[string]struct {
		t        []time.Time
		y        []float64
		expected *TimeDataset
		err      error
	}{
		"no training data": {
			err: ErrNoTrainingData,
		},
		"length mismatch": {
			y:   []float64{1},
			err: ErrDatasetLenMismatch,
		},
		"non increasing time": {
			t: []time.Time{
				time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, 2},
			err: ErrNonMonotonic,
		},
		"duplicate time": {
			t: []time.Time{
				time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, 2},
			err: ErrNonMonotonic,
		},
		"valid": {
			t: []time.Time{
				time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
			},
			y: []float64{1, 2},
			expected: &TimeDataset{
				T: []time.Time{
					time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
					time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
				},
				Y: []float64{1, 2},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds, err := NewUnivariateDataset(td.t, td.y)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, ds)
		})
	}
}

func TestCopy(t *testing.T) {
	ds, err := NewUnivariateDataset(
		GenerateMonthStarts(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), 2),
		[]float64{0, 1},
	)
	require.Nil(t, err)

	next := ds.Copy()
	require.Equal(t, ds, next)

	ds.Y[0] = 42
	require.NotEqual(t, next, ds)
}

func TestDropNan(t *testing.T) {
	months := GenerateMonthStarts(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), 5)

	testData := map[string]struct {
		tdset    *TimeDataset
		expected *TimeDataset
	}{
		"nil": {},
		"empty": {
			tdset: &TimeDataset{},
			expected: &TimeDataset{
				T: []time.Time{},
				Y: []float64{},
			},
		},
		"nans removed": {
			tdset: &TimeDataset{
				T: months,
				Y: []float64{math.NaN(), 2, 3, math.NaN(), 5},
			},
			expected: &TimeDataset{
				T: []time.Time{months[1], months[2], months[4]},
				Y: []float64{2, 3, 5},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, td.tdset.DropNan())
		})
	}
}
