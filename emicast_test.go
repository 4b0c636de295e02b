package emicast

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/carbonatlas/go-emicast/emissions"
	"github.com/carbonatlas/go-emicast/timedataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPredictor struct {
	fitErr error
	val    float64

	fitT []time.Time
	fitY []float64
}

func (s *stubPredictor) Fit(t []time.Time, y []float64) error {
	if s.fitErr != nil {
		return s.fitErr
	}
	s.fitT = t
	s.fitY = y
	return nil
}

func (s *stubPredictor) Predict(t []time.Time) ([]float64, error) {
	res := make([]float64, len(t))
	for i := range res {
		res[i] = s.val
	}
	return res, nil
}

func makeRecords(gas string, start time.Time, values []float64) []emissions.Record {
	records := make([]emissions.Record, 0, len(values))
	for i, v := range values {
		records = append(records, emissions.Record{
			Gas:      gas,
			Start:    start.AddDate(0, i, 0).Format("2006-01-02"),
			Quantity: v,
		})
	}
	return records
}

func TestPipelineRun(t *testing.T) {
	n := 36
	start := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	y := timedataset.GenerateConst(n, 50.0).
		Add(timedataset.GenerateTrend(n, 2.0))

	records := makeRecords("co2", start, y)
	records = append(records, makeRecords("ch4", start, y)...)

	opt := NewDefaultOptions()
	opt.TargetYear = 2022
	opt.Forecast.SeasonalityOrders = 0

	p, err := New(opt)
	require.Nil(t, err)

	report, err := p.RunRecords(records)
	require.Nil(t, err)
	require.NotNil(t, report)

	// 2020-12 through 2022-12 is two full years
	assert.Equal(t, 24, report.Horizon)
	assert.Equal(t, n, report.Series.Len())

	require.NotNil(t, report.Results)
	require.Equal(t, 24, len(report.Results.T))
	assert.Equal(t, time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC), report.Results.T[0])
	assert.Equal(t, time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC), report.Results.T[23])

	for i := range report.Results.Forecast {
		assert.GreaterOrEqual(t, report.Results.Upper[i], report.Results.Forecast[i])
		assert.LessOrEqual(t, report.Results.Lower[i], report.Results.Forecast[i])
	}

	// the trend keeps climbing past the training window so every month
	// in the evaluation window undershoots the forecast head by the same
	// amount, making RMSE equal MAE up to rounding
	require.NotNil(t, report.Scores)
	assert.Greater(t, report.Scores.MAE, 0.0)
	assert.InDelta(t, report.Scores.MAE, report.Scores.RMSE, 1e-9)

	var buf bytes.Buffer
	require.Nil(t, report.WriteSummary(&buf))
	assert.Contains(t, buf.String(), "Mean Absolute Error: ")
	assert.Contains(t, buf.String(), "Root Mean Square Error: ")
}

func TestPipelineEmptySeries(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	records := makeRecords("ch4", start, []float64{1.0, 2.0, 3.0})

	opt := NewDefaultOptions()
	opt.TargetYear = 2021

	p, err := New(opt)
	require.Nil(t, err)

	report, err := p.RunRecords(records)
	require.Nil(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 0, report.Series.Len())
	assert.Nil(t, report.Results)
	assert.Nil(t, report.Scores)

	var buf bytes.Buffer
	require.Nil(t, report.WriteSummary(&buf))
	assert.Contains(t, buf.String(), "no forecast produced")
}

func TestPipelineStubPredictor(t *testing.T) {
	n := 12
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	y := timedataset.GenerateConst(n, 7.0)

	opt := NewDefaultOptions()
	opt.TargetYear = 2024

	stub := &stubPredictor{val: 7.0}
	p, err := NewWithPredictor(opt, stub)
	require.Nil(t, err)

	report, err := p.RunRecords(makeRecords("co2", start, y))
	require.Nil(t, err)

	assert.Equal(t, 1, report.Horizon)
	require.Equal(t, n, len(stub.fitT))

	// single step window compares the last observation against the
	// first forecasted month
	require.NotNil(t, report.Scores)
	assert.InDelta(t, 0.0, report.Scores.MAE, 1e-9)
	assert.InDelta(t, 0.0, report.Scores.RMSE, 1e-9)
}

func TestPipelineErrors(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := makeRecords("co2", start, []float64{1.0, 2.0, 3.0})

	t.Run("missing target year", func(t *testing.T) {
		p, err := New(NewDefaultOptions())
		require.Nil(t, err)
		_, err = p.RunRecords(records)
		assert.ErrorIs(t, err, ErrNoTargetYear)
	})

	t.Run("model error propagates", func(t *testing.T) {
		fitErr := errors.New("model exploded")
		opt := NewDefaultOptions()
		opt.TargetYear = 2025

		p, err := NewWithPredictor(opt, &stubPredictor{fitErr: fitErr})
		require.Nil(t, err)
		_, err = p.RunRecords(records)
		assert.ErrorIs(t, err, fitErr)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		opt := NewDefaultOptions()
		opt.TargetYear = 2025

		p, err := New(opt)
		require.Nil(t, err)
		_, err = p.RunRecords([]emissions.Record{
			{Gas: "co2", Start: "not a time", Quantity: 1.0},
		})
		assert.NotNil(t, err)
	})
}

func TestPipelineOutlierScrub(t *testing.T) {
	n := 24
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	y := timedataset.GenerateConst(n, 10.0)
	y[5] = 10000.0

	opt := NewDefaultOptions()
	opt.TargetYear = 2024
	opt.Forecast.SeasonalityOrders = 0
	opt.Outlier = NewOutlierOptions()

	stub := &stubPredictor{val: 10.0}
	p, err := NewWithPredictor(opt, stub)
	require.Nil(t, err)

	report, err := p.RunRecords(makeRecords("co2", start, y))
	require.Nil(t, err)

	// the spike is blanked for fitting but stays in the reported series
	require.Equal(t, n, len(stub.fitY))
	assert.True(t, math.IsNaN(stub.fitY[5]))
	assert.Equal(t, 10000.0, report.Series.Values[5])
}
