package emicast

import (
	"io"
	"math"
	"time"

	"github.com/carbonatlas/go-emicast/series"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const chartMonthLayout = "2006-01"

// LineForecaster generates an echart line chart for a pipeline run
// plotting the observed monthly series followed by the forecasted,
// upper, and lower values over the horizon. History and horizon share
// one x-axis; each series is padded with gaps over the range it does not
// cover.
func LineForecaster(s *series.MonthlySeries, res *Results) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    "Emissions Forecast",
				Subtitle: s.Label,
			},
		),
	)

	nHist := s.Len()
	nFore := len(res.T)

	axis := make([]string, 0, nHist+nFore)
	for _, m := range s.Months {
		axis = append(axis, m.Format(chartMonthLayout))
	}
	for _, m := range res.T {
		axis = append(axis, m.Format(chartMonthLayout))
	}

	lineDataActual := make([]opts.LineData, 0, nHist+nFore)
	lineDataForecast := make([]opts.LineData, 0, nHist+nFore)
	lineDataUpper := make([]opts.LineData, 0, nHist+nFore)
	lineDataLower := make([]opts.LineData, 0, nHist+nFore)

	for i := 0; i < nHist; i++ {
		lineDataActual = append(lineDataActual, opts.LineData{Value: chartValue(s.Values[i])})
		lineDataForecast = append(lineDataForecast, opts.LineData{Value: "-"})
		lineDataUpper = append(lineDataUpper, opts.LineData{Value: "-"})
		lineDataLower = append(lineDataLower, opts.LineData{Value: "-"})
	}
	for i := 0; i < nFore; i++ {
		lineDataActual = append(lineDataActual, opts.LineData{Value: "-"})
		lineDataForecast = append(lineDataForecast, opts.LineData{Value: chartValue(res.Forecast[i])})
		lineDataUpper = append(lineDataUpper, opts.LineData{Value: chartValue(res.Upper[i])})
		lineDataLower = append(lineDataLower, opts.LineData{Value: chartValue(res.Lower[i])})
	}

	line.SetXAxis(axis).
		AddSeries("Actual", lineDataActual).
		AddSeries("Forecast", lineDataForecast).
		AddSeries("Upper", lineDataUpper).
		AddSeries("Lower", lineDataLower)
	return line
}

// LineTSeries generates an echart multi-line chart for some arbitrary
// time/value combination. Each series in y must have the same length as
// the input time slice.
func LineTSeries(title string, seriesName []string, t []time.Time, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	axis := make([]string, 0, len(t))
	for _, ts := range t {
		axis = append(axis, ts.Format(chartMonthLayout))
	}

	line = line.SetXAxis(axis)
	for i, name := range seriesName {
		lineData := make([]opts.LineData, 0, len(y[i]))
		for _, v := range y[i] {
			lineData = append(lineData, opts.LineData{Value: chartValue(v)})
		}
		line = line.AddSeries(name, lineData)
	}
	return line
}

// chartValue maps NaN onto the echarts gap marker.
func chartValue(v float64) interface{} {
	if math.IsNaN(v) {
		return "-"
	}
	return v
}

// WriteChart renders the chart as a standalone HTML page to w.
func WriteChart(line *charts.Line, w io.Writer) error {
	return line.Render(w)
}
