// Package series aggregates raw emissions records into the canonical
// monthly mean series consumed by the forecasting model.
package series

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/carbonatlas/go-emicast/emissions"
	"github.com/carbonatlas/go-emicast/timedataset"
)

// Label identifies the single series produced by the builder. It is a
// fixed constant rather than a value derived from the gas filter.
const Label = "co2 emissions"

var ErrBadTimestamp = errors.New("unparseable start timestamp")

// start timestamps are ISO-parseable but arrive in a few shapes
var startLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// MonthlySeries is an ordered monthly mean series with one entry per
// distinct calendar month present in the filtered input. Months are
// canonical first-of-month UTC dates sorted ascending with no gap
// filling.
type MonthlySeries struct {
	Label  string      `json:"label"`
	Months []time.Time `json:"months"`
	Values []float64   `json:"values"`
}

// BuildMonthly filters records to the given gas label, parses their
// start timestamps, and aggregates the quantities into per-month
// arithmetic means. Records of other gases are dropped silently; an
// empty result is a valid empty series. A record of the selected gas
// with an unparseable timestamp aborts the build.
func BuildMonthly(records []emissions.Record, gas string) (*MonthlySeries, error) {
	type bucket struct {
		sum float64
		cnt int
	}
	buckets := make(map[time.Time]*bucket)

	for _, rec := range records {
		if rec.Gas != gas {
			continue
		}
		ts, err := ParseStart(rec.Start)
		if err != nil {
			return nil, err
		}
		month := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC)
		b := buckets[month]
		if b == nil {
			b = &bucket{}
			buckets[month] = b
		}
		b.sum += rec.Quantity
		b.cnt++
	}

	months := make([]time.Time, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	values := make([]float64, 0, len(months))
	for _, month := range months {
		b := buckets[month]
		values = append(values, b.sum/float64(b.cnt))
	}

	return &MonthlySeries{
		Label:  Label,
		Months: months,
		Values: values,
	}, nil
}

// ParseStart parses a record start timestamp, trying the known ISO
// layouts in order.
func ParseStart(s string) (time.Time, error) {
	for _, layout := range startLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q, %w", s, ErrBadTimestamp)
}

// Len returns the number of months in the series.
func (m *MonthlySeries) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Months)
}

// EndMonth returns the most recent month in the series or the zero time
// when the series is empty.
func (m *MonthlySeries) EndMonth() time.Time {
	if m == nil {
		return time.Time{}
	}
	return timedataset.TimeSlice(m.Months).EndTime()
}

// Records converts the series back into raw records, one per month,
// using the canonical first-of-month timestamps.
func (m *MonthlySeries) Records(gas string) []emissions.Record {
	if m == nil {
		return nil
	}
	records := make([]emissions.Record, 0, len(m.Months))
	for i, month := range m.Months {
		records = append(records, emissions.Record{
			Gas:      gas,
			Start:    month.Format("2006-01-02"),
			Quantity: m.Values[i],
		})
	}
	return records
}

// Dataset returns the series as a TimeDataset ready for model fitting.
func (m *MonthlySeries) Dataset() (*timedataset.TimeDataset, error) {
	return timedataset.NewUnivariateDataset(m.Months, m.Values)
}
