package timedataset

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"
)

// GenerateMonthStarts returns n consecutive first-of-month dates
// beginning at the month of start.
func GenerateMonthStarts(start time.Time, n int) []time.Time {
	t := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		t = append(t, time.Date(start.Year(), start.Month()+time.Month(i), 1, 0, 0, 0, 0, time.UTC))
	}
	return t
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

// GenerateConst returns a series of n identical values.
func GenerateConst(n int, val float64) Series {
	y := make([]float64, n)
	floats.AddConst(val, y)
	return Series(y)
}

// GenerateTrend returns a series growing by slope per step.
func GenerateTrend(n int, slope float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, slope*float64(i))
	}
	return Series(y)
}

// GenerateAnnualWave returns a sinusoid over the 12 month cycle for the
// given order and amplitude.
func GenerateAnnualWave(t []time.Time, amp, order float64) Series {
	y := make([]float64, 0, len(t))
	for _, tPnt := range t {
		moy := float64(int(tPnt.Month()) - 1)
		y = append(y, amp*math.Sin(2.0*math.Pi*order*moy/12.0))
	}
	return Series(y)
}

// GenerateNoise returns normally distributed noise at the given scale.
func GenerateNoise(n int, scale float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, rand.NormFloat64()*scale)
	}
	return Series(y)
}
