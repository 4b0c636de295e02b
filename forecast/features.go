package forecast

import (
	"fmt"
	"math"
	"time"

	emat "github.com/carbonatlas/go-emicast/mat"
	"gonum.org/v1/gonum/mat"
)

// monthsSince counts whole calendar months between start and t. Days
// within the month are discarded since all model inputs are canonical
// monthly dates.
func monthsSince(start, t time.Time) float64 {
	return float64((t.Year()-start.Year())*12 + int(t.Month()) - int(start.Month()))
}

// featureLabels returns the model feature names in canonical column
// order for the given options.
func featureLabels(opt *Options) []string {
	labels := []string{"trend"}
	for _, chpt := range opt.Changepoints {
		labels = append(labels,
			fmt.Sprintf("chpt_%s_bias", chpt.Name),
			fmt.Sprintf("chpt_%s_slope", chpt.Name),
		)
	}
	for _, event := range opt.Events {
		labels = append(labels, fmt.Sprintf("event_%s", event.Name))
	}
	for order := 1; order <= opt.SeasonalityOrders; order++ {
		labels = append(labels,
			fmt.Sprintf("annual_%02dsin", order),
			fmt.Sprintf("annual_%02dcos", order),
		)
	}
	return labels
}

// featureMatrix generates the design matrix for the given times with one
// row per time point and columns ordered as featureLabels.
func featureMatrix(t []time.Time, trainStart time.Time, opt *Options) (*mat.Dense, error) {
	cols := make([][]float64, 0, 1+2*len(opt.Changepoints)+len(opt.Events)+2*opt.SeasonalityOrders)

	trend := make([]float64, len(t))
	for i, tPnt := range t {
		trend[i] = monthsSince(trainStart, tPnt)
	}
	cols = append(cols, trend)

	for _, chpt := range opt.Changepoints {
		bias := make([]float64, len(t))
		slope := make([]float64, len(t))
		for i, tPnt := range t {
			if tPnt.Before(chpt.T) {
				continue
			}
			bias[i] = 1.0
			slope[i] = monthsSince(chpt.T, tPnt)
		}
		cols = append(cols, bias, slope)
	}

	for _, event := range opt.Events {
		bias := make([]float64, len(t))
		for i, tPnt := range t {
			if event.covers(tPnt) {
				bias[i] = 1.0
			}
		}
		cols = append(cols, bias)
	}

	for order := 1; order <= opt.SeasonalityOrders; order++ {
		sinFeat := make([]float64, len(t))
		cosFeat := make([]float64, len(t))
		for i, tPnt := range t {
			moy := float64(int(tPnt.Month()) - 1)
			rad := 2.0 * math.Pi * float64(order) * moy / 12.0
			sinFeat[i] = math.Sin(rad)
			cosFeat[i] = math.Cos(rad)
		}
		cols = append(cols, sinFeat, cosFeat)
	}

	return emat.NewDenseFromCols(cols)
}
