// Package stats provides summary statistics helpers for scrubbing a
// series ahead of model fitting.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DetectOutliers returns the indexes of values falling outside a Tukey
// fence built from the lower and upper percentiles. Percentiles are
// expressed in the range of 0.0 to 1.0 and the fence is widened by
// tukeyFactor times the inner percentile range. NaN values are never
// flagged.
func DetectOutliers(y []float64, lowerPerc, upperPerc, tukeyFactor float64) []int {
	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)

	sorted := make([]float64, 0, len(y))
	for _, v := range y {
		if math.IsNaN(v) {
			continue
		}
		sorted = append(sorted, v)
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Float64s(sorted)

	lower := stat.Quantile(lowerPerc, stat.Empirical, sorted, nil)
	upper := stat.Quantile(upperPerc, stat.Empirical, sorted, nil)
	innerRange := upper - lower
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor

	var outlierIdx []int
	for i, v := range y {
		if math.IsNaN(v) {
			continue
		}
		if v < lower || v > upper {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}
