// Package mat carries small helpers for building gonum matrices from
// native Go slices.
package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrRaggedRows = errors.New("rows have inconsistent lengths")
	ErrNoData     = errors.New("no data to build matrix from")
)

// NewDenseFromSlices builds a dense matrix from a slice of equal length
// rows.
func NewDenseFromSlices(rows [][]float64) (*mat.Dense, error) {
	m := len(rows)

	n := -1
	for i, row := range rows {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, %w", i, ErrRaggedRows)
		}
		if n < 0 {
			n = len(row)
		}
	}
	if m == 0 || n <= 0 {
		return nil, ErrNoData
	}

	data := make([]float64, 0, m*n)
	for _, row := range rows {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// NewDenseFromCols builds a dense matrix from a slice of equal length
// columns, laying each input slice out as one matrix column.
func NewDenseFromCols(cols [][]float64) (*mat.Dense, error) {
	n := len(cols)

	m := -1
	for i, col := range cols {
		if m >= 0 && len(col) != m {
			return nil, fmt.Errorf("at column %d, %w", i, ErrRaggedRows)
		}
		if m < 0 {
			m = len(col)
		}
	}
	if n == 0 || m <= 0 {
		return nil, ErrNoData
	}

	dst := mat.NewDense(m, n, nil)
	for i, col := range cols {
		dst.SetCol(i, col)
	}
	return dst, nil
}
