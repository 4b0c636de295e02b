package models

import (
	"testing"

	emat "github.com/carbonatlas/go-emicast/mat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testModel(t *testing.T, model Model, x, y mat.Matrix, intercept float64, coef []float64, tol float64) {
	t.Helper()

	require.Nil(t, model.Fit(x, y))
	assert.InDelta(t, intercept, model.Intercept(), tol)
	require.Equal(t, len(coef), len(model.Coef()))
	for i, c := range model.Coef() {
		assert.InDelta(t, coef[i], c, tol)
	}

	score, err := model.Score(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, score, tol)
}

func TestOLSRegression(t *testing.T) {
	tol := 1e-5
	testData := map[string]struct {
		x         [][]float64
		y         []float64
		opt       *OLSOptions
		intercept float64
		coef      []float64
	}{
		"with intercept": {
			x: [][]float64{
				{0, 0},
				{3, 5},
				{9, 20},
				{12, 6},
				{15, 10},
			},
			y:         []float64{2, 31, 109, 62, 87},
			intercept: 2.0,
			coef:      []float64{3.0, 4.0},
		},
		"without intercept": {
			x: [][]float64{
				{1, 0, 0},
				{1, 3, 5},
				{1, 9, 20},
				{1, 12, 6},
				{1, 15, 10},
			},
			y: []float64{2, 31, 109, 62, 87},
			opt: &OLSOptions{
				FitIntercept: false,
			},
			intercept: 0.0,
			coef:      []float64{2.0, 3.0, 4.0},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			x, err := emat.NewDenseFromSlices(td.x)
			require.Nil(t, err)

			y := mat.NewDense(len(td.y), 1, td.y)

			model, err := NewOLSRegression(td.opt)
			require.Nil(t, err)

			testModel(t, model, x, y, td.intercept, td.coef, tol)
		})
	}
}

func TestOLSRegressionFitErrors(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(2, 1, []float64{1, 2})

	model, err := NewOLSRegression(nil)
	require.Nil(t, err)

	assert.ErrorIs(t, model.Fit(nil, y), ErrNoTrainingMatrix)
	assert.ErrorIs(t, model.Fit(x, nil), ErrNoTargetMatrix)
	assert.ErrorIs(t, model.Fit(x, y), ErrTargetLenMismatch)
}
