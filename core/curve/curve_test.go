package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableInterpolates(t *testing.T) {
	tbl, err := Curve{X: []float64{0, 0.5, 1}, Y: []float64{4.2, 3.7, 3.0}}.Fit()
	require.NoError(t, err)
	assert.InDelta(t, 4.2, tbl.At(0), 1e-12)
	assert.InDelta(t, 3.95, tbl.At(0.25), 1e-12)
	assert.InDelta(t, 3.35, tbl.At(0.75), 1e-12)
	// constant outside the table
	assert.InDelta(t, 4.2, tbl.At(-1), 1e-12)
	assert.InDelta(t, 3.0, tbl.At(2), 1e-12)
}

func TestFitRejectsBadCurves(t *testing.T) {
	_, err := Curve{X: []float64{0, 1}, Y: []float64{1}}.Fit()
	assert.Error(t, err)
	_, err = Curve{X: []float64{0}, Y: []float64{1}}.Fit()
	assert.Error(t, err)
	_, err = Curve{X: []float64{1, 0}, Y: []float64{1, 2}}.Fit()
	assert.Error(t, err)
}
