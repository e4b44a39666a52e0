// Package curve provides the piecewise-linear lookup tables used for open
// circuit voltages, entropic coefficients and tabulated stresses.
package curve

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Curve is a table of y values against strictly increasing x values.
// Outside the table the first or last y value is returned.
type Curve struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Len returns the number of points in the table.
func (c Curve) Len() int { return len(c.X) }

// Table is a fitted Curve ready for evaluation. It is immutable and safe for
// concurrent use.
type Table struct {
	pl interp.PiecewiseLinear
}

// Fit checks c and returns an evaluable Table.
func (c Curve) Fit() (*Table, error) {
	if len(c.X) != len(c.Y) {
		return nil, fmt.Errorf("curve: %d x values but %d y values", len(c.X), len(c.Y))
	}
	if len(c.X) < 2 {
		return nil, fmt.Errorf("curve: need at least 2 points, got %d", len(c.X))
	}
	for i := 1; i < len(c.X); i++ {
		if !(c.X[i] > c.X[i-1]) {
			return nil, fmt.Errorf("curve: x values not strictly increasing at index %d", i)
		}
	}
	t := &Table{}
	if err := t.pl.Fit(c.X, c.Y); err != nil {
		return nil, fmt.Errorf("curve: %w", err)
	}
	return t, nil
}

// At interpolates the table at x.
func (t *Table) At(x float64) float64 {
	return t.pl.Predict(x)
}
