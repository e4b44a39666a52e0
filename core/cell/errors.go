package cell

import (
	"errors"
	"fmt"
)

var (
	// ErrDiscretizationMismatch is matched by every DiscretizationMismatchError.
	ErrDiscretizationMismatch = errors.New("cell: discretization does not match the cell geometry")
	// ErrCurveLength is matched by every CurveLengthError.
	ErrCurveLength = errors.New("cell: curve length out of range")
	// ErrSurfaceSaturation is joined to the InvalidStateError of a step whose
	// particle surface concentration would leave (0, cmax).
	ErrSurfaceSaturation = errors.New("cell: particle surface saturated")
)

// MaxCurveLength is the longest OCV or entropic curve a cell accepts.
const MaxCurveLength = 100

// DiscretizationMismatchError reports a diffusion model built for another
// particle geometry or node count than the cell. The model has to be
// recomputed offline for the cell's geometry.
type DiscretizationMismatchError struct {
	Quantity string
	Want     float64 // value configured for the cell
	Got      float64 // value carried by the diffusion model
}

func (e *DiscretizationMismatchError) Error() string {
	return fmt.Sprintf("cell: diffusion model %s is %g, cell expects %g; regenerate the discretization for this cell", e.Quantity, e.Got, e.Want)
}

// Is allows errors.Is(err, ErrDiscretizationMismatch).
func (e *DiscretizationMismatchError) Is(target error) bool {
	return target == ErrDiscretizationMismatch
}

// CurveLengthError reports an OCV or entropic curve whose length is outside
// [2, Max]. The curve file has to be resampled.
type CurveLengthError struct {
	Curve  string
	Length int
	Max    int
}

func (e *CurveLengthError) Error() string {
	return fmt.Sprintf("cell: curve %s has %d points, must have between 2 and %d; resample the curve", e.Curve, e.Length, e.Max)
}

// Is allows errors.Is(err, ErrCurveLength).
func (e *CurveLengthError) Is(target error) bool { return target == ErrCurveLength }
