package state

import (
	"errors"
	"fmt"
)

// ErrInvalidState is matched by every InvalidStateError.
var ErrInvalidState = errors.New("state: invalid physical state")

// InvalidStateError reports a state variable outside its physical bounds.
type InvalidStateError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("state: %s = %g: %s", e.Field, e.Value, e.Reason)
}

// Is allows errors.Is(err, ErrInvalidState).
func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

func invalid(field string, v float64, reason string) error {
	return &InvalidStateError{Field: field, Value: v, Reason: reason}
}
