package telemetry

import (
	"context"
	"errors"
)

// MultiRecorder fans snapshots out to several recorders.
type MultiRecorder struct {
	Recorders []Recorder
}

// NewMultiRecorder creates a MultiRecorder with the provided recorders.
func NewMultiRecorder(recs ...Recorder) *MultiRecorder {
	return &MultiRecorder{Recorders: recs}
}

// Record forwards the snapshot to every recorder, even after one fails, and
// joins their errors.
func (m *MultiRecorder) Record(ctx context.Context, s Snapshot) error {
	var errs []error
	for _, r := range m.Recorders {
		if err := r.Record(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every recorder and joins their errors.
func (m *MultiRecorder) Close() error {
	var errs []error
	for _, r := range m.Recorders {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
