package telemetry

import (
	"context"

	coretelemetry "github.com/kilianp07/cellsim/core/telemetry"
	"github.com/kilianp07/cellsim/infra/logger"
)

// LogRecorder writes snapshots to a logger at info level.
type LogRecorder struct {
	log logger.Logger
}

// NewLogRecorder creates a LogRecorder on l.
func NewLogRecorder(l logger.Logger) *LogRecorder { return &LogRecorder{log: l} }

func (r *LogRecorder) Record(_ context.Context, s coretelemetry.Snapshot) error {
	r.log.Infof("%s step=%d t=%.0fs I=%.3fA V=%.4fV T=%.2fK sei=%.3em lli=%.3eAh R=%.4fOhm",
		s.CellID, s.Step, s.SimTime, s.Current, s.Voltage, s.Temperature, s.SEIThickness, s.LostLithium, s.Resistance)
	return nil
}

func (r *LogRecorder) Close() error { return nil }
