// Package telemetry defines the snapshots emitted while cells are simulated
// and the pluggable recorders that export them.
package telemetry

import (
	"context"
	"time"

	"github.com/kilianp07/cellsim/core/factory"
)

// Snapshot is the observable state of one cell after one recorded step.
type Snapshot struct {
	RunID   string    `json:"run_id"`
	CellID  string    `json:"cell_id"`
	Segment string    `json:"segment"`
	Time    time.Time `json:"time"`     // wall clock time of the recording
	SimTime float64   `json:"sim_time"` // simulated time since the start of the run [s]
	Step    int       `json:"step"`

	Current     float64 `json:"current"`     // [A], positive on discharge
	Voltage     float64 `json:"voltage"`     // [V]
	OCV         float64 `json:"ocv"`         // [V]
	Temperature float64 `json:"temperature"` // [K]
	Charge      float64 `json:"charge"`      // throughput of the run [Ah]

	SEIThickness    float64 `json:"sei_thickness"`    // [m]
	CrackArea       float64 `json:"crack_area"`       // [m2]
	LostLithium     float64 `json:"lost_lithium"`     // [Ah]
	Resistance      float64 `json:"resistance"`       // [Ohm]
	PlatedThickness float64 `json:"plated_thickness"` // [m]
	VolFracPos      float64 `json:"vol_frac_pos"`
	VolFracNeg      float64 `json:"vol_frac_neg"`
}

// Recorder exports snapshots. Implementations must be safe for concurrent
// use by the cells of a fleet.
type Recorder interface {
	Record(ctx context.Context, s Snapshot) error
	Close() error
}

// Config selects the recorders of a run.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// Every records one snapshot every Every steps; 0 or 1 records all steps.
	Every int `json:"every"`
}

// NopRecorder drops every snapshot.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Snapshot) error { return nil }
func (NopRecorder) Close() error                           { return nil }
