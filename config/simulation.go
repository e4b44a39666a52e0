package config

import (
	"fmt"
	"time"

	"github.com/kilianp07/cellsim/core/cycler"
)

// SimulationConfig describes the cycling run.
type SimulationConfig struct {
	Dt     float64        `json:"dt"`    // time step [s]
	Cells  int            `json:"cells"` // identical cells simulated in parallel
	Prefix string         `json:"prefix"`
	Cycler cycler.Profile `json:"profile"`
	// PrometheusAddr starts a /metrics endpoint when set, e.g. ":9100".
	PrometheusAddr string `json:"prometheus_addr"`
	// RecordEvery records one snapshot every RecordEvery steps.
	RecordEvery int `json:"record_every"`
}

// SetDefaults applies a one cell partial 1C discharge/charge cycle at 10 s
// steps.
func (c *SimulationConfig) SetDefaults() {
	if c.Dt == 0 {
		c.Dt = 10
	}
	if c.Cells == 0 {
		c.Cells = 1
	}
	if c.Prefix == "" {
		c.Prefix = "cell"
	}
	if c.Cycler.Cycles == 0 {
		c.Cycler.Cycles = 1
	}
	if len(c.Cycler.Segments) == 0 {
		c.Cycler.Segments = []cycler.Segment{
			{Name: "discharge", CRate: 1, Duration: 20 * time.Minute},
			{Name: "rest", Duration: 10 * time.Minute},
			{Name: "charge", CRate: -1, Duration: 20 * time.Minute},
		}
	}
}

// Validate checks mandatory fields.
func (c SimulationConfig) Validate() error {
	if !(c.Dt > 0) {
		return fmt.Errorf("simulation.dt must be positive, got %g", c.Dt)
	}
	if c.Cells < 1 {
		return fmt.Errorf("simulation.cells must be at least 1, got %d", c.Cells)
	}
	if c.RecordEvery < 0 {
		return fmt.Errorf("simulation.record_every must not be negative")
	}
	return c.Cycler.Validate()
}

// CellIDs names the simulated cells.
func (c SimulationConfig) CellIDs() []string {
	ids := make([]string, c.Cells)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s-%d", c.Prefix, i+1)
	}
	return ids
}
