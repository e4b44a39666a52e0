// Package cycler drives cells through constant current and rest profiles.
//
// It is a thin harness around cell.Cell.Step: each segment holds a current
// for a duration, discharge segments stop at the cell's minimum voltage and
// charge segments at its maximum voltage.
package cycler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/cellsim/core/cell"
	"github.com/kilianp07/cellsim/core/logger"
	"github.com/kilianp07/cellsim/core/state"
	"github.com/kilianp07/cellsim/core/telemetry"
)

// ErrInvalidProfile is returned for profiles that cannot be run.
var ErrInvalidProfile = errors.New("cycler: invalid profile")

// Segment holds a constant current for a duration.
type Segment struct {
	Name string `json:"name"`
	// Current in A, positive on discharge. Ignored when CRate is set.
	Current float64 `json:"current"`
	// CRate is the current as a multiple of the nominal capacity.
	CRate    float64       `json:"c_rate"`
	Duration time.Duration `json:"duration"`
}

func (s Segment) current(nomCapacity float64) float64 {
	if s.CRate != 0 {
		return s.CRate * nomCapacity
	}
	return s.Current
}

// Profile is a sequence of segments repeated Cycles times.
type Profile struct {
	Segments []Segment `json:"segments"`
	Cycles   int       `json:"cycles"`
}

// Validate checks that the profile has at least one cycle of positive
// duration segments.
func (p Profile) Validate() error {
	if p.Cycles < 1 {
		return fmt.Errorf("%w: cycles must be at least 1, got %d", ErrInvalidProfile, p.Cycles)
	}
	if len(p.Segments) == 0 {
		return fmt.Errorf("%w: no segments", ErrInvalidProfile)
	}
	for i, s := range p.Segments {
		if s.Duration <= 0 {
			return fmt.Errorf("%w: segment %d (%s) has no duration", ErrInvalidProfile, i, s.Name)
		}
	}
	return nil
}

// Result summarises the run of one cell.
type Result struct {
	CellID  string
	Steps   int
	SimTime float64     // [s]
	Charge  float64     // throughput [Ah]
	Voltage float64     // terminal voltage after the last step [V]
	Final   state.State // state after the last step
	// Discharged holds the charge delivered in every cycle [Ah].
	Discharged []float64
}

// Runner runs profiles. The zero value is not usable; Dt must be positive.
type Runner struct {
	RunID    string
	Dt       float64 // time step [s]
	Recorder telemetry.Recorder
	// RecordEvery records one snapshot every RecordEvery steps; 0 or 1
	// records all steps.
	RecordEvery int
	Log         logger.Logger
}

// NewRunner returns a Runner with a fresh run ID.
func NewRunner(dt float64, rec telemetry.Recorder, every int, log logger.Logger) *Runner {
	if rec == nil {
		rec = telemetry.NopRecorder{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Runner{RunID: uuid.NewString(), Dt: dt, Recorder: rec, RecordEvery: every, Log: log}
}

func (r *Runner) defaults() {
	if r.Recorder == nil {
		r.Recorder = telemetry.NopRecorder{}
	}
	if r.Log == nil {
		r.Log = logger.NopLogger{}
	}
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
}

// Run simulates c through p. The context is checked between steps. A
// particle surface saturating after the first step of a segment ends that
// segment, the cell keeping its last valid state. Any other step error
// aborts the run; the returned Result describes the cell up to the last
// successful step.
func (r *Runner) Run(ctx context.Context, id string, c *cell.Cell, p Profile) (Result, error) {
	r.defaults()
	res := Result{CellID: id}
	if !(r.Dt > 0) {
		return res, fmt.Errorf("%w: time step must be positive, got %g", ErrInvalidProfile, r.Dt)
	}
	if err := p.Validate(); err != nil {
		return res, err
	}
	params := c.Params()
	every := max(r.RecordEvery, 1)

	r.Log.Infof("run %s: cell %s, %d cycles of %d segments", r.RunID, id, p.Cycles, len(p.Segments))
	for cycle := range p.Cycles {
		var discharged float64
		for _, seg := range p.Segments {
			current := seg.current(params.NomCapacity)
			remaining := seg.Duration.Seconds()
			segSteps := 0
			for remaining > 1e-9 {
				if err := ctx.Err(); err != nil {
					res.Final = c.State()
					return res, err
				}
				dt := math.Min(r.Dt, remaining)
				out, err := c.Step(current, dt)
				if err != nil && segSteps > 0 && errors.Is(err, cell.ErrSurfaceSaturation) {
					r.Log.Warnf("cell %s: segment %q ended at t=%gs: %v", id, seg.Name, res.SimTime, err)
					break
				}
				if err != nil {
					res.Final = c.State()
					return res, fmt.Errorf("cell %s cycle %d segment %q at t=%gs: %w", id, cycle, seg.Name, res.SimTime, err)
				}
				remaining -= dt
				segSteps++
				res.Steps++
				res.SimTime += dt
				res.Charge += math.Abs(current) * dt / 3600
				res.Voltage = out.Voltage
				if current > 0 {
					discharged += current * dt / 3600
				}

				if res.Steps%every == 0 {
					r.record(ctx, c, id, seg.Name, current, out, res)
				}
				if (current > 0 && out.Voltage <= params.Vmin) || (current < 0 && out.Voltage >= params.Vmax) {
					r.Log.Debugf("cell %s: segment %q cut off at %.4f V", id, seg.Name, out.Voltage)
					break
				}
			}
		}
		res.Discharged = append(res.Discharged, discharged)
		r.Log.Debugf("cell %s: cycle %d discharged %.4f Ah", id, cycle, discharged)
	}
	res.Final = c.State()
	r.Log.Infof("run %s: cell %s finished after %d steps, R=%.5f Ohm, LLI=%.4e Ah", r.RunID, id, res.Steps, c.Resistance(), res.Final.LostLithium)
	return res, nil
}

func (r *Runner) record(ctx context.Context, c *cell.Cell, id, segment string, current float64, out cell.StepResult, res Result) {
	s := c.State()
	snap := telemetry.Snapshot{
		RunID:           r.RunID,
		CellID:          id,
		Segment:         segment,
		Time:            time.Now(),
		SimTime:         res.SimTime,
		Step:            res.Steps,
		Current:         current,
		Voltage:         out.Voltage,
		OCV:             out.OCV,
		Temperature:     s.Temperature,
		Charge:          res.Charge,
		SEIThickness:    s.SEIThickness,
		CrackArea:       s.CrackArea,
		LostLithium:     s.LostLithium,
		Resistance:      c.Resistance(),
		PlatedThickness: s.PlatedThickness,
		VolFracPos:      s.VolFracPos,
		VolFracNeg:      s.VolFracNeg,
	}
	if err := r.Recorder.Record(ctx, snap); err != nil {
		r.Log.Warnf("cell %s: record step %d: %v", id, res.Steps, err)
	}
}

// RunFleet runs every cell through p concurrently, one goroutine per cell.
// The first failing cell cancels the others. Results are returned in the
// order of ids.
func (r *Runner) RunFleet(ctx context.Context, ids []string, cells []*cell.Cell, p Profile) ([]Result, error) {
	if len(ids) != len(cells) {
		return nil, fmt.Errorf("%w: %d ids for %d cells", ErrInvalidProfile, len(ids), len(cells))
	}
	r.defaults()
	results := make([]Result, len(cells))
	g, gctx := errgroup.WithContext(ctx)
	for i := range cells {
		g.Go(func() error {
			res, err := r.Run(gctx, ids[i], cells[i], p)
			results[i] = res
			return err
		})
	}
	err := g.Wait()
	return results, err
}
