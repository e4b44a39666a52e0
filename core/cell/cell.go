// Package cell implements the model of a single lithium-ion cell: its
// construction from a parameter set and a solid diffusion discretization, the
// selection of degradation models, and the per-step electrochemical, thermal
// and aging update.
//
// A Cell is not safe for concurrent use. The diffusion.Model it references is
// read-only and may be shared with other cells running in parallel.
package cell

import (
	"errors"
	"fmt"
	"math"

	"github.com/kilianp07/cellsim/core/curve"
	"github.com/kilianp07/cellsim/core/degradation"
	"github.com/kilianp07/cellsim/core/diffusion"
	"github.com/kilianp07/cellsim/core/logger"
	"github.com/kilianp07/cellsim/core/state"
	"github.com/kilianp07/cellsim/core/stress"
)

// ErrInvalidParams is returned for parameter sets that cannot describe a cell.
var ErrInvalidParams = errors.New("cell: invalid parameters")

// Cell is one simulated cell.
type Cell struct {
	params Params
	model  *diffusion.Model
	limits state.Limits

	sel    degradation.Selector
	stress *stress.Model

	st  *state.State
	ini state.State

	ocvPos, ocvNeg *curve.Table
	entPos, entNeg *curve.Table

	prevStress stress.Result
	areaNeg0   float64

	log logger.Logger
}

// Option configures a Cell.
type Option func(*Cell)

// WithLogger sets the logger of the cell.
func WithLogger(l logger.Logger) Option {
	return func(c *Cell) {
		if l != nil {
			c.log = l
		}
	}
}

// New builds a cell from p without degradation. The diffusion model must have
// been computed for the cell's particle radii and node count. The returned
// cell is fully initialised and valid; on error no cell is returned.
func New(p Params, m *diffusion.Model, opts ...Option) (*Cell, error) {
	c := &Cell{params: p, model: m, log: logger.NopLogger{}}
	for _, o := range opts {
		o(c)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: nil diffusion model", ErrInvalidParams)
	}
	if err := checkParams(p); err != nil {
		return nil, err
	}
	if err := c.checkModelParam(); err != nil {
		c.log.Errorf("cell %s: %v", p.Name, err)
		return nil, err
	}
	if err := c.fitCurves(); err != nil {
		return nil, err
	}

	c.limits = state.Limits{Order: p.Order, CmaxPos: p.CmaxPos, CmaxNeg: p.CmaxNeg, MaxTemperature: p.TMax}

	in := p.Initial
	ap := 3 * in.VolFracPos / p.Rp
	an := 3 * in.VolFracNeg / p.Rn
	s := state.State{
		Temperature:     in.Temperature,
		SEIThickness:    in.SEIThickness,
		LostLithium:     0,
		ThicknessPos:    in.ThicknessPos,
		ThicknessNeg:    in.ThicknessNeg,
		VolFracPos:      in.VolFracPos,
		VolFracNeg:      in.VolFracNeg,
		AreaPos:         ap,
		AreaNeg:         an,
		CrackArea:       in.CrackFraction * an * p.ElecSur * in.ThicknessNeg,
		DiffusionPos:    in.DiffusionPos,
		DiffusionNeg:    in.DiffusionNeg,
		Resistance:      in.Rdc * ((in.ThicknessPos*ap*p.ElecSur + in.ThicknessNeg*an*p.ElecSur) / 2),
		PlatedThickness: 0,
	}
	if err := s.SetConcentrationsFromFraction(in.FracPos, in.FracNeg, c.limits); err != nil {
		c.log.Errorf("cell %s: initial concentrations: %v", p.Name, err)
		return nil, err
	}
	st, err := state.New(s, c.limits)
	if err != nil {
		c.log.Errorf("cell %s: initial state: %v", p.Name, err)
		return nil, err
	}
	c.st = st
	c.ini = st.Clone()
	c.areaNeg0 = c.RealAreaNeg()

	if err := c.SetSelector(degradation.Default()); err != nil {
		return nil, err
	}
	c.log.Debugf("cell %s initialised: R=%g Ohm, OCV=%g V", p.Name, c.Resistance(), c.OCV())
	return c, nil
}

// NewWithSelector builds a cell like New and then selects the given
// degradation models.
func NewWithSelector(p Params, m *diffusion.Model, sel degradation.Selector, opts ...Option) (*Cell, error) {
	c, err := New(p, m, opts...)
	if err != nil {
		return nil, err
	}
	if err := c.SetSelector(sel); err != nil {
		return nil, err
	}
	return c, nil
}

// SetSelector replaces the degradation models of the cell. The stress
// theories evaluated each step are re-derived from sel.
func (c *Cell) SetSelector(sel degradation.Selector) error {
	if err := sel.Validate(); err != nil {
		return err
	}
	sm, err := stress.New(c.params.Stress, sel)
	if err != nil {
		return err
	}
	c.sel = sel.Clone()
	c.stress = sm
	c.prevStress = stress.Result{}
	c.log.Debugw("degradation models selected", map[string]any{
		"cell":             c.params.Name,
		"sei":              sel.SEI,
		"cracking":         sel.Cracking,
		"lam":              sel.LAM,
		"plating":          sel.Plating.String(),
		"needs_dai":        sm.NeedsDai(),
		"needs_laresgoiti": sm.NeedsLaresgoiti(),
	})
	return nil
}

func checkParams(p Params) error {
	positive := []struct {
		name string
		v    float64
	}{
		{"cmax_pos", p.CmaxPos}, {"cmax_neg", p.CmaxNeg}, {"c_elec", p.CElec}, {"n", p.N},
		{"nom_capacity", p.NomCapacity}, {"t_ref", p.TRef}, {"t_env", p.TEnv},
		{"rho", p.Rho}, {"cp", p.Cp}, {"l", p.L}, {"elec_sur", p.ElecSur},
		{"rp", p.Rp}, {"rn", p.Rn}, {"kp", p.Kp}, {"kn", p.Kn},
	}
	for _, f := range positive {
		if !(f.v > 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidParams, f.name, f.v)
		}
	}
	if p.Vmin >= p.Vmax {
		return fmt.Errorf("%w: vmin %g must be below vmax %g", ErrInvalidParams, p.Vmin, p.Vmax)
	}
	return nil
}

// checkModelParam verifies that the diffusion model was computed for this
// cell and that the OCV curves fit the configured bounds.
func (c *Cell) checkModelParam() error {
	p, m := c.params, c.model
	if m.Order() != p.Order {
		return &DiscretizationMismatchError{Quantity: "order", Want: float64(p.Order), Got: float64(m.Order())}
	}
	if !sameRadius(m.RadiusPos(), p.Rp) {
		return &DiscretizationMismatchError{Quantity: "cathode particle radius", Want: p.Rp, Got: m.RadiusPos()}
	}
	if !sameRadius(m.RadiusNeg(), p.Rn) {
		return &DiscretizationMismatchError{Quantity: "anode particle radius", Want: p.Rn, Got: m.RadiusNeg()}
	}
	for _, cv := range []struct {
		name string
		c    curve.Curve
	}{
		{"ocv_pos", p.OCVPos}, {"ocv_neg", p.OCVNeg},
		{"entropic_pos", p.EntropicPos}, {"entropic_neg", p.EntropicNeg},
	} {
		if n := cv.c.Len(); n < 2 || n > MaxCurveLength {
			return &CurveLengthError{Curve: cv.name, Length: n, Max: MaxCurveLength}
		}
	}
	return nil
}

func sameRadius(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

func (c *Cell) fitCurves() error {
	var err error
	if c.ocvPos, err = c.params.OCVPos.Fit(); err != nil {
		return fmt.Errorf("%w: ocv_pos: %v", ErrInvalidParams, err)
	}
	if c.ocvNeg, err = c.params.OCVNeg.Fit(); err != nil {
		return fmt.Errorf("%w: ocv_neg: %v", ErrInvalidParams, err)
	}
	if c.entPos, err = c.params.EntropicPos.Fit(); err != nil {
		return fmt.Errorf("%w: entropic_pos: %v", ErrInvalidParams, err)
	}
	if c.entNeg, err = c.params.EntropicNeg.Fit(); err != nil {
		return fmt.Errorf("%w: entropic_neg: %v", ErrInvalidParams, err)
	}
	return nil
}

// Validate re-checks every invariant of the current state.
func (c *Cell) Validate() error {
	return c.st.Validate(c.limits)
}

// State returns a copy of the current physical state.
func (c *Cell) State() state.State { return c.st.Clone() }

// InitialState returns a copy of the state the cell was constructed with.
func (c *Cell) InitialState() state.State { return c.ini.Clone() }

// Params returns the parameters of the cell.
func (c *Cell) Params() Params { return c.params }

// Limits returns the bounds the state is validated against.
func (c *Cell) Limits() state.Limits { return c.limits }

// Selector returns a copy of the active degradation selector.
func (c *Cell) Selector() degradation.Selector { return c.sel.Clone() }

// StressRequirements reports which stress theories are evaluated each step.
func (c *Cell) StressRequirements() stress.Requirements { return c.stress }

// RealAreaPos is the total active surface of the cathode [m2].
func (c *Cell) RealAreaPos() float64 {
	return c.st.AreaPos * c.st.ThicknessPos * c.params.ElecSur
}

// RealAreaNeg is the total active surface of the anode [m2].
func (c *Cell) RealAreaNeg() float64 {
	return c.st.AreaNeg * c.st.ThicknessNeg * c.params.ElecSur
}

// Resistance is the DC resistance of the cell [Ohm].
func (c *Cell) Resistance() float64 {
	return c.st.Resistance / ((c.RealAreaPos() + c.RealAreaNeg()) / 2)
}

// SurfaceFractions returns the lithium fractions at the particle surfaces
// when no current flows.
func (c *Cell) SurfaceFractions() (pos, neg float64) {
	pos = c.model.Surface(c.st.ConcentrationPos, 0, c.st.DiffusionPos, c.params.Rp) / c.params.CmaxPos
	neg = c.model.Surface(c.st.ConcentrationNeg, 0, c.st.DiffusionNeg, c.params.Rn) / c.params.CmaxNeg
	return pos, neg
}

// OCV is the open circuit voltage of the cell at its present state.
func (c *Cell) OCV() float64 {
	fp, fn := c.SurfaceFractions()
	t := c.st.Temperature
	return c.electrodeOCV(c.ocvPos, c.entPos, fp, t) - c.electrodeOCV(c.ocvNeg, c.entNeg, fn, t)
}

func (c *Cell) electrodeOCV(ocv, ent *curve.Table, frac, t float64) float64 {
	return ocv.At(frac) + (t-c.params.TRef)*ent.At(frac)
}
