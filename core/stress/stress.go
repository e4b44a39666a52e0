// Package stress computes the mechanical stress in electrode particles caused
// by lithium concentration gradients.
//
// Two theories are available: the diffusion induced stress of Dai et al. for
// a spherical particle, and the empirical anode stress table of Laresgoiti et
// al. A Model only evaluates the theories its Requirements ask for; the other
// results stay nil so callers can tell "not computed" from "zero stress".
package stress

import (
	"fmt"
	"math"

	"github.com/kilianp07/cellsim/core/curve"
)

// Requirements reports which stress theories are consumed by the active
// degradation models.
type Requirements interface {
	NeedsDai() bool
	NeedsLaresgoiti() bool
}

// Material holds the mechanical properties of one electrode's active material.
type Material struct {
	Omega float64 `json:"omega"` // partial molar volume [m3/mol]
	E     float64 `json:"e"`     // Young's modulus [Pa]
	Nu    float64 `json:"nu"`    // Poisson's ratio [-]
}

// Params are the fitting coefficients of both theories.
type Params struct {
	Pos Material `json:"pos"`
	Neg Material `json:"neg"`
	// Laresgoiti is the anode stress [MPa] against the anode surface lithium fraction.
	Laresgoiti curve.Curve `json:"laresgoiti"`
}

// Profile is the concentration data of one particle needed for Dai's theory.
type Profile struct {
	Concentration []float64 // node concentrations, centre first [mol/m3]
	Surface       float64   // surface concentration [mol/m3]
	Average       float64   // volume averaged concentration [mol/m3]
}

// Input groups everything Compute may need.
type Input struct {
	Pos, Neg    Profile
	FractionNeg float64 // anode surface lithium fraction [-]
}

// Particle is the Dai stress state of one representative particle [Pa].
type Particle struct {
	Hoop        float64 // tangential stress at the surface
	Radial      float64 // radial stress at the centre
	Hydrostatic float64 // hydrostatic stress with the largest magnitude
}

// DaiStress is the output of Dai's theory for both electrodes.
type DaiStress struct {
	Pos, Neg Particle
}

// LaresgoitiStress is the output of Laresgoiti's theory.
type LaresgoitiStress struct {
	Neg float64 // anode stress [MPa]
}

// Result holds the stresses of the required theories. A nil field means the
// theory was not evaluated.
type Result struct {
	Dai        *DaiStress
	Laresgoiti *LaresgoitiStress
}

// Model evaluates the stress theories selected at construction.
type Model struct {
	params     Params
	lares      *curve.Table
	dai        bool
	laresgoiti bool
}

// New builds a Model whose activation flags are derived from req.
func New(p Params, req Requirements) (*Model, error) {
	m := &Model{params: p, dai: req.NeedsDai(), laresgoiti: req.NeedsLaresgoiti()}
	if m.dai {
		for _, mt := range []struct {
			name string
			m    Material
		}{{"pos", p.Pos}, {"neg", p.Neg}} {
			if mt.m.Nu >= 1 || mt.m.E <= 0 {
				return nil, fmt.Errorf("stress: invalid %s material (E=%g, nu=%g)", mt.name, mt.m.E, mt.m.Nu)
			}
		}
	}
	if m.laresgoiti {
		t, err := p.Laresgoiti.Fit()
		if err != nil {
			return nil, fmt.Errorf("stress: laresgoiti table: %w", err)
		}
		m.lares = t
	}
	return m, nil
}

// NeedsDai reports whether Compute evaluates Dai's theory.
func (m *Model) NeedsDai() bool { return m.dai }

// NeedsLaresgoiti reports whether Compute evaluates Laresgoiti's theory.
func (m *Model) NeedsLaresgoiti() bool { return m.laresgoiti }

// Compute evaluates the required theories.
func (m *Model) Compute(in Input) Result {
	var r Result
	if m.dai {
		r.Dai = &DaiStress{
			Pos: dai(m.params.Pos, in.Pos),
			Neg: dai(m.params.Neg, in.Neg),
		}
	}
	if m.laresgoiti {
		r.Laresgoiti = &LaresgoitiStress{Neg: m.lares.At(in.FractionNeg)}
	}
	return r
}

// dai evaluates the stresses in a sphere with a radially symmetric
// concentration field, k = Omega E / (3 (1 - nu)):
//
//	hoop(R)    = k (cavg - c(R))
//	radial(0)  = 2k/3 (cavg - c(0))
//	hydro(r)   = 2k/3 (cavg - c(r))
func dai(mt Material, p Profile) Particle {
	k := mt.Omega * mt.E / (3 * (1 - mt.Nu))
	out := Particle{Hoop: k * (p.Average - p.Surface)}
	if len(p.Concentration) > 0 {
		out.Radial = 2 * k / 3 * (p.Average - p.Concentration[0])
	}
	out.Hydrostatic = 2 * k / 3 * (p.Average - p.Surface)
	for _, c := range p.Concentration {
		if h := 2 * k / 3 * (p.Average - c); math.Abs(h) > math.Abs(out.Hydrostatic) {
			out.Hydrostatic = h
		}
	}
	return out
}
