// Package state holds the physical state of a single lithium-ion cell and the
// checks that keep it physically meaningful.
//
// A State is exclusively owned by one cell and is mutated in place every time
// step. Invalid states are never clamped: Validate reports the first field
// that left its bounds and the caller is expected to abort.
package state

import (
	"fmt"
	"math"
)

// Kelvin is 0 degrees Celsius expressed in Kelvin.
const Kelvin = 273.15

// DefaultMaxTemperature is the temperature above which the cell materials are
// considered to have failed.
const DefaultMaxTemperature = Kelvin + 90

// Limits carries the bounds of a State that depend on the cell chemistry and
// on the diffusion discretization rather than on physics alone.
type Limits struct {
	Order          int     // nodes per concentration profile
	CmaxPos        float64 // maximum lithium concentration in the cathode [mol/m3]
	CmaxNeg        float64 // maximum lithium concentration in the anode [mol/m3]
	MaxTemperature float64 // material failure ceiling [K]
}

// State is the vector of physical quantities describing one cell.
type State struct {
	ConcentrationPos []float64 `json:"concentration_pos"` // cathode particle profile [mol/m3]
	ConcentrationNeg []float64 `json:"concentration_neg"` // anode particle profile [mol/m3]

	Temperature  float64 `json:"temperature"`   // [K]
	SEIThickness float64 `json:"sei_thickness"` // [m], never zero
	LostLithium  float64 `json:"lost_lithium"`  // cumulative [Ah]

	ThicknessPos float64 `json:"thickness_pos"` // electrode thickness [m]
	ThicknessNeg float64 `json:"thickness_neg"`
	VolFracPos   float64 `json:"vol_frac_pos"` // active material volume fraction [-]
	VolFracNeg   float64 `json:"vol_frac_neg"`
	AreaPos      float64 `json:"area_pos"` // effective surface area 3*eps/Rp [1/m]
	AreaNeg      float64 `json:"area_neg"`

	CrackArea    float64 `json:"crack_area"`    // [m2]
	DiffusionPos float64 `json:"diffusion_pos"` // at reference temperature [m2/s]
	DiffusionNeg float64 `json:"diffusion_neg"`

	Resistance      float64 `json:"resistance"`       // specific resistance [Ohm m2]
	PlatedThickness float64 `json:"plated_thickness"` // plated lithium layer [m]
}

// New copies s, including its profiles, and validates the copy against lim.
func New(s State, lim Limits) (*State, error) {
	c := s.Clone()
	if err := c.Validate(lim); err != nil {
		return nil, err
	}
	return &c, nil
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := s
	c.ConcentrationPos = append([]float64(nil), s.ConcentrationPos...)
	c.ConcentrationNeg = append([]float64(nil), s.ConcentrationNeg...)
	return c
}

// SetConcentrationsFromFraction fills both profiles uniformly with the given
// lithium fractions of the maximum concentrations. Profiles are (re)allocated
// to lim.Order nodes. It is meant for initialisation only.
func (s *State) SetConcentrationsFromFraction(fracPos, fracNeg float64, lim Limits) error {
	if !(fracPos >= 0 && fracPos <= 1) {
		return invalid("FractionPos", fracPos, "lithium fraction must be in [0, 1]")
	}
	if !(fracNeg >= 0 && fracNeg <= 1) {
		return invalid("FractionNeg", fracNeg, "lithium fraction must be in [0, 1]")
	}
	if lim.Order <= 0 {
		return invalid("Order", float64(lim.Order), "discretization order must be positive")
	}
	s.ConcentrationPos = fill(s.ConcentrationPos, lim.Order, fracPos*lim.CmaxPos)
	s.ConcentrationNeg = fill(s.ConcentrationNeg, lim.Order, fracNeg*lim.CmaxNeg)
	return nil
}

func fill(dst []float64, n int, v float64) []float64 {
	if len(dst) != n {
		dst = make([]float64, n)
	}
	for i := range dst {
		dst[i] = v
	}
	return dst
}

// Validate checks every invariant and returns an *InvalidStateError naming
// the first offending field. It never mutates s.
func (s *State) Validate(lim Limits) error {
	if err := checkProfile("ConcentrationPos", s.ConcentrationPos, lim.Order, lim.CmaxPos); err != nil {
		return err
	}
	if err := checkProfile("ConcentrationNeg", s.ConcentrationNeg, lim.Order, lim.CmaxNeg); err != nil {
		return err
	}

	tmax := lim.MaxTemperature
	if tmax == 0 {
		tmax = DefaultMaxTemperature
	}
	if !(s.Temperature > 0) {
		return invalid("Temperature", s.Temperature, "must be above absolute zero")
	}
	if !(s.Temperature < tmax) {
		return invalid("Temperature", s.Temperature, fmt.Sprintf("must stay below %g K", tmax))
	}

	positive := []struct {
		name string
		v    float64
	}{
		{"SEIThickness", s.SEIThickness},
		{"ThicknessPos", s.ThicknessPos},
		{"ThicknessNeg", s.ThicknessNeg},
		{"AreaPos", s.AreaPos},
		{"AreaNeg", s.AreaNeg},
		{"DiffusionPos", s.DiffusionPos},
		{"DiffusionNeg", s.DiffusionNeg},
		{"Resistance", s.Resistance},
	}
	for _, f := range positive {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return invalid(f.name, f.v, "must be strictly positive and finite")
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"LostLithium", s.LostLithium},
		{"CrackArea", s.CrackArea},
		{"PlatedThickness", s.PlatedThickness},
	}
	for _, f := range nonNegative {
		if !(f.v >= 0) || math.IsInf(f.v, 0) {
			return invalid(f.name, f.v, "must be non-negative and finite")
		}
	}

	if !(s.VolFracPos > 0 && s.VolFracPos <= 1) {
		return invalid("VolFracPos", s.VolFracPos, "must be in (0, 1]")
	}
	if !(s.VolFracNeg > 0 && s.VolFracNeg <= 1) {
		return invalid("VolFracNeg", s.VolFracNeg, "must be in (0, 1]")
	}
	return nil
}

func checkProfile(name string, c []float64, order int, cmax float64) error {
	if len(c) != order {
		return invalid(name, float64(len(c)), fmt.Sprintf("profile has %d nodes, want %d", len(c), order))
	}
	for i, v := range c {
		if !(v >= 0) || !(v <= cmax) {
			return invalid(fmt.Sprintf("%s[%d]", name, i), v, fmt.Sprintf("must be in [0, %g]", cmax))
		}
	}
	return nil
}
