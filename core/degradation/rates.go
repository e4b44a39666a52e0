// Package degradation selects and evaluates the long-term aging mechanisms of
// a cell: SEI growth, surface cracking, loss of active material and lithium
// plating.
//
// Every category always has at least one model, "none" included, so the same
// dispatch runs whether or not a cell ages. Rates of all models selected in a
// category are summed.
package degradation

import (
	"errors"
	"fmt"
	"math"

	"github.com/kilianp07/cellsim/core/phys"
	"github.com/kilianp07/cellsim/core/stress"
)

// ErrStressUnavailable is returned when a stress driven model is evaluated
// without the stress it consumes.
var ErrStressUnavailable = errors.New("degradation: required stress not computed")

// Conditions is the instantaneous operating point the rates are evaluated at.
type Conditions struct {
	Temperature    float64 // [K]
	RefTemperature float64 // temperature of the fitted rate constants [K]
	Dt             float64 // length of the time step [s]

	Current     float64 // cell current, positive on discharge [A]
	NomCapacity float64 // [Ah]

	PotentialPos      float64 // cathode potential vs Li/Li+ [V]
	PotentialNeg      float64 // anode potential vs Li/Li+ [V]
	CurrentDensityNeg float64 // intercalation current density on the anode [A/m2]

	AreaNeg      float64 // real anode surface [m2]
	CrackArea    float64 // [m2]
	CrackAreaMax float64 // [m2]
	SEIThickness float64 // [m]
	VolFracPos   float64
	VolFracNeg   float64

	// Stress of this step and of the previous one. Fields the selector does
	// not need may be nil.
	Stress, PrevStress stress.Result
}

// Rates are the time derivatives produced by the selected models.
type Rates struct {
	SEICurrent     float64 // side reaction current density [A/m2], >= 0
	PlatingCurrent float64 // [A/m2], >= 0
	CrackGrowth    float64 // [m2/s], >= 0
	VolFracPos     float64 // [1/s], <= 0
	VolFracNeg     float64 // [1/s], <= 0
}

// Evaluate computes the summed rates of every selected model.
func (s Selector) Evaluate(p Params, c Conditions) (Rates, error) {
	var r Rates
	var err error
	if r.SEICurrent, err = s.seiCurrent(p.SEI, c); err != nil {
		return Rates{}, err
	}
	r.PlatingCurrent = s.platingCurrent(p.Plating, c)
	if r.CrackGrowth, err = s.crackGrowth(p.Crack, c); err != nil {
		return Rates{}, err
	}
	if r.VolFracPos, r.VolFracNeg, err = s.lam(p.LAM, c); err != nil {
		return Rates{}, err
	}
	return r, nil
}

func (s Selector) seiCurrent(p SEIParams, c Conditions) (float64, error) {
	nF := p.N * phys.Faraday
	beta := p.Alpha * nF / (phys.GasConstant * c.Temperature)
	drive := math.Exp(-beta * (c.PotentialNeg - p.OCV))

	var total float64
	for _, id := range s.SEI {
		switch id {
		case SEINone:
		case SEIKinetic:
			k := phys.Arrhenius(p.KineticK, p.KineticKT, c.Temperature, c.RefTemperature)
			total += nF * k * p.Solvent * drive
		case SEIDiffusion:
			d := phys.Arrhenius(p.DiffusionD, p.DiffusionDT, c.Temperature, c.RefTemperature)
			total += nF * d * p.Solvent / c.SEIThickness
		case SEIKineticDiffusion:
			k := phys.Arrhenius(p.MixedK, p.MixedKT, c.Temperature, c.RefTemperature) * drive
			d := phys.Arrhenius(p.MixedD, p.MixedDT, c.Temperature, c.RefTemperature)
			if k > 0 && d > 0 {
				total += nF * p.Solvent / (1/k + c.SEIThickness/d)
			}
		default:
			return 0, fmt.Errorf("%w: unknown sei model %d", ErrInvalidSelector, int(id))
		}
	}
	return math.Max(total, 0), nil
}

func (s Selector) platingCurrent(p PlatingParams, c Conditions) float64 {
	if s.Plating != PlatingYang {
		return 0
	}
	nF := p.N * phys.Faraday
	beta := p.Alpha * nF / (phys.GasConstant * c.Temperature)
	k := phys.Arrhenius(p.K, p.KT, c.Temperature, c.RefTemperature)
	return math.Max(nF*k*math.Exp(-beta*(c.PotentialNeg-p.OCV)), 0)
}

func (s Selector) crackGrowth(p CrackParams, c Conditions) (float64, error) {
	crate := math.Abs(c.Current) / c.NomCapacity

	var total float64
	for _, id := range s.Cracking {
		switch id {
		case CrackNone:
		case CrackLaresgoiti:
			if c.Stress.Laresgoiti == nil {
				return 0, fmt.Errorf("%w: laresgoiti", ErrStressUnavailable)
			}
			if prev := c.PrevStress.Laresgoiti; prev != nil {
				total += p.Laresgoiti * c.AreaNeg * math.Abs(c.Stress.Laresgoiti.Neg-prev.Neg) / c.Dt
			}
		case CrackDai:
			if c.Stress.Dai == nil {
				return 0, fmt.Errorf("%w: dai", ErrStressUnavailable)
			}
			if prev := c.PrevStress.Dai; prev != nil {
				total += p.Dai * c.AreaNeg * megapascal(math.Abs(c.Stress.Dai.Neg.Hoop-prev.Neg.Hoop)) / c.Dt
			}
		case CrackDeshpande:
			total += p.Deshpande * c.AreaNeg * crate * crate
		case CrackBarai:
			total += math.Max(p.Barai*(c.CrackAreaMax-c.CrackArea)*crate/3600, 0)
		case CrackEkstrom:
			k := phys.Arrhenius(p.EkstromK, p.EkstromKT, c.Temperature, c.RefTemperature)
			total += k * c.AreaNeg * math.Abs(c.CurrentDensityNeg)
		default:
			return 0, fmt.Errorf("%w: unknown cracking model %d", ErrInvalidSelector, int(id))
		}
	}
	return math.Max(total, 0), nil
}

func (s Selector) lam(p LAMParams, c Conditions) (pos, neg float64, err error) {
	crate := math.Abs(c.Current) / c.NomCapacity
	for _, id := range s.LAM {
		switch id {
		case LAMNone:
		case LAMDai:
			if c.Stress.Dai == nil {
				return 0, 0, fmt.Errorf("%w: dai", ErrStressUnavailable)
			}
			if prev := c.PrevStress.Dai; prev != nil {
				cur := c.Stress.Dai
				pos -= p.DaiPos * megapascal(math.Abs(cur.Pos.Hydrostatic-prev.Pos.Hydrostatic)) / c.Dt
				neg -= p.DaiNeg * megapascal(math.Abs(cur.Neg.Hydrostatic-prev.Neg.Hydrostatic)) / c.Dt
			}
		case LAMDelacourt:
			pos -= p.DelacourtPos * crate / 3600
			neg -= p.DelacourtNeg * crate / 3600
		case LAMKindermann:
			k := phys.Arrhenius(p.KindermannK, p.KindermannKT, c.Temperature, c.RefTemperature)
			pos -= k * math.Exp(phys.Faraday/(phys.GasConstant*c.Temperature)*(c.PotentialPos-p.OCVNMC))
		case LAMNarayanrao:
			pos -= p.NarayanraoPos * c.VolFracPos
			neg -= p.NarayanraoNeg * c.VolFracNeg
		default:
			return 0, 0, fmt.Errorf("%w: unknown lam model %d", ErrInvalidSelector, int(id))
		}
	}
	return math.Min(pos, 0), math.Min(neg, 0), nil
}

func megapascal(pa float64) float64 { return pa / 1e6 }
