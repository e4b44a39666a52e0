package cell

import (
	"fmt"
	"math"

	"github.com/kilianp07/cellsim/core/degradation"
	"github.com/kilianp07/cellsim/core/phys"
	"github.com/kilianp07/cellsim/core/state"
	"github.com/kilianp07/cellsim/core/stress"
)

// StepResult describes the operating point of one time step.
type StepResult struct {
	Voltage float64 // terminal voltage [V]
	OCV     float64 // open circuit voltage at the surface fractions [V]

	EtaPos, EtaNeg             float64 // kinetic overpotentials [V]
	PotentialPos, PotentialNeg float64 // electrode potentials vs Li/Li+ [V]

	Temperature float64 // temperature at the end of the step [K]
	Heat        float64 // generated heat [W]

	Rates  degradation.Rates
	Stress stress.Result
}

// Step advances the cell by dt seconds at a constant current, positive on
// discharge. The state is only replaced when the updated state passes
// validation; on error the cell is unchanged.
func (c *Cell) Step(current, dt float64) (StepResult, error) {
	if !(dt > 0) {
		return StepResult{}, fmt.Errorf("%w: time step must be positive, got %g", ErrInvalidParams, dt)
	}
	c.log.Tracef("cell %s: step I=%g A dt=%g s", c.params.Name, current, dt)

	p, s := c.params, c.st
	t := s.Temperature
	nF := p.N * phys.Faraday
	areaPos, areaNeg := c.RealAreaPos(), c.RealAreaNeg()

	dp := phys.Arrhenius(s.DiffusionPos, p.DpT, t, p.TRef)
	dn := phys.Arrhenius(s.DiffusionNeg, p.DnT, t, p.TRef)
	kp := phys.Arrhenius(p.Kp, p.KpT, t, p.TRef)
	kn := phys.Arrhenius(p.Kn, p.KnT, t, p.TRef)

	// lithium fluxes of the main reaction, positive into the particle
	jp := current / (areaPos * nF)
	jn0 := -current / (areaNeg * nF)

	cp := c.model.Surface(s.ConcentrationPos, jp, dp, p.Rp)
	if err := checkSurface("SurfaceConcentrationPos", cp, p.CmaxPos); err != nil {
		return c.reject(err)
	}
	cn := c.model.Surface(s.ConcentrationNeg, jn0, dn, p.Rn)
	if err := checkSurface("SurfaceConcentrationNeg", cn, p.CmaxNeg); err != nil {
		return c.reject(err)
	}

	etaP := overpotential(-jp*nF, kp, cp, p.CmaxPos, p.CElec, t, nF)
	etaN := overpotential(-jn0*nF, kn, cn, p.CmaxNeg, p.CElec, t, nF)
	ocvP := c.electrodeOCV(c.ocvPos, c.entPos, cp/p.CmaxPos, t)
	ocvN := c.electrodeOCV(c.ocvNeg, c.entNeg, cn/p.CmaxNeg, t)

	sr := c.stress.Compute(stress.Input{
		Pos:         stress.Profile{Concentration: s.ConcentrationPos, Surface: cp, Average: c.model.Average(s.ConcentrationPos)},
		Neg:         stress.Profile{Concentration: s.ConcentrationNeg, Surface: cn, Average: c.model.Average(s.ConcentrationNeg)},
		FractionNeg: cn / p.CmaxNeg,
	})

	rates, err := c.sel.Evaluate(p.Degradation, degradation.Conditions{
		Temperature:       t,
		RefTemperature:    p.TRef,
		Dt:                dt,
		Current:           current,
		NomCapacity:       p.NomCapacity,
		PotentialPos:      ocvP + etaP,
		PotentialNeg:      ocvN + etaN,
		CurrentDensityNeg: current / areaNeg,
		AreaNeg:           areaNeg,
		CrackArea:         s.CrackArea,
		CrackAreaMax:      p.Degradation.Crack.BaraiMaxArea * c.areaNeg0,
		SEIThickness:      s.SEIThickness,
		VolFracPos:        s.VolFracPos,
		VolFracNeg:        s.VolFracNeg,
		Stress:            sr,
		PrevStress:        c.prevStress,
	})
	if err != nil {
		c.log.Errorf("cell %s: degradation rates: %v", p.Name, err)
		return StepResult{}, err
	}

	// side reactions consume lithium from the anode on the crack surface too
	side := rates.SEICurrent*(areaNeg+s.CrackArea)/areaNeg + rates.PlatingCurrent
	jn := jn0 - side/nF
	if side != 0 {
		cn = c.model.Surface(s.ConcentrationNeg, jn, dn, p.Rn)
		if err := checkSurface("SurfaceConcentrationNeg", cn, p.CmaxNeg); err != nil {
			return c.reject(err)
		}
		etaN = overpotential(-jn*nF, kn, cn, p.CmaxNeg, p.CElec, t, nF)
		ocvN = c.electrodeOCV(c.ocvNeg, c.entNeg, cn/p.CmaxNeg, t)
	}

	ocv := ocvP - ocvN
	v := (ocvP + etaP) - (ocvN + etaN) - current*c.Resistance()
	dUdT := c.entPos.At(cp/p.CmaxPos) - c.entNeg.At(cn/p.CmaxNeg)

	next := s.Clone()
	if next.ConcentrationPos, err = c.model.Advance(s.ConcentrationPos, jp, dp, p.Rp, dt); err != nil {
		return c.reject(err)
	}
	if next.ConcentrationNeg, err = c.model.Advance(s.ConcentrationNeg, jn, dn, p.Rn, dt); err != nil {
		return c.reject(err)
	}

	vol := p.L * p.ElecSur
	heat := current*(ocv-v) - current*t*dUdT
	next.Temperature = temperature(t, heat, dt, p.Rho*p.Cp*vol, p.Qch*p.SAV*vol, p.TEnv)

	c.applyDegradation(&next, rates, dt, areaNeg)

	if err := next.Validate(c.limits); err != nil {
		return c.reject(err)
	}
	*c.st = next
	c.prevStress = sr

	return StepResult{
		Voltage:      v,
		OCV:          ocv,
		EtaPos:       etaP,
		EtaNeg:       etaN,
		PotentialPos: ocvP + etaP,
		PotentialNeg: ocvN + etaN,
		Temperature:  next.Temperature,
		Heat:         heat,
		Rates:        rates,
		Stress:       sr,
	}, nil
}

func (c *Cell) reject(err error) (StepResult, error) {
	c.log.Errorf("cell %s: step rejected: %v", c.params.Name, err)
	return StepResult{}, err
}

// applyDegradation integrates the degradation rates over dt into next.
func (c *Cell) applyDegradation(next *state.State, r degradation.Rates, dt, areaNeg float64) {
	p := c.params
	d := p.Degradation

	crackArea := next.CrackArea
	if r.SEICurrent > 0 {
		dd := r.SEICurrent * d.SEI.MolarVolume / (d.SEI.N * phys.Faraday) * dt
		next.SEIThickness += dd
		next.Resistance += d.SEI.Resistivity * dd
		next.LostLithium += r.SEICurrent * (areaNeg + crackArea) * dt / 3600
		if c.sel.SEIPorosity {
			next.VolFracNeg -= d.SEI.Porosity * next.AreaNeg * dd
		}
	}

	if r.PlatingCurrent > 0 {
		dd := r.PlatingCurrent * d.Plating.MolarVolume / (d.Plating.N * phys.Faraday) * dt
		next.PlatedThickness += dd
		next.Resistance += d.Plating.Resistivity * dd
		next.LostLithium += r.PlatingCurrent * areaNeg * dt / 3600
	}

	next.CrackArea += r.CrackGrowth * dt
	if c.sel.CrackDiffusion && c.ini.CrackArea > 0 && next.CrackArea > 0 {
		next.DiffusionNeg = c.ini.DiffusionNeg * math.Pow(c.ini.CrackArea/next.CrackArea, d.Crack.DiffusionExponent)
	}

	// lithium stored in lost active material is lost as well
	if dep := r.VolFracPos * dt; dep < 0 {
		next.LostLithium += -dep * next.ThicknessPos * p.ElecSur * c.model.Average(next.ConcentrationPos) * phys.Faraday / 3600
		next.VolFracPos += dep
	}
	if den := r.VolFracNeg * dt; den < 0 {
		next.LostLithium += -den * next.ThicknessNeg * p.ElecSur * c.model.Average(next.ConcentrationNeg) * phys.Faraday / 3600
		next.VolFracNeg += den
	}
	next.AreaPos = 3 * next.VolFracPos / p.Rp
	next.AreaNeg = 3 * next.VolFracNeg / p.Rn
}

// temperature integrates the lumped heat balance m dT/dt = heat - h (T - tenv)
// over dt with the cooling term taken at the end of the step, so any dt
// relaxes towards the equilibrium without overshoot.
func temperature(t, heat, dt, m, h, tenv float64) float64 {
	return (t*m/dt + heat + h*tenv) / (m/dt + h)
}

func checkSurface(field string, cs, cmax float64) error {
	if !(cs > 0 && cs < cmax) {
		return fmt.Errorf("%w: %w", ErrSurfaceSaturation,
			&state.InvalidStateError{Field: field, Value: cs, Reason: fmt.Sprintf("must be in (0, %g)", cmax)})
	}
	return nil
}

// overpotential solves the symmetric Butler-Volmer relation for the kinetic
// overpotential driving current density i.
func overpotential(i, k, cs, cmax, celec, t, nF float64) float64 {
	i0 := nF * k * math.Sqrt(celec*cs*(cmax-cs))
	return 2 * phys.GasConstant * t / nF * math.Asinh(i/(2*i0))
}
