package degradation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/cellsim/core/stress"
)

var testParams = Params{
	SEI: SEIParams{
		N: 1, Alpha: 1, OCV: 0.4, MolarVolume: 64.39e-6, Resistivity: 1e5, Solvent: 4.541e-3,
		KineticK: 1.5e-12, KineticKT: 1.3e5 / 2,
		DiffusionD: 2.3e-17, DiffusionDT: 2e4,
		MixedK: 1.5e-12, MixedKT: 6.5e4, MixedD: 2.3e-17, MixedDT: 2e4,
		Porosity: 1,
	},
	Crack: CrackParams{
		Laresgoiti: 2e-6, Dai: 2e-6, Deshpande: 1e-9, Barai: 1e-4, BaraiMaxArea: 5,
		EkstromK: 1e-9, EkstromKT: -1.27e5, DiffusionExponent: 2,
	},
	LAM: LAMParams{
		DaiPos: 3e-7, DaiNeg: 3e-7, DelacourtPos: 5e-6, DelacourtNeg: 5e-6,
		KindermannK: 1e-10, KindermannKT: 5e4, OCVNMC: 4.1,
		NarayanraoPos: 1e-10, NarayanraoNeg: 1e-10,
	},
	Plating: PlatingParams{N: 1, Alpha: 1, OCV: 0, MolarVolume: 13e-6, Resistivity: 1e7, K: 4.5e-10, KT: -2.014e5},
}

func baseConditions() Conditions {
	return Conditions{
		Temperature:       298.15,
		RefTemperature:    298.15,
		Dt:                1,
		Current:           2.7,
		NomCapacity:       2.7,
		PotentialPos:      3.9,
		PotentialNeg:      0.1,
		CurrentDensityNeg: 3.1,
		AreaNeg:           0.87,
		CrackArea:         0.0087,
		CrackAreaMax:      4.3,
		SEIThickness:      1e-9,
		VolFracPos:        0.5,
		VolFracNeg:        0.5,
	}
}

func allModels() Selector {
	return Selector{
		SEI:      []SEIModel{SEIKinetic, SEIDiffusion, SEIKineticDiffusion},
		Cracking: []CrackModel{CrackLaresgoiti, CrackDai, CrackDeshpande, CrackBarai, CrackEkstrom},
		LAM:      []LAMModel{LAMDai, LAMDelacourt, LAMKindermann, LAMNarayanrao},
		Plating:  PlatingYang,
	}
}

func TestDefaultSelectorHasZeroRates(t *testing.T) {
	r, err := Default().Evaluate(testParams, baseConditions())
	require.NoError(t, err)
	assert.Equal(t, Rates{}, r)
}

func TestRatesHaveMonotoneSigns(t *testing.T) {
	prev := stress.Result{
		Dai:        &stress.DaiStress{Pos: stress.Particle{Hoop: 1e6, Hydrostatic: 2e6}, Neg: stress.Particle{Hoop: -5e6, Hydrostatic: -1e6}},
		Laresgoiti: &stress.LaresgoitiStress{Neg: 12},
	}
	cur := stress.Result{
		Dai:        &stress.DaiStress{Pos: stress.Particle{Hoop: -1e6, Hydrostatic: 1e6}, Neg: stress.Particle{Hoop: 3e6, Hydrostatic: 4e6}},
		Laresgoiti: &stress.LaresgoitiStress{Neg: 10},
	}
	for _, current := range []float64{-5.4, -2.7, 0, 1.35, 5.4} {
		for _, phi := range []float64{-0.05, 0.05, 0.2, 0.8} {
			c := baseConditions()
			c.Current = current
			c.CurrentDensityNeg = current / c.AreaNeg
			c.PotentialNeg = phi
			c.Stress, c.PrevStress = cur, prev
			r, err := allModels().Evaluate(testParams, c)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, r.SEICurrent, 0.0)
			assert.GreaterOrEqual(t, r.PlatingCurrent, 0.0)
			assert.GreaterOrEqual(t, r.CrackGrowth, 0.0)
			assert.LessOrEqual(t, r.VolFracPos, 0.0)
			assert.LessOrEqual(t, r.VolFracNeg, 0.0)
		}
	}
}

func TestRatesAreSummed(t *testing.T) {
	c := baseConditions()
	single := func(sel Selector) Rates {
		r, err := sel.Evaluate(testParams, c)
		require.NoError(t, err)
		return r
	}
	k := single(Selector{SEI: []SEIModel{SEIKinetic}, Cracking: []CrackModel{CrackDeshpande}, LAM: []LAMModel{LAMDelacourt}})
	d := single(Selector{SEI: []SEIModel{SEIDiffusion}, Cracking: []CrackModel{CrackBarai}, LAM: []LAMModel{LAMNarayanrao}})
	both := single(Selector{
		SEI:      []SEIModel{SEIKinetic, SEIDiffusion},
		Cracking: []CrackModel{CrackDeshpande, CrackBarai},
		LAM:      []LAMModel{LAMDelacourt, LAMNarayanrao},
	})
	assert.InDelta(t, k.SEICurrent+d.SEICurrent, both.SEICurrent, 1e-18)
	assert.InDelta(t, k.CrackGrowth+d.CrackGrowth, both.CrackGrowth, 1e-18)
	assert.InDelta(t, k.VolFracNeg+d.VolFracNeg, both.VolFracNeg, 1e-18)
	assert.Greater(t, k.SEICurrent, 0.0)
	assert.Greater(t, d.SEICurrent, 0.0)
}

func TestSEIKineticFollowsPotential(t *testing.T) {
	sel := Selector{SEI: []SEIModel{SEIKinetic}, Cracking: []CrackModel{CrackNone}, LAM: []LAMModel{LAMNone}}
	c := baseConditions()
	c.PotentialNeg = 0.05
	low, err := sel.Evaluate(testParams, c)
	require.NoError(t, err)
	c.PotentialNeg = 0.3
	high, err := sel.Evaluate(testParams, c)
	require.NoError(t, err)
	assert.Greater(t, low.SEICurrent, high.SEICurrent)
}

func TestPlatingOnlyWhenSelected(t *testing.T) {
	c := baseConditions()
	c.PotentialNeg = -0.02
	sel := Default()
	r, err := sel.Evaluate(testParams, c)
	require.NoError(t, err)
	assert.Zero(t, r.PlatingCurrent)

	sel.Plating = PlatingYang
	r, err = sel.Evaluate(testParams, c)
	require.NoError(t, err)
	assert.Greater(t, r.PlatingCurrent, 0.0)
}

func TestStressModelsNeedStress(t *testing.T) {
	c := baseConditions()
	_, err := Selector{SEI: []SEIModel{SEINone}, Cracking: []CrackModel{CrackDai}, LAM: []LAMModel{LAMNone}}.Evaluate(testParams, c)
	assert.ErrorIs(t, err, ErrStressUnavailable)
	_, err = Selector{SEI: []SEIModel{SEINone}, Cracking: []CrackModel{CrackLaresgoiti}, LAM: []LAMModel{LAMNone}}.Evaluate(testParams, c)
	assert.ErrorIs(t, err, ErrStressUnavailable)
	_, err = Selector{SEI: []SEIModel{SEINone}, Cracking: []CrackModel{CrackNone}, LAM: []LAMModel{LAMDai}}.Evaluate(testParams, c)
	assert.ErrorIs(t, err, ErrStressUnavailable)

	// first step: stress known but no previous value yet
	c.Stress = stress.Result{Dai: &stress.DaiStress{}}
	r, err := Selector{SEI: []SEIModel{SEINone}, Cracking: []CrackModel{CrackDai}, LAM: []LAMModel{LAMDai}}.Evaluate(testParams, c)
	require.NoError(t, err)
	assert.Equal(t, Rates{}, r)
}

func TestBaraiSaturates(t *testing.T) {
	sel := Selector{SEI: []SEIModel{SEINone}, Cracking: []CrackModel{CrackBarai}, LAM: []LAMModel{LAMNone}}
	c := baseConditions()
	c.CrackArea = c.CrackAreaMax
	r, err := sel.Evaluate(testParams, c)
	require.NoError(t, err)
	assert.Zero(t, r.CrackGrowth)
}
