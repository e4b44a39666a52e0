package cell

import (
	"github.com/kilianp07/cellsim/core/curve"
	"github.com/kilianp07/cellsim/core/degradation"
	"github.com/kilianp07/cellsim/core/state"
	"github.com/kilianp07/cellsim/core/stress"
)

// KokamNMC returns the parameters of a high power 18650 NMC/graphite cell.
// The degradation constants are exaggerated so that every mechanism visibly
// shortens the cell life.
func KokamNMC() Params {
	return Params{
		Name: "kokam-nmc",

		CmaxPos: 51385,
		CmaxNeg: 30555,
		CElec:   1000,
		N:       1,

		NomCapacity: 2.7,
		Vmax:        4.2,
		Vmin:        2.7,

		TRef:    state.Kelvin + 25,
		TEnv:    state.Kelvin + 25,
		TMax:    state.DefaultMaxTemperature,
		Qch:     90,
		Rho:     1626,
		Cp:      750,
		SAV:     252.9915,
		L:       1.6850e-4,
		ElecSur: 0.0982,

		Rp:    8.5e-6,
		Rn:    1.25e-5,
		Order: 10,

		Kp:  5e-11,
		KpT: 58000,
		Kn:  1.7640e-11,
		KnT: 20000,
		DpT: 29000,
		DnT: 35000,

		Initial: Initial{
			Rdc:           0.0102,
			FracPos:       0.689332,
			FracNeg:       0.479283,
			Temperature:   state.Kelvin + 25,
			SEIThickness:  1e-9,
			ThicknessPos:  70e-6,
			ThicknessNeg:  73.5e-6,
			VolFracPos:    0.5,
			VolFracNeg:    0.5,
			DiffusionPos:  8e-14,
			DiffusionNeg:  7e-14,
			CrackFraction: 0.01,
		},

		OCVPos: curve.Curve{
			X: []float64{0.20, 0.30, 0.40, 0.50, 0.60, 0.70, 0.80, 0.90, 0.95, 1.00},
			Y: []float64{4.45, 4.33, 4.19, 4.06, 3.93, 3.82, 3.72, 3.60, 3.48, 3.20},
		},
		OCVNeg: curve.Curve{
			X: []float64{0.00, 0.02, 0.05, 0.10, 0.20, 0.30, 0.45, 0.55, 0.70, 0.85, 0.98, 1.00},
			Y: []float64{1.20, 0.60, 0.30, 0.21, 0.14, 0.12, 0.10, 0.09, 0.085, 0.08, 0.06, 0.00},
		},
		EntropicPos: curve.Curve{
			X: []float64{0.2, 0.5, 0.8, 1.0},
			Y: []float64{-1e-4, -5e-5, 2e-5, 5e-5},
		},
		EntropicNeg: curve.Curve{
			X: []float64{0.0, 0.2, 0.5, 0.8, 1.0},
			Y: []float64{3e-4, 1e-4, -5e-5, -1e-4, -1.5e-4},
		},

		Stress: stress.Params{
			Pos: stress.Material{Omega: -7.28e-7, E: 199e9, Nu: 0.3},
			Neg: stress.Material{Omega: 3.1e-6, E: 10e9, Nu: 0.3},
			Laresgoiti: curve.Curve{
				X: []float64{0.00, 0.12, 0.20, 0.30, 0.45, 0.60, 0.80, 1.00},
				Y: []float64{0, 5, 10, 12, 15, 22, 28, 30},
			},
		},

		Degradation: degradation.Params{
			SEI: degradation.SEIParams{
				N: 1, Alpha: 1, OCV: 0.4, MolarVolume: 64.39e-6, Resistivity: 100e3, Solvent: 4.541e-3,
				KineticK: 1.5e-12, KineticKT: 65000,
				DiffusionD: 2.3e-17, DiffusionDT: 20000,
				MixedK: 1.5e-12, MixedKT: 65000, MixedD: 2.3e-17, MixedDT: 20000,
				Porosity: 1,
			},
			Crack: degradation.CrackParams{
				Laresgoiti:        2e-6,
				Dai:               2e-6,
				Deshpande:         1e-9,
				Barai:             1e-4,
				BaraiMaxArea:      5,
				EkstromK:          1e-9,
				EkstromKT:         -127040,
				DiffusionExponent: 2,
			},
			LAM: degradation.LAMParams{
				DaiPos: 3e-7, DaiNeg: 3e-7,
				DelacourtPos: 5e-6, DelacourtNeg: 5e-6,
				KindermannK: 1e-10, KindermannKT: 50000, OCVNMC: 4.1,
				NarayanraoPos: 1e-10, NarayanraoNeg: 1e-10,
			},
			Plating: degradation.PlatingParams{
				N: 1, Alpha: 1, OCV: 0, MolarVolume: 13e-6, Resistivity: 10000e3,
				K: 4.5e-10, KT: -2.014008e5,
			},
		},
	}
}
