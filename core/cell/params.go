package cell

import (
	"github.com/kilianp07/cellsim/core/curve"
	"github.com/kilianp07/cellsim/core/degradation"
	"github.com/kilianp07/cellsim/core/stress"
)

// Params enumerates every constant of a cell. Different commercial cells are
// different Params values.
type Params struct {
	Name string `json:"name"`

	// chemistry
	CmaxPos float64 `json:"cmax_pos"` // [mol/m3]
	CmaxNeg float64 `json:"cmax_neg"` // [mol/m3]
	CElec   float64 `json:"c_elec"`   // electrolyte concentration [mol/m3]
	N       float64 `json:"n"`        // electrons per main reaction

	// electrical
	NomCapacity float64 `json:"nom_capacity"` // [Ah]
	Vmax        float64 `json:"vmax"`         // [V]
	Vmin        float64 `json:"vmin"`         // [V]

	// thermal
	TRef    float64 `json:"t_ref"`    // reference temperature of all fitted constants [K]
	TEnv    float64 `json:"t_env"`    // ambient temperature [K]
	TMax    float64 `json:"t_max"`    // material failure ceiling [K]
	Qch     float64 `json:"qch"`      // convective heat transfer coefficient [W/(m2 K)]
	Rho     float64 `json:"rho"`      // density [kg/m3]
	Cp      float64 `json:"cp"`       // heat capacity [J/(kg K)]
	SAV     float64 `json:"sav"`      // surface to volume ratio of the cell [1/m]
	L       float64 `json:"l"`        // thickness of one electrode stack [m]
	ElecSur float64 `json:"elec_sur"` // electrode surface [m2]

	// particles and discretization
	Rp    float64 `json:"rp"`    // cathode particle radius [m]
	Rn    float64 `json:"rn"`    // anode particle radius [m]
	Order int     `json:"order"` // radial nodes per particle

	// main reaction kinetics and solid diffusion activation energies
	Kp  float64 `json:"kp"` // [m/s]
	KpT float64 `json:"kp_t"`
	Kn  float64 `json:"kn"`
	KnT float64 `json:"kn_t"`
	DpT float64 `json:"dp_t"`
	DnT float64 `json:"dn_t"`

	Initial Initial `json:"initial"`

	OCVPos      curve.Curve `json:"ocv_pos"`      // [V] against cathode lithium fraction
	OCVNeg      curve.Curve `json:"ocv_neg"`      // [V] against anode lithium fraction
	EntropicPos curve.Curve `json:"entropic_pos"` // dOCV/dT [V/K]
	EntropicNeg curve.Curve `json:"entropic_neg"`

	Stress      stress.Params      `json:"stress"`
	Degradation degradation.Params `json:"degradation"`
}

// Initial are the targets the initial state is derived from.
type Initial struct {
	Rdc           float64 `json:"rdc"`            // DC resistance of the cell [Ohm]
	FracPos       float64 `json:"frac_pos"`       // cathode lithium fraction
	FracNeg       float64 `json:"frac_neg"`       // anode lithium fraction
	Temperature   float64 `json:"temperature"`    // [K]
	SEIThickness  float64 `json:"sei_thickness"`  // [m], never 0
	ThicknessPos  float64 `json:"thickness_pos"`  // [m]
	ThicknessNeg  float64 `json:"thickness_neg"`  // [m]
	VolFracPos    float64 `json:"vol_frac_pos"`   // [-]
	VolFracNeg    float64 `json:"vol_frac_neg"`   // [-]
	DiffusionPos  float64 `json:"diffusion_pos"`  // [m2/s]
	DiffusionNeg  float64 `json:"diffusion_neg"`  // [m2/s]
	CrackFraction float64 `json:"crack_fraction"` // initial crack area as a fraction of the anode surface
}
