package degradation

// SEIParams are the constants and fitting parameters of the SEI models.
type SEIParams struct {
	N           float64 `json:"n"`            // electrons per reaction
	Alpha       float64 `json:"alpha"`        // charge transfer coefficient
	OCV         float64 `json:"ocv"`          // equilibrium potential of the side reaction [V]
	MolarVolume float64 `json:"molar_volume"` // [m3/mol]
	Resistivity float64 `json:"resistivity"`  // ionic resistivity of the layer [Ohm m]
	Solvent     float64 `json:"solvent"`      // solvent concentration at the surface [mol/m3]

	KineticK  float64 `json:"kinetic_k"`   // rate constant [m/s]
	KineticKT float64 `json:"kinetic_k_t"` // activation energy [J/mol]

	DiffusionD  float64 `json:"diffusion_d"` // solvent diffusion constant in the layer [m2/s]
	DiffusionDT float64 `json:"diffusion_d_t"`

	MixedK  float64 `json:"mixed_k"`
	MixedKT float64 `json:"mixed_k_t"`
	MixedD  float64 `json:"mixed_d"`
	MixedDT float64 `json:"mixed_d_t"`

	// Porosity scales the active volume fraction consumed per SEI volume
	// when the porosity coupling is on.
	Porosity float64 `json:"porosity"`
}

// CrackParams are the fitting parameters of the cracking models.
type CrackParams struct {
	Laresgoiti float64 `json:"laresgoiti"` // crack area per anode area per MPa of stress change
	Dai        float64 `json:"dai"`        // crack area per anode area per MPa of hoop stress change
	Deshpande  float64 `json:"deshpande"`  // [1/s] at 1C
	Barai      float64 `json:"barai"`      // per C-rate hour
	// BaraiMaxArea is the maximum crack area as a multiple of the initial
	// anode surface.
	BaraiMaxArea float64 `json:"barai_max_area"`
	EkstromK     float64 `json:"ekstrom_k"` // [m2/A]
	EkstromKT    float64 `json:"ekstrom_k_t"`
	// DiffusionExponent m in D = D0 (CS0/CS)^m when the diffusion coupling is on.
	DiffusionExponent float64 `json:"diffusion_exponent"`
}

// LAMParams are the fitting parameters of the loss of active material models.
type LAMParams struct {
	DaiPos        float64 `json:"dai_pos"` // volume fraction lost per MPa of hydrostatic stress change
	DaiNeg        float64 `json:"dai_neg"`
	DelacourtPos  float64 `json:"delacourt_pos"` // volume fraction lost per C-rate hour
	DelacourtNeg  float64 `json:"delacourt_neg"`
	KindermannK   float64 `json:"kindermann_k"` // [1/s]
	KindermannKT  float64 `json:"kindermann_k_t"`
	OCVNMC        float64 `json:"ocv_nmc"` // cathode potential above which dissolution accelerates [V]
	NarayanraoPos float64 `json:"narayanrao_pos"` // [1/s]
	NarayanraoNeg float64 `json:"narayanrao_neg"`
}

// PlatingParams are the constants and fitting parameters of the plating model.
type PlatingParams struct {
	N           float64 `json:"n"`
	Alpha       float64 `json:"alpha"`
	OCV         float64 `json:"ocv"`          // [V]
	MolarVolume float64 `json:"molar_volume"` // lithium metal [m3/mol]
	Resistivity float64 `json:"resistivity"`  // [Ohm m]
	K           float64 `json:"k"`            // [m/s]
	KT          float64 `json:"k_t"`          // [J/mol]
}

// Params groups the parameters of every degradation category.
type Params struct {
	SEI     SEIParams     `json:"sei"`
	Crack   CrackParams   `json:"crack"`
	LAM     LAMParams     `json:"lam"`
	Plating PlatingParams `json:"plating"`
}
