package degradation

import (
	"errors"
	"fmt"
)

// ErrInvalidSelector is returned for selectors with empty, oversized or
// unknown model lists.
var ErrInvalidSelector = errors.New("degradation: invalid selector")

// MaxModels bounds the number of simultaneously active models per category.
const MaxModels = 10

// SEIModel identifies a solid electrolyte interphase growth model.
type SEIModel int

const (
	SEINone             SEIModel = iota // no SEI growth
	SEIKinetic                          // reaction limited
	SEIDiffusion                        // solvent diffusion limited (Pinson & Bazant)
	SEIKineticDiffusion                 // both resistances in series
)

// CrackModel identifies a surface cracking model.
type CrackModel int

const (
	CrackNone       CrackModel = iota
	CrackLaresgoiti            // Paris law on Laresgoiti's anode stress
	CrackDai                   // Paris law on Dai's surface hoop stress
	CrackDeshpande             // proportional to the squared C-rate
	CrackBarai                 // saturating towards a maximum crack area
	CrackEkstrom               // kinetic, proportional to the anode current density
)

// LAMModel identifies a loss of active material model.
type LAMModel int

const (
	LAMNone        LAMModel = iota
	LAMDai                  // driven by changes in Dai's hydrostatic stress
	LAMDelacourt            // proportional to charge throughput
	LAMKindermann           // cathode dissolution at high potential
	LAMNarayanrao           // proportional to the remaining active material
)

// PlatingModel identifies a lithium plating model.
type PlatingModel int

const (
	PlatingNone PlatingModel = iota
	PlatingYang              // kinetic plating on the anode surface
)

var (
	seiNames     = map[SEIModel]string{SEINone: "none", SEIKinetic: "kinetic", SEIDiffusion: "diffusion", SEIKineticDiffusion: "kinetic-diffusion"}
	crackNames   = map[CrackModel]string{CrackNone: "none", CrackLaresgoiti: "laresgoiti", CrackDai: "dai", CrackDeshpande: "deshpande", CrackBarai: "barai", CrackEkstrom: "ekstrom"}
	lamNames     = map[LAMModel]string{LAMNone: "none", LAMDai: "dai", LAMDelacourt: "delacourt", LAMKindermann: "kindermann", LAMNarayanrao: "narayanrao"}
	platingNames = map[PlatingModel]string{PlatingNone: "none", PlatingYang: "yang"}
)

func (m SEIModel) String() string     { return name(seiNames, m) }
func (m CrackModel) String() string   { return name(crackNames, m) }
func (m LAMModel) String() string     { return name(lamNames, m) }
func (m PlatingModel) String() string { return name(platingNames, m) }

func name[K ~int](names map[K]string, k K) string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// Selector chooses which degradation models drive the long-term state of a
// cell. Contributions of the models listed for SEI, cracking and LAM are
// summed; at most one plating model is active.
//
// A cell without degradation uses the explicit "none" model in every
// category, see Default.
type Selector struct {
	SEI []SEIModel `json:"sei"`
	// SEIPorosity makes SEI growth consume anode active volume fraction.
	SEIPorosity bool         `json:"sei_porosity"`
	Cracking    []CrackModel `json:"cracking"`
	// CrackDiffusion makes crack growth lower the anode diffusion constant.
	CrackDiffusion bool         `json:"crack_diffusion"`
	LAM            []LAMModel   `json:"lam"`
	Plating        PlatingModel `json:"plating"`
}

// Default returns a selector without any degradation.
func Default() Selector {
	return Selector{
		SEI:      []SEIModel{SEINone},
		Cracking: []CrackModel{CrackNone},
		LAM:      []LAMModel{LAMNone},
		Plating:  PlatingNone,
	}
}

// Clone returns a deep copy of s.
func (s Selector) Clone() Selector {
	c := s
	c.SEI = append([]SEIModel(nil), s.SEI...)
	c.Cracking = append([]CrackModel(nil), s.Cracking...)
	c.LAM = append([]LAMModel(nil), s.LAM...)
	return c
}

// Validate checks that every list is non-empty, bounded and only holds known
// model identifiers.
func (s Selector) Validate() error {
	if err := checkList("sei", s.SEI, seiNames); err != nil {
		return err
	}
	if err := checkList("cracking", s.Cracking, crackNames); err != nil {
		return err
	}
	if err := checkList("lam", s.LAM, lamNames); err != nil {
		return err
	}
	if _, ok := platingNames[s.Plating]; !ok {
		return fmt.Errorf("%w: unknown plating model %d", ErrInvalidSelector, int(s.Plating))
	}
	return nil
}

func checkList[K ~int](category string, ids []K, names map[K]string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no %s model selected", ErrInvalidSelector, category)
	}
	if len(ids) > MaxModels {
		return fmt.Errorf("%w: %d %s models selected, at most %d", ErrInvalidSelector, len(ids), category, MaxModels)
	}
	for _, id := range ids {
		if _, ok := names[id]; !ok {
			return fmt.Errorf("%w: unknown %s model %d", ErrInvalidSelector, category, int(id))
		}
	}
	return nil
}

// NeedsDai reports whether a selected cracking or LAM model consumes Dai's
// stress.
func (s Selector) NeedsDai() bool {
	for _, id := range s.Cracking {
		if id == CrackDai {
			return true
		}
	}
	for _, id := range s.LAM {
		if id == LAMDai {
			return true
		}
	}
	return false
}

// NeedsLaresgoiti reports whether a selected cracking model consumes
// Laresgoiti's stress.
func (s Selector) NeedsLaresgoiti() bool {
	for _, id := range s.Cracking {
		if id == CrackLaresgoiti {
			return true
		}
	}
	return false
}

// ParseSEIModel returns the SEI model with the given name.
func ParseSEIModel(s string) (SEIModel, error) { return parse("sei", seiNames, s) }

// ParseCrackModel returns the cracking model with the given name.
func ParseCrackModel(s string) (CrackModel, error) { return parse("cracking", crackNames, s) }

// ParseLAMModel returns the LAM model with the given name.
func ParseLAMModel(s string) (LAMModel, error) { return parse("lam", lamNames, s) }

// ParsePlatingModel returns the plating model with the given name.
func ParsePlatingModel(s string) (PlatingModel, error) { return parse("plating", platingNames, s) }

func parse[K ~int](category string, names map[K]string, s string) (K, error) {
	for k, n := range names {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s model %q", ErrInvalidSelector, category, s)
}
