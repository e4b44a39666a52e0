package config

import (
	"github.com/kilianp07/cellsim/core/cell"
	"github.com/kilianp07/cellsim/core/degradation"
	"github.com/kilianp07/cellsim/core/diffusion"
)

// SelectorConfig names the degradation models of the cell.
type SelectorConfig struct {
	SEI            []string `json:"sei"`
	SEIPorosity    bool     `json:"sei_porosity"`
	Cracking       []string `json:"cracking"`
	CrackDiffusion bool     `json:"crack_diffusion"`
	LAM            []string `json:"lam"`
	Plating        string   `json:"plating"`
}

// DefaultSelector selects no degradation.
func DefaultSelector() SelectorConfig {
	return SelectorConfig{SEI: []string{"none"}, Cracking: []string{"none"}, LAM: []string{"none"}, Plating: "none"}
}

// Selector resolves the model names.
func (c SelectorConfig) Selector() (degradation.Selector, error) {
	s := degradation.Selector{SEIPorosity: c.SEIPorosity, CrackDiffusion: c.CrackDiffusion}
	for _, n := range c.SEI {
		id, err := degradation.ParseSEIModel(n)
		if err != nil {
			return degradation.Selector{}, err
		}
		s.SEI = append(s.SEI, id)
	}
	for _, n := range c.Cracking {
		id, err := degradation.ParseCrackModel(n)
		if err != nil {
			return degradation.Selector{}, err
		}
		s.Cracking = append(s.Cracking, id)
	}
	for _, n := range c.LAM {
		id, err := degradation.ParseLAMModel(n)
		if err != nil {
			return degradation.Selector{}, err
		}
		s.LAM = append(s.LAM, id)
	}
	pl := c.Plating
	if pl == "" {
		pl = "none"
	}
	id, err := degradation.ParsePlatingModel(pl)
	if err != nil {
		return degradation.Selector{}, err
	}
	s.Plating = id
	return s, s.Validate()
}

// ModelConfig locates the diffusion discretization.
type ModelConfig struct {
	// Path of a JSON artifact. When empty a finite volume discretization is
	// generated for the cell geometry.
	Path string `json:"path"`
}

// Build loads or generates the diffusion model for p.
func (c ModelConfig) Build(p cell.Params) (*diffusion.Model, error) {
	if c.Path != "" {
		return diffusion.Load(c.Path)
	}
	return diffusion.FiniteVolume(p.Order, p.Rp, p.Rn)
}
