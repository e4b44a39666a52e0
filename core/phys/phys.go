// Package phys holds physical constants shared by the cell models.
package phys

import "math"

const (
	Faraday     = 96487.0 // [C/mol]
	GasConstant = 8.314   // [J/(mol K)]
)

// Arrhenius scales a rate constant k given at tref to temperature t using the
// activation energy ea [J/mol].
func Arrhenius(k, ea, t, tref float64) float64 {
	return k * math.Exp(ea/GasConstant*(1/tref-1/t))
}
