// Package diffusion advances lithium concentration profiles inside spherical
// electrode particles.
//
// Solid diffusion is represented by a precomputed linear state-space system in
// the dimensionless radius x = r/R:
//
//	dc/dt  = (D/R^2) A c + (1/R) B j
//	c_surf = C c + (R/D) d j
//
// where j is the molar flux into the particle through its surface
// [mol m-2 s-1]. A Model is immutable once built and may be shared by any
// number of cells simulated concurrently.
package diffusion

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrArtifact is returned for discretization artifacts with inconsistent
// dimensions or values.
var ErrArtifact = errors.New("diffusion: invalid discretization artifact")

// Artifact is the serialisable form of a Model, as produced by an offline
// discretization step.
type Artifact struct {
	Order     int         `json:"order"`
	RadiusPos float64     `json:"radius_pos"` // cathode particle radius the artifact was built for [m]
	RadiusNeg float64     `json:"radius_neg"` // anode particle radius [m]
	Nodes     []float64   `json:"nodes"`      // dimensionless node radii
	Weights   []float64   `json:"weights"`    // volume weights, sum to 1
	A         [][]float64 `json:"a"`
	B         []float64   `json:"b"`
	C         []float64   `json:"c"`
	D         float64     `json:"d"`
}

// Model is an immutable solid diffusion discretization.
type Model struct {
	order     int
	radiusPos float64
	radiusNeg float64
	nodes     []float64
	weights   []float64
	a         *mat.Dense
	b         []float64
	c         []float64
	d         float64
}

// New checks the artifact and builds a Model from a private copy of its data.
func New(art Artifact) (*Model, error) {
	n := art.Order
	if n <= 0 {
		return nil, fmt.Errorf("%w: order %d", ErrArtifact, n)
	}
	if !(art.RadiusPos > 0) || !(art.RadiusNeg > 0) {
		return nil, fmt.Errorf("%w: particle radii must be positive", ErrArtifact)
	}
	if len(art.A) != n {
		return nil, fmt.Errorf("%w: A has %d rows, want %d", ErrArtifact, len(art.A), n)
	}
	for _, v := range []struct {
		name string
		len  int
	}{{"nodes", len(art.Nodes)}, {"weights", len(art.Weights)}, {"B", len(art.B)}, {"C", len(art.C)}} {
		if v.len != n {
			return nil, fmt.Errorf("%w: %s has %d entries, want %d", ErrArtifact, v.name, v.len, n)
		}
	}
	a := mat.NewDense(n, n, nil)
	for i, row := range art.A {
		if len(row) != n {
			return nil, fmt.Errorf("%w: A row %d has %d columns, want %d", ErrArtifact, i, len(row), n)
		}
		a.SetRow(i, row)
	}
	if s := floats.Sum(art.Weights); math.Abs(s-1) > 1e-6 {
		return nil, fmt.Errorf("%w: weights sum to %g, want 1", ErrArtifact, s)
	}
	return &Model{
		order:     n,
		radiusPos: art.RadiusPos,
		radiusNeg: art.RadiusNeg,
		nodes:     append([]float64(nil), art.Nodes...),
		weights:   append([]float64(nil), art.Weights...),
		a:         a,
		b:         append([]float64(nil), art.B...),
		c:         append([]float64(nil), art.C...),
		d:         art.D,
	}, nil
}

// Artifact returns a copy of the data the model was built from.
func (m *Model) Artifact() Artifact {
	rows := make([][]float64, m.order)
	for i := range rows {
		rows[i] = mat.Row(nil, i, m.a)
	}
	return Artifact{
		Order:     m.order,
		RadiusPos: m.radiusPos,
		RadiusNeg: m.radiusNeg,
		Nodes:     append([]float64(nil), m.nodes...),
		Weights:   append([]float64(nil), m.weights...),
		A:         rows,
		B:         append([]float64(nil), m.b...),
		C:         append([]float64(nil), m.c...),
		D:         m.d,
	}
}

// Order is the number of radial nodes of every profile the model advances.
func (m *Model) Order() int { return m.order }

// RadiusPos is the cathode particle radius the discretization was built for.
func (m *Model) RadiusPos() float64 { return m.radiusPos }

// RadiusNeg is the anode particle radius the discretization was built for.
func (m *Model) RadiusNeg() float64 { return m.radiusNeg }

// Nodes returns the dimensionless node radii.
func (m *Model) Nodes() []float64 { return append([]float64(nil), m.nodes...) }

// Weights returns the node volume weights.
func (m *Model) Weights() []float64 { return append([]float64(nil), m.weights...) }

// Average returns the volume averaged concentration of profile c.
func (m *Model) Average(c []float64) float64 {
	return floats.Dot(m.weights, c)
}

// Surface returns the concentration at the particle surface for profile c,
// flux j into the particle, diffusion constant diff and particle radius.
func (m *Model) Surface(c []float64, flux, diff, radius float64) float64 {
	return floats.Dot(m.c, c) + radius/diff*m.d*flux
}

// Advance integrates the profile c over dt seconds with implicit Euler and
// returns the new profile. c is not modified.
func (m *Model) Advance(c []float64, flux, diff, radius, dt float64) ([]float64, error) {
	if len(c) != m.order {
		return nil, fmt.Errorf("diffusion: profile has %d nodes, model has %d", len(c), m.order)
	}
	if !(dt > 0) || !(diff > 0) || !(radius > 0) {
		return nil, fmt.Errorf("diffusion: dt, diffusion constant and radius must be positive")
	}
	n := m.order
	k := dt * diff / (radius * radius)

	lhs := mat.NewDense(n, n, nil)
	lhs.Scale(-k, m.a)
	for i := 0; i < n; i++ {
		lhs.Set(i, i, lhs.At(i, i)+1)
	}

	rhs := mat.NewVecDense(n, append([]float64(nil), c...))
	rhs.AddScaledVec(rhs, dt/radius*flux, mat.NewVecDense(n, append([]float64(nil), m.b...)))

	var next mat.VecDense
	if err := next.SolveVec(lhs, rhs); err != nil {
		return nil, fmt.Errorf("diffusion: implicit step: %w", err)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = next.AtVec(i)
	}
	return out, nil
}
