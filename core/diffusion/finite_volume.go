package diffusion

import "fmt"

// FiniteVolume builds a conservative finite-volume discretization of the
// spherical diffusion equation with order equally thick shells. Nodes sit at
// the shell centres, the surface concentration is extrapolated from the
// outer node with the flux boundary condition.
func FiniteVolume(order int, radiusPos, radiusNeg float64) (*Model, error) {
	if order < 2 {
		return nil, fmt.Errorf("%w: finite volume needs at least 2 shells, got %d", ErrArtifact, order)
	}
	n := order
	h := 1 / float64(n)

	// shell i spans [i h, (i+1) h]; vol is its volume divided by 4 pi
	vol := make([]float64, n)
	face := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		x := float64(i) * h
		face[i] = x * x
	}
	for i := 0; i < n; i++ {
		in, out := float64(i)*h, float64(i+1)*h
		vol[i] = (out*out*out - in*in*in) / 3
	}

	art := Artifact{
		Order:     n,
		RadiusPos: radiusPos,
		RadiusNeg: radiusNeg,
		Nodes:     make([]float64, n),
		Weights:   make([]float64, n),
		A:         make([][]float64, n),
		B:         make([]float64, n),
		C:         make([]float64, n),
		D:         h / 2,
	}
	for i := 0; i < n; i++ {
		art.Nodes[i] = (float64(i) + 0.5) * h
		art.Weights[i] = 3 * vol[i]
		row := make([]float64, n)
		if i > 0 {
			g := face[i] / (h * vol[i])
			row[i-1] += g
			row[i] -= g
		}
		if i < n-1 {
			g := face[i+1] / (h * vol[i])
			row[i+1] += g
			row[i] -= g
		}
		art.A[i] = row
	}
	art.B[n-1] = face[n] / vol[n-1]
	art.C[n-1] = 1
	return New(art)
}
