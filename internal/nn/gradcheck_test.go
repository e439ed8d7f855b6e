package nn_test

import (
	"math/rand/v2"
	"testing"

	"github.com/born-ml/minnet/internal/tensor"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/diff/fd"
)

const gradTol = 1e-6

// randMatrix returns a reproducible N(0, 1) matrix.
func randMatrix(rows, cols int, seed uint64) *tensor.Matrix[float64] {
	return tensor.RandNormal[float64](rows, cols, 0, 1, rand.NewPCG(seed, seed+1))
}

// weightedSum is a scalar probe over a layer output: L = Σ out ⊙ w.
// Its gradient with respect to out is w.
func weightedSum(out, w *tensor.Matrix[float64]) float64 {
	return out.Mul(w).Sum()
}

// checkGradient compares analytic against a central finite-difference
// estimate of ∂loss/∂x. x is perturbed in place and restored afterwards.
func checkGradient(t *testing.T, name string, analytic, x []float64, loss func() float64) {
	t.Helper()

	origin := append([]float64(nil), x...)
	numeric := fd.Gradient(nil, func(p []float64) float64 {
		copy(x, p)
		return loss()
	}, origin, &fd.Settings{Formula: fd.Central, Step: 1e-6})
	copy(x, origin)

	assert.InDeltaSlice(t, numeric, analytic, gradTol, "%s: analytic gradient differs from finite differences", name)
}
