package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/minnet/internal/tensor"
)

// Default weight initialization hyperparameters.
const (
	DefaultWeightInitMean   = 0.0
	DefaultWeightInitStdDev = 0.01
)

// Config holds the parameter initialization settings of a Network.
type Config struct {
	WeightInitMean   float64 // Mean of the Gaussian weights are drawn from (default: 0)
	WeightInitStdDev float64 // Standard deviation of that Gaussian (default: 0.01)
	Seed             uint64  // Seed of the weight source (default: 0, a random seed)
}

// DefaultConfig returns the default initialization settings.
func DefaultConfig() Config {
	return Config{
		WeightInitMean:   DefaultWeightInitMean,
		WeightInitStdDev: DefaultWeightInitStdDev,
	}
}

// withDefaults fills zero fields.
func (c Config) withDefaults() Config {
	if c.WeightInitStdDev == 0 {
		c.WeightInitStdDev = DefaultWeightInitStdDev
	}
	return c
}

// Validate checks the initialization settings.
func (c Config) Validate() error {
	if c.WeightInitStdDev < 0 {
		return fmt.Errorf("weight init std dev must be >= 0 (got %g)", c.WeightInitStdDev)
	}
	return nil
}

// source returns the random source weights are drawn from.
func (c Config) source() rand.Source {
	seed := c.Seed
	if seed == 0 {
		seed = rand.Uint64() //nolint:gosec // G404: ML uses math/rand intentionally
	}
	return rand.NewPCG(seed, seed)
}

// NormalParams initializes an Affine parameter record for a layer mapping
// inFeatures to outFeatures.
//
// Weights are drawn from N(mean, std²); biases are zeros.
//
// Parameters:
//   - inFeatures: Number of input features
//   - outFeatures: Number of output features
//   - mean, std: Gaussian parameters for the weights
//   - src: Random source (seed it for reproducible weights)
func NormalParams[T tensor.Float](inFeatures, outFeatures int, mean, std float64, src rand.Source) *Params[T] {
	return NewParams(
		tensor.RandNormal[T](inFeatures, outFeatures, mean, std, src),
		tensor.ZerosVector[T](outFeatures),
	)
}
