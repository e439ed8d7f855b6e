package optim

import (
	"fmt"

	"github.com/born-ml/minnet/internal/nn"
	"github.com/born-ml/minnet/internal/tensor"
)

// DefaultSGDLR is the learning rate NewSGD uses when none is configured.
const DefaultSGDLR = 0.01

// SGD implements plain Stochastic Gradient Descent.
//
// Update rule, applied to weight and bias independently:
//
//	param = param - lr * gradient
//
// Example:
//
//	optimizer, err := optim.NewSGD[float64](optim.SGDConfig{LR: 1.0})
//	if err != nil {
//	    return err
//	}
//	net.Update(optimizer)
type SGD[T tensor.Float] struct {
	lr T
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer.
//
// A zero LR selects DefaultSGDLR; a negative LR is an error.
func NewSGD[T tensor.Float](config SGDConfig) (*SGD[T], error) {
	if config.LR < 0 {
		return nil, fmt.Errorf("sgd: learning rate must be >= 0 (got %g)", config.LR)
	}
	if config.LR == 0 {
		config.LR = DefaultSGDLR
	}
	return &SGD[T]{lr: T(config.LR)}, nil
}

// Update performs params -= lr * grads in place.
func (s *SGD[T]) Update(params, grads *nn.Params[T]) {
	checkPair("SGD.Update", params, grads)
	params.Weight.Axpy(-s.lr, grads.Weight)
	params.Bias.Axpy(-s.lr, grads.Bias)
}

// LR returns the current learning rate.
func (s *SGD[T]) LR() T {
	return s.lr
}

// SetLR sets the learning rate (for learning rate scheduling).
func (s *SGD[T]) SetLR(lr T) {
	s.lr = lr
}

var _ Optimizer[float32] = (*SGD[float32])(nil)
