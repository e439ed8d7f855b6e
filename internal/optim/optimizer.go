// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: plain Stochastic Gradient Descent
//   - Adam: Adaptive Moment Estimation
//
// An optimizer is handed one trainable layer at a time by
// nn.Network.Update and changes that layer's parameters in place.
//
// Example usage:
//
//	// Create optimizer
//	sgd, err := optim.NewSGD[float64](optim.SGDConfig{LR: 1.0})
//
//	// Training loop
//	for batch, ok := ds.Next(); ok; batch, ok = ds.Next() {
//	    net.Forward(batch.Inputs, batch.Labels)
//	    net.Backward(1)
//	    net.Update(sgd)
//	}
package optim

import (
	"fmt"

	"github.com/born-ml/minnet/internal/nn"
	"github.com/born-ml/minnet/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Update: Apply one gradient step to a parameter record
//   - LR: Get current learning rate (for monitoring/scheduling)
type Optimizer[T tensor.Float] interface {
	nn.ParamUpdater[T]

	// LR returns the current learning rate.
	LR() T
}

// Kind names an optimization algorithm.
type Kind string

// Supported optimizers.
const (
	KindSGD  Kind = "sgd"
	KindAdam Kind = "adam"
)

// New creates the optimizer named by kind with learning rate lr (0 selects
// the optimizer's default).
func New[T tensor.Float](kind Kind, lr float64) (Optimizer[T], error) {
	switch kind {
	case KindSGD, "":
		sgd, err := NewSGD[T](SGDConfig{LR: lr})
		if err != nil {
			return nil, err
		}
		return sgd, nil
	case KindAdam:
		adam, err := NewAdam[T](AdamConfig{LR: lr})
		if err != nil {
			return nil, err
		}
		return adam, nil
	default:
		return nil, fmt.Errorf("unknown optimizer %q (want %q or %q)", kind, KindSGD, KindAdam)
	}
}

// checkPair panics if params and grads differ in shape.
func checkPair[T tensor.Float](op string, params, grads *nn.Params[T]) {
	if !params.Weight.SameShape(grads.Weight) {
		panic(&tensor.ShapeError{Pkg: "optim", Op: op, Left: params.Weight.Shape(), Right: grads.Weight.Shape(), Reason: "weight gradient shape must match the weight"})
	}
	if params.Bias.Len() != grads.Bias.Len() {
		panic(&tensor.ShapeError{Pkg: "optim", Op: op, Left: params.Bias.Shape(), Right: grads.Bias.Shape(), Reason: "bias gradient shape must match the bias"})
	}
}
