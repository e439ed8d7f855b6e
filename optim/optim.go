// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/minnet/internal/optim"
	"github.com/born-ml/minnet/internal/tensor"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer[T tensor.Float] = optim.Optimizer[T]

// Kind names an optimization algorithm.
type Kind = optim.Kind

// Supported optimizers.
const (
	KindSGD  = optim.KindSGD
	KindAdam = optim.KindAdam
)

// New creates the optimizer named by kind.
func New[T tensor.Float](kind Kind, lr float64) (Optimizer[T], error) {
	return optim.New[T](kind, lr)
}

// SGD (Stochastic Gradient Descent)

// SGD represents the plain SGD optimizer.
type SGD[T tensor.Float] = optim.SGD[T]

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer, err := optim.NewSGD[float32](optim.SGDConfig{LR: 0.1})
func NewSGD[T tensor.Float](config SGDConfig) (*SGD[T], error) {
	return optim.NewSGD[T](config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam[T tensor.Float] = optim.Adam[T]

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	optimizer, err := optim.NewAdam[float64](optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float64{0.9, 0.999},
//	    Eps:   1e-8,
//	})
func NewAdam[T tensor.Float](config AdamConfig) (*Adam[T], error) {
	return optim.NewAdam[T](config)
}
