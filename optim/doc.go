// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// # Overview
//
// This package contains:
//   - SGD: plain Stochastic Gradient Descent
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	sgd, err := optim.NewSGD[float64](optim.SGDConfig{LR: 1.0})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for epoch := range 300 {
//	    ds.Shuffle()
//	    for batch, ok := ds.Next(); ok; batch, ok = ds.Next() {
//	        net.Forward(batch.Inputs, batch.Labels)
//	        net.Backward(1)
//	        net.Update(sgd)
//	    }
//	}
//
// # Custom Optimizers
//
// Any type with Update(params, grads *nn.Params[T]) and LR() T satisfies
// Optimizer and can be passed to Network.Update and the trainer.
package optim
