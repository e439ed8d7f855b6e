// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers with hand-derived gradients.
//
// # Overview
//
// This package contains:
//   - Structural layers: Add, Branch, Repeat, Sum, MatMul
//   - Trainable layers: Affine
//   - Activations: Sigmoid, ReLU
//   - Loss: SoftmaxCrossEntropy
//   - Network: transform layers terminated by the loss
//
// Every layer exposes Forward and Backward. Forward caches what Backward
// needs in a single slot, so at most one forward result may be pending per
// Backward call.
//
// # Basic Usage
//
//	net, err := nn.NewNetwork[float64](2, []int{10}, 3, nn.ActivationSigmoid, nn.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	loss := net.Forward(x, labels)
//	net.Backward(1)
//	net.Update(sgd)
package nn
