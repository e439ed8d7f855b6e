// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"github.com/born-ml/minnet/internal/nn"
	"github.com/born-ml/minnet/internal/tensor"
)

// Layer is the Forward / Backward pair shared by every layer.
type Layer[In, Out, DIn any] = nn.Layer[In, Out, DIn]

// TransformLayer maps a batch matrix to a batch matrix.
type TransformLayer[T tensor.Float] = nn.TransformLayer[T]

// Trainable is implemented by layers that own parameters.
type Trainable[T tensor.Float] = nn.Trainable[T]

// ParamUpdater applies one optimization step to a parameter record.
type ParamUpdater[T tensor.Float] = nn.ParamUpdater[T]

// Params is the weight and bias record of an Affine layer.
type Params[T tensor.Float] = nn.Params[T]

// NewParams creates a parameter record.
func NewParams[T tensor.Float](weight *tensor.Matrix[T], bias *tensor.Vector[T]) *Params[T] {
	return nn.NewParams(weight, bias)
}

// NormalParams draws weights from N(mean, std²) and zeroes the biases.
func NormalParams[T tensor.Float](inFeatures, outFeatures int, mean, std float64, src rand.Source) *Params[T] {
	return nn.NormalParams[T](inFeatures, outFeatures, mean, std, src)
}

// Structural layers

// Pair bundles two batch matrices.
type Pair[T tensor.Float] = nn.Pair[T]

// Add sums two batch matrices.
type Add[T tensor.Float] = nn.Add[T]

// NewAdd creates an Add layer.
func NewAdd[T tensor.Float]() *Add[T] { return nn.NewAdd[T]() }

// Branch fans one batch matrix out to two consumers.
type Branch[T tensor.Float] = nn.Branch[T]

// NewBranch creates a Branch layer.
func NewBranch[T tensor.Float]() *Branch[T] { return nn.NewBranch[T]() }

// RepeatInput is the operand of Repeat.
type RepeatInput[T tensor.Float] = nn.RepeatInput[T]

// Repeat broadcasts a vector into N rows.
type Repeat[T tensor.Float] = nn.Repeat[T]

// NewRepeat creates a Repeat layer.
func NewRepeat[T tensor.Float]() *Repeat[T] { return nn.NewRepeat[T]() }

// Sum reduces a batch matrix over its rows.
type Sum[T tensor.Float] = nn.Sum[T]

// NewSum creates a Sum layer.
func NewSum[T tensor.Float]() *Sum[T] { return nn.NewSum[T]() }

// MatMulOperands holds the operands of MatMul or their gradients.
type MatMulOperands[T tensor.Float] = nn.MatMulOperands[T]

// MatMul multiplies a batch by a matrix.
type MatMul[T tensor.Float] = nn.MatMul[T]

// NewMatMul creates a MatMul layer.
func NewMatMul[T tensor.Float]() *MatMul[T] { return nn.NewMatMul[T]() }

// Layers

// Affine represents a fully connected (dense) layer.
type Affine[T tensor.Float] = nn.Affine[T]

// NewAffine creates an Affine layer that owns params.
//
// Example:
//
//	params := nn.NormalParams[float64](784, 128, 0, 0.01, rand.NewPCG(1, 1))
//	layer := nn.NewAffine(params)
func NewAffine[T tensor.Float](params *Params[T]) *Affine[T] {
	return nn.NewAffine(params)
}

// Activations

// Activation selects the hidden-layer nonlinearity of NewNetwork.
type Activation = nn.Activation

// Supported activations.
const (
	ActivationSigmoid = nn.ActivationSigmoid
	ActivationReLU    = nn.ActivationReLU
)

// ParseActivation parses "sigmoid" or "relu".
func ParseActivation(name string) (Activation, error) {
	return nn.ParseActivation(name)
}

// Sigmoid is the logistic activation.
type Sigmoid[T tensor.Float] = nn.Sigmoid[T]

// NewSigmoid creates a Sigmoid layer.
func NewSigmoid[T tensor.Float]() *Sigmoid[T] { return nn.NewSigmoid[T]() }

// ReLU is the rectified linear activation.
type ReLU[T tensor.Float] = nn.ReLU[T]

// NewReLU creates a ReLU layer.
func NewReLU[T tensor.Float]() *ReLU[T] { return nn.NewReLU[T]() }

// Loss

// TinyDelta is the probability floor inside the loss logarithm.
const TinyDelta = nn.TinyDelta

// LossInput holds class scores and one-hot labels.
type LossInput[T tensor.Float] = nn.LossInput[T]

// SoftmaxCrossEntropy fuses row softmax with cross-entropy.
type SoftmaxCrossEntropy[T tensor.Float] = nn.SoftmaxCrossEntropy[T]

// NewSoftmaxCrossEntropy creates a loss layer.
func NewSoftmaxCrossEntropy[T tensor.Float]() *SoftmaxCrossEntropy[T] {
	return nn.NewSoftmaxCrossEntropy[T]()
}

// Softmax normalizes each row of scores into probabilities.
func Softmax[T tensor.Float](scores *tensor.Matrix[T]) *tensor.Matrix[T] {
	return nn.Softmax(scores)
}

// Network

// Config holds the weight initialization settings.
type Config = nn.Config

// DefaultConfig returns mean 0, std 0.01 and a random seed.
func DefaultConfig() Config {
	return nn.DefaultConfig()
}

// Network chains transform layers and a loss layer.
type Network[T tensor.Float] = nn.Network[T]

// NewNetwork builds a fully connected classifier.
//
// Example:
//
//	net, err := nn.NewNetwork[float32](2, []int{10}, 3, nn.ActivationSigmoid, nn.Config{Seed: 1})
func NewNetwork[T tensor.Float](inputSize int, hiddenSizes []int, outputSize int, act Activation, cfg Config) (*Network[T], error) {
	return nn.NewNetwork[T](inputSize, hiddenSizes, outputSize, act, cfg)
}

// NewSequential creates a Network from hand-built layers.
func NewSequential[T tensor.Float](loss *SoftmaxCrossEntropy[T], layers ...TransformLayer[T]) *Network[T] {
	return nn.NewSequential(loss, layers...)
}
