// Package nn implements the hand-differentiated layers of the minnet engine.
//
// This package provides building blocks for constructing neural networks:
//   - Layer interface: Forward / Backward pair shared by every primitive
//   - Structural layers: Add, Branch, Repeat, Sum, MatMul
//   - Affine: trainable fully connected layer (MatMul + bias)
//   - Activations: Sigmoid, ReLU
//   - Loss: SoftmaxCrossEntropy
//   - Network: ordered transform layers terminated by the loss layer
//
// There is no tape and no graph: each layer derives its own local gradient
// and caches exactly the forward state its Backward needs. Stateful layers
// hold a single cache slot, so at most one forward result may be outstanding
// per Backward call; a second Forward overwrites the first.
package nn

import (
	"fmt"

	"github.com/born-ml/minnet/internal/tensor"
)

// Layer is the base interface for all differentiable units.
//
// Type parameters:
//   - In: forward input (a matrix, or a struct bundling several operands)
//   - Out: forward output; Backward consumes the loss gradient in this type
//   - DIn: gradient with respect to In, shaped like In
//
// Backward must only be called after Forward; calling it on a fresh stateful
// layer panics.
type Layer[In, Out, DIn any] interface {
	// Forward computes the output and caches what Backward needs.
	Forward(input In) Out

	// Backward maps dL/dOut to dL/dIn by the chain rule.
	Backward(dout Out) DIn
}

// TransformLayer is a Layer that maps a batch matrix to a batch matrix.
// Network chains these between its input and its loss layer.
type TransformLayer[T tensor.Float] interface {
	Layer[*tensor.Matrix[T], *tensor.Matrix[T], *tensor.Matrix[T]]
}

// Trainable is implemented by layers that own parameters.
//
// ParamsAndGrads returns the live parameter record and the gradient record
// produced by the latest Backward. Both share the same shapes.
type Trainable[T tensor.Float] interface {
	ParamsAndGrads() (params, grads *Params[T])
}

// Pair bundles two batch matrices: the operands of Add, the outputs of
// Branch, and their gradients.
type Pair[T tensor.Float] struct {
	A *tensor.Matrix[T]
	B *tensor.Matrix[T]
}

// panicNoForward reports a Backward call on a layer whose cache is empty.
func panicNoForward(layer string) {
	panic(fmt.Sprintf("nn.%s.Backward: called before Forward", layer))
}

// checkGradShape panics with a *tensor.ShapeError if the gradient handed to
// Backward does not match the shape Forward produced.
func checkGradShape(op string, want, got tensor.Shape) {
	if !want.Equal(got) {
		panic(&tensor.ShapeError{Pkg: "nn", Op: op, Left: want, Right: got, Reason: "gradient shape must match the forward output"})
	}
}
