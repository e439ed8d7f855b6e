package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/minnet/internal/tensor"
)

// Activation selects the nonlinearity NewNetwork places after each hidden
// Affine layer.
type Activation int

// Supported hidden-layer activations.
const (
	ActivationSigmoid Activation = iota
	ActivationReLU
)

// String returns the activation name.
func (a Activation) String() string {
	switch a {
	case ActivationSigmoid:
		return "sigmoid"
	case ActivationReLU:
		return "relu"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// ParseActivation parses an activation name (case-insensitive).
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sigmoid":
		return ActivationSigmoid, nil
	case "relu":
		return ActivationReLU, nil
	default:
		return 0, fmt.Errorf("unknown activation %q (want sigmoid or relu)", name)
	}
}

// newActivationLayer returns a fresh layer for a.
func newActivationLayer[T tensor.Float](a Activation) (TransformLayer[T], error) {
	switch a {
	case ActivationSigmoid:
		return NewSigmoid[T](), nil
	case ActivationReLU:
		return NewReLU[T](), nil
	default:
		return nil, fmt.Errorf("unsupported activation %v", a)
	}
}

// Sigmoid is a sigmoid activation layer.
//
// Applies the element-wise function: σ(x) = 1 / (1 + exp(-x))
//
// The derivative is expressed through the output, so Forward caches out:
//
//	dx = out * (1 - out) * dout
//
// Example:
//
//	sigmoid := nn.NewSigmoid[float64]()
//	out := sigmoid.Forward(x)  // values in (0, 1)
type Sigmoid[T tensor.Float] struct {
	out *tensor.Matrix[T]
}

// NewSigmoid creates a new Sigmoid activation layer.
func NewSigmoid[T tensor.Float]() *Sigmoid[T] {
	return &Sigmoid[T]{}
}

// Forward applies sigmoid activation.
func (s *Sigmoid[T]) Forward(input *tensor.Matrix[T]) *tensor.Matrix[T] {
	s.out = input.Map(sigmoid[T])
	return s.out
}

// Backward returns out * (1 - out) * dout.
func (s *Sigmoid[T]) Backward(dout *tensor.Matrix[T]) *tensor.Matrix[T] {
	if s.out == nil {
		panicNoForward("Sigmoid")
	}
	checkGradShape("Sigmoid.Backward", s.out.Shape(), dout.Shape())
	local := s.out.Map(func(y T) T { return y * (1 - y) })
	return local.Mul(dout)
}

func sigmoid[T tensor.Float](x T) T {
	return 1 / (1 + tensor.Exp(-x))
}

// ReLU is a Rectified Linear Unit activation layer.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// Forward caches the mask x > 0; Backward passes dout where the mask is set
// and zero elsewhere.
//
// Example:
//
//	relu := nn.NewReLU[float32]()
//	out := relu.Forward(x)  // All negative values become 0
type ReLU[T tensor.Float] struct {
	mask *tensor.Matrix[T]
}

// NewReLU creates a new ReLU activation layer.
func NewReLU[T tensor.Float]() *ReLU[T] {
	return &ReLU[T]{}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU[T]) Forward(input *tensor.Matrix[T]) *tensor.Matrix[T] {
	r.mask = input.Map(func(x T) T {
		if x > 0 {
			return 1
		}
		return 0
	})
	return input.Map(func(x T) T {
		if x > 0 {
			return x
		}
		return 0
	})
}

// Backward returns dout masked by the cached x > 0.
func (r *ReLU[T]) Backward(dout *tensor.Matrix[T]) *tensor.Matrix[T] {
	if r.mask == nil {
		panicNoForward("ReLU")
	}
	checkGradShape("ReLU.Backward", r.mask.Shape(), dout.Shape())
	return dout.Mul(r.mask)
}

var (
	_ TransformLayer[float32] = (*Sigmoid[float32])(nil)
	_ TransformLayer[float64] = (*ReLU[float64])(nil)
)
