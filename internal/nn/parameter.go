package nn

import (
	"fmt"

	"github.com/born-ml/minnet/internal/tensor"
)

// Params is the trainable parameter record of an Affine layer.
//
// The gradient record has the same type: every gradient mirrors the shape of
// the value it differentiates.
//
// Example:
//
//	params, grads := affine.ParamsAndGrads()
//	params.Weight.Axpy(-lr, grads.Weight)
//	params.Bias.Axpy(-lr, grads.Bias)
type Params[T tensor.Float] struct {
	Weight *tensor.Matrix[T] // [in_features, out_features]
	Bias   *tensor.Vector[T] // [out_features]
}

// NewParams creates a parameter record. Panics if the bias length does not
// match the weight's column count.
func NewParams[T tensor.Float](weight *tensor.Matrix[T], bias *tensor.Vector[T]) *Params[T] {
	if weight.Cols() != bias.Len() {
		panic(&tensor.ShapeError{
			Pkg:    "nn",
			Op:     "NewParams",
			Left:   weight.Shape(),
			Right:  bias.Shape(),
			Reason: "bias length must equal the weight's column count",
		})
	}
	return &Params[T]{Weight: weight, Bias: bias}
}

// ZeroParamsLike returns a zero-filled record shaped like p.
func ZeroParamsLike[T tensor.Float](p *Params[T]) *Params[T] {
	return &Params[T]{
		Weight: tensor.ZerosLike(p.Weight),
		Bias:   tensor.ZerosVector[T](p.Bias.Len()),
	}
}

// Clone returns a deep copy of the record.
func (p *Params[T]) Clone() *Params[T] {
	return &Params[T]{Weight: p.Weight.Clone(), Bias: p.Bias.Clone()}
}

// InFeatures returns the number of input features.
func (p *Params[T]) InFeatures() int {
	return p.Weight.Rows()
}

// OutFeatures returns the number of output features.
func (p *Params[T]) OutFeatures() int {
	return p.Weight.Cols()
}

// NumElements returns the number of scalar parameters in the record.
func (p *Params[T]) NumElements() int {
	return p.Weight.NumElements() + p.Bias.Len()
}

// String returns a short description of the record.
func (p *Params[T]) String() string {
	return fmt.Sprintf("Params{Weight: %v, Bias: %v}", p.Weight.Shape(), p.Bias.Shape())
}
