package nn

import (
	"fmt"

	"github.com/born-ml/minnet/internal/tensor"
)

// Affine implements a fully connected (dense) layer.
//
// Performs the transformation: y = x . W + b
// where:
//   - x is the input batch with shape [batch_size, in_features]
//   - W is the weight matrix with shape [in_features, out_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output batch with shape [batch_size, out_features]
//
// Affine is composed from the structural primitives: MatMul computes x . W,
// Repeat broadcasts b to the batch, and Add sums the two. Backward runs the
// same graph in reverse and stores the weight and bias gradients.
//
// Example:
//
//	params := nn.NormalParams[float64](2, 10, 0, 0.01, rand.NewPCG(1, 1))
//	layer := nn.NewAffine(params)
//
//	out := layer.Forward(x)     // [batch, 10]
//	dx := layer.Backward(dout)  // [batch, 2]
//	_, grads := layer.ParamsAndGrads()
type Affine[T tensor.Float] struct {
	params *Params[T]
	grads  *Params[T]

	matmul *MatMul[T]
	repeat *Repeat[T]
	add    *Add[T]

	forwarded bool
}

// NewAffine creates an Affine layer that owns params.
//
// The layer updates params in place through its optimizer; the caller must
// not share the record with another layer.
func NewAffine[T tensor.Float](params *Params[T]) *Affine[T] {
	return &Affine[T]{
		params: params,
		grads:  ZeroParamsLike(params),
		matmul: NewMatMul[T](),
		repeat: NewRepeat[T](),
		add:    NewAdd[T](),
	}
}

// Forward computes x . W + b.
//
// Panics with a *tensor.ShapeError if the input width differs from the
// layer's in_features.
func (l *Affine[T]) Forward(input *tensor.Matrix[T]) *tensor.Matrix[T] {
	if input.Cols() != l.params.InFeatures() {
		panic(&tensor.ShapeError{
			Pkg:    "nn",
			Op:     "Affine.Forward",
			Left:   input.Shape(),
			Right:  l.params.Weight.Shape(),
			Reason: "input width must equal the layer's in_features",
		})
	}

	xw := l.matmul.Forward(MatMulOperands[T]{X: input, A: l.params.Weight})
	bb := l.repeat.Forward(RepeatInput[T]{X: l.params.Bias, N: input.Rows()})
	l.forwarded = true
	return l.add.Forward(Pair[T]{A: xw, B: bb})
}

// Backward stores dW and db and returns dx.
//
//	dx = dout . Wᵗ
//	dW = xᵗ . dout
//	db = Σ_rows dout
func (l *Affine[T]) Backward(dout *tensor.Matrix[T]) *tensor.Matrix[T] {
	if !l.forwarded {
		panicNoForward("Affine")
	}

	d := l.add.Backward(dout)
	db := l.repeat.Backward(d.B)
	g := l.matmul.Backward(d.A)

	l.grads = &Params[T]{Weight: g.A, Bias: db}
	return g.X
}

// ParamsAndGrads returns the live parameters and the latest gradients.
func (l *Affine[T]) ParamsAndGrads() (params, grads *Params[T]) {
	return l.params, l.grads
}

// InFeatures returns the number of input features.
func (l *Affine[T]) InFeatures() int {
	return l.params.InFeatures()
}

// OutFeatures returns the number of output features.
func (l *Affine[T]) OutFeatures() int {
	return l.params.OutFeatures()
}

// String returns a string representation of the layer.
func (l *Affine[T]) String() string {
	return fmt.Sprintf("Affine(in_features=%d, out_features=%d)", l.InFeatures(), l.OutFeatures())
}

var (
	_ TransformLayer[float32] = (*Affine[float32])(nil)
	_ Trainable[float64]      = (*Affine[float64])(nil)
)
