package nn

import (
	"github.com/born-ml/minnet/internal/tensor"
)

// Add sums two batch matrices: out = A + B.
//
// The local derivative is the identity for both operands, so Backward hands
// dout unchanged to each branch. Add keeps no state.
type Add[T tensor.Float] struct{}

// NewAdd creates a new Add layer.
func NewAdd[T tensor.Float]() *Add[T] {
	return &Add[T]{}
}

// Forward returns in.A + in.B.
func (l *Add[T]) Forward(in Pair[T]) *tensor.Matrix[T] {
	return in.A.Add(in.B)
}

// Backward returns (dout, dout).
func (l *Add[T]) Backward(dout *tensor.Matrix[T]) Pair[T] {
	return Pair[T]{A: dout, B: dout.Clone()}
}

// Branch fans one batch matrix out to two consumers: a = b = input.
//
// The inverse of fan-out is gradient summation: dinput = da + db.
type Branch[T tensor.Float] struct{}

// NewBranch creates a new Branch layer.
func NewBranch[T tensor.Float]() *Branch[T] {
	return &Branch[T]{}
}

// Forward returns two independent copies of input.
func (l *Branch[T]) Forward(input *tensor.Matrix[T]) Pair[T] {
	return Pair[T]{A: input.Clone(), B: input.Clone()}
}

// Backward returns dout.A + dout.B.
func (l *Branch[T]) Backward(dout Pair[T]) *tensor.Matrix[T] {
	return dout.A.Add(dout.B)
}

// RepeatInput is the operand of Repeat: a vector and the number of rows to
// replicate it into.
type RepeatInput[T tensor.Float] struct {
	X *tensor.Vector[T]
	N int
}

// Repeat broadcasts a vector into an N-row matrix.
//
// The inverse of broadcast is reduction, so Backward sums dout over the
// batch axis. Repeat caches N to validate the incoming gradient.
type Repeat[T tensor.Float] struct {
	n    int
	cols int
}

// NewRepeat creates a new Repeat layer.
func NewRepeat[T tensor.Float]() *Repeat[T] {
	return &Repeat[T]{}
}

// Forward returns in.X replicated into in.N rows.
func (l *Repeat[T]) Forward(in RepeatInput[T]) *tensor.Matrix[T] {
	l.n = in.N
	l.cols = in.X.Len()
	return tensor.Broadcast(in.X, in.N)
}

// Backward returns dout summed over rows.
func (l *Repeat[T]) Backward(dout *tensor.Matrix[T]) *tensor.Vector[T] {
	if l.n == 0 {
		panicNoForward("Repeat")
	}
	checkGradShape("Repeat.Backward", tensor.Shape{l.n, l.cols}, dout.Shape())
	return dout.SumRows()
}

// Sum reduces a batch matrix over its rows: (M, N) -> (N).
//
// The inverse of reduction is broadcast; Backward needs the batch size M
// cached by Forward.
type Sum[T tensor.Float] struct {
	n    int
	cols int
}

// NewSum creates a new Sum layer.
func NewSum[T tensor.Float]() *Sum[T] {
	return &Sum[T]{}
}

// Forward returns input summed over its rows.
func (l *Sum[T]) Forward(input *tensor.Matrix[T]) *tensor.Vector[T] {
	l.n = input.Rows()
	l.cols = input.Cols()
	return input.SumRows()
}

// Backward broadcasts dout back to the cached batch size.
func (l *Sum[T]) Backward(dout *tensor.Vector[T]) *tensor.Matrix[T] {
	if l.n == 0 {
		panicNoForward("Sum")
	}
	checkGradShape("Sum.Backward", tensor.Shape{l.cols}, dout.Shape())
	return tensor.Broadcast(dout, l.n)
}

// MatMulOperands holds the two operands of MatMul, or their gradients.
type MatMulOperands[T tensor.Float] struct {
	X *tensor.Matrix[T]
	A *tensor.Matrix[T]
}

// MatMul multiplies a batch by a matrix: out = X . A.
//
//	dX = dout . Aᵗ
//	dA = Xᵗ . dout
//
// Both operands are cached by Forward.
type MatMul[T tensor.Float] struct {
	x *tensor.Matrix[T]
	a *tensor.Matrix[T]
}

// NewMatMul creates a new MatMul layer.
func NewMatMul[T tensor.Float]() *MatMul[T] {
	return &MatMul[T]{}
}

// Forward returns in.X . in.A.
func (l *MatMul[T]) Forward(in MatMulOperands[T]) *tensor.Matrix[T] {
	l.x = in.X
	l.a = in.A
	return in.X.Dot(in.A)
}

// Backward returns the gradients with respect to X and A.
func (l *MatMul[T]) Backward(dout *tensor.Matrix[T]) MatMulOperands[T] {
	if l.x == nil || l.a == nil {
		panicNoForward("MatMul")
	}
	checkGradShape("MatMul.Backward", tensor.Shape{l.x.Rows(), l.a.Cols()}, dout.Shape())
	return MatMulOperands[T]{
		X: dout.Dot(l.a.Transpose()),
		A: l.x.Transpose().Dot(dout),
	}
}

// Compile-time checks that the structural primitives satisfy Layer.
var (
	_ Layer[Pair[float32], *tensor.Matrix[float32], Pair[float32]]                     = (*Add[float32])(nil)
	_ Layer[*tensor.Matrix[float32], Pair[float32], *tensor.Matrix[float32]]           = (*Branch[float32])(nil)
	_ Layer[RepeatInput[float32], *tensor.Matrix[float32], *tensor.Vector[float32]]    = (*Repeat[float32])(nil)
	_ Layer[*tensor.Matrix[float32], *tensor.Vector[float32], *tensor.Matrix[float32]] = (*Sum[float32])(nil)
	_ Layer[MatMulOperands[float32], *tensor.Matrix[float32], MatMulOperands[float32]] = (*MatMul[float32])(nil)
)
