package nn

import (
	"github.com/born-ml/minnet/internal/tensor"
)

// TinyDelta is the probability floor used inside the loss logarithm.
//
// Probabilities below TinyDelta are replaced by it, so ln never sees zero.
const TinyDelta = 1e-10

// LossInput holds the operands of SoftmaxCrossEntropy: raw class scores and
// one-hot labels, both [batch_size, num_classes].
type LossInput[T tensor.Float] struct {
	Scores *tensor.Matrix[T]
	Labels *tensor.Matrix[T]
}

// SoftmaxCrossEntropy fuses row softmax with the cross-entropy loss.
//
// Mathematical Formulation:
//
//	y = Softmax(scores)             (per row, max-subtracted)
//	L = -(1/batch) Σ_rows Σ_k t_k ln(y_k)
//
// Gradient (Backward):
//
//	∂L/∂scores = (y - t) * dout / batch
//
// Forward caches y and t.
//
// Usage:
//
//	loss := nn.NewSoftmaxCrossEntropy[float64]()
//	l := loss.Forward(nn.LossInput[float64]{Scores: scores, Labels: labels})
//	dscores := loss.Backward(1)
type SoftmaxCrossEntropy[T tensor.Float] struct {
	y *tensor.Matrix[T]
	t *tensor.Matrix[T]
}

// NewSoftmaxCrossEntropy creates a new loss layer.
func NewSoftmaxCrossEntropy[T tensor.Float]() *SoftmaxCrossEntropy[T] {
	return &SoftmaxCrossEntropy[T]{}
}

// Forward returns the mean cross-entropy of the batch.
//
// Panics with a *tensor.ShapeError if scores and labels differ in shape.
func (l *SoftmaxCrossEntropy[T]) Forward(in LossInput[T]) T {
	if !in.Scores.SameShape(in.Labels) {
		panic(&tensor.ShapeError{
			Pkg:    "nn",
			Op:     "SoftmaxCrossEntropy.Forward",
			Left:   in.Scores.Shape(),
			Right:  in.Labels.Shape(),
			Reason: "scores and labels must have the same shape",
		})
	}

	l.y = Softmax(in.Scores)
	l.t = in.Labels

	logs := l.y.Map(func(y T) T {
		if y < TinyDelta {
			y = TinyDelta
		}
		return tensor.Log(y)
	})
	return -logs.Mul(l.t).Sum() / T(in.Scores.Rows())
}

// Backward returns (y - t) * dout / batch.
func (l *SoftmaxCrossEntropy[T]) Backward(dout T) *tensor.Matrix[T] {
	if l.y == nil {
		panicNoForward("SoftmaxCrossEntropy")
	}
	batch := T(l.y.Rows())
	return l.y.Sub(l.t).Scale(dout / batch)
}

// Probabilities returns the softmax output cached by the latest Forward, or
// nil before the first Forward.
func (l *SoftmaxCrossEntropy[T]) Probabilities() *tensor.Matrix[T] {
	return l.y
}

// Softmax normalizes each row of scores into a probability distribution.
//
// The row maximum is subtracted before exponentiation, so large scores do not
// overflow. Rows are processed in parallel.
func Softmax[T tensor.Float](scores *tensor.Matrix[T]) *tensor.Matrix[T] {
	return scores.MapRows(softmaxRow[T])
}

func softmaxRow[T tensor.Float](row *tensor.Vector[T]) *tensor.Vector[T] {
	mx := row.Max()
	e := row.Map(func(x T) T { return tensor.Exp(x - mx) })
	return e.DivScalar(e.Sum())
}

var _ Layer[LossInput[float32], float32, *tensor.Matrix[float32]] = (*SoftmaxCrossEntropy[float32])(nil)
