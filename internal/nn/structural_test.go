package nn_test

import (
	"testing"

	"github.com/born-ml/minnet/internal/nn"
	"github.com/born-ml/minnet/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	add := nn.NewAdd[float64]()
	a := tensor.MustMatrix([]float64{1, 2, 3, 4}, 2, 2)
	b := tensor.MustMatrix([]float64{10, 20, 30, 40}, 2, 2)

	out := add.Forward(nn.Pair[float64]{A: a, B: b})
	assert.Equal(t, []float64{11, 22, 33, 44}, out.Data())

	dout := tensor.MustMatrix([]float64{0.5, -1, 2, 3}, 2, 2)
	d := add.Backward(dout)
	assert.Equal(t, dout.Data(), d.A.Data())
	assert.Equal(t, dout.Data(), d.B.Data())

	d.B.Set(99, 0, 0)
	assert.Equal(t, 0.5, d.A.At(0, 0), "gradients for A and B must not alias")
}

func TestBranch(t *testing.T) {
	branch := nn.NewBranch[float64]()
	x := tensor.MustMatrix([]float64{1, 2, 3, 4, 5, 6}, 2, 3)

	out := branch.Forward(x)
	assert.Equal(t, x.Data(), out.A.Data())
	assert.Equal(t, x.Data(), out.B.Data())

	da := tensor.MustMatrix([]float64{1, 1, 1, 2, 2, 2}, 2, 3)
	db := tensor.MustMatrix([]float64{0, 1, 2, 3, 4, 5}, 2, 3)
	dx := branch.Backward(nn.Pair[float64]{A: da, B: db})
	assert.Equal(t, []float64{1, 2, 3, 5, 6, 7}, dx.Data())
}

func TestRepeat(t *testing.T) {
	repeat := nn.NewRepeat[float64]()
	x := tensor.VectorFromSlice([]float64{1, 2, 3})

	out := repeat.Forward(nn.RepeatInput[float64]{X: x, N: 2})
	require.Equal(t, tensor.Shape{2, 3}, out.Shape())
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, out.Data())

	dout := tensor.MustMatrix([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	dx := repeat.Backward(dout)
	assert.Equal(t, []float64{5, 7, 9}, dx.Data())
}

func TestRepeat_WrongGradShape(t *testing.T) {
	repeat := nn.NewRepeat[float64]()
	repeat.Forward(nn.RepeatInput[float64]{X: tensor.OnesVector[float64](3), N: 2})

	assert.PanicsWithError(t, "nn.Repeat.Backward: gradient shape must match the forward output ([2 3] vs [3 3])", func() {
		repeat.Backward(tensor.Ones[float64](3, 3))
	})
}

func TestSum(t *testing.T) {
	sum := nn.NewSum[float64]()
	x := tensor.MustMatrix([]float64{1, 2, 3, 4, 5, 6}, 2, 3)

	out := sum.Forward(x)
	assert.Equal(t, []float64{5, 7, 9}, out.Data())

	dout := tensor.VectorFromSlice([]float64{1, 2, 3})
	dx := sum.Backward(dout)
	require.Equal(t, tensor.Shape{2, 3}, dx.Shape())
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, dx.Data())
}

// Branch and Sum are each other's duals: fan-out sums gradients, reduction
// broadcasts them.
func TestBranchSumDuality(t *testing.T) {
	x := randMatrix(4, 3, 7)

	sum := nn.NewSum[float64]()
	sum.Forward(x)
	dout := tensor.VectorFromSlice([]float64{0.1, -0.2, 0.3})
	dx := sum.Backward(dout)
	assert.Equal(t, tensor.Broadcast(dout, 4).Data(), dx.Data())

	branch := nn.NewBranch[float64]()
	branch.Forward(x)
	da := randMatrix(4, 3, 8)
	db := randMatrix(4, 3, 9)
	assert.Equal(t, da.Add(db).Data(), branch.Backward(nn.Pair[float64]{A: da, B: db}).Data())
}

func TestMatMul(t *testing.T) {
	matmul := nn.NewMatMul[float64]()
	x := tensor.MustMatrix([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	a := tensor.MustMatrix([]float64{1, 2, 3, 4, 5, 6}, 3, 2)

	out := matmul.Forward(nn.MatMulOperands[float64]{X: x, A: a})
	assert.Equal(t, []float64{22, 28, 49, 64}, out.Data())

	g := matmul.Backward(tensor.MustMatrix([]float64{7, 8, 9, 10}, 2, 2))
	assert.Equal(t, []float64{23, 53, 83, 29, 67, 105}, g.X.Data())
	assert.Equal(t, []float64{43, 48, 59, 66, 75, 84}, g.A.Data())
}

func TestMatMul_GradientCheck(t *testing.T) {
	x := randMatrix(4, 3, 1)
	a := randMatrix(3, 5, 2)
	w := randMatrix(4, 5, 3)

	matmul := nn.NewMatMul[float64]()
	loss := func() float64 {
		return weightedSum(matmul.Forward(nn.MatMulOperands[float64]{X: x, A: a}), w)
	}

	loss()
	g := matmul.Backward(w)

	checkGradient(t, "MatMul dX", g.X.Data(), x.Data(), loss)
	checkGradient(t, "MatMul dA", g.A.Data(), a.Data(), loss)
}

func TestRepeatSum_GradientCheck(t *testing.T) {
	v := tensor.VectorFromSlice([]float64{0.3, -1.2, 2})
	w := randMatrix(5, 3, 4)

	repeat := nn.NewRepeat[float64]()
	loss := func() float64 {
		return weightedSum(repeat.Forward(nn.RepeatInput[float64]{X: v, N: 5}), w)
	}
	loss()
	checkGradient(t, "Repeat", repeat.Backward(w).Data(), v.Data(), loss)

	x := randMatrix(5, 3, 5)
	wv := tensor.VectorFromSlice([]float64{0.5, 2, -1})
	sum := nn.NewSum[float64]()
	sumLoss := func() float64 {
		return sum.Forward(x).Mul(wv).Sum()
	}
	sumLoss()
	checkGradient(t, "Sum", sum.Backward(wv).Data(), x.Data(), sumLoss)
}

func TestBackwardBeforeForward(t *testing.T) {
	tests := []struct {
		name string
		want string
		call func()
	}{
		{"Repeat", "nn.Repeat.Backward: called before Forward", func() {
			nn.NewRepeat[float64]().Backward(tensor.Ones[float64](1, 1))
		}},
		{"Sum", "nn.Sum.Backward: called before Forward", func() {
			nn.NewSum[float64]().Backward(tensor.OnesVector[float64](1))
		}},
		{"MatMul", "nn.MatMul.Backward: called before Forward", func() {
			nn.NewMatMul[float64]().Backward(tensor.Ones[float64](1, 1))
		}},
		{"Affine", "nn.Affine.Backward: called before Forward", func() {
			params := nn.NewParams(tensor.Ones[float64](1, 1), tensor.ZerosVector[float64](1))
			nn.NewAffine(params).Backward(tensor.Ones[float64](1, 1))
		}},
		{"Sigmoid", "nn.Sigmoid.Backward: called before Forward", func() {
			nn.NewSigmoid[float32]().Backward(tensor.Ones[float32](1, 1))
		}},
		{"ReLU", "nn.ReLU.Backward: called before Forward", func() {
			nn.NewReLU[float32]().Backward(tensor.Ones[float32](1, 1))
		}},
		{"SoftmaxCrossEntropy", "nn.SoftmaxCrossEntropy.Backward: called before Forward", func() {
			nn.NewSoftmaxCrossEntropy[float64]().Backward(1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PanicsWithValue(t, tt.want, tt.call)
		})
	}
}
