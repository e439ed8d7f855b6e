package nn_test

import (
	"testing"

	"github.com/born-ml/minnet/internal/nn"
	"github.com/born-ml/minnet/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepUpdater is a plain gradient step, enough to drive Network.Update.
type stepUpdater struct {
	lr    float64
	calls int
}

func (u *stepUpdater) Update(params, grads *nn.Params[float64]) {
	u.calls++
	params.Weight.Axpy(-u.lr, grads.Weight)
	params.Bias.Axpy(-u.lr, grads.Bias)
}

func newTestNetwork(t *testing.T, seed uint64) *nn.Network[float64] {
	t.Helper()
	net, err := nn.NewNetwork[float64](2, []int{10}, 3, nn.ActivationSigmoid, nn.Config{WeightInitStdDev: 0.5, Seed: seed})
	require.NoError(t, err)
	return net
}

func TestNewNetwork(t *testing.T) {
	net, err := nn.NewNetwork[float64](2, []int{10, 5}, 3, nn.ActivationReLU, nn.Config{Seed: 1})
	require.NoError(t, err)

	require.Equal(t, 5, net.Len())
	assert.IsType(t, &nn.Affine[float64]{}, net.Layer(0))
	assert.IsType(t, &nn.ReLU[float64]{}, net.Layer(1))
	assert.IsType(t, &nn.Affine[float64]{}, net.Layer(2))
	assert.IsType(t, &nn.ReLU[float64]{}, net.Layer(3))
	assert.IsType(t, &nn.Affine[float64]{}, net.Layer(4))

	params := net.Parameters()
	require.Len(t, params, 3)
	assert.Equal(t, tensor.Shape{2, 10}, params[0].Weight.Shape())
	assert.Equal(t, tensor.Shape{10, 5}, params[1].Weight.Shape())
	assert.Equal(t, tensor.Shape{5, 3}, params[2].Weight.Shape())
	for _, p := range params {
		assert.Equal(t, 0.0, p.Bias.Sum(), "biases start at zero")
	}

	assert.Panics(t, func() { net.Layer(5) })
}

func TestNewNetwork_NoHidden(t *testing.T) {
	net, err := nn.NewNetwork[float32](4, nil, 2, nn.ActivationSigmoid, nn.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, net.Len())
	assert.Equal(t, tensor.Shape{3, 2}, net.Predict(tensor.Ones[float32](3, 4)).Shape())
}

func TestNewNetwork_Errors(t *testing.T) {
	tests := []struct {
		name   string
		in     int
		hidden []int
		out    int
		act    nn.Activation
		cfg    nn.Config
	}{
		{"negative std", 2, []int{4}, 3, nn.ActivationSigmoid, nn.Config{WeightInitStdDev: -1}},
		{"zero input", 0, []int{4}, 3, nn.ActivationSigmoid, nn.DefaultConfig()},
		{"zero output", 2, []int{4}, 0, nn.ActivationSigmoid, nn.DefaultConfig()},
		{"zero hidden", 2, []int{4, 0}, 3, nn.ActivationSigmoid, nn.DefaultConfig()},
		{"unknown activation", 2, []int{4}, 3, nn.Activation(9), nn.DefaultConfig()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := nn.NewNetwork[float64](tt.in, tt.hidden, tt.out, tt.act, tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestNetwork_GradientCheck(t *testing.T) {
	net := newTestNetwork(t, 42)
	x := randMatrix(6, 2, 43)
	labels := oneHot([]int{0, 1, 2, 2, 1, 0}, 3)

	loss := func() float64 { return net.Forward(x, labels) }
	loss()
	dx := net.Backward(1)
	checkGradient(t, "Network dx", dx.Data(), x.Data(), loss)

	for _, layerIdx := range []int{0, 2} {
		affine, ok := net.Layer(layerIdx).(*nn.Affine[float64])
		require.True(t, ok)

		loss()
		net.Backward(1)
		params, grads := affine.ParamsAndGrads()
		dW := grads.Weight.Clone()
		db := grads.Bias.Clone()

		checkGradient(t, "Network dW", dW.Data(), params.Weight.Data(), loss)
		checkGradient(t, "Network db", db.Data(), params.Bias.Data(), loss)
	}
}

func TestNetwork_Update(t *testing.T) {
	net := newTestNetwork(t, 5)
	x := randMatrix(8, 2, 6)
	labels := oneHot([]int{0, 1, 2, 0, 1, 2, 0, 1}, 3)

	before := net.Forward(x, labels)
	net.Backward(1)
	upd := &stepUpdater{lr: 0.5}
	net.Update(upd)

	assert.Equal(t, 2, upd.calls, "one update per trainable layer")
	assert.Less(t, net.Forward(x, labels), before, "a small gradient step lowers the loss")
}

// One forward+backward+update cycle from a fixed seed is bit-for-bit
// reproducible.
func TestNetwork_Deterministic(t *testing.T) {
	x := randMatrix(30, 2, 100)
	labels := oneHot([]int{
		0, 1, 2, 0, 1, 2, 0, 1, 2, 0,
		1, 2, 0, 1, 2, 0, 1, 2, 0, 1,
		2, 0, 1, 2, 0, 1, 2, 0, 1, 2,
	}, 3)

	run := func() (float64, map[string][]float64) {
		net := newTestNetwork(t, 2024)
		l := net.Forward(x, labels)
		net.Backward(1)
		net.Update(&stepUpdater{lr: 1})
		return l, net.StateDict()
	}

	l1, s1 := run()
	l2, s2 := run()
	assert.Equal(t, l1, l2)
	assert.Equal(t, s1, s2)

	net := newTestNetwork(t, 2025)
	assert.NotEqual(t, s1["0.weight"], net.StateDict()["0.weight"], "a different seed draws different weights")
}

func TestNetwork_StateDict(t *testing.T) {
	src := newTestNetwork(t, 1)
	dst := newTestNetwork(t, 2)
	x := randMatrix(4, 2, 3)

	state := src.StateDict()
	assert.Len(t, state, 4)
	assert.Contains(t, state, "0.weight")
	assert.Contains(t, state, "2.bias")

	require.NoError(t, dst.LoadStateDict(state))
	assert.Equal(t, src.Predict(x).Data(), dst.Predict(x).Data())

	delete(state, "2.bias")
	assert.Error(t, dst.LoadStateDict(state))

	state = src.StateDict()
	state["0.weight"] = state["0.weight"][:3]
	assert.Error(t, dst.LoadStateDict(state))
}

func TestNewSequential(t *testing.T) {
	a := tensor.MustMatrix([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
	net := nn.NewSequential(nn.NewSoftmaxCrossEntropy[float64](),
		nn.NewAffine(nn.NewParams(a, tensor.VectorFromSlice([]float64{7, 8}))),
		nn.NewReLU[float64](),
	)

	scores := net.Predict(tensor.MustMatrix([]float64{1, 2, 3, 4, 5, 6}, 2, 3))
	assert.Equal(t, []float64{29, 36, 56, 72}, scores.Data())
	assert.Same(t, net.Loss(), net.Loss())
	assert.Len(t, net.Parameters(), 1)
}
