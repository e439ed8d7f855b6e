package trainer_test

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"github.com/born-ml/minnet/internal/dataset"
	"github.com/born-ml/minnet/internal/nn"
	"github.com/born-ml/minnet/internal/optim"
	"github.com/born-ml/minnet/internal/tensor"
	"github.com/born-ml/minnet/internal/trainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSpiralSetup(t *testing.T, seed uint64) (*nn.Network[float64], *optim.SGD[float64], *dataset.Spiral[float64]) {
	t.Helper()

	ds, err := dataset.NewSpiral[float64](dataset.SpiralConfig{Seed: seed})
	require.NoError(t, err)
	net, err := nn.NewNetwork[float64](2, []int{10}, 3, nn.ActivationSigmoid, nn.Config{Seed: seed})
	require.NoError(t, err)
	sgd, err := optim.NewSGD[float64](optim.SGDConfig{LR: 1.0})
	require.NoError(t, err)
	return net, sgd, ds
}

// Training on the 3-class spiral learns well above chance, and the loss
// falls over the early part of training.
func TestFit_Spiral(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full spiral training in short mode")
	}

	net, sgd, ds := newSpiralSetup(t, 17)
	tr, err := trainer.New[float64](net, sgd, trainer.Config{EvalInterval: 10})
	require.NoError(t, err)

	history, err := tr.Fit(context.Background(), ds, 300)
	require.NoError(t, err)

	// 10 mini-batches per epoch, one loss sample per 10 iterations.
	require.Len(t, history.Losses, 300)
	require.Len(t, history.Accuracies, 301)
	assert.Equal(t, 0, history.Accuracies[0].Epoch)
	assert.Equal(t, 3000, history.Losses[299].Iteration)

	// Per-interval losses are noisy under reshuffling; compare means over
	// blocks of 30 intervals.
	blocks := make([]float64, 0, 5)
	for b := 0; b < 5; b++ {
		sum := 0.0
		for _, s := range history.Losses[b*30 : (b+1)*30] {
			sum += s.Loss
		}
		blocks = append(blocks, sum/30)
	}
	for i := 1; i < len(blocks); i++ {
		assert.Less(t, blocks[i], blocks[i-1], "block %d mean loss must fall", i)
	}

	assert.Greater(t, history.FinalAccuracy(), 0.8, "final accuracy must be well above chance (1/3)")
}

// Full-batch training without shuffling is plain gradient descent: every
// loss sample is lower than the one before.
func TestFit_FullBatchMonotonic(t *testing.T) {
	spiral, err := dataset.NewSpiral[float64](dataset.SpiralConfig{Seed: 5})
	require.NoError(t, err)
	test := spiral.TestData()
	ds, err := dataset.NewSlice(test.Inputs, test.Labels, dataset.SliceConfig{BatchSize: test.Size()})
	require.NoError(t, err)

	net, err := nn.NewNetwork[float64](2, []int{10}, 3, nn.ActivationSigmoid, nn.Config{Seed: 5})
	require.NoError(t, err)
	sgd, err := optim.NewSGD[float64](optim.SGDConfig{LR: 1.0})
	require.NoError(t, err)

	tr, err := trainer.New[float64](net, sgd, trainer.Config{EvalInterval: 1})
	require.NoError(t, err)
	history, err := tr.Fit(context.Background(), ds, 20)
	require.NoError(t, err)

	require.Len(t, history.Losses, 20)
	for i := 1; i < len(history.Losses); i++ {
		assert.Less(t, history.Losses[i].Loss, history.Losses[i-1].Loss, "interval %d", i)
	}
}

func TestFit_Logging(t *testing.T) {
	net, sgd, ds := newSpiralSetup(t, 3)
	var buf bytes.Buffer
	tr, err := trainer.New[float64](net, sgd, trainer.Config{EvalInterval: 5, Logger: log.New(&buf, "", 0)})
	require.NoError(t, err)

	history, err := tr.Fit(context.Background(), ds, 2)
	require.NoError(t, err)
	assert.Len(t, history.Losses, 4)
	assert.Len(t, history.Accuracies, 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "| epoch     1 | iter     4 /    10 | time "), lines[0])
	assert.Contains(t, lines[0], "[s] | loss ")
	assert.True(t, strings.HasPrefix(lines[2], "| epoch     1 | acc "), lines[2])
}

func TestFit_Cancelled(t *testing.T) {
	net, sgd, ds := newSpiralSetup(t, 4)
	tr, err := trainer.New[float64](net, sgd, trainer.Config{EvalInterval: 10})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	history, err := tr.Fit(ctx, ds, 5)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, history)
	assert.Len(t, history.Accuracies, 1, "only the baseline is recorded")
	assert.Empty(t, history.Losses)
}

func TestNew_Errors(t *testing.T) {
	net, sgd, ds := newSpiralSetup(t, 1)

	_, err := trainer.New[float64](net, sgd, trainer.Config{})
	assert.Error(t, err)
	_, err = trainer.New[float64](nil, sgd, trainer.Config{EvalInterval: 1})
	assert.Error(t, err)
	_, err = trainer.New[float64](net, nil, trainer.Config{EvalInterval: 1})
	assert.Error(t, err)

	tr, err := trainer.New[float64](net, sgd, trainer.Config{EvalInterval: 1})
	require.NoError(t, err)
	_, err = tr.Fit(context.Background(), ds, 0)
	assert.Error(t, err)
	assert.Same(t, net, tr.Network())
}

func TestAccuracy(t *testing.T) {
	// Identity weights: the predicted class is the largest input.
	w := tensor.MustMatrix([]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, 3, 3)
	net := nn.NewSequential(nn.NewSoftmaxCrossEntropy[float64](),
		nn.NewAffine(nn.NewParams(w, tensor.ZerosVector[float64](3))))
	sgd, err := optim.NewSGD[float64](optim.SGDConfig{})
	require.NoError(t, err)
	tr, err := trainer.New[float64](net, sgd, trainer.Config{EvalInterval: 1})
	require.NoError(t, err)

	batch := dataset.MiniBatch[float64]{
		Inputs: tensor.MustMatrix([]float64{
			0.9, 0.1, 0,
			0.2, 0.7, 0.1,
			0.1, 0.1, 0.8,
			0.6, 0.3, 0.1,
		}, 4, 3),
		Labels: tensor.MustMatrix([]float64{
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
			0, 1, 0,
		}, 4, 3),
	}
	assert.InDelta(t, 0.75, tr.Accuracy(batch), 1e-12)
}
