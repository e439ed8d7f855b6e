// Package trainer runs mini-batch training epochs over a Dataset and
// records the loss and accuracy history.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/born-ml/minnet/internal/dataset"
	"github.com/born-ml/minnet/internal/nn"
	"github.com/born-ml/minnet/internal/optim"
	"github.com/born-ml/minnet/internal/tensor"
)

// Config captures the knobs of the training loop.
type Config struct {
	EvalInterval int         // Iterations averaged into one loss sample
	Logger       *log.Logger // Progress output (default: discarded)
}

// LossSample is the mean loss over one evaluation interval.
type LossSample struct {
	Epoch        int     // 1-based epoch in which the interval closed
	Iteration    int     // Iterations run so far across all epochs
	Loss         float64 // Mean loss over the interval
	AvgComputeMS float64 // Mean forward+backward+update time per iteration
}

// AccuracySample is the test accuracy after an epoch; epoch 0 is the
// baseline measured before training.
type AccuracySample struct {
	Epoch    int
	Accuracy float64
}

// History is the reporting record of a Fit call.
type History struct {
	Losses     []LossSample
	Accuracies []AccuracySample
}

// FinalAccuracy returns the latest accuracy sample, or 0 if there is none.
func (h *History) FinalAccuracy() float64 {
	if len(h.Accuracies) == 0 {
		return 0
	}
	return h.Accuracies[len(h.Accuracies)-1].Accuracy
}

// Trainer drives a network and an optimizer over a dataset.
//
// Example:
//
//	tr, err := trainer.New(net, sgd, trainer.Config{EvalInterval: 10, Logger: log.Default()})
//	history, err := tr.Fit(ctx, ds, 300)
type Trainer[T tensor.Float] struct {
	net    *nn.Network[T]
	opt    optim.Optimizer[T]
	cfg    Config
	logger *log.Logger
}

// New creates a Trainer.
func New[T tensor.Float](net *nn.Network[T], opt optim.Optimizer[T], cfg Config) (*Trainer[T], error) {
	if net == nil {
		return nil, errors.New("trainer: network is nil")
	}
	if opt == nil {
		return nil, errors.New("trainer: optimizer is nil")
	}
	if cfg.EvalInterval <= 0 {
		return nil, fmt.Errorf("trainer: eval interval must be > 0 (got %d)", cfg.EvalInterval)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Trainer[T]{net: net, opt: opt, cfg: cfg, logger: logger}, nil
}

// Fit trains for maxEpoch epochs.
//
// The test accuracy is measured once before the first epoch and once after
// every epoch. Every EvalInterval iterations the mean loss of the interval is
// recorded; the interval carries over epoch boundaries.
//
// Cancellation is checked between mini-batches. On cancellation Fit returns
// the history collected so far together with ctx.Err().
func (tr *Trainer[T]) Fit(ctx context.Context, ds dataset.Dataset[T], maxEpoch int) (*History, error) {
	if maxEpoch <= 0 {
		return nil, fmt.Errorf("trainer: max epoch must be > 0 (got %d)", maxEpoch)
	}

	history := &History{}
	maxIter := ds.Len()
	start := time.Now()
	iteration := 0
	var window Window

	history.Accuracies = append(history.Accuracies, AccuracySample{Epoch: 0, Accuracy: tr.Accuracy(ds.TestData())})

	for epoch := 1; epoch <= maxEpoch; epoch++ {
		ds.Shuffle()

		for iter := 0; ; iter++ {
			if err := ctx.Err(); err != nil {
				return history, err
			}
			batch, ok := ds.Next()
			if !ok {
				break
			}

			stepStart := time.Now()
			loss := tr.net.Forward(batch.Inputs, batch.Labels)
			tr.net.Backward(1)
			tr.net.Update(tr.opt)
			iteration++

			window.Record(float64(loss), time.Since(stepStart))
			if window.Steps() == tr.cfg.EvalInterval {
				snap := window.Snapshot()
				tr.logger.Printf("| epoch %5d | iter %5d / %5d | time %.5f [s] | loss %.5f",
					epoch, iter, maxIter, time.Since(start).Seconds(), snap.MeanLoss)
				history.Losses = append(history.Losses, LossSample{
					Epoch:        epoch,
					Iteration:    iteration,
					Loss:         snap.MeanLoss,
					AvgComputeMS: snap.AvgComputeMS,
				})
			}
		}

		acc := tr.Accuracy(ds.TestData())
		tr.logger.Printf("| epoch %5d | acc %.5f", epoch, acc)
		history.Accuracies = append(history.Accuracies, AccuracySample{Epoch: epoch, Accuracy: acc})
	}

	return history, nil
}

// Accuracy returns the fraction of rows in batch whose highest-scoring class
// matches the one-hot label.
//
// Accuracy runs the network forward and so overwrites the layers' caches.
func (tr *Trainer[T]) Accuracy(batch dataset.MiniBatch[T]) float64 {
	n := batch.Inputs.Rows()
	predicted := tr.net.Predict(batch.Inputs).OneHotRows()
	correct := predicted.Mul(batch.Labels).Sum()
	return float64(correct) / float64(n)
}

// Network returns the trained network.
func (tr *Trainer[T]) Network() *nn.Network[T] {
	return tr.net
}
