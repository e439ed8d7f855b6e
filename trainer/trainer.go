// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package trainer runs mini-batch training and records loss and accuracy.
//
// Example:
//
//	tr, err := trainer.New(net, sgd, trainer.Config{EvalInterval: 10, Logger: log.Default()})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	history, err := tr.Fit(ctx, ds, 300)
package trainer

import (
	"github.com/born-ml/minnet/internal/nn"
	"github.com/born-ml/minnet/internal/optim"
	"github.com/born-ml/minnet/internal/tensor"
	"github.com/born-ml/minnet/internal/trainer"
)

// Config captures the knobs of the training loop.
type Config = trainer.Config

// History is the reporting record of a Fit call.
type History = trainer.History

// LossSample is the mean loss over one evaluation interval.
type LossSample = trainer.LossSample

// AccuracySample is the test accuracy after an epoch.
type AccuracySample = trainer.AccuracySample

// Trainer drives a network and an optimizer over a dataset.
type Trainer[T tensor.Float] = trainer.Trainer[T]

// New creates a Trainer.
func New[T tensor.Float](net *nn.Network[T], opt optim.Optimizer[T], cfg Config) (*Trainer[T], error) {
	return trainer.New(net, opt, cfg)
}
