// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dataset provides the mini-batch sources consumed by the trainer.
//
// Spiral generates the classic interleaved-spiral classification problem;
// Slice serves in-memory examples. Custom sources implement Dataset.
package dataset

import (
	"github.com/born-ml/minnet/internal/dataset"
	"github.com/born-ml/minnet/internal/tensor"
)

// MiniBatch is a group of inputs and one-hot labels.
type MiniBatch[T tensor.Float] = dataset.MiniBatch[T]

// Dataset is a cursor over mini-batches.
type Dataset[T tensor.Float] = dataset.Dataset[T]

// Point is a labelled 2-D spiral sample.
type Point = dataset.Point

// Spiral is a synthetic spiral classification dataset.
type Spiral[T tensor.Float] = dataset.Spiral[T]

// SpiralConfig configures the spiral generator.
type SpiralConfig = dataset.SpiralConfig

// DefaultSpiralConfig returns 3 classes of 100 points in batches of 30.
func DefaultSpiralConfig() SpiralConfig {
	return dataset.DefaultSpiralConfig()
}

// NewSpiral samples a spiral dataset.
//
// Example:
//
//	ds, err := dataset.NewSpiral[float64](dataset.SpiralConfig{Seed: 42})
func NewSpiral[T tensor.Float](cfg SpiralConfig) (*Spiral[T], error) {
	return dataset.NewSpiral[T](cfg)
}

// Slice is an in-memory dataset.
type Slice[T tensor.Float] = dataset.Slice[T]

// SliceConfig configures a Slice dataset.
type SliceConfig = dataset.SliceConfig

// NewSlice creates a dataset over inputs and one-hot labels.
func NewSlice[T tensor.Float](inputs, labels *tensor.Matrix[T], cfg SliceConfig) (*Slice[T], error) {
	return dataset.NewSlice(inputs, labels, cfg)
}
