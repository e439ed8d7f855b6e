// Package dataset defines the mini-batch source the trainer consumes and
// ships two implementations: a synthetic spiral classification set and an
// in-memory slice of labelled examples.
package dataset

import (
	"github.com/born-ml/minnet/internal/tensor"
)

// MiniBatch is a group of examples processed together in one
// forward/backward/update cycle.
//
// Inputs is [batch_size, features]; Labels is [batch_size, classes] with one
// one-hot row per example.
type MiniBatch[T tensor.Float] struct {
	Inputs *tensor.Matrix[T]
	Labels *tensor.Matrix[T]
}

// Size returns the number of examples in the batch.
func (b MiniBatch[T]) Size() int {
	return b.Inputs.Rows()
}

// Dataset is a cursor over mini-batches.
//
// A training epoch is one Shuffle followed by Next until it reports false.
type Dataset[T tensor.Float] interface {
	// Shuffle reorders the examples and rewinds the cursor.
	Shuffle()

	// Next returns the next full mini-batch. It returns false once fewer than
	// a batch's worth of examples remain; the remainder is dropped.
	Next() (MiniBatch[T], bool)

	// Len returns the number of mini-batches per epoch.
	Len() int

	// TestData returns the evaluation set as a single batch.
	TestData() MiniBatch[T]
}
