package dataset

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/minnet/internal/tensor"
)

// Slice is an in-memory dataset over fixed inputs and one-hot labels.
//
// With shuffling disabled the batch order is the row order, which makes
// training runs reproducible. The test set is every example.
type Slice[T tensor.Float] struct {
	inputs    *tensor.Matrix[T]
	labels    *tensor.Matrix[T]
	order     []int
	batchSize int
	cursor    int
	rng       *rand.Rand
}

// SliceConfig configures a Slice dataset.
type SliceConfig struct {
	BatchSize int    // Examples per mini-batch
	Shuffle   bool   // Reorder examples on every Shuffle call
	Seed      uint64 // Shuffle seed (default: 0, a random seed)
}

// NewSlice creates a dataset over inputs and labels, which must have the
// same number of rows.
func NewSlice[T tensor.Float](inputs, labels *tensor.Matrix[T], cfg SliceConfig) (*Slice[T], error) {
	if inputs.Rows() != labels.Rows() {
		return nil, fmt.Errorf("slice: %d inputs but %d labels", inputs.Rows(), labels.Rows())
	}
	if cfg.BatchSize <= 0 || cfg.BatchSize > inputs.Rows() {
		return nil, fmt.Errorf("slice: batch size must be in [1, %d] (got %d)", inputs.Rows(), cfg.BatchSize)
	}

	order := make([]int, inputs.Rows())
	for i := range order {
		order[i] = i
	}

	s := &Slice[T]{
		inputs:    inputs,
		labels:    labels,
		order:     order,
		batchSize: cfg.BatchSize,
	}
	if cfg.Shuffle {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64() //nolint:gosec // G404: shuffling, not security
		}
		s.rng = rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // G404: shuffling, not security
	}
	return s, nil
}

// Shuffle reorders the examples when shuffling is enabled and rewinds the
// cursor.
func (s *Slice[T]) Shuffle() {
	if s.rng != nil {
		s.rng.Shuffle(len(s.order), func(i, j int) {
			s.order[i], s.order[j] = s.order[j], s.order[i]
		})
	}
	s.cursor = 0
}

// Next returns the next full mini-batch.
func (s *Slice[T]) Next() (MiniBatch[T], bool) {
	if len(s.order)-s.cursor < s.batchSize {
		return MiniBatch[T]{}, false
	}
	idx := s.order[s.cursor : s.cursor+s.batchSize]
	s.cursor += s.batchSize
	return MiniBatch[T]{Inputs: gather(s.inputs, idx), Labels: gather(s.labels, idx)}, true
}

// Len returns the number of full mini-batches per epoch.
func (s *Slice[T]) Len() int {
	return len(s.order) / s.batchSize
}

// TestData returns every example as one batch.
func (s *Slice[T]) TestData() MiniBatch[T] {
	return MiniBatch[T]{Inputs: s.inputs.Clone(), Labels: s.labels.Clone()}
}

// gather copies the rows idx of m into a new matrix.
func gather[T tensor.Float](m *tensor.Matrix[T], idx []int) *tensor.Matrix[T] {
	out := tensor.Zeros[T](len(idx), m.Cols())
	cols := m.Cols()
	for i, r := range idx {
		copy(out.Data()[i*cols:(i+1)*cols], m.Data()[r*cols:(r+1)*cols])
	}
	return out
}

var _ Dataset[float64] = (*Slice[float64])(nil)
