package tensor

import (
	"sync"

	"github.com/born-ml/minnet/internal/parallel"
)

var (
	rowCfgMu sync.RWMutex
	rowCfg   = parallel.DefaultConfig()
)

// SetParallelConfig replaces the worker configuration used by row-wise
// operations (MapRows, ArgmaxRows, OneHotRows). Results do not depend on it.
func SetParallelConfig(cfg parallel.Config) {
	rowCfgMu.Lock()
	defer rowCfgMu.Unlock()
	rowCfg = cfg
}

func parallelConfig() parallel.Config {
	rowCfgMu.RLock()
	defer rowCfgMu.RUnlock()
	return rowCfg
}

// MapRows applies f to every row and stacks the results.
//
// f receives a copy of the row and must return a vector of the same length;
// it may be called concurrently for different rows, so it must not share
// mutable state. Panics with *ShapeError if f changes the row length.
//
// Example:
//
//	probs := scores.MapRows(func(row *tensor.Vector[float32]) *tensor.Vector[float32] {
//	    return nn.Softmax(row)
//	})
func (m *Matrix[T]) MapRows(f func(row *Vector[T]) *Vector[T]) *Matrix[T] {
	results := make([]*Vector[T], m.rows)
	parallel.For(m.rows, func(i int) {
		results[i] = f(m.Row(i))
	}, parallelConfig())

	// Validate after the fan-out so the panic happens on the caller's goroutine.
	out := newMatrix[T](m.rows, m.cols)
	for i, row := range results {
		if row == nil || row.Len() != m.cols {
			got := Shape{0}
			if row != nil {
				got = row.Shape()
			}
			shapePanic("MapRows", Shape{m.cols}, got, "row function must preserve the row length")
		}
		copy(out.data[i*m.cols:(i+1)*m.cols], row.data)
	}
	return out
}

// ArgmaxRows returns, for every row, the column index of its largest element.
func (m *Matrix[T]) ArgmaxRows() []int {
	idx := make([]int, m.rows)
	parallel.For(m.rows, func(i int) {
		idx[i] = argmax(m.data[i*m.cols : (i+1)*m.cols])
	}, parallelConfig())
	return idx
}

// OneHotRows converts every row into a one-hot row at its argmax.
func (m *Matrix[T]) OneHotRows() *Matrix[T] {
	out := newMatrix[T](m.rows, m.cols)
	for i, j := range m.ArgmaxRows() {
		out.data[i*m.cols+j] = 1
	}
	return out
}
