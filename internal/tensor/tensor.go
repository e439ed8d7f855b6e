package tensor

import (
	"fmt"
)

// Matrix is a dense row-major 2-D container of rows x cols elements of type T.
// Rows index the batch axis: one row per example of a mini-batch.
//
// Matrices are immutable by convention: every operation returns a new
// Matrix and leaves its operands untouched. The exceptions are Set and
// Axpy, which the optimizer uses to update parameters in place.
//
// Example:
//
//	x := tensor.MustMatrix([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
//	a := tensor.MustMatrix([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
//	y := x.Dot(a) // [[22 28] [49 64]]
type Matrix[T Float] struct {
	rows int
	cols int
	data []T
}

// newMatrix allocates a zero-filled matrix. Panics on non-positive dimensions.
func newMatrix[T Float](rows, cols int) *Matrix[T] {
	if err := (Shape{rows, cols}).Validate(); err != nil {
		panic(fmt.Sprintf("tensor: invalid matrix shape: %v", err))
	}
	return &Matrix[T]{
		rows: rows,
		cols: cols,
		data: make([]T, rows*cols),
	}
}

// Shape returns {rows, cols}.
func (m *Matrix[T]) Shape() Shape {
	return Shape{m.rows, m.cols}
}

// Rows returns the number of rows (the batch dimension).
func (m *Matrix[T]) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int {
	return m.cols
}

// DType returns the element data type.
func (m *Matrix[T]) DType() DataType {
	return inferDataType[T]()
}

// NumElements returns rows*cols.
func (m *Matrix[T]) NumElements() int {
	return len(m.data)
}

// Data returns the row-major backing slice.
//
// WARNING: Modifications to the returned slice will modify the matrix.
func (m *Matrix[T]) Data() []T {
	return m.data
}

// At returns the element at row i, column j.
// Panics if indices are out of bounds.
func (m *Matrix[T]) At(i, j int) T {
	m.checkIndex(i, j)
	return m.data[i*m.cols+j]
}

// Set sets the element at row i, column j.
// Panics if indices are out of bounds.
func (m *Matrix[T]) Set(value T, i, j int) {
	m.checkIndex(i, j)
	m.data[i*m.cols+j] = value
}

func (m *Matrix[T]) checkIndex(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("index (%d, %d) out of bounds for matrix %v", i, j, m.Shape()))
	}
}

// Row returns a copy of row i as a Vector.
func (m *Matrix[T]) Row(i int) *Vector[T] {
	if i < 0 || i >= m.rows {
		panic(fmt.Sprintf("row %d out of bounds for matrix %v", i, m.Shape()))
	}
	return VectorFromSlice(m.data[i*m.cols : (i+1)*m.cols])
}

// Clone creates a deep copy of the matrix.
func (m *Matrix[T]) Clone() *Matrix[T] {
	out := &Matrix[T]{rows: m.rows, cols: m.cols, data: make([]T, len(m.data))}
	copy(out.data, m.data)
	return out
}

// SameShape reports whether m and other have identical dimensions.
func (m *Matrix[T]) SameShape(other *Matrix[T]) bool {
	return m.rows == other.rows && m.cols == other.cols
}

// String returns a human-readable representation of the matrix.
func (m *Matrix[T]) String() string {
	return fmt.Sprintf("Matrix[%s]%v", m.DType(), m.Shape())
}
