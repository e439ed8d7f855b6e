package tensor

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"
)

func (m *Matrix[T]) checkSameShape(op string, other *Matrix[T]) {
	if !m.SameShape(other) {
		shapePanic(op, m.Shape(), other.Shape(), "operands must have the same shape")
	}
}

// Add returns m + other elementwise. Panics with *ShapeError on mismatch.
func (m *Matrix[T]) Add(other *Matrix[T]) *Matrix[T] {
	m.checkSameShape("Add", other)
	return m.zip(other, func(a, b T) T { return a + b })
}

// Sub returns m - other elementwise.
func (m *Matrix[T]) Sub(other *Matrix[T]) *Matrix[T] {
	m.checkSameShape("Sub", other)
	return m.zip(other, func(a, b T) T { return a - b })
}

// Mul returns m * other elementwise (Hadamard product).
func (m *Matrix[T]) Mul(other *Matrix[T]) *Matrix[T] {
	m.checkSameShape("Mul", other)
	return m.zip(other, func(a, b T) T { return a * b })
}

// Div returns m / other elementwise.
func (m *Matrix[T]) Div(other *Matrix[T]) *Matrix[T] {
	m.checkSameShape("Div", other)
	return m.zip(other, func(a, b T) T { return a / b })
}

// AddRow returns m + v with v broadcast to every row.
// v.Len() must equal m.Cols().
func (m *Matrix[T]) AddRow(v *Vector[T]) *Matrix[T] {
	if len(v.data) != m.cols {
		shapePanic("AddRow", m.Shape(), v.Shape(), "vector length must equal the column count")
	}
	out := m.Clone()
	for i := 0; i < m.rows; i++ {
		row := out.data[i*m.cols : (i+1)*m.cols]
		for j := range row {
			row[j] += v.data[j]
		}
	}
	return out
}

// ZipWith combines m and other elementwise with f.
func (m *Matrix[T]) ZipWith(other *Matrix[T], f func(a, b T) T) *Matrix[T] {
	m.checkSameShape("ZipWith", other)
	return m.zip(other, f)
}

func (m *Matrix[T]) zip(other *Matrix[T], f func(a, b T) T) *Matrix[T] {
	out := &Matrix[T]{rows: m.rows, cols: m.cols, data: make([]T, len(m.data))}
	for i := range m.data {
		out.data[i] = f(m.data[i], other.data[i])
	}
	return out
}

// Map applies f to every element and returns the result.
func (m *Matrix[T]) Map(f func(T) T) *Matrix[T] {
	out := &Matrix[T]{rows: m.rows, cols: m.cols, data: make([]T, len(m.data))}
	for i, x := range m.data {
		out.data[i] = f(x)
	}
	return out
}

// Scale returns s * m.
func (m *Matrix[T]) Scale(s T) *Matrix[T] {
	return m.Map(func(x T) T { return x * s })
}

// DivScalar returns m / s.
func (m *Matrix[T]) DivScalar(s T) *Matrix[T] {
	return m.Map(func(x T) T { return x / s })
}

// Sum returns the sum of all elements.
func (m *Matrix[T]) Sum() T {
	return sum(m.data)
}

// SumRows reduces along the batch axis: (M, N) -> (N).
func (m *Matrix[T]) SumRows() *Vector[T] {
	out := newVector[T](m.cols)
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, x := range row {
			out.data[j] += x
		}
	}
	return out
}

// Transpose returns the transpose of m: (M, N) -> (N, M).
func (m *Matrix[T]) Transpose() *Matrix[T] {
	out := newMatrix[T](m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

// Dot performs matrix multiplication: (M, K) . (K, N) -> (M, N).
// Panics with *ShapeError if the inner dimensions disagree.
func (m *Matrix[T]) Dot(other *Matrix[T]) *Matrix[T] {
	if m.cols != other.rows {
		shapePanic("Dot", m.Shape(), other.Shape(), "inner dimensions must agree")
	}
	out := newMatrix[T](m.rows, other.cols)

	switch a := any(m.data).(type) {
	case []float32:
		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas32.General{Rows: m.rows, Cols: m.cols, Stride: m.cols, Data: a},
			blas32.General{Rows: other.rows, Cols: other.cols, Stride: other.cols, Data: any(other.data).([]float32)},
			0,
			blas32.General{Rows: out.rows, Cols: out.cols, Stride: out.cols, Data: any(out.data).([]float32)})
	case []float64:
		blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas64.General{Rows: m.rows, Cols: m.cols, Stride: m.cols, Data: a},
			blas64.General{Rows: other.rows, Cols: other.cols, Stride: other.cols, Data: any(other.data).([]float64)},
			0,
			blas64.General{Rows: out.rows, Cols: out.cols, Stride: out.cols, Data: any(out.data).([]float64)})
	}

	return out
}

// Axpy performs m += alpha * x in place.
func (m *Matrix[T]) Axpy(alpha T, x *Matrix[T]) {
	m.checkSameShape("Axpy", x)
	axpy(alpha, x.data, m.data)
}

// axpy computes y += alpha * x with BLAS.
func axpy[T Float](alpha T, x, y []T) {
	switch xs := any(x).(type) {
	case []float32:
		blas32.Axpy(float32(alpha),
			blas32.Vector{N: len(xs), Data: xs, Inc: 1},
			blas32.Vector{N: len(y), Data: any(y).([]float32), Inc: 1})
	case []float64:
		blas64.Axpy(float64(alpha),
			blas64.Vector{N: len(xs), Data: xs, Inc: 1},
			blas64.Vector{N: len(y), Data: any(y).([]float64), Inc: 1})
	}
}
