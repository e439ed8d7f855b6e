package tensor

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Zeros creates a rows x cols matrix filled with zeros.
//
// Example:
//
//	t := tensor.Zeros[float32](3, 4)
func Zeros[T Float](rows, cols int) *Matrix[T] {
	return newMatrix[T](rows, cols)
}

// Ones creates a rows x cols matrix filled with ones.
func Ones[T Float](rows, cols int) *Matrix[T] {
	return Full[T](rows, cols, 1)
}

// Full creates a rows x cols matrix filled with value.
func Full[T Float](rows, cols int, value T) *Matrix[T] {
	m := newMatrix[T](rows, cols)
	for i := range m.data {
		m.data[i] = value
	}
	return m
}

// ZerosLike creates a zero-filled matrix with the shape of m.
func ZerosLike[T Float](m *Matrix[T]) *Matrix[T] {
	return newMatrix[T](m.rows, m.cols)
}

// ZerosVector creates a vector of n zeros.
func ZerosVector[T Float](n int) *Vector[T] {
	return newVector[T](n)
}

// OnesVector creates a vector of n ones.
func OnesVector[T Float](n int) *Vector[T] {
	v := newVector[T](n)
	for i := range v.data {
		v.data[i] = 1
	}
	return v
}

// VectorFromSlice creates a vector from a Go slice.
// The slice is copied into the vector's memory.
func VectorFromSlice[T Float](data []T) *Vector[T] {
	v := newVector[T](len(data))
	copy(v.data, data)
	return v
}

// MatrixFromSlice creates a rows x cols matrix from row-major data.
// The slice is copied into the matrix's memory.
//
// Returns a *ShapeError if len(data) != rows*cols.
func MatrixFromSlice[T Float](data []T, rows, cols int) (*Matrix[T], error) {
	shape := Shape{rows, cols}
	if err := shape.Validate(); err != nil {
		return nil, &ShapeError{Op: "MatrixFromSlice", Left: Shape{len(data)}, Right: shape, Reason: err.Error()}
	}
	if shape.NumElements() != len(data) {
		return nil, &ShapeError{
			Op:     "MatrixFromSlice",
			Left:   Shape{len(data)},
			Right:  shape,
			Reason: "element count does not match the requested shape",
		}
	}
	m := newMatrix[T](rows, cols)
	copy(m.data, data)
	return m, nil
}

// MustMatrix is like MatrixFromSlice but panics on error.
// Intended for literals in code and tests.
func MustMatrix[T Float](data []T, rows, cols int) *Matrix[T] {
	m, err := MatrixFromSlice(data, rows, cols)
	if err != nil {
		panic(err)
	}
	return m
}

// MatrixFromRows stacks equal-length rows into a matrix.
//
// Returns a *ShapeError if rows is empty or the rows differ in length.
func MatrixFromRows[T Float](rows [][]T) (*Matrix[T], error) {
	if len(rows) == 0 {
		return nil, &ShapeError{Op: "MatrixFromRows", Left: Shape{0}, Right: Shape{}, Reason: "no rows given"}
	}
	cols := len(rows[0])
	flat := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, &ShapeError{
				Op:     "MatrixFromRows",
				Left:   Shape{i, len(row)},
				Right:  Shape{0, cols},
				Reason: "rows must have equal length",
			}
		}
		flat = append(flat, row...)
	}
	return MatrixFromSlice(flat, len(rows), cols)
}

// Broadcast replicates v into a rows x v.Len() matrix, one copy per row.
func Broadcast[T Float](v *Vector[T], rows int) *Matrix[T] {
	m := newMatrix[T](rows, len(v.data))
	for i := 0; i < rows; i++ {
		copy(m.data[i*m.cols:(i+1)*m.cols], v.data)
	}
	return m
}

// RandNormal creates a rows x cols matrix with values drawn from N(mean, std²).
// src drives the draws, so a seeded source gives reproducible values.
// Note: Uses math/rand (not crypto/rand) - appropriate for ML/statistical purposes.
//
// Example:
//
//	src := rand.NewPCG(42, 42)
//	w := tensor.RandNormal[float32](2, 10, 0, 0.01, src)
func RandNormal[T Float](rows, cols int, mean, std float64, src rand.Source) *Matrix[T] {
	m := newMatrix[T](rows, cols)
	dist := distuv.Normal{Mu: mean, Sigma: std, Src: src}
	for i := range m.data {
		m.data[i] = T(dist.Rand())
	}
	return m
}
