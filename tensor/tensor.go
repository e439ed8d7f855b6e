// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand/v2"

	"github.com/born-ml/minnet/internal/parallel"
	"github.com/born-ml/minnet/internal/tensor"
)

// Float is the constraint for element types: float32 or float64.
type Float = tensor.Float

// DataType represents the element type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} is a matrix with 2 rows and 3 columns.
type Shape = tensor.Shape

// ShapeError is the panic value of operations on incompatible shapes.
type ShapeError = tensor.ShapeError

// Vector is a 1-D tensor.
type Vector[T Float] = tensor.Vector[T]

// Matrix is a 2-D tensor stored row-major.
type Matrix[T Float] = tensor.Matrix[T]

// Zeros creates a rows x cols matrix filled with zeros.
func Zeros[T Float](rows, cols int) *Matrix[T] {
	return tensor.Zeros[T](rows, cols)
}

// Ones creates a rows x cols matrix filled with ones.
func Ones[T Float](rows, cols int) *Matrix[T] {
	return tensor.Ones[T](rows, cols)
}

// Full creates a rows x cols matrix filled with value.
func Full[T Float](rows, cols int, value T) *Matrix[T] {
	return tensor.Full(rows, cols, value)
}

// ZerosLike creates a zero matrix shaped like m.
func ZerosLike[T Float](m *Matrix[T]) *Matrix[T] {
	return tensor.ZerosLike(m)
}

// ZerosVector creates a zero vector of length n.
func ZerosVector[T Float](n int) *Vector[T] {
	return tensor.ZerosVector[T](n)
}

// OnesVector creates a vector of n ones.
func OnesVector[T Float](n int) *Vector[T] {
	return tensor.OnesVector[T](n)
}

// VectorFromSlice creates a vector holding a copy of data.
func VectorFromSlice[T Float](data []T) *Vector[T] {
	return tensor.VectorFromSlice(data)
}

// MatrixFromSlice creates a rows x cols matrix from row-major data.
//
// Returns an error if len(data) != rows*cols.
//
// Example:
//
//	m, err := tensor.MatrixFromSlice([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
func MatrixFromSlice[T Float](data []T, rows, cols int) (*Matrix[T], error) {
	return tensor.MatrixFromSlice(data, rows, cols)
}

// MustMatrix is MatrixFromSlice that panics on error.
func MustMatrix[T Float](data []T, rows, cols int) *Matrix[T] {
	return tensor.MustMatrix(data, rows, cols)
}

// MatrixFromRows creates a matrix from equal-length rows.
func MatrixFromRows[T Float](rows [][]T) (*Matrix[T], error) {
	return tensor.MatrixFromRows(rows)
}

// Broadcast replicates v into a rows x v.Len() matrix.
func Broadcast[T Float](v *Vector[T], rows int) *Matrix[T] {
	return tensor.Broadcast(v, rows)
}

// RandNormal creates a rows x cols matrix drawn from N(mean, std²) using src.
func RandNormal[T Float](rows, cols int, mean, std float64, src rand.Source) *Matrix[T] {
	return tensor.RandNormal[T](rows, cols, mean, std, src)
}

// ParallelConfig configures the row-parallel operations.
type ParallelConfig = parallel.Config

// DefaultParallelConfig returns one worker per physical core.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// SetParallelConfig sets the worker configuration used by MapRows and
// ArgmaxRows.
func SetParallelConfig(cfg ParallelConfig) {
	tensor.SetParallelConfig(cfg)
}
