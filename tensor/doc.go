// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the vector and matrix types the minnet engine
// computes with.
//
// # Overview
//
// This package provides:
//   - Generic element type: float32 or float64 (Float)
//   - Vector[T]: 1-D values such as biases and per-row reductions
//   - Matrix[T]: 2-D batches, one example per row
//   - BLAS-backed Dot and Axpy (gonum)
//   - Row-parallel MapRows and ArgmaxRows
//
// # Basic Usage
//
//	import "github.com/born-ml/minnet/tensor"
//
//	func main() {
//	    x := tensor.MustMatrix([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
//	    w := tensor.Ones[float64](3, 2)
//
//	    y := x.Dot(w)               // [2, 2]
//	    col := y.SumRows()          // [2]
//	    z := y.AddRow(col)          // broadcast per row
//	    fmt.Println(z.ArgmaxRows())
//	}
//
// # Errors
//
// Shape mismatches are programming errors and panic with a *ShapeError
// naming the operation and both shapes. Constructors that take external data
// (MatrixFromSlice, MatrixFromRows) return errors instead.
package tensor
