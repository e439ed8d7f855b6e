package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Vector is a 1-D container of n elements of type T.
//
// Vectors hold biases and per-feature reductions (for example the column sums
// of a mini-batch). Like Matrix they are immutable by convention, except for
// Set and Axpy.
type Vector[T Float] struct {
	data []T
}

func newVector[T Float](n int) *Vector[T] {
	if n <= 0 {
		panic(fmt.Sprintf("tensor: invalid vector length %d (must be > 0)", n))
	}
	return &Vector[T]{data: make([]T, n)}
}

// Shape returns {len}.
func (v *Vector[T]) Shape() Shape {
	return Shape{len(v.data)}
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int {
	return len(v.data)
}

// Data returns the backing slice.
//
// WARNING: Modifications to the returned slice will modify the vector.
func (v *Vector[T]) Data() []T {
	return v.data
}

// At returns element i.
func (v *Vector[T]) At(i int) T {
	return v.data[i]
}

// Set sets element i.
func (v *Vector[T]) Set(value T, i int) {
	v.data[i] = value
}

// Clone creates a deep copy of the vector.
func (v *Vector[T]) Clone() *Vector[T] {
	return VectorFromSlice(v.data)
}

// String returns a human-readable representation of the vector.
func (v *Vector[T]) String() string {
	return fmt.Sprintf("Vector[%s]%v", inferDataType[T](), v.Shape())
}

func (v *Vector[T]) checkSameLen(op string, other *Vector[T]) {
	if len(v.data) != len(other.data) {
		shapePanic(op, v.Shape(), other.Shape(), "operands must have the same length")
	}
}

// Add returns v + other elementwise.
func (v *Vector[T]) Add(other *Vector[T]) *Vector[T] {
	v.checkSameLen("Add", other)
	return v.zip(other, func(a, b T) T { return a + b })
}

// Sub returns v - other elementwise.
func (v *Vector[T]) Sub(other *Vector[T]) *Vector[T] {
	v.checkSameLen("Sub", other)
	return v.zip(other, func(a, b T) T { return a - b })
}

// Mul returns v * other elementwise.
func (v *Vector[T]) Mul(other *Vector[T]) *Vector[T] {
	v.checkSameLen("Mul", other)
	return v.zip(other, func(a, b T) T { return a * b })
}

// Div returns v / other elementwise.
func (v *Vector[T]) Div(other *Vector[T]) *Vector[T] {
	v.checkSameLen("Div", other)
	return v.zip(other, func(a, b T) T { return a / b })
}

// Scale returns s * v.
func (v *Vector[T]) Scale(s T) *Vector[T] {
	return v.Map(func(x T) T { return x * s })
}

// DivScalar returns v / s.
func (v *Vector[T]) DivScalar(s T) *Vector[T] {
	return v.Map(func(x T) T { return x / s })
}

// Map applies f to every element and returns the result.
func (v *Vector[T]) Map(f func(T) T) *Vector[T] {
	out := &Vector[T]{data: make([]T, len(v.data))}
	for i, x := range v.data {
		out.data[i] = f(x)
	}
	return out
}

func (v *Vector[T]) zip(other *Vector[T], f func(a, b T) T) *Vector[T] {
	out := &Vector[T]{data: make([]T, len(v.data))}
	for i := range v.data {
		out.data[i] = f(v.data[i], other.data[i])
	}
	return out
}

// Sum returns the sum of all elements.
func (v *Vector[T]) Sum() T {
	return sum(v.data)
}

// Max returns the largest element.
func (v *Vector[T]) Max() T {
	if d, ok := any(v.data).([]float64); ok {
		return T(floats.Max(d))
	}
	best := v.data[0]
	for _, x := range v.data[1:] {
		if x > best {
			best = x
		}
	}
	return best
}

// Argmax returns the index of the largest element (first one on ties).
func (v *Vector[T]) Argmax() int {
	return argmax(v.data)
}

// OneHot returns a vector of the same length with a single 1 at Argmax.
func (v *Vector[T]) OneHot() *Vector[T] {
	out := newVector[T](len(v.data))
	out.data[v.Argmax()] = 1
	return out
}

// Axpy performs v += alpha * x in place.
func (v *Vector[T]) Axpy(alpha T, x *Vector[T]) {
	v.checkSameLen("Axpy", x)
	axpy(alpha, x.data, v.data)
}

func sum[T Float](data []T) T {
	if d, ok := any(data).([]float64); ok {
		return T(floats.Sum(d))
	}
	var total T
	for _, x := range data {
		total += x
	}
	return total
}

func argmax[T Float](data []T) int {
	best := 0
	for i := 1; i < len(data); i++ {
		if data[i] > data[best] {
			best = i
		}
	}
	return best
}
