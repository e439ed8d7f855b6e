package tensor

import "fmt"

// Shape represents the dimensions of a container.
// A Vector has a shape of length 1, a Matrix one of length 2 (rows, cols).
type Shape []int

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ShapeError reports operands whose shapes are incompatible for an operation.
//
// Shape errors are contract violations: tensor operations panic with a
// *ShapeError rather than returning it. Only the constructors that accept
// caller data (MatrixFromSlice, MatrixFromRows) return one as an error.
type ShapeError struct {
	Pkg    string // Package of the operation (default: "tensor").
	Op     string // Operation that rejected its operands, e.g. "Dot".
	Left   Shape  // Shape of the receiver / first operand.
	Right  Shape  // Shape of the second operand or the requested shape.
	Reason string // Short explanation of the rule that was broken.
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	pkg := e.Pkg
	if pkg == "" {
		pkg = "tensor"
	}
	return fmt.Sprintf("%s.%s: %s (%v vs %v)", pkg, e.Op, e.Reason, e.Left, e.Right)
}

// shapePanic panics with a *ShapeError.
func shapePanic(op string, left, right Shape, reason string) {
	panic(&ShapeError{Op: op, Left: left, Right: right, Reason: reason})
}
