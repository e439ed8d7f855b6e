// Package tensor provides the 1-D and 2-D numeric containers every layer of
// the minnet engine operates on.
package tensor

import (
	"math"

	"github.com/chewxy/math32"
)

// Float is a constraint for supported element types.
// It uses Go generics so a layer is written once for both widths.
type Float interface {
	float32 | float64
}

// DataType represents runtime type information for containers.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// DTypeOf returns the DataType of the element type T.
func DTypeOf[T Float]() DataType {
	return inferDataType[T]()
}

// ParseDataType maps a name produced by DataType.String back to its DataType.
func ParseDataType(s string) (DataType, bool) {
	switch s {
	case "float32":
		return Float32, true
	case "float64":
		return Float64, true
	default:
		return 0, false
	}
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T Float]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	default:
		return Float64
	}
}

// Exp returns e**x. float32 values stay in single precision.
func Exp[T Float](x T) T {
	if v, ok := any(x).(float32); ok {
		return T(math32.Exp(v))
	}
	return T(math.Exp(float64(x)))
}

// Log returns the natural logarithm of x.
func Log[T Float](x T) T {
	if v, ok := any(x).(float32); ok {
		return T(math32.Log(v))
	}
	return T(math.Log(float64(x)))
}

// Sqrt returns the square root of x.
func Sqrt[T Float](x T) T {
	if v, ok := any(x).(float32); ok {
		return T(math32.Sqrt(v))
	}
	return T(math.Sqrt(float64(x)))
}

// Pow returns x**y.
func Pow[T Float](x, y T) T {
	if v, ok := any(x).(float32); ok {
		return T(math32.Pow(v, float32(y)))
	}
	return T(math.Pow(float64(x), float64(y)))
}

// Inf returns positive infinity if sign >= 0, negative infinity otherwise.
func Inf[T Float](sign int) T {
	var dummy T
	if _, ok := any(dummy).(float32); ok {
		return T(math32.Inf(sign))
	}
	return T(math.Inf(sign))
}
