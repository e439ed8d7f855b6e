package tensor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixElementwise(t *testing.T) {
	a := MustMatrix([]float64{10, 20, 30, 40}, 2, 2)
	b := MustMatrix([]float64{2, 4, 5, 8}, 2, 2)

	tests := []struct {
		name string
		got  *Matrix[float64]
		want []float64
	}{
		{"Add", a.Add(b), []float64{12, 24, 35, 48}},
		{"Sub", a.Sub(b), []float64{8, 16, 25, 32}},
		{"Mul", a.Mul(b), []float64{20, 80, 150, 320}},
		{"Div", a.Div(b), []float64{5, 5, 6, 5}},
		{"Scale", a.Scale(0.5), []float64{5, 10, 15, 20}},
		{"DivScalar", a.DivScalar(10), []float64{1, 2, 3, 4}},
		{"Map", a.Map(func(x float64) float64 { return -x }), []float64{-10, -20, -30, -40}},
		{"ZipWith", a.ZipWith(b, func(x, y float64) float64 { return x - 2*y }), []float64{6, 12, 20, 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, exp := range tt.want {
				assertEqualFloat64(t, exp, tt.got.Data()[i], fmt.Sprintf("%s[%d]", tt.name, i))
			}
		})
	}

	// Operands are left untouched.
	assert.Equal(t, []float64{10, 20, 30, 40}, a.Data())
}

func TestMatrixElementwise_ShapeMismatch(t *testing.T) {
	a := Zeros[float64](2, 3)
	b := Zeros[float64](3, 2)

	assertShapePanic(t, "Add", func() { a.Add(b) })
	assertShapePanic(t, "Sub", func() { a.Sub(b) })
	assertShapePanic(t, "Mul", func() { a.Mul(b) })
	assertShapePanic(t, "Div", func() { a.Div(b) })
	assertShapePanic(t, "ZipWith", func() { a.ZipWith(b, func(x, _ float64) float64 { return x }) })
}

func TestMatrixAddRow(t *testing.T) {
	m := MustMatrix([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	v := VectorFromSlice([]float64{10, 20, 30})

	got := m.AddRow(v)
	assert.Equal(t, []float64{11, 22, 33, 14, 25, 36}, got.Data())

	assertShapePanic(t, "AddRow", func() { m.AddRow(VectorFromSlice([]float64{1, 2})) })
}

func TestMatrixDot(t *testing.T) {
	// [[1,2,3],[4,5,6]] . [[1,2],[3,4],[5,6]] = [[22,28],[49,64]]
	a := MustMatrix([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	b := MustMatrix([]float64{1, 2, 3, 4, 5, 6}, 3, 2)

	c := a.Dot(b)
	assert.True(t, c.Shape().Equal(Shape{2, 2}))
	assert.Equal(t, []float64{22, 28, 49, 64}, c.Data())
}

func TestMatrixDot_Float32(t *testing.T) {
	a := MustMatrix([]float32{1, 2, 3, 4}, 2, 2)
	identity := MustMatrix([]float32{1, 0, 0, 1}, 2, 2)

	assert.Equal(t, []float32{1, 2, 3, 4}, a.Dot(identity).Data())
	assert.Equal(t, []float32{7, 10, 15, 22}, a.Dot(a).Data())
}

func TestMatrixDot_InnerMismatch(t *testing.T) {
	a := Zeros[float64](2, 3)
	b := Zeros[float64](2, 3)
	assertShapePanic(t, "Dot", func() { a.Dot(b) })
}

func TestMatrixTranspose(t *testing.T) {
	m := MustMatrix([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	tr := m.Transpose()

	assert.True(t, tr.Shape().Equal(Shape{3, 2}))
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, tr.Data())
	assert.Equal(t, m.Data(), tr.Transpose().Data())
}

func TestMatrixSumRows(t *testing.T) {
	m := MustMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, 3, 3)

	got := m.SumRows()
	assert.Equal(t, []float64{12, 15, 18}, got.Data())
	assertEqualFloat64(t, 45, m.Sum(), "Sum")
}

func TestBroadcast(t *testing.T) {
	v := VectorFromSlice([]float64{1, 2, 3})

	m := Broadcast(v, 3)
	assert.True(t, m.Shape().Equal(Shape{3, 3}))
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3, 1, 2, 3}, m.Data())

	// Broadcast then reduce multiplies by the row count.
	assert.Equal(t, []float64{3, 6, 9}, m.SumRows().Data())
}

func TestMatrixAxpy(t *testing.T) {
	m := MustMatrix([]float32{1, 2, 3, 4}, 2, 2)
	g := MustMatrix([]float32{10, 10, 10, 10}, 2, 2)

	m.Axpy(-0.1, g)
	assert.InDeltaSlice(t, []float32{0, 1, 2, 3}, m.Data(), 1e-6)

	assertShapePanic(t, "Axpy", func() { m.Axpy(1, Zeros[float32](1, 4)) })
}

func TestVectorOps(t *testing.T) {
	a := VectorFromSlice([]float64{1, 5, 3})
	b := VectorFromSlice([]float64{2, 2, 2})

	assert.Equal(t, []float64{3, 7, 5}, a.Add(b).Data())
	assert.Equal(t, []float64{-1, 3, 1}, a.Sub(b).Data())
	assert.Equal(t, []float64{2, 10, 6}, a.Mul(b).Data())
	assert.Equal(t, []float64{0.5, 2.5, 1.5}, a.Div(b).Data())
	assert.Equal(t, []float64{2, 10, 6}, a.Scale(2).Data())
	assert.Equal(t, []float64{0.5, 2.5, 1.5}, a.DivScalar(2).Data())
	assertEqualFloat64(t, 9, a.Sum(), "Sum")
	assertEqualFloat64(t, 5, a.Max(), "Max")
	assert.Equal(t, 1, a.Argmax())
	assert.Equal(t, []float64{0, 1, 0}, a.OneHot().Data())

	assertShapePanic(t, "Add", func() { a.Add(VectorFromSlice([]float64{1})) })
}

func TestVectorFloat32Reductions(t *testing.T) {
	v := VectorFromSlice([]float32{-3, 7, 2, 7})
	assert.Equal(t, float32(13), v.Sum())
	assert.Equal(t, float32(7), v.Max())
	assert.Equal(t, 1, v.Argmax(), "first maximum wins on ties")
}

func TestVectorAxpy(t *testing.T) {
	v := VectorFromSlice([]float64{1, 1})
	v.Axpy(2, VectorFromSlice([]float64{3, 4}))
	assert.Equal(t, []float64{7, 9}, v.Data())

	assertShapePanic(t, "Axpy", func() { v.Axpy(1, ZerosVector[float64](3)) })
}
