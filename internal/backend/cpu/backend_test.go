package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decay-ml/decay/internal/tensor"
)

func fromSlice(t *testing.T, data []float32, shape tensor.Shape) *tensor.Tensor[float32, *CPUBackend] {
	t.Helper()
	tt, err := tensor.FromSlice[float32](data, shape, New())
	require.NoError(t, err)
	return tt
}

func TestMatMul(t *testing.T) {
	a := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := fromSlice(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	c := a.MatMul(b)

	assert.Equal(t, tensor.Shape{2, 2}, c.Shape())
	assert.Equal(t, []float32{58, 64, 139, 154}, c.Data())
}

func TestMatMul_ShapeMismatchPanics(t *testing.T) {
	a := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := fromSlice(t, []float32{1, 2, 3}, tensor.Shape{3, 1})

	assert.Panics(t, func() { a.MatMul(b) })
}

func TestAdd_SameShape(t *testing.T) {
	a := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := fromSlice(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	c := a.Add(b)
	assert.Equal(t, []float32{11, 22, 33, 44}, c.Data())
}

func TestAdd_RowBroadcast(t *testing.T) {
	// The bias-addition path: a [1, C] row applied to every row of [N, C].
	a := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias := fromSlice(t, []float32{10, 20, 30}, tensor.Shape{1, 3})

	c := a.Add(bias)
	assert.Equal(t, []float32{11, 22, 33, 14, 25, 36}, c.Data())
}

func TestAdd_IncompatibleShapesPanic(t *testing.T) {
	a := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := fromSlice(t, []float32{1, 2, 3}, tensor.Shape{1, 3})

	assert.Panics(t, func() { a.Add(b) })
}

func TestSub(t *testing.T) {
	a := fromSlice(t, []float32{5, 7}, tensor.Shape{1, 2})
	b := fromSlice(t, []float32{2, 3}, tensor.Shape{1, 2})

	assert.Equal(t, []float32{3, 4}, a.Sub(b).Data())
}

func TestSoftmax_RowsSumToOne(t *testing.T) {
	a := fromSlice(t, []float32{1, 2, 3, -1, 0, 1, 100, 100, 100}, tensor.Shape{3, 3})

	probs := a.Softmax(1)

	data := probs.Data()
	for r := 0; r < 3; r++ {
		sum := float32(0)
		for c := 0; c < 3; c++ {
			v := data[r*3+c]
			assert.GreaterOrEqual(t, v, float32(0))
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-5, "row %d must sum to 1", r)
	}
}

func TestSoftmax_LargeLogitsStable(t *testing.T) {
	// Without max-subtraction exp(1000) would overflow to +Inf.
	a := fromSlice(t, []float32{1000, 999}, tensor.Shape{1, 2})

	probs := a.Softmax(1).Data()
	require.False(t, math.IsNaN(float64(probs[0])))
	assert.InDelta(t, 0.731, probs[0], 1e-3)
	assert.InDelta(t, 0.269, probs[1], 1e-3)
}

func TestSoftmax_KnownValues(t *testing.T) {
	a := fromSlice(t, []float32{0, 0}, tensor.Shape{1, 2})
	probs := a.Softmax(1).Data()
	assert.InDelta(t, 0.5, probs[0], 1e-6)
	assert.InDelta(t, 0.5, probs[1], 1e-6)
}

func TestSum(t *testing.T) {
	a := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	assert.Equal(t, float32(10), a.Sum())
}

func TestSumDim(t *testing.T) {
	a := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	cols := a.SumDim(0)
	assert.Equal(t, tensor.Shape{3}, cols.Shape())
	assert.Equal(t, []float32{5, 7, 9}, cols.Data())

	rows := a.SumDim(1)
	assert.Equal(t, tensor.Shape{2}, rows.Shape())
	assert.Equal(t, []float32{6, 15}, rows.Data())
}

func TestTranspose(t *testing.T) {
	a := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	at := a.T()
	assert.Equal(t, tensor.Shape{3, 2}, at.Shape())
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, at.Data())
}

func TestScalarOps(t *testing.T) {
	a := fromSlice(t, []float32{1, 2, 3}, tensor.Shape{3})

	assert.Equal(t, []float32{2, 4, 6}, a.MulScalar(2).Data())
	assert.Equal(t, []float32{1.5, 2.5, 3.5}, a.AddScalar(0.5).Data())
}

func TestReshape(t *testing.T) {
	a := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{4})

	r := a.Reshape(2, 2)
	assert.Equal(t, tensor.Shape{2, 2}, r.Shape())
	assert.Equal(t, float32(3), r.At(1, 0))
}
