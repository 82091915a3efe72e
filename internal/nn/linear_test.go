package nn_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decay-ml/decay/internal/backend/cpu"
	"github.com/decay-ml/decay/internal/nn"
	"github.com/decay-ml/decay/internal/tensor"
)

func TestLinear_Forward(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(3, 2, backend, rand.New(rand.NewSource(1)))

	// Pin the parameters to known values.
	copy(layer.Weight().Tensor().Data(), []float32{
		1, 0, 0, // output 0 picks feature 0
		0, 1, 0, // output 1 picks feature 1
	})
	copy(layer.Bias().Tensor().Data(), []float32{10, 20})

	input, err := tensor.FromSlice[float32]([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)

	out := layer.Forward(input)

	require.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float32{11, 22, 14, 25}, out.Data())
}

func TestLinear_ForwardShapePreconditions(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(3, 2, backend, rand.New(rand.NewSource(1)))

	bad1D, err := tensor.FromSlice[float32]([]float32{1, 2, 3}, tensor.Shape{3}, backend)
	require.NoError(t, err)
	assert.Panics(t, func() { layer.Forward(bad1D) }, "1D input")

	badWidth, err := tensor.FromSlice[float32]([]float32{1, 2, 3, 4}, tensor.Shape{1, 4}, backend)
	require.NoError(t, err)
	assert.Panics(t, func() { layer.Forward(badWidth) }, "feature-count mismatch")
}

func TestLinear_ReinitIsSeedDeterministic(t *testing.T) {
	backend := cpu.New()

	a := nn.NewLinear(5, 3, backend, rand.New(rand.NewSource(42)))
	b := nn.NewLinear(5, 3, backend, rand.New(rand.NewSource(42)))
	assert.Equal(t, a.Weight().Tensor().Data(), b.Weight().Tensor().Data())
	assert.Equal(t, a.Bias().Tensor().Data(), b.Bias().Tensor().Data())

	before := append([]float32(nil), a.Weight().Tensor().Data()...)
	a.Reinit(rand.New(rand.NewSource(7)))
	assert.NotEqual(t, before, a.Weight().Tensor().Data(), "reinit must resample")
}

func TestLinear_Parameters(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(4, 2, backend, rand.New(rand.NewSource(1)))

	params := layer.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "weight", params[0].Name())
	assert.Equal(t, "bias", params[1].Name())
	assert.Equal(t, 8, params[0].NumElements())
	assert.Equal(t, 2, params[1].NumElements())
}
