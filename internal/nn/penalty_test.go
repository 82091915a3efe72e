package nn_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decay-ml/decay/internal/backend/cpu"
	"github.com/decay-ml/decay/internal/nn"
)

func TestNone_ContributesNothing(t *testing.T) {
	params := []float32{1, -2, 3}
	grad := []float32{0.5, 0.5, 0.5}

	p := nn.None{}
	assert.Equal(t, float32(0), p.Loss(params))

	p.AddGrad(params, grad)
	assert.Equal(t, []float32{0.5, 0.5, 0.5}, grad, "gradient must be untouched")
}

func TestL2_Loss(t *testing.T) {
	params := []float32{1, -2, 3} // sum of squares = 14

	assert.InDelta(t, 14.0, nn.L2{Lambda: 1}.Loss(params), 1e-5)
	assert.InDelta(t, 1.4, nn.L2{Lambda: 0.1}.Loss(params), 1e-5)
	assert.Equal(t, float32(0), nn.L2{Lambda: 0}.Loss(params))
}

func TestL2_LossNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	params := make([]float32, 64)
	for i := range params {
		params[i] = float32(rng.NormFloat64())
	}

	assert.GreaterOrEqual(t, nn.L2{Lambda: 0.01}.Loss(params), float32(0))
}

func TestL2_ScalesLinearlyInLambda(t *testing.T) {
	params := []float32{0.5, -1.5, 2}

	base := nn.L2{Lambda: 1}.Loss(params)
	assert.InDelta(t, 3*base, nn.L2{Lambda: 3}.Loss(params), 1e-5)
}

func TestL2_AddGrad(t *testing.T) {
	params := []float32{1, -2}
	grad := []float32{10, 10}

	nn.L2{Lambda: 0.5}.AddGrad(params, grad)

	// d(λΣp²)/dp = 2λp, added on top of the existing gradient.
	assert.InDelta(t, 11, grad[0], 1e-6)
	assert.InDelta(t, 8, grad[1], 1e-6)
}

func TestTotalPenalty(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(1))
	layer := nn.NewLinear(4, 2, backend, rng)

	sumSquares := float32(0)
	for _, p := range layer.Parameters() {
		for _, v := range p.Tensor().Data() {
			sumSquares += v * v
		}
	}

	got := nn.TotalPenalty(nn.L2{Lambda: 0.25}, layer.Parameters())
	require.InDelta(t, 0.25*sumSquares, got, 1e-4)

	assert.Equal(t, float32(0), nn.TotalPenalty(nn.None{}, layer.Parameters()))
}
