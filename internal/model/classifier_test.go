package model_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decay-ml/decay/internal/backend/cpu"
	"github.com/decay-ml/decay/internal/model"
	"github.com/decay-ml/decay/internal/nn"
	"github.com/decay-ml/decay/internal/tensor"
)

type Backend = *cpu.CPUBackend

func newBatch(t *testing.T, images []float32, shape tensor.Shape, labels []int32) (*tensor.Tensor[float32, Backend], *tensor.Tensor[int32, Backend]) {
	t.Helper()
	backend := cpu.New()
	x, err := tensor.FromSlice[float32](images, shape, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice[int32](labels, tensor.Shape{len(labels)}, backend)
	require.NoError(t, err)
	return x, y
}

func TestForward_RowsAreDistributions(t *testing.T) {
	backend := cpu.New()
	clf := model.New(4, 3, backend, rand.New(rand.NewSource(9)))

	x, _ := newBatch(t, []float32{
		0.1, 0.9, 0.3, 0.7,
		0.5, 0.5, 0.5, 0.5,
	}, tensor.Shape{2, 4}, []int32{0, 1})

	probs := clf.Forward(x)
	require.Equal(t, tensor.Shape{2, 3}, probs.Shape())

	data := probs.Data()
	for r := 0; r < 2; r++ {
		sum := float32(0)
		for c := 0; c < 3; c++ {
			v := data[r*3+c]
			assert.GreaterOrEqual(t, v, float32(0))
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-5)
	}
}

func TestForward_IsPure(t *testing.T) {
	backend := cpu.New()
	clf := model.New(3, 2, backend, rand.New(rand.NewSource(9)))

	weightBefore := append([]float32(nil), clf.Parameters()[0].Tensor().Data()...)
	x, _ := newBatch(t, []float32{1, 2, 3}, tensor.Shape{1, 3}, []int32{0})

	clf.Forward(x)
	clf.Forward(x)

	assert.Equal(t, weightBefore, clf.Parameters()[0].Tensor().Data())
}

// batchLoss evaluates the batch-summed cross-entropy at the model's
// current parameters.
func batchLoss(clf *model.SoftmaxClassifier[Backend], x *tensor.Tensor[float32, Backend], y *tensor.Tensor[int32, Backend]) float32 {
	criterion := nn.NewCrossEntropyLoss[Backend]()
	return criterion.Forward(clf.Forward(x), y).Sum()
}

func TestBackward_MatchesFiniteDifferences(t *testing.T) {
	backend := cpu.New()
	clf := model.New(3, 2, backend, rand.New(rand.NewSource(5)))

	x, y := newBatch(t, []float32{
		0.2, -0.4, 0.6,
		-0.1, 0.3, 0.5,
	}, tensor.Shape{2, 3}, []int32{1, 0})

	probs := clf.Forward(x)
	grads := clf.Backward(x, probs, y)

	const eps = 1e-2
	for _, param := range clf.Parameters() {
		grad := grads[param.Tensor().Raw()].AsFloat32()
		paramData := param.Tensor().Data()

		for i := range paramData {
			orig := paramData[i]

			paramData[i] = orig + eps
			plus := batchLoss(clf, x, y)
			paramData[i] = orig - eps
			minus := batchLoss(clf, x, y)
			paramData[i] = orig

			numeric := (plus - minus) / (2 * eps)
			assert.InDelta(t, numeric, grad[i], 1e-2,
				"gradient mismatch for %s[%d]", param.Name(), i)
		}
	}
}

func TestBackward_GradientShapes(t *testing.T) {
	backend := cpu.New()
	clf := model.New(4, 3, backend, rand.New(rand.NewSource(5)))

	x, y := newBatch(t, make([]float32, 8), tensor.Shape{2, 4}, []int32{0, 2})
	probs := clf.Forward(x)
	grads := clf.Backward(x, probs, y)

	weight := clf.Parameters()[0]
	bias := clf.Parameters()[1]
	require.Contains(t, grads, weight.Tensor().Raw())
	require.Contains(t, grads, bias.Tensor().Raw())
	assert.True(t, grads[weight.Tensor().Raw()].Shape().Equal(tensor.Shape{3, 4}))
	assert.True(t, grads[bias.Tensor().Raw()].Shape().Equal(tensor.Shape{3}))
}

func TestReinit_FreshParameters(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(11))
	clf := model.New(6, 2, backend, rng)

	before := append([]float32(nil), clf.Parameters()[0].Tensor().Data()...)
	clf.Reinit(rng)
	after := clf.Parameters()[0].Tensor().Data()

	assert.NotEqual(t, before, after)
	assert.Equal(t, 6, clf.InFeatures())
	assert.Equal(t, 2, clf.NumClasses())
}
