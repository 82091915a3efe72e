// Package model implements the linear softmax classifier at the center
// of the overfitting experiment.
package model

import (
	"fmt"
	"math/rand"

	"github.com/decay-ml/decay/internal/nn"
	"github.com/decay-ml/decay/internal/tensor"
)

// SoftmaxClassifier is a single linear layer followed by a softmax.
//
// Forward maps a batch of flattened images [batch_size, in_features] to
// class probabilities [batch_size, num_classes], each row non-negative
// and summing to 1. Forward is a pure function of the input and the
// current parameters.
//
// Gradients are computed in closed form rather than by a differentiation
// engine: for softmax followed by cross-entropy summed over the batch,
//
//	dL/dlogits = probs - onehot(labels)
//	dL/dW      = dlogits.T @ x
//	dL/db      = column-sum(dlogits)
type SoftmaxClassifier[B tensor.Backend] struct {
	linear  *nn.Linear[B]
	backend B
}

// New creates a classifier for inFeatures-dimensional inputs and
// numClasses classes. Parameters are drawn from N(0, 1) using rng.
func New[B tensor.Backend](inFeatures, numClasses int, backend B, rng *rand.Rand) *SoftmaxClassifier[B] {
	return &SoftmaxClassifier[B]{
		linear:  nn.NewLinear(inFeatures, numClasses, backend, rng),
		backend: backend,
	}
}

// Forward computes class probabilities for a batch.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, num_classes], rows summing to 1.
func (m *SoftmaxClassifier[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	logits := m.linear.Forward(input)
	return logits.Softmax(1)
}

// Backward computes the closed-form gradients of the batch-summed
// cross-entropy with respect to the weight and bias.
//
// Parameters:
//   - input: the batch that produced probs, [batch_size, in_features]
//   - probs: Forward's output for that batch, [batch_size, num_classes]
//   - labels: true class indices, [batch_size]
//
// Returns a map from each parameter's raw tensor to its gradient, in the
// form the optimizer consumes.
func (m *SoftmaxClassifier[B]) Backward(
	input *tensor.Tensor[float32, B],
	probs *tensor.Tensor[float32, B],
	labels *tensor.Tensor[int32, B],
) map[*tensor.RawTensor]*tensor.RawTensor {
	probsShape := probs.Shape()
	batchSize := probsShape[0]
	numClasses := probsShape[1]

	labelsData := labels.Raw().AsInt32()
	if len(labelsData) != batchSize {
		panic(fmt.Sprintf("Backward: %d labels for batch of %d", len(labelsData), batchSize))
	}

	// dlogits = probs - onehot(labels)
	dlogits := probs.Clone()
	dlogitsData := dlogits.Raw().AsFloat32()
	for b := 0; b < batchSize; b++ {
		dlogitsData[b*numClasses+int(labelsData[b])] -= 1
	}

	// dW = dlogits.T @ x: [classes, batch] @ [batch, features]
	dWeight := dlogits.T().MatMul(input)

	// db = column sums of dlogits
	dBias := dlogits.SumDim(0)

	return map[*tensor.RawTensor]*tensor.RawTensor{
		m.linear.Weight().Tensor().Raw(): dWeight.Raw(),
		m.linear.Bias().Tensor().Raw():   dBias.Raw(),
	}
}

// Parameters returns the trainable parameters: [weight, bias].
func (m *SoftmaxClassifier[B]) Parameters() []*nn.Parameter[B] {
	return m.linear.Parameters()
}

// Reinit resamples every parameter from N(0, 1). The trainer calls this
// between independent experiments so the regularized run starts from
// fresh values rather than the unregularized run's end state.
func (m *SoftmaxClassifier[B]) Reinit(rng *rand.Rand) {
	m.linear.Reinit(rng)
}

// InFeatures returns the input dimensionality.
func (m *SoftmaxClassifier[B]) InFeatures() int {
	return m.linear.InFeatures()
}

// NumClasses returns the number of output classes.
func (m *SoftmaxClassifier[B]) NumClasses() int {
	return m.linear.OutFeatures()
}
