package nn

import (
	"fmt"
	"math/rand"

	"github.com/decay-ml/decay/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Weights and biases are initialized from N(0, 1) with the supplied
// random source, so a run is reproducible from its seed.
//
// Example:
//
//	backend := cpu.New()
//	rng := rand.New(rand.NewSource(42))
//	layer := nn.NewLinear(784, 10, backend, rng)
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B] // [out_features, in_features]
	bias        *Parameter[B] // [out_features]
	backend     B
}

// NewLinear creates a new Linear layer with normally distributed
// parameters.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B, rng *rand.Rand) *Linear[B] {
	l := &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		backend:     backend,
	}
	l.Reinit(rng)
	return l
}

// Reinit resamples every parameter from N(0, 1).
// This is the explicit reset between independent training runs.
func (l *Linear[B]) Reinit(rng *rand.Rand) {
	weightTensor := tensor.Randn[float32](tensor.Shape{l.outFeatures, l.inFeatures}, l.backend, rng)
	biasTensor := tensor.Randn[float32](tensor.Shape{l.outFeatures}, l.backend, rng)
	l.weight = NewParameter("weight", weightTensor)
	l.bias = NewParameter("bias", biasTensor)
}

// Forward computes the output of the linear layer.
//
// Performs: y = x @ W.T + b
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input [batch, features], got shape %v", inputShape))
	}
	if inputShape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, inputShape[1]))
	}

	// x @ W.T: [batch, in] @ [in, out] = [batch, out]
	output := input.MatMul(l.weight.Tensor().T())

	// Broadcast the bias row across the batch.
	b := l.bias.Tensor().Reshape(1, l.outFeatures)
	return output.Add(b)
}

// Parameters returns the trainable parameters of this layer: [weight, bias].
func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear[B]) Bias() *Parameter[B] {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear[B]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[B]) OutFeatures() int {
	return l.outFeatures
}
