// Package nn implements the neural network building blocks for the decay
// experiment:
//   - Module interface: base interface for all NN components
//   - Parameter: named trainable tensors
//   - Linear: fully connected layer
//   - CrossEntropyLoss: per-sample negative log-likelihood
//   - Penalty: parameter-norm penalties (None, L2)
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/decay-ml/decay/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all trainable parameters
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	//
	// The input tensor should have the appropriate shape for this module.
	// For example, Linear expects [batch_size, in_features].
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module.
	//
	// Returns an empty slice for modules without trainable parameters.
	Parameters() []*Parameter[B]
}
