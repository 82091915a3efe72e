// Package optim implements optimization algorithms for the training loop.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: stochastic gradient descent with optional momentum
//
// Gradients arrive as an explicit map from parameter storage to gradient
// storage, produced by the model's closed-form backward pass:
//
//	grads := model.Backward(batch.Images, probs, batch.Labels)
//	optimizer.Step(grads)
package optim

import (
	"github.com/decay-ml/decay/internal/nn"
	"github.com/decay-ml/decay/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers update model parameters in place based on computed
// gradients to minimize the loss function during training.
type Optimizer interface {
	// Step applies gradient updates to all parameters.
	//
	// Takes a map from each parameter's raw tensor to its gradient.
	// Parameters with no entry in the map are skipped.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// GetLR returns the current learning rate.
	GetLR() float32
}

// getGradient retrieves the gradient for a parameter, or nil if the
// parameter has no entry in the gradient map.
func getGradient[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}
