package nn

import (
	"github.com/decay-ml/decay/internal/tensor"
)

// Parameter represents a trainable parameter in a model.
//
// Parameters typically represent weights and biases of layers. Gradients
// are computed in closed form by the model's backward pass and flow to
// the optimizer as an explicit gradient map; the Parameter itself only
// carries identity and storage.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	w := weight.Tensor()
type Parameter[B tensor.Backend] struct {
	name   string                     // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor[float32, B] // The parameter tensor
}

// NewParameter creates a new trainable parameter.
//
// The parameter tensor should be initialized before creating the Parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// NumElements returns the number of scalar values in the parameter.
func (p *Parameter[B]) NumElements() int {
	return p.tensor.NumElements()
}
