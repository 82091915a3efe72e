package optim

import (
	"fmt"

	"github.com/decay-ml/decay/internal/nn"
	"github.com/decay-ml/decay/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// The overfitting experiments run plain SGD (momentum 0) with a fixed
// learning rate; momentum is available for ad-hoc runs.
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR: 0.001,
//	})
type SGD[B tensor.Backend] struct {
	params     []*nn.Parameter[B]
	lr         float32
	momentum   float32
	velocities map[*nn.Parameter[B]][]float32
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float32 // Learning rate (default: 0.01)
	Momentum float32 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer over the given parameters.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], config SGDConfig) *SGD[B] {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD[B]{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter[B]][]float32),
	}
}

// Step performs a single optimization step, updating every parameter
// with an entry in the gradient map in place.
func (s *SGD[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	for _, param := range s.params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}

		paramData := param.Tensor().Raw().AsFloat32()
		gradData := grad.AsFloat32()
		if len(paramData) != len(gradData) {
			panic(fmt.Sprintf("sgd: gradient size %d does not match parameter %q size %d",
				len(gradData), param.Name(), len(paramData)))
		}

		if s.momentum == 0 {
			for i, g := range gradData {
				paramData[i] -= s.lr * g
			}
			continue
		}

		velocity, exists := s.velocities[param]
		if !exists {
			velocity = make([]float32, len(paramData))
			s.velocities[param] = velocity
		}
		for i, g := range gradData {
			velocity[i] = s.momentum*velocity[i] + g
			paramData[i] -= s.lr * velocity[i]
		}
	}
}

// GetLR returns the current learning rate.
func (s *SGD[B]) GetLR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD[B]) SetLR(lr float32) {
	s.lr = lr
}
