package nn

import (
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/decay-ml/decay/internal/tensor"
)

// Penalty puts pressure on parameter values to discourage overfitting.
//
// Loss returns the penalty contribution for one flat parameter vector;
// AddGrad adds the penalty's gradient in place into an existing gradient
// slice of the same length.
type Penalty interface {
	Loss(params []float32) float32
	AddGrad(params, grad []float32)
}

// None is the zero penalty: it contributes nothing to the loss or the
// gradients. Used by the unregularized run.
type None struct{}

// Loss always returns 0.
func (None) Loss(params []float32) float32 { return 0 }

// AddGrad leaves the gradient untouched.
func (None) AddGrad(params, grad []float32) {}

// L2 is the weight-decay penalty λ·Σp² over every parameter element.
type L2 struct {
	Lambda float32 // Relative weight compared to the data loss
}

// Loss returns λ·Σp², computed as a dot product of the parameter vector
// with itself.
func (l L2) Loss(params []float32) float32 {
	v := blas32.Vector{N: len(params), Inc: 1, Data: params}
	return l.Lambda * blas32.Dot(v, v)
}

// AddGrad adds d(λ·Σp²)/dp = 2λp into the gradient.
func (l L2) AddGrad(params, grad []float32) {
	for i, p := range params {
		grad[i] += 2 * l.Lambda * p
	}
}

// TotalPenalty sums the penalty over every parameter of a model.
func TotalPenalty[B tensor.Backend](p Penalty, params []*Parameter[B]) float32 {
	total := float32(0)
	for _, param := range params {
		total += p.Loss(param.Tensor().Data())
	}
	return total
}
