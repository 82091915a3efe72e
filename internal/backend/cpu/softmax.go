package cpu

import (
	"fmt"
	"math"

	"github.com/decay-ml/decay/internal/tensor"
)

// Softmax computes softmax along the specified dimension of a 2D tensor.
// Softmax(x_i) = exp(x_i) / sum(exp(x_j)) for all j in dimension.
//
// Only dim=1 (per-row softmax over a [N, C] tensor) is supported: the
// classifier normalizes class scores per sample.
func (cpu *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("softmax: only 2D tensors supported, got %dD", len(shape)))
	}
	if dim < 0 {
		dim = len(shape) + dim
	}
	if dim != 1 {
		panic(fmt.Sprintf("softmax: only dim=1 supported, got %d", dim))
	}
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("softmax: unsupported dtype %s (only float32 supported)", x.DType()))
	}

	rows, cols := shape[0], shape[1]
	result := mustNewRaw(shape)
	src := x.AsFloat32()
	dst := result.AsFloat32()

	for r := 0; r < rows; r++ {
		row := src[r*cols : (r+1)*cols]
		out := dst[r*cols : (r+1)*cols]

		// Subtract the row max before exponentiating for stability.
		maxVal := row[0]
		for _, v := range row[1:] {
			if v > maxVal {
				maxVal = v
			}
		}

		sum := float32(0)
		for i, v := range row {
			e := float32(math.Exp(float64(v - maxVal)))
			out[i] = e
			sum += e
		}
		for i := range out {
			out[i] /= sum
		}
	}

	return result
}
