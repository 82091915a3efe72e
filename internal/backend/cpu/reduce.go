package cpu

import (
	"fmt"

	"github.com/decay-ml/decay/internal/tensor"
)

// Sum returns the sum of all elements of a float32 tensor.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) float32 {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("sum: unsupported dtype %s (only float32 supported)", x.DType()))
	}

	total := float32(0)
	for _, v := range x.AsFloat32() {
		total += v
	}
	return total
}

// SumDim sums a 2D tensor along the given dimension.
// SumDim(x, 0) of a [N, C] tensor yields the [C] column sums; SumDim(x, 1)
// yields the [N] row sums.
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("sumdim: only 2D tensors supported, got %dD", len(shape)))
	}
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("sumdim: unsupported dtype %s (only float32 supported)", x.DType()))
	}

	rows, cols := shape[0], shape[1]
	src := x.AsFloat32()

	switch dim {
	case 0:
		result := mustNewRaw(tensor.Shape{cols})
		dst := result.AsFloat32()
		for r := 0; r < rows; r++ {
			row := src[r*cols : (r+1)*cols]
			for c, v := range row {
				dst[c] += v
			}
		}
		return result
	case 1:
		result := mustNewRaw(tensor.Shape{rows})
		dst := result.AsFloat32()
		for r := 0; r < rows; r++ {
			row := src[r*cols : (r+1)*cols]
			for _, v := range row {
				dst[r] += v
			}
		}
		return result
	default:
		panic(fmt.Sprintf("sumdim: dimension %d out of range for 2D tensor", dim))
	}
}
