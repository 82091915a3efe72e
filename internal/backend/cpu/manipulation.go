package cpu

import (
	"fmt"

	"github.com/decay-ml/decay/internal/tensor"
)

// Reshape returns a view of the tensor under a new shape.
// The number of elements must be unchanged.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	return t.WithShape(newShape)
}

// Transpose transposes a 2D tensor: (M, N) -> (N, M).
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor) *tensor.RawTensor {
	shape := t.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("transpose: only 2D tensors supported, got %dD", len(shape)))
	}
	if t.DType() != tensor.Float32 {
		panic(fmt.Sprintf("transpose: unsupported dtype %s (only float32 supported)", t.DType()))
	}

	rows, cols := shape[0], shape[1]
	result := mustNewRaw(tensor.Shape{cols, rows})
	src := t.AsFloat32()
	dst := result.AsFloat32()

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			dst[c*rows+r] = src[r*cols+c]
		}
	}
	return result
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	return cpu.scalarOp("mulscalar", x, func(v float32) float32 { return v * scalar })
}

// AddScalar adds a scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	return cpu.scalarOp("addscalar", x, func(v float32) float32 { return v + scalar })
}

func (cpu *CPUBackend) scalarOp(name string, x *tensor.RawTensor, op func(float32) float32) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32 supported)", name, x.DType()))
	}

	result := mustNewRaw(x.Shape())
	src := x.AsFloat32()
	dst := result.AsFloat32()
	for i, v := range src {
		dst[i] = op(v)
	}
	return result
}
