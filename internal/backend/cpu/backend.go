// Package cpu implements the CPU backend on top of gonum's float32 BLAS.
package cpu

import (
	"fmt"

	"github.com/decay-ml/decay/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
// Matrix kernels delegate to gonum blas32; element-wise kernels are
// plain loops over the flat float32 views.
type CPUBackend struct{}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Add performs element-wise addition.
// Supports equal shapes, plus broadcasting a [1, C] row vector across
// the rows of a [N, C] operand (the bias-addition path).
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("add", a, b, func(x, y float32) float32 { return x + y })
}

// Sub performs element-wise subtraction.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("sub", a, b, func(x, y float32) float32 { return x - y })
}

// Mul performs element-wise multiplication.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("mul", a, b, func(x, y float32) float32 { return x * y })
}

func (cpu *CPUBackend) binaryOp(name string, a, b *tensor.RawTensor, op func(x, y float32) float32) *tensor.RawTensor {
	if a.DType() != tensor.Float32 || b.DType() != tensor.Float32 {
		panic(fmt.Sprintf("%s: unsupported dtypes %s, %s (only float32 supported)", name, a.DType(), b.DType()))
	}

	aShape := a.Shape()
	bShape := b.Shape()

	switch {
	case aShape.Equal(bShape):
		result := mustNewRaw(aShape)
		dst, x, y := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		for i := range dst {
			dst[i] = op(x[i], y[i])
		}
		return result

	case isRowBroadcast(aShape, bShape):
		// b is a [1, C] row vector applied to every row of a [N, C].
		result := mustNewRaw(aShape)
		dst, x, row := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		cols := aShape[1]
		for i := range dst {
			dst[i] = op(x[i], row[i%cols])
		}
		return result

	default:
		panic(fmt.Sprintf("%s: shape mismatch %v vs %v", name, aShape, bShape))
	}
}

// isRowBroadcast reports whether b is a [1, C] row vector compatible
// with the rows of a [N, C] tensor a.
func isRowBroadcast(a, b tensor.Shape) bool {
	return len(a) == 2 && len(b) == 2 && b[0] == 1 && a[1] == b[1]
}

// mustNewRaw allocates a float32 RawTensor, panicking on invalid shapes.
// Shapes reaching the backend have already been validated upstream.
func mustNewRaw(shape tensor.Shape) *tensor.RawTensor {
	raw, err := tensor.NewRaw(shape, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("cpu: failed to allocate result tensor: %v", err))
	}
	return raw
}
