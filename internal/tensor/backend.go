package tensor

// Backend defines the interface that compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// The only implementation in this repository is the CPU backend
// (internal/backend/cpu); the interface keeps the numeric kernels
// swappable and the tensor API free of kernel details.
type Backend interface {
	// Element-wise binary operations
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// Matrix operations
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor) *RawTensor // 2-D only

	// Scalar operations (element-wise with scalar)
	MulScalar(x *RawTensor, scalar float32) *RawTensor
	AddScalar(x *RawTensor, scalar float32) *RawTensor

	// Activation functions
	Softmax(x *RawTensor, dim int) *RawTensor // softmax along dimension

	// Reductions
	Sum(x *RawTensor) float32            // sum of all elements
	SumDim(x *RawTensor, dim int) *RawTensor // sum along dimension (2-D only)
}
