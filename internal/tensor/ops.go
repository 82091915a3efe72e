package tensor

// Add performs element-wise addition.
// A [1, C] row vector broadcasts across the rows of a [N, C] operand.
//
// Example:
//
//	a := tensor.Ones[float32](Shape{3, 5}, backend)
//	b := tensor.Ones[float32](Shape{1, 5}, backend)
//	c := a.Add(b) // Shape: [3, 5] (row-broadcasted)
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Add(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Sub performs element-wise subtraction.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Sub(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Mul performs element-wise multiplication.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Mul(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// MatMul performs matrix multiplication.
//
// Requirements:
//   - 2D tensors: (M, K) @ (K, N) → (M, N)
//
// Example:
//
//	a := tensor.Randn[float32](Shape{3, 4}, backend, rng)
//	b := tensor.Randn[float32](Shape{4, 5}, backend, rng)
//	c := a.MatMul(b) // Shape: [3, 5]
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.MatMul(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Reshape returns a tensor with the same data but different shape.
// The new shape must have the same number of elements.
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	result := t.backend.Reshape(t.raw, Shape(newShape))
	return New[T, B](result, t.backend)
}

// T is the 2D transpose (swaps rows and columns).
// Panics if the tensor is not 2D.
func (t *Tensor[T, B]) T() *Tensor[T, B] {
	result := t.backend.Transpose(t.raw)
	return New[T, B](result, t.backend)
}

// MulScalar multiplies every element by a scalar.
func (t *Tensor[T, B]) MulScalar(scalar float32) *Tensor[T, B] {
	result := t.backend.MulScalar(t.raw, scalar)
	return New[T, B](result, t.backend)
}

// AddScalar adds a scalar to every element.
func (t *Tensor[T, B]) AddScalar(scalar float32) *Tensor[T, B] {
	result := t.backend.AddScalar(t.raw, scalar)
	return New[T, B](result, t.backend)
}

// Softmax computes softmax along the given dimension.
func (t *Tensor[T, B]) Softmax(dim int) *Tensor[T, B] {
	result := t.backend.Softmax(t.raw, dim)
	return New[T, B](result, t.backend)
}

// Sum returns the sum of all elements.
func (t *Tensor[T, B]) Sum() float32 {
	return t.backend.Sum(t.raw)
}

// SumDim sums along the given dimension of a 2D tensor.
// SumDim(0) of a [N, C] tensor yields a [C] tensor of column sums.
func (t *Tensor[T, B]) SumDim(dim int) *Tensor[T, B] {
	result := t.backend.SumDim(t.raw, dim)
	return New[T, B](result, t.backend)
}
