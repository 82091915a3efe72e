package tensor

import (
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	dtype := inferDataType(dummy)

	raw, err := NewRaw(shape, dtype)
	if err != nil {
		panic(err) // Shape validation should prevent this
	}

	// Data is already zero-initialized by make()
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var one T = 1
	return Full(shape, one, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a float32 tensor with random values from a normal
// distribution (mean=0, std=1), using the Box-Muller transform.
//
// The caller supplies the random source so that runs are reproducible
// from a single seed.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	t := tensor.Randn[float32](Shape{100, 100}, backend, rng)
func Randn[T DType, B Backend](shape Shape, b B, rng *rand.Rand) *Tensor[T, B] {
	var dummy T
	if inferDataType(dummy) != Float32 {
		panic("Randn only supports float32 tensors")
	}

	t := Zeros[T, B](shape, b)
	data := any(t.Data()).([]float32)

	for i := 0; i < len(data); i += 2 {
		u1 := rng.Float64()
		u2 := rng.Float64()
		z0 := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
		z1 := math.Sqrt(-2.0*math.Log(u1)) * math.Sin(2.0*math.Pi*u2)
		data[i] = float32(z0)
		if i+1 < len(data) {
			data[i+1] = float32(z1)
		}
	}
	return t
}
