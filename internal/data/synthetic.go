package data

import "math/rand"

// SyntheticDigits creates a tiny synthetic digit dataset for smoke runs
// when no real data files are available.
//
// Each digit 0-9 gets count samples with a simple bright-band pattern
// keyed to its value. This is NOT realistic digit data, just enough for
// the pipeline to run end to end.
func SyntheticDigits(count int) *Dataset {
	numSamples := 10 * count
	images := make([][]float32, numSamples)
	labels := make([]int32, numSamples)

	for i := 0; i < numSamples; i++ {
		digit := i % 10
		images[i] = make([]float32, numPixels)
		labels[i] = int32(digit)

		startRow := digit * 2
		for row := startRow; row < startRow+8 && row < 28; row++ {
			for col := 5; col < 23; col++ {
				images[i][row*28+col] = 0.8
			}
		}
	}

	return &Dataset{Images: images, Labels: labels}
}

// TwoClass generates a linearly separable two-class dataset, optionally
// with flipped labels.
//
// Class c samples cluster around a mean of (-1)^c along every feature,
// with Gaussian jitter of the given spread. A noise fraction > 0 flips
// that share of labels at random, which makes the partition imperfectly
// learnable; a noisy held-out partition is how the overfitting gap is
// demonstrated.
func TwoClass(numSamples, features int, spread, noise float64, rng *rand.Rand) *Dataset {
	images := make([][]float32, numSamples)
	labels := make([]int32, numSamples)

	for i := 0; i < numSamples; i++ {
		class := int32(i % 2)
		mean := 1.0
		if class == 1 {
			mean = -1.0
		}

		images[i] = make([]float32, features)
		for j := range images[i] {
			images[i][j] = float32(mean + rng.NormFloat64()*spread)
		}

		if noise > 0 && rng.Float64() < noise {
			class = 1 - class
		}
		labels[i] = class
	}

	return &Dataset{Images: images, Labels: labels}
}
