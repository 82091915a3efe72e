package data

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTake(t *testing.T) {
	d := SyntheticDigits(2) // 20 samples

	assert.Equal(t, 5, d.Take(5).NumSamples())
	assert.Equal(t, 20, d.Take(100).NumSamples(), "prefix larger than dataset returns everything")
	assert.Equal(t, 20, d.Take(0).NumSamples())
}

func TestSplit(t *testing.T) {
	d := SyntheticDigits(10) // 100 samples

	trainSet, testSet := d.Split(0.2)
	assert.Equal(t, 80, trainSet.NumSamples())
	assert.Equal(t, 20, testSet.NumSamples())
}

func TestFeatures(t *testing.T) {
	d := SyntheticDigits(1)
	assert.Equal(t, 28*28, d.Features())

	empty := &Dataset{}
	assert.Equal(t, 0, empty.Features())
}

func TestSyntheticDigits_LabelsCoverAllClasses(t *testing.T) {
	d := SyntheticDigits(3)

	seen := make(map[int32]int)
	for _, l := range d.Labels {
		seen[l]++
	}
	require.Len(t, seen, 10)
	for digit, count := range seen {
		assert.Equal(t, 3, count, "digit %d", digit)
	}
}

func TestTwoClass(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	d := TwoClass(50, 4, 0.1, 0, rng)

	require.Equal(t, 50, d.NumSamples())
	require.Equal(t, 4, d.Features())

	// Without noise, class 0 clusters around +1 and class 1 around -1.
	for i, img := range d.Images {
		mean := float32(0)
		for _, v := range img {
			mean += v
		}
		mean /= float32(len(img))
		if d.Labels[i] == 0 {
			assert.Greater(t, mean, float32(0))
		} else {
			assert.Less(t, mean, float32(0))
		}
	}
}

func TestTwoClass_NoiseFlipsLabels(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	clean := TwoClass(200, 2, 0.1, 0, rng)

	rng = rand.New(rand.NewSource(2))
	noisy := TwoClass(200, 2, 0.1, 0.3, rng)

	flipped := 0
	for i := range clean.Labels {
		if clean.Labels[i] != noisy.Labels[i] {
			flipped++
		}
	}
	assert.Greater(t, flipped, 0, "a 30%% noise rate must flip some labels")
}
