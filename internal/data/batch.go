package data

import (
	"fmt"
	"math/rand"

	"github.com/decay-ml/decay/internal/tensor"
)

// Batch is one mini-batch of samples, ready for the model.
type Batch[B tensor.Backend] struct {
	Images *tensor.Tensor[float32, B] // [size, features]
	Labels *tensor.Tensor[int32, B]   // [size]
	Size   int
}

// Batches splits a dataset into mini-batches.
//
// When rng is non-nil the sample order is shuffled with a Fisher-Yates
// permutation drawn from rng; the trainer passes its seeded source and
// rebuilds batches every epoch, so the visit order is reproducible from
// the run's seed. The final batch may be smaller when the dataset does
// not divide evenly; a batch size larger than the dataset yields a
// single batch holding everything.
func Batches[B tensor.Backend](
	d *Dataset,
	batchSize int,
	rng *rand.Rand,
	backend B,
) ([]*Batch[B], error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be > 0, got %d", batchSize)
	}
	if err := validate(d.Images, d.Labels); err != nil {
		return nil, err
	}

	numSamples := d.NumSamples()
	features := d.Features()

	indices := make([]int, numSamples)
	for i := range indices {
		indices[i] = i
	}
	if rng != nil {
		rng.Shuffle(numSamples, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	numBatches := (numSamples + batchSize - 1) / batchSize
	batches := make([]*Batch[B], 0, numBatches)

	for start := 0; start < numSamples; start += batchSize {
		end := start + batchSize
		if end > numSamples {
			end = numSamples
		}
		size := end - start

		imagesRaw, err := tensor.NewRaw(tensor.Shape{size, features}, tensor.Float32)
		if err != nil {
			return nil, fmt.Errorf("failed to create images tensor: %w", err)
		}
		labelsRaw, err := tensor.NewRaw(tensor.Shape{size}, tensor.Int32)
		if err != nil {
			return nil, fmt.Errorf("failed to create labels tensor: %w", err)
		}

		imagesData := imagesRaw.AsFloat32()
		labelsData := labelsRaw.AsInt32()

		for j := start; j < end; j++ {
			idx := indices[j]
			copy(imagesData[(j-start)*features:(j-start+1)*features], d.Images[idx])
			labelsData[j-start] = d.Labels[idx]
		}

		batches = append(batches, &Batch[B]{
			Images: tensor.New[float32, B](imagesRaw, backend),
			Labels: tensor.New[int32, B](labelsRaw, backend),
			Size:   size,
		})
	}

	return batches, nil
}
