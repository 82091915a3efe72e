// Package data loads and batches the labeled image samples consumed by
// the training loop. Sources: official IDX binary files, Kaggle-style
// CSV, or synthetic generators for tests and smoke runs.
package data

import "fmt"

// Dataset holds a partition of labeled image samples.
//
// Images are flattened pixel vectors normalized to [0, 1]; Labels are
// the matching class indices. Samples are immutable once loaded.
type Dataset struct {
	Images [][]float32 // [num_samples, features]
	Labels []int32     // [num_samples]
}

// NumSamples returns the total number of samples in the dataset.
func (d *Dataset) NumSamples() int {
	return len(d.Images)
}

// Features returns the dimensionality of one flattened sample,
// or 0 for an empty dataset.
func (d *Dataset) Features() int {
	if len(d.Images) == 0 {
		return 0
	}
	return len(d.Images[0])
}

// Take returns a dataset view over the first n samples.
// If n exceeds the dataset size, the whole dataset is returned.
// The experiment trains on a fixed-size prefix of each partition.
func (d *Dataset) Take(n int) *Dataset {
	if n <= 0 || n >= d.NumSamples() {
		return d
	}
	return &Dataset{
		Images: d.Images[:n],
		Labels: d.Labels[:n],
	}
}

// Split splits the dataset into two partitions.
//
// Parameters:
//   - holdoutRatio: fraction of samples in the second partition
//     (e.g. 0.2 for an 80/20 split)
func (d *Dataset) Split(holdoutRatio float32) (*Dataset, *Dataset) {
	splitIdx := int(float32(d.NumSamples()) * (1.0 - holdoutRatio))

	return &Dataset{
			Images: d.Images[:splitIdx],
			Labels: d.Labels[:splitIdx],
		}, &Dataset{
			Images: d.Images[splitIdx:],
			Labels: d.Labels[splitIdx:],
		}
}

// validate checks the image/label invariant shared by all loaders.
func validate(images [][]float32, labels []int32) error {
	if len(images) != len(labels) {
		return fmt.Errorf("image count (%d) != label count (%d)", len(images), len(labels))
	}
	return nil
}
