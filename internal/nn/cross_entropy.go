package nn

import (
	"fmt"
	"math"

	"github.com/decay-ml/decay/internal/tensor"
)

// CrossEntropyLoss computes cross-entropy loss for multi-class
// classification from predicted probability distributions.
//
// Mathematical formulation, for softmax output p and true class t:
//
//	loss = -log(p[t])
//
// The model's softmax output guarantees strictly positive probabilities
// for well-behaved parameters; a degenerate distribution produces -Inf
// or NaN, which propagates unguarded through the run.
//
// Usage:
//
//	criterion := nn.NewCrossEntropyLoss[Backend]()
//	probs := model.Forward(input)               // [batch_size, num_classes]
//	losses := criterion.Forward(probs, targets) // per-sample, [batch_size]
type CrossEntropyLoss[B tensor.Backend] struct{}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss[B tensor.Backend]() *CrossEntropyLoss[B] {
	return &CrossEntropyLoss[B]{}
}

// Forward computes the per-sample negative log-likelihood.
//
// Parameters:
//   - probs: Predicted class probabilities with shape [batch_size, num_classes],
//     each row summing to 1
//   - targets: Ground truth class indices with shape [batch_size]
//
// Returns a [batch_size] tensor of per-sample losses.
func (c *CrossEntropyLoss[B]) Forward(
	probs *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
) *tensor.Tensor[float32, B] {
	shape := probs.Shape()
	if len(shape) != 2 {
		panic("CrossEntropyLoss: probs must be 2D [batch_size, num_classes]")
	}

	batchSize := shape[0]
	numClasses := shape[1]

	targetsData := targets.Raw().AsInt32()
	if len(targetsData) != batchSize {
		panic("CrossEntropyLoss: targets must have shape [batch_size]")
	}

	probsData := probs.Raw().AsFloat32()

	lossRaw, err := tensor.NewRaw(tensor.Shape{batchSize}, tensor.Float32)
	if err != nil {
		panic(err)
	}
	lossData := lossRaw.AsFloat32()

	for b := 0; b < batchSize; b++ {
		target := int(targetsData[b])
		if target < 0 || target >= numClasses {
			panic(fmt.Sprintf("CrossEntropyLoss: target %d out of range [0, %d)", target, numClasses))
		}
		p := probsData[b*numClasses+target]
		lossData[b] = float32(-math.Log(float64(p)))
	}

	return tensor.New[float32, B](lossRaw, probs.Backend())
}

// Mean returns the mean of a per-sample loss vector.
// This is the value fed into the moving loss.
func Mean[B tensor.Backend](losses *tensor.Tensor[float32, B]) float32 {
	return losses.Sum() / float32(losses.NumElements())
}

// argmax returns the index of the maximum value in the slice.
// Ties resolve to the lowest index; evaluation relies on this for
// reproducibility.
func argmax(z []float32) int {
	maxIdx := 0
	maxVal := z[0]
	for i := 1; i < len(z); i++ {
		if z[i] > maxVal {
			maxVal = z[i]
			maxIdx = i
		}
	}
	return maxIdx
}

// Accuracy computes classification accuracy for a batch.
//
// Parameters:
//   - probs: Predicted class probabilities [batch_size, num_classes]
//   - targets: Ground truth class indices [batch_size]
//
// Returns the fraction of samples whose argmax prediction matches the
// true label, as a float between 0 and 1.
func Accuracy[B tensor.Backend](
	probs *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
) float32 {
	shape := probs.Shape()
	batchSize := shape[0]
	numClasses := shape[1]

	probsData := probs.Raw().AsFloat32()
	targetsData := targets.Raw().AsInt32()

	correct := 0
	for b := 0; b < batchSize; b++ {
		row := probsData[b*numClasses : (b+1)*numClasses]
		if argmax(row) == int(targetsData[b]) {
			correct++
		}
	}

	return float32(correct) / float32(batchSize)
}

// CorrectCount returns the number of samples whose argmax prediction
// matches the true label. Evaluation accumulates these counts so the
// denominator is exactly the samples seen.
func CorrectCount[B tensor.Backend](
	probs *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
) int {
	shape := probs.Shape()
	batchSize := shape[0]
	numClasses := shape[1]

	probsData := probs.Raw().AsFloat32()
	targetsData := targets.Raw().AsInt32()

	correct := 0
	for b := 0; b < batchSize; b++ {
		row := probsData[b*numClasses : (b+1)*numClasses]
		if argmax(row) == int(targetsData[b]) {
			correct++
		}
	}
	return correct
}
