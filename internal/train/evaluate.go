package train

import (
	"github.com/decay-ml/decay/internal/data"
	"github.com/decay-ml/decay/internal/model"
	"github.com/decay-ml/decay/internal/nn"
	"github.com/decay-ml/decay/internal/tensor"
)

// Evaluate returns the fraction of correctly classified samples over the
// given batches: (count where argmax(prediction) equals the true label)
// divided by the total samples seen. Argmax ties resolve to the lowest
// class index.
//
// Evaluation is a pure read of the current parameters; it never mutates
// the model.
func Evaluate[B tensor.Backend](batches []*data.Batch[B], m *model.SoftmaxClassifier[B]) float32 {
	correct := 0
	total := 0

	for _, batch := range batches {
		probs := m.Forward(batch.Images)
		correct += nn.CorrectCount(probs, batch.Labels)
		total += batch.Size
	}

	if total == 0 {
		return 0
	}
	return float32(correct) / float32(total)
}
