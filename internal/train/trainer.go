// Package train runs the mini-batch gradient-descent training loop and
// the accuracy evaluation for the overfitting experiment.
package train

import (
	"fmt"
	"math/rand"

	"github.com/decay-ml/decay/internal/data"
	"github.com/decay-ml/decay/internal/model"
	"github.com/decay-ml/decay/internal/nn"
	"github.com/decay-ml/decay/internal/optim"
	"github.com/decay-ml/decay/internal/tensor"
)

// State is the trainer's position in its lifecycle. Completed is
// terminal: a Trainer drives exactly one run and never mutates the
// parameters afterwards.
type State int

// Trainer lifecycle states.
const (
	StateInitialized State = iota
	StateEpochRunning
	StateBatchProcessing
	StateEvaluating
	StateCompleted
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateEpochRunning:
		return "epoch-running"
	case StateBatchProcessing:
		return "batch-processing"
	case StateEvaluating:
		return "evaluating"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Config captures the knobs of one training run.
type Config struct {
	Epochs       int        // Number of passes over the training partition
	BatchSize    int        // Mini-batch size (final batch may be partial)
	LearningRate float32    // Fixed step size, no schedule
	Momentum     float32    // SGD momentum; the experiments use 0
	Penalty      nn.Penalty // Parameter penalty; nil means none
	Seed         int64      // Seeds the per-epoch shuffle
}

// movingLossDecay is the blend factor of the reporting EMA:
// 0.99 of the previous value, 0.01 of the newest batch loss.
const movingLossDecay = 0.99

// EpochStats is the four-value tuple exposed after every epoch.
// The host decides the printing cadence.
type EpochStats struct {
	Epoch      int     // 1-based epoch index
	MovingLoss float64 // Exponentially smoothed batch loss
	TrainAcc   float32 // Accuracy over the training partition
	TestAcc    float32 // Accuracy over the test partition
}

// Trainer owns the parameters of one model for the duration of a run
// and applies plain gradient-descent updates batch by batch.
//
// The loop is single-threaded and synchronous. There is no error
// recovery: numeric divergence (NaN, Inf) propagates silently into the
// reported metrics, which is part of the behavior under study.
type Trainer[B tensor.Backend] struct {
	cfg     Config
	model   *model.SoftmaxClassifier[B]
	backend B
	rng     *rand.Rand
	state   State
}

// New creates a trainer for the given model.
// The model's parameters should be freshly initialized; reusing a model
// across experiments requires an explicit Reinit first.
func New[B tensor.Backend](m *model.SoftmaxClassifier[B], backend B, cfg Config) *Trainer[B] {
	if cfg.Penalty == nil {
		cfg.Penalty = nn.None{}
	}
	return &Trainer[B]{
		cfg:     cfg,
		model:   m,
		backend: backend,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		state:   StateInitialized,
	}
}

// State returns the trainer's current lifecycle state.
func (t *Trainer[B]) State() State {
	return t.state
}

// Run executes the configured number of epochs over the training
// partition. After each epoch it evaluates accuracy on both partitions
// with the just-updated parameters and invokes report with the epoch's
// stats. report may be nil.
//
// Returns an error if the trainer has already completed a run or the
// configuration is unusable; numeric problems during training are never
// errors.
func (t *Trainer[B]) Run(trainSet, testSet *data.Dataset, report func(EpochStats)) error {
	if t.state != StateInitialized {
		return fmt.Errorf("trainer: run already started (state %s)", t.state)
	}
	if t.cfg.Epochs <= 0 {
		return fmt.Errorf("trainer: epochs must be > 0, got %d", t.cfg.Epochs)
	}
	if t.cfg.BatchSize <= 0 {
		return fmt.Errorf("trainer: batch size must be > 0, got %d", t.cfg.BatchSize)
	}

	criterion := nn.NewCrossEntropyLoss[B]()
	optimizer := optim.NewSGD(t.model.Parameters(), optim.SGDConfig{
		LR:       t.cfg.LearningRate,
		Momentum: t.cfg.Momentum,
	})

	// Evaluation order is fixed; only the training visit order shuffles.
	trainEval, err := data.Batches(trainSet, t.cfg.BatchSize, nil, t.backend)
	if err != nil {
		return fmt.Errorf("trainer: batching train partition: %w", err)
	}
	testEval, err := data.Batches(testSet, t.cfg.BatchSize, nil, t.backend)
	if err != nil {
		return fmt.Errorf("trainer: batching test partition: %w", err)
	}

	params := t.model.Parameters()
	movingLoss := 0.0

	for epoch := 1; epoch <= t.cfg.Epochs; epoch++ {
		t.state = StateEpochRunning

		batches, err := data.Batches(trainSet, t.cfg.BatchSize, t.rng, t.backend)
		if err != nil {
			return fmt.Errorf("trainer: batching epoch %d: %w", epoch, err)
		}

		for i, batch := range batches {
			t.state = StateBatchProcessing

			probs := t.model.Forward(batch.Images)
			losses := criterion.Forward(probs, batch.Labels)
			batchLoss := float64(nn.Mean(losses)) + float64(nn.TotalPenalty(t.cfg.Penalty, params))

			grads := t.model.Backward(batch.Images, probs, batch.Labels)
			for _, p := range params {
				if g := grads[p.Tensor().Raw()]; g != nil {
					t.cfg.Penalty.AddGrad(p.Tensor().Data(), g.AsFloat32())
				}
			}
			optimizer.Step(grads)

			// The EMA restarts from the first batch of every epoch.
			if i == 0 {
				movingLoss = batchLoss
			} else {
				movingLoss = movingLossDecay*movingLoss + (1-movingLossDecay)*batchLoss
			}
		}

		t.state = StateEvaluating
		stats := EpochStats{
			Epoch:      epoch,
			MovingLoss: movingLoss,
			TrainAcc:   Evaluate(trainEval, t.model),
			TestAcc:    Evaluate(testEval, t.model),
		}
		if report != nil {
			report(stats)
		}
	}

	t.state = StateCompleted
	return nil
}
