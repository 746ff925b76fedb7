package model

import (
	"math"

	"github.com/grexie/iris/pkg/numeric"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Config fixes the output dimensionality of a trainer.
type Config struct {
	// Classes controls the number of rows of the weight matrix, the length of
	// the bias vector and the length of every score vector.
	Classes int
}

func DefaultConfig() Config {
	return Config{Classes: 3}
}

func (c Config) Validate() error {
	if c.Classes < 1 {
		return errors.Wrapf(ErrInvalidParameter, "classes must be at least 1, got %d", c.Classes)
	}
	return nil
}

// EpochFunc observes a model after each epoch's parameter update. It runs on
// the training goroutine and must not retain or mutate the model.
type EpochFunc func(epoch int, m *Model)

type TrainerOption func(*Trainer)

func WithEpochHook(fn EpochFunc) TrainerOption {
	return func(t *Trainer) {
		t.onEpoch = fn
	}
}

// Trainer fits models with full-batch gradient descent on the multinomial
// cross-entropy loss.
type Trainer struct {
	config  Config
	onEpoch EpochFunc
}

func NewTrainer(config Config, options ...TrainerOption) (*Trainer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	t := &Trainer{config: config}
	for _, option := range options {
		option(t)
	}
	return t, nil
}

func (t *Trainer) Config() Config {
	return t.config
}

// Fit trains a new zero-initialized model for the given number of epochs.
// Every input is validated before the first epoch; on error no model is
// returned.
func (t *Trainer) Fit(features [][]float64, labels []int, learningRate float64, epochs int) (*Model, error) {
	if math.IsNaN(learningRate) || math.IsInf(learningRate, 0) || learningRate <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "learning rate must be positive, got %v", learningRate)
	}
	if epochs < 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "epochs must not be negative, got %d", epochs)
	}

	nFeatures, err := validateDataset(t.config.Classes, features, labels)
	if err != nil {
		return nil, err
	}

	m, err := NewModel(t.config.Classes, nFeatures)
	if err != nil {
		return nil, err
	}

	nSamples := float64(len(features))
	stride := nFeatures + 1
	params := m.data()
	scores := make([]float64, t.config.Classes)

	for epoch := range epochs {
		// dw and db share the parameter layout: row k is dw[k] followed by db[k]
		grads := make([]float64, len(params))

		for i, feature := range features {
			probs := numeric.SoftmaxTo(scores, m.scoresTo(scores, feature))

			for k, p := range probs {
				e := p
				if labels[i] == k {
					e = p - 1
				}
				row := grads[k*stride : (k+1)*stride]
				floats.AddScaled(row[:nFeatures], e, feature)
				row[nFeatures] += e
			}
		}

		for i := range params {
			params[i] -= learningRate * grads[i] / nSamples
		}

		if t.onEpoch != nil {
			t.onEpoch(epoch, m)
		}
	}

	return m, nil
}

// Train is a convenience wrapper around NewTrainer and Fit.
func Train(config Config, features [][]float64, labels []int, learningRate float64, epochs int) (*Model, error) {
	t, err := NewTrainer(config)
	if err != nil {
		return nil, err
	}
	return t.Fit(features, labels, learningRate, epochs)
}

// validateDataset checks that features and labels describe a non-empty,
// rectangular dataset with labels in [0, classes) and returns the feature
// count.
func validateDataset(classes int, features [][]float64, labels []int) (int, error) {
	if len(features) != len(labels) {
		return 0, errors.Wrapf(ErrDimensionMismatch, "%d samples but %d labels", len(features), len(labels))
	}
	if len(features) == 0 {
		return 0, errors.Wrap(ErrEmptyDataset, "no samples")
	}

	nFeatures := len(features[0])
	if nFeatures == 0 {
		return 0, errors.Wrap(ErrDimensionMismatch, "samples have no features")
	}
	for i, feature := range features {
		if len(feature) != nFeatures {
			return 0, errors.Wrapf(ErrDimensionMismatch, "sample %d has %d features, expected %d", i, len(feature), nFeatures)
		}
	}
	for i, label := range labels {
		if label < 0 || label >= classes {
			return 0, errors.Wrapf(ErrDimensionMismatch, "label %d of sample %d is outside [0, %d)", label, i, classes)
		}
	}

	return nFeatures, nil
}
