package model

import (
	"fmt"

	"github.com/pkg/errors"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

const lossEpsilon = 1e-12

// CategoricalCrossEntropy builds -mean(sum(target * log(pred + eps), axis=1))
// for row-major (samples, classes) predictions and one-hot targets.
func CategoricalCrossEntropy(pred, target *gorgonia.Node) (*gorgonia.Node, error) {
	safePred, err := gorgonia.Add(pred, gorgonia.NewConstant(lossEpsilon))
	if err != nil {
		return nil, fmt.Errorf("failed to add epsilon: %w", err)
	}

	logPred, err := gorgonia.Log(safePred)
	if err != nil {
		return nil, fmt.Errorf("failed to compute log: %w", err)
	}

	losses, err := gorgonia.HadamardProd(target, logPred)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hadamard product: %w", err)
	}

	sumLosses, err := gorgonia.Sum(losses, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to compute sum: %w", err)
	}

	meanLoss, err := gorgonia.Mean(sumLosses)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean: %w", err)
	}

	return gorgonia.Neg(meanLoss)
}

// Loss returns the mean multinomial cross-entropy of m over a labelled
// dataset.
func Loss(m *Model, features [][]float64, labels []int) (float64, error) {
	nFeatures, err := validateDataset(m.classes, features, labels)
	if err != nil {
		return 0, err
	}
	if nFeatures != m.features {
		return 0, errors.Wrapf(ErrDimensionMismatch, "samples have %d features, model expects %d", nFeatures, m.features)
	}

	nSamples := len(features)
	inputSize := m.features + 1

	g := gorgonia.NewGraph()

	xTensor := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(nSamples, inputSize),
		gorgonia.WithValue(tensor.New(
			tensor.WithShape(nSamples, inputSize),
			tensor.WithBacking(flattenWithBias(features)),
		)),
		gorgonia.WithName("x"))

	yTensor := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(nSamples, m.classes),
		gorgonia.WithValue(tensor.New(
			tensor.WithShape(nSamples, m.classes),
			tensor.WithBacking(OneHotEncode(labels, m.classes)),
		)),
		gorgonia.WithName("y"))

	w := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(inputSize, m.classes),
		gorgonia.WithValue(tensor.New(
			tensor.WithShape(inputSize, m.classes),
			tensor.WithBacking(transposeParams(m)),
		)),
		gorgonia.WithName("w"))

	logits, err := gorgonia.Mul(xTensor, w)
	if err != nil {
		return 0, fmt.Errorf("failed to compute logits: %w", err)
	}

	probs, err := gorgonia.SoftMax(logits)
	if err != nil {
		return 0, fmt.Errorf("failed to compute softmax: %w", err)
	}

	loss, err := CategoricalCrossEntropy(probs, yTensor)
	if err != nil {
		return 0, err
	}

	vm := gorgonia.NewTapeMachine(g)
	defer vm.Close()

	if err := vm.RunAll(); err != nil {
		return 0, fmt.Errorf("forward pass failed: %w", err)
	}

	return scalarValue(loss)
}
