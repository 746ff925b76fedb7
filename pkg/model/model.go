package model

import (
	"github.com/grexie/iris/pkg/numeric"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Model is a multinomial logistic regression over a fixed number of classes
// and features. Parameters live in a single (classes, features+1) tensor whose
// last column holds the class biases.
//
// A Model is only mutated by the Trainer that produced it. Once Fit returns it
// is safe for concurrent readers.
type Model struct {
	classes  int
	features int
	params   *tensor.Dense
}

func NewModel(classes, features int) (*Model, error) {
	if classes < 1 {
		return nil, errors.Wrapf(ErrInvalidParameter, "classes must be at least 1, got %d", classes)
	}
	if features < 1 {
		return nil, errors.Wrapf(ErrDimensionMismatch, "features must be at least 1, got %d", features)
	}

	return &Model{
		classes:  classes,
		features: features,
		params: tensor.New(
			tensor.WithShape(classes, features+1),
			tensor.Of(tensor.Float64),
		),
	}, nil
}

func (m *Model) Classes() int {
	return m.classes
}

func (m *Model) Features() int {
	return m.features
}

// Weights returns a copy of the (classes, features) weight matrix.
func (m *Model) Weights() [][]float64 {
	data := m.data()
	stride := m.features + 1
	out := make([][]float64, m.classes)
	for k := range out {
		out[k] = append([]float64(nil), data[k*stride:k*stride+m.features]...)
	}
	return out
}

// Biases returns a copy of the per-class biases.
func (m *Model) Biases() []float64 {
	data := m.data()
	stride := m.features + 1
	out := make([]float64, m.classes)
	for k := range out {
		out[k] = data[k*stride+m.features]
	}
	return out
}

func (m *Model) Scores(sample []float64) ([]float64, error) {
	if len(sample) != m.features {
		return nil, errors.Wrapf(ErrDimensionMismatch, "sample has %d features, model expects %d", len(sample), m.features)
	}
	return m.scoresTo(make([]float64, m.classes), sample), nil
}

func (m *Model) PredictProba(sample []float64) ([]float64, error) {
	scores, err := m.Scores(sample)
	if err != nil {
		return nil, err
	}
	return numeric.SoftmaxTo(scores, scores), nil
}

func (m *Model) PredictClass(sample []float64) (int, error) {
	probs, err := m.PredictProba(sample)
	if err != nil {
		return 0, err
	}
	return numeric.Argmax(probs), nil
}

// scoresTo writes the class scores for an already validated sample into dst.
func (m *Model) scoresTo(dst []float64, sample []float64) []float64 {
	data := m.data()
	stride := m.features + 1
	for k := range m.classes {
		row := data[k*stride : (k+1)*stride]
		score, _ := numeric.Dot(sample, row[:m.features])
		dst[k] = score + row[m.features]
	}
	return dst
}

func (m *Model) data() []float64 {
	return m.params.Data().([]float64)
}
