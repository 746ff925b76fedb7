package model

type Prediction struct {
	Class         int
	Probabilities []float64
}

func (m *Model) Predict(sample []float64) (Prediction, error) {
	probs, err := m.PredictProba(sample)
	if err != nil {
		return Prediction{}, err
	}
	return Prediction{
		Class:         argmax(probs),
		Probabilities: probs,
	}, nil
}

// Predict runs the forward pass of a fitted model for a single sample.
func Predict(m *Model, sample []float64) (Prediction, error) {
	return m.Predict(sample)
}

// PredictAll returns the predicted class of every sample.
func PredictAll(m *Model, features [][]float64) ([]int, error) {
	out := make([]int, len(features))
	for i, feature := range features {
		class, err := m.PredictClass(feature)
		if err != nil {
			return nil, err
		}
		out[i] = class
	}
	return out, nil
}
