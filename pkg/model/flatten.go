package model

// flattenWithBias flattens features row-major and appends a constant 1 to
// every row so the bias can be folded into the weight matrix.
func flattenWithBias(features [][]float64) []float64 {
	featureSize := len(features[0]) + 1
	flattened := make([]float64, len(features)*featureSize)

	for i, feature := range features {
		row := flattened[i*featureSize : (i+1)*featureSize]
		copy(row, feature)
		row[featureSize-1] = 1
	}
	return flattened
}

// transposeParams returns the (features+1, classes) transpose of the model
// parameters, weights first and the bias row last.
func transposeParams(m *Model) []float64 {
	data := m.data()
	stride := m.features + 1
	out := make([]float64, len(data))
	for k := range m.classes {
		for j := range stride {
			out[j*m.classes+k] = data[k*stride+j]
		}
	}
	return out
}
