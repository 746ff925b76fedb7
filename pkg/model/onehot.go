package model

// OneHotEncode flattens labels into a row-major (len(labels), numClasses)
// indicator matrix.
func OneHotEncode(labels []int, numClasses int) []float64 {
	flat := make([]float64, len(labels)*numClasses)
	for i, label := range labels {
		flat[i*numClasses+label] = 1.0
	}
	return flat
}
