package model

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMetrics(t *testing.T) {
	metrics := calculateMetrics([][]int{
		{5, 1, 0},
		{0, 4, 1},
		{0, 0, 4},
	}, 15)

	assert.InDelta(t, 86.66666666666667, metrics.Accuracy, 1e-9)
	assert.Equal(t, []int{6, 5, 4}, metrics.Samples)
	assert.InDeltaSlice(t, []float64{100, 80, 80}, metrics.ClassPrecision, 1e-9)
	assert.InDeltaSlice(t, []float64{500.0 / 6, 80, 100}, metrics.ClassRecall, 1e-9)
	assert.InDelta(t, 100.0/6, metrics.ConfusionMatrix[0][1], 1e-9)
	assert.InDelta(t, 80.0, metrics.F1Scores[1], 1e-9)
	assert.InDelta(t, 2*80.0*100/180, metrics.F1Scores[2], 1e-9)
}

func TestCalculateMetricsEmptyClass(t *testing.T) {
	metrics := calculateMetrics([][]int{
		{3, 0},
		{0, 0},
	}, 3)

	assert.Equal(t, 100.0, metrics.Accuracy)
	assert.Equal(t, []float64{0, 0}, metrics.ConfusionMatrix[1])
	assert.Equal(t, 0.0, metrics.ClassPrecision[1])
	assert.Equal(t, 0.0, metrics.F1Scores[1])
}

func TestModelMetricsString(t *testing.T) {
	assert.Equal(t, "Test Accuracy: 100%", ModelMetrics{Accuracy: 100}.String())
	assert.Equal(t, "Test Accuracy: 96.66666666666667%", ModelMetrics{Accuracy: float64(29) / float64(30) * 100}.String())
	assert.Equal(t, "Test Accuracy: 0%", ModelMetrics{}.String())
}

func TestEvaluate(t *testing.T) {
	features := [][]float64{{0, 0}, {0, 1}, {5, 5}, {5, 4}}
	labels := []int{0, 0, 1, 1}

	m, err := Train(Config{Classes: 2}, features, labels, 0.1, 500)
	require.NoError(t, err)

	metrics, err := Evaluate(m, features, labels)
	require.NoError(t, err)
	assert.Equal(t, 100.0, metrics.Accuracy)
	assert.Equal(t, [][]int{{2, 0}, {0, 2}}, metrics.Counts)
	assert.Greater(t, metrics.Loss, 0.0)
	assert.Less(t, metrics.Loss, 0.1)
	assert.Equal(t, "Test Accuracy: 100%", metrics.String())

	_, err = Evaluate(m, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestModelMetricsWrite(t *testing.T) {
	metrics := calculateMetrics([][]int{
		{2, 0, 0},
		{0, 1, 1},
		{0, 0, 0},
	}, 4)

	var buf bytes.Buffer
	require.NoError(t, metrics.Write(&buf, []string{"Iris-setosa", "Iris-versicolor", "Iris-virginica"}))
	out := buf.String()
	assert.Contains(t, out, "Confusion Matrix")
	assert.Contains(t, out, "Class Metrics")
	assert.Contains(t, out, "Iris-versicolor")
	assert.Contains(t, out, "75.00%")

	buf.Reset()
	require.NoError(t, metrics.Write(&buf, nil))
	assert.Contains(t, buf.String(), "Class Metrics")
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]ModelMetrics{
		{Accuracy: 90, Loss: 0.3},
		{Accuracy: 100, Loss: 0.1},
	})

	assert.Equal(t, 2, summary.Runs)
	assert.InDelta(t, 95.0, summary.Accuracy.Mean, 1e-9)
	assert.Equal(t, 90.0, summary.Accuracy.Min)
	assert.Equal(t, 100.0, summary.Accuracy.Max)
	assert.InDelta(t, 7.0710678118654755, summary.Accuracy.StdDev, 1e-9)
	assert.InDelta(t, 0.2, summary.Loss.Mean, 1e-9)

	single := Summarize([]ModelMetrics{{Accuracy: 50}})
	assert.Equal(t, 0.0, single.Accuracy.StdDev)

	var buf bytes.Buffer
	summary.Write(&buf)
	assert.Contains(t, buf.String(), "Summary - 2 runs")
}

func TestWriteCSV(t *testing.T) {
	metrics := calculateMetrics([][]int{
		{5, 1, 0},
		{0, 4, 1},
		{0, 0, 4},
	}, 15)
	metrics.Loss = 0.25

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	require.NoError(t, WriteCSVHeader(writer, []string{"a", "b", "c"}))
	require.NoError(t, WriteCSVRow(writer, 1, metrics))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Len(t, records[0], 13)
	assert.Equal(t, []string{"Run", "Accuracy", "Loss", "Samples", "Precision (a)", "Recall (a)", "F1 Score (a)"}, records[0][:7])
	assert.Equal(t, []string{"1", "86.67%", "0.250000", "15", "100.00%", "83.33%", "90.91%"}, records[1][:7])
}
