package model

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

type ModelMetrics struct {
	Accuracy        float64
	Loss            float64
	Counts          [][]int
	ConfusionMatrix [][]float64
	ClassPrecision  []float64
	ClassRecall     []float64
	F1Scores        []float64

	Samples []int
}

// Evaluate scores a fitted model against a labelled dataset.
func Evaluate(m *Model, features [][]float64, labels []int) (ModelMetrics, error) {
	loss, err := Loss(m, features, labels)
	if err != nil {
		return ModelMetrics{}, err
	}

	predictions, err := PredictAll(m, features)
	if err != nil {
		return ModelMetrics{}, err
	}

	confusionMatrix := make([][]int, m.classes)
	for i := range confusionMatrix {
		confusionMatrix[i] = make([]int, m.classes)
	}
	for i, predictedClass := range predictions {
		confusionMatrix[labels[i]][predictedClass]++
	}

	metrics := calculateMetrics(confusionMatrix, len(features))
	metrics.Loss = loss
	return metrics, nil
}

// String renders the accuracy the way the result is displayed to users, e.g.
// "Test Accuracy: 96.66666666666667%".
func (m ModelMetrics) String() string {
	return fmt.Sprintf("Test Accuracy: %s%%", strconv.FormatFloat(m.Accuracy, 'f', -1, 64))
}

func (m ModelMetrics) Write(w io.Writer, classNames []string) error {
	numClasses := len(m.Counts)
	if len(classNames) < numClasses {
		names := make([]string, numClasses)
		for i := range names {
			if i < len(classNames) {
				names[i] = classNames[i]
			} else {
				names[i] = strconv.Itoa(i)
			}
		}
		classNames = names
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Confusion Matrix")
	header := table.Row{""}
	for _, name := range classNames[:numClasses] {
		header = append(header, name)
	}
	t.AppendHeader(header)
	for i := range numClasses {
		row := table.Row{classNames[i]}
		if m.Samples[i] == 0 {
			for range numClasses {
				row = append(row, "")
			}
		} else {
			for j := range numClasses {
				row = append(row, fmt.Sprintf("%6.2f%%", m.ConfusionMatrix[i][j]))
			}
		}
		t.AppendRow(row)
	}
	footer := table.Row{"ACCURACY"}
	for range numClasses - 1 {
		footer = append(footer, "")
	}
	t.AppendFooter(append(footer, fmt.Sprintf("%0.02f%%", m.Accuracy)))
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Class Metrics")
	t.AppendHeader(table.Row{"CLASS", "PRECISION", "RECALL", "F1 SCORE", "SAMPLES"})
	var precision, recall, f1 float64
	samples := 0
	for i := range numClasses {
		t.AppendRow(table.Row{
			classNames[i],
			fmt.Sprintf("%6.2f%%", m.ClassPrecision[i]),
			fmt.Sprintf("%6.2f%%", m.ClassRecall[i]),
			fmt.Sprintf("%6.2f%%", m.F1Scores[i]),
			fmt.Sprintf("%d", m.Samples[i]),
		})
		precision += m.ClassPrecision[i]
		recall += m.ClassRecall[i]
		f1 += m.F1Scores[i]
		samples += m.Samples[i]
	}
	t.AppendSeparator()
	n := float64(numClasses)
	t.AppendRow(table.Row{"", fmt.Sprintf("%6.2f%%", precision/n), fmt.Sprintf("%6.2f%%", recall/n), fmt.Sprintf("%6.2f%%", f1/n), fmt.Sprintf("%d", samples)})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Loss", fmt.Sprintf("%.6f", m.Loss)})
	t.Render()

	return nil
}

func calculateMetrics(confusionMatrix [][]int, total int) ModelMetrics {
	numClasses := len(confusionMatrix)
	metrics := ModelMetrics{
		Counts:          confusionMatrix,
		ConfusionMatrix: make([][]float64, numClasses),
		ClassPrecision:  make([]float64, numClasses),
		ClassRecall:     make([]float64, numClasses),
		F1Scores:        make([]float64, numClasses),
		Samples:         make([]int, numClasses),
	}

	// Calculate confusion matrix percentages
	for i := range numClasses {
		metrics.ConfusionMatrix[i] = make([]float64, numClasses)
		for j := range numClasses {
			metrics.Samples[i] += confusionMatrix[i][j]
		}
		for j := range numClasses {
			if metrics.Samples[i] > 0 {
				metrics.ConfusionMatrix[i][j] = float64(confusionMatrix[i][j]) / float64(metrics.Samples[i]) * 100
			}
		}
	}

	for i := range numClasses {
		truePositives := confusionMatrix[i][i]
		falsePositives := 0
		falseNegatives := 0

		for j := range numClasses {
			if i != j {
				falsePositives += confusionMatrix[j][i]
				falseNegatives += confusionMatrix[i][j]
			}
		}

		if truePositives+falsePositives > 0 {
			metrics.ClassPrecision[i] = float64(truePositives) / float64(truePositives+falsePositives) * 100
		}

		if truePositives+falseNegatives > 0 {
			metrics.ClassRecall[i] = float64(truePositives) / float64(truePositives+falseNegatives) * 100
		}

		if metrics.ClassPrecision[i]+metrics.ClassRecall[i] > 0 {
			metrics.F1Scores[i] = 2 * (metrics.ClassPrecision[i] * metrics.ClassRecall[i]) /
				(metrics.ClassPrecision[i] + metrics.ClassRecall[i])
		}
	}

	correct := 0
	for i := range numClasses {
		correct += confusionMatrix[i][i]
	}
	if total > 0 {
		metrics.Accuracy = float64(correct) / float64(total) * 100
	}

	return metrics
}
