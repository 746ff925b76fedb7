package model

import (
	"encoding/csv"
	"fmt"
)

func WriteCSVHeader(writer *csv.Writer, classNames []string) error {
	header := []string{
		"Run",
		"Accuracy",
		"Loss",
		"Samples",
	}
	for _, name := range classNames {
		header = append(header,
			fmt.Sprintf("Precision (%s)", name),
			fmt.Sprintf("Recall (%s)", name),
			fmt.Sprintf("F1 Score (%s)", name),
		)
	}

	if err := writer.Write(header); err != nil {
		return err
	} else {
		writer.Flush()
		return writer.Error()
	}
}

func WriteCSVRow(writer *csv.Writer, run int, m ModelMetrics) error {
	samples := 0
	for _, n := range m.Samples {
		samples += n
	}

	row := []string{
		fmt.Sprintf("%d", run),
		fmt.Sprintf("%0.02f%%", m.Accuracy),
		fmt.Sprintf("%.6f", m.Loss),
		fmt.Sprintf("%d", samples),
	}
	for i := range m.ClassPrecision {
		row = append(row,
			fmt.Sprintf("%0.02f%%", m.ClassPrecision[i]),
			fmt.Sprintf("%0.02f%%", m.ClassRecall[i]),
			fmt.Sprintf("%0.02f%%", m.F1Scores[i]),
		)
	}

	if err := writer.Write(row); err != nil {
		return err
	} else {
		writer.Flush()
		return writer.Error()
	}
}
