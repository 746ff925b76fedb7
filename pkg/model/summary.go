package model

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Stats struct {
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
}

func newStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	s := Stats{
		Mean: stat.Mean(values, nil),
		Min:  floats.Min(values),
		Max:  floats.Max(values),
	}
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	return s
}

// Summary aggregates the metrics of repeated train/evaluate runs.
type Summary struct {
	Runs     int
	Accuracy Stats
	Loss     Stats
}

func Summarize(metrics []ModelMetrics) Summary {
	accuracies := make([]float64, len(metrics))
	losses := make([]float64, len(metrics))
	for i, m := range metrics {
		accuracies[i] = m.Accuracy
		losses[i] = m.Loss
	}
	return Summary{
		Runs:     len(metrics),
		Accuracy: newStats(accuracies),
		Loss:     newStats(losses),
	}
}

func (s Summary) Write(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Summary - %d runs", s.Runs))
	t.AppendHeader(table.Row{"", "MEAN", "MIN", "MAX", "STDDEV"})
	t.AppendRows([]table.Row{
		{"Accuracy", fmt.Sprintf("%6.2f%%", s.Accuracy.Mean), fmt.Sprintf("%6.2f%%", s.Accuracy.Min), fmt.Sprintf("%6.2f%%", s.Accuracy.Max), fmt.Sprintf("%6.2f", s.Accuracy.StdDev)},
		{"Loss", fmt.Sprintf("%.6f", s.Loss.Mean), fmt.Sprintf("%.6f", s.Loss.Min), fmt.Sprintf("%.6f", s.Loss.Max), fmt.Sprintf("%.6f", s.Loss.StdDev)},
	})
	t.Render()
}
