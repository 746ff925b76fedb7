package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/grexie/iris/pkg/config"
	"github.com/grexie/iris/pkg/model"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newPredictCmd(params *config.Params) *cobra.Command {
	var sample []float64

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Train on the whole dataset and classify one sample",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Predict(cmd.Context(), cmd.OutOrStdout(), *params, sample)
		},
	}

	cmd.Flags().Float64SliceVar(&sample, "sample", nil, "comma-separated feature values, e.g. 5.1,3.5,1.4,0.2")
	cmd.MarkFlagRequired("sample")

	return cmd
}

// Predict fits a model on every row of the dataset and writes the class
// probabilities of sample.
func Predict(ctx context.Context, w io.Writer, params config.Params, sample []float64) error {
	d, err := loadDataset(ctx, params)
	if err != nil {
		return err
	}

	pw := newProgressWriter(w, 1)
	startProgressWriter(pw)

	tracker := &progress.Tracker{
		Message: "Training",
		Total:   int64(params.Epochs),
		Units:   progress.UnitsDefault,
	}
	pw.AppendTracker(tracker)

	m, err := fit(params, d, tracker, "Training")
	stopProgressWriter(pw)
	if err != nil {
		return err
	}

	prediction, err := model.Predict(m, sample)
	if err != nil {
		return err
	}

	names := classNames(d, params.Classes)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Prediction")
	t.AppendHeader(table.Row{"CLASS", "PROBABILITY"})
	for i, p := range prediction.Probabilities {
		t.AppendRow(table.Row{names[i], fmt.Sprintf("%.6f", p)})
	}
	t.Render()

	fmt.Fprintf(w, "Predicted class: %s\n", names[prediction.Class])
	return nil
}
