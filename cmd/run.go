package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/grexie/iris/pkg/config"
	"github.com/grexie/iris/pkg/dataset"
	"github.com/grexie/iris/pkg/db"
	"github.com/grexie/iris/pkg/model"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newRunCmd(params *config.Params) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Train on a random split and report the test accuracy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), cmd.OutOrStdout(), *params, csvPath)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&params.TrainRatio, "train-ratio", params.TrainRatio, "fraction of rows used for training")
	flags.Uint64Var(&params.Seed, "seed", params.Seed, "split seed (0 picks one from the clock)")
	flags.IntVar(&params.Repeat, "repeat", params.Repeat, "number of independent splits trained concurrently")
	flags.StringVar(&csvPath, "csv", "", "also write per-run metrics to this CSV file")

	return cmd
}

func newProgressWriter(w io.Writer, trackers int) progress.Writer {
	pw := progress.NewWriter()
	pw.SetOutputWriter(w)
	pw.SetMessageLength(40)
	pw.SetNumTrackersExpected(trackers)
	pw.SetSortBy(progress.SortByPercentDsc)
	pw.SetStyle(progress.StyleDefault)
	pw.SetTrackerLength(15)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetUpdateFrequency(time.Millisecond * 100)
	pw.Style().Colors = progress.StyleColorsExample
	pw.Style().Options.PercentFormat = "%2.0f%%"
	return pw
}

func startProgressWriter(pw progress.Writer) {
	go pw.Render()
	for !pw.IsRenderInProgress() {
		time.Sleep(time.Millisecond)
	}
}

func stopProgressWriter(pw progress.Writer) {
	pw.Stop()
	for pw.IsRenderInProgress() {
		time.Sleep(10 * time.Millisecond)
	}
}

type runResult struct {
	metrics  model.ModelMetrics
	duration time.Duration
	train    int
	test     int
}

// fit trains one model on train, reporting progress and the training loss on
// tracker.
func fit(params config.Params, train *dataset.Dataset, tracker *progress.Tracker, label string) (*model.Model, error) {
	reportEvery := max(params.Epochs/100, 1)

	trainer, err := model.NewTrainer(model.Config{Classes: params.Classes}, model.WithEpochHook(func(epoch int, m *model.Model) {
		tracker.Increment(1)
		if (epoch+1)%reportEvery == 0 {
			if loss, err := model.Loss(m, train.Features, train.Labels); err == nil {
				tracker.UpdateMessage(fmt.Sprintf("%s - TL: %.6f", label, loss))
			}
		}
	}))
	if err != nil {
		return nil, err
	}

	tracker.Start()
	m, err := trainer.Fit(train.Features, train.Labels, params.LearningRate, params.Epochs)
	if err != nil {
		tracker.MarkAsErrored()
		return nil, err
	}
	tracker.MarkAsDone()
	return m, nil
}

// Run splits the dataset params.Repeat times, trains an independent model on
// each split concurrently and writes the test metrics of every run. When
// csvPath is set the metrics are also written there.
func Run(ctx context.Context, w io.Writer, params config.Params, csvPath string) error {
	params.TrainRatio = config.BoundTrainRatio(params.TrainRatio)
	params.Repeat = config.BoundRepeat(params.Repeat)
	if params.Seed == 0 {
		params.Seed = uint64(time.Now().UnixNano())
	}
	params.Write(w, "Config")

	d, err := loadDataset(ctx, params)
	if err != nil {
		return err
	}

	started := time.Now()
	results := make([]runResult, params.Repeat)

	pw := newProgressWriter(w, params.Repeat)
	startProgressWriter(pw)

	g, gctx := errgroup.WithContext(ctx)
	for i := range params.Repeat {
		train, test, err := d.Split(params.TrainRatio, rand.New(rand.NewPCG(params.Seed, uint64(i))))
		if err != nil {
			stopProgressWriter(pw)
			return err
		}

		label := fmt.Sprintf("Training run %d", i+1)
		tracker := &progress.Tracker{
			Message: label,
			Total:   int64(params.Epochs),
			Units:   progress.UnitsDefault,
		}
		pw.AppendTracker(tracker)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			m, err := fit(params, train, tracker, label)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}

			metrics, err := model.Evaluate(m, test.Features, test.Labels)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}

			results[i] = runResult{
				metrics:  metrics,
				duration: time.Since(start),
				train:    train.Len(),
				test:     test.Len(),
			}
			return nil
		})
	}

	err = g.Wait()
	stopProgressWriter(pw)
	if err != nil {
		return err
	}

	names := classNames(d, params.Classes)
	all := make([]model.ModelMetrics, len(results))
	for i, result := range results {
		fmt.Fprintf(w, "Run %d: %s (execution time %s, %d train / %d test samples)\n", i+1, result.metrics, result.duration.Round(time.Millisecond), result.train, result.test)
		if err := result.metrics.Write(w, names); err != nil {
			return err
		}
		all[i] = result.metrics
	}

	if len(all) > 1 {
		model.Summarize(all).Write(w)
	}

	if csvPath != "" {
		if err := writeCSV(csvPath, names, all); err != nil {
			return err
		}
	}

	if params.MongoURL != "" {
		if err := recordRuns(ctx, params, started, results); err != nil {
			log.Printf("failed to record runs: %v", err)
		}
	}

	return nil
}

func recordRuns(ctx context.Context, params config.Params, started time.Time, results []runResult) error {
	database, err := db.ConnectMongo(ctx, params.MongoURL)
	if err != nil {
		return err
	}
	defer database.Client().Disconnect(context.Background())

	for i, result := range results {
		id, err := db.RecordRun(ctx, database, db.Run{
			Started:      started,
			Duration:     result.duration,
			Repetition:   i,
			Data:         params.Data,
			LearningRate: params.LearningRate,
			Epochs:       params.Epochs,
			Classes:      params.Classes,
			TrainRatio:   params.TrainRatio,
			Seed:         int64(params.Seed),
			TrainSamples: result.train,
			TestSamples:  result.test,
			Accuracy:     result.metrics.Accuracy,
			Loss:         result.metrics.Loss,
			Confusion:    result.metrics.Counts,
		})
		if err != nil {
			return err
		}
		log.Printf("recorded run %d as %s", i+1, id)
	}
	return nil
}

func writeCSV(path string, classNames []string, metrics []model.ModelMetrics) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := model.WriteCSVHeader(writer, classNames); err != nil {
		return err
	}
	for i, m := range metrics {
		if err := model.WriteCSVRow(writer, i+1, m); err != nil {
			return err
		}
	}
	return nil
}
