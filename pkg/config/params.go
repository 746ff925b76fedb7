package config

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

type Params struct {
	Data         string
	Cache        string
	LearningRate float64
	Epochs       int
	Classes      int
	TrainRatio   float64
	Seed         uint64
	Repeat       int
	MongoURL     string
}

func (p *Params) Write(w io.Writer, title string) {
	seed := "random"
	if p.Seed != 0 {
		seed = fmt.Sprintf("%d", p.Seed)
	}
	mongo := "disabled"
	if p.MongoURL != "" {
		mongo = "enabled"
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.AppendRows([]table.Row{
		{"IRIS_DATA", p.Data},
		{"IRIS_CACHE", p.Cache},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"IRIS_LEARNING_RATE", fmt.Sprintf("%.06f", p.LearningRate)},
		{"IRIS_EPOCHS", fmt.Sprintf("%d", p.Epochs)},
		{"IRIS_CLASSES", fmt.Sprintf("%d", p.Classes)},
		{"IRIS_TRAIN_RATIO", fmt.Sprintf("%0.02f", p.TrainRatio)},
		{"IRIS_SEED", seed},
		{"IRIS_REPEAT", fmt.Sprintf("%d", p.Repeat)},
	})
	t.AppendSeparator()
	t.AppendRow(table.Row{"MONGO_URL", mongo})
	t.Render()
}

func NewParamsFromDefaults() Params {
	return Params{
		Data:         Data(),
		Cache:        Cache(),
		LearningRate: LearningRate(),
		Epochs:       Epochs(),
		Classes:      Classes(),
		TrainRatio:   TrainRatio(),
		Seed:         Seed(),
		Repeat:       Repeat(),
		MongoURL:     MongoURL(),
	}
}

func envInt(name string, def func() int, dec func(v int) int) func() int {
	return func() int {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseInt(v, 10, 32); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = int(v)
			}
		}
		return dec(value)
	}
}

func envUint64(name string, def func() uint64) func() uint64 {
	return func() uint64 {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseUint(v, 10, 64); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = v
			}
		}
		return value
	}
}

func envFloat64(name string, def func() float64, dec func(v float64) float64) func() float64 {
	return func() float64 {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseFloat(v, 64); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = v
			}
		}
		return dec(value)
	}
}

func envString(name string, def func() string) func() string {
	return func() string {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			value = v
		}
		return value
	}
}

func identity[T any](v T) T {
	return v
}

var (
	Data     = envString("IRIS_DATA", func() string { return "Iris.csv" })
	Cache    = envString("IRIS_CACHE", func() string { return filepath.Join(os.TempDir(), "iris-cache.db") })
	MongoURL = envString("MONGO_URL", func() string { return "" })
)

var (
	// learning rate and epochs are validated by the trainer, not clamped here
	LearningRate = envFloat64("IRIS_LEARNING_RATE", func() float64 { return 0.1 }, identity[float64])
	Epochs       = envInt("IRIS_EPOCHS", func() int { return 100000 }, identity[int])
	Classes      = envInt("IRIS_CLASSES", func() int { return 3 }, identity[int])
	TrainRatio   = envFloat64("IRIS_TRAIN_RATIO", func() float64 { return 0.8 }, BoundTrainRatio)
	Seed         = envUint64("IRIS_SEED", func() uint64 { return 0 })
	Repeat       = envInt("IRIS_REPEAT", func() int { return 1 }, BoundRepeat)
)

func BoundTrainRatio(v float64) float64 {
	return math.Max(0.05, math.Min(0.95, v)) // Default: 0.8
}

func BoundRepeat(v int) int {
	return int(math.Max(1, math.Min(64, float64(v)))) // Default: 1
}
