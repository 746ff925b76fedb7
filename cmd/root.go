package cmd

import (
	"github.com/grexie/iris/pkg/config"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	params := config.NewParamsFromDefaults()

	cmd := &cobra.Command{
		Use:           "iris",
		Short:         "Softmax regression on the Iris dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&params.Data, "data", params.Data, "CSV file or http(s) URL of the dataset")
	flags.StringVar(&params.Cache, "cache", params.Cache, "leveldb cache for downloaded datasets (empty disables)")
	flags.Float64Var(&params.LearningRate, "learning-rate", params.LearningRate, "gradient descent step size")
	flags.IntVar(&params.Epochs, "epochs", params.Epochs, "number of full-batch epochs")
	flags.IntVar(&params.Classes, "classes", params.Classes, "number of output classes")

	cmd.AddCommand(newRunCmd(&params), newPredictCmd(&params))

	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
