package main

import (
	"fmt"

	"github.com/cwbudde/alds-harness/experiment"
	"github.com/cwbudde/alds-harness/experiment/dataset"
	"github.com/cwbudde/alds-harness/experiment/model"
	"github.com/cwbudde/alds-harness/internal/config"
	"github.com/cwbudde/alds-harness/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Resolve the model and dataset selected for an experiment",
		Long: `run loads the experiment and training configuration files, resolves the
selected model and dataset into typed configurations and prints the
resulting run description. Unknown model or dataset names fail immediately.

The dataset is taken from dataset.name of the experiment configuration
unless --dataset (or ALDS_DATASET) is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args := a.args()
			log := a.logger(cmd)

			expCfg, err := config.LoadExperiment(args.ExpConfig)
			if err != nil {
				return err
			}
			trainCfg, err := config.LoadTrain(args.TrainConfig)
			if err != nil {
				return err
			}
			if expCfg.Logging.Level != "" && !a.v.IsSet("log_level") {
				log.SetLevel(logging.ParseLevel(expCfg.Logging.Level))
			}

			desc, err := model.ResolveName(args.Model, trainCfg.InChannels, trainCfg.OutChannels, trainCfg.Model)
			if err != nil {
				return err
			}

			dsName := expCfg.Dataset.Name
			if a.v.IsSet("dataset") || dsName == "" {
				dsName = args.Dataset
			}
			ds, err := dataset.ResolveName(dsName, expCfg.Dataset.Options)
			if err != nil {
				return err
			}

			runName := fmt.Sprintf("%s_%s", args.ExpName, experiment.Now())
			log.WithFields(logrus.Fields{
				"run":        runName,
				"mode":       args.Mode,
				"model":      desc.Kind,
				"dataset":    ds.Kind(),
				"encoder":    args.Encoder,
				"classifier": args.Classifier,
			}).Info("experiment resolved")
			log.WithFields(logrus.Fields{
				"epochs":        trainCfg.Epochs,
				"batch_size":    trainCfg.BatchSize,
				"learning_rate": trainCfg.LearningRate,
			}).Debug("training configuration")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run:      %s\n", runName)
			fmt.Fprintf(out, "mode:     %s\n", args.Mode)
			fmt.Fprintf(out, "model:    %s in=%d out=%d %+v\n", desc.Kind, desc.InChannels, desc.OutChannels, desc.Config)
			fmt.Fprintf(out, "dataset:  %s %+v\n", ds.Kind(), ds)
			return nil
		},
	}
}
