// Command alds drives the ALDS experiment utilities: model and dataset
// selection, TKE spectra of velocity fields, VTK export of predictions and
// prediction plots.
//
// Every persistent flag can also be set through an ALDS_<FLAG> environment
// variable, e.g. ALDS_EXP_NAME or ALDS_LOG_LEVEL.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/alds-harness/experiment"
	"github.com/cwbudde/alds-harness/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0-dev"

// app carries state shared by all subcommands.
type app struct {
	v *viper.Viper
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "alds",
		Short: "ALDS experiment utilities",
		Long: `alds selects models and datasets for an experiment run, computes
turbulent kinetic energy spectra of 2D velocity fields, exports predictions
to VTK unstructured grids and plots predictions.`,
		SilenceUsage: true,
	}

	defaults := experiment.DefaultArgs()
	pf := rootCmd.PersistentFlags()
	pf.String("dataset", defaults.Dataset, "Dataset name")
	pf.String("encoder", defaults.Encoder, "Encoder name")
	pf.String("classifier", defaults.Classifier, "Classifier name")
	pf.String("model", defaults.Model, "Model type")
	pf.String("exp_name", defaults.ExpName, "Experiment name")
	pf.String("mode", defaults.Mode, "Experiment mode")
	pf.String("exp_config", defaults.ExpConfig, "Experiment configuration file")
	pf.String("train_config", defaults.TrainConfig, "Training configuration file")
	pf.String("log_level", "info", "Log level (debug, info, warn, error)")

	a.v.SetEnvPrefix("ALDS")
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(pf); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newListCmd(),
		newRunCmd(a),
		newSpectrumCmd(a),
		newExportVTKCmd(a),
		newPlotCmd(a),
	)
	return rootCmd
}

// args returns the experiment arguments after flag and environment
// resolution.
func (a *app) args() experiment.Args {
	return experiment.Args{
		Dataset:     a.v.GetString("dataset"),
		Encoder:     a.v.GetString("encoder"),
		Classifier:  a.v.GetString("classifier"),
		Model:       a.v.GetString("model"),
		ExpName:     a.v.GetString("exp_name"),
		Mode:        a.v.GetString("mode"),
		ExpConfig:   a.v.GetString("exp_config"),
		TrainConfig: a.v.GetString("train_config"),
	}
}

func (a *app) logger(cmd *cobra.Command) *logrus.Logger {
	return logging.New(a.v.GetString("log_level"), cmd.ErrOrStderr())
}
