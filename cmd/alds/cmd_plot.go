package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/alds-harness/dsp/field"
	"github.com/cwbudde/alds-harness/export/plot"
	"github.com/cwbudde/alds-harness/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Columns of a prediction sample file.
const (
	colX = iota
	colY
	colZ
	colInput
	colTruth
	colPred
	sampleColumns
)

func newPlotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot <sample.csv>",
		Short: "Plot input, ground truth and prediction of a sample",
		Long: `plot reads a prediction sample with one node per line and the columns
x,y,z,input,truth,pred, and draws three panels coloured by magnitude.

--save_mode and --path default to plot.mode and plot.path of the experiment
configuration, or save_png and figures/prediction without one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modeName, _ := cmd.Flags().GetString("save_mode")
			path, _ := cmd.Flags().GetString("path")
			log := a.logger(cmd)

			if modeName == "" || path == "" {
				expCfg, err := config.LoadExperiment(a.args().ExpConfig)
				if errors.Is(err, os.ErrNotExist) {
					log.WithField("exp_config", a.args().ExpConfig).Debug("experiment config not found, using defaults")
					expCfg, err = config.DefaultExperiment(), nil
				}
				if err != nil {
					return err
				}
				if modeName == "" {
					modeName = expCfg.Plot.Mode
				}
				if path == "" {
					path = expCfg.Plot.Path
				}
			}
			mode, err := plot.ParseMode(modeName)
			if err != nil {
				return err
			}

			sample, err := readSample(args[0])
			if err != nil {
				return err
			}
			panels, err := plot.Prediction(sample)
			if err != nil {
				return err
			}
			name, err := plot.SavePanels(panels, mode, path)
			if err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"points": len(sample.Pos),
				"mode":   mode,
				"file":   name,
			}).Info("prediction plotted")
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", name)
			return nil
		},
	}

	cmd.Flags().String("save_mode", "", "Output mode (save, save_png)")
	cmd.Flags().String("path", "", "Output path without extension")
	return cmd
}

func readSample(path string) (plot.Sample, error) {
	f, err := field.ReadCSVFile(path)
	if err != nil {
		return plot.Sample{}, err
	}
	if f.Cols() != sampleColumns {
		return plot.Sample{}, fmt.Errorf("%s: expected %d columns (x,y,z,input,truth,pred), got %d", path, sampleColumns, f.Cols())
	}
	n := f.Rows()
	s := plot.Sample{
		Pos:   make([][3]float64, n),
		Input: make([]float64, n),
		Truth: make([]float64, n),
		Pred:  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		row := f.RawRow(i)
		s.Pos[i] = [3]float64{row[colX], row[colY], row[colZ]}
		s.Input[i] = row[colInput]
		s.Truth[i] = row[colTruth]
		s.Pred[i] = row[colPred]
	}
	return s, nil
}
