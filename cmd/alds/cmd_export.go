package main

import (
	"errors"
	"fmt"

	"github.com/cwbudde/alds-harness/dsp/field"
	"github.com/cwbudde/alds-harness/export/vtk"
	"github.com/cwbudde/alds-harness/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newExportVTKCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-vtk <prediction.csv>",
		Short: "Attach a prediction to a mesh and write it as a VTK unstructured grid",
		Long: `export-vtk reads one scalar per mesh point from a CSV file (values in
row-major order), copies the mesh, attaches the values as the 3-component
point array "prediction" and writes the result as .vtu.

--mesh and --save default to export.mesh_path and export.save_path of the
experiment configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meshPath, _ := cmd.Flags().GetString("mesh")
			savePath, _ := cmd.Flags().GetString("save")
			log := a.logger(cmd)

			if meshPath == "" || savePath == "" {
				expCfg, err := config.LoadExperiment(a.args().ExpConfig)
				if err != nil {
					return err
				}
				if meshPath == "" {
					meshPath = expCfg.Export.MeshPath
				}
				if savePath == "" {
					savePath = expCfg.Export.SavePath
				}
			}
			if meshPath == "" || savePath == "" {
				return errors.New("mesh and save paths are required (--mesh, --save or export section of --exp_config)")
			}

			pred, err := field.ReadCSVFile(args[0])
			if err != nil {
				return err
			}
			if err := vtk.ExportPrediction(meshPath, savePath, pred.Values()); err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"mesh":   meshPath,
				"points": pred.Len(),
				"save":   savePath,
			}).Info("prediction exported")
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", savePath)
			return nil
		},
	}

	cmd.Flags().String("mesh", "", "Source mesh (.vtu)")
	cmd.Flags().String("save", "", "Output file (.vtu)")
	return cmd
}
