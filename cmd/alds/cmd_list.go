package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/alds-harness/dsp/window"
	"github.com/cwbudde/alds-harness/experiment/dataset"
	"github.com/cwbudde/alds-harness/experiment/model"
	"github.com/cwbudde/alds-harness/export/plot"
	"github.com/cwbudde/alds-harness/measure/tke"
	"github.com/spf13/cobra"
)

var modelSummaries = map[model.Kind]string{
	model.KindFNO:       "2D Fourier neural operator (modes1, modes2, width)",
	model.KindTEECNet:   "TEECNet (width, num_layers, retrieve_weight)",
	model.KindBENO:      "boundary-embedded neural operator (width, num_layers)",
	model.KindDeepONet:  "DeepONet (trunk_size, width; both required)",
	model.KindGraphSAGE: "GraphSAGE, 5 layers",
	model.KindNeuralOp:  "kernel graph neural operator (width, num_layers; both required)",
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List models, datasets and spectrum/plot options",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

			fmt.Fprintln(tw, "MODEL\tDESCRIPTION")
			for _, k := range model.All() {
				fmt.Fprintf(tw, "%s\t%s\n", k, modelSummaries[k])
			}
			fmt.Fprintln(tw)

			fmt.Fprintln(tw, "DATASET\tOPTIONS")
			for _, k := range dataset.All() {
				fmt.Fprintf(tw, "%s\troot, split (train|val|test), normalize\n", k)
			}
			fmt.Fprintln(tw)

			fmt.Fprintln(tw, "BOUNDS")
			for _, p := range []tke.BoundsPolicy{tke.BoundsError, tke.BoundsDiscard} {
				fmt.Fprintf(tw, "%s\n", p)
			}
			fmt.Fprintln(tw)

			fmt.Fprintln(tw, "WINDOW")
			for _, w := range window.Types() {
				fmt.Fprintf(tw, "%s\n", w)
			}
			fmt.Fprintln(tw)

			fmt.Fprintln(tw, "PLOT MODE\tOUTPUT")
			for _, m := range []plot.Mode{plot.ModeSave, plot.ModeSavePNG, plot.ModeShow, plot.ModeTrack} {
				ext := m.Extension()
				if ext == "" {
					ext = "unsupported"
				}
				fmt.Fprintf(tw, "%s\t%s\n", m, ext)
			}
			tw.Flush()
		},
	}
}
