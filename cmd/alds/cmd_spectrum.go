package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/cwbudde/alds-harness/dsp/field"
	"github.com/cwbudde/alds-harness/dsp/window"
	"github.com/cwbudde/alds-harness/export/plot"
	"github.com/cwbudde/alds-harness/internal/config"
	"github.com/cwbudde/alds-harness/measure/tke"
	"github.com/cwbudde/alds-harness/stats/turbulence"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	gplot "gonum.org/v1/plot"
)

var errDuplicateOutput = errors.New("spectrum: duplicate output name")

type spectrumJob struct {
	path   string
	result tke.Result
	stats  turbulence.Stats
	slope  float64
	output string
}

func newSpectrumCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spectrum <field.csv>...",
		Short: "Compute the TKE spectrum of 2D velocity fields",
		Long: `spectrum reads one or more velocity fields stored as CSV (one row of the
grid per line) and writes the binned turbulent kinetic energy spectrum of
each as <out>/<name>_tke.csv with columns k,E. Files are processed
concurrently. Fields that are not periodic over the domain can be tapered
with --window.

--lx, --ly and --bounds default to the spectrum section of the experiment
configuration, or 2π, 2π and error without one. Inputs must have distinct
base names since each writes <name>_tke.csv.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			lx, _ := flags.GetFloat64("lx")
			ly, _ := flags.GetFloat64("ly")
			bounds, _ := flags.GetString("bounds")
			outDir, _ := flags.GetString("out")
			plotMode, _ := flags.GetString("plot")
			jobs, _ := flags.GetInt("jobs")
			winName, _ := flags.GetString("window")
			log := a.logger(cmd)

			if !flags.Changed("lx") || !flags.Changed("ly") || !flags.Changed("bounds") {
				expCfg, err := config.LoadExperiment(a.args().ExpConfig)
				if errors.Is(err, os.ErrNotExist) {
					log.WithField("exp_config", a.args().ExpConfig).Debug("experiment config not found, using defaults")
					expCfg, err = config.DefaultExperiment(), nil
				}
				if err != nil {
					return err
				}
				if !flags.Changed("lx") {
					lx = expCfg.Spectrum.Lx
				}
				if !flags.Changed("ly") {
					ly = expCfg.Spectrum.Ly
				}
				if !flags.Changed("bounds") {
					bounds = expCfg.Spectrum.Bounds
				}
			}

			outputs, err := spectrumOutputs(args, outDir)
			if err != nil {
				return err
			}

			policy, err := tke.ParseBoundsPolicy(bounds)
			if err != nil {
				return err
			}
			calc, err := tke.NewCalculator(tke.Config{Lx: lx, Ly: ly, Bounds: policy})
			if err != nil {
				return err
			}
			win, err := window.Parse(winName)
			if err != nil {
				return err
			}
			var mode plot.Mode
			if plotMode != "" {
				if mode, err = plot.ParseMode(plotMode); err != nil {
					return err
				}
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if jobs <= 0 {
				jobs = runtime.GOMAXPROCS(0)
			}

			results := make([]spectrumJob, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(jobs)
			for i, path := range args {
				g.Go(func() error {
					job, err := runSpectrum(ctx, calc, win, path, outputs[i])
					if err != nil {
						return err
					}
					if plotMode != "" {
						p, err := plot.Spectrum(job.result)
						if err != nil {
							return fmt.Errorf("%s: %w", path, err)
						}
						if _, err := plot.Save([]*gplot.Plot{p}, mode, strings.TrimSuffix(job.output, ".csv")); err != nil {
							return fmt.Errorf("%s: %w", path, err)
						}
					}
					results[i] = job
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, job := range results {
				log.WithFields(logrus.Fields{
					"file":      job.path,
					"bins":      job.stats.BinCount,
					"total":     job.stats.Total,
					"dc":        job.result.DC,
					"discarded": job.result.Discarded,
				}).Info("spectrum computed")
				fmt.Fprintf(out, "%s: total=%.6g peak_k=%.6g centroid=%.6g integral_scale=%.6g slope=%.3g -> %s\n",
					job.path, job.stats.Total, job.stats.PeakWaveNumber, job.stats.Centroid,
					job.stats.IntegralScale, job.slope, job.output)
			}
			return nil
		},
	}

	cmd.Flags().Float64("lx", 2*math.Pi, "Domain extent along the first axis")
	cmd.Flags().Float64("ly", 2*math.Pi, "Domain extent along the second axis")
	cmd.Flags().String("bounds", tke.BoundsError.String(), "Out-of-range bin policy (error, discard)")
	cmd.Flags().String("out", ".", "Output directory")
	cmd.Flags().String("plot", "", "Also plot each spectrum (save, save_png)")
	cmd.Flags().String("window", window.TypeRectangular.String(), "Taper applied along both axes (rectangular, hann, hamming, blackman, tukey)")
	cmd.Flags().Int("jobs", 0, "Concurrent files (0 = GOMAXPROCS)")
	return cmd
}

// spectrumOutputs returns the CSV path written for each input. Inputs that
// would write the same file are rejected.
func spectrumOutputs(paths []string, outDir string) ([]string, error) {
	outputs := make([]string, len(paths))
	seen := make(map[string]string, len(paths))
	for i, path := range paths {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		out := filepath.Join(outDir, base+"_tke.csv")
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", errDuplicateOutput, prev, path, out)
		}
		seen[out] = path
		outputs[i] = out
	}
	return outputs, nil
}

func runSpectrum(ctx context.Context, calc *tke.Calculator, win window.Type, path, output string) (spectrumJob, error) {
	if err := ctx.Err(); err != nil {
		return spectrumJob{}, err
	}
	u, err := field.ReadCSVFile(path)
	if err != nil {
		return spectrumJob{}, err
	}
	if u, err = window.Apply2D(u, win, window.WithPeriodic()); err != nil {
		return spectrumJob{}, fmt.Errorf("%s: %w", path, err)
	}
	res, err := calc.Compute(u)
	if err != nil {
		return spectrumJob{}, fmt.Errorf("%s: %w", path, err)
	}

	job := spectrumJob{
		path:   path,
		result: res,
		stats:  turbulence.Summarize(res.Spectrum, res.WaveNumbers),
		slope:  math.NaN(),
	}
	if len(res.WaveNumbers) > 0 {
		slope, err := turbulence.InertialSlope(res.Spectrum, res.WaveNumbers, res.WaveNumbers[0], res.WaveNumbers[len(res.WaveNumbers)-1])
		if err != nil && !errors.Is(err, turbulence.ErrTooFewPoints) {
			return spectrumJob{}, fmt.Errorf("%s: %w", path, err)
		}
		if err == nil {
			job.slope = slope
		}
	}

	job.output = output
	if err := writeSpectrumCSV(job.output, res); err != nil {
		return spectrumJob{}, err
	}
	return job, nil
}

func writeSpectrumCSV(path string, res tke.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Write([]string{"k", "E"})
	for i := range res.Spectrum {
		w.Write([]string{
			strconv.FormatFloat(res.WaveNumbers[i], 'g', -1, 64),
			strconv.FormatFloat(res.Spectrum[i], 'g', -1, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
