// Package plot renders energy spectra and prediction comparisons with
// gonum/plot and saves them as PDF or PNG figures.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/alds-harness/measure/tke"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
)

var (
	ErrModeUnsupported = errors.New("plot: save mode not supported")
	ErrUnknownMode     = errors.New("plot: unknown save mode")
	ErrNoPositiveData  = errors.New("plot: no positive values to draw on log axes")
	ErrEmptySample     = errors.New("plot: sample has no points")
	ErrLengthMismatch  = errors.New("plot: sample channel length does not match point count")
	ErrNoPlots         = errors.New("plot: nothing to save")
)

// Figure geometry shared by every saved figure.
const (
	FigureWidth  = 20 * vg.Inch
	FigureHeight = 5 * vg.Inch
	DPI          = 300
)

// Mode selects where a figure goes.
type Mode int

const (
	// ModeTrack logs to an experiment tracker. Not available.
	ModeTrack Mode = iota
	// ModeShow opens an interactive window. Not available.
	ModeShow
	// ModeSave writes path+".pdf".
	ModeSave
	// ModeSavePNG writes path+".png" at 300 dpi.
	ModeSavePNG
)

var modeNames = [...]string{
	ModeTrack:   "wandb",
	ModeShow:    "plt",
	ModeSave:    "save",
	ModeSavePNG: "save_png",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps "wandb", "plt", "save" and "save_png" to a Mode.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Extension returns the file extension written by m, or "" for modes that
// do not write files.
func (m Mode) Extension() string {
	switch m {
	case ModeSave:
		return ".pdf"
	case ModeSavePNG:
		return ".png"
	default:
		return ""
	}
}

// Spectrum draws E(k) against k on log-log axes. Bins with non-positive
// energy are skipped since they have no logarithm.
func Spectrum(res tke.Result) (*plot.Plot, error) {
	n := min(len(res.Spectrum), len(res.WaveNumbers))
	pts := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		k, e := res.WaveNumbers[i], res.Spectrum[i]
		if k > 0 && e > 0 && !math.IsInf(e, 0) {
			pts = append(pts, plotter.XY{X: k, Y: e})
		}
	}
	if len(pts) == 0 {
		return nil, ErrNoPositiveData
	}

	p := plot.New()
	p.Title.Text = "TKE spectrum"
	p.X.Label.Text = "k"
	p.Y.Label.Text = "E(k)"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("plot: spectrum line: %w", err)
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	line.Width = vg.Points(1.5)
	p.Add(line)
	return p, nil
}

// Sample is one graph prediction: node positions and the first channel of
// the input, target and predicted node features.
type Sample struct {
	Pos   [][3]float64
	Input []float64
	Truth []float64
	Pred  []float64
}

func (s Sample) validate() error {
	if len(s.Pos) == 0 {
		return ErrEmptySample
	}
	for _, ch := range []struct {
		name string
		vals []float64
	}{{"input", s.Input}, {"truth", s.Truth}, {"pred", s.Pred}} {
		if len(ch.vals) != len(s.Pos) {
			return fmt.Errorf("%w: %s has %d values for %d points", ErrLengthMismatch, ch.name, len(ch.vals), len(s.Pos))
		}
	}
	return nil
}

// Panel is one tile of a figure: a plot and an optional colour bar drawn
// to its right.
type Panel struct {
	Plot     *plot.Plot
	ColorBar *plot.Plot
}

// colorBarFraction is the share of a panel's width given to its colour bar.
const colorBarFraction = 0.12

// Prediction draws the input, ground truth and prediction as three
// scatter panels over the x-y projection of the node positions, coloured
// by magnitude, each with its own colour bar.
func Prediction(s Sample) ([]Panel, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	xy := make(plotter.XYs, len(s.Pos))
	for i, p := range s.Pos {
		xy[i] = plotter.XY{X: p[0], Y: p[1]}
	}

	channels := []struct {
		title string
		vals  []float64
	}{
		{"Input", s.Input},
		{"Ground truth", s.Truth},
		{"Prediction", s.Pred},
	}
	panels := make([]Panel, len(channels))
	for i, ch := range channels {
		panel, err := scatterPanel(ch.title, xy, ch.vals)
		if err != nil {
			return nil, err
		}
		panels[i] = panel
	}
	return panels, nil
}

func scatterPanel(title string, xy plotter.XYs, vals []float64) (Panel, error) {
	mag := make([]float64, len(vals))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, v := range vals {
		mag[i] = math.Abs(v)
		lo = math.Min(lo, mag[i])
		hi = math.Max(hi, mag[i])
	}
	if !(hi > lo) {
		hi = lo + 1
	}

	cmap := moreland.ExtendedBlackBody()
	cmap.SetMax(hi)
	cmap.SetMin(lo)
	colors, err := colorize(cmap, mag)
	if err != nil {
		return Panel{}, fmt.Errorf("plot: %s: %w", title, err)
	}

	sc, err := plotter.NewScatter(xy)
	if err != nil {
		return Panel{}, fmt.Errorf("plot: %s: %w", title, err)
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{Color: colors[i], Radius: vg.Points(1.5), Shape: draw.CircleGlyph{}}
	}

	p := plot.New()
	p.Title.Text = title
	p.Add(sc)
	p.HideAxes()

	bar := plot.New()
	bar.HideX()
	bar.Y.Padding = 0
	bar.Add(&plotter.ColorBar{ColorMap: cmap, Vertical: true})
	return Panel{Plot: p, ColorBar: bar}, nil
}

func colorize(cmap palette.ColorMap, vals []float64) ([]color.Color, error) {
	out := make([]color.Color, len(vals))
	lo, hi := cmap.Min(), cmap.Max()
	for i, v := range vals {
		c, err := cmap.At(math.Max(lo, math.Min(hi, v)))
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// Save lays plots out side by side on a FigureWidth × FigureHeight page
// and writes it to path plus the mode's extension, creating parent
// directories. It returns the written file name.
func Save(plots []*plot.Plot, mode Mode, path string) (string, error) {
	panels := make([]Panel, len(plots))
	for i, p := range plots {
		panels[i] = Panel{Plot: p}
	}
	return SavePanels(panels, mode, path)
}

// SavePanels is Save for panels that may carry a colour bar.
func SavePanels(panels []Panel, mode Mode, path string) (string, error) {
	if len(panels) == 0 {
		return "", ErrNoPlots
	}

	var canvas vg.CanvasWriterTo
	switch mode {
	case ModeSave:
		canvas = vgpdf.New(FigureWidth, FigureHeight)
	case ModeSavePNG:
		canvas = vgimg.PngCanvas{Canvas: vgimg.NewWith(
			vgimg.UseWH(FigureWidth, FigureHeight),
			vgimg.UseDPI(DPI),
		)}
	case ModeTrack, ModeShow:
		return "", fmt.Errorf("%w: %s", ErrModeUnsupported, mode)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}

	dc := draw.New(canvas)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(panels),
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}
	for j, panel := range panels {
		cell := tiles.At(dc, j, 0)
		if panel.ColorBar != nil {
			barWidth := vg.Length(colorBarFraction) * cell.Rectangle.Size().X
			panel.ColorBar.Draw(draw.Crop(cell, cell.Rectangle.Size().X-barWidth, 0, 0, 0))
			cell = draw.Crop(cell, 0, -barWidth-vg.Millimeter, 0, 0)
		}
		if panel.Plot != nil {
			panel.Plot.Draw(cell)
		}
	}

	name := path + mode.Extension()
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	if _, err := canvas.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("plot: writing %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return name, nil
}
