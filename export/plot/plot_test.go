package plot

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/alds-harness/measure/tke"
	"gonum.org/v1/plot"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"wandb", ModeTrack},
		{"plt", ModeShow},
		{"save", ModeSave},
		{"SAVE_PNG", ModeSavePNG},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if got.String() != modeNames[tt.want] {
			t.Errorf("String() = %q", got.String())
		}
	}
	if _, err := ParseMode("svg"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("err=%v want ErrUnknownMode", err)
	}
	if s := Mode(9).String(); s != "Mode(9)" {
		t.Fatalf("String() = %q", s)
	}
}

func TestSpectrumSkipsNonPositive(t *testing.T) {
	res := tke.Result{
		Spectrum:    []float64{0, 2, 1, 0.5},
		WaveNumbers: []float64{1, 2, 3, 4},
	}
	p, err := Spectrum(res)
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	if p.X.Min != 2 || p.X.Max != 4 {
		t.Fatalf("x range = [%v, %v], want [2, 4]", p.X.Min, p.X.Max)
	}

	_, err = Spectrum(tke.Result{Spectrum: []float64{0, 0}, WaveNumbers: []float64{1, 2}})
	if !errors.Is(err, ErrNoPositiveData) {
		t.Fatalf("err=%v want ErrNoPositiveData", err)
	}
}

func testSample(n int) Sample {
	s := Sample{
		Pos:   make([][3]float64, n),
		Input: make([]float64, n),
		Truth: make([]float64, n),
		Pred:  make([]float64, n),
	}
	for i := range s.Pos {
		a := 2 * math.Pi * float64(i) / float64(n)
		s.Pos[i] = [3]float64{math.Cos(a), math.Sin(a), float64(i)}
		s.Input[i] = math.Sin(a)
		s.Truth[i] = -math.Cos(a)
		s.Pred[i] = -0.9 * math.Cos(a)
	}
	return s
}

func TestPrediction(t *testing.T) {
	panels, err := Prediction(testSample(32))
	if err != nil {
		t.Fatalf("Prediction: %v", err)
	}
	want := []string{"Input", "Ground truth", "Prediction"}
	if len(panels) != len(want) {
		t.Fatalf("got %d panels", len(panels))
	}
	for i, p := range panels {
		if p.Plot.Title.Text != want[i] {
			t.Errorf("panel %d title %q, want %q", i, p.Plot.Title.Text, want[i])
		}
		if p.ColorBar == nil {
			t.Fatalf("panel %d has no colour bar", i)
		}
	}

	bar := panels[2].ColorBar
	if math.Abs(bar.Y.Max-0.9) > 1e-12 || math.Abs(bar.Y.Min) > 1e-12 {
		t.Fatalf("prediction colour bar range = [%v, %v], want [0, 0.9]", bar.Y.Min, bar.Y.Max)
	}
}

func TestPredictionConstantChannel(t *testing.T) {
	s := testSample(8)
	for i := range s.Pred {
		s.Pred[i] = 3
	}
	panels, err := Prediction(s)
	if err != nil {
		t.Fatalf("Prediction with constant channel: %v", err)
	}
	if bar := panels[2].ColorBar; bar.Y.Min != 3 || bar.Y.Max != 4 {
		t.Fatalf("colour bar range = [%v, %v], want [3, 4]", bar.Y.Min, bar.Y.Max)
	}
}

func TestPredictionValidation(t *testing.T) {
	if _, err := Prediction(Sample{}); !errors.Is(err, ErrEmptySample) {
		t.Fatalf("err=%v want ErrEmptySample", err)
	}
	s := testSample(4)
	s.Truth = s.Truth[:3]
	if _, err := Prediction(s); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err=%v want ErrLengthMismatch", err)
	}
}

func TestSaveWritesFiles(t *testing.T) {
	panels, err := Prediction(testSample(16))
	if err != nil {
		t.Fatal(err)
	}
	base := filepath.Join(t.TempDir(), "figs", "run1", "prediction")

	tests := []struct {
		mode  Mode
		magic []byte
	}{
		{ModeSave, []byte("%PDF")},
		{ModeSavePNG, []byte("\x89PNG")},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			name, err := SavePanels(panels, tt.mode, base)
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if name != base+tt.mode.Extension() {
				t.Fatalf("name = %q", name)
			}
			data, err := os.ReadFile(name)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(data, tt.magic) {
				t.Fatalf("%s does not start with %q", name, tt.magic)
			}
		})
	}
}

func TestSaveUnsupported(t *testing.T) {
	p, err := Spectrum(tke.Result{Spectrum: []float64{1, 0.5}, WaveNumbers: []float64{1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, mode := range []Mode{ModeTrack, ModeShow} {
		if _, err := Save([]*plot.Plot{p}, mode, filepath.Join(dir, "x")); !errors.Is(err, ErrModeUnsupported) {
			t.Errorf("%s: err=%v want ErrModeUnsupported", mode, err)
		}
	}
	if _, err := Save(nil, ModeSave, filepath.Join(dir, "x")); !errors.Is(err, ErrNoPlots) {
		t.Fatalf("err=%v want ErrNoPlots", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("unsupported modes wrote files: %v", entries)
	}
}
