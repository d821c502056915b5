// Package window provides taper functions for velocity fields that are not
// periodic over their domain, applied separably along both axes before a
// spectral transform.
package window

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/alds-harness/dsp/field"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeTukey
)

var typeNames = [...]string{
	TypeRectangular: "rectangular",
	TypeHann:        "hann",
	TypeHamming:     "hamming",
	TypeBlackman:    "blackman",
	TypeTukey:       "tukey",
}

var (
	ErrUnknownType = errors.New("window: unknown type")
	ErrZeroWindow  = errors.New("window: all coefficients are zero")
)

// Types returns every window type in declaration order.
func Types() []Type {
	return []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeTukey}
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Parse maps a window name to its Type. The empty string is rectangular.
func Parse(name string) (Type, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "none" {
		return TypeRectangular, nil
	}
	for i, s := range typeNames {
		if s == n {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	periodic bool
}

func defaultConfig() config {
	return config{alpha: 0.5}
}

// WithAlpha sets the taper fraction of the Tukey window, clamped to [0,1].
func WithAlpha(v float64) Option {
	return func(c *config) {
		c.alpha = math.Max(0, math.Min(1, v))
	}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic), cfg)
	}
	return out
}

// Apply2D returns u multiplied by w(i)·w(j), where each axis window is
// normalized to unit mean square so the expected total energy of the field
// is unchanged. u itself is not modified.
func Apply2D(u field.Field, t Type, opts ...Option) (field.Field, error) {
	if t < 0 || int(t) >= len(typeNames) {
		return field.Field{}, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	nx, ny := u.Rows(), u.Cols()
	if t == TypeRectangular || u.Empty() {
		return u, nil
	}

	wx, err := normalized(Generate(t, nx, opts...))
	if err != nil {
		return field.Field{}, err
	}
	wy, err := normalized(Generate(t, ny, opts...))
	if err != nil {
		return field.Field{}, err
	}

	data := u.Values()
	for i := 0; i < nx; i++ {
		row := data[i*ny : (i+1)*ny]
		vecmath.MulBlockInPlace(row, wy)
		for j := range row {
			row[j] *= wx[i]
		}
	}
	return field.FromSlice(nx, ny, data)
}

// normalized scales w in place to unit mean square.
func normalized(w []float64) ([]float64, error) {
	ss := 0.0
	for _, v := range w {
		ss += v * v
	}
	if ss == 0 {
		return nil, fmt.Errorf("%w: length %d", ErrZeroWindow, len(w))
	}
	g := math.Sqrt(float64(len(w)) / ss)
	for i := range w {
		w[i] *= g
	}
	return w, nil
}

func samplePosition(i, n int, periodic bool) float64 {
	if n == 1 {
		return 0.5
	}
	if periodic {
		return float64(i) / float64(n)
	}
	return float64(i) / float64(n-1)
}

func evalWindow(t Type, x float64, cfg config) float64 {
	switch t {
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeTukey:
		return tukeyAt(x, cfg.alpha)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(2*math.Pi*float64(k)*x)
	}
	return sum
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}
	edge := alpha / 2
	switch {
	case x < edge:
		return 0.5 * (1 - math.Cos(math.Pi*x/edge))
	case x > 1-edge:
		return 0.5 * (1 - math.Cos(math.Pi*(1-x)/edge))
	default:
		return 1
	}
}
