// Package tke computes the one-dimensional turbulent kinetic energy spectrum
// of a velocity component sampled on a uniform two-dimensional grid.
//
// The field is transformed with an orthonormal 2D DFT, the pointwise
// spectral energy 0.5·|û|² is formed, and every (kx, ky) bin is summed into
// the radial shell round(sqrt(kx²+ky²)). Shells are not normalized by the
// number of contributing bins: E(k) is the integral of the 2D spectrum over
// the ring |k| ≈ const.
package tke

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/alds-harness/dsp/fft2"
	"github.com/cwbudde/alds-harness/dsp/field"
	"github.com/cwbudde/alds-harness/dsp/spectrum"
)

var (
	ErrEmptyField    = errors.New("tke: velocity field is empty")
	ErrInvalidExtent = errors.New("tke: domain extents must be finite and > 0")
	ErrBinOverflow   = errors.New("tke: radial bin exceeds spectrum length")
	ErrUnknownBounds = errors.New("tke: unknown bounds policy")
)

// BoundsPolicy decides what happens to energy whose radial shell lies past
// the nx-sized accumulator. Only fields with ny large relative to nx can
// reach such shells.
type BoundsPolicy int

const (
	// BoundsError rejects the field before any work is done.
	BoundsError BoundsPolicy = iota
	// BoundsDiscard leaves overflowing energy out of the spectrum and
	// reports it in Result.Discarded.
	BoundsDiscard
)

// String returns the policy name used in configuration files.
func (p BoundsPolicy) String() string {
	switch p {
	case BoundsError:
		return "error"
	case BoundsDiscard:
		return "discard"
	default:
		return fmt.Sprintf("BoundsPolicy(%d)", int(p))
	}
}

// ParseBoundsPolicy maps "error" or "discard" to a policy. The empty string
// selects BoundsError.
func ParseBoundsPolicy(s string) (BoundsPolicy, error) {
	switch s {
	case "", "error":
		return BoundsError, nil
	case "discard":
		return BoundsDiscard, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownBounds, s)
	}
}

// Config holds the physical domain and binning options.
type Config struct {
	// Lx and Ly are the physical extents of the grid along the first
	// (row) and second (column) index.
	Lx, Ly float64
	Bounds BoundsPolicy
}

// Result holds a computed spectrum. Spectrum and WaveNumbers both have
// length nx-1: the zero-wave-number shell is excluded.
type Result struct {
	Spectrum    []float64
	WaveNumbers []float64

	// DC is the energy of shell 0, i.e. of the field mean.
	DC float64
	// Discarded is the energy left out under BoundsDiscard.
	Discarded float64
	// Knorm is the wave-number spacing sqrt((2π/Lx)² + (2π/Ly)²).
	Knorm float64
}

// Total returns the energy summed over the returned shells.
func (r Result) Total() float64 {
	sum := 0.0
	for _, e := range r.Spectrum {
		sum += e
	}
	return sum
}

// Calculator computes TKE spectra for a fixed domain. It holds no mutable
// state and may be shared between goroutines.
type Calculator struct {
	cfg Config
}

// NewCalculator validates cfg and returns a calculator.
func NewCalculator(cfg Config) (*Calculator, error) {
	if !validExtent(cfg.Lx) || !validExtent(cfg.Ly) {
		return nil, fmt.Errorf("%w: lx=%g ly=%g", ErrInvalidExtent, cfg.Lx, cfg.Ly)
	}
	if cfg.Bounds != BoundsError && cfg.Bounds != BoundsDiscard {
		return nil, fmt.Errorf("tke: invalid bounds policy %d", int(cfg.Bounds))
	}
	return &Calculator{cfg: cfg}, nil
}

// Config returns the calculator configuration.
func (c *Calculator) Config() Config { return c.cfg }

// Compute is a one-shot spectrum computation with the default bounds
// policy.
func Compute(u field.Field, lx, ly float64) (Result, error) {
	c, err := NewCalculator(Config{Lx: lx, Ly: ly})
	if err != nil {
		return Result{}, err
	}
	return c.Compute(u)
}

// Knorm returns the wave-number spacing of a domain of size lx × ly.
func Knorm(lx, ly float64) float64 {
	kx := 2 * math.Pi / lx
	ky := 2 * math.Pi / ly
	return math.Sqrt(kx*kx + ky*ky)
}

// WaveNumbers returns the full length-n axis i·knorm, including i = 0.
func WaveNumbers(n int, knorm float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * knorm
	}
	return out
}

// Compute returns the TKE spectrum of u. u is not modified.
func (c *Calculator) Compute(u field.Field) (Result, error) {
	if u.Empty() {
		return Result{}, ErrEmptyField
	}
	nx, ny := u.Rows(), u.Cols()

	maxBin := spectrum.MaxRadialBin(nx, ny)
	if maxBin > nx-1 && c.cfg.Bounds == BoundsError {
		return Result{}, fmt.Errorf("%w: shell %d reachable on a %dx%d grid, spectrum holds %d (needs ny small enough relative to nx)",
			ErrBinOverflow, maxBin, nx, ny, nx)
	}

	uf, err := fft2.Real(u, fft2.NormOrtho)
	if err != nil {
		return Result{}, fmt.Errorf("tke: transform: %w", err)
	}
	ef := spectrum.Energy(uf)

	acc := make([]float64, nx)
	discarded := 0.0
	for i := 0; i < nx; i++ {
		rkx := spectrum.FoldIndex(i, nx)
		row := ef[i*ny : (i+1)*ny]
		for j, e := range row {
			k := spectrum.RadialBin(rkx, spectrum.FoldIndex(j, ny))
			if k >= nx {
				discarded += e
				continue
			}
			acc[k] += e
		}
	}

	knorm := Knorm(c.cfg.Lx, c.cfg.Ly)
	waves := WaveNumbers(nx, knorm)

	return Result{
		Spectrum:    acc[1:],
		WaveNumbers: waves[1:],
		DC:          acc[0],
		Discarded:   discarded,
		Knorm:       knorm,
	}, nil
}

func validExtent(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
