// Package turbulence summarizes one-dimensional turbulent kinetic energy
// spectra E(k) as produced by package tke.
package turbulence

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// KolmogorovSlope is the inertial-range exponent of E(k) ∝ k^(-5/3).
const KolmogorovSlope = -5.0 / 3.0

// RelativeFloor is the fraction of the peak shell energy below which a shell
// is treated as numerical noise by InertialSlope.
const RelativeFloor = 1e-12

// ErrTooFewPoints is returned when a slope fit has fewer than two usable
// shells.
var ErrTooFewPoints = errors.New("turbulence: slope fit needs at least 2 positive shells")

// Stats holds scalar descriptors of an energy spectrum.
type Stats struct {
	BinCount int
	Total    float64 // sum of E(k)
	Peak     float64
	PeakBin  int
	// PeakWaveNumber is k at the most energetic shell.
	PeakWaveNumber float64
	Centroid       float64 // energy-weighted mean wave number
	Spread         float64 // energy-weighted std. deviation around Centroid
	// IntegralScale is L = (π/2)·Σ(E/k)/ΣE.
	IntegralScale float64
	// Rolloff is the wave number below which 85% of the energy lies.
	Rolloff float64
}

// Summarize computes [Stats] for spectrum E over waveNumbers k. Both slices
// must have the same length; shells with k <= 0 are ignored by the integral
// scale. A nil or mismatched input yields the zero Stats.
func Summarize(spectrum, waveNumbers []float64) Stats {
	n := len(spectrum)
	if n == 0 || n != len(waveNumbers) {
		return Stats{}
	}

	var s Stats
	s.BinCount = n
	s.Total = floats.Sum(spectrum)
	s.PeakBin = floats.MaxIdx(spectrum)
	s.Peak = spectrum[s.PeakBin]
	s.PeakWaveNumber = waveNumbers[s.PeakBin]

	if s.Total == 0 {
		return s
	}

	s.Centroid = floats.Dot(waveNumbers, spectrum) / s.Total
	s.Spread = spread(spectrum, waveNumbers, s.Centroid, s.Total)
	s.IntegralScale = integralScale(spectrum, waveNumbers, s.Total)
	s.Rolloff = Rolloff(spectrum, waveNumbers, 0.85)
	return s
}

func spread(e, k []float64, centroid, total float64) float64 {
	acc := 0.0
	for i, v := range e {
		d := k[i] - centroid
		acc += d * d * v
	}
	return math.Sqrt(acc / total)
}

func integralScale(e, k []float64, total float64) float64 {
	acc := 0.0
	for i, v := range e {
		if k[i] > 0 {
			acc += v / k[i]
		}
	}
	return math.Pi / 2 * acc / total
}

// Rolloff returns the smallest wave number below which fraction (0..1) of
// the total energy lies.
func Rolloff(spectrum, waveNumbers []float64, fraction float64) float64 {
	if len(spectrum) == 0 || len(spectrum) != len(waveNumbers) {
		return 0
	}
	total := floats.Sum(spectrum)
	if total == 0 {
		return 0
	}
	threshold := fraction * total
	cum := 0.0
	for i, v := range spectrum {
		cum += v
		if cum >= threshold {
			return waveNumbers[i]
		}
	}
	return waveNumbers[len(waveNumbers)-1]
}

// InertialSlope fits log E = a + b·log k over shells with kMin <= k <= kMax
// and energy above RelativeFloor times the peak, returning the slope b. A
// Kolmogorov inertial range gives b ≈ -5/3. kMax <= 0 means no upper limit.
func InertialSlope(spectrum, waveNumbers []float64, kMin, kMax float64) (float64, error) {
	if len(spectrum) != len(waveNumbers) {
		return 0, fmt.Errorf("turbulence: length mismatch %d != %d", len(spectrum), len(waveNumbers))
	}
	floor := 0.0
	if len(spectrum) > 0 {
		floor = RelativeFloor * floats.Max(spectrum)
	}
	var xs, ys []float64
	for i, e := range spectrum {
		k := waveNumbers[i]
		if k <= 0 || e <= 0 || e <= floor || k < kMin || (kMax > 0 && k > kMax) {
			continue
		}
		xs = append(xs, math.Log(k))
		ys = append(ys, math.Log(e))
	}
	if len(xs) < 2 {
		return 0, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(xs))
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	return beta, nil
}
