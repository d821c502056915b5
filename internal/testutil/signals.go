package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/alds-harness/dsp/field"
)

// SineField returns sin(2π(kx·i/nx + ky·j/ny)) scaled by amplitude: a plane
// wave with kx periods along the rows and ky periods along the columns.
func SineField(nx, ny int, kx, ky, amplitude float64) field.Field {
	f, err := field.Generate(nx, ny, func(i, j int) float64 {
		phase := kx*float64(i)/float64(nx) + ky*float64(j)/float64(ny)
		return amplitude * math.Sin(2*math.Pi*phase)
	})
	if err != nil {
		panic(err)
	}
	return f
}

// DeterministicNoiseField fills an nx × ny field with uniform noise in
// [-amplitude, amplitude) from a fixed seed.
func DeterministicNoiseField(seed int64, amplitude float64, nx, ny int) field.Field {
	rng := rand.New(rand.NewSource(seed))
	f, err := field.Generate(nx, ny, func(int, int) float64 {
		return (rng.Float64()*2 - 1) * amplitude
	})
	if err != nil {
		panic(err)
	}
	return f
}

// ConstantField returns an nx × ny field with every sample set to value.
func ConstantField(value float64, nx, ny int) field.Field {
	f, err := field.Generate(nx, ny, func(int, int) float64 { return value })
	if err != nil {
		panic(err)
	}
	return f
}
