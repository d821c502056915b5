package spectrum

import "testing"

func BenchmarkEnergy(b *testing.B) {
	sizes := []struct {
		name string
		size int
	}{
		{"8x8", 64},
		{"32x32", 1024},
		{"128x128", 16384},
	}

	for _, testCase := range sizes {
		b.Run(testCase.name, func(b *testing.B) {
			inData := make([]complex128, testCase.size)
			for i := range inData {
				inData[i] = complex(float64(i)/10.0, float64(testCase.size-i)/10.0)
			}

			b.SetBytes(int64(testCase.size * 16))
			b.ResetTimer()

			for range b.N {
				_ = Energy(inData)
			}
		})
	}
}

func BenchmarkRadialBin(b *testing.B) {
	for range b.N {
		for kx := -32; kx < 32; kx++ {
			for ky := -32; ky < 32; ky++ {
				_ = RadialBin(kx, ky)
			}
		}
	}
}
