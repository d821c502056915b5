package spectrum

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Power returns |X[k]|^2 for each complex spectrum bin.
//
// SIMD implementations are used when available (AVX2, SSE2, NEON). Scratch
// buffers are pooled, so in steady state this allocates only the output.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	PowerFromParts(out, re, im)
	putScratch(buf)
	return out
}

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst.
// All three slices must have the same length.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}

// Energy returns the pointwise spectral kinetic energy 0.5·Re(X·conj(X))
// of each bin, i.e. half the power.
func Energy(in []complex128) []float64 {
	out := Power(in)
	for i := range out {
		out[i] *= 0.5
	}
	return out
}

// FoldIndex maps FFT output index i of an n-point transform to its signed
// frequency index. Indices strictly above n/2 represent negative
// frequencies and are shifted down by n. For even n the Nyquist index n/2
// stays positive.
func FoldIndex(i, n int) int {
	if float64(i) > float64(n)/2 {
		return i - n
	}
	return i
}

// RadialBin returns the integer shell index round(sqrt(kx²+ky²)) for a
// signed wave-number pair. Ties round half away from zero.
func RadialBin(kx, ky int) int {
	return int(math.Round(math.Sqrt(float64(kx*kx + ky*ky))))
}

// MaxRadialBin returns the largest shell index reachable by folded indices
// of an nx × ny transform.
func MaxRadialBin(nx, ny int) int {
	if nx <= 0 || ny <= 0 {
		return 0
	}
	return RadialBin(nx/2, ny/2)
}
