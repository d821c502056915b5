package fft2

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/alds-harness/dsp/field"
)

// Norm selects the scaling applied by the forward transform.
type Norm int

const (
	// NormBackward leaves the forward transform unscaled.
	NormBackward Norm = iota
	// NormOrtho scales by 1/sqrt(nx*ny), making the transform unitary.
	NormOrtho
	// NormForward scales by 1/(nx*ny).
	NormForward
)

// String returns the conventional name of the normalization mode.
func (n Norm) String() string {
	switch n {
	case NormBackward:
		return "backward"
	case NormOrtho:
		return "ortho"
	case NormForward:
		return "forward"
	default:
		return fmt.Sprintf("Norm(%d)", int(n))
	}
}

var (
	// ErrInvalidSize is returned for non-positive grid dimensions.
	ErrInvalidSize = errors.New("fft2: dimensions must be > 0")
	// ErrLengthMismatch is returned when buffers do not hold nx*ny values.
	ErrLengthMismatch = errors.New("fft2: buffer length does not match plan size")
)

// Plan holds the one-dimensional backend plans and scratch buffers for an
// nx × ny transform. A Plan is not safe for concurrent use.
type Plan struct {
	nx, ny int
	norm   Norm

	rowPlan *algofft.Plan[complex128] // length ny, nil when ny == 1
	colPlan *algofft.Plan[complex128] // length nx, nil when nx == 1

	colIn  []complex128
	colOut []complex128
	rowOut []complex128
}

// NewPlan creates a plan for nx × ny grids.
func NewPlan(nx, ny int, norm Norm) (*Plan, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, nx, ny)
	}
	p := &Plan{
		nx:     nx,
		ny:     ny,
		norm:   norm,
		colIn:  make([]complex128, nx),
		colOut: make([]complex128, nx),
		rowOut: make([]complex128, ny),
	}

	var err error
	if ny > 1 {
		p.rowPlan, err = algofft.NewPlan64(ny)
		if err != nil {
			return nil, fmt.Errorf("fft2: row plan (n=%d): %w", ny, err)
		}
	}
	if nx > 1 {
		p.colPlan, err = algofft.NewPlan64(nx)
		if err != nil {
			return nil, fmt.Errorf("fft2: column plan (n=%d): %w", nx, err)
		}
	}
	return p, nil
}

// Size returns the grid dimensions of the plan.
func (p *Plan) Size() (nx, ny int) { return p.nx, p.ny }

// Forward transforms src into dst. Both hold nx*ny row-major values; dst
// and src may be the same slice.
func (p *Plan) Forward(dst, src []complex128) error {
	n := p.nx * p.ny
	if len(dst) != n || len(src) != n {
		return fmt.Errorf("%w: dst=%d src=%d want=%d", ErrLengthMismatch, len(dst), len(src), n)
	}
	if &dst[0] != &src[0] {
		copy(dst, src)
	}

	if p.rowPlan != nil {
		for i := 0; i < p.nx; i++ {
			row := dst[i*p.ny : (i+1)*p.ny]
			if err := p.rowPlan.Forward(p.rowOut, row); err != nil {
				return fmt.Errorf("fft2: row %d: %w", i, err)
			}
			copy(row, p.rowOut)
		}
	}

	if p.colPlan != nil {
		for j := 0; j < p.ny; j++ {
			for i := 0; i < p.nx; i++ {
				p.colIn[i] = dst[i*p.ny+j]
			}
			if err := p.colPlan.Forward(p.colOut, p.colIn); err != nil {
				return fmt.Errorf("fft2: column %d: %w", j, err)
			}
			for i := 0; i < p.nx; i++ {
				dst[i*p.ny+j] = p.colOut[i]
			}
		}
	}

	if scale := p.scale(); scale != 1 {
		s := complex(scale, 0)
		for i := range dst {
			dst[i] *= s
		}
	}
	return nil
}

// ForwardReal transforms a real field and returns the nx*ny row-major
// spectrum.
func (p *Plan) ForwardReal(f field.Field) ([]complex128, error) {
	if f.Rows() != p.nx || f.Cols() != p.ny {
		return nil, fmt.Errorf("%w: field %dx%d, plan %dx%d", ErrLengthMismatch, f.Rows(), f.Cols(), p.nx, p.ny)
	}
	buf := make([]complex128, p.nx*p.ny)
	for i := 0; i < p.nx; i++ {
		row := f.RawRow(i)
		off := i * p.ny
		for j, v := range row {
			buf[off+j] = complex(v, 0)
		}
	}
	if err := p.Forward(buf, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (p *Plan) scale() float64 {
	switch p.norm {
	case NormOrtho:
		return 1 / math.Sqrt(float64(p.nx*p.ny))
	case NormForward:
		return 1 / float64(p.nx*p.ny)
	default:
		return 1
	}
}

// Real is a one-shot helper that plans and transforms a real field.
func Real(f field.Field, norm Norm) ([]complex128, error) {
	if f.Empty() {
		return nil, fmt.Errorf("%w: empty field", ErrInvalidSize)
	}
	p, err := NewPlan(f.Rows(), f.Cols(), norm)
	if err != nil {
		return nil, err
	}
	return p.ForwardReal(f)
}
