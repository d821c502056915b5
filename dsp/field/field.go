// Package field provides a dense two-dimensional real-valued grid used to
// carry sampled velocity components between readers and analysis code.
package field

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrInvalidShape is returned when a grid dimension is not positive.
	ErrInvalidShape = errors.New("field: dimensions must be > 0")
	// ErrRagged is returned when input rows differ in length.
	ErrRagged = errors.New("field: rows must have equal length")
)

// Field is an nx × ny grid stored row-major. Row i holds the samples with
// first index i; column j holds the samples with second index j.
//
// A Field is never modified by the packages that consume it. Constructors
// copy their input, so callers may reuse their buffers.
type Field struct {
	nx, ny int
	data   []float64
}

// New returns a zero-valued nx × ny field.
func New(nx, ny int) (Field, error) {
	if nx <= 0 || ny <= 0 {
		return Field{}, fmt.Errorf("%w: %dx%d", ErrInvalidShape, nx, ny)
	}
	return Field{nx: nx, ny: ny, data: make([]float64, nx*ny)}, nil
}

// Generate returns an nx × ny field with sample (i, j) set to fn(i, j).
func Generate(nx, ny int, fn func(i, j int) float64) (Field, error) {
	f, err := New(nx, ny)
	if err != nil {
		return Field{}, err
	}
	for i := 0; i < nx; i++ {
		row := f.data[i*ny : (i+1)*ny]
		for j := range row {
			row[j] = fn(i, j)
		}
	}
	return f, nil
}

// FromRows copies a rectangular [][]float64 into a new field.
func FromRows(rows [][]float64) (Field, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Field{}, fmt.Errorf("%w: empty input", ErrInvalidShape)
	}
	nx, ny := len(rows), len(rows[0])
	f := Field{nx: nx, ny: ny, data: make([]float64, nx*ny)}
	for i, r := range rows {
		if len(r) != ny {
			return Field{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRagged, i, len(r), ny)
		}
		copy(f.data[i*ny:], r)
	}
	return f, nil
}

// FromSlice copies row-major data of length nx*ny into a new field.
func FromSlice(nx, ny int, data []float64) (Field, error) {
	if nx <= 0 || ny <= 0 {
		return Field{}, fmt.Errorf("%w: %dx%d", ErrInvalidShape, nx, ny)
	}
	if len(data) != nx*ny {
		return Field{}, fmt.Errorf("field: data length %d does not match %dx%d", len(data), nx, ny)
	}
	f := Field{nx: nx, ny: ny, data: make([]float64, len(data))}
	copy(f.data, data)
	return f, nil
}

// Rows returns nx.
func (f Field) Rows() int { return f.nx }

// Cols returns ny.
func (f Field) Cols() int { return f.ny }

// Len returns the number of samples.
func (f Field) Len() int { return len(f.data) }

// Empty reports whether the field holds no samples.
func (f Field) Empty() bool { return len(f.data) == 0 }

// At returns sample (i, j). It panics if the index is out of range, like a
// slice access.
func (f Field) At(i, j int) float64 {
	if i < 0 || i >= f.nx || j < 0 || j >= f.ny {
		panic(fmt.Sprintf("field: index (%d, %d) out of range %dx%d", i, j, f.nx, f.ny))
	}
	return f.data[i*f.ny+j]
}

// Row returns a copy of row i.
func (f Field) Row(i int) []float64 {
	out := make([]float64, f.ny)
	copy(out, f.data[i*f.ny:(i+1)*f.ny])
	return out
}

// RawRow returns row i without copying. Callers must not modify it.
func (f Field) RawRow(i int) []float64 {
	return f.data[i*f.ny : (i+1)*f.ny : (i+1)*f.ny]
}

// Values returns a row-major copy of all samples.
func (f Field) Values() []float64 {
	return append([]float64(nil), f.data...)
}

// Sum returns the sum of all samples.
func (f Field) Sum() float64 {
	if len(f.data) == 0 {
		return 0
	}
	return floats.Sum(f.data)
}

// Axis returns n uniformly spaced cell coordinates covering [0, length),
// i.e. x[k] = k·length/n.
func Axis(n int, length float64) []float64 {
	if n <= 0 {
		return nil
	}
	pts := make([]float64, n+1)
	floats.Span(pts, 0, length)
	return pts[:n]
}
