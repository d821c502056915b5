package testutil

import (
	"math"
	"testing"
)

func TestSineField(t *testing.T) {
	f := SineField(8, 4, 1, 0, 1)
	if f.Rows() != 8 || f.Cols() != 4 {
		t.Fatalf("shape %dx%d", f.Rows(), f.Cols())
	}
	if math.Abs(f.At(0, 3)) > 1e-15 {
		t.Fatalf("At(0,3)=%v want 0", f.At(0, 3))
	}
	if math.Abs(f.At(2, 1)-1) > 1e-15 {
		t.Fatalf("At(2,1)=%v want 1", f.At(2, 1))
	}
	// Constant along columns when ky == 0.
	for j := 1; j < 4; j++ {
		if f.At(5, j) != f.At(5, 0) {
			t.Fatalf("row 5 not constant: %v vs %v", f.At(5, j), f.At(5, 0))
		}
	}
}

func TestDeterministicNoiseFieldReproducible(t *testing.T) {
	a := DeterministicNoiseField(42, 1.0, 4, 5)
	b := DeterministicNoiseField(42, 1.0, 4, 5)
	c := DeterministicNoiseField(43, 1.0, 4, 5)
	same := true
	for i := 0; i < 4; i++ {
		for j := 0; j < 5; j++ {
			if a.At(i, j) != b.At(i, j) {
				t.Fatalf("non-deterministic at (%d,%d)", i, j)
			}
			if a.At(i, j) < -1 || a.At(i, j) >= 1 {
				t.Fatalf("(%d,%d)=%v out of range", i, j, a.At(i, j))
			}
			if a.At(i, j) != c.At(i, j) {
				same = false
			}
		}
	}
	if same {
		t.Fatal("different seeds produced identical fields")
	}
}

func TestConstantField(t *testing.T) {
	f := ConstantField(0.25, 3, 3)
	if got := f.Sum(); math.Abs(got-2.25) > 1e-15 {
		t.Fatalf("Sum=%v want 2.25", got)
	}
}
