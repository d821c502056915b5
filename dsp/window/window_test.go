package window

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/alds-harness/internal/testutil"
)

func TestGenerateAllTypes(t *testing.T) {
	for _, typ := range Types() {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}
			testutil.RequireFinite(t, w)
			for i, v := range w {
				if v < -1e-12 || v > 1+1e-12 {
					t.Fatalf("coefficient[%d]=%v outside [0,1]", i, v)
				}
			}
		})
	}
	if Generate(TypeHann, 0) != nil {
		t.Fatal("zero length must return nil")
	}
}

func TestGenerateSymmetry(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeHamming, TypeBlackman, TypeTukey} {
		w := Generate(typ, 33)
		for i := range w {
			if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
				t.Fatalf("%s not symmetric at %d: %v vs %v", typ, i, w[i], w[len(w)-1-i])
			}
		}
	}
}

func TestGeneratePeriodic(t *testing.T) {
	w := Generate(TypeHann, 4, WithPeriodic())
	want := []float64{0, 0.5, 1, 0.5}
	testutil.RequireSliceNearlyEqual(t, w, want, 1e-12)
}

func TestTukeyAlpha(t *testing.T) {
	flat := Generate(TypeTukey, 16, WithAlpha(0))
	for i, v := range flat {
		if v != 1 {
			t.Fatalf("alpha=0 coefficient[%d]=%v, want 1", i, v)
		}
	}
	hann := Generate(TypeHann, 16)
	full := Generate(TypeTukey, 16, WithAlpha(1))
	testutil.RequireSliceNearlyEqual(t, full, hann, 1e-12)

	clamped := Generate(TypeTukey, 16, WithAlpha(3))
	testutil.RequireSliceNearlyEqual(t, clamped, hann, 1e-12)
}

func TestParse(t *testing.T) {
	for _, typ := range Types() {
		got, err := Parse(typ.String())
		if err != nil || got != typ {
			t.Errorf("Parse(%q) = %v, %v", typ.String(), got, err)
		}
	}
	for _, s := range []string{"", "none", " Hann "} {
		if _, err := Parse(s); err != nil {
			t.Errorf("Parse(%q): %v", s, err)
		}
	}
	if _, err := Parse("kaiser"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err=%v want ErrUnknownType", err)
	}
	if s := Type(42).String(); s != "Type(42)" {
		t.Fatalf("String() = %q", s)
	}
}

func TestApply2DPreservesMeanSquare(t *testing.T) {
	u := testutil.ConstantField(1, 8, 16)
	got, err := Apply2D(u, TypeHann, WithPeriodic())
	if err != nil {
		t.Fatalf("Apply2D: %v", err)
	}
	vals := got.Values()
	ms := 0.0
	for _, v := range vals {
		ms += v * v
	}
	ms /= float64(len(vals))
	testutil.RequireNearlyEqual(t, "mean square", ms, 1, 1e-12)

	if got.At(0, 5) != 0 || got.At(3, 0) != 0 {
		t.Fatal("periodic Hann must zero the first row and column")
	}
	if u.At(0, 0) != 1 {
		t.Fatal("input modified")
	}
}

func TestApply2DRectangularIsIdentity(t *testing.T) {
	u := testutil.DeterministicNoiseField(5, 1, 4, 4)
	got, err := Apply2D(u, TypeRectangular)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got.Values(), u.Values(), 0)
}

func TestApply2DErrors(t *testing.T) {
	u := testutil.ConstantField(1, 2, 4)
	if _, err := Apply2D(u, TypeHann); !errors.Is(err, ErrZeroWindow) {
		t.Fatalf("err=%v want ErrZeroWindow", err)
	}
	if _, err := Apply2D(u, Type(99)); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err=%v want ErrUnknownType", err)
	}
}
