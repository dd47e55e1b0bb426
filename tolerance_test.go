package pcaref

import (
	"math"
	"testing"
)

func TestNearEqual(t *testing.T) {
	tol := EigenTolerance()

	cases := []struct {
		name string
		a, b float32
		want bool
	}{
		{"Identical", 1.5, 1.5, true},
		{"SignedZero", 0, float32(math.Copysign(0, -1)), true},
		{"WithinAbs", 0, 5e-7, true},
		{"WithinRel", 1000, 1000.0005, true},
		{"OutsideRel", 1000, 1001, false},
		{"BothNaN", float32(math.NaN()), float32(math.NaN()), true},
		{"OneNaN", 1, float32(math.NaN()), false},
		{"BothInf", float32(math.Inf(1)), float32(math.Inf(1)), true},
		{"OppositeInf", float32(math.Inf(1)), float32(math.Inf(-1)), false},
		{"AdjacentULP", 1, math.Nextafter32(1, 2), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NearEqual(tc.a, tc.b, tol); got != tc.want {
				t.Errorf("NearEqual(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestULPDiff(t *testing.T) {
	if d := ULPDiff(1, 1); d != 0 {
		t.Errorf("ULPDiff(1,1) = %d, want 0", d)
	}
	if d := ULPDiff(1, math.Nextafter32(1, 2)); d != 1 {
		t.Errorf("adjacent values: ULPDiff = %d, want 1", d)
	}
	if d := ULPDiff(1, -1); d != math.MaxInt32 {
		t.Errorf("opposite signs: ULPDiff = %d, want MaxInt32", d)
	}
	if d := ULPDiff(1, float32(math.NaN())); d != math.MaxInt32 {
		t.Errorf("NaN: ULPDiff = %d, want MaxInt32", d)
	}
}

func TestVerifyArray(t *testing.T) {
	tol := ToleranceConfig{AbsTol: 1e-6, RelTol: 1e-6, ULPTol: 0}

	t.Run("AllMatch", func(t *testing.T) {
		a := []float32{1, 2, 3}
		r := VerifyArray(a, []float32{1, 2, 3}, tol)
		if !r.Pass() || r.NumErrors != 0 || r.FirstError != -1 {
			t.Errorf("expected clean pass, got %+v", r)
		}
	})

	t.Run("OneMismatch", func(t *testing.T) {
		r := VerifyArray([]float32{1, 2, 3}, []float32{1, 2.5, 3}, tol)
		if r.Pass() {
			t.Fatal("expected failure")
		}
		if r.NumErrors != 1 || r.FirstError != 1 {
			t.Errorf("NumErrors=%d FirstError=%d, want 1 and 1", r.NumErrors, r.FirstError)
		}
		if math.Abs(float64(r.MaxAbsError-0.5)) > 1e-7 {
			t.Errorf("MaxAbsError = %v, want 0.5", r.MaxAbsError)
		}
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		r := VerifyArray([]float32{1, 2}, []float32{1}, tol)
		if r.Pass() || r.NumErrors != 2 {
			t.Errorf("length mismatch should fail wholesale, got %+v", r)
		}
	})
}
