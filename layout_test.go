package pcaref

import "testing"

func TestBatchLayoutIndexing(t *testing.T) {
	l := batchLayout{rows: 3, cols: 4}

	if l.stride() != 12 {
		t.Fatalf("stride = %d, want 12", l.stride())
	}
	if got := l.at(0, 0, 0); got != 0 {
		t.Errorf("at(0,0,0) = %d, want 0", got)
	}
	if got := l.at(2, 1, 3); got != 2*12+1*4+3 {
		t.Errorf("at(2,1,3) = %d, want %d", got, 2*12+1*4+3)
	}

	buf := make([]float32, 3*12)
	buf[12] = 7
	if s := l.slice(buf, 1); s[0] != 7 || len(s) != 12 {
		t.Errorf("slice(1) = len %d first %v, want len 12 first 7", len(s), s[0])
	}
}

func TestBatchLayoutBounds(t *testing.T) {
	l := batchLayout{rows: 2, cols: 2}
	buf := make([]float32, 8)

	mustPanic := func(t *testing.T, name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	mustPanic(t, "RowOverflow", func() { l.at(0, 2, 0) })
	mustPanic(t, "ColNegative", func() { l.at(0, 0, -1) })
	mustPanic(t, "MatrixOverflow", func() { l.slice(buf, 2) })
	mustPanic(t, "MatrixNegative", func() { l.slice(buf, -1) })
}
