package pcaref

import "testing"

func TestMeasureSolve(t *testing.T) {
	batch := GenerateBatch(32, 4, 3, 555)
	p, err := New(32, 4, batch, Options{})
	if err != nil {
		t.Fatal(err)
	}
	p.ComputeCovarianceMatrix()

	m, err := MeasureSolve(p)
	if err != nil {
		t.Fatal(err)
	}
	if m.Matrices != 3 {
		t.Errorf("Matrices = %d, want 3", m.Matrices)
	}
	if m.TotalIterations < 3 {
		t.Errorf("TotalIterations = %d, want at least one per entry", m.TotalIterations)
	}
	if m.MaxIterations == 0 || m.MaxIterations > m.TotalIterations {
		t.Errorf("MaxIterations = %d out of range", m.MaxIterations)
	}
	if m.Converged != 3 {
		t.Errorf("Converged = %d, want 3", m.Converged)
	}
	if m.Duration <= 0 {
		t.Errorf("Duration = %v, want positive", m.Duration)
	}
	// Hardware counters are best-effort; nil is valid off Linux or without
	// perf access.
}

func TestMeasureSolvePropagatesErrors(t *testing.T) {
	p, err := New(2, 2, [][]float32{{1, 0, 0, 1}}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := MeasureSolve(p); err == nil {
		t.Error("expected error when covariance not computed")
	}
}
