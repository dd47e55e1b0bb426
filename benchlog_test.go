package pcaref

import (
	"encoding/json"
	"os"
	"testing"
)

func TestSessionLogger(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewSessionLogger(dir, "unit")
	if err != nil {
		t.Fatal(err)
	}

	batch := GenerateBatch(16, 3, 2, 1)
	p, err := New(16, 3, batch, Options{})
	if err != nil {
		t.Fatal(err)
	}
	p.ComputeCovarianceMatrix()
	m, err := MeasureSolve(p)
	if err != nil {
		t.Fatal(err)
	}

	result := ResultFromMetrics("unit-run", p, m, false)
	if err := logger.Log(result); err != nil {
		t.Fatal(err)
	}
	if err := logger.Log(result); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(logger.Path())
	if err != nil {
		t.Fatalf("session file missing: %v", err)
	}
	var results []SessionResult
	if err := json.Unmarshal(data, &results); err != nil {
		t.Fatalf("session file not valid JSON: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("logged %d results, want 2", len(results))
	}
	if results[0].Name != "unit-run" || results[0].Features != 3 || results[0].Matrices != 2 {
		t.Errorf("result metadata wrong: %+v", results[0])
	}
	if results[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}
