package pcaref

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SessionResult captures one benchmark-mode characterization run: the batch
// shape, iteration statistics and throughput, plus the host that produced
// it.
type SessionResult struct {
	Name            string    `json:"name"`
	Samples         int       `json:"samples"`
	Features        int       `json:"features"`
	Matrices        int       `json:"matrices"`
	BenchmarkMode   bool      `json:"benchmark_mode"`
	TotalIterations int       `json:"total_iterations"`
	MaxIterations   int       `json:"max_iterations"`
	Converged       int       `json:"converged"`
	NsPerSolve      float64   `json:"ns_per_solve,omitempty"`
	GFLOPS          float64   `json:"gflops,omitempty"`
	Host            HostInfo  `json:"host"`
	Timestamp       time.Time `json:"timestamp"`
}

// SessionLogger appends benchmark results to a timestamped JSON session file.
// Results are flushed on every log call so a crashed run still leaves its
// data behind.
type SessionLogger struct {
	mu      sync.Mutex
	results []SessionResult
	file    string
}

// NewSessionLogger creates the log directory if needed and starts a new
// session file named after sessionName.
func NewSessionLogger(dir, sessionName string) (*SessionLogger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	timestamp := time.Now().Format("20060102_150405")
	return &SessionLogger{
		file: filepath.Join(dir, fmt.Sprintf("%s_%s.json", sessionName, timestamp)),
	}, nil
}

// Path returns the session file being written.
func (l *SessionLogger) Path() string {
	return l.file
}

// Log records one result and flushes the session file.
func (l *SessionLogger) Log(result SessionResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now()
	}
	l.results = append(l.results, result)

	data, err := json.MarshalIndent(l.results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return os.WriteFile(l.file, data, 0o644)
}

// ResultFromMetrics builds a SessionResult from a measured solve.
func ResultFromMetrics(name string, p *PCA, m *SolveMetrics, benchmarkMode bool) SessionResult {
	r := SessionResult{
		Name:            name,
		Samples:         p.Samples(),
		Features:        p.Features(),
		Matrices:        p.MatrixCount(),
		BenchmarkMode:   benchmarkMode,
		TotalIterations: m.TotalIterations,
		MaxIterations:   m.MaxIterations,
		Converged:       m.Converged,
		GFLOPS:          m.GFLOPS,
		Host:            CollectHostInfo(),
	}
	if m.Matrices > 0 {
		r.NsPerSolve = float64(m.Duration.Nanoseconds()) / float64(m.Matrices)
	}
	return r
}
