// Package pcaref performance measurement for solve characterization
package pcaref

import (
	"time"
)

// HardwareCounters holds CPU performance counter readings collected around a
// solve. Available on Linux via perf events; nil elsewhere or when the
// kernel denies access.
type HardwareCounters struct {
	Cycles       uint64  `json:"cycles"`
	Instructions uint64  `json:"instructions"`
	CacheMisses  uint64  `json:"cache_misses"`
	BranchMisses uint64  `json:"branch_misses"`
	IPC          float64 `json:"ipc"`
}

// SolveMetrics summarizes one whole-batch eigensolver run.
type SolveMetrics struct {
	Duration        time.Duration     `json:"duration"`
	Matrices        int               `json:"matrices"`
	TotalIterations int               `json:"total_iterations"`
	MaxIterations   int               `json:"max_iterations"`
	Converged       int               `json:"converged"`
	GFLOPS          float64           `json:"gflops"`
	Counters        *HardwareCounters `json:"counters,omitempty"`
}

// MeasureSolve runs ComputeEigenValuesAndVectors on p and collects timing,
// iteration statistics, a floating-point throughput estimate, and hardware
// counters where the platform supports them. The numerical results land in p
// exactly as they would without measurement.
func MeasureSolve(p *PCA) (*SolveMetrics, error) {
	counters, counterErr := openCounters()

	start := time.Now()
	err := p.ComputeEigenValuesAndVectors()
	duration := time.Since(start)

	var hw *HardwareCounters
	if counterErr == nil {
		hw = counters.stop()
	}
	if err != nil {
		return nil, err
	}

	m := &SolveMetrics{
		Duration: duration,
		Matrices: p.MatrixCount(),
		Counters: hw,
	}
	for i := 0; i < p.MatrixCount(); i++ {
		iters := p.IterationsAt(i)
		m.TotalIterations += iters
		if iters > m.MaxIterations {
			m.MaxIterations = iters
		}
		if p.ConvergedAt(i) {
			m.Converged++
		}
	}

	f := p.Features()
	flops := float64(m.TotalIterations) * FlopsPerIterationFactor * float64(f*f*f)
	if duration > 0 {
		m.GFLOPS = flops / duration.Seconds() / 1e9
	}
	return m, nil
}
