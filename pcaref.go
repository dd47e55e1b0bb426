package pcaref

import (
	"fmt"
	"io"
	"os"
)

// Options configures a PCA batch. The zero value is a quiet, bounded run.
type Options struct {
	// Debug enables human-readable tracing of intermediate covariance and
	// eigensolver state to DebugWriter. It has no effect on numerical
	// results.
	Debug bool

	// DebugWriter receives debug traces. Defaults to os.Stdout when Debug
	// is set and no writer is provided.
	DebugWriter io.Writer

	// BenchmarkMode disables the iteration-count bound so every solve runs
	// to true convergence regardless of cost. Used to characterize
	// worst-case iteration behavior.
	BenchmarkMode bool

	// Observer, if non-nil, receives per-iteration and per-solve events
	// from the eigensolver.
	Observer SolveObserver
}

// PCA holds one batch of sample matrices and all derived results. All
// matrices are stored as flat row-major buffers sized for the whole batch;
// output containers are allocated once at construction and filled entry by
// entry. Entries never interact, so callers are free to read results for one
// entry while others are still pending.
type PCA struct {
	samples     int
	features    int
	matrixCount int
	opts        Options

	sampleLayout batchLayout // samples x features per entry
	squareLayout batchLayout // features x features per entry

	aMatrix      []float32 // input sample matrices, immutable after New
	covariance   []float32 // features x features per entry
	eigenvalues  []float32 // features per entry, unsorted
	eigenvectors []float32 // features x features per entry, columns are vectors
	iterations   []int     // QR iterations consumed per entry
	converged    []bool    // false when the entry hit the iteration bound

	covComputed bool
}

// New constructs a PCA batch from matrices, each samples x features in
// row-major order. The inputs are copied into internal flat storage and all
// output containers are allocated up front. Dimension mismatches are caller
// contract violations and are rejected before any computation.
func New(samples, features int, matrices [][]float32, opts Options) (*PCA, error) {
	if samples < 1 {
		return nil, NewInvalidArgError("New", fmt.Sprintf("samples must be >= 1, got %d", samples))
	}
	if features < 1 {
		return nil, NewInvalidArgError("New", fmt.Sprintf("features must be >= 1, got %d", features))
	}
	if len(matrices) == 0 {
		return nil, NewInvalidArgError("New", "at least one input matrix is required")
	}
	for i, m := range matrices {
		if len(m) != samples*features {
			return nil, NewInvalidArgError("New", fmt.Sprintf(
				"matrix %d has %d elements, want %d (%dx%d)",
				i, len(m), samples*features, samples, features))
		}
	}

	if opts.Debug && opts.DebugWriter == nil {
		opts.DebugWriter = os.Stdout
	}

	count := len(matrices)
	p := &PCA{
		samples:      samples,
		features:     features,
		matrixCount:  count,
		opts:         opts,
		sampleLayout: batchLayout{rows: samples, cols: features},
		squareLayout: batchLayout{rows: features, cols: features},
		aMatrix:      make([]float32, count*samples*features),
		covariance:   make([]float32, count*features*features),
		eigenvalues:  make([]float32, count*features),
		eigenvectors: make([]float32, count*features*features),
		iterations:   make([]int, count),
		converged:    make([]bool, count),
	}
	for i, m := range matrices {
		copy(p.sampleLayout.slice(p.aMatrix, i), m)
	}
	return p, nil
}

// Samples returns the number of samples (rows) per input matrix.
func (p *PCA) Samples() int { return p.samples }

// Features returns the number of features (columns) per input matrix.
func (p *PCA) Features() int { return p.features }

// MatrixCount returns the number of batch entries.
func (p *PCA) MatrixCount() int { return p.matrixCount }

// ComputeCovarianceMatrix computes the covariance matrix of every batch
// entry. Each entry is independent; re-running overwrites prior output.
//
// The result is the undivided product A^T * A. The accelerated kernel this
// reference validates computes the same undivided product, so no
// samples-1 normalization is applied here.
func (p *PCA) ComputeCovarianceMatrix() {
	for i := 0; i < p.matrixCount; i++ {
		p.computeCovariance(i)
		if p.opts.Debug {
			dumpMatrix(p.opts.DebugWriter,
				fmt.Sprintf("covariance matrix #%d", i),
				p.squareLayout.slice(p.covariance, i),
				p.features, p.features)
		}
	}
	p.covComputed = true
}

// ComputeEigenValuesAndVectors runs the shifted-QR eigensolver on every
// stored covariance matrix, filling the eigenvalue, eigenvector, iteration
// and convergence containers. It requires ComputeCovarianceMatrix to have run
// first and is idempotent on re-run.
func (p *PCA) ComputeEigenValuesAndVectors() error {
	if !p.covComputed {
		return NewExecutionError("ComputeEigenValuesAndVectors",
			"covariance matrices have not been computed")
	}

	observer := p.opts.Observer
	if p.opts.Debug {
		tracer := &DebugTracer{W: p.opts.DebugWriter}
		if observer == nil {
			observer = tracer
		} else {
			observer = multiObserver{observer, tracer}
		}
	}

	// One solver per batch run: the scratch buffers are reused across
	// entries but never shared, and entries are solved strictly in order.
	solver := newEigenSolver(p.features, p.opts.BenchmarkMode, observer)
	for i := 0; i < p.matrixCount; i++ {
		iters, ok := solver.solve(i,
			p.squareLayout.slice(p.covariance, i),
			p.eigenvalues[i*p.features:(i+1)*p.features],
			p.squareLayout.slice(p.eigenvectors, i))
		p.iterations[i] = iters
		p.converged[i] = ok
		if p.opts.Debug {
			dumpMatrix(p.opts.DebugWriter,
				fmt.Sprintf("eigenvectors for matrix #%d", i),
				p.squareLayout.slice(p.eigenvectors, i),
				p.features, p.features)
		}
	}
	return nil
}

// CovarianceAt returns the covariance matrix of batch entry i as a
// features x features row-major view. The caller must not modify it.
func (p *PCA) CovarianceAt(i int) []float32 {
	return p.squareLayout.slice(p.covariance, i)
}

// EigenvaluesAt returns the eigenvalues of batch entry i in iteration order
// (not sorted by magnitude). The caller must not modify the returned slice.
func (p *PCA) EigenvaluesAt(i int) []float32 {
	if i < 0 || i >= p.matrixCount {
		panic(fmt.Sprintf("pcaref: matrix index %d out of range for batch of %d",
			i, p.matrixCount))
	}
	return p.eigenvalues[i*p.features : (i+1)*p.features : (i+1)*p.features]
}

// EigenvectorsAt returns the eigenvector matrix of batch entry i as a
// features x features row-major view; column j approximates the eigenvector
// of EigenvaluesAt(i)[j]. The caller must not modify it.
func (p *PCA) EigenvectorsAt(i int) []float32 {
	return p.squareLayout.slice(p.eigenvectors, i)
}

// IterationsAt returns the number of QR iterations the solve of entry i
// consumed.
func (p *PCA) IterationsAt(i int) int {
	if i < 0 || i >= p.matrixCount {
		panic(fmt.Sprintf("pcaref: matrix index %d out of range for batch of %d",
			i, p.matrixCount))
	}
	return p.iterations[i]
}

// ConvergedAt reports whether the solve of entry i converged, as opposed to
// stopping at the iteration bound with a partial result.
func (p *PCA) ConvergedAt(i int) bool {
	if i < 0 || i >= p.matrixCount {
		panic(fmt.Sprintf("pcaref: matrix index %d out of range for batch of %d",
			i, p.matrixCount))
	}
	return p.converged[i]
}
