package pcaref

import (
	"fmt"
	"io"
)

// SolveObserver receives intermediate state from the eigensolver. The
// numerical core performs no I/O itself; diagnostic output, progress
// reporting, and convergence studies all hang off this interface.
//
// Callbacks are invoked synchronously from the solve loop, so implementations
// should be cheap. Batch entries are reported in order; within an entry,
// iterations are reported in order.
type SolveObserver interface {
	// IterationDone is called after each QR iteration with the largest
	// sub-diagonal magnitude of the iterated matrix. A residual below
	// ZeroThreshold means the entry has converged.
	IterationDone(matrixIndex, iteration int, residual float64)

	// SolveDone is called once per batch entry with the final iteration
	// count and whether the solve converged or hit the iteration bound.
	SolveDone(matrixIndex, iterations int, converged bool)
}

// DebugTracer is a SolveObserver that writes human-readable trace lines to W.
type DebugTracer struct {
	W io.Writer
}

func (t *DebugTracer) IterationDone(matrixIndex, iteration int, residual float64) {
	fmt.Fprintf(t.W, "matrix #%d iteration %d: residual %e\n", matrixIndex, iteration, residual)
}

func (t *DebugTracer) SolveDone(matrixIndex, iterations int, converged bool) {
	if converged {
		fmt.Fprintf(t.W, "matrix #%d: QR iteration converged after %d iterations\n",
			matrixIndex, iterations)
		return
	}
	fmt.Fprintf(t.W, "matrix #%d: number of iterations too high, stopped after %d\n",
		matrixIndex, iterations)
}

// multiObserver fans callbacks out to several observers.
type multiObserver []SolveObserver

func (m multiObserver) IterationDone(matrixIndex, iteration int, residual float64) {
	for _, o := range m {
		o.IterationDone(matrixIndex, iteration, residual)
	}
}

func (m multiObserver) SolveDone(matrixIndex, iterations int, converged bool) {
	for _, o := range m {
		o.SolveDone(matrixIndex, iterations, converged)
	}
}

// dumpMatrix writes a labeled rows x cols matrix to w, one row per line.
func dumpMatrix(w io.Writer, label string, data []float32, rows, cols int) {
	fmt.Fprintf(w, "%s\n", label)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			fmt.Fprintf(w, "%g ", data[r*cols+c])
		}
		fmt.Fprintln(w)
	}
}
