package pcaref

import "math"

// eigenSolver extracts eigenvalues and eigenvectors of a symmetric matrix by
// shifted QR iteration. Each iteration factors the shifted working matrix
// with modified Gram-Schmidt, recomposes it in reverse order (RQ), and folds
// the orthogonal factor into the eigenvector accumulator. The shift is
// derived from the trailing 2x2 block above the deflation boundary and damped
// by ShiftDamping.
//
// The scratch buffers are owned by one solver and reused across sequential
// solves; a solver must not be shared between goroutines. Batch parallelism,
// if wanted, is a caller concern: give each worker its own solver.
type eigenSolver struct {
	features int
	q        []float64 // orthogonal factor of the current iteration
	r        []float64 // upper-triangular factor of the current iteration
	rq       []float64 // iterated working matrix
	scratch  []float64 // product staging for V*Q and R*Q
	maxIters int       // 0 means unbounded (benchmark mode)
	observer SolveObserver
}

func newEigenSolver(features int, benchmarkMode bool, observer SolveObserver) *eigenSolver {
	s := &eigenSolver{
		features: features,
		q:        make([]float64, features*features),
		r:        make([]float64, features*features),
		rq:       make([]float64, features*features),
		scratch:  make([]float64, features*features),
		observer: observer,
	}
	if !benchmarkMode {
		s.maxIters = features * features * IterationLimitFactor
	}
	return s
}

// solve runs shifted QR iteration on the symmetric matrix cov (row-major,
// features x features), writing the eigenvalues (diagonal of the converged
// working matrix, unsorted) and the eigenvector accumulator. It returns the
// iteration count consumed and whether the iteration converged; a
// non-convergent solve, whether it hit the iteration bound or diverged to
// NaN, still carries the current diagonal and accumulator as a partial
// result.
func (s *eigenSolver) solve(matrixIndex int, cov, eigenvalues, eigenvectors []float32) (int, bool) {
	n := s.features
	q, r, rq := s.q, s.r, s.rq

	// Working copy of the covariance matrix; the input stays untouched.
	for k := 0; k < n*n; k++ {
		rq[k] = float64(cov[k])
	}

	// The accumulator starts as the identity and picks up every Q.
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if row == col {
				eigenvectors[row*n+col] = 1
			} else {
				eigenvectors[row*n+col] = 0
			}
		}
	}

	iterations := 0
	converged := false
	for !converged {
		shift := s.computeShift(iterations)

		// Subtract the shift from the diagonal before factorization.
		for row := 0; row < n; row++ {
			rq[row*n+row] -= shift
		}

		// QR decomposition via modified Gram-Schmidt on columns. Column i
		// is normalized into Q with its norm on R's diagonal, then its
		// component is projected out of every later column in place.
		for k := range q {
			q[k] = 0
			r[k] = 0
		}
		for i := 0; i < n; i++ {
			var norm float64
			for k := 0; k < n; k++ {
				norm += rq[k*n+i] * rq[k*n+i]
			}
			rii := math.Sqrt(norm)
			r[i*n+i] = rii
			for k := 0; k < n; k++ {
				q[k*n+i] = rq[k*n+i] / rii
			}
			for j := i + 1; j < n; j++ {
				var dp float64
				for k := 0; k < n; k++ {
					dp += q[k*n+i] * rq[k*n+j]
				}
				r[i*n+j] = dp
				for k := 0; k < n; k++ {
					rq[k*n+j] -= dp * q[k*n+i]
				}
			}
		}

		// Fold Q into the accumulator: V <- V * Q. The product is
		// accumulated in float64 and rounded to storage precision once per
		// iteration, matching the reference kernel.
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				var prod float64
				for k := 0; k < n; k++ {
					prod += float64(eigenvectors[row*n+k]) * q[k*n+col]
				}
				s.scratch[row*n+col] = prod
			}
		}
		for k := 0; k < n*n; k++ {
			eigenvectors[k] = float32(s.scratch[k])
		}

		// Recompose the iterated matrix in reverse order: RQ <- R * Q.
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				var prod float64
				for k := 0; k < n; k++ {
					prod += r[row*n+k] * q[k*n+col]
				}
				s.scratch[row*n+col] = prod
			}
		}
		copy(rq, s.scratch)

		// Undo the shift on the diagonal.
		for row := 0; row < n; row++ {
			rq[row*n+row] += shift
		}

		// Converged once every strictly-sub-diagonal entry is negligible.
		// The negated comparison keeps NaN entries counting as
		// not-converged.
		residual := 0.0
		converged = true
		for row := 1; row < n; row++ {
			for col := 0; col < row; col++ {
				v := math.Abs(rq[row*n+col])
				if v > residual {
					residual = v
				}
				if !(v < ZeroThreshold) {
					converged = false
				}
			}
		}

		// A NaN anywhere in the working matrix means the factorization
		// divided by a zero column norm. NaN never washes out of the
		// iteration, so further iterations cannot recover; stop now even
		// when the iteration bound is disabled.
		diverged := false
		for k := 0; k < n*n; k++ {
			if math.IsNaN(rq[k]) {
				diverged = true
				converged = false
				residual = math.NaN()
				break
			}
		}

		iterations++
		if s.observer != nil {
			s.observer.IterationDone(matrixIndex, iterations, residual)
		}
		if diverged {
			break
		}
		if !converged && s.maxIters > 0 && iterations >= s.maxIters {
			// Recoverable non-convergence: stop and report the current
			// diagonal and accumulator as the result.
			break
		}
	}

	for k := 0; k < n; k++ {
		eigenvalues[k] = float32(rq[k*n+k])
	}
	if s.observer != nil {
		s.observer.SolveDone(matrixIndex, iterations, converged)
	}
	return iterations, converged
}

// computeShift locates the deflation boundary and derives the Wilkinson-style
// shift from the trailing 2x2 block above it.
//
// Scanning from the last row upward, a row whose sub-diagonal entries are all
// below ZeroThreshold is already deflated; the first row that is not marks
// the submatrix still being worked on. When the whole matrix is deflated
// there is nothing left to accelerate and no shift is applied.
func (s *eigenSolver) computeShift(iteration int) float64 {
	n := s.features
	rq := s.rq

	shiftRow := n - 2
	for row := n - 1; row >= 1; row-- {
		rowIsZero := true
		for col := 0; col < row; col++ {
			if !(math.Abs(rq[row*n+col]) < ZeroThreshold) {
				rowIsZero = false
				break
			}
		}
		if !rowIsZero {
			break
		}
		shiftRow--
	}
	if shiftRow < 0 {
		return 0
	}

	// Trailing 2x2 block [a b; b c]: shift toward the eigenvalue of the
	// block closest to c.
	a := rq[shiftRow*n+shiftRow]
	b := rq[(shiftRow+1)*n+shiftRow]
	c := rq[(shiftRow+1)*n+(shiftRow+1)]

	d := (a - c) / 2
	bSquared := b * b
	denom := math.Abs(d) + math.Sqrt(d*d+bSquared)

	var shift float64
	switch {
	case denom == 0:
		// b and d both vanish: the block is already diagonal with equal
		// entries, so c itself is the eigenvalue.
		shift = c
	case d < 0:
		shift = c + bSquared/denom
	default:
		shift = c - bSquared/denom
	}

	// No shift on the very first iteration: before any deflation structure
	// exists a large correction does more harm than good. Afterwards, damp
	// it to avoid massive cancellation in the factorization.
	if iteration == 0 {
		return 0
	}
	return shift * ShiftDamping
}
