package pcaref

import (
	"fmt"
	"math"
)

// NumericalParity accumulates error statistics over a stream of golden
// versus accelerated comparisons, one batch entry at a time.
type NumericalParity struct {
	MaxAbsError float32
	MaxRelError float32
	NumErrors   int
	Total       int
}

// Compare folds one expected/actual pair into the statistics.
func (np *NumericalParity) Compare(expected, actual float32, tol ToleranceConfig) {
	np.Total++
	absErr := float32(math.Abs(float64(expected - actual)))
	if absErr > np.MaxAbsError {
		np.MaxAbsError = absErr
	}
	if expected != 0 {
		relErr := absErr / float32(math.Abs(float64(expected)))
		if relErr > np.MaxRelError {
			np.MaxRelError = relErr
		}
	}
	if !NearEqual(expected, actual, tol) {
		np.NumErrors++
	}
}

// CompareSlices folds an element-wise slice comparison into the statistics.
func (np *NumericalParity) CompareSlices(expected, actual []float32, tol ToleranceConfig) {
	n := len(expected)
	if len(actual) < n {
		n = len(actual)
	}
	for i := 0; i < n; i++ {
		np.Compare(expected[i], actual[i], tol)
	}
}

// EigenParity is the result of matching one entry's eigenpairs against a
// reference. The solver does not sort eigenvalues and does not fix
// eigenvector signs, so a direct positional comparison between two
// implementations is meaningless; this matching is order-insensitive for
// eigenvalues and sign-insensitive for eigenvector columns.
type EigenParity struct {
	// Matched is true when every eigenpair found a reference partner
	// within tolerance.
	Matched bool

	// Permutation maps each candidate eigenpair index to the reference
	// index it was matched with.
	Permutation []int

	// MaxValueError is the largest absolute eigenvalue discrepancy across
	// matched pairs.
	MaxValueError float32

	// MinAlignment is the smallest |cosine| between matched eigenvector
	// columns; 1 means parallel up to sign.
	MinAlignment float64
}

// CompareEigenpairs matches the candidate eigendecomposition of one batch
// entry against a reference one. Both eigenvector matrices are row-major
// features x features with eigenvectors in columns, paired positionally with
// their value slices. Each candidate eigenvalue is greedily matched to the
// closest unclaimed reference eigenvalue; the match must agree in value
// within tol and the matched columns must be parallel up to sign within
// ToleranceOrthogonality.
func CompareEigenpairs(refValues, refVectors, values, vectors []float32, features int, tol ToleranceConfig) EigenParity {
	parity := EigenParity{
		Matched:      true,
		Permutation:  make([]int, features),
		MinAlignment: 1,
	}

	claimed := make([]bool, features)
	for j := 0; j < features; j++ {
		best := -1
		bestDiff := math.MaxFloat64
		for i := 0; i < features; i++ {
			if claimed[i] {
				continue
			}
			diff := math.Abs(float64(values[j] - refValues[i]))
			if diff < bestDiff {
				bestDiff = diff
				best = i
			}
		}
		if best == -1 {
			// NaN eigenvalues compare false everywhere; claim the first
			// free slot so the permutation stays total.
			for i := 0; i < features; i++ {
				if !claimed[i] {
					best = i
					break
				}
			}
			parity.Matched = false
		}
		claimed[best] = true
		parity.Permutation[j] = best

		if float32(bestDiff) > parity.MaxValueError {
			parity.MaxValueError = float32(bestDiff)
		}
		if !NearEqual(values[j], refValues[best], tol) {
			parity.Matched = false
		}

		align := columnAlignment(vectors, j, refVectors, best, features)
		if align < parity.MinAlignment {
			parity.MinAlignment = align
		}
		if align < 1-ToleranceOrthogonality {
			parity.Matched = false
		}
	}
	return parity
}

// columnAlignment returns |cos| of the angle between column ca of a and
// column cb of b, both row-major n x n.
func columnAlignment(a []float32, ca int, b []float32, cb int, n int) float64 {
	var dot, na, nb float64
	for k := 0; k < n; k++ {
		x := float64(a[k*n+ca])
		y := float64(b[k*n+cb])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return math.Abs(dot) / math.Sqrt(na*nb)
}

// String formats the eigen parity result for display.
func (e EigenParity) String() string {
	status := "PASS"
	if !e.Matched {
		status = "FAIL"
	}
	return fmt.Sprintf("%s: max eigenvalue error %e, min column alignment %.9f",
		status, e.MaxValueError, e.MinAlignment)
}

// OffDiagonalNorm returns the Frobenius norm of the strictly off-diagonal
// part of a row-major n x n matrix. For a converged working matrix this is
// the residual left below the convergence threshold; for a covariance matrix
// it measures how far the features are from uncorrelated.
func OffDiagonalNorm(m []float32, n int) float64 {
	var sum float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v := float64(m[i*n+j])
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}

// OrthogonalityError returns the largest absolute deviation of V^T * V from
// the identity, where vectors is a row-major n x n matrix. A value near zero
// means the columns are unit-norm and mutually orthogonal.
func OrthogonalityError(vectors []float32, n int) float64 {
	worst := 0.0
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var dot float64
			for k := 0; k < n; k++ {
				dot += float64(vectors[k*n+i]) * float64(vectors[k*n+j])
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			if dev := math.Abs(dot - want); dev > worst {
				worst = dev
			}
		}
	}
	return worst
}

// ReconstructionError returns the largest absolute deviation of
// V^T * C * V from diag(values): off-diagonal entries are compared against
// zero and diagonal entries against the reported eigenvalues. All matrices
// are row-major n x n.
func ReconstructionError(cov, vectors, values []float32, n int) float64 {
	// cv = C * V
	cv := make([]float64, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += float64(cov[row*n+k]) * float64(vectors[k*n+col])
			}
			cv[row*n+col] = sum
		}
	}

	worst := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			// entry (i,j) of V^T * (C*V)
			var sum float64
			for k := 0; k < n; k++ {
				sum += float64(vectors[k*n+i]) * cv[k*n+j]
			}
			want := 0.0
			if i == j {
				want = float64(values[i])
			}
			if dev := math.Abs(sum - want); dev > worst {
				worst = dev
			}
		}
	}
	return worst
}
