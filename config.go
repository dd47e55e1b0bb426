// Package pcaref numerical configuration constants
package pcaref

// QR iteration parameters
const (
	// ZeroThreshold is the magnitude below which a sub-diagonal entry is
	// treated as zero, both for deflation detection and for the final
	// convergence check.
	ZeroThreshold = 1e-8

	// ShiftDamping scales the Wilkinson shift after the first iteration.
	// Using slightly less than the full shift keeps the shifted matrix away
	// from exact singularity during the QR factorization.
	ShiftDamping = 0.99

	// IterationLimitFactor bounds the iteration count at
	// features * features * IterationLimitFactor unless benchmark mode is
	// enabled.
	IterationLimitFactor = 16
)

// Verification tolerances
const (
	// ToleranceEigen is the default tolerance for comparing eigenvalues and
	// eigenvector alignment against an accelerated implementation.
	ToleranceEigen = 1e-6

	// ToleranceOrthogonality bounds the allowed deviation of the eigenvector
	// accumulator from a perfectly orthogonal matrix.
	ToleranceOrthogonality = 1e-6

	// ToleranceCovariance is the default tolerance for element-wise
	// covariance comparison.
	ToleranceCovariance = 1e-5

	// MaxULPDiff is the default ULP budget for float32 comparisons.
	MaxULPDiff = 4
)

// Performance model constants
const (
	// FlopsPerIterationFactor estimates the floating-point cost of one QR
	// iteration as FlopsPerIterationFactor * features^3: the Gram-Schmidt
	// factorization costs about 2n^3 and each of the two trailing matrix
	// products (V*Q and R*Q) another 2n^3.
	FlopsPerIterationFactor = 6
)
