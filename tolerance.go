// Package pcaref tolerance-based verification for floating-point comparisons
package pcaref

import (
	"fmt"
	"math"
)

// ToleranceConfig defines tolerance parameters for comparing golden results
// against an accelerated implementation.
type ToleranceConfig struct {
	// AbsTol is the absolute tolerance for values near zero
	AbsTol float32

	// RelTol is the relative tolerance as a fraction of the larger value
	RelTol float32

	// ULPTol is the maximum allowed difference in ULPs (Units in Last Place)
	ULPTol int
}

// EigenTolerance returns the default tolerance for eigenvalue and
// eigenvector comparison.
func EigenTolerance() ToleranceConfig {
	return ToleranceConfig{
		AbsTol: ToleranceEigen,
		RelTol: ToleranceEigen,
		ULPTol: MaxULPDiff,
	}
}

// CovarianceTolerance returns the default tolerance for element-wise
// covariance comparison. Covariance entries accumulate over the sample
// count, so the budget is looser than for eigen results.
func CovarianceTolerance() ToleranceConfig {
	return ToleranceConfig{
		AbsTol: ToleranceCovariance,
		RelTol: ToleranceCovariance,
		ULPTol: 4 * MaxULPDiff,
	}
}

// NearEqual checks if two float32 values are equal within tolerance.
// Matching NaNs and matching infinities compare equal, so a golden
// non-convergence artifact lines up with the same artifact on the
// accelerated side.
func NearEqual(a, b float32, tol ToleranceConfig) bool {
	if math.IsNaN(float64(a)) && math.IsNaN(float64(b)) {
		return true
	}
	if a == b {
		return true // handles ±0 and equal infinities
	}

	diff := math.Abs(float64(a - b))
	if diff <= float64(tol.AbsTol) {
		return true
	}

	larger := math.Max(math.Abs(float64(a)), math.Abs(float64(b)))
	if diff <= larger*float64(tol.RelTol) {
		return true
	}

	return tol.ULPTol > 0 && ULPDiff(a, b) <= tol.ULPTol
}

// ULPDiff computes the difference in ULPs between two float32 values.
// Values of different sign are reported as maximally distant.
func ULPDiff(a, b float32) int {
	if a == b {
		return 0
	}
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		return math.MaxInt32
	}

	aBits := math.Float32bits(a)
	bBits := math.Float32bits(b)
	if (aBits^bBits)&0x80000000 != 0 {
		return math.MaxInt32
	}

	if aBits > bBits {
		return int(aBits - bBits)
	}
	return int(bBits - aBits)
}

// VerificationResult summarizes an element-wise array comparison.
type VerificationResult struct {
	MaxAbsError float32
	MaxRelError float32
	MaxULPError int
	NumErrors   int
	TotalItems  int
	FirstError  int // index of first mismatch, -1 if none
}

// VerifyArray compares two float32 arrays element-wise and returns detailed
// error statistics. Arrays of different length fail wholesale.
func VerifyArray(expected, actual []float32, tol ToleranceConfig) VerificationResult {
	result := VerificationResult{
		TotalItems: len(expected),
		FirstError: -1,
	}
	if len(expected) != len(actual) {
		result.NumErrors = len(expected)
		return result
	}

	for i := range expected {
		if NearEqual(expected[i], actual[i], tol) {
			continue
		}
		result.NumErrors++
		if result.FirstError == -1 {
			result.FirstError = i
		}

		absDiff := float32(math.Abs(float64(expected[i] - actual[i])))
		if absDiff > result.MaxAbsError {
			result.MaxAbsError = absDiff
		}
		if expected[i] != 0 {
			relDiff := absDiff / float32(math.Abs(float64(expected[i])))
			if relDiff > result.MaxRelError {
				result.MaxRelError = relDiff
			}
		}
		if ulp := ULPDiff(expected[i], actual[i]); ulp > result.MaxULPError {
			result.MaxULPError = ulp
		}
	}
	return result
}

// Pass reports whether the comparison found no mismatches.
func (r VerificationResult) Pass() bool {
	return r.NumErrors == 0
}

// String formats the verification result for display.
func (r VerificationResult) String() string {
	if r.NumErrors == 0 {
		return "PASS: all values match within tolerance"
	}
	errorRate := float64(r.NumErrors) / float64(r.TotalItems) * 100
	return fmt.Sprintf("FAIL: %d/%d values differ (%.2f%%)\n"+
		"  max absolute error: %e\n"+
		"  max relative error: %e\n"+
		"  max ULP difference: %d\n"+
		"  first error at index: %d",
		r.NumErrors, r.TotalItems, errorRate,
		r.MaxAbsError, r.MaxRelError, r.MaxULPError,
		r.FirstError)
}
