// Command pcacompare validates an accelerated PCA implementation against the
// golden reference. It either emits a golden result file for a deterministic
// batch (-emit) or compares two result files entry by entry, matching
// eigenpairs order- and sign-insensitively.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mirrorcompute/pcaref"
)

func main() {
	var (
		goldenFile    = flag.String("golden", "", "Golden result file")
		candidateFile = flag.String("candidate", "", "Accelerated result file to validate")
		tol           = flag.Float64("tol", pcaref.ToleranceEigen, "Eigenvalue tolerance")
		covTol        = flag.Float64("cov-tol", pcaref.ToleranceCovariance, "Covariance tolerance")

		emit     = flag.Bool("emit", false, "Emit a golden result file instead of comparing")
		out      = flag.String("out", "golden.json", "Output path for -emit")
		samples  = flag.Int("samples", 64, "Samples per matrix for -emit")
		features = flag.Int("features", 8, "Features per matrix for -emit")
		matrices = flag.Int("matrices", 8, "Batch size for -emit")
		seed     = flag.Uint64("seed", 12345, "Input generator seed for -emit")
	)
	flag.Parse()

	if *emit {
		if err := emitGolden(*out, *samples, *features, *matrices, *seed); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *goldenFile == "" || *candidateFile == "" {
		log.Fatal("both -golden and -candidate are required (or use -emit)")
	}

	golden, err := pcaref.LoadResults(*goldenFile)
	if err != nil {
		log.Fatalf("failed to load golden results: %v", err)
	}
	candidate, err := pcaref.LoadResults(*candidateFile)
	if err != nil {
		log.Fatalf("failed to load candidate results: %v", err)
	}
	if err := golden.CompatibleWith(candidate); err != nil {
		log.Fatal(err)
	}

	eigenTol := pcaref.ToleranceConfig{AbsTol: float32(*tol), RelTol: float32(*tol), ULPTol: pcaref.MaxULPDiff}
	covarianceTol := pcaref.ToleranceConfig{AbsTol: float32(*covTol), RelTol: float32(*covTol), ULPTol: 4 * pcaref.MaxULPDiff}

	failures := compare(golden, candidate, eigenTol, covarianceTol)
	if failures > 0 {
		fmt.Printf("\n%d/%d entries FAILED\n", failures, golden.Matrices)
		os.Exit(1)
	}
	fmt.Printf("\nall %d entries PASS\n", golden.Matrices)
}

func emitGolden(path string, samples, features, matrices int, seed uint64) error {
	batch := pcaref.GenerateBatch(samples, features, matrices, seed)
	p, err := pcaref.New(samples, features, batch, pcaref.Options{})
	if err != nil {
		return err
	}
	p.ComputeCovarianceMatrix()
	if err := p.ComputeEigenValuesAndVectors(); err != nil {
		return err
	}

	rs := pcaref.ResultsFrom(p)
	rs.Seed = seed
	if err := rs.Save(path); err != nil {
		return err
	}
	fmt.Printf("wrote golden results for %d matrices (%dx%d, seed %d) to %s\n",
		matrices, samples, features, seed, path)
	return nil
}

func compare(golden, candidate *pcaref.ResultSet, eigenTol, covTol pcaref.ToleranceConfig) int {
	fmt.Printf("=== PCA parity: %s vs %s ===\n", golden.Host, candidate.Host)
	fmt.Printf("%-8s %-6s %12s %14s %14s %10s\n",
		"entry", "status", "cov errors", "max λ error", "min align", "iters")
	fmt.Println(strings.Repeat("-", 70))

	failures := 0
	covParity := pcaref.NumericalParity{}
	for i := 0; i < golden.Matrices; i++ {
		covResult := pcaref.VerifyArray(golden.Covariance[i], candidate.Covariance[i], covTol)
		covParity.CompareSlices(golden.Covariance[i], candidate.Covariance[i], covTol)

		eigen := pcaref.CompareEigenpairs(
			golden.Eigenvalues[i], golden.Eigenvectors[i],
			candidate.Eigenvalues[i], candidate.Eigenvectors[i],
			golden.Features, eigenTol)

		status := "PASS"
		if !covResult.Pass() || !eigen.Matched {
			status = "FAIL"
			failures++
		}
		fmt.Printf("%-8d %-6s %12d %14e %14.9f %5d/%d\n",
			i, status, covResult.NumErrors, eigen.MaxValueError, eigen.MinAlignment,
			golden.Iterations[i], candidate.Iterations[i])
	}

	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("covariance: max abs error %e, max rel error %e over %d values\n",
		covParity.MaxAbsError, covParity.MaxRelError, covParity.Total)
	return failures
}
