// Package pcaref is a software-only golden reference for batched principal
// component analysis: per-matrix covariance computation followed by an
// iterative shifted-QR eigendecomposition. It exists to validate accelerated
// (hardware-offloaded) implementations of the same computation, so the
// numerical kernels are deliberately scalar and deterministic.
//
// The package also carries the verification side of that workflow: tolerance
// and ULP comparison helpers, order- and sign-insensitive eigenpair matching,
// residual metrics, and benchmark instrumentation for characterizing
// worst-case iteration behavior.
//
// Example usage:
//
//	batch := pcaref.GenerateBatch(64, 8, 4, 12345)
//	p, err := pcaref.New(64, 8, batch, pcaref.Options{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	p.ComputeCovarianceMatrix()
//	if err := p.ComputeEigenValuesAndVectors(); err != nil {
//		log.Fatal(err)
//	}
//	for i := 0; i < 4; i++ {
//		fmt.Println(p.EigenvaluesAt(i), p.IterationsAt(i))
//	}
package pcaref
