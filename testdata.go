package pcaref

// GenerateSamples generates deterministic float32 sample data in [-1, 1)
// using a linear congruential generator, so golden runs are reproducible
// across hosts and against the accelerated harness using the same seed.
func GenerateSamples(size int, seed uint64) []float32 {
	data := make([]float32, size)
	rng := seed
	for i := range data {
		rng = rng*6364136223846793005 + 1442695040888963407
		// Top 24 bits give a uniform value in [0, 1) at float32 precision.
		u := float32(rng>>40) / float32(1<<24)
		data[i] = 2*u - 1
	}
	return data
}

// GenerateBatch generates count deterministic sample matrices, each
// samples x features in row-major order, suitable for New. Each matrix gets
// a distinct stream derived from seed.
func GenerateBatch(samples, features, count int, seed uint64) [][]float32 {
	batch := make([][]float32, count)
	for i := range batch {
		batch[i] = GenerateSamples(samples*features, seed+uint64(i)*0x9e3779b97f4a7c15)
	}
	return batch
}

// DiagonalSamples returns a sample matrix whose covariance A^T * A is
// diag(d[0]^2, d[1]^2, ...): one sample row per feature with a single
// non-zero entry.
func DiagonalSamples(d []float32) []float32 {
	n := len(d)
	data := make([]float32, n*n)
	for i, v := range d {
		data[i*n+i] = v
	}
	return data
}

// CoupledPairSamples returns a 3x2 sample matrix whose covariance A^T * A is
// [[2 1], [1 2]], the standard worked example with eigenvalues 3 and 1 and
// eigenvectors (1,1)/sqrt2 and (1,-1)/sqrt2.
func CoupledPairSamples() []float32 {
	return []float32{
		1, 0,
		1, 1,
		0, 1,
	}
}
