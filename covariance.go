package pcaref

// computeCovariance fills the covariance matrix of batch entry matrixIndex
// with the product A^T * A: element (row, col) is the dot product of sample
// columns row and col. Accumulation is in float64 regardless of the float32
// storage precision to control rounding error; each unordered pair is
// accumulated once and written to both (row, col) and (col, row), so the
// output is exactly symmetric.
func (p *PCA) computeCovariance(matrixIndex int) {
	a := p.sampleLayout.slice(p.aMatrix, matrixIndex)
	c := p.squareLayout.slice(p.covariance, matrixIndex)
	n := p.samples
	f := p.features

	for row := 0; row < f; row++ {
		for col := row; col < f; col++ {
			var dot float64
			for k := 0; k < n; k++ {
				dot += float64(a[k*f+row]) * float64(a[k*f+col])
			}
			v := float32(dot)
			c[row*f+col] = v
			c[col*f+row] = v
		}
	}
}
