package pcaref

import "fmt"

// batchLayout centralizes the flat row-major index arithmetic for a batch of
// equally sized matrices stored back to back in one buffer. All offset
// computation for a given entity goes through its layout; kernels never
// hand-compute batch offsets.
type batchLayout struct {
	rows int
	cols int
}

// stride returns the number of elements one matrix occupies.
func (l batchLayout) stride() int {
	return l.rows * l.cols
}

// at returns the flat index of element (row, col) of the given matrix.
func (l batchLayout) at(matrix, row, col int) int {
	if row < 0 || row >= l.rows || col < 0 || col >= l.cols {
		panic(fmt.Sprintf("pcaref: index (%d,%d) out of range for %dx%d matrix",
			row, col, l.rows, l.cols))
	}
	return matrix*l.stride() + row*l.cols + col
}

// slice returns the sub-slice of buf holding the given matrix.
func (l batchLayout) slice(buf []float32, matrix int) []float32 {
	s := l.stride()
	if matrix < 0 || (matrix+1)*s > len(buf) {
		panic(fmt.Sprintf("pcaref: matrix index %d out of range for batch of %d",
			matrix, len(buf)/s))
	}
	return buf[matrix*s : (matrix+1)*s : (matrix+1)*s]
}
