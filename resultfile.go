package pcaref

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ResultSet is the on-disk exchange format between the golden reference and
// an accelerated implementation: per-entry covariance, eigenvalues,
// eigenvectors and iteration counts, plus enough metadata to reject a
// mismatched comparison outright.
type ResultSet struct {
	Samples  int    `json:"samples"`
	Features int    `json:"features"`
	Matrices int    `json:"matrices"`
	Seed     uint64 `json:"seed,omitempty"`

	Covariance   [][]float32 `json:"covariance"`
	Eigenvalues  [][]float32 `json:"eigenvalues"`
	Eigenvectors [][]float32 `json:"eigenvectors"`
	Iterations   []int       `json:"iterations"`
	Converged    []bool      `json:"converged"`

	Host      HostInfo  `json:"host"`
	Timestamp time.Time `json:"timestamp"`
}

// ResultsFrom snapshots all outputs of a computed batch into a ResultSet.
func ResultsFrom(p *PCA) *ResultSet {
	rs := &ResultSet{
		Samples:   p.Samples(),
		Features:  p.Features(),
		Matrices:  p.MatrixCount(),
		Host:      CollectHostInfo(),
		Timestamp: time.Now(),
	}
	for i := 0; i < p.MatrixCount(); i++ {
		rs.Covariance = append(rs.Covariance, append([]float32(nil), p.CovarianceAt(i)...))
		rs.Eigenvalues = append(rs.Eigenvalues, append([]float32(nil), p.EigenvaluesAt(i)...))
		rs.Eigenvectors = append(rs.Eigenvectors, append([]float32(nil), p.EigenvectorsAt(i)...))
		rs.Iterations = append(rs.Iterations, p.IterationsAt(i))
		rs.Converged = append(rs.Converged, p.ConvergedAt(i))
	}
	return rs
}

// Save writes the result set as indented JSON.
func (rs *ResultSet) Save(path string) error {
	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadResults reads a result set written by Save or by the accelerated
// harness.
func LoadResults(path string) (*ResultSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rs := &ResultSet{}
	if err := json.Unmarshal(data, rs); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

// Validate checks the internal consistency of a result set, rejecting files
// whose per-entry arrays do not match the declared batch shape.
func (rs *ResultSet) Validate() error {
	f := rs.Features
	if rs.Samples < 1 || f < 1 || rs.Matrices < 1 {
		return NewInvalidArgError("Validate", "non-positive batch dimensions")
	}
	if len(rs.Covariance) != rs.Matrices || len(rs.Eigenvalues) != rs.Matrices ||
		len(rs.Eigenvectors) != rs.Matrices || len(rs.Iterations) != rs.Matrices {
		return NewInvalidArgError("Validate", "per-entry arrays do not match matrix count")
	}
	for i := 0; i < rs.Matrices; i++ {
		if len(rs.Covariance[i]) != f*f || len(rs.Eigenvectors[i]) != f*f || len(rs.Eigenvalues[i]) != f {
			return NewInvalidArgError("Validate", fmt.Sprintf("entry %d has inconsistent dimensions", i))
		}
	}
	return nil
}

// CompatibleWith reports whether two result sets describe the same batch
// shape and can be compared entry by entry.
func (rs *ResultSet) CompatibleWith(other *ResultSet) error {
	if rs.Samples != other.Samples || rs.Features != other.Features || rs.Matrices != other.Matrices {
		return NewInvalidArgError("CompatibleWith", fmt.Sprintf(
			"shape mismatch: %dx%dx%d vs %dx%dx%d",
			rs.Matrices, rs.Samples, rs.Features,
			other.Matrices, other.Samples, other.Features))
	}
	return nil
}
