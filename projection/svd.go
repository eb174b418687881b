package projection

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// TruncatedSVD projects the input onto its top K right singular vectors.
// Unlike PCA it does not center the data first, which keeps sparse input
// sparse and makes it the preferred pre-decomposition for term-frequency
// matrices.
type TruncatedSVD struct {
	// K is the number of dimensions to truncate to. The effective number of
	// components is capped by the rank bound min(rows, cols) of the input.
	K int

	// Components holds the projection matrix (cols x k) learned by the last
	// FitTransform call.
	Components *mat.Dense
}

// NewTruncatedSVD creates a truncated SVD transformer targeting k dimensions.
func NewTruncatedSVD(k int) *TruncatedSVD {
	return &TruncatedSVD{K: k}
}

// FitTransform factorizes m as U*S*V^T and returns m projected onto the first
// K columns of V, a (rows x K) matrix.
func (t *TruncatedSVD) FitTransform(m mat.Matrix) (*mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThinV); !ok {
		return nil, errors.New("truncated svd: factorization failed")
	}

	var rightSingularVectors mat.Dense
	svd.VTo(&rightSingularVectors)

	rows, cols := m.Dims()
	k := t.K
	if bound := min(rows, cols); k > bound {
		k = bound
	}

	t.Components = rightSingularVectors.Slice(0, cols, 0, k).(*mat.Dense)

	var projected mat.Dense
	projected.Mul(m, t.Components)
	return &projected, nil
}
