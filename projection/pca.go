package projection

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PCA projects the input onto its top K principal components.
//
// The components are computed via singular value decomposition of the
// column-centered data rather than an eigendecomposition of the covariance
// matrix: for centered X the right singular vectors of X are the principal
// directions, and SVD is the numerically stabler route. Centering matters:
// without it the first component tends to point at the data's centroid
// instead of the direction of maximum spread.
type PCA struct {
	// K is the number of principal components to keep, capped by the rank
	// bound min(rows, cols) of the input.
	K int

	// Components holds the principal directions (cols x k) learned by the
	// last FitTransform call.
	Components *mat.Dense
}

// NewPCA creates a PCA transformer targeting k components.
func NewPCA(k int) *PCA {
	return &PCA{K: k}
}

// FitTransform centers the columns of m, factorizes the centered matrix, and
// returns the data projected onto the first K principal components as a
// (rows x K) matrix.
func (p *PCA) FitTransform(m mat.Matrix) (*mat.Dense, error) {
	rows, cols := m.Dims()

	centered := mat.DenseCopyOf(m)
	for columnIndex := 0; columnIndex < cols; columnIndex++ {
		columnValues := mat.Col(nil, columnIndex, centered)
		columnMean := stat.Mean(columnValues, nil)
		for rowIndex := 0; rowIndex < rows; rowIndex++ {
			centered.Set(rowIndex, columnIndex, columnValues[rowIndex]-columnMean)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThinV); !ok {
		return nil, errors.New("pca: factorization failed")
	}

	var rightSingularVectors mat.Dense
	svd.VTo(&rightSingularVectors)

	k := p.K
	if bound := min(rows, cols); k > bound {
		k = bound
	}

	p.Components = rightSingularVectors.Slice(0, cols, 0, k).(*mat.Dense)

	var projected mat.Dense
	projected.Mul(centered, p.Components)
	return &projected, nil
}
