// Package corpus loads and vectorises document collections for projection.
// Documents arrive from local CSV/JSON files, the Hugging Face Dataset Viewer
// API, or a Qdrant collection, and leave as a dense feature matrix ready for
// decomposition and embedding.
package corpus

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Document is a single corpus entry. Label is optional and drives the
// coloring of the projection; Vector is optional and, when present on every
// document, skips the vectorisation step entirely.
type Document struct {
	Text   string
	Label  string
	Vector []float32
}

// Texts returns the text of every document in order.
func Texts(documents []Document) []string {
	texts := make([]string, len(documents))
	for documentIndex, document := range documents {
		texts[documentIndex] = document.Text
	}
	return texts
}

// Labels returns the label of every document in order, or nil when no
// document carries one.
func Labels(documents []Document) []string {
	labeled := false
	labels := make([]string, len(documents))
	for documentIndex, document := range documents {
		labels[documentIndex] = document.Label
		if document.Label != "" {
			labeled = true
		}
	}
	if !labeled {
		return nil
	}
	return labels
}

// HasVectors reports whether every document carries a precomputed vector.
func HasVectors(documents []Document) bool {
	if len(documents) == 0 {
		return false
	}
	for _, document := range documents {
		if len(document.Vector) == 0 {
			return false
		}
	}
	return true
}

// Matrix assembles the precomputed document vectors into a dense row-per-
// document matrix. All vectors must share the same dimensionality.
func Matrix(documents []Document) (*mat.Dense, error) {
	if len(documents) == 0 {
		return nil, fmt.Errorf("no documents to assemble")
	}

	width := len(documents[0].Vector)
	if width == 0 {
		return nil, fmt.Errorf("document 0 has no vector")
	}

	matrix := mat.NewDense(len(documents), width, nil)
	for documentIndex, document := range documents {
		if len(document.Vector) != width {
			return nil, fmt.Errorf("document %d has vector length %d, expected %d",
				documentIndex, len(document.Vector), width)
		}
		for columnIndex, value := range document.Vector {
			matrix.Set(documentIndex, columnIndex, float64(value))
		}
	}

	return matrix, nil
}
