package embedding

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix embeds every text through the provider and assembles the vectors
// into a dense row-per-text matrix. All embeddings must share the same
// dimensionality; the first non-empty embedding fixes it.
func Matrix(embedder Embedder, texts []string) (*mat.Dense, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts to embed")
	}

	vectors := make([][]float32, len(texts))
	width := 0
	for textIndex, text := range texts {
		vector, err := embedder.Embed(text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", textIndex, err)
		}
		if len(vector) == 0 {
			return nil, fmt.Errorf("embed text %d: empty embedding", textIndex)
		}
		if width == 0 {
			width = len(vector)
		} else if len(vector) != width {
			return nil, fmt.Errorf("embed text %d: got %d dimensions, expected %d",
				textIndex, len(vector), width)
		}
		vectors[textIndex] = vector
	}

	matrix := mat.NewDense(len(texts), width, nil)
	for rowIndex, vector := range vectors {
		for columnIndex, value := range vector {
			matrix.Set(rowIndex, columnIndex, float64(value))
		}
	}

	return matrix, nil
}
