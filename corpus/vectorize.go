package corpus

import (
	"fmt"

	"github.com/james-bowman/nlp"
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Vectorise converts the document texts into a dense tf-idf feature matrix
// with one row per document and one column per vocabulary term. Any stop
// words given are dropped from the vocabulary before counting.
func Vectorise(documents []Document, stopWords ...string) (*mat.Dense, error) {
	if len(documents) == 0 {
		return nil, fmt.Errorf("no documents to vectorise")
	}

	vectoriser := nlp.NewCountVectoriser(stopWords...)
	transformer := nlp.NewTfidfTransformer()
	pipeline := nlp.NewPipeline(vectoriser, transformer)

	// The pipeline emits a term-by-document matrix; projection wants
	// documents on rows, so transpose on the way out.
	termDocument, err := pipeline.FitTransform(Texts(documents)...)
	if err != nil {
		return nil, fmt.Errorf("tf-idf pipeline: %w", err)
	}

	var termsByDocuments *mat.Dense
	if converter, ok := termDocument.(sparse.TypeConverter); ok {
		termsByDocuments = converter.ToDense()
	} else {
		termsByDocuments = mat.DenseCopyOf(termDocument)
	}

	return mat.DenseCopyOf(termsByDocuments.T()), nil
}
