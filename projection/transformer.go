// Package projection provides the dimensionality-reduction pipeline used to
// turn high-dimensional document vectors into 2D coordinates for plotting.
//
// The heavy numerical work is delegated to external libraries: linear
// decompositions (truncated SVD, PCA) run on gonum's SVD factorization, and
// the nonlinear 2D embedding runs on go-tsne. This package only composes
// those transforms into a sequential fit-transform chain.
package projection

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Transformer is the narrow capability shared by every pipeline stage:
// fit the stage to a matrix and return the transformed matrix in one step.
// Implementations are stateful and not safe for concurrent use.
type Transformer interface {
	FitTransform(m mat.Matrix) (*mat.Dense, error)
}

// Method identifies the optional linear decomposition applied ahead of the
// t-SNE embedding. The zero value is MethodSVD, the recommended default for
// the sparse matrices produced by text vectorization.
type Method int

const (
	// MethodSVD selects truncated singular value decomposition,
	// suited to sparse input.
	MethodSVD Method = iota

	// MethodPCA selects principal component analysis, suited to dense input.
	MethodPCA

	// MethodNone skips the pre-decomposition entirely.
	MethodNone
)

// String returns the lowercase name of the method.
func (m Method) String() string {
	switch m {
	case MethodSVD:
		return "svd"
	case MethodPCA:
		return "pca"
	case MethodNone:
		return "none"
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod resolves a decomposition name into its Method. Recognized names
// are "svd", "pca", "none", and the empty string (treated as "none"). Any
// other name fails with an InvalidDecompositionError.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(name) {
	case "svd":
		return MethodSVD, nil
	case "pca":
		return MethodPCA, nil
	case "", "none":
		return MethodNone, nil
	}
	return MethodNone, &InvalidDecompositionError{Value: name}
}

// InvalidDecompositionError reports a decomposition selector outside the
// allowed set. It is the only validation error raised by this module; all
// other failures propagate from the numerical libraries unmodified.
type InvalidDecompositionError struct {
	Value string
}

func (e *InvalidDecompositionError) Error() string {
	return fmt.Sprintf("%q is not a valid decomposition, use svd, pca, or none", e.Value)
}

// Pipeline chains transformers sequentially: the output matrix of each stage
// becomes the input of the next.
type Pipeline struct {
	stages []Transformer
}

// NewPipeline creates a pipeline over the given stages in order.
func NewPipeline(stages ...Transformer) *Pipeline {
	return &Pipeline{stages: stages}
}

// Stages returns the ordered stages of the pipeline.
func (p *Pipeline) Stages() []Transformer {
	return p.stages
}

// FitTransform runs the input through every stage in order. An error from any
// stage aborts the chain and is returned wrapped with the stage position.
func (p *Pipeline) FitTransform(m mat.Matrix) (*mat.Dense, error) {
	var out *mat.Dense
	for stageIndex, stage := range p.stages {
		transformed, err := stage.FitTransform(m)
		if err != nil {
			return nil, fmt.Errorf("pipeline stage %d: %w", stageIndex, err)
		}
		out = transformed
		m = transformed
	}
	return out, nil
}

// DefaultComponents is the default target dimensionality of the
// pre-decomposition stage. More components make the embedding slower.
const DefaultComponents = 50

// NewProjection builds the standard projection pipeline: an optional linear
// decomposition down to the requested number of components, followed by a
// t-SNE embedding to exactly 2 output dimensions. The tsneConfig is forwarded
// verbatim to the embedding stage.
//
// An unrecognized method fails with an InvalidDecompositionError and no
// pipeline is built.
func NewProjection(method Method, components int, tsneConfig TSNEConfig) (*Pipeline, error) {
	if components <= 0 {
		components = DefaultComponents
	}

	var stages []Transformer
	switch method {
	case MethodSVD:
		stages = append(stages, NewTruncatedSVD(components))
	case MethodPCA:
		stages = append(stages, NewPCA(components))
	case MethodNone:
	default:
		return nil, &InvalidDecompositionError{Value: method.String()}
	}

	stages = append(stages, NewTSNE(tsneConfig))
	return NewPipeline(stages...), nil
}
