package projection

import (
	"errors"

	"github.com/danaugrs/go-tsne/tsne"
	"gonum.org/v1/gonum/mat"
)

// Default t-SNE hyperparameters, matching the go-tsne defaults.
const (
	DefaultPerplexity   = 300
	DefaultLearningRate = 100
	DefaultMaxIter      = 300
)

// TSNEConfig holds the hyperparameters forwarded verbatim to the t-SNE
// embedding stage. Zero values select the defaults above.
type TSNEConfig struct {
	Perplexity   float64 // Effective number of neighbors per point
	LearningRate float64 // Gradient descent step size
	MaxIter      int     // Number of gradient descent iterations
	Verbose      bool    // Log per-iteration divergence to stdout
}

func (c TSNEConfig) withDefaults() TSNEConfig {
	if c.Perplexity <= 0 {
		c.Perplexity = DefaultPerplexity
	}
	if c.LearningRate <= 0 {
		c.LearningRate = DefaultLearningRate
	}
	if c.MaxIter <= 0 {
		c.MaxIter = DefaultMaxIter
	}
	return c
}

// TSNE embeds the input into exactly 2 dimensions using t-distributed
// stochastic neighbor embedding. The algorithm itself (pairwise affinities,
// gradient descent with momentum and early exaggeration) lives entirely in
// the go-tsne library; this type only adapts it to the Transformer interface.
//
// The embedding is iterative and can be slow for large inputs. FitTransform
// blocks for its full duration; callers needing cancellation must impose it
// around the whole operation.
type TSNE struct {
	config TSNEConfig
}

// NewTSNE creates a 2D t-SNE embedding stage with the given hyperparameters.
func NewTSNE(config TSNEConfig) *TSNE {
	return &TSNE{config: config.withDefaults()}
}

// Config returns the effective hyperparameters after defaulting.
func (t *TSNE) Config() TSNEConfig {
	return t.config
}

// FitTransform embeds the rows of m into 2D, returning a (rows x 2) matrix
// with one coordinate pair per input instance. The absolute coordinates carry
// no intrinsic meaning; only relative proximity does.
func (t *TSNE) FitTransform(m mat.Matrix) (*mat.Dense, error) {
	rows, _ := m.Dims()
	if rows == 0 {
		return nil, errors.New("tsne: empty input matrix")
	}

	embedder := tsne.NewTSNE(2, t.config.Perplexity, t.config.LearningRate, t.config.MaxIter, t.config.Verbose)
	embedded := embedder.EmbedData(mat.DenseCopyOf(m), nil)
	if embedded == nil {
		return nil, errors.New("tsne: embedding failed")
	}
	return mat.DenseCopyOf(embedded), nil
}
