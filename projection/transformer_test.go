package projection

import (
	"errors"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name     string
		expected Method
	}{
		{"svd", MethodSVD},
		{"SVD", MethodSVD},
		{"pca", MethodPCA},
		{"none", MethodNone},
		{"", MethodNone},
	}

	for _, tc := range tests {
		method, err := ParseMethod(tc.name)
		if err != nil {
			t.Errorf("ParseMethod(%q) returned error: %v", tc.name, err)
		}
		if method != tc.expected {
			t.Errorf("ParseMethod(%q) = %v, expected %v", tc.name, method, tc.expected)
		}
	}
}

func TestParseMethod_Invalid(t *testing.T) {
	_, err := ParseMethod("lda")
	if err == nil {
		t.Fatal("expected error for unknown decomposition")
	}

	var invalidErr *InvalidDecompositionError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("expected InvalidDecompositionError, got %T", err)
	}

	message := err.Error()
	if !strings.Contains(message, "lda") {
		t.Errorf("error should name the offending value, got %q", message)
	}
	for _, choice := range []string{"svd", "pca", "none"} {
		if !strings.Contains(message, choice) {
			t.Errorf("error should list choice %q, got %q", choice, message)
		}
	}
}

func TestNewProjection_StageCounts(t *testing.T) {
	tests := []struct {
		method Method
		stages int
	}{
		{MethodSVD, 2},
		{MethodPCA, 2},
		{MethodNone, 1},
	}

	for _, tc := range tests {
		pipeline, err := NewProjection(tc.method, 50, TSNEConfig{})
		if err != nil {
			t.Fatalf("NewProjection(%v) returned error: %v", tc.method, err)
		}
		if got := len(pipeline.Stages()); got != tc.stages {
			t.Errorf("NewProjection(%v) built %d stages, expected %d", tc.method, got, tc.stages)
		}
	}
}

func TestNewProjection_FinalStageIsTSNE(t *testing.T) {
	pipeline, err := NewProjection(MethodNone, 0, TSNEConfig{MaxIter: 10})
	if err != nil {
		t.Fatal(err)
	}

	stages := pipeline.Stages()
	if _, ok := stages[len(stages)-1].(*TSNE); !ok {
		t.Errorf("final pipeline stage should be the embedding, got %T", stages[len(stages)-1])
	}
}

func TestNewProjection_UnknownMethod(t *testing.T) {
	pipeline, err := NewProjection(Method(42), 50, TSNEConfig{})
	if err == nil {
		t.Fatal("expected error for unknown method")
	}
	if pipeline != nil {
		t.Error("no pipeline should be built on error")
	}

	var invalidErr *InvalidDecompositionError
	if !errors.As(err, &invalidErr) {
		t.Errorf("expected InvalidDecompositionError, got %T", err)
	}
}

// fakeStage records its input and returns a fixed output, so pipeline
// chaining can be tested without running real decompositions.
type fakeStage struct {
	seen   mat.Matrix
	output *mat.Dense
	err    error
}

func (f *fakeStage) FitTransform(m mat.Matrix) (*mat.Dense, error) {
	f.seen = m
	return f.output, f.err
}

func TestPipeline_ChainsStages(t *testing.T) {
	intermediate := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	final := mat.NewDense(2, 2, []float64{5, 6, 7, 8})

	first := &fakeStage{output: intermediate}
	second := &fakeStage{output: final}
	pipeline := NewPipeline(first, second)

	input := mat.NewDense(2, 3, []float64{0, 0, 0, 1, 1, 1})
	out, err := pipeline.FitTransform(input)
	if err != nil {
		t.Fatal(err)
	}

	if first.seen != mat.Matrix(input) {
		t.Error("first stage should see the original input")
	}
	if second.seen != mat.Matrix(intermediate) {
		t.Error("second stage should see the first stage's output")
	}
	if out != final {
		t.Error("pipeline should return the last stage's output")
	}
}

func TestPipeline_StageErrorAborts(t *testing.T) {
	failure := errors.New("did not converge")
	first := &fakeStage{err: failure}
	second := &fakeStage{output: mat.NewDense(1, 1, nil)}
	pipeline := NewPipeline(first, second)

	_, err := pipeline.FitTransform(mat.NewDense(1, 1, nil))
	if !errors.Is(err, failure) {
		t.Fatalf("expected wrapped stage error, got %v", err)
	}
	if second.seen != nil {
		t.Error("later stages should not run after a failure")
	}
}

func TestTSNEConfig_Defaults(t *testing.T) {
	embedder := NewTSNE(TSNEConfig{})
	config := embedder.Config()

	if config.Perplexity != DefaultPerplexity {
		t.Errorf("default perplexity = %v, expected %v", config.Perplexity, DefaultPerplexity)
	}
	if config.LearningRate != DefaultLearningRate {
		t.Errorf("default learning rate = %v, expected %v", config.LearningRate, DefaultLearningRate)
	}
	if config.MaxIter != DefaultMaxIter {
		t.Errorf("default max iterations = %v, expected %v", config.MaxIter, DefaultMaxIter)
	}
}

func TestTSNE_ProjectsToTwoDimensions(t *testing.T) {
	// Two tight clusters in 4D
	input := mat.NewDense(6, 4, []float64{
		0.0, 0.0, 0.0, 0.0,
		0.1, 0.1, 0.0, 0.0,
		0.2, 0.0, 0.1, 0.0,
		9.0, 9.0, 9.0, 9.0,
		9.1, 9.0, 9.1, 9.0,
		9.2, 9.1, 9.0, 9.0,
	})

	embedder := NewTSNE(TSNEConfig{Perplexity: 2, MaxIter: 30})
	out, err := embedder.FitTransform(input)
	if err != nil {
		t.Fatal(err)
	}

	rows, cols := out.Dims()
	if rows != 6 || cols != 2 {
		t.Errorf("embedded shape = %dx%d, expected 6x2", rows, cols)
	}
}

func TestTSNE_EmptyInput(t *testing.T) {
	embedder := NewTSNE(TSNEConfig{})
	if _, err := embedder.FitTransform(&mat.Dense{}); err == nil {
		t.Error("expected error for empty input")
	}
}
