// Package embedding provides text embedding providers behind a common
// interface, letting the application swap backends (Ollama, Hugging Face)
// interchangeably when building feature matrices.
package embedding

// Embedder is the interface that text embedding providers must implement.
type Embedder interface {
	// Embed converts the provided text into a vector embedding.
	// It returns a slice of float32 values representing the text in embedding space,
	// or an error if the embedding request fails.
	// If the input text is empty, Embed should return nil without error.
	Embed(text string) ([]float32, error)
}
