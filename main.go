// Package main provides the yellowbrick CLI, a t-SNE corpus visualizer. It
// loads documents from a file, the Hugging Face Dataset Viewer, a Qdrant
// collection, or a built-in demo corpus, turns them into a feature matrix,
// projects the matrix to 2D with optional SVD/PCA pre-decomposition, and
// renders the result as a PNG figure or an interactive terminal viewer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/mat"

	"github.com/lulzzz/yellowbrick/cluster"
	"github.com/lulzzz/yellowbrick/corpus"
	"github.com/lulzzz/yellowbrick/embedding"
	"github.com/lulzzz/yellowbrick/projection"
	"github.com/lulzzz/yellowbrick/tui"
	"github.com/lulzzz/yellowbrick/visualizer"
)

// version is set at build time via ldflags, defaults to "dev" for local builds
var version = "dev"

// Service configuration constants for optional backends
const (
	// defaultOllamaURL is the HTTP endpoint for the Ollama embedding service
	defaultOllamaURL = "http://localhost:11434"

	// defaultOllamaModel specifies which Ollama model to use for text embeddings
	defaultOllamaModel = "nomic-embed-text"

	// defaultQdrantCollection is the collection read when -qdrant is given
	defaultQdrantCollection = "embeddings"

	// defaultHFModel specifies the Hugging Face Inference API embedding model
	defaultHFModel = "sentence-transformers/all-MiniLM-L6-v2"
)

type options struct {
	showVersion bool
	demo        bool
	inputPath   string

	hfDataset   string
	hfConfig    string
	hfSplit     string
	textColumn  string
	labelColumn string
	maxRows     int

	qdrantAddress    string
	qdrantCollection string

	embedMode   string
	ollamaURL   string
	ollamaModel string
	hfModel     string
	hfToken     string

	clusterCount int

	decompose    string
	decomposeBy  int
	perplexity   float64
	learningRate float64
	iterations   int

	classes    string
	outputPath string
	runTUI     bool
}

func parseFlags() options {
	var opts options

	flag.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	flag.BoolVar(&opts.demo, "demo", false, "use the built-in labeled demo corpus")
	flag.StringVar(&opts.inputPath, "input", "", "CSV or JSON corpus file")

	flag.StringVar(&opts.hfDataset, "hf", "", "Hugging Face dataset to fetch (e.g. imdb)")
	flag.StringVar(&opts.hfConfig, "hf-config", "default", "Hugging Face dataset config")
	flag.StringVar(&opts.hfSplit, "hf-split", "train", "Hugging Face dataset split")
	flag.StringVar(&opts.textColumn, "text-column", "text", "dataset column holding the document text")
	flag.StringVar(&opts.labelColumn, "label-column", "", "dataset column holding the class label")
	flag.IntVar(&opts.maxRows, "max-rows", 500, "maximum rows to fetch from remote sources (0 = all)")

	flag.StringVar(&opts.qdrantAddress, "qdrant", "", "Qdrant gRPC address to read vectors from (e.g. localhost:6334)")
	flag.StringVar(&opts.qdrantCollection, "collection", defaultQdrantCollection, "Qdrant collection name")

	flag.StringVar(&opts.embedMode, "embed", "tfidf", "vectorization mode: tfidf, ollama, or hf")
	flag.StringVar(&opts.ollamaURL, "ollama-url", defaultOllamaURL, "Ollama server URL")
	flag.StringVar(&opts.ollamaModel, "ollama-model", defaultOllamaModel, "Ollama embedding model")
	flag.StringVar(&opts.hfModel, "hf-model", defaultHFModel, "Hugging Face Inference API embedding model")
	flag.StringVar(&opts.hfToken, "hf-token", "", "Hugging Face API token (defaults to HF_TOKEN)")

	flag.IntVar(&opts.clusterCount, "clusters", 0, "k-means cluster count for coloring unlabeled corpora (0 = off)")

	flag.StringVar(&opts.decompose, "decompose", "svd", "decomposition ahead of t-SNE: svd, pca, or none")
	flag.IntVar(&opts.decomposeBy, "decompose-by", projection.DefaultComponents, "target dimensionality of the decomposition")
	flag.Float64Var(&opts.perplexity, "perplexity", projection.DefaultPerplexity, "t-SNE perplexity")
	flag.Float64Var(&opts.learningRate, "learning-rate", projection.DefaultLearningRate, "t-SNE learning rate")
	flag.IntVar(&opts.iterations, "iterations", projection.DefaultMaxIter, "t-SNE iterations")

	flag.StringVar(&opts.classes, "classes", "", "comma-separated class list restricting which labels are drawn")
	flag.StringVar(&opts.outputPath, "o", "projection.png", "output PNG path")
	flag.BoolVar(&opts.runTUI, "tui", false, "open the interactive terminal viewer instead of writing a PNG")

	flag.Parse()
	return opts
}

func main() {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Println(version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	documents, err := loadDocuments(opts)
	if err != nil {
		return err
	}
	if len(documents) == 0 {
		return fmt.Errorf("no documents loaded")
	}
	fmt.Fprintf(os.Stderr, "Loaded %d documents\n", len(documents))

	features, err := buildFeatures(opts, documents)
	if err != nil {
		return err
	}

	labels := corpus.Labels(documents)
	if labels == nil && opts.clusterCount > 0 {
		labels, err = cluster.Labels(features, opts.clusterCount)
		if err != nil {
			return fmt.Errorf("clustering: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Derived %d cluster labels\n", opts.clusterCount)
	}

	method, err := projection.ParseMethod(opts.decompose)
	if err != nil {
		return err
	}

	config := visualizer.Config{
		Decompose:   method,
		DecomposeBy: opts.decomposeBy,
		TSNE: projection.TSNEConfig{
			Perplexity:   opts.perplexity,
			LearningRate: opts.learningRate,
			MaxIter:      opts.iterations,
		},
	}
	if opts.classes != "" {
		config.Classes = splitClasses(opts.classes)
	}

	if opts.runTUI {
		return runViewer(features, labels, config)
	}
	return writeFigure(features, labels, config, opts.outputPath)
}

// loadDocuments picks the corpus source from the flags, in priority order:
// explicit file, Hugging Face dataset, Qdrant collection, demo corpus.
func loadDocuments(opts options) ([]corpus.Document, error) {
	switch {
	case opts.inputPath != "":
		documents, err := corpus.LoadDocuments(opts.inputPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", opts.inputPath, err)
		}
		return documents, nil

	case opts.hfDataset != "":
		client := corpus.NewHFClient()
		documents, err := client.FetchDocuments(opts.hfDataset, opts.hfConfig, opts.hfSplit,
			opts.textColumn, opts.labelColumn, opts.maxRows)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", opts.hfDataset, err)
		}
		return documents, nil

	case opts.qdrantAddress != "":
		source, err := corpus.NewQdrantSource(opts.qdrantAddress, opts.qdrantCollection)
		if err != nil {
			return nil, err
		}
		defer source.Close()
		documents, err := source.Documents(context.Background())
		if err != nil {
			return nil, fmt.Errorf("reading collection %s: %w", opts.qdrantCollection, err)
		}
		return documents, nil

	default:
		if !opts.demo {
			fmt.Fprintln(os.Stderr, "No corpus source given, using the built-in demo corpus (see -help)")
		}
		return corpus.Sample(), nil
	}
}

// buildFeatures turns the corpus into a feature matrix. Precomputed vectors
// win; otherwise the texts go through tf-idf or an Ollama embedding model.
func buildFeatures(opts options, documents []corpus.Document) (*mat.Dense, error) {
	if corpus.HasVectors(documents) {
		fmt.Fprintln(os.Stderr, "Using precomputed document vectors")
		return corpus.Matrix(documents)
	}

	switch opts.embedMode {
	case "tfidf":
		return corpus.Vectorise(documents)

	case "ollama":
		embedder := embedding.NewOllamaClient(opts.ollamaURL, opts.ollamaModel)
		fmt.Fprintf(os.Stderr, "Embedding %d documents via %s\n", len(documents), opts.ollamaModel)
		return embedding.Matrix(embedder, corpus.Texts(documents))

	case "hf":
		embedder := embedding.NewHFClient(opts.hfModel, opts.hfToken)
		fmt.Fprintf(os.Stderr, "Embedding %d documents via %s\n", len(documents), opts.hfModel)
		return embedding.Matrix(embedder, corpus.Texts(documents))

	default:
		return nil, fmt.Errorf("unknown embed mode %q, use tfidf, ollama, or hf", opts.embedMode)
	}
}

func runViewer(features *mat.Dense, labels []string, config visualizer.Config) error {
	surface := tui.NewTermSurface()
	config.Surface = surface

	if _, err := visualizer.Scatter(features, labels, config); err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewModel(surface, version), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

func writeFigure(features *mat.Dense, labels []string, config visualizer.Config, outputPath string) error {
	surface := visualizer.NewPlotSurface()
	config.Surface = surface

	if _, err := visualizer.Scatter(features, labels, config); err != nil {
		return err
	}

	if err := surface.SavePNG(outputPath); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", outputPath)
	return nil
}

func splitClasses(list string) []string {
	var classes []string
	for _, class := range strings.Split(list, ",") {
		class = strings.TrimSpace(class)
		if class != "" {
			classes = append(classes, class)
		}
	}
	return classes
}
