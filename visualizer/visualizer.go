// Package visualizer renders a 2D scatter projection of high-dimensional
// document vectors: a t-SNE embedding (optionally preceded by a linear
// decomposition) grouped and colored by class label.
//
// The Visualizer owns a projection pipeline, the class-name bookkeeping, and
// a cumulative instance counter; all of that state is mutated in place by Fit,
// so concurrent Fit calls on one instance must be externally serialized.
package visualizer

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/palette"

	"github.com/lulzzz/yellowbrick/projection"
)

// scatterAlpha is the fixed translucency of every point group.
const scatterAlpha = 0.7

// Config holds the construction options for a Visualizer. The zero value
// selects a truncated SVD pre-decomposition to 50 components, default t-SNE
// hyperparameters, the default color cycle, and a fresh PlotSurface on first
// draw.
type Config struct {
	// Surface is the drawing surface. When nil, a PlotSurface is created on
	// the first draw.
	Surface Surface

	// Decompose selects the pre-decomposition stage; the zero value is
	// projection.MethodSVD.
	Decompose projection.Method

	// DecomposeBy is the target dimensionality of the pre-decomposition;
	// zero selects the default of 50.
	DecomposeBy int

	// Classes restricts and orders the plotted classes. Labels outside this
	// set are silently dropped. When nil, the class set is derived from the
	// labels seen by the first Fit call.
	Classes []string

	// Colors assigns colors per class, cycled when classes outnumber them.
	Colors []color.Color

	// Colormap supplies the class colors when Colors is empty.
	Colormap palette.Palette

	// TSNE is forwarded verbatim to the embedding stage.
	TSNE projection.TSNEConfig
}

// Visualizer projects document vectors to 2D and draws them, accumulating
// class names and an instance count across Fit calls for the final figure
// annotations.
type Visualizer struct {
	surface     Surface
	transformer projection.Transformer
	colors      []color.Color
	colormap    palette.Palette

	// classes is the ordered class-name set: caller-supplied, or derived
	// from the first labeled Fit. nil means no classes are known yet.
	classes []string

	// nInstances counts every instance fit so far; used only for the title.
	nInstances int
}

// New creates a Visualizer and builds its transform pipeline. An unrecognized
// decomposition method fails with a projection.InvalidDecompositionError.
func New(cfg Config) (*Visualizer, error) {
	v := &Visualizer{
		surface:  cfg.Surface,
		colors:   cfg.Colors,
		colormap: cfg.Colormap,
		classes:  cfg.Classes,
	}
	if err := v.MakeTransformer(cfg.Decompose, cfg.DecomposeBy, cfg.TSNE); err != nil {
		return nil, err
	}
	return v, nil
}

// MakeTransformer rebuilds the internal projection pipeline, replacing any
// previously built one. On error the previous pipeline is left untouched, so
// the Visualizer stays usable. This can be called between Fit calls to
// explore different decompositions.
func (v *Visualizer) MakeTransformer(method projection.Method, decomposeBy int, tsneConfig projection.TSNEConfig) error {
	pipeline, err := projection.NewProjection(method, decomposeBy, tsneConfig)
	if err != nil {
		return err
	}
	v.transformer = pipeline
	return nil
}

// Fit projects the feature matrix X (one row per document) to 2D and draws
// the result. The label slice y is optional: nil or empty means no labels,
// and any non-empty slice counts as labels present, one per row of X.
//
// When no class set was configured, the first labeled Fit derives it as the
// distinct labels in order of first occurrence. The cumulative instance
// counter grows by the number of rows processed. Failures from the numerical
// pipeline propagate wrapped and unrecovered; the counter is only advanced
// after a successful transform, but before drawing.
func (v *Visualizer) Fit(X mat.Matrix, y []string) error {
	if len(y) > 0 && v.classes == nil {
		v.classes = distinctInOrder(y)
	}

	points, err := v.transformer.FitTransform(X)
	if err != nil {
		return fmt.Errorf("fit transform: %w", err)
	}

	rows, _ := points.Dims()
	v.nInstances += rows

	return v.Draw(points, y)
}

// Classes returns the current ordered class-name set, or nil when no labels
// have been seen and none were configured.
func (v *Visualizer) Classes() []string {
	return v.classes
}

// NumInstances returns the cumulative number of instances fit so far.
func (v *Visualizer) NumInstances() int {
	return v.nInstances
}

// Surface returns the drawing surface, creating the default PlotSurface if
// none exists yet.
func (v *Visualizer) Surface() Surface {
	if v.surface == nil {
		v.surface = NewPlotSurface()
	}
	return v.surface
}

// series collects the parallel coordinate lists of one label group during a
// single draw pass.
type series struct {
	xs, ys []float64
}

// Draw partitions the 2D points into groups keyed by label and issues one
// scatter call per group. With no labels all points form a single anonymous
// group. When a class set is present, labels outside it are dropped without
// error. Colors are assigned by zipping the ordered class set against the
// resolved color cycle.
func (v *Visualizer) Draw(points mat.Matrix, y []string) error {
	surface := v.Surface()

	// Without labels everything is one anonymous group, even when a class
	// set is configured; the class set only filters labeled input.
	classes := v.classes
	filter := v.classes != nil && len(y) > 0
	switch {
	case len(y) == 0:
		classes = []string{""}
	case classes == nil:
		classes = distinctInOrder(y)
	}

	colors := resolveColors(len(classes), v.colors, v.colormap)
	allowed := make(map[string]int, len(classes))
	for classIndex, class := range classes {
		allowed[class] = classIndex
	}

	groups := make(map[string]*series, len(classes))
	rows, _ := points.Dims()
	for rowIndex := 0; rowIndex < rows; rowIndex++ {
		label := ""
		if len(y) > 0 {
			if rowIndex >= len(y) {
				break
			}
			label = y[rowIndex]
			if _, ok := allowed[label]; filter && !ok {
				continue
			}
		}

		group := groups[label]
		if group == nil {
			group = &series{}
			groups[label] = group
		}
		group.xs = append(group.xs, points.At(rowIndex, 0))
		group.ys = append(group.ys, points.At(rowIndex, 1))
	}

	for classIndex, class := range classes {
		group := groups[class]
		if group == nil {
			continue
		}
		if err := surface.Scatter(class, group.xs, group.ys, colors[classIndex], scatterAlpha); err != nil {
			return fmt.Errorf("draw group %q: %w", class, err)
		}
	}
	return nil
}

// Finalize adds the title with the cumulative document count, strips the
// axis ticks, and, when classes are present, moves the legend outside the
// plot area. Purely cosmetic; call it once after the last Fit.
func (v *Visualizer) Finalize() {
	surface := v.Surface()
	surface.SetTitle(fmt.Sprintf("t-SNE Projection of %d Documents", v.nInstances))
	surface.HideTicks()
	if v.classes != nil {
		surface.LegendOutside()
	}
}

// Scatter is the one-shot entry point: it builds a Visualizer, fits and draws
// the matrix, finalizes the figure, and returns the drawing surface.
func Scatter(X mat.Matrix, y []string, cfg Config) (Surface, error) {
	v, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := v.Fit(X, y); err != nil {
		return nil, err
	}
	v.Finalize()
	return v.Surface(), nil
}

// distinctInOrder returns the distinct labels in order of first occurrence.
func distinctInOrder(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	var distinct []string
	for _, label := range labels {
		if !seen[label] {
			seen[label] = true
			distinct = append(distinct, label)
		}
	}
	return distinct
}
