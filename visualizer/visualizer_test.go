package visualizer

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/lulzzz/yellowbrick/projection"
)

// fakeSurface records every drawing call so grouping and finalization can be
// asserted without a real plotting backend.
type fakeSurface struct {
	groups        []fakeGroup
	title         string
	ticksHidden   bool
	legendOutside bool
}

type fakeGroup struct {
	label string
	xs    []float64
	ys    []float64
	color color.Color
	alpha float64
}

func (f *fakeSurface) Scatter(label string, xs, ys []float64, c color.Color, alpha float64) error {
	f.groups = append(f.groups, fakeGroup{label: label, xs: xs, ys: ys, color: c, alpha: alpha})
	return nil
}

func (f *fakeSurface) SetTitle(title string) { f.title = title }
func (f *fakeSurface) HideTicks()            { f.ticksHidden = true }
func (f *fakeSurface) LegendOutside()        { f.legendOutside = true }

// identityTransformer passes the first two columns through unchanged, so
// driver behavior can be tested without running the real embedding.
type identityTransformer struct{}

func (identityTransformer) FitTransform(m mat.Matrix) (*mat.Dense, error) {
	rows, _ := m.Dims()
	out := mat.NewDense(rows, 2, nil)
	for rowIndex := 0; rowIndex < rows; rowIndex++ {
		out.Set(rowIndex, 0, m.At(rowIndex, 0))
		out.Set(rowIndex, 1, m.At(rowIndex, 1))
	}
	return out, nil
}

func newTestVisualizer(t *testing.T, cfg Config) (*Visualizer, *fakeSurface) {
	t.Helper()
	surface := &fakeSurface{}
	cfg.Surface = surface
	v, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	v.transformer = identityTransformer{}
	return v, surface
}

func featureMatrix(rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = float64(i%7) + float64(i%3)/10
	}
	return mat.NewDense(rows, cols, data)
}

func TestNew_InvalidDecomposition(t *testing.T) {
	_, err := New(Config{Decompose: projection.Method(9)})
	if err == nil {
		t.Fatal("expected error for invalid decomposition")
	}
	var invalidErr *projection.InvalidDecompositionError
	if !errors.As(err, &invalidErr) {
		t.Errorf("expected InvalidDecompositionError, got %T", err)
	}
}

func TestMakeTransformer_FailureKeepsPreviousPipeline(t *testing.T) {
	v, _ := newTestVisualizer(t, Config{})
	previous := v.transformer

	if err := v.MakeTransformer(projection.Method(9), 50, projection.TSNEConfig{}); err == nil {
		t.Fatal("expected error for invalid decomposition")
	}
	if v.transformer != previous {
		t.Error("failed rebuild must not replace the existing pipeline")
	}
}

func TestFit_NoLabelsDrawsSingleGroup(t *testing.T) {
	v, surface := newTestVisualizer(t, Config{})

	if err := v.Fit(featureMatrix(17, 5), nil); err != nil {
		t.Fatal(err)
	}

	if len(surface.groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(surface.groups))
	}
	group := surface.groups[0]
	if group.label != "" {
		t.Errorf("unlabeled group should have empty label, got %q", group.label)
	}
	if len(group.xs) != 17 || len(group.ys) != 17 {
		t.Errorf("group should hold all 17 points, got %d/%d", len(group.xs), len(group.ys))
	}
	if group.alpha != 0.7 {
		t.Errorf("alpha = %v, expected 0.7", group.alpha)
	}
}

func TestFit_LabelsPartitionIntoGroups(t *testing.T) {
	v, surface := newTestVisualizer(t, Config{})

	labels := []string{"b", "a", "b", "c", "a", "b"}
	if err := v.Fit(featureMatrix(6, 4), labels); err != nil {
		t.Fatal(err)
	}

	if len(surface.groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(surface.groups))
	}

	// Classes derive in first-occurrence order
	wantOrder := []string{"b", "a", "c"}
	wantSizes := map[string]int{"b": 3, "a": 2, "c": 1}
	total := 0
	for groupIndex, group := range surface.groups {
		if group.label != wantOrder[groupIndex] {
			t.Errorf("group %d label = %q, expected %q", groupIndex, group.label, wantOrder[groupIndex])
		}
		if len(group.xs) != wantSizes[group.label] {
			t.Errorf("group %q size = %d, expected %d", group.label, len(group.xs), wantSizes[group.label])
		}
		total += len(group.xs)
	}
	if total != 6 {
		t.Errorf("union of group sizes = %d, expected 6", total)
	}
}

func TestFit_DistinctGroupColors(t *testing.T) {
	v, surface := newTestVisualizer(t, Config{})

	if err := v.Fit(featureMatrix(4, 4), []string{"a", "b", "a", "b"}); err != nil {
		t.Fatal(err)
	}

	if len(surface.groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(surface.groups))
	}
	if surface.groups[0].color == surface.groups[1].color {
		t.Error("adjacent classes should get different cycle colors")
	}
}

func TestFit_CallerClassesFilterLabels(t *testing.T) {
	v, surface := newTestVisualizer(t, Config{Classes: []string{"a", "b"}})

	labels := []string{"a", "b", "c", "a", "c", "c"}
	if err := v.Fit(featureMatrix(6, 4), labels); err != nil {
		t.Fatal(err)
	}

	total := 0
	for _, group := range surface.groups {
		if group.label == "c" {
			t.Error("label outside the caller-supplied class set must not be drawn")
		}
		total += len(group.xs)
	}
	if total != 3 {
		t.Errorf("plotted points = %d, expected 3 after filtering", total)
	}
}

func TestFit_CallerColorsAreCycled(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}
	v, surface := newTestVisualizer(t, Config{Colors: []color.Color{red, blue}})

	if err := v.Fit(featureMatrix(3, 4), []string{"a", "b", "c"}); err != nil {
		t.Fatal(err)
	}

	if len(surface.groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(surface.groups))
	}
	if surface.groups[2].color != surface.groups[0].color {
		t.Error("third class should wrap back to the first supplied color")
	}
	if surface.groups[1].color != color.Color(blue) {
		t.Errorf("second class color = %v, expected %v", surface.groups[1].color, blue)
	}
}

func TestFit_CumulativeInstanceCounter(t *testing.T) {
	v, _ := newTestVisualizer(t, Config{})

	if err := v.Fit(featureMatrix(12, 4), nil); err != nil {
		t.Fatal(err)
	}
	if err := v.Fit(featureMatrix(5, 4), nil); err != nil {
		t.Fatal(err)
	}

	if v.NumInstances() != 17 {
		t.Errorf("instance counter = %d, expected 12+5=17", v.NumInstances())
	}
}

func TestFit_UnlabeledInputIgnoresClassRestriction(t *testing.T) {
	v, surface := newTestVisualizer(t, Config{Classes: []string{"a", "b"}})

	if err := v.Fit(featureMatrix(5, 4), nil); err != nil {
		t.Fatal(err)
	}

	if len(surface.groups) != 1 {
		t.Fatalf("expected the anonymous group to be drawn, got %d groups", len(surface.groups))
	}
	if surface.groups[0].label != "" || len(surface.groups[0].xs) != 5 {
		t.Errorf("unexpected group: label %q with %d points", surface.groups[0].label, len(surface.groups[0].xs))
	}
}

func TestFit_TwoBatchesWithClassRestriction(t *testing.T) {
	v, surface := newTestVisualizer(t, Config{Classes: []string{"a", "b"}})

	if err := v.Fit(featureMatrix(4, 4), []string{"a", "b", "a", "c"}); err != nil {
		t.Fatal(err)
	}
	if err := v.Fit(featureMatrix(4, 4), []string{"b", "c", "a", "b"}); err != nil {
		t.Fatal(err)
	}
	v.Finalize()

	drawn := 0
	for _, group := range surface.groups {
		if group.label == "c" {
			t.Error("label outside the class set must not be drawn")
		}
		drawn += len(group.xs)
	}
	if drawn != 6 {
		t.Errorf("drawn points = %d, expected 6 of 8 after filtering", drawn)
	}
	if v.NumInstances() != 8 {
		t.Errorf("instance counter = %d, expected all 8 fitted instances", v.NumInstances())
	}
	if !strings.Contains(surface.title, "8 Documents") {
		t.Errorf("title = %q, expected the full instance count", surface.title)
	}
	if !surface.legendOutside {
		t.Error("finalize must move the legend outside when classes are present")
	}
	if !surface.ticksHidden {
		t.Error("finalize must hide the axis ticks")
	}
}

func TestFit_EmptyLabelSliceMeansNoLabels(t *testing.T) {
	// An empty (but non-nil) label slice is the explicit "labels absent"
	// sentinel; it must not derive an empty class set.
	v, surface := newTestVisualizer(t, Config{})

	if err := v.Fit(featureMatrix(3, 4), []string{}); err != nil {
		t.Fatal(err)
	}

	if v.Classes() != nil {
		t.Errorf("classes should stay nil, got %v", v.Classes())
	}
	if len(surface.groups) != 1 || surface.groups[0].label != "" {
		t.Error("expected a single anonymous group")
	}
}

func TestFit_ZeroStringLabelsArePresent(t *testing.T) {
	// Labels that merely look falsy ("0") still count as present.
	v, surface := newTestVisualizer(t, Config{})

	if err := v.Fit(featureMatrix(4, 4), []string{"0", "0", "0", "0"}); err != nil {
		t.Fatal(err)
	}

	if len(surface.groups) != 1 || surface.groups[0].label != "0" {
		t.Errorf("expected one group labeled %q, got %+v", "0", surface.groups)
	}
}

func TestFinalize_WithClasses(t *testing.T) {
	v, surface := newTestVisualizer(t, Config{})

	if err := v.Fit(featureMatrix(8, 4), []string{"x", "y", "x", "y", "x", "y", "x", "y"}); err != nil {
		t.Fatal(err)
	}
	v.Finalize()

	if !strings.Contains(surface.title, "8 Documents") {
		t.Errorf("title should embed the instance count, got %q", surface.title)
	}
	if !surface.ticksHidden {
		t.Error("finalize must hide the axis ticks")
	}
	if !surface.legendOutside {
		t.Error("finalize must move the legend outside when classes are present")
	}
}

func TestFinalize_WithoutClasses(t *testing.T) {
	v, surface := newTestVisualizer(t, Config{})

	if err := v.Fit(featureMatrix(8, 4), nil); err != nil {
		t.Fatal(err)
	}
	v.Finalize()

	if !surface.ticksHidden {
		t.Error("finalize must hide the axis ticks")
	}
	if surface.legendOutside {
		t.Error("legend must not be placed when no classes are present")
	}
}

func TestScatter_EndToEnd_SparseUnlabeled(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the real embedding")
	}

	// 100 documents x 300 features, mostly zero, decomposed by SVD to 50
	// dims ahead of the embedding.
	X := mat.NewDense(100, 300, nil)
	for rowIndex := 0; rowIndex < 100; rowIndex++ {
		for _, columnIndex := range []int{rowIndex % 300, (rowIndex * 7) % 300, (rowIndex * 13) % 300} {
			X.Set(rowIndex, columnIndex, 1+float64(rowIndex%5))
		}
	}

	surface := &fakeSurface{}
	got, err := Scatter(X, nil, Config{
		Surface:     surface,
		Decompose:   projection.MethodSVD,
		DecomposeBy: 50,
		TSNE:        projection.TSNEConfig{Perplexity: 10, MaxIter: 20},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != Surface(surface) {
		t.Error("Scatter should return the configured surface")
	}

	if len(surface.groups) != 1 {
		t.Fatalf("expected one unlabeled group, got %d", len(surface.groups))
	}
	if len(surface.groups[0].xs) != 100 {
		t.Errorf("group holds %d points, expected 100", len(surface.groups[0].xs))
	}
	if !strings.Contains(surface.title, "100 Documents") {
		t.Errorf("title = %q, expected it to contain \"100 Documents\"", surface.title)
	}
}

func TestScatter_EndToEnd_LabeledNoDecomposition(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the real embedding")
	}

	X := featureMatrix(60, 20)
	labels := make([]string, 60)
	for i := range labels {
		labels[i] = string(rune('a' + i/20))
	}

	surface := &fakeSurface{}
	_, err := Scatter(X, labels, Config{
		Surface:   surface,
		Decompose: projection.MethodNone,
		TSNE:      projection.TSNEConfig{Perplexity: 5, MaxIter: 20},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(surface.groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(surface.groups))
	}
	for groupIndex, want := range []string{"a", "b", "c"} {
		group := surface.groups[groupIndex]
		if group.label != want {
			t.Errorf("group %d label = %q, expected %q", groupIndex, group.label, want)
		}
		if len(group.xs) != 20 {
			t.Errorf("group %q holds %d points, expected 20", group.label, len(group.xs))
		}
	}
	if !surface.legendOutside {
		t.Error("labeled end-to-end run should place the legend outside")
	}
}
