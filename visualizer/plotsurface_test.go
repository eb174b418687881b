package visualizer

import (
	"bytes"
	"image/color"
	"testing"
)

func TestPlotSurface_WritePNG(t *testing.T) {
	surface := NewPlotSurface()

	err := surface.Scatter("alpha", []float64{0, 1, 2}, []float64{2, 1, 0}, color.RGBA{R: 0xff, A: 0xff}, 0.7)
	if err != nil {
		t.Fatal(err)
	}
	surface.SetTitle("t-SNE Projection of 3 Documents")
	surface.HideTicks()
	surface.LegendOutside()

	var buffer bytes.Buffer
	if err := surface.WritePNG(&buffer); err != nil {
		t.Fatal(err)
	}

	pngSignature := []byte{0x89, 'P', 'N', 'G'}
	if !bytes.HasPrefix(buffer.Bytes(), pngSignature) {
		t.Errorf("output does not start with the PNG signature: % x", buffer.Bytes()[:8])
	}
}

func TestPlotSurface_WritePNG_NoLegendEntries(t *testing.T) {
	surface := NewPlotSurface()

	// Unlabeled groups add no legend entry, so the outside-legend crop
	// must be skipped entirely.
	err := surface.Scatter("", []float64{0, 1}, []float64{1, 0}, color.RGBA{B: 0xff, A: 0xff}, 0.7)
	if err != nil {
		t.Fatal(err)
	}
	surface.LegendOutside()

	var buffer bytes.Buffer
	if err := surface.WritePNG(&buffer); err != nil {
		t.Fatal(err)
	}
	if buffer.Len() == 0 {
		t.Error("expected PNG bytes")
	}
}

func TestResolveColors(t *testing.T) {
	colors := resolveColors(12, nil, nil)
	if len(colors) != 12 {
		t.Fatalf("expected 12 colors, got %d", len(colors))
	}
	if colors[0] != colors[10] {
		t.Error("default cycle should repeat after ten classes")
	}
	if colors[0] == colors[1] {
		t.Error("adjacent default colors should differ")
	}
}
