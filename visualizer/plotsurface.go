package visualizer

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Default figure size for saved images.
const (
	DefaultFigureWidth  = 8 * vg.Inch
	DefaultFigureHeight = 6 * vg.Inch
)

// PlotSurface renders scatter groups onto a gonum/plot figure and writes the
// result as a PNG image. The legend is managed separately from the plot so it
// can be drawn outside the shrunken plot area when requested.
type PlotSurface struct {
	figure        *plot.Plot
	legend        plot.Legend
	legendEntries int
	legendOutside bool

	// Width and Height control the saved image size; zero values select the
	// package defaults.
	Width  vg.Length
	Height vg.Length
}

// NewPlotSurface creates an empty drawing surface.
func NewPlotSurface() *PlotSurface {
	return &PlotSurface{
		figure: plot.New(),
		legend: plot.NewLegend(),
	}
}

// Plot exposes the underlying figure for callers needing direct adjustments.
func (s *PlotSurface) Plot() *plot.Plot {
	return s.figure
}

// Scatter draws one labeled point group as translucent circle glyphs.
func (s *PlotSurface) Scatter(label string, xs, ys []float64, c color.Color, alpha float64) error {
	points := make(plotter.XYs, len(xs))
	for pointIndex := range xs {
		points[pointIndex] = plotter.XY{X: xs[pointIndex], Y: ys[pointIndex]}
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return fmt.Errorf("scatter %q: %w", label, err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(2.5)
	scatter.GlyphStyle.Color = withAlpha(c, alpha)

	s.figure.Add(scatter)
	if label != "" {
		s.legend.Add(label, scatter)
		s.legendEntries++
	}
	return nil
}

// SetTitle sets the figure title.
func (s *PlotSurface) SetTitle(title string) {
	s.figure.Title.Text = title
}

// HideTicks removes the numeric tick marks from both axes.
func (s *PlotSurface) HideTicks() {
	s.figure.X.Tick.Marker = plot.ConstantTicks(nil)
	s.figure.Y.Tick.Marker = plot.ConstantTicks(nil)
}

// LegendOutside moves the legend out of the plot area: the plot is cropped to
// 80% of the figure width and the legend drawn in the right margin.
func (s *PlotSurface) LegendOutside() {
	s.legendOutside = true
}

// SavePNG renders the figure to a PNG file at path.
func (s *PlotSurface) SavePNG(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := s.WritePNG(file); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

// WritePNG renders the figure as PNG to w.
func (s *PlotSurface) WritePNG(w io.Writer) error {
	width, height := s.Width, s.Height
	if width <= 0 {
		width = DefaultFigureWidth
	}
	if height <= 0 {
		height = DefaultFigureHeight
	}

	img := vgimg.New(width, height)
	s.draw(draw.New(img))

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func (s *PlotSurface) draw(canvas draw.Canvas) {
	plotArea := canvas

	if s.legendOutside && s.legendEntries > 0 {
		// Reserve the right margin for the legend: at least 20% of the
		// figure width, more if the legend itself is wider.
		bounds := s.legend.Rectangle(canvas)
		legendWidth := bounds.Max.X - bounds.Min.X
		margin := canvas.Size().X / 5
		if legendWidth+vg.Millimeter > margin {
			margin = legendWidth + vg.Millimeter
		}

		legendArea := draw.Crop(canvas, canvas.Size().X-margin, 0, 0, 0)
		legendHeight := bounds.Max.Y - bounds.Min.Y
		s.legend.Top = true
		s.legend.YOffs = -(legendArea.Size().Y - legendHeight) / 2
		s.legend.Draw(legendArea)

		plotArea = draw.Crop(canvas, 0, -margin, 0, 0)
	} else if s.legendEntries > 0 {
		s.legend.Top = true
		s.legend.Draw(canvas)
	}

	s.figure.Draw(plotArea)
}
