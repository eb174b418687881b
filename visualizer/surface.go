package visualizer

import "image/color"

// Surface is the narrow drawing capability the visualizer needs. It is
// satisfied by PlotSurface (gonum/plot, for image output) and by the terminal
// surface in the tui package, and by test fakes.
type Surface interface {
	// Scatter draws one group of points with the given color and
	// translucency. A non-empty label becomes the group's legend entry; an
	// empty label draws an anonymous group with no legend entry.
	Scatter(label string, xs, ys []float64, c color.Color, alpha float64) error

	// SetTitle sets the figure title.
	SetTitle(title string)

	// HideTicks removes the numeric tick marks from both axes. Embedding
	// coordinates carry no intrinsic meaning, so ticks only add noise.
	HideTicks()

	// LegendOutside shrinks the drawable area to 80% of the figure width and
	// places the legend in the freed margin, vertically centered.
	LegendOutside()
}
