// Package tui renders a t-SNE projection on a character grid inside an
// interactive terminal viewer. TermSurface collects the scatter groups the
// visualizer draws; Model wraps it in a tabbed bubbletea application with
// group selection, an overlay legend, and PNG export.
package tui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lulzzz/yellowbrick/visualizer"
)

// termGroup is one scatter series with its resolved color.
type termGroup struct {
	label string
	xs    []float64
	ys    []float64
	color color.Color
	alpha float64
}

// TermSurface implements visualizer.Surface on a character grid. It records
// the drawn groups, so the same figure can later be replayed onto a
// PlotSurface for PNG export.
type TermSurface struct {
	groups        []termGroup
	title         string
	ticksHidden   bool
	legendVisible bool
}

// NewTermSurface creates an empty terminal drawing surface.
func NewTermSurface() *TermSurface {
	return &TermSurface{}
}

// Scatter records one group of points with its display color.
func (surface *TermSurface) Scatter(label string, xs, ys []float64, c color.Color, alpha float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("scatter %q: %d xs but %d ys", label, len(xs), len(ys))
	}
	surface.groups = append(surface.groups, termGroup{
		label: label,
		xs:    append([]float64(nil), xs...),
		ys:    append([]float64(nil), ys...),
		color: c,
		alpha: alpha,
	})
	return nil
}

// SetTitle stores the figure title for the tab bar and exports.
func (surface *TermSurface) SetTitle(title string) {
	surface.title = title
}

// HideTicks is a no-op for the character grid; it never draws axes.
func (surface *TermSurface) HideTicks() {
	surface.ticksHidden = true
}

// LegendOutside enables the overlay legend panel.
func (surface *TermSurface) LegendOutside() {
	surface.legendVisible = true
}

// Title returns the figure title.
func (surface *TermSurface) Title() string {
	return surface.title
}

// GroupLabels returns the label of every drawn group in draw order.
func (surface *TermSurface) GroupLabels() []string {
	labels := make([]string, len(surface.groups))
	for groupIndex, group := range surface.groups {
		labels[groupIndex] = group.label
	}
	return labels
}

// NumPoints returns the total number of points across all groups.
func (surface *TermSurface) NumPoints() int {
	total := 0
	for _, group := range surface.groups {
		total += len(group.xs)
	}
	return total
}

// ExportPNG replays the recorded figure onto a plot surface and writes it to
// the given path.
func (surface *TermSurface) ExportPNG(path string) error {
	plotSurface := visualizer.NewPlotSurface()
	for _, group := range surface.groups {
		if err := plotSurface.Scatter(group.label, group.xs, group.ys, group.color, group.alpha); err != nil {
			return fmt.Errorf("replay group %q: %w", group.label, err)
		}
	}
	plotSurface.SetTitle(surface.title)
	if surface.ticksHidden {
		plotSurface.HideTicks()
	}
	if surface.legendVisible {
		plotSurface.LegendOutside()
	}
	return plotSurface.SavePNG(path)
}

// gridCell is a single character cell with its style.
type gridCell struct {
	char  rune
	style lipgloss.Style
}

// Render draws every group onto a width x height character grid. The
// selected group renders bold on top of the others; with focus enabled, only
// the selected group is drawn.
func (surface *TermSurface) Render(width, height, selectedGroup int, focus bool) string {
	if width < 1 || height < 1 {
		return ""
	}

	grid := make([][]gridCell, height)
	for rowIndex := range grid {
		grid[rowIndex] = make([]gridCell, width)
		for columnIndex := range grid[rowIndex] {
			grid[rowIndex][columnIndex] = gridCell{char: ' ', style: lipgloss.NewStyle()}
		}
	}

	if surface.NumPoints() == 0 {
		placeholder := "nothing to plot"
		startColumn := (width - len(placeholder)) / 2
		if startColumn < 0 {
			startColumn = 0
		}
		for characterOffset, character := range placeholder {
			if startColumn+characterOffset < width {
				grid[height/2][startColumn+characterOffset] = gridCell{char: character, style: lipgloss.NewStyle()}
			}
		}
		return gridToString(grid)
	}

	minimumX, maximumX, minimumY, maximumY := surface.bounds()
	rangeX := maximumX - minimumX
	rangeY := maximumY - minimumY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	padding := 1
	plotWidth := width - 2*padding
	plotHeight := height - 2*padding
	if plotWidth < 1 {
		plotWidth = 1
	}
	if plotHeight < 1 {
		plotHeight = 1
	}

	// Draw the selected group last so its glyphs sit on top.
	order := make([]int, 0, len(surface.groups))
	for groupIndex := range surface.groups {
		if groupIndex != selectedGroup {
			order = append(order, groupIndex)
		}
	}
	if selectedGroup >= 0 && selectedGroup < len(surface.groups) {
		order = append(order, selectedGroup)
	}

	for _, groupIndex := range order {
		group := surface.groups[groupIndex]
		isSelected := groupIndex == selectedGroup
		if focus && selectedGroup >= 0 && !isSelected {
			continue
		}

		glyph := '○'
		style := lipgloss.NewStyle().Foreground(lipglossColor(group.color))
		if isSelected {
			glyph = '●'
			style = style.Bold(true)
		}

		for pointIndex := range group.xs {
			columnIndex := padding + int((group.xs[pointIndex]-minimumX)/rangeX*float64(plotWidth-1))
			rowIndex := padding + int((maximumY-group.ys[pointIndex])/rangeY*float64(plotHeight-1))
			if columnIndex < 0 || columnIndex >= width || rowIndex < 0 || rowIndex >= height {
				continue
			}
			grid[rowIndex][columnIndex] = gridCell{char: glyph, style: style}
		}
	}

	return gridToString(grid)
}

func (surface *TermSurface) bounds() (minimumX, maximumX, minimumY, maximumY float64) {
	first := true
	for _, group := range surface.groups {
		for pointIndex := range group.xs {
			x := group.xs[pointIndex]
			y := group.ys[pointIndex]
			if first {
				minimumX, maximumX = x, x
				minimumY, maximumY = y, y
				first = false
				continue
			}
			if x < minimumX {
				minimumX = x
			}
			if x > maximumX {
				maximumX = x
			}
			if y < minimumY {
				minimumY = y
			}
			if y > maximumY {
				maximumY = y
			}
		}
	}
	return
}

func gridToString(grid [][]gridCell) string {
	var builder strings.Builder
	for rowIndex, row := range grid {
		for _, cell := range row {
			builder.WriteString(cell.style.Render(string(cell.char)))
		}
		if rowIndex < len(grid)-1 {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

// lipglossColor converts an image color to a truecolor lipgloss color.
func lipglossColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", uint8(r>>8), uint8(g>>8), uint8(b>>8)))
}
