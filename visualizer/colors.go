package visualizer

import (
	"image/color"

	"gonum.org/v1/plot/palette"
)

// defaultColorCycle is the default per-class color sequence, mirroring the
// ten-color cycle most plotting tools ship with.
var defaultColorCycle = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, // blue
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}, // orange
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, // green
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, // red
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff}, // purple
	color.RGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff}, // brown
	color.RGBA{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff}, // pink
	color.RGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff}, // gray
	color.RGBA{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff}, // olive
	color.RGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff}, // cyan
}

// resolveColors produces one color per class. Caller-supplied colors take
// precedence over a colormap palette, which takes precedence over the default
// cycle. When classes outnumber the available colors the sequence repeats.
func resolveColors(numClasses int, userColors []color.Color, colormap palette.Palette) []color.Color {
	cycle := userColors
	if len(cycle) == 0 && colormap != nil {
		cycle = colormap.Colors()
	}
	if len(cycle) == 0 {
		cycle = defaultColorCycle
	}

	resolved := make([]color.Color, numClasses)
	for classIndex := 0; classIndex < numClasses; classIndex++ {
		resolved[classIndex] = cycle[classIndex%len(cycle)]
	}
	return resolved
}

// withAlpha returns c with its alpha channel replaced.
func withAlpha(c color.Color, alpha float64) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(alpha*255 + 0.5),
	}
}
