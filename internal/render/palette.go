// Package render draws strokes and analysis markers as images.
package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Marker colours.
var (
	RightAngleColor   = colorful.Hsv(130, 0.8, 0.9)
	IntersectionColor = colorful.Hsv(0, 0.85, 0.95)
	SimplifiedColor   = colorful.Hsv(210, 0.15, 0.6)
	BackgroundColor   = colorful.Hsv(0, 0, 0.1)
)

// Palette returns n colours with evenly spaced hues, one per stroke.
func Palette(n int) []colorful.Color {
	if n <= 0 {
		return nil
	}
	out := make([]colorful.Color, n)
	for i := range out {
		out[i] = colorful.Hsv(40+float64(i)*360/float64(n), 0.65, 0.95)
	}
	return out
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
