package render

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/ayusman/sigil/internal/geometry"
)

// PreviewSize is the side of preview images in pixels.
const PreviewSize = 256

// DrawMat draws the strokes, each in its own colour, with a circle at every
// marker. The caller must Close the returned Mat.
func DrawMat(strokes []geometry.Stroke, markers []geometry.Point2D, size int) gocv.Mat {
	bg := rgba(BackgroundColor)
	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(bg.B), float64(bg.G), float64(bg.R), 0),
		size, size, gocv.MatTypeCV8UC3,
	)

	vp := newViewport(strokes, size, float64(size)/10)
	colors := Palette(len(strokes))
	for i, s := range strokes {
		c := rgba(colors[i])
		for j := 1; j < len(s.Points); j++ {
			gocv.Line(&mat, vp.pixel(s.Points[j-1]), vp.pixel(s.Points[j]), c, 2)
		}
	}

	mc := rgba(IntersectionColor)
	for _, m := range markers {
		gocv.Circle(&mat, vp.pixel(m), 4, mc, 2)
	}
	return mat
}

// PNG renders the strokes with DrawMat and encodes the result as PNG.
func PNG(strokes []geometry.Stroke, markers []geometry.Point2D, size int) ([]byte, error) {
	mat := DrawMat(strokes, markers, size)
	defer mat.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	defer buf.Close()

	return append([]byte(nil), buf.GetBytes()...), nil
}
