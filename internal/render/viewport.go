package render

import (
	"image"

	"github.com/ayusman/sigil/internal/geometry"
)

// viewport maps stroke coordinates onto a square canvas, keeping the aspect
// ratio and leaving pad pixels on every side.
type viewport struct {
	scale  float64
	offset geometry.Point2D
	min    geometry.Point2D
}

func newViewport(strokes []geometry.Stroke, size int, pad float64) viewport {
	var all []geometry.Point2D
	for _, s := range strokes {
		all = append(all, s.Points...)
	}
	box := geometry.BoundingBox(all)

	inner := float64(size) - 2*pad
	maxDim := max(box.Width(), box.Height())
	scale := 1.0
	if maxDim > 0 && inner > 0 {
		scale = inner / maxDim
	}

	// Center the drawing along its shorter side.
	offset := geometry.Point2D{
		X: pad + (inner-box.Width()*scale)/2,
		Y: pad + (inner-box.Height()*scale)/2,
	}
	return viewport{scale: scale, offset: offset, min: box.Min}
}

func (v viewport) apply(p geometry.Point2D) geometry.Point2D {
	return p.Sub(v.min).Mul(v.scale).Add(v.offset)
}

func (v viewport) pixel(p geometry.Point2D) image.Point {
	q := v.apply(p)
	return image.Pt(int(q.X+0.5), int(q.Y+0.5))
}
