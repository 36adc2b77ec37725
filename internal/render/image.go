package render

import (
	"image"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ayusman/sigil/internal/geometry"
)

const markerRadius = 5

// DrawStrokes draws the strokes on a square canvas, each in its own colour.
func DrawStrokes(strokes []geometry.Stroke, size int) image.Image {
	c, vp := newCanvas(strokes, size)
	drawStrokes(c, vp, strokes)
	return c.Image()
}

// DrawReport draws a stroke together with its analysis: the simplified
// polyline, right-angle markers and self-intersection markers.
func DrawReport(stroke geometry.Stroke, report geometry.Report, size int) image.Image {
	strokes := []geometry.Stroke{stroke}
	c, vp := newCanvas(strokes, size)

	drawStrokes(c, vp, strokes)

	if len(report.Simplified) > 1 {
		c.SetLineWidth(1)
		setColor(c, SimplifiedColor)
		drawPolyline(c, vp, report.Simplified)
		c.Stroke()
	}

	setColor(c, RightAngleColor)
	for _, p := range report.RightAngles {
		q := vp.apply(p)
		c.DrawCircle(q.X, q.Y, markerRadius)
		c.Stroke()
	}

	setColor(c, IntersectionColor)
	for _, in := range report.Intersections {
		q := vp.apply(in.Point)
		c.DrawCircle(q.X, q.Y, markerRadius/2)
		c.Fill()
	}

	return c.Image()
}

func newCanvas(strokes []geometry.Stroke, size int) (*gg.Context, viewport) {
	c := gg.NewContext(size, size)
	setColor(c, BackgroundColor)
	c.DrawRectangle(0, 0, float64(size), float64(size))
	c.Fill()
	return c, newViewport(strokes, size, float64(size)/10)
}

func drawStrokes(c *gg.Context, vp viewport, strokes []geometry.Stroke) {
	c.SetLineWidth(3)
	for i, col := range Palette(len(strokes)) {
		if len(strokes[i].Points) == 0 {
			continue
		}
		setColor(c, col)
		if len(strokes[i].Points) == 1 {
			q := vp.apply(strokes[i].Points[0])
			c.DrawCircle(q.X, q.Y, 2)
			c.Fill()
			continue
		}
		drawPolyline(c, vp, strokes[i].Points)
		c.Stroke()
	}
}

func drawPolyline(c *gg.Context, vp viewport, pts []geometry.Point2D) {
	first := vp.apply(pts[0])
	c.MoveTo(first.X, first.Y)
	for _, p := range pts[1:] {
		q := vp.apply(p)
		c.LineTo(q.X, q.Y)
	}
}

func setColor(c *gg.Context, col colorful.Color) {
	r, g, b := col.RGB255()
	c.SetRGB255(int(r), int(g), int(b))
}
