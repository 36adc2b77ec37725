package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/sigil/internal/geometry"
)

func cross() []geometry.Stroke {
	return []geometry.Stroke{
		{Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 100, Y: 50}}},
		{Points: []geometry.Point2D{{X: 0, Y: 50}, {X: 100, Y: 0}}},
	}
}

func TestPalette(t *testing.T) {
	assert.Nil(t, Palette(0))

	colors := Palette(4)
	require.Len(t, colors, 4)
	for i := 1; i < len(colors); i++ {
		assert.NotEqual(t, colors[0].Hex(), colors[i].Hex())
	}
}

func TestViewport_FitsAndCenters(t *testing.T) {
	vp := newViewport(cross(), 200, 20)

	// 100 wide maps onto the 160 pixel inner box.
	assert.InDelta(t, 1.6, vp.scale, 1e-9)

	tl := vp.apply(geometry.Pt(0, 0))
	br := vp.apply(geometry.Pt(100, 50))
	assert.InDelta(t, 20, tl.X, 1e-9)
	assert.InDelta(t, 180, br.X, 1e-9)
	// Height 80 is centered vertically: (160-80)/2 + 20.
	assert.InDelta(t, 60, tl.Y, 1e-9)
	assert.InDelta(t, 140, br.Y, 1e-9)
}

func TestViewport_SinglePoint(t *testing.T) {
	vp := newViewport([]geometry.Stroke{{Points: []geometry.Point2D{{X: 7, Y: 7}}}}, 100, 10)

	assert.Equal(t, 1.0, vp.scale)
	p := vp.apply(geometry.Pt(7, 7))
	assert.InDelta(t, 50, p.X, 1e-9)
	assert.InDelta(t, 50, p.Y, 1e-9)
}

func TestDrawStrokes(t *testing.T) {
	img := DrawStrokes(cross(), 128)

	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())

	// The strokes cross in the middle of the canvas.
	_, _, _, a := img.At(64, 64).RGBA()
	assert.NotZero(t, a)
	bg := rgba(BackgroundColor)
	r, g, b, _ := img.At(64, 64).RGBA()
	assert.False(t, uint8(r>>8) == bg.R && uint8(g>>8) == bg.G && uint8(b>>8) == bg.B,
		"center pixel should be painted by a stroke")
}

func TestDrawReport(t *testing.T) {
	stroke := geometry.Stroke{Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 100, Y: 100}, {X: 100, Y: 0}, {X: 0, Y: 100}}}
	report := geometry.Analyze(stroke, geometry.DefaultOptions())

	img := DrawReport(stroke, report, 200)

	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestThumbnail(t *testing.T) {
	img := DrawStrokes(cross(), 300)

	thumb := Thumbnail(img, 64, 64)

	assert.Equal(t, 64, thumb.Bounds().Dx())
	assert.Equal(t, 64, thumb.Bounds().Dy())
}

func TestCat(t *testing.T) {
	var buf bytes.Buffer

	err := Cat(DrawStrokes(cross(), 64), &buf, 32)

	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestPNG(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping OpenCV test")
	}

	data, err := PNG(cross(), []geometry.Point2D{{X: 50, Y: 25}}, PreviewSize)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, PreviewSize, img.Bounds().Dx())
	assert.Equal(t, PreviewSize, img.Bounds().Dy())
}
