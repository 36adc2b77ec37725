// Package svgio reads and writes strokes as SVG polylines.
package svgio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"

	"github.com/ayusman/sigil/internal/geometry"
)

// ErrNoStrokes is returned when a document holds no polyline or polygon.
var ErrNoStrokes = errors.New("no polyline or polygon elements found")

// Document is the stroke content of one SVG file.
type Document struct {
	Title   string
	Strokes []geometry.Stroke
}

// Parse reads every <polyline> and <polygon> element as a stroke. Polygons
// are closed by repeating their first point.
func Parse(r io.Reader) (*Document, error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	doc := &Document{}
	if titles := root.FindAll("title"); len(titles) > 0 {
		doc.Title = strings.TrimSpace(titles[0].Content)
	}

	for _, el := range root.FindAll("polyline") {
		pts, err := ParsePoints(el.Attributes["points"])
		if err != nil {
			return nil, err
		}
		doc.Strokes = append(doc.Strokes, geometry.Stroke{Points: pts})
	}
	for _, el := range root.FindAll("polygon") {
		pts, err := ParsePoints(el.Attributes["points"])
		if err != nil {
			return nil, err
		}
		if len(pts) > 0 {
			pts = append(pts, pts[0])
		}
		doc.Strokes = append(doc.Strokes, geometry.Stroke{Points: pts})
	}

	if len(doc.Strokes) == 0 {
		return nil, ErrNoStrokes
	}
	return doc, nil
}

// ParsePoints parses an SVG points attribute such as "0,0 10,5 20,0".
// Coordinates may be separated by commas, whitespace or both.
func ParsePoints(s string) ([]geometry.Point2D, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates in %q", s)
	}

	pts := make([]geometry.Point2D, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x value %q: %w", fields[i], err)
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y value %q: %w", fields[i+1], err)
		}
		pts = append(pts, geometry.Pt(x, y))
	}
	return pts, nil
}

// Encode writes strokes as an SVG document with one polyline per stroke.
func Encode(title string, strokes []geometry.Stroke) []byte {
	var all []geometry.Point2D
	for _, s := range strokes {
		all = append(all, s.Points...)
	}
	box := geometry.BoundingBox(all)

	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`+"\n",
		formatFloat(box.Min.X), formatFloat(box.Min.Y), formatFloat(box.Width()), formatFloat(box.Height()))
	if title != "" {
		fmt.Fprintf(&b, "  <title>%s</title>\n", escape(title))
	}
	for _, s := range strokes {
		coords := make([]string, len(s.Points))
		for i, p := range s.Points {
			coords[i] = formatFloat(p.X) + "," + formatFloat(p.Y)
		}
		fmt.Fprintf(&b, `  <polyline fill="none" stroke="black" points="%s"/>`+"\n", strings.Join(coords, " "))
	}
	b.WriteString("</svg>\n")
	return b.Bytes()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return escaper.Replace(s)
}
