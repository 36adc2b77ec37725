// Package geometry provides stroke primitives and the structural analysis of
// freehand strokes: straight runs, right angles, self-intersections and
// Ramer-Douglas-Peucker simplification.
package geometry

import "math"

// Point2D is a point or vector in the drawing surface's local space.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a convenience function to create a Point2D.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Add returns the vector sum p+q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector difference p-q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns p scaled by s.
func (p Point2D) Mul(s float64) Point2D {
	return Point2D{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of two vectors.
func (p Point2D) Dot(q Point2D) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the 3D cross product.
func (p Point2D) Cross(q Point2D) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point2D) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance between two points.
func (p Point2D) Distance(q Point2D) float64 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (p Point2D) Normalize() Point2D {
	l := p.Length()
	if l == 0 {
		return Point2D{}
	}
	return Point2D{X: p.X / l, Y: p.Y / l}
}

// Lerp interpolates linearly between p (t=0) and q (t=1).
func (p Point2D) Lerp(q Point2D, t float64) Point2D {
	return Point2D{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// AngleBetween returns the unsigned angle between two vectors in degrees,
// in the range [0, 180]. If either vector has zero length the angle is 0.
func AngleBetween(a, b Point2D) float64 {
	if a.Length() == 0 || b.Length() == 0 {
		return 0
	}
	// atan2 stays accurate near 0 and 180 where acos of the cosine does not.
	return math.Atan2(math.Abs(a.Cross(b)), a.Dot(b)) * 180 / math.Pi
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min Point2D `json:"min"`
	Max Point2D `json:"max"`
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of the box.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Stroke is the ordered path traced by the pointer. Functions in this
// package never modify a Stroke's points; they return new strokes.
type Stroke struct {
	Points []Point2D `json:"points"`
}

// NewStroke returns a stroke holding a copy of points.
func NewStroke(points []Point2D) Stroke {
	return Stroke{Points: clonePoints(points)}
}

// Len returns the number of points in the stroke.
func (s Stroke) Len() int {
	return len(s.Points)
}

// Clone returns a deep copy of the stroke.
func (s Stroke) Clone() Stroke {
	return Stroke{Points: clonePoints(s.Points)}
}

// PathLength returns the total length of the polyline.
func PathLength(points []Point2D) float64 {
	var d float64
	for i := 1; i < len(points); i++ {
		d += points[i-1].Distance(points[i])
	}
	return d
}

// Centroid returns the arithmetic mean of the points.
// The zero point is returned for an empty slice.
func Centroid(points []Point2D) Point2D {
	if len(points) == 0 {
		return Point2D{}
	}
	var x, y float64
	for _, p := range points {
		x += p.X
		y += p.Y
	}
	n := float64(len(points))
	return Point2D{X: x / n, Y: y / n}
}

// BoundingBox returns the smallest axis-aligned box containing all points.
// The zero Rect is returned for an empty slice.
func BoundingBox(points []Point2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

func clonePoints(points []Point2D) []Point2D {
	if points == nil {
		return nil
	}
	out := make([]Point2D, len(points))
	copy(out, points)
	return out
}
