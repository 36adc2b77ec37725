package geometry

import "math"

const (
	// parallelEpsilon is the determinant magnitude below which two segments
	// are treated as parallel or coincident.
	parallelEpsilon = 1e-6

	// boundsEpsilon widens each segment's bounding box when accepting a
	// candidate intersection point.
	boundsEpsilon = 1e-6
)

// Intersection describes where two non-adjacent segments of one stroke cross.
type Intersection struct {
	Point Point2D `json:"point"`
	DirA  Point2D `json:"dir_a"` // unit direction of the earlier segment
	DirB  Point2D `json:"dir_b"` // unit direction of the later segment
	SegA  int     `json:"seg_a"` // index of the earlier segment's first point
	SegB  int     `json:"seg_b"` // index of the later segment's first point
}

// Angle returns the angle between the two crossing segments in degrees.
func (x Intersection) Angle() float64 {
	return AngleBetween(x.DirA, x.DirB)
}

// GetSelfIntersections returns every crossing between non-adjacent segments
// of the stroke, ordered by segment index.
//
// A candidate point is accepted when it lies within the bounding boxes of both
// segments, so a point near the end of one segment on a nearly parallel
// neighbour can be reported even though it is just past the segment end.
func GetSelfIntersections(stroke Stroke) []Intersection {
	pts := stroke.Points
	var out []Intersection
	for i := 0; i+1 < len(pts); i++ {
		for j := i + 2; j+1 < len(pts); j++ {
			p, ok := segmentIntersection(pts[i], pts[i+1], pts[j], pts[j+1])
			if !ok {
				continue
			}
			out = append(out, Intersection{
				Point: p,
				DirA:  pts[i+1].Sub(pts[i]).Normalize(),
				DirB:  pts[j+1].Sub(pts[j]).Normalize(),
				SegA:  i,
				SegB:  j,
			})
		}
	}
	return out
}

// segmentIntersection intersects segment p1-p2 with p3-p4.
func segmentIntersection(p1, p2, p3, p4 Point2D) (Point2D, bool) {
	det := (p1.X-p2.X)*(p3.Y-p4.Y) - (p1.Y-p2.Y)*(p3.X-p4.X)
	if math.Abs(det) < parallelEpsilon {
		return Point2D{}, false
	}

	a := p1.X*p2.Y - p1.Y*p2.X
	b := p3.X*p4.Y - p3.Y*p4.X
	p := Point2D{
		X: (a*(p3.X-p4.X) - (p1.X-p2.X)*b) / det,
		Y: (a*(p3.Y-p4.Y) - (p1.Y-p2.Y)*b) / det,
	}

	if !withinBounds(p, p1, p2) || !withinBounds(p, p3, p4) {
		return Point2D{}, false
	}
	return p, true
}

func withinBounds(p, a, b Point2D) bool {
	return p.X >= math.Min(a.X, b.X)-boundsEpsilon &&
		p.X <= math.Max(a.X, b.X)+boundsEpsilon &&
		p.Y >= math.Min(a.Y, b.Y)-boundsEpsilon &&
		p.Y <= math.Max(a.Y, b.Y)+boundsEpsilon
}
