package geometry

import "math"

// IsClosed reports whether the stroke ends where it started: it has at least
// 3 points and the gap between its endpoints is at most ratio times the
// diagonal of its bounding box.
func IsClosed(stroke Stroke, ratio float64) bool {
	pts := stroke.Points
	if len(pts) < 3 {
		return false
	}
	box := BoundingBox(pts)
	diag := math.Hypot(box.Width(), box.Height())
	if diag == 0 {
		return false
	}
	return pts[0].Distance(pts[len(pts)-1]) <= ratio*diag
}

// AspectRatio returns the width/height ratio of the stroke's bounding box.
// It is 1 when the box is empty and 0 when only the height is zero.
func AspectRatio(stroke Stroke) float64 {
	box := BoundingBox(stroke.Points)
	w, h := box.Width(), box.Height()
	switch {
	case w == 0 && h == 0:
		return 1
	case h == 0:
		return 0
	}
	return w / h
}

// AverageDirection returns the heading of the net displacement from the first
// to the last point, in degrees within [0, 360).
func AverageDirection(stroke Stroke) float64 {
	pts := stroke.Points
	if len(pts) < 2 {
		return 0
	}
	net := pts[len(pts)-1].Sub(pts[0])
	if net.Length() == 0 {
		return 0
	}
	deg := math.Atan2(net.Y, net.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// HasSelfIntersection reports whether any two non-adjacent segments cross.
func HasSelfIntersection(stroke Stroke) bool {
	return len(GetSelfIntersections(stroke)) > 0
}
