package geometry

import "math"

// SimplifyStroke reduces a stroke to a minimal polyline with the
// Ramer-Douglas-Peucker algorithm. A point survives only if it lies more than
// epsilon away from the line joining the endpoints of the span being
// considered. The first and last points are always kept unchanged.
//
// Strokes with fewer than 3 points are returned as a copy.
func SimplifyStroke(stroke Stroke, epsilon float64) Stroke {
	pts := stroke.Points
	if len(pts) < 3 {
		return stroke.Clone()
	}
	return Stroke{Points: simplifyRange(pts, 0, len(pts)-1, epsilon)}
}

// simplifyRange returns the simplified points of pts[start..end] inclusive.
// pts is never written to, so the index ranges stay valid throughout.
func simplifyRange(pts []Point2D, start, end int, epsilon float64) []Point2D {
	worst := -1
	worstDist := 0.0
	for i := start + 1; i < end; i++ {
		d := PerpendicularDistance(pts[i], pts[start], pts[end])
		if d > worstDist {
			worst = i
			worstDist = d
		}
	}

	if worst < 0 || worstDist <= epsilon {
		return []Point2D{pts[start], pts[end]}
	}

	lefts := simplifyRange(pts, start, worst, epsilon)
	rights := simplifyRange(pts, worst, end, epsilon)
	// rights[0] is the split point, already the last element of lefts.
	return append(lefts, rights[1:]...)
}

// PerpendicularDistance returns the distance from p to the infinite line
// through a and b. When a and b coincide it falls back to the distance
// between p and a.
func PerpendicularDistance(p, a, b Point2D) float64 {
	ab := b.Sub(a)
	l := ab.Length()
	if l == 0 {
		return p.Distance(a)
	}
	return math.Abs(ab.Cross(p.Sub(a))) / l
}
