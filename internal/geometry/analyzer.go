package geometry

import "math"

// Default tolerances for stroke analysis.
const (
	DefaultLineWindow          = 40
	DefaultMaxAngleDeviation   = 3.0
	DefaultRightAngleTolerance = 10.0
	DefaultSimplifyEpsilon     = 10.0
	DefaultCloseRatio          = 0.1
)

// ContainsLine reports whether any run of windowSize consecutive points is
// straight: every intermediate point's heading from the run's first point
// deviates from the first-to-last heading by at most maxAngleDeviation
// degrees. A run whose first and last points coincide is never straight.
func ContainsLine(stroke Stroke, windowSize int, maxAngleDeviation float64) bool {
	pts := stroke.Points
	if windowSize < 2 || len(pts) < windowSize {
		return false
	}

	for i := 0; i+windowSize <= len(pts); i++ {
		start := pts[i]
		ref := pts[i+windowSize-1].Sub(start)
		if ref.Length() == 0 {
			continue
		}

		straight := true
		for j := i + 1; j < i+windowSize-1; j++ {
			if AngleBetween(ref, pts[j].Sub(start)) > maxAngleDeviation {
				straight = false
				break
			}
		}
		if straight {
			return true
		}
	}

	return false
}

// FindRightAngles locates the right angles of a stroke. The stroke is first
// simplified with DefaultSimplifyEpsilon; every interior corner of the
// simplified polyline within angleTolerance degrees of 90 is a right angle.
// Self-intersections of the original stroke whose crossing angle is within
// the same tolerance are added, except those lying within
// DefaultSimplifyEpsilon of a corner already counted, which are the same
// physical angle seen twice.
//
// A stroke that simplifies to fewer than 3 points has no right angles.
func FindRightAngles(stroke Stroke, angleTolerance float64) []Point2D {
	simplified := SimplifyStroke(stroke, DefaultSimplifyEpsilon).Points
	if len(simplified) < 3 {
		return nil
	}

	var found []Point2D
	for i := 1; i < len(simplified)-1; i++ {
		p := simplified[i]
		angle := AngleBetween(simplified[i-1].Sub(p), simplified[i+1].Sub(p))
		if isRightAngle(angle, angleTolerance) {
			found = append(found, p)
		}
	}
	corners := len(found)

	for _, x := range GetSelfIntersections(stroke) {
		if !isRightAngle(x.Angle(), angleTolerance) {
			continue
		}
		if nearAny(x.Point, found[:corners], DefaultSimplifyEpsilon) {
			continue
		}
		found = append(found, x.Point)
	}

	return found
}

// CountRightAngles returns the number of right angles FindRightAngles locates.
func CountRightAngles(stroke Stroke, angleTolerance float64) int {
	return len(FindRightAngles(stroke, angleTolerance))
}

// ContainsRightAngle reports whether the stroke has at least one right angle.
func ContainsRightAngle(stroke Stroke, angleTolerance float64) bool {
	return CountRightAngles(stroke, angleTolerance) > 0
}

func isRightAngle(angle, tolerance float64) bool {
	return math.Abs(angle-90) <= tolerance
}

func nearAny(p Point2D, points []Point2D, radius float64) bool {
	for _, q := range points {
		if p.Distance(q) <= radius {
			return true
		}
	}
	return false
}
