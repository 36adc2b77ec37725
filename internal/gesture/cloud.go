package gesture

import (
	"errors"
	"fmt"

	"github.com/ayusman/sigil/internal/geometry"
)

// Normalization defaults.
const (
	// DefaultResolution is the number of points every cloud is resampled to.
	DefaultResolution = 256
	// DefaultSize is the side of the square clouds are scaled into.
	DefaultSize = 1.0
)

var (
	// ErrInsufficientData is returned when a cloud has fewer than 2 points.
	ErrInsufficientData = errors.New("at least 2 points are required")
	// ErrDegeneratePath is returned when a path has zero length.
	ErrDegeneratePath = errors.New("path has zero length")
	// ErrInvalidResolution is returned when fewer than 2 output points are requested.
	ErrInvalidResolution = errors.New("resolution must be at least 2")
	// ErrLengthMismatch is returned when two clouds of different sizes are compared.
	ErrLengthMismatch = errors.New("point clouds must be the same length")
)

// Resample returns exactly n points spaced at equal arc-length intervals
// along the polyline. The input is not modified.
func Resample(points []geometry.Point2D, n int) ([]geometry.Point2D, error) {
	if n < 2 {
		return nil, ErrInvalidResolution
	}
	if len(points) < 2 {
		return nil, ErrInsufficientData
	}
	length := geometry.PathLength(points)
	if length == 0 {
		return nil, ErrDegeneratePath
	}

	interval := length / float64(n-1)
	out := make([]geometry.Point2D, 0, n)
	out = append(out, points[0])

	// prev is the start of the segment being walked. After an emission it is
	// the emitted point, so the rest of the segment is measured from there.
	prev := points[0]
	walked := 0.0
	for i := 1; i < len(points); {
		next := points[i]
		d := prev.Distance(next)
		if d > 0 && walked+d >= interval {
			q := prev.Lerp(next, (interval-walked)/d)
			out = append(out, q)
			prev = q
			walked = 0
			continue
		}
		walked += d
		prev = next
		i++
	}

	last := points[len(points)-1]
	for len(out) < n {
		out = append(out, last)
	}
	return out[:n], nil
}

// TranslateToOrigin returns the points shifted so their centroid is (0, 0).
func TranslateToOrigin(points []geometry.Point2D) []geometry.Point2D {
	c := geometry.Centroid(points)
	out := make([]geometry.Point2D, len(points))
	for i, p := range points {
		out[i] = p.Sub(c)
	}
	return out
}

// ScaleToSquare returns the points anchored at their bounding box's minimum
// corner and divided by the box's larger side, so the larger side becomes
// size and the aspect ratio is kept. A cloud with an empty bounding box maps
// every point to the origin.
func ScaleToSquare(points []geometry.Point2D, size float64) []geometry.Point2D {
	box := geometry.BoundingBox(points)
	maxDim := max(box.Width(), box.Height())

	out := make([]geometry.Point2D, len(points))
	for i, p := range points {
		if maxDim == 0 {
			continue
		}
		out[i] = p.Sub(box.Min).Mul(size / maxDim)
	}
	return out
}

// Normalize runs the full pipeline: Resample to n points, TranslateToOrigin,
// then ScaleToSquare. The order is fixed; template distances depend on it.
func Normalize(points []geometry.Point2D, n int, size float64) ([]geometry.Point2D, error) {
	resampled, err := Resample(points, n)
	if err != nil {
		return nil, fmt.Errorf("failed to resample: %w", err)
	}
	return ScaleToSquare(TranslateToOrigin(resampled), size), nil
}

// CloudDistance returns the sum of Euclidean distances between points at the
// same index of two equal-length clouds.
func CloudDistance(a, b []geometry.Point2D) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}
	var d float64
	for i := range a {
		d += a[i].Distance(b[i])
	}
	return d, nil
}
