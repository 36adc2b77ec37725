package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSelfIntersections_NoneForMonotonicPaths(t *testing.T) {
	assert.Empty(t, GetSelfIntersections(diagonalStroke(40)))
	assert.Empty(t, GetSelfIntersections(arcStroke(50, 100)))
	assert.Empty(t, GetSelfIntersections(zigzagStroke(30)))
}

func TestGetSelfIntersections_DegenerateInput(t *testing.T) {
	assert.Empty(t, GetSelfIntersections(Stroke{}))
	assert.Empty(t, GetSelfIntersections(Stroke{Points: []Point2D{Pt(1, 1)}}))
	assert.Empty(t, GetSelfIntersections(Stroke{Points: []Point2D{Pt(0, 0), Pt(1, 1), Pt(2, 0)}}))
}

func TestGetSelfIntersections_FigureEight(t *testing.T) {
	got := GetSelfIntersections(hourglassStroke())
	require.Len(t, got, 1)

	x := got[0]
	assert.InDelta(t, 50, x.Point.X, 1e-9)
	assert.InDelta(t, 50, x.Point.Y, 1e-9)
	assert.Equal(t, 0, x.SegA)
	assert.Equal(t, 2, x.SegB)
	assert.InDelta(t, 1, x.DirA.Length(), 1e-12)
	assert.InDelta(t, 1, x.DirB.Length(), 1e-12)
	assert.InDelta(t, 90, x.Angle(), 1e-9)
}

func TestGetSelfIntersections_ParallelSegments(t *testing.T) {
	// Two horizontal passes joined by a vertical hop never cross.
	s := Stroke{Points: []Point2D{Pt(0, 0), Pt(100, 0), Pt(100, 10), Pt(0, 10)}}
	assert.Empty(t, GetSelfIntersections(s))

	// Retracing the same segment is coincident, not crossing.
	s = Stroke{Points: []Point2D{Pt(0, 0), Pt(100, 0), Pt(100, 0), Pt(0, 0)}}
	assert.Empty(t, GetSelfIntersections(s))
}

func TestGetSelfIntersections_ClosedSquareTouchesAtStart(t *testing.T) {
	got := GetSelfIntersections(squareStroke(100, 5))
	require.Len(t, got, 1)
	assert.InDelta(t, 0, got[0].Point.X, 1e-9)
	assert.InDelta(t, 0, got[0].Point.Y, 1e-9)
	assert.InDelta(t, 90, got[0].Angle(), 1e-9)
}

func TestHasSelfIntersection(t *testing.T) {
	assert.True(t, HasSelfIntersection(hourglassStroke()))
	assert.False(t, HasSelfIntersection(arcStroke(20, 10)))
}
