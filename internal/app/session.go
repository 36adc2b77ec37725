package app

import (
	"sync"

	"github.com/ayusman/sigil/internal/geometry"
)

// Session buffers the points of the stroke currently being drawn.
type Session struct {
	minDistance float64
	maxPoints   int
	points      []geometry.Point2D
	mu          sync.Mutex
}

// NewSession creates a capture buffer. Points closer than minDistance to the
// previous point are dropped; at most maxPoints are kept, oldest first out.
func NewSession(minDistance float64, maxPoints int) *Session {
	return &Session{
		minDistance: minDistance,
		maxPoints:   maxPoints,
	}
}

// AddPoint appends p to the stroke. It reports whether the point was kept.
func (s *Session) AddPoint(p geometry.Point2D) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.points); n > 0 && s.points[n-1].Distance(p) < s.minDistance {
		return false
	}

	if s.maxPoints > 0 && len(s.points) >= s.maxPoints {
		// Shift left by 1, removing the oldest point
		copy(s.points, s.points[1:])
		s.points = s.points[:s.maxPoints-1]
	}
	s.points = append(s.points, p)
	return true
}

// Len returns the number of buffered points.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.points)
}

// Stroke returns a copy of the stroke drawn so far.
func (s *Session) Stroke() geometry.Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()
	return geometry.NewStroke(s.points)
}

// End returns the finished stroke and starts a new one.
func (s *Session) End() geometry.Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()

	stroke := geometry.Stroke{Points: s.points}
	if stroke.Points == nil {
		stroke.Points = []geometry.Point2D{}
	}
	s.points = nil
	return stroke
}

// Clear discards the buffered points.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = nil
}
