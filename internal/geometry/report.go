package geometry

// Options holds the tolerances used by Analyze.
type Options struct {
	LineWindow          int     // points per straight-line window
	MaxAngleDeviation   float64 // degrees
	RightAngleTolerance float64 // degrees either side of 90
	SimplifyEpsilon     float64 // RDP distance tolerance for the reported polyline
	CloseRatio          float64 // endpoint gap relative to the bounding-box diagonal
}

// DefaultOptions returns the tolerances used when none are configured.
func DefaultOptions() Options {
	return Options{
		LineWindow:          DefaultLineWindow,
		MaxAngleDeviation:   DefaultMaxAngleDeviation,
		RightAngleTolerance: DefaultRightAngleTolerance,
		SimplifyEpsilon:     DefaultSimplifyEpsilon,
		CloseRatio:          DefaultCloseRatio,
	}
}

// Report collects every geometric fact derived from one stroke.
type Report struct {
	Points           int            `json:"points"`
	PathLength       float64        `json:"path_length"`
	ContainsLine     bool           `json:"contains_line"`
	RightAngles      []Point2D      `json:"right_angles"`
	RightAngleCount  int            `json:"right_angle_count"`
	Intersections    []Intersection `json:"intersections"`
	Simplified       []Point2D      `json:"simplified"`
	Closed           bool           `json:"closed"`
	AspectRatio      float64        `json:"aspect_ratio"`
	AverageDirection float64        `json:"average_direction"`
}

// Analyze runs all stroke analyses with the given tolerances.
// Slices in the report are never nil.
func Analyze(stroke Stroke, opts Options) Report {
	r := Report{
		Points:           stroke.Len(),
		PathLength:       PathLength(stroke.Points),
		ContainsLine:     ContainsLine(stroke, opts.LineWindow, opts.MaxAngleDeviation),
		RightAngles:      FindRightAngles(stroke, opts.RightAngleTolerance),
		Intersections:    GetSelfIntersections(stroke),
		Simplified:       SimplifyStroke(stroke, opts.SimplifyEpsilon).Points,
		Closed:           IsClosed(stroke, opts.CloseRatio),
		AspectRatio:      AspectRatio(stroke),
		AverageDirection: AverageDirection(stroke),
	}
	r.RightAngleCount = len(r.RightAngles)

	if r.RightAngles == nil {
		r.RightAngles = []Point2D{}
	}
	if r.Intersections == nil {
		r.Intersections = []Intersection{}
	}
	if r.Simplified == nil {
		r.Simplified = []Point2D{}
	}
	return r
}
