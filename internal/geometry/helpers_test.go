package geometry

import "math"

// squareStroke traces a closed side x side square counter-clockwise from the
// origin, one point every step units, ending back on the origin.
func squareStroke(side, step float64) Stroke {
	var pts []Point2D
	for x := 0.0; x < side; x += step {
		pts = append(pts, Pt(x, 0))
	}
	for y := 0.0; y < side; y += step {
		pts = append(pts, Pt(side, y))
	}
	for x := side; x > 0; x -= step {
		pts = append(pts, Pt(x, side))
	}
	for y := side; y > 0; y -= step {
		pts = append(pts, Pt(0, y))
	}
	pts = append(pts, Pt(0, 0))
	return Stroke{Points: pts}
}

// diagonalStroke returns n collinear points on y = x.
func diagonalStroke(n int) Stroke {
	pts := make([]Point2D, n)
	for i := range pts {
		pts[i] = Pt(float64(i), float64(i))
	}
	return Stroke{Points: pts}
}

// zigzagStroke alternates between y=0 and y=20 every 5 units of x.
func zigzagStroke(n int) Stroke {
	pts := make([]Point2D, n)
	for i := range pts {
		pts[i] = Pt(float64(i)*5, float64(i%2)*20)
	}
	return Stroke{Points: pts}
}

// arcStroke samples n points on the upper half of a circle of radius r.
func arcStroke(n int, r float64) Stroke {
	pts := make([]Point2D, n)
	for i := range pts {
		a := math.Pi * float64(i) / float64(n-1)
		pts[i] = Pt(r*math.Cos(a), r*math.Sin(a))
	}
	return Stroke{Points: pts}
}

// hourglassStroke crosses itself once, at (50, 50).
func hourglassStroke() Stroke {
	return Stroke{Points: []Point2D{
		Pt(0, 0), Pt(100, 100), Pt(100, 0), Pt(0, 100),
	}}
}
