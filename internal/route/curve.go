package route

import "nodal/internal/domain"

// DefaultResolution is the number of samples per smoothed segment
const DefaultResolution = 4

// Smooth resamples a polyline as a uniform Catmull-Rom spline. The first
// and last points are kept exactly and the curve passes through every input
// point. Inputs shorter than three points are returned as a copy.
func Smooth(points []domain.Point, resolution int) []domain.Point {
	if len(points) < 3 {
		return append([]domain.Point(nil), points...)
	}
	if resolution < 1 {
		resolution = DefaultResolution
	}

	out := make([]domain.Point, 0, (len(points)-1)*resolution+1)
	last := len(points) - 1
	for i := 0; i < last; i++ {
		p0 := points[max(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[min(i+2, last)]

		for s := 0; s < resolution; s++ {
			t := float64(s) / float64(resolution)
			out = append(out, catmullRom(p0, p1, p2, p3, t))
		}
	}
	out = append(out, points[last])

	return out
}

func catmullRom(p0, p1, p2, p3 domain.Point, t float64) domain.Point {
	t2 := t * t
	t3 := t2 * t
	f := func(a, b, c, d float64) float64 {
		return 0.5 * (2*b + (-a+c)*t + (2*a-5*b+4*c-d)*t2 + (-a+3*b-3*c+d)*t3)
	}
	return domain.Point{
		X: f(p0.X, p1.X, p2.X, p3.X),
		Y: f(p0.Y, p1.Y, p2.Y, p3.Y),
	}
}

// Length returns the polyline arc length
func Length(points []domain.Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].Dist(points[i])
	}
	return total
}

// PointAt returns the point at fraction t of the arc length. t is clamped
// to [0,1]; an empty polyline yields the zero point.
func PointAt(points []domain.Point, t float64) domain.Point {
	switch {
	case len(points) == 0:
		return domain.Point{}
	case len(points) == 1 || t <= 0:
		return points[0]
	case t >= 1:
		return points[len(points)-1]
	}

	target := Length(points) * t
	acc := 0.0
	for i := 1; i < len(points); i++ {
		seg := points[i-1].Dist(points[i])
		if acc+seg >= target {
			if seg == 0 {
				return points[i]
			}
			return points[i-1].Lerp(points[i], (target-acc)/seg)
		}
		acc += seg
	}
	return points[len(points)-1]
}

// Truncate returns the leading part of the polyline covering fraction t of
// its arc length, ending exactly at PointAt(points, t)
func Truncate(points []domain.Point, t float64) []domain.Point {
	if len(points) < 2 || t >= 1 {
		return append([]domain.Point(nil), points...)
	}
	if t <= 0 {
		return nil
	}

	target := Length(points) * t
	out := []domain.Point{points[0]}
	acc := 0.0
	for i := 1; i < len(points); i++ {
		seg := points[i-1].Dist(points[i])
		if acc+seg >= target {
			if seg > 0 {
				out = append(out, points[i-1].Lerp(points[i], (target-acc)/seg))
			}
			return out
		}
		acc += seg
		out = append(out, points[i])
	}
	return out
}
