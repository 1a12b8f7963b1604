package geometry

// Polygon is a closed polygonal chain. The edge between the last and the
// first vertex is implied.
type Polygon []Point

// Polyline is an open polygonal chain with fixed endpoints.
type Polyline []Point

// Area returns the signed area of the polygon in square microns.
// Counter-clockwise polygons have positive area.
func (p Polygon) Area() float64 {
	var twice int64
	for i, v := range p {
		w := p[(i+1)%len(p)]
		twice += v.Cross(w)
	}
	return float64(twice) / 2
}

// Perimeter returns the total edge length of the polygon in microns.
func (p Polygon) Perimeter() float64 {
	var total float64
	for i, v := range p {
		total += v.Sub(p[(i+1)%len(p)]).Size()
	}
	return total
}

// Length returns the total length of the polyline in microns.
func (p Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += p[i].Sub(p[i-1]).Size()
	}
	return total
}

// Bounds returns the bounding box of the points, or false for an empty chain.
func Bounds(points []Point) (min, max Point, ok bool) {
	if len(points) == 0 {
		return Point{}, Point{}, false
	}
	min, max = points[0], points[0]
	for _, p := range points[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max, true
}
