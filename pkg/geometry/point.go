package geometry

import (
	"math"
)

// Coord is a length in microns. All geometry operates on fixed-precision
// integer coordinates; one unit is one micron.
type Coord int64

// Point is a 2D point (or vector) in integer microns.
type Point struct {
	X Coord
	Y Coord
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dot returns the dot product of p and q as a 64-bit value.
// Coordinates up to ~10^8 microns stay clear of overflow.
func (p Point) Dot(q Point) int64 {
	return int64(p.X)*int64(q.X) + int64(p.Y)*int64(q.Y)
}

// Cross returns the z component of the cross product of p and q.
func (p Point) Cross(q Point) int64 {
	return int64(p.X)*int64(q.Y) - int64(p.Y)*int64(q.X)
}

// Size2 returns the squared length of p as a vector.
func (p Point) Size2() int64 {
	return p.Dot(p)
}

// Size returns the length of p as a vector.
func (p Point) Size() float64 {
	return math.Sqrt(float64(p.Size2()))
}

// Dist2 returns the squared distance between two points.
func Dist2(p, q Point) int64 {
	return p.Sub(q).Size2()
}

// Dist2ToSegment returns the squared distance from p to the line segment a-b.
// If the projection of p falls outside the segment, the distance to the
// nearest endpoint is returned.
//
// The cross product is exact in int64; only the final division is done in
// floating point, so results are deterministic for a given input.
func Dist2ToSegment(p, a, b Point) int64 {
	ab := b.Sub(a)
	ap := p.Sub(a)
	len2 := ab.Size2()
	if len2 == 0 {
		// Degenerate segment.
		return ap.Size2()
	}
	dot := ap.Dot(ab)
	if dot <= 0 {
		return ap.Size2()
	}
	if dot >= len2 {
		return p.Sub(b).Size2()
	}
	cross := ap.Cross(ab)
	return int64(float64(cross) * float64(cross) / float64(len2))
}
