// Package extrusion holds the variable-width representation of toolpaths.
// Unlike a plain polygon, every vertex of an extrusion line carries the local
// line width to extrude at that point.
package extrusion

import (
	"github.com/Catniped/CuraEngine/pkg/geometry"
)

// Junction is one vertex of an extrusion line: a position plus the width of
// the extruded line at that position.
type Junction struct {
	P     geometry.Point
	Width geometry.Coord
	// Perimeter is the index of the perimeter (inset) this junction belongs
	// to, counted from the outer wall inward.
	Perimeter int
}

// Line is a polygonal chain of junctions. When Closed, the last junction
// connects back to the first one.
type Line struct {
	Junctions []Junction
	Closed    bool
	// Odd marks a line that fills a gap by itself rather than being one side
	// of a wall pair.
	Odd bool
}

// Points returns just the positions of the line's junctions.
func (l Line) Points() []geometry.Point {
	pts := make([]geometry.Point, len(l.Junctions))
	for i, j := range l.Junctions {
		pts[i] = j.P
	}
	return pts
}

// Length returns the path length of the line in microns.
func (l Line) Length() float64 {
	var total float64
	for i := 1; i < len(l.Junctions); i++ {
		total += l.Junctions[i].P.Sub(l.Junctions[i-1].P).Size()
	}
	if l.Closed && len(l.Junctions) > 1 {
		total += l.Junctions[0].P.Sub(l.Junctions[len(l.Junctions)-1].P).Size()
	}
	return total
}
