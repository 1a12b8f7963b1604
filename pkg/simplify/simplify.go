// Package simplify reduces the resolution of polygons and polylines under
// deviation constraints, so that downstream path generation works on as few
// vertices as possible.
//
// Vertices are eliminated one at a time, least important first, where the
// importance of a vertex is the squared deviation its removal would
// introduce. Candidates are kept in a priority queue whose entries are not
// updated when a neighbouring vertex disappears; instead the importance is
// recomputed when an entry is popped, and stale entries are requeued. The
// simplified result is subject to these constraints:
//
//   - The path deviates no more than MaxDeviation from the original path.
//   - For variable-width lines, the covered extrusion area changes by no more
//     than MaxAreaDeviation per removal.
//   - Segments shorter than MaxResolution are candidates for merging.
//   - Vertices whose removal deviates less than 5 microns, and segments
//     shorter than 5 microns, are always collapsed.
package simplify

import (
	"container/heap"

	"github.com/Catniped/CuraEngine/pkg/extrusion"
	"github.com/Catniped/CuraEngine/pkg/geometry"
	"github.com/Catniped/CuraEngine/pkg/settings"
)

// minResolution is the resolution floor in microns, regardless of the
// configured thresholds, to allow for rounding errors.
const minResolution = 5

// Simplifier holds the simplification parameters. One Simplifier may be used
// for any number of chains; each call works on its own copy of the input, so
// independent chains can be simplified concurrently.
type Simplifier struct {
	// MaxResolution is the segment length the output aims for. Segments
	// shorter than this are considered for joining with their neighbours.
	MaxResolution geometry.Coord
	// MaxDeviation is how far the simplified path may deviate from the
	// original, in microns.
	MaxDeviation geometry.Coord
	// MaxAreaDeviation is how much the covered area of a variable-width line
	// may change per removed vertex, in square microns.
	MaxAreaDeviation int64
}

// NewSimplifier returns a Simplifier with the given thresholds.
// Lengths are in microns, the area deviation in square microns.
func NewSimplifier(maxResolution, maxDeviation geometry.Coord, maxAreaDeviation int64) *Simplifier {
	return &Simplifier{
		MaxResolution:    maxResolution,
		MaxDeviation:     maxDeviation,
		MaxAreaDeviation: maxAreaDeviation,
	}
}

// FromSettings constructs a Simplifier from the named resolution settings.
func FromSettings(s settings.Settings) *Simplifier {
	return NewSimplifier(
		s.Coord(settings.KeyMaxResolution),
		s.Coord(settings.KeyMaxDeviation),
		s.Area(settings.KeyMaxAreaDeviation),
	)
}

// Polygon simplifies a closed chain. Polygons with fewer than 3 vertices are
// degenerate and come back empty; a polygon of exactly 3 vertices is
// returned as-is.
func (s *Simplifier) Polygon(polygon geometry.Polygon) geometry.Polygon {
	out := s.simplify(fixedJunctions(polygon), true, false)
	return positions(out)
}

// Polyline simplifies an open chain. The endpoints are never altered.
func (s *Simplifier) Polyline(polyline geometry.Polyline) geometry.Polyline {
	out := s.simplify(fixedJunctions(polyline), false, false)
	return positions(out)
}

// ExtrusionPolygon simplifies a closed variable-width chain.
func (s *Simplifier) ExtrusionPolygon(line extrusion.Line) extrusion.Line {
	junctions := make([]extrusion.Junction, len(line.Junctions))
	copy(junctions, line.Junctions)
	return extrusion.Line{
		Junctions: s.simplify(junctions, true, true),
		Closed:    true,
		Odd:       line.Odd,
	}
}

// ExtrusionPolyline simplifies an open variable-width chain. The endpoints
// are never altered.
func (s *Simplifier) ExtrusionPolyline(line extrusion.Line) extrusion.Line {
	junctions := make([]extrusion.Junction, len(line.Junctions))
	copy(junctions, line.Junctions)
	return extrusion.Line{
		Junctions: s.simplify(junctions, false, true),
		Closed:    false,
		Odd:       line.Odd,
	}
}

// simplify is the main algorithm. The chain must be a private copy: fusion
// shifts surviving vertices in place. hasWidth enables the area deviation
// constraint for variable-width chains.
func (s *Simplifier) simplify(chain []extrusion.Junction, closed, hasWidth bool) []extrusion.Junction {
	minSize := 2
	if closed {
		minSize = 3
	}
	if len(chain) < minSize {
		// A polygon of 2 or fewer vertices, or a polyline of 1, is
		// degenerate. Drop it.
		return nil
	}
	if len(chain) == minSize {
		return chain
	}

	deleted := make([]bool, len(chain))
	queue := make(importanceQueue, len(chain))
	for i := range chain {
		queue[i] = queueEntry{index: i, importance: s.importance(chain, deleted, i, closed, hasWidth)}
	}
	heap.Init(&queue)

	// Deviations at or below the resolution floor are always collapsed, even
	// when MaxDeviation is configured tighter than that.
	threshold := int64(s.MaxDeviation) * int64(s.MaxDeviation)
	if threshold < minResolution*minResolution {
		threshold = minResolution * minResolution
	}

	// Pop the least important vertex until only the minimum chain remains in
	// the queue. A popped entry whose stored importance no longer matches the
	// current geometry is stale: a neighbour was removed since it was queued.
	// Requeue it with the fresh value and try again. A confirmed entry either
	// gets removed or, above the threshold, is dropped for good; every vertex
	// is therefore acted on at most once, bounding the sweep to O(n log n).
	for queue.Len() > minSize {
		entry := heap.Pop(&queue).(queueEntry)
		fresh := s.importance(chain, deleted, entry.index, closed, hasWidth)
		if fresh != entry.importance {
			heap.Push(&queue, queueEntry{index: entry.index, importance: fresh})
			continue
		}
		if fresh <= threshold {
			s.remove(chain, deleted, entry.index, fresh, closed)
		}
	}

	filtered := make([]extrusion.Junction, 0, queue.Len())
	for i, junction := range chain {
		if !deleted[i] {
			filtered = append(filtered, junction)
		}
	}
	return filtered
}

func fixedJunctions(points []geometry.Point) []extrusion.Junction {
	junctions := make([]extrusion.Junction, len(points))
	for i, p := range points {
		junctions[i] = extrusion.Junction{P: p}
	}
	return junctions
}

func positions(junctions []extrusion.Junction) []geometry.Point {
	if junctions == nil {
		return nil
	}
	points := make([]geometry.Point, len(junctions))
	for i, j := range junctions {
		points[i] = j.P
	}
	return points
}
