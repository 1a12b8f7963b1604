// Package verify audits a simplified chain against the original it was
// derived from: every original vertex must lie within the configured
// deviation of the simplified chain. The output segments are indexed in a
// quadtree so large chains can be audited without comparing every vertex
// against every segment.
package verify

import (
	"math"

	"github.com/asim/quadtree"

	"github.com/Catniped/CuraEngine/pkg/geometry"
)

// Violation reports an original vertex that ended up too far from the
// simplified chain.
type Violation struct {
	Index    int // index of the vertex in the original chain
	Point    geometry.Point
	Distance float64 // microns to the nearest output segment
}

// Check returns a violation for every vertex of original that lies farther
// than limit from the nearest segment of simplified. A nil result means the
// deviation bound holds.
func Check(original, simplified []geometry.Point, closed bool, limit geometry.Coord) []Violation {
	tree := newSegmentTree(simplified, closed)
	if tree == nil {
		return nil
	}
	var violations []Violation
	for i, p := range original {
		d := tree.distance(p)
		if d > float64(limit) {
			violations = append(violations, Violation{Index: i, Point: p, Distance: d})
		}
	}
	return violations
}

// MaxDeviation returns the largest distance from any original vertex to the
// simplified chain, in microns.
func MaxDeviation(original, simplified []geometry.Point, closed bool) float64 {
	tree := newSegmentTree(simplified, closed)
	if tree == nil {
		return math.Inf(1)
	}
	worst := 0.0
	for _, p := range original {
		if d := tree.distance(p); d > worst {
			worst = d
		}
	}
	return worst
}

type segment struct {
	a, b geometry.Point
}

// segmentTree indexes the segments of a chain by their midpoints.
type segmentTree struct {
	tree *quadtree.QuadTree
	segs []segment
	// half the length of the longest segment; searches must reach at least
	// this far past the target distance to be exhaustive
	reach float64
	half  float64 // half diagonal of the bounding box, the search cap
}

func newSegmentTree(points []geometry.Point, closed bool) *segmentTree {
	if len(points) < 2 {
		return nil
	}
	min, max, _ := geometry.Bounds(points)
	midX := float64(min.X+max.X) / 2
	midY := float64(min.Y+max.Y) / 2
	halfWidth := float64(max.X-min.X)/2 + 10 // margin against edge drops
	halfHeight := float64(max.Y-min.Y)/2 + 10
	aabb := quadtree.NewAABB(
		quadtree.NewPoint(midX, midY, nil),
		quadtree.NewPoint(halfWidth, halfHeight, nil))
	t := &segmentTree{
		tree: quadtree.New(aabb, 0, nil),
		half: math.Hypot(halfWidth, halfHeight),
	}

	count := len(points) - 1
	if closed {
		count = len(points)
	}
	for i := 0; i < count; i++ {
		seg := segment{a: points[i], b: points[(i+1)%len(points)]}
		index := len(t.segs)
		t.segs = append(t.segs, seg)
		mx := float64(seg.a.X+seg.b.X) / 2
		my := float64(seg.a.Y+seg.b.Y) / 2
		t.tree.Insert(quadtree.NewPoint(mx, my, index))
		if r := seg.a.Sub(seg.b).Size() / 2; r > t.reach {
			t.reach = r
		}
	}
	return t
}

// distance returns the distance from p to the nearest indexed segment. The
// search box is widened until a segment is found, then widened once more by
// the longest half-segment so no closer segment can hide just outside it.
func (t *segmentTree) distance(p geometry.Point) float64 {
	x := float64(p.X)
	y := float64(p.Y)
	radius := t.reach + 10
	for {
		search := quadtree.NewAABB(
			quadtree.NewPoint(x, y, nil),
			quadtree.NewPoint(radius, radius, nil))
		found := t.tree.Search(search)
		if len(found) > 0 {
			best := math.Inf(1)
			for _, candidate := range found {
				seg := t.segs[candidate.Data().(int)]
				d2 := geometry.Dist2ToSegment(p, seg.a, seg.b)
				if d := math.Sqrt(float64(d2)); d < best {
					best = d
				}
			}
			if best <= radius-t.reach {
				return best
			}
			// The nearest hit doesn't rule out segments whose midpoints sit
			// outside the box. Widen and retry.
		}
		if radius > 2*t.half {
			return t.bruteForce(p)
		}
		radius *= 2
	}
}

func (t *segmentTree) bruteForce(p geometry.Point) float64 {
	best := math.Inf(1)
	for _, seg := range t.segs {
		d2 := geometry.Dist2ToSegment(p, seg.a, seg.b)
		if d := math.Sqrt(float64(d2)); d < best {
			best = d
		}
	}
	return best
}
