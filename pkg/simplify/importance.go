package simplify

import (
	"math"

	"github.com/Catniped/CuraEngine/pkg/extrusion"
	"github.com/Catniped/CuraEngine/pkg/geometry"
)

// unremovable is the importance of a vertex that must be retained.
// The removal threshold can never reach it.
const unremovable = int64(math.MaxInt64)

// importance measures how badly removing vertex i would distort the chain,
// as the squared deviation in square microns. It is a pure function of the
// current geometry and deletion mask; popped queue entries are compared
// against it to detect staleness, so it must stay deterministic.
func (s *Simplifier) importance(chain []extrusion.Junction, deleted []bool, i int, closed, hasWidth bool) int64 {
	if !closed && (i == 0 || i == len(chain)-1) {
		// The endpoints of a polyline are pinned.
		return unremovable
	}
	before := previousAlive(i, deleted)
	after := nextAlive(i, deleted)
	a := chain[before].P
	b := chain[after].P

	gap2 := geometry.Dist2(a, b)
	if gap2 <= minResolution*minResolution {
		// The replacement segment is itself below the resolution floor;
		// collapsing it is always desired.
		return 0
	}
	deviation2 := geometry.Dist2ToSegment(chain[i].P, a, b)
	if deviation2 <= minResolution*minResolution {
		// A deviation this small is never worth a vertex.
		return deviation2
	}
	if hasWidth && s.areaDeviation(chain[before], chain[i], chain[after]) > s.MaxAreaDeviation {
		return unremovable
	}
	if gap2 > int64(s.MaxResolution)*int64(s.MaxResolution) {
		// Removing this vertex would produce a segment already longer than
		// the target resolution, which doesn't reduce anything.
		return unremovable
	}
	return deviation2
}

// areaDeviation estimates how much the covered extrusion area changes when
// the segments before-vertex and vertex-after are replaced by one segment
// with interpolated width. Each segment covers roughly its length times its
// average width.
func (s *Simplifier) areaDeviation(before, vertex, after extrusion.Junction) int64 {
	lengthBefore := vertex.P.Sub(before.P).Size()
	lengthAfter := after.P.Sub(vertex.P).Size()
	lengthJoined := after.P.Sub(before.P).Size()
	removed := lengthBefore*float64(before.Width+vertex.Width)/2 +
		lengthAfter*float64(vertex.Width+after.Width)/2
	replacement := lengthJoined * float64(before.Width+after.Width) / 2
	return int64(math.Abs(removed - replacement))
}

// nextAlive returns the index of the next vertex that is not marked for
// deletion, wrapping around the end of the chain. Polyline endpoints are
// never deleted, so the wrap-around can only be taken for polygons.
func nextAlive(i int, deleted []bool) int {
	for {
		i = (i + 1) % len(deleted)
		if !deleted[i] {
			return i
		}
	}
}

// previousAlive is the counterpart of nextAlive, walking backwards.
func previousAlive(i int, deleted []bool) int {
	for {
		i = (i + len(deleted) - 1) % len(deleted)
		if !deleted[i] {
			return i
		}
	}
}
