package simplify

import (
	"github.com/Catniped/CuraEngine/pkg/extrusion"
	"github.com/Catniped/CuraEngine/pkg/geometry"
)

// remove executes a confirmed removal of vertex i with squared deviation
// deviation2. Usually that just marks i in the deletion mask. When one of the
// edges adjacent to i is shorter than MaxResolution, deleting i alone would
// land the replacement segment right next to the short edge's far endpoint;
// fusing the short edge instead can keep the path closer to the original:
// the edge's far endpoint is marked deleted and i survives, shifted to the
// fused position (widths averaged for variable-width chains). Out of the two
// options, the one that deviates least from the four surrounding edges wins.
// Only the mask and the one surviving vertex are ever mutated.
func (s *Simplifier) remove(chain []extrusion.Junction, deleted []bool, i int, deviation2 int64, closed bool) {
	if deleted[i] {
		// The vertex was already folded into an earlier fusion; its queue
		// entry just hadn't been popped yet.
		return
	}
	if deviation2 <= minResolution*minResolution {
		// Below the resolution floor nothing can be gained by shifting
		// vertices around. Just delete.
		deleted[i] = true
		return
	}

	before := previousAlive(i, deleted)
	after := nextAlive(i, deleted)
	edgeBefore2 := geometry.Dist2(chain[before].P, chain[i].P)
	edgeAfter2 := geometry.Dist2(chain[i].P, chain[after].P)
	maxResolution2 := int64(s.MaxResolution) * int64(s.MaxResolution)
	if edgeBefore2 > maxResolution2 && edgeAfter2 > maxResolution2 {
		// Both adjacent segments are longer than the target resolution;
		// neither is a candidate for merging.
		deleted[i] = true
		return
	}

	// Fuse across the shorter of the two adjacent edges, unless the partner
	// is a pinned polyline endpoint.
	partner := before
	if edgeAfter2 < edgeBefore2 {
		partner = after
	}
	if !closed && (partner == 0 || partner == len(chain)-1) {
		deleted[i] = true
		return
	}

	// The fused vertex replaces both endpoints of the short edge.
	fused := geometry.Point{
		X: (chain[i].P.X + chain[partner].P.X) / 2,
		Y: (chain[i].P.Y + chain[partner].P.Y) / 2,
	}
	var outerBefore, outerAfter geometry.Point
	if partner == before {
		outerBefore = chain[previousAlive(before, deleted)].P
		outerAfter = chain[after].P
	} else {
		outerBefore = chain[before].P
		outerAfter = chain[nextAlive(after, deleted)].P
	}
	fusionDeviation2 := max64(
		dist2ToPath(chain[i].P, outerBefore, fused, outerAfter),
		dist2ToPath(chain[partner].P, outerBefore, fused, outerAfter),
	)
	if fusionDeviation2 < deviation2 {
		deleted[partner] = true
		chain[i].P = fused
		chain[i].Width = (chain[i].Width + chain[partner].Width) / 2
		return
	}
	deleted[i] = true
}

// dist2ToPath returns the squared distance from p to the two-segment path
// a-m-b.
func dist2ToPath(p, a, m, b geometry.Point) int64 {
	return min64(
		geometry.Dist2ToSegment(p, a, m),
		geometry.Dist2ToSegment(p, m, b),
	)
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
