package simplify

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Catniped/CuraEngine/pkg/extrusion"
	"github.com/Catniped/CuraEngine/pkg/geometry"
	"github.com/Catniped/CuraEngine/pkg/settings"
	"github.com/Catniped/CuraEngine/pkg/verify"
)

func pt(x, y geometry.Coord) geometry.Point {
	return geometry.Point{X: x, Y: y}
}

// A unit square with one extra collinear vertex in the middle of the bottom
// edge. The midpoint must go, the corners must stay.
func TestPolygonCollinearMidpoint(t *testing.T) {
	s := NewSimplifier(10000, 1000, 0)
	input := geometry.Polygon{
		pt(0, 0),
		pt(5000, 0), // collinear midpoint
		pt(10000, 0),
		pt(10000, 10000),
		pt(0, 10000),
	}
	want := geometry.Polygon{
		pt(0, 0),
		pt(10000, 0),
		pt(10000, 10000),
		pt(0, 10000),
	}
	got := s.Polygon(input)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Polygon() mismatch (-want +got):\n%s", diff)
	}
}

// An open polyline whose middle vertex deviates 1 unit from the straight
// connection collapses to just its endpoints.
func TestPolylineSmallDeviation(t *testing.T) {
	s := NewSimplifier(10000, 2, 0)
	input := geometry.Polyline{
		pt(0, 0),
		pt(500, 1),
		pt(1000, 0),
	}
	want := geometry.Polyline{
		pt(0, 0),
		pt(1000, 0),
	}
	got := s.Polyline(input)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Polyline() mismatch (-want +got):\n%s", diff)
	}
}

// A triangle is already at the minimum size and must come back unchanged no
// matter how tolerant the thresholds are.
func TestPolygonMinimumSize(t *testing.T) {
	s := NewSimplifier(1 << 20, 1 << 20, math.MaxInt64)
	input := geometry.Polygon{
		pt(0, 0),
		pt(20, 0),
		pt(10, 30),
	}
	got := s.Polygon(input)
	if diff := cmp.Diff(input, got); diff != "" {
		t.Errorf("triangle was modified (-want +got):\n%s", diff)
	}
}

func TestDegenerateInput(t *testing.T) {
	s := NewSimplifier(10000, 100, 0)
	if got := s.Polygon(geometry.Polygon{pt(0, 0), pt(100, 0)}); len(got) != 0 {
		t.Errorf("2-vertex polygon: got %d vertices, want empty", len(got))
	}
	if got := s.Polyline(geometry.Polyline{pt(0, 0)}); len(got) != 0 {
		t.Errorf("1-vertex polyline: got %d vertices, want empty", len(got))
	}
	twoPoints := geometry.Polyline{pt(0, 0), pt(100, 0)}
	if got := s.Polyline(twoPoints); len(got) != 2 {
		t.Errorf("2-vertex polyline: got %d vertices, want 2 unchanged", len(got))
	}
}

// The endpoints of a polyline are pinned: whatever happens in between, the
// first and last output vertices equal the input's exactly.
func TestPolylineEndpointsPreserved(t *testing.T) {
	s := NewSimplifier(10000, 50, 0)
	input := make(geometry.Polyline, 0, 101)
	for i := 0; i <= 100; i++ {
		// 10 micron noise around a straight line
		y := geometry.Coord(10 * (i % 3))
		input = append(input, pt(geometry.Coord(i*200), y))
	}
	got := s.Polyline(input)
	if len(got) < 2 {
		t.Fatalf("got %d vertices, want at least 2", len(got))
	}
	if got[0] != input[0] || got[len(got)-1] != input[len(input)-1] {
		t.Errorf("endpoints moved: got %v..%v, want %v..%v",
			got[0], got[len(got)-1], input[0], input[len(input)-1])
	}
}

// A variable-width chain where the positional deviation passes but fusing
// the segments would change the covered area too much: the vertex stays.
func TestExtrusionAreaDeviationBlocksRemoval(t *testing.T) {
	line := extrusion.Line{
		Junctions: []extrusion.Junction{
			{P: pt(0, 0), Width: 200},
			{P: pt(1000, 10), Width: 1000},
			{P: pt(2000, 0), Width: 200},
			{P: pt(1000, 4000), Width: 200},
		},
		Closed: true,
	}

	// Generous area allowance: the middle vertex goes.
	loose := NewSimplifier(10000, 50, math.MaxInt64)
	if got := loose.ExtrusionPolygon(line); len(got.Junctions) != 3 {
		t.Errorf("loose area bound: got %d junctions, want 3", len(got.Junctions))
	}

	// Same geometry, tight area allowance: the wide vertex is retained even
	// though its positional deviation alone would pass.
	tight := NewSimplifier(10000, 50, 100000)
	if got := tight.ExtrusionPolygon(line); len(got.Junctions) != 4 {
		t.Errorf("tight area bound: got %d junctions, want 4", len(got.Junctions))
	}
}

// Vertices whose confirmed importance exceeds the threshold are discarded
// rather than revisited: a chain where nothing is removable comes back
// unchanged instead of looping.
func TestUnremovableVerticesDiscarded(t *testing.T) {
	s := NewSimplifier(100000, 10, 0)
	var input geometry.Polygon
	for i := 0; i < 50; i++ {
		y := geometry.Coord(0)
		if i%2 == 1 {
			y = 5000 // way beyond MaxDeviation
		}
		input = append(input, pt(geometry.Coord(i*1000), y))
	}
	got := s.Polygon(input)
	if diff := cmp.Diff(input, got); diff != "" {
		t.Errorf("zigzag was modified (-want +got):\n%s", diff)
	}
}

// Once no remaining vertex's importance is below the threshold, re-running
// with identical parameters makes no further change.
func TestIdempotence(t *testing.T) {
	s := NewSimplifier(10000, 1000, 0)
	square := s.Polygon(geometry.Polygon{
		pt(0, 0),
		pt(5000, 0),
		pt(10000, 0),
		pt(10000, 10000),
		pt(0, 10000),
	})
	if len(square) != 4 {
		t.Fatalf("got %d vertices, want 4", len(square))
	}
	again := s.Polygon(square)
	if diff := cmp.Diff(square, again); diff != "" {
		t.Errorf("second run changed the polygon (-once +twice):\n%s", diff)
	}

	tight := NewSimplifier(100000, 10, 0)
	var zigzag geometry.Polyline
	for i := 0; i < 40; i++ {
		y := geometry.Coord(0)
		if i%2 == 1 {
			y = 5000
		}
		zigzag = append(zigzag, pt(geometry.Coord(i*1000), y))
	}
	once := tight.Polyline(zigzag)
	twice := tight.Polyline(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second run changed the polyline (-once +twice):\n%s", diff)
	}
}

// Every removed vertex must stay within MaxDeviation of the simplified chain.
func TestDeviationBound(t *testing.T) {
	const maxDeviation = 50
	s := NewSimplifier(10000, maxDeviation, 0)

	// A long near-horizontal polyline wiggling within a 28 micron band.
	input := make(geometry.Polyline, 0, 301)
	for i := 0; i <= 300; i++ {
		input = append(input, pt(geometry.Coord(i*100), geometry.Coord(7*(i%5))))
	}
	got := s.Polyline(input)
	if len(got) >= len(input) {
		t.Fatalf("nothing was simplified: %d -> %d vertices", len(input), len(got))
	}
	violations := verify.Check(input, got, false, maxDeviation)
	for _, v := range violations {
		t.Errorf("vertex %d at %v is %.1f microns from the result, want <= %d",
			v.Index, v.Point, v.Distance, maxDeviation)
	}
}

// Segments below the resolution floor are always collapsed, and fusion must
// not leave a sub-resolution stub behind.
func TestShortSegmentsCollapse(t *testing.T) {
	s := NewSimplifier(10000, 100, 0)
	input := geometry.Polygon{
		pt(0, 0),
		pt(5000, 40),
		pt(5003, 41), // 3 microns from its neighbour
		pt(10000, 0),
		pt(5000, 8000),
	}
	got := s.Polygon(input)
	for i, p := range got {
		q := got[(i+1)%len(got)]
		if d2 := geometry.Dist2(p, q); d2 <= minResolution*minResolution {
			t.Errorf("output contains segment %v-%v of squared length %d", p, q, d2)
		}
	}
}

// The input slices are never mutated, even though fusion shifts vertices on
// the working copy.
func TestInputUntouched(t *testing.T) {
	s := NewSimplifier(10000, 100, 0)
	input := geometry.Polygon{
		pt(0, 0),
		pt(5000, 40),
		pt(5003, 41),
		pt(10000, 0),
		pt(5000, 8000),
	}
	original := make(geometry.Polygon, len(input))
	copy(original, input)
	s.Polygon(input)
	if diff := cmp.Diff(original, input); diff != "" {
		t.Errorf("input was mutated (-want +got):\n%s", diff)
	}
}

func TestFromSettings(t *testing.T) {
	cfg := settings.Default()
	cfg[settings.KeyMaxResolution] = "0.5"
	cfg[settings.KeyMaxDeviation] = "0.04"
	cfg[settings.KeyMaxAreaDeviation] = "20000"
	s := FromSettings(cfg)
	want := NewSimplifier(500, 40, 20000)
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("FromSettings() mismatch (-want +got):\n%s", diff)
	}
}
