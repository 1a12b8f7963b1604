package verify

import (
	"math"
	"testing"

	"github.com/Catniped/CuraEngine/pkg/geometry"
)

func pt(x, y geometry.Coord) geometry.Point {
	return geometry.Point{X: x, Y: y}
}

func TestMaxDeviation(t *testing.T) {
	original := []geometry.Point{
		pt(0, 0),
		pt(500, 30), // removed, 30 microns off the straight connection
		pt(1000, 0),
	}
	simplified := []geometry.Point{
		pt(0, 0),
		pt(1000, 0),
	}
	got := MaxDeviation(original, simplified, false)
	if math.Abs(got-30) > 0.5 {
		t.Errorf("MaxDeviation() = %f, want 30", got)
	}
}

func TestCheck(t *testing.T) {
	original := []geometry.Point{
		pt(0, 0),
		pt(5000, 0),
		pt(5000, 5000),
		pt(2500, 2600), // far off the square's diagonal-free outline
		pt(0, 5000),
	}
	simplified := []geometry.Point{
		pt(0, 0),
		pt(5000, 0),
		pt(5000, 5000),
		pt(0, 5000),
	}

	violations := Check(original, simplified, true, 100)
	if len(violations) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(violations), violations)
	}
	v := violations[0]
	if v.Index != 3 {
		t.Errorf("violation index = %d, want 3", v.Index)
	}
	// (2500,2600) is 2400 microns from the top edge, 2500 from the sides.
	if math.Abs(v.Distance-2400) > 0.5 {
		t.Errorf("violation distance = %f, want 2400", v.Distance)
	}

	if got := Check(original, simplified, true, 3000); got != nil {
		t.Errorf("generous limit: got %v, want nil", got)
	}
}

func TestCheckVerticesOnChain(t *testing.T) {
	chain := []geometry.Point{
		pt(0, 0),
		pt(1000, 0),
		pt(1000, 1000),
	}
	if got := Check(chain, chain, false, 1); got != nil {
		t.Errorf("chain against itself: got %v, want nil", got)
	}
}

func TestCheckDegenerate(t *testing.T) {
	if got := Check([]geometry.Point{pt(0, 0)}, nil, false, 10); got != nil {
		t.Errorf("empty simplified chain: got %v, want nil", got)
	}
}
