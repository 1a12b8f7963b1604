// Package beading distributes the thickness of a wall over a number of
// extrusion beads, producing the width and centreline location of each bead.
//
// A base strategy computes an ideal distribution; wrapping stages each impose
// one extra constraint on the strategy beneath them. The factory assembles
// the stages into a single linear pipeline from the named configuration; see
// NewStrategy.
package beading

import (
	"github.com/Catniped/CuraEngine/pkg/geometry"
)

// Beading is the computed distribution of a wall's thickness over beads.
type Beading struct {
	// BeadWidths is the width of each bead, outermost first.
	BeadWidths []geometry.Coord
	// Locations is the centreline offset of each bead from the wall's outer
	// side.
	Locations []geometry.Coord
	// LeftOver is the part of the thickness that could not be covered by any
	// bead, e.g. a wall too thin to print.
	LeftOver geometry.Coord
}

// Strategy decides how many beads to use for a wall of a given thickness and
// how to distribute the thickness over them.
type Strategy interface {
	// Compute distributes thickness over count beads.
	Compute(thickness geometry.Coord, count int) Beading
	// OptimalThickness is the wall thickness this strategy prefers to cover
	// with count beads.
	OptimalThickness(count int) geometry.Coord
	// TransitionThickness is the wall thickness at which the strategy
	// switches from lower beads to lower+1.
	TransitionThickness(lower int) geometry.Coord
	// OptimalBeadCount is the preferred number of beads for a wall of the
	// given thickness.
	OptimalBeadCount(thickness geometry.Coord) int
	// Name identifies the strategy, with any applied stages.
	Name() string
}
