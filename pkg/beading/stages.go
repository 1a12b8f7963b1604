package beading

import (
	"fmt"

	"github.com/Catniped/CuraEngine/pkg/geometry"
)

// Widening rescues walls too thin for the inner strategy: anything at least
// MinInputWidth thick is printed as a single bead of at least MinOutputWidth,
// instead of being dropped.
type Widening struct {
	Inner          Strategy
	MinInputWidth  geometry.Coord
	MinOutputWidth geometry.Coord
}

func (w Widening) Compute(thickness geometry.Coord, count int) Beading {
	if thickness < w.MinInputWidth {
		return Beading{LeftOver: thickness}
	}
	if count <= 1 {
		width := thickness
		if width < w.MinOutputWidth {
			width = w.MinOutputWidth
		}
		return withLocations([]geometry.Coord{width})
	}
	return w.Inner.Compute(thickness, count)
}

func (w Widening) OptimalThickness(count int) geometry.Coord {
	return w.Inner.OptimalThickness(count)
}

func (w Widening) TransitionThickness(lower int) geometry.Coord {
	if lower == 0 {
		return w.MinInputWidth
	}
	return w.Inner.TransitionThickness(lower)
}

func (w Widening) OptimalBeadCount(thickness geometry.Coord) int {
	if thickness < w.MinInputWidth {
		return 0
	}
	if count := w.Inner.OptimalBeadCount(thickness); count > 1 {
		return count
	}
	// Thin but printable: widen to a single bead.
	return 1
}

func (w Widening) Name() string {
	return fmt.Sprintf("Widening(%s)", w.Inner.Name())
}

// Limited caps the number of beads. Thickness beyond what MaxBeadCount beads
// cover is reported as left-over rather than being squeezed in.
type Limited struct {
	Inner        Strategy
	MaxBeadCount int
}

func (l Limited) Compute(thickness geometry.Coord, count int) Beading {
	if count <= l.MaxBeadCount {
		return l.Inner.Compute(thickness, count)
	}
	covered := l.Inner.OptimalThickness(l.MaxBeadCount)
	if covered > thickness {
		covered = thickness
	}
	beading := l.Inner.Compute(covered, l.MaxBeadCount)
	beading.LeftOver += thickness - covered
	return beading
}

func (l Limited) OptimalThickness(count int) geometry.Coord {
	if count > l.MaxBeadCount {
		count = l.MaxBeadCount
	}
	return l.Inner.OptimalThickness(count)
}

func (l Limited) TransitionThickness(lower int) geometry.Coord {
	if lower >= l.MaxBeadCount {
		// No transition past the cap.
		return geometry.Coord(1) << 62
	}
	return l.Inner.TransitionThickness(lower)
}

func (l Limited) OptimalBeadCount(thickness geometry.Coord) int {
	count := l.Inner.OptimalBeadCount(thickness)
	if count > l.MaxBeadCount {
		count = l.MaxBeadCount
	}
	return count
}

func (l Limited) Name() string {
	return fmt.Sprintf("Limited(%s)", l.Inner.Name())
}

// Redistribute gives the outermost two beads their preferred wall width
// before the remaining thickness is shared over the inner beads. The outer
// walls dominate dimensional accuracy and surface quality, so they get their
// width first.
type Redistribute struct {
	Inner          Strategy
	OuterBeadWidth geometry.Coord
}

func (r Redistribute) Compute(thickness geometry.Coord, count int) Beading {
	if count <= 2 || thickness <= 2*r.OuterBeadWidth {
		return r.Inner.Compute(thickness, count)
	}
	interior := r.Inner.Compute(thickness-2*r.OuterBeadWidth, count-2)
	widths := make([]geometry.Coord, 0, count)
	widths = append(widths, r.OuterBeadWidth)
	widths = append(widths, interior.BeadWidths...)
	widths = append(widths, r.OuterBeadWidth)
	beading := withLocations(widths)
	beading.LeftOver = interior.LeftOver
	return beading
}

// Redistribution reshapes the widths of a given bead count; how many beads
// to use stays the inner strategy's call.

func (r Redistribute) OptimalThickness(count int) geometry.Coord {
	return r.Inner.OptimalThickness(count)
}

func (r Redistribute) TransitionThickness(lower int) geometry.Coord {
	return r.Inner.TransitionThickness(lower)
}

func (r Redistribute) OptimalBeadCount(thickness geometry.Coord) int {
	return r.Inner.OptimalBeadCount(thickness)
}

func (r Redistribute) Name() string {
	return fmt.Sprintf("Redistribute(%s)", r.Inner.Name())
}
