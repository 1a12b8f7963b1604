package beading

import (
	"math"

	"github.com/Catniped/CuraEngine/pkg/geometry"
)

// Distributed spreads any surplus or deficit of thickness evenly over all
// beads, so every bead deviates from the optimal width by the same amount.
type Distributed struct {
	OptimalWidth geometry.Coord
}

func (d Distributed) Compute(thickness geometry.Coord, count int) Beading {
	if count <= 0 || thickness <= 0 {
		return Beading{LeftOver: thickness}
	}
	widths := make([]geometry.Coord, count)
	base := thickness / geometry.Coord(count)
	for i := range widths {
		widths[i] = base
	}
	// the integer division remainder goes to the centre bead
	widths[count/2] += thickness - base*geometry.Coord(count)
	return withLocations(widths)
}

func (d Distributed) OptimalThickness(count int) geometry.Coord {
	return geometry.Coord(count) * d.OptimalWidth
}

func (d Distributed) TransitionThickness(lower int) geometry.Coord {
	return d.OptimalThickness(lower) + d.OptimalWidth/2
}

func (d Distributed) OptimalBeadCount(thickness geometry.Coord) int {
	return int(math.Round(float64(thickness) / float64(d.OptimalWidth)))
}

func (d Distributed) Name() string { return "Distributed" }

// InwardDistributed gives beads near the centre of the wall most of the
// deviation from the optimal width, so the outer walls print at a steady
// width. CenterSize controls how many beads count as "near the centre".
type InwardDistributed struct {
	Distributed
	CenterSize float64
}

func (d InwardDistributed) Compute(thickness geometry.Coord, count int) Beading {
	if count <= 0 || thickness <= 0 {
		return Beading{LeftOver: thickness}
	}
	deviation := float64(thickness - d.OptimalThickness(count))
	mid := float64(count-1) / 2
	scale := math.Max(d.CenterSize, 1)
	weights := make([]float64, count)
	total := 0.0
	for i := range weights {
		offset := (float64(i) - mid) / scale
		weights[i] = 1 / (1 + offset*offset)
		total += weights[i]
	}
	widths := make([]geometry.Coord, count)
	var assigned geometry.Coord
	for i := range widths {
		widths[i] = d.OptimalWidth + geometry.Coord(math.Round(deviation*weights[i]/total))
		assigned += widths[i]
	}
	// rounding drift also goes to the centre bead
	widths[count/2] += thickness - assigned
	return withLocations(widths)
}

func (d InwardDistributed) Name() string { return "InwardDistributed" }

// CenterDeviation keeps every bead at the optimal width except the centre
// one, which absorbs the entire deviation.
type CenterDeviation struct {
	OptimalWidth geometry.Coord
}

func (c CenterDeviation) Compute(thickness geometry.Coord, count int) Beading {
	if count <= 0 || thickness <= 0 {
		return Beading{LeftOver: thickness}
	}
	widths := make([]geometry.Coord, count)
	for i := range widths {
		widths[i] = c.OptimalWidth
	}
	center := thickness - geometry.Coord(count-1)*c.OptimalWidth
	if center < 0 {
		center = 0
	}
	widths[count/2] = center
	beading := withLocations(widths)
	beading.LeftOver = thickness - sum(widths)
	if beading.LeftOver < 0 {
		beading.LeftOver = 0
	}
	return beading
}

func (c CenterDeviation) OptimalThickness(count int) geometry.Coord {
	return geometry.Coord(count) * c.OptimalWidth
}

func (c CenterDeviation) TransitionThickness(lower int) geometry.Coord {
	return c.OptimalThickness(lower) + c.OptimalWidth/2
}

func (c CenterDeviation) OptimalBeadCount(thickness geometry.Coord) int {
	return int(math.Round(float64(thickness) / float64(c.OptimalWidth)))
}

func (c CenterDeviation) Name() string { return "CenterDeviation" }

// withLocations lays the beads out side by side from the wall's outer side
// and records each bead's centreline.
func withLocations(widths []geometry.Coord) Beading {
	locations := make([]geometry.Coord, len(widths))
	var pos geometry.Coord
	for i, w := range widths {
		locations[i] = pos + w/2
		pos += w
	}
	return Beading{BeadWidths: widths, Locations: locations}
}

func sum(widths []geometry.Coord) geometry.Coord {
	var total geometry.Coord
	for _, w := range widths {
		total += w
	}
	return total
}
