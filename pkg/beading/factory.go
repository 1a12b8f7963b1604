package beading

import (
	"log"

	"github.com/Catniped/CuraEngine/pkg/geometry"
	"github.com/Catniped/CuraEngine/pkg/settings"
)

// stage is one optional wrapping step of the pipeline. Stages are applied in
// a fixed order; each wraps the strategy assembled so far and exclusively
// owns it.
type stage struct {
	name    string
	enabled bool
	wrap    func(Strategy) Strategy
}

// NewStrategy assembles the beading pipeline described by the settings: a
// base strategy chosen by name, wrapped by whichever stages the settings
// enable.
func NewStrategy(cfg settings.Settings) Strategy {
	outerWidth := cfg.Coord(settings.KeyWallLineWidth0)
	innerWidth := cfg.Coord(settings.KeyWallLineWidthX)
	maxBeadCount := cfg.Int(settings.KeyWallLineCount)
	preferred := weightedAverage(outerWidth, innerWidth, maxBeadCount)

	var strategy Strategy
	switch name := cfg.String(settings.KeyBeadingStrategy); name {
	case "center_deviation":
		strategy = CenterDeviation{OptimalWidth: preferred}
	case "inward_distributed":
		strategy = InwardDistributed{
			Distributed: Distributed{OptimalWidth: preferred},
			CenterSize:  cfg.Float(settings.KeyInwardDistributedSize),
		}
	case "", "distributed":
		strategy = Distributed{OptimalWidth: preferred}
	default:
		log.Printf("unknown beading strategy %q, using distributed", name)
		strategy = Distributed{OptimalWidth: preferred}
	}

	minBeadWidth := cfg.Coord(settings.KeyMinBeadWidth)
	minFeatureSize := cfg.Coord(settings.KeyMinFeatureSize)
	stages := []stage{
		{
			name:    "widening",
			enabled: cfg.Has(settings.KeyMinBeadWidth) || cfg.Has(settings.KeyMinFeatureSize),
			wrap: func(inner Strategy) Strategy {
				minInput := minFeatureSize
				if minInput == 0 {
					minInput = minBeadWidth
				}
				minOutput := minBeadWidth
				if minOutput == 0 {
					minOutput = minFeatureSize
				}
				return Widening{Inner: inner, MinInputWidth: minInput, MinOutputWidth: minOutput}
			},
		},
		{
			name:    "limited",
			enabled: maxBeadCount > 0,
			wrap: func(inner Strategy) Strategy {
				return Limited{Inner: inner, MaxBeadCount: maxBeadCount}
			},
		},
		{
			name:    "redistribute",
			enabled: maxBeadCount > 0,
			wrap: func(inner Strategy) Strategy {
				return Redistribute{Inner: inner, OuterBeadWidth: outerWidth}
			},
		},
	}
	for _, st := range stages {
		if !st.enabled {
			continue
		}
		strategy = st.wrap(strategy)
		log.Printf("applying %s beading stage: %s", st.name, strategy.Name())
	}
	return strategy
}

// weightedAverage is the preferred bead width when the outer and inner walls
// are configured with different widths: the two outer beads count once each,
// the rest use the inner width.
func weightedAverage(outer, inner geometry.Coord, maxBeadCount int) geometry.Coord {
	if maxBeadCount > 2 {
		return (outer*2 + inner*geometry.Coord(maxBeadCount-2)) / geometry.Coord(maxBeadCount)
	}
	if maxBeadCount <= 0 {
		return inner
	}
	return outer
}
