// Package settings is the named configuration collaborator: a flat string
// map as received from the front-end, with typed accessors. The key names are
// an external contract and must not be renamed.
package settings

import (
	"strconv"

	"github.com/Catniped/CuraEngine/pkg/geometry"
)

// Keys used by the simplification stage.
const (
	KeyMaxResolution    = "meshfix_maximum_resolution"
	KeyMaxDeviation     = "meshfix_maximum_deviation"
	KeyMaxAreaDeviation = "meshfix_maximum_extrusion_area_deviation"
)

// Keys used by the beading pipeline.
const (
	KeyBeadingStrategy       = "beading_strategy_type"
	KeyWallLineWidth0        = "wall_line_width_0"
	KeyWallLineWidthX        = "wall_line_width_x"
	KeyWallTransitionLength  = "wall_transition_length"
	KeyWallLineCount         = "wall_line_count"
	KeyMinBeadWidth          = "min_bead_width"
	KeyMinFeatureSize        = "min_feature_size"
	KeyInwardDistributedSize = "inward_distributed_center_size"
)

// Settings maps setting keys to their raw string values.
type Settings map[string]string

// Default returns the stock values for every key this program reads.
// Lengths are in mm, areas in square microns.
func Default() Settings {
	return Settings{
		KeyMaxResolution:         "0.25",
		KeyMaxDeviation:          "0.025",
		KeyMaxAreaDeviation:      "50000",
		KeyBeadingStrategy:       "distributed",
		KeyWallLineWidth0:        "0.4",
		KeyWallLineWidthX:        "0.4",
		KeyWallTransitionLength:  "0.4",
		KeyWallLineCount:         "2",
		KeyMinBeadWidth:          "",
		KeyMinFeatureSize:        "",
		KeyInwardDistributedSize: "2",
	}
}

// Float returns the value of key parsed as a float64, or 0 when the key is
// absent or not numeric. Missing settings are not an error; callers get the
// zero value and decide what that means.
func (s Settings) Float(key string) float64 {
	v, err := strconv.ParseFloat(s[key], 64)
	if err != nil {
		return 0
	}
	return v
}

// Int returns the value of key parsed as an int, or 0.
func (s Settings) Int(key string) int {
	v, err := strconv.Atoi(s[key])
	if err != nil {
		return 0
	}
	return v
}

// String returns the raw value of key.
func (s Settings) String(key string) string {
	return s[key]
}

// Has reports whether key is present with a non-empty value.
func (s Settings) Has(key string) bool {
	return s[key] != ""
}

// Coord returns a length setting, stored in mm, converted to microns.
func (s Settings) Coord(key string) geometry.Coord {
	return geometry.Coord(s.Float(key) * 1000)
}

// Area returns an area setting, which is stored in square microns directly.
func (s Settings) Area(key string) int64 {
	return int64(s.Float(key))
}
