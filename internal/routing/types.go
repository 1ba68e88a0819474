package routing

import (
	"ninjamap/internal/maneuver"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// TransportMode is the travel mode selected on the map page.
type TransportMode string

const (
	ModeCar       TransportMode = "car"
	ModeBike      TransportMode = "bike"
	ModeMotorbike TransportMode = "motorbike"
	ModeFoot      TransportMode = "foot"
)

// DefaultMode is used when no mode is specified.
const DefaultMode = ModeCar

// IsValid checks if the transport mode is valid
func (m TransportMode) IsValid() bool {
	switch m {
	case ModeCar, ModeBike, ModeMotorbike, ModeFoot:
		return true
	default:
		return false
	}
}

// Costing maps the transport mode to the provider's cost model identifier.
func (m TransportMode) Costing() string {
	switch m {
	case ModeFoot:
		return "pedestrian"
	case ModeBike:
		return "bicycle"
	case ModeMotorbike:
		return "motorcycle"
	default:
		return "auto"
	}
}

// RoutePoint is a request waypoint produced by search/geocoding.
// Coordinates are decimal degrees; the [lng, lat] flip for GeoJSON output
// happens inside the assembler, never at call sites.
type RoutePoint struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// DirectionStep is one normalized turn-by-turn instruction.
type DirectionStep struct {
	Text     string  `json:"text"`
	Distance float64 `json:"distance"` // meters
	Time     int64   `json:"time"`     // milliseconds
	Sign     int     `json:"sign"`

	// Location anchors the step to the route geometry, [lng, lat].
	// Omitted when the provider's shape index falls outside the geometry.
	Location *orb.Point `json:"location,omitempty"`

	StreetNames  []string       `json:"street_names,omitempty"`
	ManeuverType maneuver.Label `json:"maneuver_type,omitempty"`
}

// RouteResult is the normalized route returned to the map client.
type RouteResult struct {
	Distance     float64          `json:"distance"` // meters
	Time         int64            `json:"time"`     // milliseconds
	Instructions []DirectionStep  `json:"instructions"`
	Geometry     *geojson.Feature `json:"geometry"`
}
