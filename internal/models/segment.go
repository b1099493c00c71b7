package models

// TransportMode is the inferred transport category for a segment or route.
type TransportMode string

// TransportMode constants
const (
	ModeWalking TransportMode = "walking"
	ModeTransit TransportMode = "transit"
	ModeVehicle TransportMode = "vehicle"
)

// Leg mode constants, matching provider-reported leg types.
const (
	LegWalk   = "walk"
	LegBus    = "bus"
	LegSubway = "subway"
	LegCar    = "car"
)

// RouteLeg is one homogeneous-mode sub-path within a route, e.g. the
// walk-to-bus-stop portion of a transit route. Leg order encodes the physical
// sequence of the journey and is never reordered.
type RouteLeg struct {
	Mode            string   `json:"mode"`
	DistanceKm      float64  `json:"distance_km"`
	DurationSeconds int64    `json:"duration_seconds"`
	Path            []LatLng `json:"path,omitempty"`
}

// RouteInfo is a single candidate route for a segment, normalized across
// provider route shapes. Downstream of the builders no component needs to
// know which provider produced a route.
type RouteInfo struct {
	ID              string        `json:"id"`
	DistanceKm      float64       `json:"distance_km"`
	DurationSeconds int64         `json:"duration_seconds"`
	Legs            []RouteLeg    `json:"legs"`
	PrimaryMode     TransportMode `json:"primary_mode"`
	Plausible       bool          `json:"plausible"`
}

// SegmentAnalysis is the analysis of the leg between two consecutive
// observations: straight-line metrics, the inferred transport mode, and zero
// or more provider route candidates.
type SegmentAnalysis struct {
	ID              string        `json:"id"`
	FromIndex       int           `json:"from_index"`
	ToIndex         int           `json:"to_index"`
	From            Observation   `json:"from"`
	To              Observation   `json:"to"`
	DistanceKm      float64       `json:"distance_km"`
	DurationSeconds int64         `json:"duration_seconds"`
	AvgSpeedKmh     float64       `json:"avg_speed_kmh"`
	InferredMode    TransportMode `json:"inferred_mode"`
	CandidateRoutes []RouteInfo   `json:"candidate_routes"`

	// ContentHash identifies the observation pair this analysis was computed
	// from, so callers can detect staleness after observations change.
	ContentHash string `json:"content_hash"`
}
