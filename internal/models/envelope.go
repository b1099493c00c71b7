package models

// TravelProfile selects the movement assumption for a reachability query.
type TravelProfile string

// TravelProfile constants
const (
	ProfileWalking TravelProfile = "walking"
	ProfileDriving TravelProfile = "driving"
	ProfileCycling TravelProfile = "cycling"
)

// ValidProfile reports whether p is one of the supported travel profiles.
func ValidProfile(p TravelProfile) bool {
	switch p {
	case ProfileWalking, ProfileDriving, ProfileCycling:
		return true
	}
	return false
}

// Polygon is a closed ring of vertices (first vertex repeated last).
type Polygon struct {
	Ring []LatLng `json:"ring"`
}

// ReachabilityEnvelope describes the area reachable from a point within a
// time budget. FallbackUsed marks polygons produced by the local geometric
// approximation instead of the isochrone provider.
type ReachabilityEnvelope struct {
	Profile      TravelProfile `json:"profile"`
	Minutes      int           `json:"minutes"`
	Polygons     []Polygon     `json:"polygons"`
	FallbackUsed bool          `json:"fallback_used"`
}
