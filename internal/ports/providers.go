package ports

import (
	"context"
	"errors"
	"time"

	"github.com/ptyoiy/tracker-sub000/internal/models"
)

// ErrNoRoute is returned by routing providers when no route exists between
// the requested points. It is distinct from transport or auth failures but
// the orchestrator treats both the same way: the candidate is omitted.
var ErrNoRoute = errors.New("no route found")

// RouteSummary is a single-leg provider route (pedestrian or vehicle).
type RouteSummary struct {
	DistanceMeters  float64
	DurationSeconds int64
	Polyline        []models.LatLng
}

// Transit leg mode tags as reported by the transit provider.
const (
	TransitLegWalk   = "WALK"
	TransitLegBus    = "BUS"
	TransitLegSubway = "SUBWAY"
)

// TransitLeg is one homogeneous-mode section of a provider transit route.
type TransitLeg struct {
	Mode            string
	DistanceMeters  float64
	DurationSeconds int64
	Polyline        []models.LatLng
}

// TransitRoute is a multi-leg provider transit route. Leg order matches the
// physical journey sequence.
type TransitRoute struct {
	DistanceMeters  float64
	DurationSeconds int64
	Legs            []TransitLeg
}

// RoutingProvider retrieves candidate routes between two coordinates.
// Implementations return ErrNoRoute for the provider's explicit no-route
// signal and any other error for transport, auth or payload failures.
type RoutingProvider interface {
	FetchPedestrianRoute(ctx context.Context, from, to models.LatLng) (*RouteSummary, error)
	FetchVehicleRoute(ctx context.Context, from, to models.LatLng) (*RouteSummary, error)
	FetchTransitRoute(ctx context.Context, from, to models.LatLng, searchTime *time.Time) (*TransitRoute, error)
}

// ReachabilityProvider retrieves isochrone polygons for a profile/center/
// minutes triple. An empty result with nil error means the provider had no
// polygon for the request.
type ReachabilityProvider interface {
	FetchPolygons(ctx context.Context, profile models.TravelProfile, center models.LatLng, minutes int) ([]models.Polygon, error)
}

// GeocodingProvider resolves a coordinate to a human-readable address.
type GeocodingProvider interface {
	ReverseGeocode(ctx context.Context, point models.LatLng) (string, error)
}
