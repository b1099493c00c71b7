package analysis

import (
	"github.com/ptyoiy/tracker-sub000/internal/models"
	"github.com/ptyoiy/tracker-sub000/internal/ports"
)

// The builders normalize heterogeneous provider route shapes into one
// RouteInfo representation. They are pure mappings over already fetched
// responses; callers are responsible for rejecting malformed payloads
// (e.g. an empty transit leg list) before invoking them.

// BuildWalkingRoute normalizes a single-leg pedestrian provider route.
func BuildWalkingRoute(segmentID string, route *ports.RouteSummary) models.RouteInfo {
	return buildSingleLegRoute(segmentID, route, models.ModeWalking, models.LegWalk)
}

// BuildVehicleRoute normalizes a single-leg driving provider route.
func BuildVehicleRoute(segmentID string, route *ports.RouteSummary) models.RouteInfo {
	return buildSingleLegRoute(segmentID, route, models.ModeVehicle, models.LegCar)
}

func buildSingleLegRoute(segmentID string, route *ports.RouteSummary, mode models.TransportMode, legMode string) models.RouteInfo {
	distanceKm := route.DistanceMeters / 1000.0
	return models.RouteInfo{
		ID:              segmentID + "-" + string(mode),
		DistanceKm:      distanceKm,
		DurationSeconds: route.DurationSeconds,
		Legs: []models.RouteLeg{{
			Mode:            legMode,
			DistanceKm:      distanceKm,
			DurationSeconds: route.DurationSeconds,
			Path:            route.Polyline,
		}},
		PrimaryMode: mode,
	}
}

// BuildTransitRoute normalizes a multi-leg transit provider route. The
// primary mode is "transit" whenever any leg is a bus or subway leg, even if
// most of the trip is on foot; a transit route with only walk legs degrades
// to walking.
func BuildTransitRoute(segmentID string, route *ports.TransitRoute) models.RouteInfo {
	legs := make([]models.RouteLeg, 0, len(route.Legs))
	for _, leg := range route.Legs {
		legs = append(legs, models.RouteLeg{
			Mode:            transitLegMode(leg.Mode),
			DistanceKm:      leg.DistanceMeters / 1000.0,
			DurationSeconds: leg.DurationSeconds,
			Path:            leg.Polyline,
		})
	}

	return models.RouteInfo{
		ID:              segmentID + "-" + string(models.ModeTransit),
		DistanceKm:      route.DistanceMeters / 1000.0,
		DurationSeconds: route.DurationSeconds,
		Legs:            legs,
		PrimaryMode:     transitPrimaryMode(route.Legs),
	}
}

func transitLegMode(providerMode string) string {
	switch providerMode {
	case ports.TransitLegBus:
		return models.LegBus
	case ports.TransitLegSubway:
		return models.LegSubway
	default:
		return models.LegWalk
	}
}

func transitPrimaryMode(legs []ports.TransitLeg) models.TransportMode {
	for _, leg := range legs {
		if leg.Mode == ports.TransitLegBus || leg.Mode == ports.TransitLegSubway {
			return models.ModeTransit
		}
	}
	return models.ModeWalking
}
