package spatial

import (
	"math"
	"time"

	"github.com/golang/geo/s2"

	"github.com/ptyoiy/tracker-sub000/internal/models"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// DistanceKm calculates the great-circle distance between two points in
// kilometers. Always finite and non-negative; identical points yield 0.
func DistanceKm(a, b models.LatLng) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lng)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// DurationSeconds returns the elapsed seconds between two timestamps,
// clamped at zero. Reversed order is silently treated as zero duration
// rather than an error.
func DurationSeconds(from, to time.Time) int64 {
	secs := int64(math.Round(to.Sub(from).Seconds()))
	if secs < 0 {
		return 0
	}
	return secs
}

// DestinationPoint calculates the destination point given a start point,
// bearing (degrees, 0-360) and distance (meters).
func DestinationPoint(lat, lon, bearing, distance float64) (float64, float64) {
	p := s2.LatLngFromDegrees(lat, lon)
	bearingRad := bearing * math.Pi / 180
	angularDistance := distance / EarthRadiusMeters

	latRad := p.Lat.Radians()
	lonRad := p.Lng.Radians()

	lat2 := math.Asin(math.Sin(latRad)*math.Cos(angularDistance) +
		math.Cos(latRad)*math.Sin(angularDistance)*math.Cos(bearingRad))

	lon2 := lonRad + math.Atan2(
		math.Sin(bearingRad)*math.Sin(angularDistance)*math.Cos(latRad),
		math.Cos(angularDistance)-math.Sin(latRad)*math.Sin(lat2))

	return lat2 * 180 / math.Pi, lon2 * 180 / math.Pi
}

// CirclePolygon builds a closed ring of vertices approximating a circle of
// the given radius around center. The ring repeats its first vertex last.
func CirclePolygon(center models.LatLng, radiusKm float64, vertices int) models.Polygon {
	if vertices < 3 {
		vertices = 3
	}

	ring := make([]models.LatLng, 0, vertices+1)
	radiusMeters := radiusKm * 1000
	step := 360.0 / float64(vertices)

	for i := 0; i < vertices; i++ {
		lat, lng := DestinationPoint(center.Lat, center.Lng, step*float64(i), radiusMeters)
		ring = append(ring, models.LatLng{Lat: lat, Lng: lng})
	}
	ring = append(ring, ring[0])

	return models.Polygon{Ring: ring}
}
