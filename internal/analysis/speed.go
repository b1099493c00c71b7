package analysis

import "github.com/ptyoiy/tracker-sub000/internal/models"

// Thresholds holds the tunable speed boundaries for mode classification and
// the orchestrator's fetch-eligibility gate. Values are km/h.
type Thresholds struct {
	// Classification boundaries, inclusive on the lower category.
	WalkingMaxKmh float64
	TransitMaxKmh float64

	// Fetch-eligibility gate. The band between VehicleGateMinKmh and
	// PedestrianGateMaxKmh intentionally triggers both the pedestrian and
	// vehicle fetch attempts: real-world speeds there are ambiguous.
	PedestrianGateMaxKmh float64
	VehicleGateMinKmh    float64
}

// DefaultThresholds returns the standard speed boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WalkingMaxKmh:        6,
		TransitMaxKmh:        30,
		PedestrianGateMaxKmh: 15,
		VehicleGateMinKmh:    6,
	}
}

// ClassifySpeed maps an average speed to a transport mode category.
// Total for all non-negative speeds; boundaries belong to the lower category.
func ClassifySpeed(speedKmh float64, t Thresholds) models.TransportMode {
	switch {
	case speedKmh <= t.WalkingMaxKmh:
		return models.ModeWalking
	case speedKmh <= t.TransitMaxKmh:
		return models.ModeTransit
	default:
		return models.ModeVehicle
	}
}
