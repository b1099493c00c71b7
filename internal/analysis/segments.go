package analysis

import (
	"fmt"

	"github.com/ptyoiy/tracker-sub000/internal/models"
	"github.com/ptyoiy/tracker-sub000/internal/spatial"
)

// BuildSegmentAnalyses computes per-segment basic metrics for each adjacent
// pair of observations: straight-line distance, elapsed duration, average
// speed and the inferred transport mode. Candidate route lists start empty.
//
// Fewer than two observations is a valid "nothing to analyze" state and
// yields an empty slice. Output ordering matches input ordering.
func BuildSegmentAnalyses(observations []models.Observation, thresholds Thresholds) []models.SegmentAnalysis {
	if len(observations) < 2 {
		return []models.SegmentAnalysis{}
	}

	segments := make([]models.SegmentAnalysis, 0, len(observations)-1)
	for i := 0; i < len(observations)-1; i++ {
		from := observations[i]
		to := observations[i+1]

		distanceKm := spatial.DistanceKm(from.Point(), to.Point())
		durationSecs := spatial.DurationSeconds(from.Timestamp, to.Timestamp)

		// Equal timestamps give zero duration; speed is defined as 0 there
		// to keep the classifier total.
		speedKmh := 0.0
		if durationSecs > 0 {
			speedKmh = distanceKm / (float64(durationSecs) / 3600.0)
		}

		segments = append(segments, models.SegmentAnalysis{
			ID:              fmt.Sprintf("%d-%d", i, i+1),
			FromIndex:       i,
			ToIndex:         i + 1,
			From:            from,
			To:              to,
			DistanceKm:      distanceKm,
			DurationSeconds: durationSecs,
			AvgSpeedKmh:     speedKmh,
			InferredMode:    ClassifySpeed(speedKmh, thresholds),
			CandidateRoutes: []models.RouteInfo{},
			ContentHash:     models.HashObservations([]models.Observation{from, to}),
		})
	}

	return segments
}
