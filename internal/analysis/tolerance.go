package analysis

import "github.com/ptyoiy/tracker-sub000/internal/models"

// DefaultToleranceRatio is the standard duration tolerance window (±30%).
const DefaultToleranceRatio = 0.3

// FilterByDurationTolerance keeps the candidate routes whose duration lies
// within observedDuration*(1±ratio) and marks survivors plausible. The filter
// preserves order and never re-ranks or deduplicates.
//
// A non-positive observed duration (two observations sharing a timestamp)
// makes the window degenerate, so the filter passes all routes through.
func FilterByDurationTolerance(routes []models.RouteInfo, observedDurationSeconds int64, ratio float64) []models.RouteInfo {
	out := make([]models.RouteInfo, 0, len(routes))

	if observedDurationSeconds <= 0 {
		for _, r := range routes {
			r.Plausible = true
			out = append(out, r)
		}
		return out
	}

	observed := float64(observedDurationSeconds)
	lower := observed * (1 - ratio)
	upper := observed * (1 + ratio)

	for _, r := range routes {
		d := float64(r.DurationSeconds)
		if d >= lower && d <= upper {
			r.Plausible = true
			out = append(out, r)
		}
	}
	return out
}
