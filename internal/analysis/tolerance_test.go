package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptyoiy/tracker-sub000/internal/models"
)

func routeWithDuration(id string, seconds int64) models.RouteInfo {
	return models.RouteInfo{ID: id, DurationSeconds: seconds}
}

func TestFilterByDurationTolerance(t *testing.T) {
	routes := []models.RouteInfo{
		routeWithDuration("too-fast", 300),
		routeWithDuration("lower-bound", 420),
		routeWithDuration("exact", 600),
		routeWithDuration("upper-bound", 780),
		routeWithDuration("too-slow", 900),
	}

	// observed 600s, ±30% keeps [420, 780]
	kept := FilterByDurationTolerance(routes, 600, 0.3)

	require.Len(t, kept, 3)
	assert.Equal(t, "lower-bound", kept[0].ID)
	assert.Equal(t, "exact", kept[1].ID)
	assert.Equal(t, "upper-bound", kept[2].ID)

	for _, r := range kept {
		assert.True(t, r.Plausible)
	}
}

func TestFilterByDurationToleranceZeroObserved(t *testing.T) {
	routes := []models.RouteInfo{
		routeWithDuration("a", 300),
		routeWithDuration("b", 90000),
	}

	// degenerate window: everything passes through
	for _, observed := range []int64{0, -5} {
		kept := FilterByDurationTolerance(routes, observed, 0.3)
		require.Len(t, kept, 2)
		assert.Equal(t, "a", kept[0].ID)
		assert.Equal(t, "b", kept[1].ID)
	}
}

func TestFilterByDurationToleranceEmpty(t *testing.T) {
	assert.Empty(t, FilterByDurationTolerance(nil, 600, 0.3))
	assert.Empty(t, FilterByDurationTolerance([]models.RouteInfo{}, 600, 0.3))
}

func TestFilterByDurationToleranceDoesNotMutateInput(t *testing.T) {
	routes := []models.RouteInfo{routeWithDuration("a", 600)}

	kept := FilterByDurationTolerance(routes, 600, 0.3)

	assert.True(t, kept[0].Plausible)
	assert.False(t, routes[0].Plausible, "filter produces new objects")
}
