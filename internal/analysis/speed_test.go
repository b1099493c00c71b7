package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ptyoiy/tracker-sub000/internal/models"
)

func TestClassifySpeed(t *testing.T) {
	th := DefaultThresholds()

	cases := []struct {
		name     string
		speedKmh float64
		want     models.TransportMode
	}{
		{"zero speed", 0, models.ModeWalking},
		{"stroll", 4.2, models.ModeWalking},
		{"exactly walking max", th.WalkingMaxKmh, models.ModeWalking},
		{"just above walking max", th.WalkingMaxKmh + 0.01, models.ModeTransit},
		{"bus pace", 18, models.ModeTransit},
		{"exactly transit max", th.TransitMaxKmh, models.ModeTransit},
		{"just above transit max", th.TransitMaxKmh + 0.01, models.ModeVehicle},
		{"highway", 90, models.ModeVehicle},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifySpeed(tc.speedKmh, th))
		})
	}
}

// Category severity must be non-decreasing as speed increases.
func TestClassifySpeedMonotonic(t *testing.T) {
	th := DefaultThresholds()
	rank := map[models.TransportMode]int{
		models.ModeWalking: 0,
		models.ModeTransit: 1,
		models.ModeVehicle: 2,
	}

	prev := -1
	for speed := 0.0; speed <= 120; speed += 0.5 {
		mode := ClassifySpeed(speed, th)
		r, ok := rank[mode]
		assert.True(t, ok, "classifier must be total, got %q at %.1f", mode, speed)
		assert.GreaterOrEqual(t, r, prev, "category regressed at %.1f km/h", speed)
		prev = r
	}
}
