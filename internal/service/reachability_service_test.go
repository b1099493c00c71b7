package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ptyoiy/tracker-sub000/internal/models"
	"github.com/ptyoiy/tracker-sub000/internal/spatial"
)

type fakeReachability struct {
	polygons []models.Polygon
	err      error
	calls    int
}

func (f *fakeReachability) FetchPolygons(_ context.Context, _ models.TravelProfile, _ models.LatLng, _ int) ([]models.Polygon, error) {
	f.calls++
	return f.polygons, f.err
}

func newTestReachabilityService(provider *fakeReachability) *ReachabilityService {
	return NewReachabilityService(provider, zap.NewNop(), 2*time.Second)
}

var seoulCityHall = models.LatLng{Lat: 37.5665, Lng: 126.978}

func TestComputeEnvelopeInvalidInput(t *testing.T) {
	provider := &fakeReachability{}
	svc := newTestReachabilityService(provider)

	cases := []struct {
		name    string
		profile models.TravelProfile
		minutes int
	}{
		{"minutes too large", models.ProfileWalking, 70},
		{"minutes zero", models.ProfileWalking, 0},
		{"minutes negative", models.ProfileDriving, -10},
		{"unknown profile", models.TravelProfile("teleport"), 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			envelope, err := svc.ComputeEnvelope(context.Background(), tc.profile, seoulCityHall, tc.minutes)
			assert.Nil(t, envelope)
			assert.ErrorIs(t, err, ErrInvalidEnvelopeInput)
		})
	}

	assert.Zero(t, provider.calls, "invalid input is rejected before any provider call")
}

func TestComputeEnvelopeProviderPolygons(t *testing.T) {
	ring := []models.LatLng{
		{Lat: 37.57, Lng: 126.97},
		{Lat: 37.57, Lng: 126.99},
		{Lat: 37.56, Lng: 126.98},
		{Lat: 37.57, Lng: 126.97},
	}
	svc := newTestReachabilityService(&fakeReachability{
		polygons: []models.Polygon{{Ring: ring}},
	})

	envelope, err := svc.ComputeEnvelope(context.Background(), models.ProfileWalking, seoulCityHall, 15)
	require.NoError(t, err)

	assert.False(t, envelope.FallbackUsed)
	require.Len(t, envelope.Polygons, 1)
	assert.Equal(t, ring, envelope.Polygons[0].Ring)
	assert.Equal(t, models.ProfileWalking, envelope.Profile)
	assert.Equal(t, 15, envelope.Minutes)
}

func TestComputeEnvelopeProviderFailure(t *testing.T) {
	svc := newTestReachabilityService(&fakeReachability{
		err: errors.New("isochrone service unavailable"),
	})

	envelope, err := svc.ComputeEnvelope(context.Background(), models.ProfileWalking, seoulCityHall, 30)
	require.NoError(t, err, "provider failure never propagates")

	assert.True(t, envelope.FallbackUsed)
	require.Len(t, envelope.Polygons, 1)

	// walking 5 km/h for 30 minutes buffers a 2.5km circle
	ring := envelope.Polygons[0].Ring
	require.NotEmpty(t, ring)
	assert.Equal(t, ring[0], ring[len(ring)-1], "fallback ring is closed")
	for _, v := range ring {
		assert.InDelta(t, 2.5, spatial.DistanceKm(seoulCityHall, v), 0.01)
	}
}

func TestComputeEnvelopeProviderEmptyResult(t *testing.T) {
	svc := newTestReachabilityService(&fakeReachability{})

	envelope, err := svc.ComputeEnvelope(context.Background(), models.ProfileDriving, seoulCityHall, 15)
	require.NoError(t, err)

	// no polygons from the provider degrades the same way as a failure
	assert.True(t, envelope.FallbackUsed)
	require.Len(t, envelope.Polygons, 1)

	// driving 40 km/h for 15 minutes buffers a 10km circle
	assert.InDelta(t, 10.0, spatial.DistanceKm(seoulCityHall, envelope.Polygons[0].Ring[0]), 0.05)
}
