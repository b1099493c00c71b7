package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ptyoiy/tracker-sub000/internal/database"
	"github.com/ptyoiy/tracker-sub000/internal/models"
	"github.com/ptyoiy/tracker-sub000/internal/repository"
)

type fakeGeocoder struct {
	label string
	err   error
	calls int
}

func (f *fakeGeocoder) ReverseGeocode(_ context.Context, _ models.LatLng) (string, error) {
	f.calls++
	return f.label, f.err
}

func newTestGeocodeService(t *testing.T, provider *fakeGeocoder) *GeocodeService {
	t.Helper()
	db, err := database.Open(database.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewGeocodeService(repository.NewGeocodeCache(db), provider, zap.NewNop())
}

func TestGeocodeLookupCachesProviderResults(t *testing.T) {
	provider := &fakeGeocoder{label: "중구 세종대로 110"}
	svc := newTestGeocodeService(t, provider)

	point := models.LatLng{Lat: 37.5665, Lng: 126.978}

	label, err := svc.Lookup(context.Background(), point)
	require.NoError(t, err)
	assert.Equal(t, "중구 세종대로 110", label)
	assert.Equal(t, 1, provider.calls)

	// second lookup is served from the cache
	label, err = svc.Lookup(context.Background(), point)
	require.NoError(t, err)
	assert.Equal(t, "중구 세종대로 110", label)
	assert.Equal(t, 1, provider.calls)
}

func TestGeocodeLookupProviderError(t *testing.T) {
	provider := &fakeGeocoder{err: errors.New("quota exhausted")}
	svc := newTestGeocodeService(t, provider)

	_, err := svc.Lookup(context.Background(), models.LatLng{Lat: 37.5, Lng: 127.0})
	assert.Error(t, err)
}

func TestGeocodeLookupDoesNotCacheEmptyLabels(t *testing.T) {
	provider := &fakeGeocoder{label: ""}
	svc := newTestGeocodeService(t, provider)

	point := models.LatLng{Lat: 37.4, Lng: 127.1}

	label, err := svc.Lookup(context.Background(), point)
	require.NoError(t, err)
	assert.Empty(t, label)

	// an empty provider answer is retried on the next lookup
	_, err = svc.Lookup(context.Background(), point)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}
