package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ptyoiy/tracker-sub000/internal/models"
	"github.com/ptyoiy/tracker-sub000/internal/ports"
	"github.com/ptyoiy/tracker-sub000/internal/repository"
)

// GeocodeService resolves coordinates to addresses through a persistent
// cache, falling through to the geocoding provider on a miss.
type GeocodeService struct {
	cache    *repository.GeocodeCache
	provider ports.GeocodingProvider
	logger   *zap.Logger
}

// NewGeocodeService creates a new geocode service.
func NewGeocodeService(cache *repository.GeocodeCache, provider ports.GeocodingProvider, logger *zap.Logger) *GeocodeService {
	return &GeocodeService{
		cache:    cache,
		provider: provider,
		logger:   logger,
	}
}

// Lookup returns the address for a coordinate, cache first. A failed cache
// read degrades to a provider call; a failed cache write only loses the
// cached copy.
func (s *GeocodeService) Lookup(ctx context.Context, point models.LatLng) (string, error) {
	if s.cache != nil {
		label, found, err := s.cache.Get(ctx, point.Lat, point.Lng)
		if err != nil {
			s.logger.Warn("geocode cache read failed", zap.Error(err))
		} else if found {
			return label, nil
		}
	}

	label, err := s.provider.ReverseGeocode(ctx, point)
	if err != nil {
		return "", err
	}

	if s.cache != nil && label != "" {
		if err := s.cache.Put(ctx, point.Lat, point.Lng, label); err != nil {
			s.logger.Warn("geocode cache write failed", zap.Error(err))
		}
	}

	return label, nil
}
