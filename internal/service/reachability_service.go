package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ptyoiy/tracker-sub000/internal/models"
	"github.com/ptyoiy/tracker-sub000/internal/ports"
	"github.com/ptyoiy/tracker-sub000/internal/spatial"
)

// ErrInvalidEnvelopeInput marks structurally invalid reachability requests.
// The defensive default is to present no reachability area rather than guess.
var ErrInvalidEnvelopeInput = errors.New("invalid reachability input")

// Minutes horizon bounds for a reachability request.
const (
	MinEnvelopeMinutes = 1
	MaxEnvelopeMinutes = 60
)

// assumedSpeedKmh is the per-profile speed table sizing the fallback circle.
var assumedSpeedKmh = map[models.TravelProfile]float64{
	models.ProfileWalking: 5,
	models.ProfileDriving: 40,
	models.ProfileCycling: 15,
}

const fallbackCircleVertices = 36

// ReachabilityService assembles reachability envelopes: provider isochrones
// first, a locally buffered circle when the provider fails or returns
// nothing. Provider failure never propagates to the caller.
type ReachabilityService struct {
	provider     ports.ReachabilityProvider
	logger       *zap.Logger
	fetchTimeout time.Duration
}

// NewReachabilityService creates a new reachability service.
func NewReachabilityService(provider ports.ReachabilityProvider, logger *zap.Logger, fetchTimeout time.Duration) *ReachabilityService {
	return &ReachabilityService{
		provider:     provider,
		logger:       logger,
		fetchTimeout: fetchTimeout,
	}
}

// ComputeEnvelope returns the area reachable from center within the minutes
// horizon. It only errors for structurally invalid input; every other outcome
// resolves to a concrete, possibly approximate, envelope.
func (s *ReachabilityService) ComputeEnvelope(ctx context.Context, profile models.TravelProfile, center models.LatLng, minutes int) (*models.ReachabilityEnvelope, error) {
	if minutes < MinEnvelopeMinutes || minutes > MaxEnvelopeMinutes {
		return nil, fmt.Errorf("%w: minutes must be in [%d,%d], got %d",
			ErrInvalidEnvelopeInput, MinEnvelopeMinutes, MaxEnvelopeMinutes, minutes)
	}
	if !models.ValidProfile(profile) {
		return nil, fmt.Errorf("%w: unknown profile %q", ErrInvalidEnvelopeInput, profile)
	}

	polygons, ok := attempt(ctx, s.logger, "reachability-polygons", s.fetchTimeout, func(fetchCtx context.Context) ([]models.Polygon, error) {
		return s.provider.FetchPolygons(fetchCtx, profile, center, minutes)
	})

	if ok && len(polygons) > 0 {
		return &models.ReachabilityEnvelope{
			Profile:  profile,
			Minutes:  minutes,
			Polygons: polygons,
		}, nil
	}

	// Approximate reachability as a circle sized by the assumed profile speed.
	radiusKm := assumedSpeedKmh[profile] * float64(minutes) / 60.0
	circle := spatial.CirclePolygon(center, radiusKm, fallbackCircleVertices)

	s.logger.Info("reachability fallback polygon used",
		zap.String("profile", string(profile)),
		zap.Int("minutes", minutes),
		zap.Float64("radius_km", radiusKm))

	return &models.ReachabilityEnvelope{
		Profile:      profile,
		Minutes:      minutes,
		Polygons:     []models.Polygon{circle},
		FallbackUsed: true,
	}, nil
}
