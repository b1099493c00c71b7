package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ptyoiy/tracker-sub000/internal/analysis"
	"github.com/ptyoiy/tracker-sub000/internal/models"
	"github.com/ptyoiy/tracker-sub000/internal/ports"
)

// ErrTooFewObservations rejects analysis requests that carry nothing to
// analyze as a whole-request validation failure.
var ErrTooFewObservations = errors.New("at least two observations are required")

// AnalyzeResult is the outcome of one analysis run over an observation set.
// FallbackUsed signals straight-line-only analysis: no provider route
// corroborated any segment.
type AnalyzeResult struct {
	Segments     []models.SegmentAnalysis `json:"segments"`
	FallbackUsed bool                     `json:"fallback_used"`
	ContentHash  string                   `json:"content_hash"`
}

// AnalysisService drives the per-segment pipeline: basic metrics, the
// mode-eligibility gate, provider fetches, candidate normalization and the
// duration tolerance filter. It owns the SegmentAnalysis/RouteInfo lifecycle
// for a single invocation and keeps no state between runs.
type AnalysisService struct {
	routing  ports.RoutingProvider
	geocoder *GeocodeService // optional label enrichment, may be nil
	logger   *zap.Logger

	thresholds     analysis.Thresholds
	toleranceRatio float64
	fetchTimeout   time.Duration
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(
	routing ports.RoutingProvider,
	geocoder *GeocodeService,
	logger *zap.Logger,
	thresholds analysis.Thresholds,
	toleranceRatio float64,
	fetchTimeout time.Duration,
) *AnalysisService {
	return &AnalysisService{
		routing:        routing,
		geocoder:       geocoder,
		logger:         logger,
		thresholds:     thresholds,
		toleranceRatio: toleranceRatio,
		fetchTimeout:   fetchTimeout,
	}
}

// Analyze runs the full segment pipeline over an observation sequence.
//
// Observations are sorted by timestamp before use. Segments are processed
// concurrently but assembled index-preserving, so output order always matches
// input order. Provider failures never abort the run; a run where no fetch
// produced a candidate is still a success with FallbackUsed set.
func (s *AnalysisService) Analyze(ctx context.Context, observations []models.Observation) (*AnalyzeResult, error) {
	if len(observations) < 2 {
		return nil, ErrTooFewObservations
	}

	obs := make([]models.Observation, len(observations))
	copy(obs, observations)
	sort.SliceStable(obs, func(i, j int) bool {
		return obs[i].Timestamp.Before(obs[j].Timestamp)
	})

	s.enrichLabels(ctx, obs)

	segments := analysis.BuildSegmentAnalyses(obs, s.thresholds)

	var wg sync.WaitGroup
	for i := range segments {
		wg.Add(1)
		go func(seg *models.SegmentAnalysis) {
			defer wg.Done()
			s.collectCandidates(ctx, seg)
		}(&segments[i])
	}
	wg.Wait()

	fallbackUsed := true
	for _, seg := range segments {
		if len(seg.CandidateRoutes) > 0 {
			fallbackUsed = false
			break
		}
	}

	s.logger.Info("analysis completed",
		zap.Int("observations", len(obs)),
		zap.Int("segments", len(segments)),
		zap.Bool("fallback_used", fallbackUsed))

	return &AnalyzeResult{
		Segments:     segments,
		FallbackUsed: fallbackUsed,
		ContentHash:  models.HashObservations(obs),
	}, nil
}

// enrichLabels fills in missing observation labels via reverse geocoding.
// Enrichment is best-effort: a failed lookup leaves the label empty.
func (s *AnalysisService) enrichLabels(ctx context.Context, obs []models.Observation) {
	if s.geocoder == nil {
		return
	}
	for i := range obs {
		if obs[i].Label != "" {
			continue
		}
		point := obs[i].Point()
		label, ok := attempt(ctx, s.logger, "reverse-geocode", s.fetchTimeout, func(fetchCtx context.Context) (string, error) {
			return s.geocoder.Lookup(fetchCtx, point)
		})
		if ok {
			obs[i].Label = label
		}
	}
}

// collectCandidates decides which provider route types to attempt for one
// segment, fetches them, normalizes the responses and applies the tolerance
// filter.
//
// The pedestrian and vehicle gates are not mutually exclusive: the band
// between VehicleGateMinKmh and PedestrianGateMaxKmh fires both attempts. The
// transit fetch fires when the inferred mode is transit. Pedestrian and
// vehicle fetches run concurrently; each is independently isolated.
func (s *AnalysisService) collectCandidates(ctx context.Context, seg *models.SegmentAnalysis) {
	from := seg.From.Point()
	to := seg.To.Point()

	wantPedestrian := seg.InferredMode == models.ModeWalking || seg.AvgSpeedKmh < s.thresholds.PedestrianGateMaxKmh
	wantVehicle := seg.InferredMode == models.ModeVehicle || seg.AvgSpeedKmh >= s.thresholds.VehicleGateMinKmh
	wantTransit := seg.InferredMode == models.ModeTransit

	var (
		wg           sync.WaitGroup
		pedRoute     *ports.RouteSummary
		vehicleRoute *ports.RouteSummary
		pedOK, vehOK bool
	)

	if wantPedestrian {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pedRoute, pedOK = attempt(ctx, s.logger, "pedestrian-route", s.fetchTimeout, func(fetchCtx context.Context) (*ports.RouteSummary, error) {
				return s.routing.FetchPedestrianRoute(fetchCtx, from, to)
			})
		}()
	}

	if wantVehicle {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vehicleRoute, vehOK = attempt(ctx, s.logger, "vehicle-route", s.fetchTimeout, func(fetchCtx context.Context) (*ports.RouteSummary, error) {
				return s.routing.FetchVehicleRoute(fetchCtx, from, to)
			})
		}()
	}

	var (
		transitRoute *ports.TransitRoute
		transitOK    bool
	)
	if wantTransit {
		departAt := seg.From.Timestamp
		transitRoute, transitOK = attempt(ctx, s.logger, "transit-route", s.fetchTimeout, func(fetchCtx context.Context) (*ports.TransitRoute, error) {
			return s.routing.FetchTransitRoute(fetchCtx, from, to, &departAt)
		})
	}

	wg.Wait()

	candidates := make([]models.RouteInfo, 0, 3)
	if pedOK && pedRoute != nil {
		candidates = append(candidates, analysis.BuildWalkingRoute(seg.ID, pedRoute))
	}
	if transitOK && transitRoute != nil && len(transitRoute.Legs) > 0 {
		candidates = append(candidates, analysis.BuildTransitRoute(seg.ID, transitRoute))
	}
	if vehOK && vehicleRoute != nil {
		candidates = append(candidates, analysis.BuildVehicleRoute(seg.ID, vehicleRoute))
	}

	seg.CandidateRoutes = analysis.FilterByDurationTolerance(candidates, seg.DurationSeconds, s.toleranceRatio)
}
