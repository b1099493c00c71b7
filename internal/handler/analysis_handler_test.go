package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ptyoiy/tracker-sub000/internal/analysis"
	"github.com/ptyoiy/tracker-sub000/internal/models"
	"github.com/ptyoiy/tracker-sub000/internal/ports"
	"github.com/ptyoiy/tracker-sub000/internal/service"
)

type stubRouting struct {
	ped *ports.RouteSummary
}

func (s *stubRouting) FetchPedestrianRoute(_ context.Context, _, _ models.LatLng) (*ports.RouteSummary, error) {
	if s.ped == nil {
		return nil, ports.ErrNoRoute
	}
	return s.ped, nil
}

func (s *stubRouting) FetchVehicleRoute(_ context.Context, _, _ models.LatLng) (*ports.RouteSummary, error) {
	return nil, ports.ErrNoRoute
}

func (s *stubRouting) FetchTransitRoute(_ context.Context, _, _ models.LatLng, _ *time.Time) (*ports.TransitRoute, error) {
	return nil, ports.ErrNoRoute
}

type stubReachability struct{}

func (s *stubReachability) FetchPolygons(_ context.Context, _ models.TravelProfile, _ models.LatLng, _ int) ([]models.Polygon, error) {
	return nil, errors.New("unavailable")
}

func newTestRouter(routing ports.RoutingProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	analysisService := service.NewAnalysisService(
		routing, nil, logger,
		analysis.DefaultThresholds(), analysis.DefaultToleranceRatio, time.Second,
	)
	reachabilityService := service.NewReachabilityService(&stubReachability{}, logger, time.Second)
	h := NewAnalysisHandler(analysisService, reachabilityService)

	r := gin.New()
	r.POST("/analysis/segments", h.AnalyzeSegments)
	r.POST("/analysis/reachability", h.ComputeReachability)
	return r
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router *gin.Engine, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestAnalyzeSegmentsRejectsSingleObservation(t *testing.T) {
	router := newTestRouter(&stubRouting{})

	w, env := doJSON(t, router, "/analysis/segments", gin.H{
		"observations": []gin.H{
			{"id": "a", "lat": 37.5665, "lng": 126.978, "timestamp": "2025-06-01T09:00:00Z"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var data AnalyzeResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.FallbackUsed)
	assert.Empty(t, data.Segments)
}

func TestAnalyzeSegmentsRejectsOutOfRangeCoordinates(t *testing.T) {
	router := newTestRouter(&stubRouting{})

	w, env := doJSON(t, router, "/analysis/segments", gin.H{
		"observations": []gin.H{
			{"id": "a", "lat": 200.0, "lng": 126.978, "timestamp": "2025-06-01T09:00:00Z"},
			{"id": "b", "lat": 37.5547, "lng": 126.9707, "timestamp": "2025-06-01T09:10:00Z"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var data AnalyzeResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.FallbackUsed)
	assert.Empty(t, data.Segments)
}

func TestAnalyzeSegmentsAcceptsZeroCoordinates(t *testing.T) {
	router := newTestRouter(&stubRouting{})

	// 0/0 is a legitimate coordinate and must not trip range validation
	w, env := doJSON(t, router, "/analysis/segments", gin.H{
		"observations": []gin.H{
			{"id": "a", "lat": 0.0, "lng": 0.0, "timestamp": "2025-06-01T09:00:00Z"},
			{"id": "b", "lat": 0.01, "lng": 0.01, "timestamp": "2025-06-01T09:10:00Z"},
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var data AnalyzeResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Segments, 1)
}

func TestAnalyzeSegmentsFallbackSuccess(t *testing.T) {
	router := newTestRouter(&stubRouting{})

	w, env := doJSON(t, router, "/analysis/segments", gin.H{
		"observations": []gin.H{
			{"id": "a", "lat": 37.5665, "lng": 126.978, "timestamp": "2025-06-01T09:00:00Z"},
			{"id": "b", "lat": 37.5547, "lng": 126.9707, "timestamp": "2025-06-01T09:10:00Z"},
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var data AnalyzeResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Segments, 1)
	assert.Empty(t, data.Segments[0].CandidateRoutes)
	assert.True(t, data.FallbackUsed)
}

func TestAnalyzeSegmentsWithCandidate(t *testing.T) {
	router := newTestRouter(&stubRouting{
		ped: &ports.RouteSummary{DistanceMeters: 1000, DurationSeconds: 610},
	})

	w, env := doJSON(t, router, "/analysis/segments", gin.H{
		"observations": []gin.H{
			{"id": "a", "lat": 37.5665, "lng": 126.978, "timestamp": "2025-06-01T09:00:00Z"},
			{"id": "b", "lat": 37.5547, "lng": 126.9707, "timestamp": "2025-06-01T09:10:00Z"},
		},
		"future_minutes": 15,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var data AnalyzeResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Segments, 1)
	require.Len(t, data.Segments[0].CandidateRoutes, 1)
	assert.False(t, data.FallbackUsed)

	// the future envelope rides along, degraded to the circular fallback
	require.NotNil(t, data.Future)
	assert.True(t, data.Future.FallbackUsed)
	assert.Len(t, data.Future.Polygons, 1)
}

func TestComputeReachabilityInvalidMinutes(t *testing.T) {
	router := newTestRouter(&stubRouting{})

	w, env := doJSON(t, router, "/analysis/reachability", gin.H{
		"center":  gin.H{"lat": 37.5665, "lng": 126.978},
		"minutes": 70,
		"profile": "walking",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var data struct {
		Polygons     []models.Polygon `json:"polygons"`
		FallbackUsed bool             `json:"fallback_used"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.FallbackUsed)
	assert.Empty(t, data.Polygons)
}

func TestComputeReachabilityFallback(t *testing.T) {
	router := newTestRouter(&stubRouting{})

	w, env := doJSON(t, router, "/analysis/reachability", gin.H{
		"center":  gin.H{"lat": 37.5665, "lng": 126.978},
		"minutes": 30,
		"profile": "walking",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var data models.ReachabilityEnvelope
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.FallbackUsed)
	require.Len(t, data.Polygons, 1)
	assert.NotEmpty(t, data.Polygons[0].Ring)
}
