package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ptyoiy/tracker-sub000/internal/models"
	"github.com/ptyoiy/tracker-sub000/internal/service"
	"github.com/ptyoiy/tracker-sub000/pkg/response"
)

// AnalysisHandler handles HTTP requests for the analysis pipeline.
type AnalysisHandler struct {
	analysis     *service.AnalysisService
	reachability *service.ReachabilityService
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(analysis *service.AnalysisService, reachability *service.ReachabilityService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis, reachability: reachability}
}

// AnalyzeRequest is the body of POST /api/v1/analysis/segments.
type AnalyzeRequest struct {
	Observations  []models.Observation `json:"observations" binding:"required,dive"`
	FutureMinutes int                  `json:"future_minutes"`
}

// AnalyzeResponse is the payload returned for a segment analysis run.
type AnalyzeResponse struct {
	Segments     []models.SegmentAnalysis     `json:"segments"`
	FallbackUsed bool                         `json:"fallback_used"`
	ContentHash  string                       `json:"content_hash,omitempty"`
	Future       *models.ReachabilityEnvelope `json:"future,omitempty"`
}

func rejectedAnalyzeBody() AnalyzeResponse {
	return AnalyzeResponse{Segments: []models.SegmentAnalysis{}, FallbackUsed: true}
}

// AnalyzeSegments handles POST /api/v1/analysis/segments.
func (h *AnalysisHandler) AnalyzeSegments(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error(), rejectedAnalyzeBody())
		return
	}

	result, err := h.analysis.Analyze(c.Request.Context(), req.Observations)
	if err != nil {
		if errors.Is(err, service.ErrTooFewObservations) {
			response.BadRequest(c, err.Error(), rejectedAnalyzeBody())
			return
		}
		response.InternalError(c, "analysis failed")
		return
	}

	resp := AnalyzeResponse{
		Segments:     result.Segments,
		FallbackUsed: result.FallbackUsed,
		ContentHash:  result.ContentHash,
	}

	// Reachability from the last observation is best-effort extra context;
	// an out-of-range horizon simply omits it.
	if req.FutureMinutes >= service.MinEnvelopeMinutes && req.FutureMinutes <= service.MaxEnvelopeMinutes {
		last := req.Observations[0]
		for _, o := range req.Observations[1:] {
			if o.Timestamp.After(last.Timestamp) {
				last = o
			}
		}
		envelope, err := h.reachability.ComputeEnvelope(c.Request.Context(), models.ProfileWalking, last.Point(), req.FutureMinutes)
		if err == nil {
			resp.Future = envelope
		}
	}

	response.Success(c, resp)
}

// ReachabilityRequest is the body of POST /api/v1/analysis/reachability.
type ReachabilityRequest struct {
	Center  models.LatLng        `json:"center" binding:"required"`
	Minutes int                  `json:"minutes" binding:"required"`
	Profile models.TravelProfile `json:"profile" binding:"required"`
}

func rejectedEnvelopeBody() gin.H {
	return gin.H{"polygons": []models.Polygon{}, "fallback_used": true}
}

// ComputeReachability handles POST /api/v1/analysis/reachability.
func (h *AnalysisHandler) ComputeReachability(c *gin.Context) {
	var req ReachabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error(), rejectedEnvelopeBody())
		return
	}

	envelope, err := h.reachability.ComputeEnvelope(c.Request.Context(), req.Profile, req.Center, req.Minutes)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEnvelopeInput) {
			response.BadRequest(c, err.Error(), rejectedEnvelopeBody())
			return
		}
		response.InternalError(c, "reachability computation failed")
		return
	}

	response.Success(c, envelope)
}
