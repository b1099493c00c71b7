package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ptyoiy/tracker-sub000/internal/models"
	"github.com/ptyoiy/tracker-sub000/internal/service"
	"github.com/ptyoiy/tracker-sub000/pkg/response"
)

// GeocodeHandler handles HTTP requests for address lookups.
type GeocodeHandler struct {
	service *service.GeocodeService
}

// NewGeocodeHandler creates a new geocode handler.
func NewGeocodeHandler(service *service.GeocodeService) *GeocodeHandler {
	return &GeocodeHandler{service: service}
}

// ReverseGeocode handles GET /api/v1/geocode/reverse?lat=..&lng=..
func (h *GeocodeHandler) ReverseGeocode(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		response.BadRequest(c, "invalid lat", nil)
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil || lng < -180 || lng > 180 {
		response.BadRequest(c, "invalid lng", nil)
		return
	}

	label, err := h.service.Lookup(c.Request.Context(), models.LatLng{Lat: lat, Lng: lng})
	if err != nil {
		response.InternalError(c, "reverse geocoding failed")
		return
	}

	response.Success(c, gin.H{"label": label})
}
