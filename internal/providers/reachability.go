package providers

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ptyoiy/tracker-sub000/internal/models"
)

// IsochroneClient implements ports.ReachabilityProvider against an
// OpenRouteService-compatible isochrones API.
type IsochroneClient struct {
	restClient
	baseURL string
	apiKey  string
}

// NewIsochroneClient constructs an isochrone client from explicit configuration.
func NewIsochroneClient(baseURL, apiKey string, logger *zap.Logger) *IsochroneClient {
	return &IsochroneClient{
		restClient: newRESTClient(logger),
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

var isochroneProfiles = map[models.TravelProfile]string{
	models.ProfileWalking: "foot-walking",
	models.ProfileDriving: "driving-car",
	models.ProfileCycling: "cycling-regular",
}

type isochroneResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][][]float64 `json:"coordinates"` // rings of [lng, lat]
		} `json:"geometry"`
	} `json:"features"`
}

// FetchPolygons retrieves isochrone polygons for the given profile, center
// and minutes horizon. Returns an empty slice when the provider has no
// polygon for the request.
func (c *IsochroneClient) FetchPolygons(ctx context.Context, profile models.TravelProfile, center models.LatLng, minutes int) ([]models.Polygon, error) {
	apiProfile, ok := isochroneProfiles[profile]
	if !ok {
		return nil, fmt.Errorf("unsupported travel profile %q", profile)
	}

	endpoint := fmt.Sprintf("%s/v2/isochrones/%s", c.baseURL, apiProfile)

	body := map[string]any{
		"locations": [][]float64{{center.Lng, center.Lat}},
		"range":     []int{minutes * 60},
	}

	header := http.Header{}
	header.Set("Authorization", c.apiKey)

	var resp isochroneResponse
	if err := c.postJSON(ctx, endpoint, header, body, &resp); err != nil {
		return nil, fmt.Errorf("fetch isochrones: %w", err)
	}

	polygons := make([]models.Polygon, 0, len(resp.Features))
	for _, feature := range resp.Features {
		for _, ring := range feature.Geometry.Coordinates {
			vertices := make([]models.LatLng, 0, len(ring))
			for _, coord := range ring {
				if len(coord) < 2 {
					continue
				}
				vertices = append(vertices, models.LatLng{Lat: coord[1], Lng: coord[0]})
			}
			if len(vertices) > 0 {
				polygons = append(polygons, models.Polygon{Ring: vertices})
			}
		}
	}

	c.logger.Debug("fetched isochrone polygons",
		zap.String("profile", string(profile)),
		zap.Int("minutes", minutes),
		zap.Int("polygons", len(polygons)))

	return polygons, nil
}
