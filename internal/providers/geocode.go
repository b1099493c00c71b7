package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/ptyoiy/tracker-sub000/internal/models"
)

// GeocodeClient implements ports.GeocodingProvider against a coord-to-address
// lookup API.
type GeocodeClient struct {
	restClient
	baseURL string
	apiKey  string
}

// NewGeocodeClient constructs a geocoding client from explicit configuration.
func NewGeocodeClient(baseURL, apiKey string, logger *zap.Logger) *GeocodeClient {
	return &GeocodeClient{
		restClient: newRESTClient(logger),
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type reverseGeocodeResponse struct {
	Documents []struct {
		Address struct {
			AddressName string `json:"address_name"`
		} `json:"address"`
	} `json:"documents"`
}

// ReverseGeocode resolves a coordinate to a human-readable address. An empty
// string with nil error means the provider had no address for the point.
func (c *GeocodeClient) ReverseGeocode(ctx context.Context, point models.LatLng) (string, error) {
	q := url.Values{}
	q.Set("x", fmt.Sprintf("%f", point.Lng))
	q.Set("y", fmt.Sprintf("%f", point.Lat))

	endpoint := fmt.Sprintf("%s/geo/coord2address.json?%s", c.baseURL, q.Encode())

	header := http.Header{}
	header.Set("Authorization", "KakaoAK "+c.apiKey)

	var resp reverseGeocodeResponse
	if err := c.getJSON(ctx, endpoint, header, &resp); err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}

	if len(resp.Documents) == 0 {
		return "", nil
	}

	address := resp.Documents[0].Address.AddressName
	c.logger.Debug("reverse geocoded point",
		zap.Float64("lat", point.Lat),
		zap.Float64("lng", point.Lng),
		zap.String("address", address))

	return address, nil
}
