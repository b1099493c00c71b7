package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/ptyoiy/tracker-sub000/internal/models"
	"github.com/ptyoiy/tracker-sub000/internal/ports"
)

// RoutingClient implements ports.RoutingProvider. Pedestrian and vehicle
// routes come from an OpenRouteService-compatible directions API; transit
// routes come from a separate public-transit path API keyed by query
// parameter.
type RoutingClient struct {
	restClient
	baseURL        string
	apiKey         string
	transitBaseURL string
	transitAPIKey  string
}

// NewRoutingClient constructs a routing client from explicit configuration.
// The client never reads environment state itself.
func NewRoutingClient(baseURL, apiKey, transitBaseURL, transitAPIKey string, logger *zap.Logger) *RoutingClient {
	return &RoutingClient{
		restClient:     newRESTClient(logger),
		baseURL:        baseURL,
		apiKey:         apiKey,
		transitBaseURL: transitBaseURL,
		transitAPIKey:  transitAPIKey,
	}
}

// directions API wire format (GeoJSON subset)
type directionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"` // meters
				Duration float64 `json:"duration"` // seconds
			} `json:"summary"`
		} `json:"properties"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lng, lat]
		} `json:"geometry"`
	} `json:"features"`
}

// FetchPedestrianRoute retrieves a walking route between two points.
func (c *RoutingClient) FetchPedestrianRoute(ctx context.Context, from, to models.LatLng) (*ports.RouteSummary, error) {
	return c.fetchDirections(ctx, "foot-walking", from, to)
}

// FetchVehicleRoute retrieves a driving route between two points.
func (c *RoutingClient) FetchVehicleRoute(ctx context.Context, from, to models.LatLng) (*ports.RouteSummary, error) {
	return c.fetchDirections(ctx, "driving-car", from, to)
}

func (c *RoutingClient) fetchDirections(ctx context.Context, profile string, from, to models.LatLng) (*ports.RouteSummary, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, profile)

	body := map[string]any{
		"coordinates": [][]float64{
			{from.Lng, from.Lat},
			{to.Lng, to.Lat},
		},
	}

	header := http.Header{}
	header.Set("Authorization", c.apiKey)

	var resp directionsResponse
	if err := c.postJSON(ctx, endpoint, header, body, &resp); err != nil {
		// The directions API reports unroutable points as 404.
		var he *httpStatusError
		if errors.As(err, &he) && he.Code == http.StatusNotFound {
			return nil, ports.ErrNoRoute
		}
		return nil, fmt.Errorf("fetch %s directions: %w", profile, err)
	}

	if len(resp.Features) == 0 {
		return nil, ports.ErrNoRoute
	}

	feature := resp.Features[0]
	polyline := make([]models.LatLng, 0, len(feature.Geometry.Coordinates))
	for _, coord := range feature.Geometry.Coordinates {
		if len(coord) < 2 {
			continue
		}
		polyline = append(polyline, models.LatLng{Lat: coord[1], Lng: coord[0]})
	}

	return &ports.RouteSummary{
		DistanceMeters:  feature.Properties.Summary.Distance,
		DurationSeconds: int64(feature.Properties.Summary.Duration),
		Polyline:        polyline,
	}, nil
}

// transit path API wire format. Traffic types: 1 subway, 2 bus, 3 walk.
// Aggregate and per-section times are reported in minutes.
type transitResponse struct {
	Result struct {
		Path []struct {
			Info struct {
				TotalTime     int64   `json:"totalTime"`
				TotalDistance float64 `json:"totalDistance"`
			} `json:"info"`
			SubPath []struct {
				TrafficType int     `json:"trafficType"`
				Distance    float64 `json:"distance"`
				SectionTime int64   `json:"sectionTime"`
			} `json:"subPath"`
		} `json:"path"`
	} `json:"result"`
	Error *struct {
		Code string `json:"code"`
		Msg  string `json:"msg"`
	} `json:"error"`
}

// FetchTransitRoute retrieves a public-transit route between two points.
// searchTime, when non-nil, asks the provider to search departures at that
// time instead of now.
func (c *RoutingClient) FetchTransitRoute(ctx context.Context, from, to models.LatLng, searchTime *time.Time) (*ports.TransitRoute, error) {
	q := url.Values{}
	q.Set("SX", fmt.Sprintf("%f", from.Lng))
	q.Set("SY", fmt.Sprintf("%f", from.Lat))
	q.Set("EX", fmt.Sprintf("%f", to.Lng))
	q.Set("EY", fmt.Sprintf("%f", to.Lat))
	q.Set("apiKey", c.transitAPIKey)
	if searchTime != nil {
		q.Set("searchDttm", searchTime.Format("200601021504"))
	}

	endpoint := fmt.Sprintf("%s/searchPubTransPathT?%s", c.transitBaseURL, q.Encode())

	var resp transitResponse
	if err := c.getJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch transit route: %w", err)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("transit provider error %s: %s", resp.Error.Code, resp.Error.Msg)
	}
	if len(resp.Result.Path) == 0 {
		return nil, ports.ErrNoRoute
	}

	best := resp.Result.Path[0]
	legs := make([]ports.TransitLeg, 0, len(best.SubPath))
	for _, sub := range best.SubPath {
		// Zero-length walk sections pad transfers in the provider payload.
		if sub.Distance == 0 && sub.SectionTime == 0 {
			continue
		}
		legs = append(legs, ports.TransitLeg{
			Mode:            transitLegType(sub.TrafficType),
			DistanceMeters:  sub.Distance,
			DurationSeconds: sub.SectionTime * 60,
		})
	}

	if len(legs) == 0 {
		return nil, ports.ErrNoRoute
	}

	return &ports.TransitRoute{
		DistanceMeters:  best.Info.TotalDistance,
		DurationSeconds: best.Info.TotalTime * 60,
		Legs:            legs,
	}, nil
}

func transitLegType(trafficType int) string {
	switch trafficType {
	case 1:
		return ports.TransitLegSubway
	case 2:
		return ports.TransitLegBus
	default:
		return ports.TransitLegWalk
	}
}
