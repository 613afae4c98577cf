package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNoRoute indicates the routing engine could not produce a route
// between the two points.
var ErrNoRoute = errors.New("no route between points")

// Point is a WGS84 coordinate pair.
type Point struct {
	Latitude  float64
	Longitude float64
}

// RoutingClient resolves driving distances between two points.
type RoutingClient interface {
	DrivingDistance(ctx context.Context, from, to Point) (meters float64, err error)
}

// OSRMClient queries an OSRM-compatible routing HTTP API.
type OSRMClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOSRMClient creates a routing client against the given base URL.
// Each request is bounded by requestTimeout independently of the
// caller's context.
func NewOSRMClient(baseURL string, requestTimeout time.Duration) *OSRMClient {
	return &OSRMClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
	} `json:"routes"`
}

// DrivingDistance returns the driving distance in meters between two
// points. Any transport failure, non-2xx response or malformed body is
// returned as an error; callers treat the distance as unknown.
func (c *OSRMClient) DrivingDistance(ctx context.Context, from, to Point) (float64, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		c.baseURL, from.Longitude, from.Latitude, to.Longitude, to.Latitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build routing request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("routing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("routing service returned status %d", resp.StatusCode)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode routing response: %w", err)
	}

	if body.Code != "Ok" || len(body.Routes) == 0 {
		return 0, ErrNoRoute
	}

	return body.Routes[0].Distance, nil
}
