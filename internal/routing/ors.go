// Package routing is the client for the OpenRouteService directions API.
// It issues exactly one request per call: no retries and no caching.
package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/observability"
)

const (
	DefaultBaseURL = "https://api.openrouteservice.org"
	DefaultProfile = "driving-car"
	DefaultTimeout = 10 * time.Second
)

// Options tunes an ORSClient. Zero values fall back to the defaults above.
type Options struct {
	BaseURL string
	Profile string
	Timeout time.Duration
	Logger  *slog.Logger
}

// ORSClient calls the OpenRouteService directions endpoint.
// The API key is fixed at construction. It is safe for concurrent use.
type ORSClient struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	log     *slog.Logger
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

// NewORSClient builds a client authenticated with apiKey.
func NewORSClient(apiKey string, opts Options) (*ORSClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("routing.NewORSClient: api key is empty")
	}

	c := &ORSClient{
		session: &http.Client{Timeout: DefaultTimeout},
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		profile: DefaultProfile,
		log:     slog.Default(),
	}
	if opts.BaseURL != "" {
		c.baseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.Profile != "" {
		c.profile = opts.Profile
	}
	if opts.Timeout > 0 {
		c.session.Timeout = opts.Timeout
	}
	if opts.Logger != nil {
		c.log = opts.Logger
	}
	return c, nil
}

// Directions requests a route through coords in order and returns the
// decoded response body. Error payloads from the service (4xx/5xx with a
// JSON body) are returned as-is for the caller to interpret. An empty body
// yields an empty map. Network and decode failures are returned as errors.
func (c *ORSClient) Directions(ctx context.Context, coords []domain.Coordinates) (_ map[string]any, err error) {
	defer observability.Time(ctx, c.log, "routing.ORSClient.Directions")(&err)

	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		observability.RoutingRequestsTotal.WithLabelValues(outcome).Inc()
		observability.RoutingRequestDuration.Observe(time.Since(start).Seconds())
	}()

	if len(coords) < 2 {
		return nil, errors.New("routing.ORSClient.Directions: at least two coordinates are required")
	}

	body := directionsRequest{Coordinates: make([][]float64, 0, len(coords))}
	for _, co := range coords {
		body.Coordinates = append(body.Coordinates, co.CoordsToList())
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("routing.ORSClient.Directions: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", c.baseURL, c.profile)
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("routing.ORSClient.Directions: %w", err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routing.ORSClient.Directions: %w", err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("routing.ORSClient.Directions: decode response (status %d): %w", resp.StatusCode, err)
	}
	if out == nil {
		out = map[string]any{}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.log.WarnContext(ctx, "routing service returned error status", "status", resp.StatusCode)
	}
	return out, nil
}

func (c *ORSClient) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json, application/geo+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}
