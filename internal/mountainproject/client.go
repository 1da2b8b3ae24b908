package mountainproject

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultBaseURL = "https://www.mountainproject.com/data"
	UserAgent      = "elcap-firsts/1.0 (github.com/pfrederiksen/elcap-firsts)"
	Timeout        = 30 * time.Second
)

// ErrMissingKey is returned when no API key is configured.
var ErrMissingKey = errors.New("mountain project API key is required")

// Client is a client for the Mountain Project data API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Mountain Project API client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: Timeout,
		},
	}
}

// NewClientWithBaseURL creates a client against a different API root
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	client := NewClient(apiKey)
	client.baseURL = baseURL
	return client
}

// Query selects routes around a point
type Query struct {
	Lat         float64
	Lon         float64
	MaxDistance float64 // miles
	MaxResults  int
}

// routesResponse represents the get-routes-for-lat-lon response
type routesResponse struct {
	Routes  []Route `json:"routes"`
	Success int     `json:"success"`
	Message string  `json:"message,omitempty"`
}

// RoutesForLatLon lists the routes around q's coordinates
func (c *Client) RoutesForLatLon(ctx context.Context, q Query) ([]Route, error) {
	if c.apiKey == "" {
		return nil, ErrMissingKey
	}

	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(q.Lat, 'f', -1, 64))
	params.Add("lon", strconv.FormatFloat(q.Lon, 'f', -1, 64))
	if q.MaxDistance > 0 {
		params.Add("maxDistance", strconv.FormatFloat(q.MaxDistance, 'f', -1, 64))
	}
	if q.MaxResults > 0 {
		params.Add("maxResults", strconv.Itoa(q.MaxResults))
	}
	params.Add("key", c.apiKey)

	reqURL := fmt.Sprintf("%s/get-routes-for-lat-lon?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var result routesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if result.Success == 0 && len(result.Routes) == 0 {
		if result.Message != "" {
			return nil, fmt.Errorf("API request failed: %s", result.Message)
		}
		return nil, fmt.Errorf("API request failed")
	}

	return result.Routes, nil
}

// AreaSource lists the routes of one area around a point
type AreaSource struct {
	Client *Client
	Query  Query
	Area   string
}

// Routes fetches routes for the query and keeps those in the area and radius
func (s *AreaSource) Routes(ctx context.Context) ([]Route, error) {
	routes, err := s.Client.RoutesForLatLon(ctx, s.Query)
	if err != nil {
		return nil, fmt.Errorf("listing routes: %w", err)
	}

	if s.Area != "" {
		routes = FilterByArea(routes, s.Area)
	}
	if s.Query.MaxDistance > 0 {
		routes = WithinMiles(routes, s.Query.Lat, s.Query.Lon, s.Query.MaxDistance)
	}

	return routes, nil
}
