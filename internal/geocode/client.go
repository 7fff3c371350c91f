package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/FlameInTheDark/uwuweather/internal/place"
)

// DefaultBaseURL is the public Open-Meteo geocoding API.
const DefaultBaseURL = "https://geocoding-api.open-meteo.com/v1"

// Client is a lightweight wrapper around the Open-Meteo geocoding API.
type Client struct {
	// Base URL for the geocoding API, without the /search suffix.
	baseURL string
	// Resty client used for all requests.
	httpClient *resty.Client
}

// NewClient creates a new Client for baseURL.
// If httpClient is nil, a default Resty client with a 10‑second timeout is used.
func NewClient(baseURL string, httpClient *resty.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = resty.New().
			SetTimeout(10 * time.Second).
			SetRetryCount(0)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SearchResult represents a single search hit.
type SearchResult struct {
	Name        string  `json:"name"`
	Admin1      string  `json:"admin1"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// SearchResponse is the JSON payload returned by the search endpoint.
// Results is absent when nothing matched.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// Search queries the /search endpoint. A non-2xx status or an unreadable body
// is reported as place.ErrLookupRejected; network failures are returned as-is.
func (c *Client) Search(ctx context.Context, lookup place.Lookup) ([]place.Match, error) {
	if lookup.Name == "" {
		return nil, fmt.Errorf("search name is required")
	}
	count := lookup.Count
	if count <= 0 {
		count = place.MaxCandidates
	}

	req := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"name":     lookup.Name,
			"count":    strconv.Itoa(count),
			"language": lookup.Language,
			"format":   "json",
		})
	if lookup.CountryCode != "" {
		req.SetQueryParam("countryCode", lookup.CountryCode)
	}

	resp, err := req.Get(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("geocoding search: %w", err)
	}
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, fmt.Errorf("geocoding search returned status %d: %w", resp.StatusCode(), place.ErrLookupRejected)
	}

	var sr SearchResponse
	if err := json.Unmarshal(resp.Bytes(), &sr); err != nil {
		return nil, fmt.Errorf("decode geocoding response: %v: %w", err, place.ErrLookupRejected)
	}

	matches := make([]place.Match, 0, len(sr.Results))
	for _, r := range sr.Results {
		matches = append(matches, place.Match{
			Name:        r.Name,
			Admin1:      r.Admin1,
			CountryCode: r.CountryCode,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
		})
	}
	return matches, nil
}
