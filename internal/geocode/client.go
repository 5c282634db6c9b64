// Package geocode resolves free-text destinations to coordinates using the
// OpenStreetMap Nominatim API. Lookups are best effort: an unresolvable or
// unreachable destination yields no coordinates, never a fatal error, so
// callers simply skip whatever needed the position (map preview, distance
// hints) and carry on.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/tripflow/tripflow/internal/util"
)

const (
	// BaseURL is the Nominatim search endpoint
	BaseURL = "https://nominatim.openstreetmap.org/search"

	// UserAgent identifies this application to Nominatim
	// Nominatim rejects requests without a proper user agent
	UserAgent = "TripFlow-App/1.0"

	// RateLimit is the maximum request rate (Nominatim usage policy)
	RateLimit = 1 * time.Second
)

// Client handles Nominatim lookups with rate limiting
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *time.Ticker
}

// Coordinates is a resolved destination position
type Coordinates struct {
	Lat float64
	Lon float64
}

// place is one element of the Nominatim response array
type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewClient creates a new Nominatim client
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     BaseURL,
		userAgent:   UserAgent,
		rateLimiter: time.NewTicker(RateLimit),
	}
}

// Close releases resources used by the client
func (c *Client) Close() {
	if c.rateLimiter != nil {
		c.rateLimiter.Stop()
	}
}

// Geocode resolves a destination string to coordinates.
// Returns (nil, nil) when the destination cannot be resolved: non-200
// response, empty result set, or a malformed body. Only a request that
// could not be issued at all is reported as an error, and callers are
// expected to treat that as unavailable too.
func (c *Client) Geocode(ctx context.Context, destination string) (*Coordinates, error) {
	if strings.TrimSpace(destination) == "" {
		return nil, fmt.Errorf("destination cannot be empty")
	}

	// Wait for rate limit
	c.waitForRateLimit()

	// Composed accents and plain combining marks should hit the same cache
	// and index entries server-side
	query := url.QueryEscape(norm.NFC.String(destination))
	urlStr := fmt.Sprintf("%s?format=json&q=%s", c.baseURL, query)

	util.DebugLog("Nominatim: geocoding '%s'", destination)

	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		util.DebugLog("Nominatim: status %d for '%s', treating as unavailable", resp.StatusCode, destination)
		return nil, nil
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		util.DebugLog("Nominatim: malformed response for '%s': %v", destination, err)
		return nil, nil
	}

	if len(places) == 0 {
		util.DebugLog("Nominatim: no results for '%s'", destination)
		return nil, nil
	}

	// First element is the best match; lat/lon arrive as strings
	lat, latErr := strconv.ParseFloat(places[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(places[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		util.DebugLog("Nominatim: unparseable coordinates for '%s'", destination)
		return nil, nil
	}

	util.DebugLog("Nominatim: '%s' -> %f, %f (%s)", destination, lat, lon, places[0].DisplayName)

	return &Coordinates{Lat: lat, Lon: lon}, nil
}

// waitForRateLimit ensures we don't exceed the Nominatim rate limit (1 req/sec)
func (c *Client) waitForRateLimit() {
	<-c.rateLimiter.C
}
