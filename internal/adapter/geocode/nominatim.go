// internal/adapter/geocode/nominatim.go

// Package geocode resolves US postal codes to coordinates using the
// OpenStreetMap Nominatim API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Nominatim asks for a descriptive User-Agent on every request.
const userAgent = "showscout/1.0"

// ErrNotFound indicates the postal code resolved to no location.
var ErrNotFound = fmt.Errorf("postal code not found")

// Location is a resolved postal code
type Location struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"displayName"`
}

// Client is a Nominatim geocoding client
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewClient creates a new geocoding client
func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    defaultBaseURL,
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// GeocodeZip resolves a US ZIP code to coordinates. Returns ErrNotFound
// when Nominatim has no match for the code.
func (c *Client) GeocodeZip(ctx context.Context, zip string) (*Location, error) {
	params := url.Values{}
	params.Set("postalcode", zip)
	params.Set("country", "US")
	params.Set("format", "json")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s/search?%s", c.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating geocode request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding geocode response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNotFound
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return nil, fmt.Errorf("geocode response had unparseable coordinates")
	}

	log.Debug().Str("zip", zip).Float64("lat", lat).Float64("lng", lng).Msg("Geocoded postal code")

	return &Location{
		Lat:         lat,
		Lng:         lng,
		DisplayName: results[0].DisplayName,
	}, nil
}
