// Package geo resolves map coordinates to a place name and a timezone
// identifier using two external lookups. The zone lookup is mandatory;
// reverse geocoding is best-effort and degrades to an empty name.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
)

var (
	// ErrLocationLookupFailed is returned when the zone-by-coordinate
	// call fails or yields nothing usable.
	ErrLocationLookupFailed = errors.New("timezone lookup failed")
	// ErrReverseGeocodeFailed is returned when the place-name lookup
	// fails. Callers tolerate it and show the bare zone id.
	ErrReverseGeocodeFailed = errors.New("reverse geocoding failed")
)

// Default lookup endpoints, overridable for tests and self-hosting.
const (
	DefaultZoneAPIURL = "https://timeapi.io/api/timezone/coordinate"
	DefaultGeocodeURL = "https://nominatim.openstreetmap.org/reverse"
)

// Fetcher fetches a URL body; satisfied by httpcache.Client.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Client performs the coordinate lookups.
type Client struct {
	fetcher    Fetcher
	logger     *slog.Logger
	zoneAPIURL string
	geocodeURL string
}

// Option configures a Client.
type Option func(*Client)

// WithZoneAPIURL overrides the zone-by-coordinate endpoint.
func WithZoneAPIURL(u string) Option {
	return func(c *Client) { c.zoneAPIURL = u }
}

// WithGeocodeURL overrides the reverse-geocoding endpoint.
func WithGeocodeURL(u string) Option {
	return func(c *Client) { c.geocodeURL = u }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a lookup client.
func NewClient(fetcher Fetcher, opts ...Option) *Client {
	c := &Client{
		fetcher:    fetcher,
		logger:     slog.Default(),
		zoneAPIURL: DefaultZoneAPIURL,
		geocodeURL: DefaultGeocodeURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ZoneForCoordinates resolves coordinates to a zone identifier. The
// response may carry the id under several field names depending on the
// provider.
func (c *Client) ZoneForCoordinates(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 6, 64))

	body, err := c.fetcher.Get(ctx, c.zoneAPIURL+"?"+q.Encode())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLocationLookupFailed, err)
	}

	var result struct {
		TimeZone  string `json:"timeZone"`
		TimeZone2 string `json:"time_zone"`
		Timezone  string `json:"timezone"`
		Zone      string `json:"zone"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: parsing response: %v", ErrLocationLookupFailed, err)
	}

	for _, zone := range []string{result.TimeZone, result.TimeZone2, result.Timezone, result.Zone} {
		if zone != "" {
			return zone, nil
		}
	}
	return "", fmt.Errorf("%w: no zone in response", ErrLocationLookupFailed)
}

// ReverseGeocode resolves coordinates to a display name.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	q.Set("zoom", "10")
	q.Set("format", "jsonv2")

	body, err := c.fetcher.Get(ctx, c.geocodeURL+"?"+q.Encode())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReverseGeocodeFailed, err)
	}

	var result struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: parsing response: %v", ErrReverseGeocodeFailed, err)
	}
	return result.DisplayName, nil
}
