// Package geocode turns a free-text street address into coordinates using a
// Nominatim-compatible search endpoint. Lookups are not retried; a failure
// is returned to the caller as is.
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

	"github.com/pkordes/european-living/internal/cache"
	"github.com/pkordes/european-living/internal/domain"
)

// DefaultURL is the public OpenStreetMap Nominatim search endpoint.
const DefaultURL = "https://nominatim.openstreetmap.org/search"

// cacheTTL bounds how long a resolved address is reused.
const cacheTTL = 24 * time.Hour

// Result is a resolved address.
type Result struct {
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	GoogleMapsURL string  `json:"google_maps_url"`
}

// Client calls the geocoder. The zero value is not usable; use New.
type Client struct {
	http      *http.Client
	baseURL   string
	country   string
	userAgent string
	cache     cache.Store
}

// New returns a Client for baseURL that appends country to every query.
// A nil store disables caching.
func New(httpClient *http.Client, baseURL, country string, store cache.Store) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if store == nil {
		store = cache.Noop{}
	}
	return &Client{
		http:      httpClient,
		baseURL:   baseURL,
		country:   country,
		userAgent: "european-living-api/1.0",
		cache:     store,
	}
}

// hit is one element of the Nominatim JSON array. Coordinates arrive as strings.
type hit struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves address. An address with no hits yields domain.ErrNotFound;
// a non-2xx answer yields domain.ErrUpstream.
func (c *Client) Geocode(ctx context.Context, address string) (Result, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Result{}, fmt.Errorf("geocode.Client.Geocode: %w: address is required", domain.ErrValidation)
	}

	query := address
	if c.country != "" {
		query = address + ", " + c.country
	}
	key := "geocode:" + strings.ToLower(query)

	if cached, ok, err := cache.GetJSON[Result](ctx, c.cache, key); err == nil && ok {
		return cached, nil
	}

	res, err := c.lookup(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("geocode.Client.Geocode: %w", err)
	}

	// A cache write failure only costs a future lookup.
	_ = cache.SetJSON(ctx, c.cache, key, res, cacheTTL)
	return res, nil
}

func (c *Client) lookup(ctx context.Context, query string) (Result, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return Result{}, fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("format", "json")
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("%w: geocoder answered %s", domain.ErrUpstream, resp.Status)
	}

	var hits []hit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return Result{}, fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
	}
	if len(hits) == 0 {
		return Result{}, fmt.Errorf("address %q: %w", query, domain.ErrNotFound)
	}

	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("%w: latitude %q", domain.ErrUpstream, hits[0].Lat)
	}
	lon, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("%w: longitude %q", domain.ErrUpstream, hits[0].Lon)
	}

	return Result{
		Latitude:      lat,
		Longitude:     lon,
		GoogleMapsURL: MapsURL(hits[0].Lat, hits[0].Lon),
	}, nil
}

// MapsURL builds a Google Maps search link for a coordinate pair.
func MapsURL(lat, lon string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + lat + "," + lon
}
