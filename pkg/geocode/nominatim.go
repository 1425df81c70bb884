// Package geocode resolves street addresses to coordinates with a Nominatim server
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/umputun/corteo/pkg/extract"
)

// ErrNotFound is returned when the server knows no place for the address
var ErrNotFound = errors.New("address not found")

// DefaultURL is the public OpenStreetMap Nominatim endpoint
const DefaultURL = "https://nominatim.openstreetmap.org"

// Config for Nominatim
type Config struct {
	URL       string        // base url, DefaultURL if empty
	UserAgent string        // required by the public server usage policy
	Timeout   time.Duration // http client timeout, 10s if zero
	Rate      rate.Limit    // requests per second, 1 if zero
	Country   string        // country code filter, "it" if empty
}

// Nominatim is a geocoder backed by the Nominatim search API
type Nominatim struct {
	baseURL   string
	userAgent string
	country   string
	client    *http.Client
	limiter   *rate.Limiter
}

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatim makes a Nominatim geocoder
func NewNominatim(cfg Config) *Nominatim {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Country == "" {
		cfg.Country = "it"
	}
	return &Nominatim{
		baseURL:   strings.TrimRight(cfg.URL, "/"),
		userAgent: cfg.UserAgent,
		country:   strings.ToLower(cfg.Country),
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(cfg.Rate, 1),
	}
}

// Geocode returns coordinates of the first place matching address in city
func (n *Nominatim) Geocode(ctx context.Context, address, city string) (extract.Coordinates, error) {
	if strings.TrimSpace(address) == "" {
		return extract.Coordinates{}, ErrNotFound
	}
	if err := n.limiter.Wait(ctx); err != nil {
		return extract.Coordinates{}, fmt.Errorf("wait for rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("street", address)
	if city != "" {
		q.Set("city", city)
	}
	q.Set("countrycodes", n.country)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+q.Encode(), http.NoBody)
	if err != nil {
		return extract.Coordinates{}, fmt.Errorf("create request: %w", err)
	}
	if n.userAgent != "" {
		req.Header.Set("User-Agent", n.userAgent)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "it")

	resp, err := n.client.Do(req)
	if err != nil {
		return extract.Coordinates{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return extract.Coordinates{}, fmt.Errorf("geocode status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return extract.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(places) == 0 {
		return extract.Coordinates{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return extract.Coordinates{}, fmt.Errorf("parse lat %q: %w", places[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return extract.Coordinates{}, fmt.Errorf("parse lon %q: %w", places[0].Lon, err)
	}
	return extract.Coordinates{Lat: lat, Lng: lng}, nil
}
