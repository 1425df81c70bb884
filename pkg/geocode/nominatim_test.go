package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/umputun/corteo/pkg/extract"
)

func TestNominatim_Geocode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Piazza Maggiore", r.URL.Query().Get("street"))
		assert.Equal(t, "Bologna", r.URL.Query().Get("city"))
		assert.Equal(t, "it", r.URL.Query().Get("countrycodes"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "corteo-test/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"44.4938","lon":"11.3429","display_name":"Piazza Maggiore, Bologna"}]`))
	}))
	defer ts.Close()

	n := NewNominatim(Config{URL: ts.URL + "/", UserAgent: "corteo-test/1.0", Rate: rate.Inf})
	coords, err := n.Geocode(context.Background(), "Piazza Maggiore", "Bologna")
	require.NoError(t, err)
	assert.Equal(t, extract.Coordinates{Lat: 44.4938, Lng: 11.3429}, coords)
}

func TestNominatim_GeocodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		notFound bool
	}{
		{name: "empty result", status: http.StatusOK, body: `[]`, notFound: true},
		{name: "server error", status: http.StatusServiceUnavailable, body: "busy"},
		{name: "bad json", status: http.StatusOK, body: `{"lat":`},
		{name: "bad lat", status: http.StatusOK, body: `[{"lat":"north","lon":"11"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			n := NewNominatim(Config{URL: ts.URL, Rate: rate.Inf})
			_, err := n.Geocode(context.Background(), "Via Roma 1", "Torino")
			require.Error(t, err)
			assert.Equal(t, tt.notFound, errors.Is(err, ErrNotFound))
		})
	}
}

func TestNominatim_EmptyAddress(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { calls.Add(1) }))
	defer ts.Close()

	n := NewNominatim(Config{URL: ts.URL})
	_, err := n.Geocode(context.Background(), "  ", "Roma")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, calls.Load())
}

func TestNominatim_RateLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"41.9","lon":"12.5"}]`))
	}))
	defer ts.Close()

	n := NewNominatim(Config{URL: ts.URL, Rate: rate.Limit(20)})
	start := time.Now()
	for range 3 {
		_, err := n.Geocode(context.Background(), "Via del Corso", "Roma")
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestNominatim_ContextTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	n := NewNominatim(Config{URL: ts.URL, Rate: rate.Inf})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := n.Geocode(ctx, "Via Roma", "Milano")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNominatim_Defaults(t *testing.T) {
	n := NewNominatim(Config{})
	assert.Equal(t, DefaultURL, n.baseURL)
	assert.Equal(t, "it", n.country)
	assert.Equal(t, 10*time.Second, n.client.Timeout)
	assert.Equal(t, rate.Limit(1), n.limiter.Limit())
}
