package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		t.Setenv("CORTEO_UA", "corteo-test/2.0")
		configContent := `
server:
  listen: ":9090"
  timeout: 45s

ingest:
  interval: 30m
  fetch_rate: 2
  timezone: UTC
  default_city: Roma

geocoding:
  enabled: true
  user_agent: ${CORTEO_UA}
  timeout: 5s

dedup:
  with_date: true

sources:
  web:
    - name: agenda
      pages: ["https://example.com/agenda", "https://example.com/agenda?page=2"]
      selectors: [".evento"]
  feeds:
    - name: nudm
      url: https://nudm.example.org
      feeds: ["https://nudm.example.org/feed"]
  social:
    - name: instagram
      files: ["/data/posts.json"]
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 30*time.Minute, cfg.Ingest.Interval)
		assert.InDelta(t, 2.0, cfg.Ingest.FetchRate, 0.0001)
		assert.Equal(t, "Roma", cfg.Ingest.DefaultCity)
		assert.Equal(t, time.UTC, cfg.Location())
		assert.True(t, cfg.Geocoding.Enabled)
		assert.Equal(t, "corteo-test/2.0", cfg.Geocoding.UserAgent)
		assert.Equal(t, 5*time.Second, cfg.Geocoding.Timeout)
		assert.True(t, cfg.Dedup.WithDate)

		require.Len(t, cfg.Sources.Web, 1)
		assert.Equal(t, "https://example.com/agenda", cfg.Sources.Web[0].URL, "url defaults to first page")
		assert.Equal(t, []string{".evento"}, cfg.Sources.Web[0].Selectors)
		require.Len(t, cfg.Sources.Feeds, 1)
		assert.Equal(t, "https://nudm.example.org", cfg.Sources.Feeds[0].URL)
		require.Len(t, cfg.Sources.Social, 1)
		assert.Equal(t, []string{"/data/posts.json"}, cfg.Sources.Social[0].Files)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8080\"\n"))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		// check server defaults
		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)

		// check database defaults
		assert.Equal(t, "file:corteo.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
		assert.Equal(t, 10, cfg.Database.MaxOpenConns)

		// check ingest defaults
		assert.Equal(t, time.Hour, cfg.Ingest.Interval)
		assert.InDelta(t, 0.5, cfg.Ingest.FetchRate, 0.0001)
		assert.Equal(t, 1, cfg.Ingest.FetchBurst)
		assert.Equal(t, "Europe/Rome", cfg.Ingest.Timezone)
		assert.Equal(t, 3, cfg.Ingest.PastMonths)
		assert.Equal(t, 12, cfg.Ingest.FutureMonths)
		assert.Equal(t, "Milano", cfg.Ingest.DefaultCity)

		// check geocoding defaults
		assert.False(t, cfg.Geocoding.Enabled)
		assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocoding.URL)
		assert.Equal(t, 8*time.Second, cfg.Geocoding.Timeout)
		assert.False(t, cfg.Dedup.WithDate)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "ingest:\n  interval: 10s\n"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "validate config")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *Config)
		errMsg string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "short server timeout", modify: func(c *Config) { c.Server.Timeout = time.Millisecond }, errMsg: "server timeout"},
		{name: "short interval", modify: func(c *Config) { c.Ingest.Interval = time.Second }, errMsg: "ingest.interval"},
		{name: "negative fetch rate", modify: func(c *Config) { c.Ingest.FetchRate = -1 }, errMsg: "ingest.fetch_rate"},
		{name: "zero burst", modify: func(c *Config) { c.Ingest.FetchBurst = 0 }, errMsg: "ingest.fetch_burst"},
		{name: "bad window", modify: func(c *Config) { c.Ingest.FutureMonths = 0 }, errMsg: "future_months"},
		{name: "unknown default city", modify: func(c *Config) { c.Ingest.DefaultCity = "Lecce" }, errMsg: "ingest.default_city"},
		{name: "default city any case", modify: func(c *Config) { c.Ingest.DefaultCity = "roma" }},
		{name: "bad timezone", modify: func(c *Config) { c.Ingest.Timezone = "Mars/Olympus" }, errMsg: "ingest.timezone"},
		{name: "geocoding timeout", modify: func(c *Config) {
			c.Geocoding.Enabled = true
			c.Geocoding.Timeout = time.Millisecond
		}, errMsg: "geocoding.timeout"},
		{name: "source without name", modify: func(c *Config) {
			c.Sources.Web = []WebSource{{Pages: []string{"https://example.com"}}}
		}, errMsg: "sources.web: name is required"},
		{name: "source without targets", modify: func(c *Config) {
			c.Sources.Feeds = []FeedSource{{Name: "nudm"}}
		}, errMsg: `"nudm" has no targets`},
		{name: "duplicate names across kinds", modify: func(c *Config) {
			c.Sources.Feeds = []FeedSource{{Name: "nudm", Feeds: []string{"https://a/feed"}}}
			c.Sources.Social = []SocialSource{{Name: "nudm", Files: []string{"a.json"}}}
		}, errMsg: "duplicate source name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			setDefaults(cfg)
			tt.modify(cfg)
			err := validate(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Listen = ":9090"
	cfg.Server.Timeout = 45 * time.Second

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)
}

func TestConfig_Location(t *testing.T) {
	cfg := &Config{}
	cfg.Ingest.Timezone = "Europe/Rome"
	assert.Equal(t, "Europe/Rome", cfg.Location().String())

	cfg.Ingest.Timezone = "bad/zone"
	assert.Equal(t, time.UTC, cfg.Location())
}
