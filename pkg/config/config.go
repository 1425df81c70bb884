package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/corteo/pkg/extract"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:corteo.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Ingest IngestConfig `yaml:"ingest" json:"ingest" jsonschema:"description=Ingest pipeline configuration"`

	Geocoding GeocodingConfig `yaml:"geocoding" json:"geocoding" jsonschema:"description=Optional street address geocoding"`

	Dedup struct {
		WithDate bool `yaml:"with_date" json:"with_date" jsonschema:"default=false,description=Include event date in the duplicate key"`
	} `yaml:"dedup" json:"dedup" jsonschema:"description=Duplicate detection"`

	Sources SourcesConfig `yaml:"sources" json:"sources" jsonschema:"description=Raw content sources"`
}

// IngestConfig holds scheduling, fetching and extraction settings
type IngestConfig struct {
	Interval     time.Duration `yaml:"interval" json:"interval" jsonschema:"default=1h,description=Interval between scheduled runs of all sources"`
	FetchRate    float64       `yaml:"fetch_rate" json:"fetch_rate" jsonschema:"default=0.5,minimum=0,description=Fetches per second across targets of a source (0 means unlimited)"`
	FetchBurst   int           `yaml:"fetch_burst" json:"fetch_burst" jsonschema:"default=1,minimum=1,description=Fetch burst size"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP timeout for fetching pages and feeds"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; Corteo/1.0),description=User agent for fetching"`
	Timezone     string        `yaml:"timezone" json:"timezone" jsonschema:"default=Europe/Rome,description=Time zone used to resolve event dates"`
	PastMonths   int           `yaml:"past_months" json:"past_months" jsonschema:"default=3,minimum=1,description=Oldest accepted event date in months before now"`
	FutureMonths int           `yaml:"future_months" json:"future_months" jsonschema:"default=12,minimum=1,description=Latest accepted event date in months after now"`
	DefaultCity  string        `yaml:"default_city" json:"default_city" jsonschema:"default=Milano,description=City used when text mentions none"`
}

// GeocodingConfig holds Nominatim settings
type GeocodingConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable geocoding of street addresses"`
	URL       string        `yaml:"url" json:"url" jsonschema:"default=https://nominatim.openstreetmap.org,description=Nominatim base URL"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Corteo/1.0,description=User agent sent to Nominatim"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=8s,description=Upper bound for a single geocoding call"`
	Rate      float64       `yaml:"rate" json:"rate" jsonschema:"default=1,minimum=0,description=Requests per second"`
}

// SourcesConfig lists all raw content sources
type SourcesConfig struct {
	Web    []WebSource    `yaml:"web" json:"web" jsonschema:"description=Web pages split into event blocks"`
	Feeds  []FeedSource   `yaml:"feeds" json:"feeds" jsonschema:"description=RSS and Atom feeds"`
	Social []SocialSource `yaml:"social" json:"social" jsonschema:"description=Exported social post batches"`
}

// WebSource is a site with a list of pages
type WebSource struct {
	Name      string   `yaml:"name" json:"name" jsonschema:"required,description=Source name"`
	URL       string   `yaml:"url" json:"url" jsonschema:"description=Site URL"`
	Pages     []string `yaml:"pages" json:"pages" jsonschema:"required,description=Page URLs"`
	Selectors []string `yaml:"selectors" json:"selectors" jsonschema:"description=CSS selectors of event blocks"`
}

// FeedSource is a site with a list of feeds
type FeedSource struct {
	Name  string   `yaml:"name" json:"name" jsonschema:"required,description=Source name"`
	URL   string   `yaml:"url" json:"url" jsonschema:"description=Site URL"`
	Feeds []string `yaml:"feeds" json:"feeds" jsonschema:"required,description=Feed URLs"`
}

// SocialSource is a set of exported post files
type SocialSource struct {
	Name  string   `yaml:"name" json:"name" jsonschema:"required,description=Source name"`
	URL   string   `yaml:"url" json:"url" jsonschema:"description=Account or platform URL"`
	Files []string `yaml:"files" json:"files" jsonschema:"required,description=JSON export files"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:corteo.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for ingest
	if cfg.Ingest.Interval == 0 {
		cfg.Ingest.Interval = time.Hour
	}
	if cfg.Ingest.FetchRate == 0 {
		cfg.Ingest.FetchRate = 0.5
	}
	if cfg.Ingest.FetchBurst == 0 {
		cfg.Ingest.FetchBurst = 1
	}
	if cfg.Ingest.Timeout == 0 {
		cfg.Ingest.Timeout = 30 * time.Second
	}
	if cfg.Ingest.UserAgent == "" {
		cfg.Ingest.UserAgent = "Mozilla/5.0 (compatible; Corteo/1.0)"
	}
	if cfg.Ingest.Timezone == "" {
		cfg.Ingest.Timezone = "Europe/Rome"
	}
	if cfg.Ingest.PastMonths == 0 {
		cfg.Ingest.PastMonths = 3
	}
	if cfg.Ingest.FutureMonths == 0 {
		cfg.Ingest.FutureMonths = 12
	}
	if cfg.Ingest.DefaultCity == "" {
		cfg.Ingest.DefaultCity = "Milano"
	}

	// set defaults for geocoding
	if cfg.Geocoding.URL == "" {
		cfg.Geocoding.URL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geocoding.UserAgent == "" {
		cfg.Geocoding.UserAgent = "Corteo/1.0"
	}
	if cfg.Geocoding.Timeout == 0 {
		cfg.Geocoding.Timeout = 8 * time.Second
	}
	if cfg.Geocoding.Rate == 0 {
		cfg.Geocoding.Rate = 1
	}

	// source url defaults to its first target for web and feed sources
	for i := range cfg.Sources.Web {
		if cfg.Sources.Web[i].URL == "" && len(cfg.Sources.Web[i].Pages) > 0 {
			cfg.Sources.Web[i].URL = cfg.Sources.Web[i].Pages[0]
		}
	}
	for i := range cfg.Sources.Feeds {
		if cfg.Sources.Feeds[i].URL == "" && len(cfg.Sources.Feeds[i].Feeds) > 0 {
			cfg.Sources.Feeds[i].URL = cfg.Sources.Feeds[i].Feeds[0]
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	// validate ingest config
	if cfg.Ingest.Interval < time.Minute {
		return fmt.Errorf("ingest.interval must be at least 1 minute")
	}
	if cfg.Ingest.FetchRate < 0 {
		return fmt.Errorf("ingest.fetch_rate must be non-negative")
	}
	if cfg.Ingest.FetchBurst < 1 {
		return fmt.Errorf("ingest.fetch_burst must be at least 1")
	}
	if cfg.Ingest.PastMonths < 1 || cfg.Ingest.FutureMonths < 1 {
		return fmt.Errorf("ingest.past_months and ingest.future_months must be at least 1")
	}
	if _, err := time.LoadLocation(cfg.Ingest.Timezone); err != nil {
		return fmt.Errorf("ingest.timezone %q: %w", cfg.Ingest.Timezone, err)
	}
	if _, ok := extract.LookupCity(cfg.Ingest.DefaultCity); !ok {
		return fmt.Errorf("ingest.default_city %q is not a known city", cfg.Ingest.DefaultCity)
	}

	// validate geocoding config
	if cfg.Geocoding.Enabled {
		if cfg.Geocoding.Timeout < 100*time.Millisecond {
			return fmt.Errorf("geocoding.timeout must be at least 100ms")
		}
		if cfg.Geocoding.Rate < 0 {
			return fmt.Errorf("geocoding.rate must be non-negative")
		}
	}

	// validate sources, names must be unique across kinds
	names := map[string]bool{}
	check := func(kind, name string, targets int) error {
		if name == "" {
			return fmt.Errorf("sources.%s: name is required", kind)
		}
		if names[name] {
			return fmt.Errorf("sources.%s: duplicate source name %q", kind, name)
		}
		names[name] = true
		if targets == 0 {
			return fmt.Errorf("sources.%s: %q has no targets", kind, name)
		}
		return nil
	}
	for _, s := range cfg.Sources.Web {
		if err := check("web", s.Name, len(s.Pages)); err != nil {
			return err
		}
	}
	for _, s := range cfg.Sources.Feeds {
		if err := check("feeds", s.Name, len(s.Feeds)); err != nil {
			return err
		}
	}
	for _, s := range cfg.Sources.Social {
		if err := check("social", s.Name, len(s.Files)); err != nil {
			return err
		}
	}

	return nil
}

// Location returns the time zone for event dates
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Ingest.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
