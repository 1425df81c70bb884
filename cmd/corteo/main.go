package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/umputun/corteo/pkg/config"
	"github.com/umputun/corteo/pkg/dedup"
	"github.com/umputun/corteo/pkg/extract"
	"github.com/umputun/corteo/pkg/geocode"
	"github.com/umputun/corteo/pkg/ingest"
	"github.com/umputun/corteo/pkg/metrics"
	"github.com/umputun/corteo/pkg/repository"
	"github.com/umputun/corteo/pkg/source"
	"github.com/umputun/corteo/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DBPath string `long:"db" env:"DB" description:"database DSN, overrides config"`
	Once   bool   `long:"once" env:"ONCE" description:"run all sources once and exit, no server"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)

	log.Printf("[INFO] starting corteo version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all components from the configuration. In one-shot mode it ingests every source once
// and returns, otherwise it runs the scheduler and the admin server until ctx is canceled.
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DBPath != "" {
		cfg.Database.DSN = opts.DBPath
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	recorder := metrics.NewRecorder()
	driver := ingest.NewDriver(ingest.Params{
		Processor:    newPipeline(cfg),
		Store:        repos.Event,
		Deduplicator: dedup.New(dedup.WithDate(cfg.Dedup.WithDate)),
		Recorder:     recorder,
		FetchRate:    rate.Limit(cfg.Ingest.FetchRate),
		FetchBurst:   cfg.Ingest.FetchBurst,
	})
	sched := ingest.NewScheduler(driver, makeSources(cfg), cfg.Ingest.Interval)

	if opts.Once {
		report := sched.RunOnce(ctx)
		log.Printf("[INFO] one-shot ingest done, imported %d of %d", report.Imported, report.Found)
		return nil
	}

	srv := server.New(server.Params{
		Config:   cfg,
		Store:    repos.Event,
		Ingester: driver,
		Metrics:  recorder.Handler(),
		Version:  revision,
		Debug:    opts.Debug,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sched.Start(gctx)
		<-gctx.Done()
		sched.Stop()
		return nil
	})
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// newPipeline builds the extraction pipeline, with geocoding only when enabled
func newPipeline(cfg *config.Config) *extract.Pipeline {
	var geocoder extract.Geocoder
	if cfg.Geocoding.Enabled {
		geocoder = geocode.NewNominatim(geocode.Config{
			URL:       cfg.Geocoding.URL,
			UserAgent: cfg.Geocoding.UserAgent,
			Timeout:   cfg.Geocoding.Timeout,
			Rate:      rate.Limit(cfg.Geocoding.Rate),
		})
		log.Printf("[INFO] geocoding enabled with %s", cfg.Geocoding.URL)
	}

	dates := extract.NewDateExtractor(extract.DateConfig{
		Location:     cfg.Location(),
		PastMonths:   cfg.Ingest.PastMonths,
		FutureMonths: cfg.Ingest.FutureMonths,
	})
	locator := extract.NewLocator(extract.LocatorConfig{
		DefaultCity:    cfg.Ingest.DefaultCity,
		Geocoder:       geocoder,
		GeocodeTimeout: cfg.Geocoding.Timeout,
	})
	return extract.NewPipeline(dates, locator, extract.NewClassifier(nil, nil))
}

// makeSources creates ingest sources for every configured web site, feed list and social export
func makeSources(cfg *config.Config) []ingest.Source {
	httpParams := source.HTTPParams{Timeout: cfg.Ingest.Timeout, UserAgent: cfg.Ingest.UserAgent}

	res := make([]ingest.Source, 0, len(cfg.Sources.Web)+len(cfg.Sources.Feeds)+len(cfg.Sources.Social))
	for _, s := range cfg.Sources.Web {
		res = append(res, source.NewWebSource(source.WebParams{HTTPParams: httpParams, Name: s.Name, URL: s.URL,
			Pages: s.Pages, Selectors: s.Selectors}))
	}
	for _, s := range cfg.Sources.Feeds {
		res = append(res, source.NewFeedSource(source.FeedParams{HTTPParams: httpParams, Name: s.Name, URL: s.URL,
			Feeds: s.Feeds}))
	}
	for _, s := range cfg.Sources.Social {
		res = append(res, source.NewSocialSource(source.SocialParams{Name: s.Name, URL: s.URL, Files: s.Files}))
	}
	log.Printf("[INFO] configured %d sources", len(res))
	return res
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
