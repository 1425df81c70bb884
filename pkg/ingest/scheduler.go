package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/corteo/pkg/domain"
)

// Runner runs a single source
type Runner interface {
	Run(ctx context.Context, src Source) domain.BatchReport
}

// Scheduler runs all sources periodically, one after another
type Scheduler struct {
	runner   Runner
	sources  []Source
	interval time.Duration
	wg       sync.WaitGroup
	cancel   context.CancelFunc
}

// NewScheduler creates a new scheduler instance. Interval defaults to one hour.
func NewScheduler(runner Runner, sources []Source, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{runner: runner, sources: sources, interval: interval}
}

// Start begins the scheduler, the first pass runs immediately
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.worker(ctx)
	lgr.Printf("[INFO] scheduler started with %d sources, interval %v", len(s.sources), s.interval)
}

// Stop cancels the scheduler and waits for the in-flight pass
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunOnce runs every source a single time and returns the combined report
func (s *Scheduler) RunOnce(ctx context.Context) domain.BatchReport {
	total := domain.BatchReport{}
	for _, src := range s.sources {
		if ctx.Err() != nil {
			break
		}
		total.Add(s.runner.Run(ctx, src))
	}
	lgr.Printf("[INFO] ingest pass completed, found %d, imported %d, duplicates %d, failed %d",
		total.Found, total.Imported, total.SkippedDuplicate, total.Failed)
	return total
}

func (s *Scheduler) worker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// run immediately on start
	s.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}
