// Package ingest drives raw items through extraction, duplicate detection and storage.
// Items are processed one at a time and every run is serialized, so duplicate checks never race.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/umputun/corteo/pkg/dedup"
	"github.com/umputun/corteo/pkg/domain"
	"github.com/umputun/corteo/pkg/extract"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source
//go:generate moq -out mocks/recorder.go -pkg mocks -skip-ensure -fmt goimports . Recorder

// Store is the event store used for duplicate lookups and inserts
type Store interface {
	FindSimilar(ctx context.Context, title, city, date string) ([]domain.Event, error)
	Insert(ctx context.Context, ev *domain.Event) error
}

// Processor turns a raw item into an event
type Processor interface {
	Process(ctx context.Context, item domain.RawItem, meta domain.SourceMeta) (domain.Event, error)
}

// Source provides raw items, one batch per target (page, feed or file)
type Source interface {
	Meta() domain.SourceMeta
	Targets() []string
	Fetch(ctx context.Context, target string) ([]domain.RawItem, error)
}

// Recorder observes batch reports
type Recorder interface {
	RecordBatch(source string, report domain.BatchReport)
	RecordRun(source string, at time.Time)
}

// Params for NewDriver
type Params struct {
	Processor    Processor
	Store        Store
	Deduplicator *dedup.Deduplicator // default deduplicator if nil
	Recorder     Recorder            // optional
	FetchRate    rate.Limit          // fetches per second, unlimited if zero
	FetchBurst   int
}

// Driver runs batches through the ingest phases
type Driver struct {
	processor Processor
	store     Store
	dedup     *dedup.Deduplicator
	recorder  Recorder
	limiter   *rate.Limiter

	runMu sync.Mutex // serializes batches

	statusMu sync.RWMutex
	status   Status
}

// Status is a snapshot of the driver state
type Status struct {
	Phase      Phase              `json:"phase"`
	RunID      string             `json:"run_id,omitempty"`
	Source     string             `json:"source,omitempty"`
	LastRun    time.Time          `json:"last_run"`
	LastReport domain.BatchReport `json:"last_report"`
}

// NewDriver makes a Driver
func NewDriver(p Params) *Driver {
	res := &Driver{processor: p.Processor, store: p.Store, dedup: p.Deduplicator, recorder: p.Recorder}
	if res.dedup == nil {
		res.dedup = dedup.New()
	}
	limit, burst := p.FetchRate, p.FetchBurst
	if limit <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	res.limiter = rate.NewLimiter(limit, burst)
	return res
}

// Status returns the current driver state
func (d *Driver) Status() Status {
	d.statusMu.RLock()
	defer d.statusMu.RUnlock()
	return d.status
}

// IngestBatch extracts, deduplicates and stores items, one at a time. Failures of single items are counted
// and never stop the batch.
func (d *Driver) IngestBatch(ctx context.Context, items []domain.RawItem, meta domain.SourceMeta) domain.BatchReport {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	runID := d.startRun(meta)
	report := d.ingest(ctx, runID, items, meta)
	d.finishRun(runID, meta, report)
	return report
}

// Run fetches every target of the source, rate limited, and ingests each fetched batch.
// A failed fetch is counted as one failed item.
func (d *Driver) Run(ctx context.Context, src Source) domain.BatchReport {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	meta := src.Meta()
	runID := d.startRun(meta)
	report := domain.BatchReport{}

	for _, target := range src.Targets() {
		if err := d.limiter.Wait(ctx); err != nil {
			lgr.Printf("[WARN] run %s: %s interrupted, %v", runID, meta.Name, err)
			break
		}
		d.setPhase(runID, PhaseFetching, "target %s", target)
		items, err := src.Fetch(ctx, target)
		if err != nil {
			lgr.Printf("[WARN] run %s: failed to fetch %s: %v", runID, target, err)
			report.Found++
			report.Failed++
			continue
		}
		report.Add(d.ingest(ctx, runID, items, meta))
	}

	d.finishRun(runID, meta, report)
	return report
}

func (d *Driver) ingest(ctx context.Context, runID string, items []domain.RawItem, meta domain.SourceMeta) domain.BatchReport {
	report := domain.BatchReport{Found: len(items)}
	for i, item := range items {
		switch d.ingestItem(ctx, runID, item, meta) {
		case resultImported:
			report.Imported++
		case resultDuplicate:
			report.SkippedDuplicate++
		default:
			report.Failed++
		}
		lgr.Printf("[DEBUG] run %s: item %d/%d done", runID, i+1, len(items))
	}
	return report
}

type itemResult int

const (
	resultFailed itemResult = iota
	resultImported
	resultDuplicate
)

// ingestItem processes a single item to completion. Panics are recovered and counted as failures.
func (d *Driver) ingestItem(ctx context.Context, runID string, item domain.RawItem, meta domain.SourceMeta) (res itemResult) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] run %s: item from %s panicked: %v", runID, item.PostURL, r)
			res = resultFailed
		}
	}()

	d.setPhase(runID, PhaseExtracting, "item %s", item.PostURL)
	ev, err := d.processor.Process(ctx, item, meta)
	if err != nil {
		if errors.Is(err, extract.ErrMalformedInput) {
			lgr.Printf("[WARN] run %s: skip malformed item %s: %v", runID, item.PostURL, err)
		} else {
			lgr.Printf("[WARN] run %s: failed to extract item %s: %v", runID, item.PostURL, err)
		}
		return resultFailed
	}

	d.setPhase(runID, PhaseDeduplicating, "%q", ev.Title)
	dup, err := d.dedup.IsDuplicate(ctx, ev, d.store)
	if err != nil {
		lgr.Printf("[ERROR] run %s: failed to check duplicate for %q: %v", runID, ev.Title, err)
		return resultFailed
	}
	if dup {
		lgr.Printf("[DEBUG] run %s: skip duplicate %q, %s", runID, ev.Title, ev.City)
		return resultDuplicate
	}

	d.setPhase(runID, PhasePersisting, "%q", ev.Title)
	if err := d.store.Insert(ctx, &ev); err != nil {
		lgr.Printf("[ERROR] run %s: failed to store %q: %v", runID, ev.Title, err)
		return resultFailed
	}
	lgr.Printf("[DEBUG] run %s: stored %q (%s, %s, %s), id %d", runID, ev.Title, ev.City, ev.Category, ev.EventType, ev.ID)
	return resultImported
}

func (d *Driver) startRun(meta domain.SourceMeta) string {
	runID := uuid.NewString()
	d.statusMu.Lock()
	d.status.RunID, d.status.Source = runID, meta.Name
	d.statusMu.Unlock()
	lgr.Printf("[INFO] run %s: start ingest from %s", runID, meta.Name)
	return runID
}

func (d *Driver) finishRun(runID string, meta domain.SourceMeta, report domain.BatchReport) {
	d.setPhase(runID, PhaseReporting, "%s", meta.Name)
	lgr.Printf("[INFO] run %s: %s done, found %d, imported %d, duplicates %d, failed %d",
		runID, meta.Name, report.Found, report.Imported, report.SkippedDuplicate, report.Failed)

	now := time.Now()
	if d.recorder != nil {
		d.recorder.RecordBatch(meta.Name, report)
		d.recorder.RecordRun(meta.Name, now)
	}

	d.statusMu.Lock()
	d.status = Status{Phase: PhaseIdle, LastRun: now, LastReport: report}
	d.statusMu.Unlock()
}

func (d *Driver) setPhase(runID string, phase Phase, format string, args ...any) {
	d.statusMu.Lock()
	d.status.Phase = phase
	d.statusMu.Unlock()
	lgr.Printf("[DEBUG] run %s: %s %s", runID, phase, fmt.Sprintf(format, args...))
}
